package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestAPIMetricsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewAPIMetrics(reg)

	m.IncSuccess("/api/signin/")
	m.IncSuccess("/api/signin/")
	m.IncFailure("/api/resend-otp/")
	m.ObserveDuration("/api/signin/", 25*time.Millisecond)

	if got := testutil.ToFloat64(m.success.WithLabelValues("/api/signin/")); got != 2 {
		t.Fatalf("expected 2 successes, got %v", got)
	}
	if got := testutil.ToFloat64(m.failure.WithLabelValues("/api/resend-otp/")); got != 1 {
		t.Fatalf("expected 1 failure, got %v", got)
	}
}

func TestAPIMetricsNilSafe(t *testing.T) {
	var m *APIMetrics
	m.IncSuccess("/api/signin/")
	m.IncFailure("/api/signin/")
	m.ObserveDuration("/api/signin/", time.Second)

	empty := NewAPIMetrics(nil)
	empty.IncSuccess("")
	empty.ObserveDuration("", time.Second)
}
