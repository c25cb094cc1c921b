package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// APIMetrics records calls made against the remote auth backend.
type APIMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
}

// NewAPIMetrics registers the remote-call metrics on the provided registerer.
func NewAPIMetrics(reg prometheus.Registerer) *APIMetrics {
	if reg == nil {
		return &APIMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "api_request_duration_seconds",
		Help:    "Duration of remote auth API requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "api_request_success",
		Help: "Remote auth API requests that completed.",
	}, []string{"endpoint"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "api_request_failure",
		Help: "Remote auth API requests that failed in transport.",
	}, []string{"endpoint"})
	reg.MustRegister(duration, success, failure)
	return &APIMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
	}
}

// ObserveDuration records the duration for the named endpoint.
func (m *APIMetrics) ObserveDuration(endpoint string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(endpoint)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the named endpoint.
func (m *APIMetrics) IncSuccess(endpoint string) {
	if m == nil || m.success == nil {
		return
	}
	m.success.WithLabelValues(normalizeLabel(endpoint)).Inc()
}

// IncFailure increments the failure counter for the named endpoint.
func (m *APIMetrics) IncFailure(endpoint string) {
	if m == nil || m.failure == nil {
		return
	}
	m.failure.WithLabelValues(normalizeLabel(endpoint)).Inc()
}

func normalizeLabel(endpoint string) string {
	if endpoint == "" {
		return "unknown"
	}
	return endpoint
}
