package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/archiveshq/storefront/pkg/enums"
)

func TestLoadEmbeddedCatalog(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("loading embedded catalog: %v", err)
	}
	if c.Len() != 12 {
		t.Fatalf("expected 12 products, got %d", c.Len())
	}

	p, ok := c.ByID("sony-walkman-tps-l2")
	if !ok {
		t.Fatal("expected walkman in catalog")
	}
	if p.Category != enums.ProductCategoryAudio || p.Era != enums.Era1970s {
		t.Fatalf("unexpected product metadata: %+v", p)
	}
}

func TestLoadFileOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	data := `[{"id":"x","name":"X","price":"100","rating":4.5,"ratingCount":10,"category":"audio","era":"1970s","year":1975}]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("loading override catalog: %v", err)
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 product, got %d", c.Len())
	}
}

func TestParseRejectsInvalidData(t *testing.T) {
	for name, data := range map[string]string{
		"duplicate id":     `[{"id":"x","name":"X","price":"1","category":"audio","era":"1970s"},{"id":"x","name":"Y","price":"1","category":"audio","era":"1970s"}]`,
		"unknown category": `[{"id":"x","name":"X","price":"1","category":"furniture","era":"1970s"}]`,
		"unknown era":      `[{"id":"x","name":"X","price":"1","category":"audio","era":"2000s"}]`,
		"negative price":   `[{"id":"x","name":"X","price":"-1","category":"audio","era":"1970s"}]`,
		"rating too high":  `[{"id":"x","name":"X","price":"1","rating":5.1,"category":"audio","era":"1970s"}]`,
		"empty id":         `[{"id":"","name":"X","price":"1","category":"audio","era":"1970s"}]`,
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := parse([]byte(data)); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestParseAccumulatesAllErrors(t *testing.T) {
	data := `[{"id":"","name":"X","price":"1","category":"audio","era":"1970s"},{"id":"y","name":"Y","price":"1","category":"furniture","era":"1970s"}]`
	_, err := parse([]byte(data))
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "empty id") || !strings.Contains(err.Error(), "unknown category") {
		t.Fatalf("expected both failures reported, got: %v", err)
	}
}

func TestProductsReturnsCopy(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	products := c.Products()
	products[0].ID = "mutated"

	again := c.Products()
	if again[0].ID == "mutated" {
		t.Fatal("Products leaked internal slice")
	}
}

func TestFeaturedAndNewArrivals(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	for _, p := range c.Featured() {
		if !p.Featured {
			t.Fatalf("product %q not flagged featured", p.ID)
		}
	}
	arrivals := c.NewArrivals()
	if len(arrivals) == 0 {
		t.Fatal("expected at least one new arrival")
	}
	for _, p := range arrivals {
		if !p.New {
			t.Fatalf("product %q not flagged new", p.ID)
		}
	}
}

func TestRelatedExcludesSelfAndOtherCategories(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	p, _ := c.ByID("sony-walkman-tps-l2")
	related := c.Related(p, 2)
	if len(related) != 2 {
		t.Fatalf("expected 2 related products, got %d", len(related))
	}
	for _, r := range related {
		if r.ID == p.ID {
			t.Fatal("related set contains the product itself")
		}
		if r.Category != p.Category {
			t.Fatalf("related product %q in different category", r.ID)
		}
	}
}
