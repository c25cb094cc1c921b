package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
)

//go:embed catalog.json
var embeddedCatalog []byte

// Catalog holds the immutable product set for the storefront.
type Catalog struct {
	products []Product
	byID     map[string]Product
}

// Load parses the embedded catalog data.
func Load() (*Catalog, error) {
	return parse(embeddedCatalog)
}

// LoadFile parses catalog data from an override file instead of the
// embedded set.
func LoadFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	return parse(raw)
}

func parse(raw []byte) (*Catalog, error) {
	var products []Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("decoding catalog data: %w", err)
	}

	byID := make(map[string]Product, len(products))
	var errs error
	for _, p := range products {
		if err := validateProduct(p); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if _, dup := byID[p.ID]; dup {
			errs = multierr.Append(errs, fmt.Errorf("duplicate product id %q", p.ID))
			continue
		}
		byID[p.ID] = p
	}
	if errs != nil {
		return nil, fmt.Errorf("invalid catalog data: %w", errs)
	}

	return &Catalog{products: products, byID: byID}, nil
}

func validateProduct(p Product) error {
	if p.ID == "" {
		return fmt.Errorf("product with empty id")
	}
	if p.Name == "" {
		return fmt.Errorf("product %q has no name", p.ID)
	}
	if !p.Category.IsValid() {
		return fmt.Errorf("product %q has unknown category %q", p.ID, p.Category)
	}
	if !p.Era.IsValid() {
		return fmt.Errorf("product %q has unknown era %q", p.ID, p.Era)
	}
	if p.Price.LessThan(decimal.Zero) {
		return fmt.Errorf("product %q has negative price", p.ID)
	}
	if p.Rating < 0 || p.Rating > 5 {
		return fmt.Errorf("product %q has rating %v outside [0,5]", p.ID, p.Rating)
	}
	if p.RatingCount < 0 {
		return fmt.Errorf("product %q has negative rating count", p.ID)
	}
	return nil
}

// Products returns a copy of the full product list in catalog order.
func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Len reports the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}

// ByID looks up a product by its id.
func (c *Catalog) ByID(id string) (Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// Featured returns the products flagged for the landing page.
func (c *Catalog) Featured() []Product {
	var out []Product
	for _, p := range c.products {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}

// NewArrivals returns the products flagged as new.
func (c *Catalog) NewArrivals() []Product {
	var out []Product
	for _, p := range c.products {
		if p.New {
			out = append(out, p)
		}
	}
	return out
}

// Related returns up to n other products in the same category.
func (c *Catalog) Related(p Product, n int) []Product {
	var out []Product
	for _, candidate := range c.products {
		if len(out) == n {
			break
		}
		if candidate.ID == p.ID || candidate.Category != p.Category {
			continue
		}
		out = append(out, candidate)
	}
	return out
}
