package catalog

import (
	"github.com/archiveshq/storefront/pkg/enums"
	"github.com/shopspring/decimal"
)

// Spec is one labelled line on a product's spec sheet.
type Spec struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Product is a single catalog artifact. Products are loaded once at startup
// and never mutated afterwards.
type Product struct {
	ID              string                `json:"id"`
	Name            string                `json:"name"`
	Tagline         string                `json:"tagline"`
	Description     string                `json:"description"`
	LongDescription string                `json:"longDescription,omitempty"`
	Price           decimal.Decimal       `json:"price"`
	Rating          float64               `json:"rating"`
	RatingCount     int                   `json:"ratingCount"`
	Category        enums.ProductCategory `json:"category"`
	Era             enums.Era             `json:"era"`
	Year            int                   `json:"year"`
	Specs           []Spec                `json:"specs,omitempty"`
	Images          []string              `json:"images,omitempty"`
	Featured        bool                  `json:"featured"`
	New             bool                  `json:"new"`
	Color           string                `json:"color,omitempty"`
}
