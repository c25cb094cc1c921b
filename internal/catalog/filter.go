package catalog

import (
	"sort"

	"github.com/archiveshq/storefront/internal/ratings"
	"github.com/archiveshq/storefront/pkg/enums"
	"github.com/shopspring/decimal"
)

// Filter narrows the catalog view. Nil fields mean "no constraint"; the
// price bounds are always applied and are inclusive on both ends.
type Filter struct {
	Category  *enums.ProductCategory
	Era       *enums.Era
	PriceMin  decimal.Decimal
	PriceMax  decimal.Decimal
	MinRating *float64
}

// DefaultFilter matches every product in the default browse price window.
func DefaultFilter() Filter {
	return Filter{
		PriceMin: decimal.Zero,
		PriceMax: decimal.NewFromInt(5000),
	}
}

// Apply filters and orders the product set. The input slice is never
// mutated; ties are resolved deterministically (year descending where the
// sort defines it, original catalog order otherwise).
func Apply(products []Product, f Filter, key enums.SortKey, userRatings ratings.Map) []Product {
	result := filterProducts(products, f)
	sortProducts(result, key, userRatings)
	return result
}

func filterProducts(products []Product, f Filter) []Product {
	result := make([]Product, 0, len(products))
	for _, p := range products {
		if f.Category != nil && p.Category != *f.Category {
			continue
		}
		if f.Era != nil && p.Era != *f.Era {
			continue
		}
		if p.Price.LessThan(f.PriceMin) || p.Price.GreaterThan(f.PriceMax) {
			continue
		}
		// Minimum rating compares the baseline rating, not the blended
		// display rating used for sorting.
		if f.MinRating != nil && p.Rating < *f.MinRating {
			continue
		}
		result = append(result, p)
	}
	return result
}

func sortProducts(products []Product, key enums.SortKey, userRatings ratings.Map) {
	switch key {
	case enums.SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price.LessThan(products[j].Price)
		})
	case enums.SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price.GreaterThan(products[j].Price)
		})
	case enums.SortRatingDesc:
		sort.SliceStable(products, func(i, j int) bool {
			ri := blendedRating(products[i], userRatings)
			rj := blendedRating(products[j], userRatings)
			if ri != rj {
				return ri > rj
			}
			return products[i].Year > products[j].Year
		})
	case enums.SortNewest:
		sort.SliceStable(products, func(i, j int) bool {
			if products[i].New != products[j].New {
				return products[i].New
			}
			return products[i].Year > products[j].Year
		})
	}
}

func blendedRating(p Product, userRatings ratings.Map) float64 {
	return ratings.DisplayRating(p.Rating, p.RatingCount, userRatings[p.ID])
}
