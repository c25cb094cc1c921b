package enums

import "fmt"

// ProductCategory represents the canonical product categories carried by the catalog.
type ProductCategory string

const (
	ProductCategoryAudio       ProductCategory = "audio"
	ProductCategoryComputing   ProductCategory = "computing"
	ProductCategoryPhotography ProductCategory = "photography"
	ProductCategoryGaming      ProductCategory = "gaming"
	ProductCategoryTelevision  ProductCategory = "television"
)

var validProductCategories = []ProductCategory{
	ProductCategoryAudio,
	ProductCategoryComputing,
	ProductCategoryPhotography,
	ProductCategoryGaming,
	ProductCategoryTelevision,
}

// String implements fmt.Stringer.
func (c ProductCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ProductCategory.
func (c ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseProductCategory converts raw input into a ProductCategory.
func ParseProductCategory(value string) (ProductCategory, error) {
	for _, candidate := range validProductCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}

// ProductCategoryValues lists every supported category.
func ProductCategoryValues() []ProductCategory {
	out := make([]ProductCategory, len(validProductCategories))
	copy(out, validProductCategories)
	return out
}
