package catalog

import (
	"testing"

	"github.com/archiveshq/storefront/internal/ratings"
	"github.com/archiveshq/storefront/pkg/enums"
	"github.com/shopspring/decimal"
)

func testProducts() []Product {
	return []Product{
		{ID: "walkman", Category: enums.ProductCategoryAudio, Era: enums.Era1970s, Year: 1979, Price: decimal.NewFromInt(2400), Rating: 4.8, RatingCount: 132},
		{ID: "macintosh", Category: enums.ProductCategoryComputing, Era: enums.Era1980s, Year: 1984, Price: decimal.NewFromInt(4800), Rating: 4.9, RatingCount: 210, New: true},
		{ID: "sx70", Category: enums.ProductCategoryPhotography, Era: enums.Era1970s, Year: 1972, Price: decimal.NewFromInt(1800), Rating: 4.6, RatingCount: 88},
		{ID: "receiver", Category: enums.ProductCategoryAudio, Era: enums.Era1960s, Year: 1963, Price: decimal.NewFromInt(3200), Rating: 4.7, RatingCount: 67},
		{ID: "trinitron", Category: enums.ProductCategoryTelevision, Era: enums.Era1960s, Year: 1990, Price: decimal.NewFromInt(1400), Rating: 4.2, RatingCount: 54},
	}
}

func ids(products []Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func equalIDs(a []string, b ...string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFilterByCategoryPreservesOrder(t *testing.T) {
	category := enums.ProductCategoryAudio
	f := DefaultFilter()
	f.Category = &category

	got := Apply(testProducts(), f, enums.SortKey(""), nil)
	if !equalIDs(ids(got), "walkman", "receiver") {
		t.Fatalf("unexpected result: %v", ids(got))
	}
}

func TestFilterByEra(t *testing.T) {
	era := enums.Era1970s
	f := DefaultFilter()
	f.Era = &era

	got := Apply(testProducts(), f, enums.SortKey(""), nil)
	if !equalIDs(ids(got), "walkman", "sx70") {
		t.Fatalf("unexpected result: %v", ids(got))
	}
}

func TestFilterPriceBoundsInclusive(t *testing.T) {
	f := Filter{PriceMin: decimal.NewFromInt(1800), PriceMax: decimal.NewFromInt(3200)}

	got := Apply(testProducts(), f, enums.SortKey(""), nil)
	if !equalIDs(ids(got), "walkman", "sx70", "receiver") {
		t.Fatalf("unexpected result: %v", ids(got))
	}
}

func TestFilterMinRatingUsesBaseline(t *testing.T) {
	min := 4.7
	f := DefaultFilter()
	f.MinRating = &min

	// trinitron carries a personal 5 which would lift its blended rating,
	// but the minimum-rating filter only looks at the baseline.
	got := Apply(testProducts(), f, enums.SortKey(""), ratings.Map{"trinitron": 5})
	if !equalIDs(ids(got), "walkman", "macintosh", "receiver") {
		t.Fatalf("unexpected result: %v", ids(got))
	}
}

func TestSortPriceAsc(t *testing.T) {
	products := []Product{
		{ID: "a", Price: decimal.NewFromInt(2400)},
		{ID: "b", Price: decimal.NewFromInt(4800)},
		{ID: "c", Price: decimal.NewFromInt(1800)},
	}
	f := DefaultFilter()

	got := Apply(products, f, enums.SortPriceAsc, nil)
	if !equalIDs(ids(got), "c", "a", "b") {
		t.Fatalf("unexpected order: %v", ids(got))
	}
}

func TestSortPriceDesc(t *testing.T) {
	got := Apply(testProducts(), DefaultFilter(), enums.SortPriceDesc, nil)
	if !equalIDs(ids(got), "macintosh", "receiver", "walkman", "sx70", "trinitron") {
		t.Fatalf("unexpected order: %v", ids(got))
	}
}

func TestSortNewestPrefersNewFlagThenYear(t *testing.T) {
	products := []Product{
		{ID: "older-new", Year: 1984, New: true},
		{ID: "newer-old", Year: 1990, New: false},
		{ID: "oldest-old", Year: 1972, New: false},
	}

	got := Apply(products, DefaultFilter(), enums.SortNewest, nil)
	if !equalIDs(ids(got), "older-new", "newer-old", "oldest-old") {
		t.Fatalf("unexpected order: %v", ids(got))
	}
}

func TestSortRatingDescUsesBlendedRating(t *testing.T) {
	products := []Product{
		{ID: "high-baseline", Year: 1970, Rating: 4.5, RatingCount: 10},
		{ID: "lifted", Year: 1980, Rating: 4.4, RatingCount: 1},
	}
	// blended: high-baseline stays 4.5, lifted becomes (4.4+5)/2 = 4.7
	got := Apply(products, DefaultFilter(), enums.SortRatingDesc, ratings.Map{"lifted": 5})
	if !equalIDs(ids(got), "lifted", "high-baseline") {
		t.Fatalf("unexpected order: %v", ids(got))
	}
}

func TestSortRatingDescBreaksTiesByYear(t *testing.T) {
	products := []Product{
		{ID: "older", Year: 1963, Rating: 4.7, RatingCount: 50},
		{ID: "newer", Year: 1979, Rating: 4.7, RatingCount: 80},
	}

	got := Apply(products, DefaultFilter(), enums.SortRatingDesc, nil)
	if !equalIDs(ids(got), "newer", "older") {
		t.Fatalf("unexpected order: %v", ids(got))
	}
}

func TestApplyNeverMutatesInput(t *testing.T) {
	products := testProducts()
	_ = Apply(products, DefaultFilter(), enums.SortPriceAsc, nil)

	if !equalIDs(ids(products), "walkman", "macintosh", "sx70", "receiver", "trinitron") {
		t.Fatalf("input slice was reordered: %v", ids(products))
	}
}

func TestApplyDeterministicForEqualInputs(t *testing.T) {
	f := DefaultFilter()
	first := ids(Apply(testProducts(), f, enums.SortNewest, nil))
	for i := 0; i < 10; i++ {
		again := ids(Apply(testProducts(), f, enums.SortNewest, nil))
		if !equalIDs(first, again...) {
			t.Fatalf("non-deterministic order: %v vs %v", first, again)
		}
	}
}
