package cart

import (
	"testing"

	"github.com/archiveshq/storefront/internal/catalog"
	"github.com/shopspring/decimal"
)

func product(id string, price int64) catalog.Product {
	return catalog.Product{ID: id, Name: id, Price: decimal.NewFromInt(price)}
}

func TestAddIncrementsExistingLine(t *testing.T) {
	c := New()
	c.Add(product("walkman", 2400))
	c.Add(product("walkman", 2400))

	items := c.Items()
	if len(items) != 1 {
		t.Fatalf("expected one line, got %d", len(items))
	}
	if items[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", items[0].Quantity)
	}
	if c.TotalItems() != 2 {
		t.Fatalf("expected 2 total items, got %d", c.TotalItems())
	}
}

func TestItemsKeepInsertionOrder(t *testing.T) {
	c := New()
	c.Add(product("b", 100))
	c.Add(product("a", 200))
	c.Add(product("c", 300))
	c.Add(product("a", 200))

	items := c.Items()
	if items[0].Product.ID != "b" || items[1].Product.ID != "a" || items[2].Product.ID != "c" {
		t.Fatalf("unexpected order: %v", items)
	}
}

func TestUpdateQuantity(t *testing.T) {
	c := New()
	c.Add(product("walkman", 2400))

	c.UpdateQuantity("walkman", 5)
	if got := c.Items()[0].Quantity; got != 5 {
		t.Fatalf("expected quantity 5, got %d", got)
	}

	c.UpdateQuantity("missing", 3)
	if c.TotalItems() != 5 {
		t.Fatalf("updating an absent line changed the cart: %d", c.TotalItems())
	}
}

func TestUpdateQuantityBelowOneRemovesLine(t *testing.T) {
	c := New()
	c.Add(product("walkman", 2400))
	c.Add(product("leica", 3600))

	c.UpdateQuantity("walkman", 0)
	items := c.Items()
	if len(items) != 1 || items[0].Product.ID != "leica" {
		t.Fatalf("expected only leica left, got %v", items)
	}

	c.UpdateQuantity("leica", -2)
	if len(c.Items()) != 0 {
		t.Fatal("expected empty cart")
	}
}

func TestRemove(t *testing.T) {
	c := New()
	c.Add(product("walkman", 2400))
	c.Remove("walkman")
	c.Remove("walkman")

	if len(c.Items()) != 0 {
		t.Fatal("expected empty cart")
	}
}

func TestTotalPrice(t *testing.T) {
	c := New()
	c.Add(product("walkman", 2400))
	c.Add(product("walkman", 2400))
	c.Add(product("leica", 3600))

	want := decimal.NewFromInt(2*2400 + 3600)
	if got := c.TotalPrice(); !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestClear(t *testing.T) {
	c := New()
	c.Add(product("walkman", 2400))
	c.Clear()

	if c.TotalItems() != 0 || !c.TotalPrice().IsZero() {
		t.Fatal("expected cleared cart")
	}
}

func TestItemsReturnsCopy(t *testing.T) {
	c := New()
	c.Add(product("walkman", 2400))

	items := c.Items()
	items[0].Quantity = 99

	if c.Items()[0].Quantity != 1 {
		t.Fatal("Items leaked internal slice")
	}
}
