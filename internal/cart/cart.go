package cart

import (
	"sync"

	"github.com/archiveshq/storefront/internal/catalog"
	"github.com/shopspring/decimal"
)

// Item is one cart line: a product and how many of it.
type Item struct {
	Product  catalog.Product
	Quantity int
}

// Cart holds the in-memory shopping cart. Lines keep insertion order and
// the cart never persists across restarts. Safe for concurrent use.
type Cart struct {
	mu    sync.Mutex
	lines []Item
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// Add puts one unit of the product in the cart, incrementing the quantity
// when a line for it already exists.
func (c *Cart) Add(product catalog.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].Product.ID == product.ID {
			c.lines[i].Quantity++
			return
		}
	}
	c.lines = append(c.lines, Item{Product: product, Quantity: 1})
}

// UpdateQuantity sets a line's quantity. Anything below one removes the
// line entirely.
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	if quantity < 1 {
		c.Remove(productID)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.lines {
		if c.lines[i].Product.ID == productID {
			c.lines[i].Quantity = quantity
			return
		}
	}
}

// Remove drops the line for the product, if present.
func (c *Cart) Remove(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].Product.ID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

// Items returns a copy of the cart lines in insertion order.
func (c *Cart) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Item, len(c.lines))
	copy(out, c.lines)
	return out
}

// TotalItems reports the summed quantity across all lines.
func (c *Cart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0
	for _, line := range c.lines {
		total += line.Quantity
	}
	return total
}

// TotalPrice reports the summed price across all lines.
func (c *Cart) TotalPrice() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.Product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}
