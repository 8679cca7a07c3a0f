// Package cart holds the browser-side cart state for a shop session. It is
// the model behind the shop page: a UI embedding it re-renders from Snapshot
// after every mutation and gates the checkout button on CheckoutReady. The
// state is single-threaded and never persisted; a new session starts empty.
package cart

import (
	"sort"
	"strings"

	"storefront/internal/models"
)

// Line is one cart entry. The product name is its identity.
type Line struct {
	Name     string
	Price    float64
	Quantity int
}

// Cart maps product names to price and quantity. The zero value is not
// usable; call New.
type Cart struct {
	lines map[string]*Line
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{lines: make(map[string]*Line)}
}

// Add inserts the product at quantity 1, or increments it if already present.
func (c *Cart) Add(name string, price float64) {
	if line, ok := c.lines[name]; ok {
		line.Quantity++
		return
	}
	c.lines[name] = &Line{Name: name, Price: price, Quantity: 1}
}

// Remove deletes the entry regardless of quantity.
func (c *Cart) Remove(name string) {
	delete(c.lines, name)
}

// ChangeQuantity adjusts the entry by delta, removing it when the result
// drops to zero or below. Unknown names are ignored.
func (c *Cart) ChangeQuantity(name string, delta int) {
	line, ok := c.lines[name]
	if !ok {
		return
	}
	line.Quantity += delta
	if line.Quantity <= 0 {
		delete(c.lines, name)
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = make(map[string]*Line)
}

// Len reports the number of distinct products.
func (c *Cart) Len() int {
	return len(c.lines)
}

// Snapshot returns the lines sorted by name for deterministic rendering.
// Mutating the result does not affect the cart.
func (c *Cart) Snapshot() []Line {
	out := make([]Line, 0, len(c.lines))
	for _, line := range c.lines {
		out = append(out, *line)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Total sums price*quantity over the cart.
func (c *Cart) Total() float64 {
	var total float64
	for _, line := range c.lines {
		total += line.Price * float64(line.Quantity)
	}
	return total
}

// Items builds the checkout request payload.
func (c *Cart) Items() []models.CartItem {
	snapshot := c.Snapshot()
	items := make([]models.CartItem, 0, len(snapshot))
	for _, line := range snapshot {
		items = append(items, models.CartItem{
			Name:     line.Name,
			Price:    line.Price,
			Quantity: line.Quantity,
		})
	}
	return items
}

// CheckoutForm mirrors the four required fields of the checkout form.
type CheckoutForm struct {
	FullName    string
	Email       string
	Phone       string
	CollectDate string
}

// CheckoutReady reports whether checkout can be submitted: all four form
// fields non-empty and at least one item in the cart.
func (c *Cart) CheckoutReady(form CheckoutForm) bool {
	return strings.TrimSpace(form.FullName) != "" &&
		strings.TrimSpace(form.Email) != "" &&
		strings.TrimSpace(form.Phone) != "" &&
		strings.TrimSpace(form.CollectDate) != "" &&
		len(c.lines) > 0
}
