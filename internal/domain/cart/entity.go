// internal/domain/cart/entity.go
package cart

import (
	"time"

	"github.com/your-org/collectibles-storefront/internal/domain/catalog"
)

// Line is one product in the cart. Product holds the catalog snapshot taken
// when the line was last added, with its authoritative base stock.
type Line struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
	AddedAt  time.Time       `json:"added_at"`
}

// Cart is the persisted cart document of one shopper session
type Cart struct {
	SessionID string    `json:"session_id"`
	Lines     []Line    `json:"lines"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Totals represents calculated cart totals
type Totals struct {
	ItemCount     int   `json:"item_count"`     // Number of unique items
	TotalQuantity int   `json:"total_quantity"` // Sum of all quantities
	SubTotal      int64 `json:"sub_total"`      // Sum of effective prices, in cents
}

// NewCart returns an empty cart for a session
func NewCart(sessionID string) *Cart {
	now := time.Now().UTC()
	return &Cart{
		SessionID: sessionID,
		Lines:     []Line{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// find returns the index of the line for id, or -1
func (c *Cart) find(id catalog.ProductID) int {
	for i := range c.Lines {
		if c.Lines[i].Product.ID.Equal(id) {
			return i
		}
	}
	return -1
}

// QuantityOf returns the quantity reserved for a product
func (c *Cart) QuantityOf(id catalog.ProductID) int {
	if i := c.find(id); i >= 0 {
		return c.Lines[i].Quantity
	}
	return 0
}

// Contains reports whether the cart has a line for the product
func (c *Cart) Contains(id catalog.ProductID) bool {
	return c.find(id) >= 0
}

// Quantities indexes line quantities by canonical product id
func (c *Cart) Quantities() map[catalog.ProductID]int {
	out := make(map[catalog.ProductID]int, len(c.Lines))
	for _, l := range c.Lines {
		out[catalog.ParseProductID(string(l.Product.ID))] += l.Quantity
	}
	return out
}

// Totals sums the cart
func (c *Cart) Totals() Totals {
	t := Totals{ItemCount: len(c.Lines)}
	for _, l := range c.Lines {
		t.TotalQuantity += l.Quantity
		t.SubTotal += l.Product.EffectivePrice() * int64(l.Quantity)
	}
	return t
}

// clone copies the cart so a failed save leaves the caller's copy untouched
func (c *Cart) clone() *Cart {
	cp := *c
	cp.Lines = append([]Line(nil), c.Lines...)
	return &cp
}
