// internal/domain/cart/reconcile.go
package cart

import (
	"github.com/your-org/collectibles-storefront/internal/domain/catalog"
)

// SyncWithCart returns the displayed view of a catalog snapshot: every product
// in the cart carries max(base stock - cart quantity, 0), the rest are unchanged.
//
// The snapshot is never modified. Callers must keep passing the authoritative
// snapshot, not a previous result, or the cart quantity is subtracted twice.
func SyncWithCart(snapshot []catalog.Product, c *Cart) []catalog.Product {
	out := make([]catalog.Product, len(snapshot))
	copy(out, snapshot)

	if c == nil || len(c.Lines) == 0 {
		return out
	}

	reserved := c.Quantities()
	for i := range out {
		qty, ok := reserved[catalog.ParseProductID(string(out[i].ID))]
		if !ok {
			continue
		}
		out[i].Stock = Available(out[i].Stock, qty)
	}
	return out
}

// Available is the reconciled stock for a base stock and a reserved quantity
func Available(baseStock, reserved int) int {
	if remaining := baseStock - reserved; remaining > 0 {
		return remaining
	}
	return 0
}
