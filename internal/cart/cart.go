// Package cart implements the session-scoped cart ledger: an ordered set of
// line items with merge-on-duplicate adds and a derived total.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/kiranalabs/kirana-voice-backend/internal/catalog"
	pkgerrors "github.com/kiranalabs/kirana-voice-backend/pkg/errors"
)

// Line is one distinct item in an in-progress order. Name and unit price are
// snapshots taken at add-time; the line never references the live catalog.
type Line struct {
	ItemID    string          `json:"item_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Notes     string          `json:"notes,omitempty"`
}

// Cart is an ordered sequence of lines, one per distinct item id, in
// first-insertion order. A cart belongs to exactly one shopping session;
// callers that share a cart across goroutines must serialize access.
type Cart struct {
	Lines []Line `json:"lines"`
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// Add appends a line for the given item snapshot, or merges into the
// existing line when the item is already in the cart. Returns the resulting
// line. Quantity must be at least 1.
func (c *Cart) Add(item catalog.Item, quantity int, notes string) (Line, error) {
	if quantity < 1 {
		return Line{}, pkgerrors.New(pkgerrors.CodeInvalidQuantity, "quantity must be at least 1").
			WithDetails(map[string]any{"item_id": item.ID, "quantity": quantity})
	}

	for i := range c.Lines {
		if c.Lines[i].ItemID == item.ID {
			c.Lines[i].Quantity += quantity
			c.Lines[i].Subtotal = lineSubtotal(c.Lines[i].UnitPrice, c.Lines[i].Quantity)
			if notes != "" {
				c.Lines[i].Notes = notes
			}
			return c.Lines[i], nil
		}
	}

	line := Line{
		ItemID:    item.ID,
		Name:      item.Name,
		Quantity:  quantity,
		UnitPrice: item.UnitPrice,
		Subtotal:  lineSubtotal(item.UnitPrice, quantity),
		Notes:     notes,
	}
	c.Lines = append(c.Lines, line)
	return line, nil
}

// Remove deletes the line for itemID if present and reports whether a
// removal occurred. Removing an absent line is not an error.
func (c *Cart) Remove(itemID string) bool {
	for i := range c.Lines {
		if c.Lines[i].ItemID == itemID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return true
		}
	}
	return false
}

// SetQuantity replaces the quantity of an existing line and recomputes its
// subtotal.
func (c *Cart) SetQuantity(itemID string, quantity int) (Line, error) {
	if quantity < 1 {
		return Line{}, pkgerrors.New(pkgerrors.CodeInvalidQuantity, "quantity must be at least 1").
			WithDetails(map[string]any{"item_id": itemID, "quantity": quantity})
	}

	for i := range c.Lines {
		if c.Lines[i].ItemID == itemID {
			c.Lines[i].Quantity = quantity
			c.Lines[i].Subtotal = lineSubtotal(c.Lines[i].UnitPrice, quantity)
			return c.Lines[i], nil
		}
	}

	return Line{}, pkgerrors.New(pkgerrors.CodeLineNotFound, "no cart line for item").
		WithDetails(map[string]any{"item_id": itemID})
}

// Total returns the sum of line subtotals rounded to 2 decimal places,
// half away from zero. The total is derived, never stored.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Lines {
		total = total.Add(line.Subtotal)
	}
	return total.Round(2)
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Lines = nil
}

// Len returns the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.Lines)
}

// lineSubtotal is unit price times quantity, rounded to 2 decimal places
// half away from zero.
func lineSubtotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}
