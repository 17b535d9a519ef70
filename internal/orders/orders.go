// Package orders persists finalized carts as immutable order records, one
// JSON file per order.
package orders

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kiranalabs/kirana-voice-backend/internal/cart"
)

// orderIDPrefix plus a second-resolution timestamp forms the order id. Two
// orders placed within the same wall-clock second collide and the later one
// overwrites the earlier on disk; a known limitation carried over from the
// original id scheme, not silently fixed.
const (
	orderIDPrefix     = "ORD-"
	orderIDTimeLayout = "20060102-150405"
)

// Order is a self-contained snapshot of a placed order. Immutable once
// written; no field references the live catalog or cart.
type Order struct {
	OrderID      string          `json:"order_id"`
	Timestamp    time.Time       `json:"timestamp"`
	CustomerName string          `json:"customer_name,omitempty"`
	Address      string          `json:"address,omitempty"`
	Items        []cart.Line     `json:"items"`
	Total        decimal.Decimal `json:"total"`
}

// NewOrderID derives the order id for the given placement time.
func NewOrderID(at time.Time) string {
	return orderIDPrefix + at.UTC().Format(orderIDTimeLayout)
}
