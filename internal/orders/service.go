package orders

import (
	"fmt"
	"time"

	"github.com/kiranalabs/kirana-voice-backend/internal/cart"
)

// Service places orders: it snapshots a cart into an immutable record and
// hands it to the store.
type Service interface {
	PlaceOrder(c *cart.Cart, customerName, address string) (Order, error)
	Get(orderID string) (Order, error)
	Last() (Order, error)
}

type service struct {
	store Store
	now   func() time.Time
}

// NewService builds an order service. The clock defaults to time.Now and is
// injectable for tests.
func NewService(store Store, now func() time.Time) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("order store required")
	}
	if now == nil {
		now = time.Now
	}
	return &service{store: store, now: now}, nil
}

// PlaceOrder persists the cart as a self-contained record. An empty cart is
// a valid order (zero items, zero total). On a failed write the cart is left
// untouched, so the caller can retry the call verbatim. PlaceOrder never
// clears the cart; that is the caller's explicit follow-up action.
func (s *service) PlaceOrder(c *cart.Cart, customerName, address string) (Order, error) {
	placedAt := s.now().UTC()

	items := make([]cart.Line, len(c.Lines))
	copy(items, c.Lines)

	order := Order{
		OrderID:      NewOrderID(placedAt),
		Timestamp:    placedAt,
		CustomerName: customerName,
		Address:      address,
		Items:        items,
		Total:        c.Total(),
	}

	if err := s.store.Save(order); err != nil {
		return Order{}, err
	}
	return order, nil
}

func (s *service) Get(orderID string) (Order, error) {
	return s.store.Get(orderID)
}

func (s *service) Last() (Order, error) {
	return s.store.Last()
}
