package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kiranalabs/kirana-voice-backend/api/responses"
	"github.com/kiranalabs/kirana-voice-backend/api/validators"
	"github.com/kiranalabs/kirana-voice-backend/internal/cart"
	"github.com/kiranalabs/kirana-voice-backend/internal/orders"
	"github.com/kiranalabs/kirana-voice-backend/internal/session"
	pkgerrors "github.com/kiranalabs/kirana-voice-backend/pkg/errors"
	"github.com/kiranalabs/kirana-voice-backend/pkg/logger"
	"github.com/kiranalabs/kirana-voice-backend/pkg/metrics"
)

type placeOrderPayload struct {
	CustomerName string `json:"customer_name"`
	Address      string `json:"address"`
}

// OrderPlace snapshots the session's cart into a persisted order. The cart
// is cleared only after the write succeeds, so a failed write can be retried
// verbatim.
func OrderPlace(sessions *session.Manager, svc orders.Service, m *metrics.ToolMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := logg.WithTool(r.Context(), "place_order")
		start := time.Now()

		sessionID, err := sessionIDParam(r)
		if err != nil {
			report(m, "place_order", start, err)
			responses.WriteError(ctx, logg, w, err)
			return
		}
		ctx = logg.WithSessionID(ctx, sessionID)

		var payload placeOrderPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			report(m, "place_order", start, err)
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var order orders.Order
		err = sessions.WithCart(ctx, sessionID, func(c *cart.Cart) error {
			var err error
			order, err = svc.PlaceOrder(c, payload.CustomerName, payload.Address)
			if err != nil {
				return err
			}
			c.Clear()
			return nil
		})
		if err != nil {
			report(m, "place_order", start, err)
			responses.WriteError(ctx, logg, w, err)
			return
		}

		ctx = logg.WithOrderID(ctx, order.OrderID)
		logg.Info(ctx, "order placed")

		report(m, "place_order", start, nil)
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{"order": order})
	}
}

// OrderLast returns the most recently placed order.
func OrderLast(svc orders.Service, m *metrics.ToolMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := logg.WithTool(r.Context(), "get_last_order")
		start := time.Now()

		order, err := svc.Last()
		if err != nil {
			report(m, "get_last_order", start, err)
			responses.WriteError(ctx, logg, w, err)
			return
		}

		report(m, "get_last_order", start, nil)
		responses.WriteSuccess(w, map[string]any{"order": order})
	}
}

// OrderDetail returns a single order by id.
func OrderDetail(svc orders.Service, m *metrics.ToolMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := logg.WithTool(r.Context(), "get_order")
		start := time.Now()

		orderID := strings.TrimSpace(chi.URLParam(r, "orderID"))
		if orderID == "" {
			err := pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
			report(m, "get_order", start, err)
			responses.WriteError(ctx, logg, w, err)
			return
		}

		order, err := svc.Get(orderID)
		if err != nil {
			report(m, "get_order", start, err)
			responses.WriteError(ctx, logg, w, err)
			return
		}

		report(m, "get_order", start, nil)
		responses.WriteSuccess(w, map[string]any{"order": order})
	}
}
