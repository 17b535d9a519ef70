package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/kiranalabs/kirana-voice-backend/api/responses"
	"github.com/kiranalabs/kirana-voice-backend/api/validators"
	"github.com/kiranalabs/kirana-voice-backend/internal/cart"
	"github.com/kiranalabs/kirana-voice-backend/internal/catalog"
	"github.com/kiranalabs/kirana-voice-backend/internal/recipes"
	"github.com/kiranalabs/kirana-voice-backend/internal/session"
	pkgerrors "github.com/kiranalabs/kirana-voice-backend/pkg/errors"
	"github.com/kiranalabs/kirana-voice-backend/pkg/logger"
	"github.com/kiranalabs/kirana-voice-backend/pkg/metrics"
)

type addItemPayload struct {
	Query string `json:"query" validate:"required"`
	// nil means unspecified and defaults to 1; explicit zero or negative
	// values surface as INVALID_QUANTITY
	Quantity *int   `json:"quantity"`
	Notes    string `json:"notes"`
}

type updateItemPayload struct {
	Quantity int `json:"quantity"`
}

type addRecipePayload struct {
	Name string `json:"name" validate:"required"`
}

type cartView struct {
	Lines []cart.Line     `json:"lines"`
	Total decimal.Decimal `json:"total"`
}

func viewOf(c *cart.Cart) cartView {
	lines := make([]cart.Line, len(c.Lines))
	copy(lines, c.Lines)
	return cartView{Lines: lines, Total: c.Total()}
}

// CartFetch returns the session's cart.
func CartFetch(sessions *session.Manager, m *metrics.ToolMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := logg.WithTool(r.Context(), "get_cart")
		start := time.Now()

		sessionID, err := sessionIDParam(r)
		if err != nil {
			report(m, "get_cart", start, err)
			responses.WriteError(ctx, logg, w, err)
			return
		}
		ctx = logg.WithSessionID(ctx, sessionID)

		var view cartView
		err = sessions.WithCart(ctx, sessionID, func(c *cart.Cart) error {
			view = viewOf(c)
			return nil
		})
		if err != nil {
			report(m, "get_cart", start, err)
			responses.WriteError(ctx, logg, w, err)
			return
		}

		report(m, "get_cart", start, nil)
		responses.WriteSuccess(w, map[string]any{"cart": view})
	}
}

// CartAddItem resolves a free-text item query and adds it to the session's
// cart, merging with an existing line for the same item.
func CartAddItem(sessions *session.Manager, index *catalog.Index, m *metrics.ToolMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := logg.WithTool(r.Context(), "add_item")
		start := time.Now()

		sessionID, err := sessionIDParam(r)
		if err != nil {
			report(m, "add_item", start, err)
			responses.WriteError(ctx, logg, w, err)
			return
		}
		ctx = logg.WithSessionID(ctx, sessionID)

		var payload addItemPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			report(m, "add_item", start, err)
			responses.WriteError(ctx, logg, w, err)
			return
		}

		quantity := 1
		if payload.Quantity != nil {
			quantity = *payload.Quantity
		}

		var line cart.Line
		var view cartView
		err = sessions.WithCart(ctx, sessionID, func(c *cart.Cart) error {
			item, err := index.Resolve(payload.Query)
			if err != nil {
				return err
			}
			line, err = c.Add(item, quantity, payload.Notes)
			if err != nil {
				return err
			}
			view = viewOf(c)
			return nil
		})
		if err != nil {
			report(m, "add_item", start, err)
			responses.WriteError(ctx, logg, w, err)
			return
		}

		report(m, "add_item", start, nil)
		responses.WriteSuccess(w, map[string]any{"line": line, "cart": view})
	}
}

// CartUpdateItem replaces the quantity of an existing cart line.
func CartUpdateItem(sessions *session.Manager, m *metrics.ToolMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := logg.WithTool(r.Context(), "update_item")
		start := time.Now()

		sessionID, err := sessionIDParam(r)
		if err != nil {
			report(m, "update_item", start, err)
			responses.WriteError(ctx, logg, w, err)
			return
		}
		ctx = logg.WithSessionID(ctx, sessionID)

		itemID, err := itemIDParam(r)
		if err != nil {
			report(m, "update_item", start, err)
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload updateItemPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			report(m, "update_item", start, err)
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var line cart.Line
		var view cartView
		err = sessions.WithCart(ctx, sessionID, func(c *cart.Cart) error {
			var err error
			line, err = c.SetQuantity(itemID, payload.Quantity)
			if err != nil {
				return err
			}
			view = viewOf(c)
			return nil
		})
		if err != nil {
			report(m, "update_item", start, err)
			responses.WriteError(ctx, logg, w, err)
			return
		}

		report(m, "update_item", start, nil)
		responses.WriteSuccess(w, map[string]any{"line": line, "cart": view})
	}
}

// CartRemoveItem removes a cart line. Removing an absent line succeeds with
// removed=false.
func CartRemoveItem(sessions *session.Manager, m *metrics.ToolMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := logg.WithTool(r.Context(), "remove_item")
		start := time.Now()

		sessionID, err := sessionIDParam(r)
		if err != nil {
			report(m, "remove_item", start, err)
			responses.WriteError(ctx, logg, w, err)
			return
		}
		ctx = logg.WithSessionID(ctx, sessionID)

		itemID, err := itemIDParam(r)
		if err != nil {
			report(m, "remove_item", start, err)
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var removed bool
		var view cartView
		err = sessions.WithCart(ctx, sessionID, func(c *cart.Cart) error {
			removed = c.Remove(itemID)
			view = viewOf(c)
			return nil
		})
		if err != nil {
			report(m, "remove_item", start, err)
			responses.WriteError(ctx, logg, w, err)
			return
		}

		report(m, "remove_item", start, nil)
		responses.WriteSuccess(w, map[string]any{"removed": removed, "cart": view})
	}
}

// CartAddRecipe expands a named recipe into the cart. Lines added before a
// failing recipe line stay in the cart; the failure is still reported.
func CartAddRecipe(sessions *session.Manager, recipeBook catalog.Recipes, index *catalog.Index, m *metrics.ToolMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := logg.WithTool(r.Context(), "add_recipe")
		start := time.Now()

		sessionID, err := sessionIDParam(r)
		if err != nil {
			report(m, "add_recipe", start, err)
			responses.WriteError(ctx, logg, w, err)
			return
		}
		ctx = logg.WithSessionID(ctx, sessionID)

		var payload addRecipePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			report(m, "add_recipe", start, err)
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var added []cart.Line
		var view cartView
		var expandErr error
		err = sessions.WithCart(ctx, sessionID, func(c *cart.Cart) error {
			// partial adds are kept, so the cart is snapshotted even when
			// the expansion aborts midway
			added, expandErr = recipes.Expand(payload.Name, recipeBook, c, index)
			view = viewOf(c)
			return nil
		})
		if err != nil {
			report(m, "add_recipe", start, err)
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if expandErr != nil {
			report(m, "add_recipe", start, expandErr)
			responses.WriteError(ctx, logg, w, expandErr)
			return
		}

		report(m, "add_recipe", start, nil)
		responses.WriteSuccess(w, map[string]any{"added": added, "cart": view})
	}
}

func itemIDParam(r *http.Request) (string, error) {
	itemID := strings.TrimSpace(chi.URLParam(r, "itemID"))
	if itemID == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}
	return itemID, nil
}
