package controllers

import (
	"net/http"
	"time"

	"github.com/kiranalabs/kirana-voice-backend/api/responses"
	"github.com/kiranalabs/kirana-voice-backend/api/validators"
	"github.com/kiranalabs/kirana-voice-backend/internal/catalog"
	"github.com/kiranalabs/kirana-voice-backend/pkg/logger"
	"github.com/kiranalabs/kirana-voice-backend/pkg/metrics"
)

type resolveItemPayload struct {
	Query string `json:"query" validate:"required"`
}

// CatalogList returns catalog items filtered by the optional category, tag
// and max_price query parameters.
func CatalogList(index *catalog.Index, m *metrics.ToolMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := logg.WithTool(r.Context(), "list_catalog")
		start := time.Now()

		maxPrice, err := validators.ParseQueryDecimal(r, "max_price")
		if err != nil {
			report(m, "list_catalog", start, err)
			responses.WriteError(ctx, logg, w, err)
			return
		}

		items := index.List(catalog.ListFilters{
			Category: r.URL.Query().Get("category"),
			Tag:      r.URL.Query().Get("tag"),
			MaxPrice: maxPrice,
		})

		report(m, "list_catalog", start, nil)
		responses.WriteSuccess(w, map[string]any{
			"items": items,
			"count": len(items),
		})
	}
}

// CatalogResolve maps a free-text item query to a single catalog item.
func CatalogResolve(index *catalog.Index, m *metrics.ToolMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := logg.WithTool(r.Context(), "resolve_item")
		start := time.Now()

		var payload resolveItemPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			report(m, "resolve_item", start, err)
			responses.WriteError(ctx, logg, w, err)
			return
		}

		item, err := index.Resolve(payload.Query)
		if err != nil {
			report(m, "resolve_item", start, err)
			responses.WriteError(ctx, logg, w, err)
			return
		}

		report(m, "resolve_item", start, nil)
		responses.WriteSuccess(w, map[string]any{"item": item})
	}
}

// CatalogRecipes returns the recipe book in catalog-file order.
func CatalogRecipes(recipeBook catalog.Recipes, m *metrics.ToolMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		report(m, "list_recipes", start, nil)
		responses.WriteSuccess(w, map[string]any{
			"recipes": recipeBook,
			"count":   recipeBook.Len(),
		})
	}
}
