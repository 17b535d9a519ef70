// Package recipes expands a named recipe into cart lines.
package recipes

import (
	"strings"

	"github.com/kiranalabs/kirana-voice-backend/internal/cart"
	"github.com/kiranalabs/kirana-voice-backend/internal/catalog"
	pkgerrors "github.com/kiranalabs/kirana-voice-backend/pkg/errors"
)

// Expand resolves a recipe name and feeds its (item, quantity) pairs through
// the cart in listed order, returning the resulting or updated lines in
// processing order.
//
// Name matching: exact match on the normalized name first, then the first
// recipe key (in catalog-file order) that contains the query as a substring.
// The direction matters: "pasta" matches "pasta for two", not the other way
// around.
//
// A recipe line referencing an unknown catalog item aborts the remaining
// expansion. Lines added before the failure stay in the cart; there is no
// rollback.
func Expand(name string, recipes catalog.Recipes, c *cart.Cart, index *catalog.Index) ([]cart.Line, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "empty recipe name")
	}

	lines, ok := recipes.Get(normalized)
	if !ok {
		for _, key := range recipes.Names() {
			if strings.Contains(key, normalized) {
				lines, ok = recipes.Get(key)
				break
			}
		}
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no recipe matches name").
			WithDetails(map[string]any{"name": name})
	}

	var added []cart.Line
	for _, recipeLine := range lines {
		item, found := index.ByID(recipeLine.ItemID)
		if !found {
			return added, pkgerrors.New(pkgerrors.CodeUnknownRecipeItem, "recipe references an unknown catalog item").
				WithDetails(map[string]any{"item_id": recipeLine.ItemID, "recipe": name})
		}
		line, err := c.Add(item, recipeLine.Quantity, "")
		if err != nil {
			return added, err
		}
		added = append(added, line)
	}

	return added, nil
}
