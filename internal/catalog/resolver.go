package catalog

import (
	"strings"

	pkgerrors "github.com/kiranalabs/kirana-voice-backend/pkg/errors"
)

// Resolve maps a free-text query to a catalog item. The fallback chain is
// fixed, first match wins:
//
//  1. exact id
//  2. exact (lowercased, trimmed) name
//  3. first candidate of the first query token present in the token index
//  4. first item whose name contains the query as a substring
//
// Precise matches beat guesses; ambiguous short tokens resolve to the first
// item in catalog order rather than by relevance ranking, which is fine for
// small hand-curated catalogs.
func (idx *Index) Resolve(query string) (Item, error) {
	normalized := strings.ToLower(strings.TrimSpace(query))
	if normalized == "" {
		return Item{}, pkgerrors.New(pkgerrors.CodeNotFound, "empty item query")
	}

	if item, ok := idx.byID[normalized]; ok {
		return item, nil
	}

	if item, ok := idx.byName[normalized]; ok {
		return item, nil
	}

	for _, token := range Tokenize(normalized) {
		if candidates, ok := idx.byToken[token]; ok && len(candidates) > 0 {
			return idx.byID[candidates[0]], nil
		}
	}

	for _, item := range idx.items {
		if strings.Contains(strings.ToLower(item.Name), normalized) {
			return item, nil
		}
	}

	return Item{}, pkgerrors.New(pkgerrors.CodeNotFound, "no catalog item matches query").
		WithDetails(map[string]any{"query": query})
}
