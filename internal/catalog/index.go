package catalog

import (
	"regexp"
	"strings"

	pkgerrors "github.com/kiranalabs/kirana-voice-backend/pkg/errors"
)

// tokenSplit matches the separator runs used for both indexing and query
// tokenization: whitespace, commas and parentheses.
var tokenSplit = regexp.MustCompile(`[\s,()]+`)

// minTokenLen drops short, noisy tokens like units ("kg") and stopwords.
const minTokenLen = 3

// Index is a read-only lookup view over an ordered item sequence.
//
// Invariant: every item id appearing in byName or byToken exists in byID.
type Index struct {
	items   []Item
	byID    map[string]Item
	byName  map[string]Item
	byToken map[string][]string
}

// BuildIndex derives the lookup structures from the items in catalog order.
// A duplicate item id is a data error and fails the build; a duplicate name
// silently overwrites (source catalogs have unique names).
func BuildIndex(items []Item) (*Index, error) {
	idx := &Index{
		items:   items,
		byID:    make(map[string]Item, len(items)),
		byName:  make(map[string]Item, len(items)),
		byToken: make(map[string][]string),
	}

	for _, item := range items {
		if _, exists := idx.byID[item.ID]; exists {
			return nil, pkgerrors.New(pkgerrors.CodeDuplicateItemID, "duplicate catalog item id").
				WithDetails(map[string]any{"item_id": item.ID})
		}
		idx.byID[item.ID] = item

		name := strings.ToLower(strings.TrimSpace(item.Name))
		idx.byName[name] = item

		for _, token := range Tokenize(item.Name) {
			idx.byToken[token] = append(idx.byToken[token], item.ID)
		}
	}

	return idx, nil
}

// Tokenize splits a lowercased string on whitespace/comma/parenthesis runs
// and discards tokens shorter than three characters.
func Tokenize(value string) []string {
	var tokens []string
	for _, token := range tokenSplit.Split(strings.ToLower(value), -1) {
		if len(token) < minTokenLen {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// Items returns the indexed items in catalog order.
func (idx *Index) Items() []Item {
	return idx.items
}

// ByID looks up an item by exact id.
func (idx *Index) ByID(id string) (Item, bool) {
	item, ok := idx.byID[id]
	return item, ok
}

// Len returns the number of indexed items.
func (idx *Index) Len() int {
	return len(idx.items)
}
