// Package catalog owns the read-only item catalog: the file loader, the
// lookup index and free-text item resolution.
package catalog

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kiranalabs/kirana-voice-backend/pkg/storage/jsonfile"
)

// Item is one purchasable catalog entry. Immutable after load.
type Item struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Unit      string          `json:"unit"`
	Tags      []string        `json:"tags,omitempty"`
}

// RecipeLine is one (item, quantity) pair inside a named recipe.
type RecipeLine struct {
	ItemID   string `json:"id"`
	Quantity int    `json:"qty"`
}

// Meta carries display metadata from the catalog file. The engine never
// reads it; it is kept so the file round-trips through the seeder.
type Meta struct {
	StoreName string `json:"store_name,omitempty"`
	Currency  string `json:"currency,omitempty"`
	Locale    string `json:"locale,omitempty"`
}

// Catalog is the decoded catalog file.
type Catalog struct {
	Meta    Meta    `json:"meta"`
	Items   []Item  `json:"items"`
	Recipes Recipes `json:"recipes"`
}

// Recipes is a name-keyed recipe collection that preserves the key order of
// the catalog file. Order matters: substring matching scans keys in file
// order and the first hit wins.
type Recipes struct {
	names  []string
	byName map[string][]RecipeLine
}

// NewRecipes builds a recipe collection from ordered (name, lines) pairs.
func NewRecipes(names []string, byName map[string][]RecipeLine) Recipes {
	return Recipes{names: names, byName: byName}
}

// Names returns the recipe names in file order.
func (r Recipes) Names() []string {
	return r.names
}

// Get returns the lines for an exact (already normalized) recipe name.
func (r Recipes) Get(name string) ([]RecipeLine, bool) {
	lines, ok := r.byName[name]
	return lines, ok
}

// Len returns the number of recipes.
func (r Recipes) Len() int {
	return len(r.names)
}

// UnmarshalJSON decodes a JSON object while recording key order, which
// encoding/json's map decoding would discard.
func (r *Recipes) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(strings.NewReader(string(data)))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("recipes: expected JSON object")
	}

	r.names = nil
	r.byName = make(map[string][]RecipeLine)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("recipes: expected string key")
		}

		var lines []RecipeLine
		if err := dec.Decode(&lines); err != nil {
			return fmt.Errorf("recipes: decoding %q: %w", key, err)
		}

		normalized := strings.ToLower(strings.TrimSpace(key))
		if _, seen := r.byName[normalized]; !seen {
			r.names = append(r.names, normalized)
		}
		r.byName[normalized] = lines
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// MarshalJSON writes the recipes back out in file order.
func (r Recipes) MarshalJSON() ([]byte, error) {
	var buf strings.Builder
	buf.WriteByte('{')
	for i, name := range r.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(r.byName[name])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return []byte(buf.String()), nil
}

// Load reads and decodes the catalog file at path.
func Load(path string) (*Catalog, error) {
	var cat Catalog
	if err := jsonfile.Read(path, &cat); err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return &cat, nil
}
