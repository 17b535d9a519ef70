package catalog

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiranalabs/kirana-voice-backend/pkg/storage/jsonfile"
)

const recipesJSON = `{
  "pasta for two": [
    {"id": "pasta_500g", "qty": 1},
    {"id": "pasta_sauce_400g", "qty": 1},
    {"id": "butter_200g", "qty": 1}
  ],
  "breakfast basics": [
    {"id": "bread_wholewheat", "qty": 1},
    {"id": "milk_1l", "qty": 1},
    {"id": "eggs_12", "qty": 1}
  ]
}`

func TestRecipesUnmarshalPreservesOrder(t *testing.T) {
	var recipes Recipes
	require.NoError(t, json.Unmarshal([]byte(recipesJSON), &recipes))

	assert.Equal(t, []string{"pasta for two", "breakfast basics"}, recipes.Names())

	lines, ok := recipes.Get("pasta for two")
	require.True(t, ok)
	require.Len(t, lines, 3)
	assert.Equal(t, "pasta_500g", lines[0].ItemID)
	assert.Equal(t, "pasta_sauce_400g", lines[1].ItemID)
	assert.Equal(t, "butter_200g", lines[2].ItemID)
}

func TestRecipesKeysNormalizedOnDecode(t *testing.T) {
	var recipes Recipes
	require.NoError(t, json.Unmarshal([]byte(`{"  Pasta For Two  ": []}`), &recipes))

	_, ok := recipes.Get("pasta for two")
	assert.True(t, ok)
}

func TestRecipesMarshalRoundTrip(t *testing.T) {
	var recipes Recipes
	require.NoError(t, json.Unmarshal([]byte(recipesJSON), &recipes))

	data, err := json.Marshal(recipes)
	require.NoError(t, err)

	var again Recipes
	require.NoError(t, json.Unmarshal(data, &again))
	assert.Equal(t, recipes.Names(), again.Names())
}

func TestLoadCatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	cat := Catalog{
		Meta:  Meta{StoreName: "Kirana Corner", Currency: "INR"},
		Items: fixtureItems(),
	}
	require.NoError(t, json.Unmarshal([]byte(recipesJSON), &cat.Recipes))
	require.NoError(t, jsonfile.Write(path, cat))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Kirana Corner", loaded.Meta.StoreName)
	assert.Len(t, loaded.Items, len(fixtureItems()))
	assert.Equal(t, 2, loaded.Recipes.Len())
	assert.True(t, loaded.Items[0].UnitPrice.Equal(fixtureItems()[0].UnitPrice))

	_, err = Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}
