package recipes

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiranalabs/kirana-voice-backend/internal/cart"
	"github.com/kiranalabs/kirana-voice-backend/internal/catalog"
	pkgerrors "github.com/kiranalabs/kirana-voice-backend/pkg/errors"
)

func fixtureIndex(t *testing.T) *catalog.Index {
	t.Helper()
	idx, err := catalog.BuildIndex([]catalog.Item{
		{ID: "pasta_500g", Name: "Pasta (500g)", UnitPrice: decimal.NewFromFloat(90.0)},
		{ID: "pasta_sauce_400g", Name: "Pasta Sauce (400g)", UnitPrice: decimal.NewFromFloat(145.0)},
		{ID: "butter_200g", Name: "Butter (200g)", UnitPrice: decimal.NewFromFloat(120.0)},
		{ID: "bread_wholewheat", Name: "Whole Wheat Bread", UnitPrice: decimal.NewFromFloat(55.0)},
	})
	require.NoError(t, err)
	return idx
}

func fixtureRecipes() catalog.Recipes {
	return catalog.NewRecipes(
		[]string{"pasta for two", "toast and butter"},
		map[string][]catalog.RecipeLine{
			"pasta for two": {
				{ItemID: "pasta_500g", Quantity: 1},
				{ItemID: "pasta_sauce_400g", Quantity: 1},
				{ItemID: "butter_200g", Quantity: 1},
			},
			"toast and butter": {
				{ItemID: "bread_wholewheat", Quantity: 1},
				{ItemID: "butter_200g", Quantity: 1},
			},
		},
	)
}

func TestExpandExactMatchAddsLinesInOrder(t *testing.T) {
	c := cart.New()

	lines, err := Expand("Pasta For Two", fixtureRecipes(), c, fixtureIndex(t))
	require.NoError(t, err)

	require.Len(t, lines, 3)
	assert.Equal(t, "pasta_500g", lines[0].ItemID)
	assert.Equal(t, "pasta_sauce_400g", lines[1].ItemID)
	assert.Equal(t, "butter_200g", lines[2].ItemID)
	for _, line := range lines {
		assert.Equal(t, 1, line.Quantity)
	}
	assert.Equal(t, 3, c.Len())
}

func TestExpandSubstringMatchesLongerKey(t *testing.T) {
	c := cart.New()

	lines, err := Expand("pasta", fixtureRecipes(), c, fixtureIndex(t))
	require.NoError(t, err)
	require.Len(t, lines, 3)

	// the reverse direction must not match
	_, err = Expand("pasta for two with extra garlic", fixtureRecipes(), cart.New(), fixtureIndex(t))
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound))
}

func TestExpandSubstringFirstKeyInFileOrderWins(t *testing.T) {
	recipes := catalog.NewRecipes(
		[]string{"butter chicken night", "toast and butter"},
		map[string][]catalog.RecipeLine{
			"butter chicken night": {{ItemID: "butter_200g", Quantity: 2}},
			"toast and butter":     {{ItemID: "bread_wholewheat", Quantity: 1}},
		},
	)

	c := cart.New()
	lines, err := Expand("butter", recipes, c, fixtureIndex(t))
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "butter_200g", lines[0].ItemID)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestExpandMergesWithExistingCartLines(t *testing.T) {
	idx := fixtureIndex(t)
	c := cart.New()
	butter, _ := idx.ByID("butter_200g")
	_, err := c.Add(butter, 1, "")
	require.NoError(t, err)

	lines, err := Expand("pasta for two", fixtureRecipes(), c, idx)
	require.NoError(t, err)

	assert.Equal(t, 3, c.Len())
	assert.Equal(t, 2, lines[2].Quantity, "butter line should merge to quantity 2")
}

func TestExpandUnknownItemAbortsWithoutRollback(t *testing.T) {
	recipes := catalog.NewRecipes(
		[]string{"broken dinner"},
		map[string][]catalog.RecipeLine{
			"broken dinner": {
				{ItemID: "pasta_500g", Quantity: 1},
				{ItemID: "ghost_item", Quantity: 1},
				{ItemID: "butter_200g", Quantity: 1},
			},
		},
	)

	c := cart.New()
	added, err := Expand("broken dinner", recipes, c, fixtureIndex(t))
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeUnknownRecipeItem))

	// the line added before the failure stays; the one after is never added
	require.Len(t, added, 1)
	assert.Equal(t, "pasta_500g", added[0].ItemID)
	assert.Equal(t, 1, c.Len())
}

func TestExpandUnknownRecipeName(t *testing.T) {
	_, err := Expand("biryani", fixtureRecipes(), cart.New(), fixtureIndex(t))
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound))

	_, err = Expand("  ", fixtureRecipes(), cart.New(), fixtureIndex(t))
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound))
}
