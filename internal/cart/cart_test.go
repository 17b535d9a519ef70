package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiranalabs/kirana-voice-backend/internal/catalog"
	pkgerrors "github.com/kiranalabs/kirana-voice-backend/pkg/errors"
)

func breadItem() catalog.Item {
	return catalog.Item{
		ID:        "bread_wholewheat",
		Name:      "Whole Wheat Bread",
		UnitPrice: decimal.NewFromFloat(55.0),
	}
}

func milkItem() catalog.Item {
	return catalog.Item{
		ID:        "milk_1l",
		Name:      "Milk, Full Cream (1L)",
		UnitPrice: decimal.NewFromFloat(68.0),
	}
}

func TestAddCreatesLineWithSnapshot(t *testing.T) {
	c := New()

	line, err := c.Add(breadItem(), 2, "")
	require.NoError(t, err)

	assert.Equal(t, "bread_wholewheat", line.ItemID)
	assert.Equal(t, "Whole Wheat Bread", line.Name)
	assert.Equal(t, 2, line.Quantity)
	assert.True(t, line.Subtotal.Equal(decimal.NewFromFloat(110.0)), "subtotal %s", line.Subtotal)
	assert.Equal(t, 1, c.Len())
}

func TestAddSameItemMergesQuantity(t *testing.T) {
	c := New()

	_, err := c.Add(breadItem(), 2, "")
	require.NoError(t, err)
	line, err := c.Add(breadItem(), 3, "")
	require.NoError(t, err)

	assert.Equal(t, 5, line.Quantity)
	assert.True(t, line.Subtotal.Equal(decimal.NewFromFloat(275.0)))
	assert.Equal(t, 1, c.Len(), "merge must not create a second line")
}

func TestAddRejectsInvalidQuantity(t *testing.T) {
	c := New()

	_, err := c.Add(breadItem(), 0, "")
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeInvalidQuantity))
	assert.Equal(t, 0, c.Len())
}

func TestLinesKeepInsertionOrder(t *testing.T) {
	c := New()

	_, err := c.Add(milkItem(), 1, "")
	require.NoError(t, err)
	_, err = c.Add(breadItem(), 1, "")
	require.NoError(t, err)
	_, err = c.Add(milkItem(), 1, "")
	require.NoError(t, err)

	require.Equal(t, 2, c.Len())
	assert.Equal(t, "milk_1l", c.Lines[0].ItemID)
	assert.Equal(t, "bread_wholewheat", c.Lines[1].ItemID)
}

func TestRemoveIsIdempotent(t *testing.T) {
	c := New()
	_, err := c.Add(breadItem(), 1, "")
	require.NoError(t, err)

	assert.True(t, c.Remove("bread_wholewheat"))
	assert.False(t, c.Remove("bread_wholewheat"))
	assert.Equal(t, 0, c.Len())

	assert.False(t, c.Remove("never_added"), "absent id leaves cart unchanged")
}

func TestSetQuantity(t *testing.T) {
	c := New()
	_, err := c.Add(breadItem(), 1, "")
	require.NoError(t, err)

	line, err := c.SetQuantity("bread_wholewheat", 4)
	require.NoError(t, err)
	assert.Equal(t, 4, line.Quantity)
	assert.True(t, line.Subtotal.Equal(decimal.NewFromFloat(220.0)))

	_, err = c.SetQuantity("bread_wholewheat", 0)
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeInvalidQuantity))

	_, err = c.SetQuantity("milk_1l", 2)
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeLineNotFound))
}

func TestTotalSumsRoundedSubtotals(t *testing.T) {
	c := New()
	_, err := c.Add(breadItem(), 2, "")
	require.NoError(t, err)
	_, err = c.Add(milkItem(), 1, "")
	require.NoError(t, err)

	assert.True(t, c.Total().Equal(decimal.NewFromFloat(178.0)), "total %s", c.Total())

	c.Remove("milk_1l")
	assert.True(t, c.Total().Equal(decimal.NewFromFloat(110.0)))

	_, err = c.SetQuantity("bread_wholewheat", 1)
	require.NoError(t, err)
	assert.True(t, c.Total().Equal(decimal.NewFromFloat(55.0)))
}

func TestMonetaryRoundingHalfAwayFromZero(t *testing.T) {
	c := New()
	item := catalog.Item{ID: "loose_tea", Name: "Loose Tea", UnitPrice: decimal.RequireFromString("0.335")}

	line, err := c.Add(item, 3, "")
	require.NoError(t, err)

	// 0.335 * 3 = 1.005, which rounds half away from zero to 1.01
	assert.Equal(t, "1.01", line.Subtotal.StringFixed(2))
	assert.Equal(t, "1.01", c.Total().StringFixed(2))
}

func TestEmptyCartTotalIsZero(t *testing.T) {
	c := New()
	assert.True(t, c.Total().IsZero())
}

func TestClear(t *testing.T) {
	c := New()
	_, err := c.Add(breadItem(), 1, "")
	require.NoError(t, err)
	c.Clear()
	assert.Equal(t, 0, c.Len())
	assert.True(t, c.Total().IsZero())
}
