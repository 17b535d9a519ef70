package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/kiranalabs/kirana-voice-backend/pkg/errors"
)

func TestResolveByIDForEveryItem(t *testing.T) {
	idx := buildFixtureIndex(t)
	for _, item := range fixtureItems() {
		got, err := idx.Resolve(item.ID)
		require.NoError(t, err)
		assert.Equal(t, item.ID, got.ID)
	}
}

func TestResolveByExactNameForEveryItem(t *testing.T) {
	idx := buildFixtureIndex(t)
	for _, item := range fixtureItems() {
		got, err := idx.Resolve(strings.ToLower(item.Name))
		require.NoError(t, err)
		assert.Equal(t, item.ID, got.ID)
	}
}

func TestResolveTrimsAndLowercases(t *testing.T) {
	idx := buildFixtureIndex(t)
	got, err := idx.Resolve("  WHOLE WHEAT BREAD  ")
	require.NoError(t, err)
	assert.Equal(t, "bread_wholewheat", got.ID)
}

func TestResolveByToken(t *testing.T) {
	idx := buildFixtureIndex(t)

	got, err := idx.Resolve("bread")
	require.NoError(t, err)
	assert.Equal(t, "bread_wholewheat", got.ID)

	// ambiguous token resolves to the first item in catalog order
	got, err = idx.Resolve("pasta")
	require.NoError(t, err)
	assert.Equal(t, "pasta_500g", got.ID)
}

func TestResolveFirstMatchingQueryTokenWins(t *testing.T) {
	idx := buildFixtureIndex(t)

	// "fresh" is not indexed, "butter" is; the second token carries the match
	got, err := idx.Resolve("fresh butter")
	require.NoError(t, err)
	assert.Equal(t, "butter_200g", got.ID)
}

func TestResolveSubstringFallback(t *testing.T) {
	idx := buildFixtureIndex(t)

	// neither "eat" nor "bre" survives tokenization as an indexed token,
	// but the raw query is a substring of "Whole Wheat Bread"
	got, err := idx.Resolve("eat bre")
	require.NoError(t, err)
	assert.Equal(t, "bread_wholewheat", got.ID)
}

func TestResolveNotFound(t *testing.T) {
	idx := buildFixtureIndex(t)

	_, err := idx.Resolve("quinoa")
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound))

	_, err = idx.Resolve("   ")
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound))
}
