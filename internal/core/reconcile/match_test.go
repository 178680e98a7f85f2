package reconcile

import (
	"testing"

	"meadery-assistant/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testInventory() []common.InventoryItem {
	return []common.InventoryItem{
		{ID: "a", Name: "Orange Blossom Honey", Category: common.CategoryHoney, Qty: 5000, Unit: "g", Price: 40},
		{ID: "b", Name: "Oak", Category: common.CategoryAdjunct, Qty: 100, Unit: "g", Price: 5},
		{ID: "c", Name: "Oak-aged Rum Barrel Chips", Category: common.CategoryAdjunct, Qty: 200, Unit: "g", Price: 12},
		{ID: "d", Name: "Fermaid-O", Category: common.CategoryNutrient, Qty: 4, Unit: "packet", Price: 8},
	}
}

func TestStrictMatch(t *testing.T) {
	inv := testInventory()

	t.Run("case insensitive equality", func(t *testing.T) {
		item := StrictMatch("fermaid-o", inv)
		require.NotNil(t, item)
		assert.Equal(t, "d", item.ID)
	})

	t.Run("whitespace trimmed", func(t *testing.T) {
		item := StrictMatch("  Oak  ", inv)
		require.NotNil(t, item)
		assert.Equal(t, "b", item.ID)
	})

	t.Run("substring is not enough", func(t *testing.T) {
		assert.Nil(t, StrictMatch("Honey", inv))
	})

	t.Run("empty name never matches", func(t *testing.T) {
		assert.Nil(t, StrictMatch("", inv))
	})
}

func TestFuzzyMatches(t *testing.T) {
	inv := testInventory()

	t.Run("substring containment either direction", func(t *testing.T) {
		matches := FuzzyMatches("honey", inv)
		require.Len(t, matches, 1)
		assert.Equal(t, "a", matches[0].ID)

		// Requirement name longer than the stock name.
		matches = FuzzyMatches("Wildflower Oak", inv)
		require.Len(t, matches, 1)
		assert.Equal(t, "b", matches[0].ID)
	})

	t.Run("short names surface every candidate", func(t *testing.T) {
		// "Oak" hits both the chips and the plain cubes; the caller has to
		// warn about the ambiguity instead of silently taking the first.
		matches := FuzzyMatches("Oak", inv)
		assert.Len(t, matches, 2)
	})

	t.Run("no match returns nil", func(t *testing.T) {
		assert.Empty(t, FuzzyMatches("Acid Blend", inv))
		assert.Empty(t, FuzzyMatches("", inv))
	})
}
