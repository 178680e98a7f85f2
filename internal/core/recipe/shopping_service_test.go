package recipe

import (
	"testing"

	"meadery-assistant/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildList(t *testing.T) {
	svc := NewShoppingService()

	t.Run("covered shortfall and missing", func(t *testing.T) {
		markdown := "```json\n" + `[
			{"ingredient":"Honey","quantity":3,"unit":"kg"},
			{"ingredient":"Orange","quantity":4,"unit":"items"},
			{"ingredient":"Acid Blend","quantity":5,"unit":"g"}
		]` + "\n```"
		inv := []common.InventoryItem{
			{ID: "h", Name: "Orange Blossom Honey", Qty: 5, Unit: "kg", Price: 40},
			{ID: "o", Name: "Orange", Qty: 2, Unit: "items", Price: 1},
		}

		list := svc.BuildList(markdown, inv)
		require.Len(t, list.Items, 3)
		assert.Empty(t, list.Warnings)

		honey := list.Items[0]
		assert.True(t, honey.Covered)
		assert.Equal(t, 3000.0, honey.RequiredQty)
		assert.Equal(t, "g", honey.RequiredUnit)
		assert.Equal(t, 5000.0, honey.InStockQty)
		assert.Zero(t, honey.ShortfallQty)

		orange := list.Items[1]
		assert.False(t, orange.Covered)
		assert.Equal(t, 2.0, orange.ShortfallQty)

		acid := list.Items[2]
		assert.False(t, acid.Covered)
		assert.Equal(t, 5.0, acid.ShortfallQty)
		assert.Zero(t, acid.InStockQty)
	})

	t.Run("ambiguous fuzzy match is flagged", func(t *testing.T) {
		markdown := `[{"ingredient":"Oak","quantity":30,"unit":"g"}]`
		inv := []common.InventoryItem{
			{ID: "a", Name: "Oak Cubes", Qty: 100, Unit: "g"},
			{ID: "b", Name: "Oak-aged Rum Barrel Chips", Qty: 200, Unit: "g"},
		}

		list := svc.BuildList(markdown, inv)
		require.Len(t, list.Items, 1)
		require.Len(t, list.Warnings, 1)
		assert.Contains(t, list.Warnings[0], "'Oak': multiple inventory items match")
		assert.Contains(t, list.Warnings[0], "Oak Cubes")
		// The first candidate still drives the coverage math.
		assert.True(t, list.Items[0].Covered)
	})

	t.Run("unit mismatch goes to the buy list with a warning", func(t *testing.T) {
		markdown := `[{"ingredient":"Spring Water","quantity":10,"unit":"l"}]`
		inv := []common.InventoryItem{
			{ID: "w", Name: "Spring Water", Qty: 2, Unit: "items"},
		}

		list := svc.BuildList(markdown, inv)
		require.Len(t, list.Items, 1)
		assert.False(t, list.Items[0].Covered)
		assert.Equal(t, 10000.0, list.Items[0].ShortfallQty)
		require.Len(t, list.Warnings, 1)
		assert.Equal(t, "'Spring Water': Mismatch (Recipe: ml, Stock: items)", list.Warnings[0])
	})

	t.Run("no ingredients renders an empty but usable list", func(t *testing.T) {
		list := svc.BuildList("plain notes, no json", nil)
		assert.Empty(t, list.Items)
		assert.Empty(t, list.Warnings)
	})
}
