package reconcile

import (
	"fmt"
	"testing"

	"meadery-assistant/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateCost(t *testing.T) {
	t.Run("matched ingredient priced by unit cost", func(t *testing.T) {
		markdown := "```json\n" + `[{"ingredient":"Honey","quantity":3,"unit":"kg"}]` + "\n```"
		inv := []common.InventoryItem{
			{ID: "h", Name: "Honey", Qty: 5000, Unit: "g", Price: 25},
		}

		result := CalculateCost(markdown, inv, 10)
		assert.InDelta(t, 15.0, result.Cost, 1e-9) // 3000g * (25/5000)
		assert.Empty(t, result.Warnings)
	})

	t.Run("small dose against packets charges one packet", func(t *testing.T) {
		markdown := `[{"ingredient":"Fermaid-O","quantity":10,"unit":"g"}]`
		inv := []common.InventoryItem{
			{ID: "f", Name: "Fermaid-O", Qty: 4, Unit: "packet", Price: 8},
		}

		result := CalculateCost(markdown, inv, 5)
		assert.InDelta(t, 2.0, result.Cost, 1e-9) // 8 / 4
		assert.Empty(t, result.Warnings)
	})

	t.Run("packet rule boundary is inclusive at 15g", func(t *testing.T) {
		inv := []common.InventoryItem{
			{ID: "f", Name: "Fermaid-O", Qty: 4, Unit: "packet", Price: 8},
		}

		atBoundary := CalculateCost(`[{"ingredient":"Fermaid-O","quantity":15,"unit":"g"}]`, inv, 5)
		assert.InDelta(t, 2.0, atBoundary.Cost, 1e-9)
		assert.Empty(t, atBoundary.Warnings)

		aboveBoundary := CalculateCost(`[{"ingredient":"Fermaid-O","quantity":15.01,"unit":"g"}]`, inv, 5)
		assert.Zero(t, aboveBoundary.Cost)
		require.Len(t, aboveBoundary.Warnings, 1)
		assert.Equal(t, "'Fermaid-O': Mismatch (Recipe: g, Stock: packets)", aboveBoundary.Warnings[0])
	})

	t.Run("unmatched ingredient warns and contributes zero", func(t *testing.T) {
		markdown := `[{"ingredient":"Acid Blend","quantity":5,"unit":"g"}]`

		result := CalculateCost(markdown, nil, 5)
		assert.Zero(t, result.Cost)
		require.Len(t, result.Warnings, 1)
		assert.Equal(t, "'Acid Blend': Not found in inventory or no price.", result.Warnings[0])
	})

	t.Run("zero price and zero stock warn like a miss", func(t *testing.T) {
		markdown := `[{"ingredient":"Honey","quantity":1,"unit":"kg"},{"ingredient":"Oak","quantity":20,"unit":"g"}]`
		inv := []common.InventoryItem{
			{ID: "h", Name: "Honey", Qty: 5000, Unit: "g", Price: 0},
			{ID: "o", Name: "Oak", Qty: 0, Unit: "g", Price: 5},
		}

		result := CalculateCost(markdown, inv, 5)
		assert.Zero(t, result.Cost)
		require.Len(t, result.Warnings, 2)
		assert.Contains(t, result.Warnings[0], "Honey")
		assert.Contains(t, result.Warnings[1], "Oak")
	})

	t.Run("exactly one warning per problem ingredient", func(t *testing.T) {
		markdown := `[
			{"ingredient":"Honey","quantity":3,"unit":"kg"},
			{"ingredient":"Acid Blend","quantity":5,"unit":"g"},
			{"ingredient":"Spring Water","quantity":10,"unit":"l"}
		]`
		inv := []common.InventoryItem{
			{ID: "h", Name: "Honey", Qty: 5000, Unit: "g", Price: 25},
			{ID: "w", Name: "Spring Water", Qty: 5000, Unit: "g", Price: 3},
		}

		result := CalculateCost(markdown, inv, 10)
		require.Len(t, result.Warnings, 2)
		var acidWarnings, waterWarnings int
		for _, w := range result.Warnings {
			if w == "'Acid Blend': Not found in inventory or no price." {
				acidWarnings++
			}
			if w == "'Spring Water': Mismatch (Recipe: ml, Stock: g)" {
				waterWarnings++
			}
		}
		assert.Equal(t, 1, acidWarnings)
		assert.Equal(t, 1, waterWarnings)
		// The matched+compatible ingredient never appears in the warnings.
		for _, w := range result.Warnings {
			assert.NotContains(t, w, "'Honey'")
		}
	})

	t.Run("cost is never negative", func(t *testing.T) {
		markdown := `[{"ingredient":"Honey","quantity":-3,"unit":"kg"},{"ingredient":"Oak","quantity":0,"unit":"g"}]`
		inv := []common.InventoryItem{
			{ID: "h", Name: "Honey", Qty: 5000, Unit: "g", Price: 25},
			{ID: "o", Name: "Oak", Qty: 100, Unit: "g", Price: 5},
		}

		result := CalculateCost(markdown, inv, 5)
		assert.GreaterOrEqual(t, result.Cost, 0.0)
	})

	t.Run("does not mutate the inventory snapshot", func(t *testing.T) {
		markdown := `[{"ingredient":"Honey","quantity":3,"unit":"kg"}]`
		inv := []common.InventoryItem{
			{ID: "h", Name: "Honey", Qty: 5000, Unit: "g", Price: 25},
		}
		before := fmt.Sprintf("%+v", inv)

		_ = CalculateCost(markdown, inv, 10)
		assert.Equal(t, before, fmt.Sprintf("%+v", inv))
	})

	t.Run("empty markdown yields empty result", func(t *testing.T) {
		result := CalculateCost("nothing embedded here", nil, 5)
		assert.Zero(t, result.Cost)
		assert.Empty(t, result.Warnings)
	})
}
