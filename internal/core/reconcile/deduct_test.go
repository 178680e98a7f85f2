package reconcile

import (
	"testing"

	"meadery-assistant/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanDeduction(t *testing.T) {
	t.Run("schedules decrement for matched stock", func(t *testing.T) {
		inv := []common.InventoryItem{
			{ID: "x", Name: "Honey", Qty: 5000, Unit: "g"},
			{ID: "y", Name: "Fermaid-O", Qty: 4, Unit: "packet"},
		}
		usage := []common.UsageRecord{
			{Name: "honey", Quantity: 3000},
			{Name: "Fermaid-O", Quantity: 1},
		}

		plan := PlanDeduction(usage, inv)
		require.Len(t, plan.Updates, 2)
		assert.Empty(t, plan.Issues)
		assert.Equal(t, ScheduledUpdate{ID: "x", Name: "Honey", NewQty: 2000}, plan.Updates[0])
		assert.Equal(t, ScheduledUpdate{ID: "y", Name: "Fermaid-O", NewQty: 3}, plan.Updates[1])
	})

	t.Run("deduction to exactly zero is allowed", func(t *testing.T) {
		inv := []common.InventoryItem{{ID: "x", Name: "Honey", Qty: 5000, Unit: "g"}}
		usage := []common.UsageRecord{{Name: "Honey", Quantity: 5000}}

		plan := PlanDeduction(usage, inv)
		require.Len(t, plan.Updates, 1)
		assert.Zero(t, plan.Updates[0].NewQty)
	})

	t.Run("overdraw is excluded not clamped", func(t *testing.T) {
		inv := []common.InventoryItem{{ID: "x", Name: "Honey", Qty: 5000, Unit: "g"}}
		usage := []common.UsageRecord{{Name: "Honey", Quantity: 6000}}

		plan := PlanDeduction(usage, inv)
		assert.Empty(t, plan.Updates)
		require.Len(t, plan.Issues, 1)
		assert.Equal(t, "Honey (low stock)", plan.Issues[0])
		// The snapshot itself is untouched.
		assert.Equal(t, 5000.0, inv[0].Qty)
	})

	t.Run("unmatched record is reported and skipped", func(t *testing.T) {
		inv := []common.InventoryItem{{ID: "x", Name: "Honey", Qty: 5000, Unit: "g"}}
		usage := []common.UsageRecord{{Name: "Acid Blend", Quantity: 5}}

		plan := PlanDeduction(usage, inv)
		assert.Empty(t, plan.Updates)
		require.Len(t, plan.Issues, 1)
		assert.Equal(t, "Acid Blend (not found)", plan.Issues[0])
	})

	t.Run("issues do not block the rest of the batch", func(t *testing.T) {
		inv := []common.InventoryItem{
			{ID: "x", Name: "Honey", Qty: 5000, Unit: "g"},
			{ID: "y", Name: "Oak", Qty: 10, Unit: "g"},
		}
		usage := []common.UsageRecord{
			{Name: "Honey", Quantity: 1000},
			{Name: "Oak", Quantity: 50},
			{Name: "Lime", Quantity: 1},
		}

		plan := PlanDeduction(usage, inv)
		require.Len(t, plan.Updates, 1)
		assert.Equal(t, "x", plan.Updates[0].ID)
		assert.ElementsMatch(t, []string{"Oak (low stock)", "Lime (not found)"}, plan.Issues)
	})
}
