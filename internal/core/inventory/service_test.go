package inventory

import (
	"testing"

	"meadery-assistant/internal/pkg/common"

	"github.com/stretchr/testify/assert"
)

func TestValidateItem(t *testing.T) {
	t.Run("accepts a complete item", func(t *testing.T) {
		item := &common.InventoryItem{Name: "Wildflower Honey", Category: common.CategoryHoney, Qty: 5000, Unit: "g", Price: 25}
		assert.NoError(t, validateItem(item))
	})

	t.Run("rejects blank name", func(t *testing.T) {
		err := validateItem(&common.InventoryItem{Name: "   "})
		assert.Error(t, err)
		assert.True(t, common.IsValidationError(err))
	})

	t.Run("defaults empty category to Other", func(t *testing.T) {
		item := &common.InventoryItem{Name: "Mystery Powder"}
		assert.NoError(t, validateItem(item))
		assert.Equal(t, common.CategoryOther, item.Category)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		err := validateItem(&common.InventoryItem{Name: "Hops", Category: "Hops"})
		assert.Equal(t, common.ErrInvalidCategory, err)
	})

	t.Run("rejects negative qty and price", func(t *testing.T) {
		assert.Error(t, validateItem(&common.InventoryItem{Name: "Honey", Qty: -1}))
		assert.Error(t, validateItem(&common.InventoryItem{Name: "Honey", Price: -1}))
	})
}
