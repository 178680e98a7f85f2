package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractIngredients(t *testing.T) {
	t.Run("fenced json block", func(t *testing.T) {
		markdown := "# Traditional Mead\n\nSome notes.\n\n```json\n" +
			`[{"ingredient":"Honey","quantity":3,"unit":"kg"},{"ingredient":"Yeast","quantity":1,"unit":"packet"}]` +
			"\n```\n\nMore notes."

		reqs := ExtractIngredients(markdown)
		require.Len(t, reqs, 2)
		assert.Equal(t, "Honey", reqs[0].Name)
		assert.Equal(t, 3.0, reqs[0].Quantity)
		assert.Equal(t, "kg", reqs[0].Unit)
		assert.Equal(t, "packet", reqs[1].Unit)
	})

	t.Run("bare array without fence", func(t *testing.T) {
		markdown := `Ingredients: [{"ingredient":"Honey","quantity":1.5,"unit":"kg"}] done`

		reqs := ExtractIngredients(markdown)
		require.Len(t, reqs, 1)
		assert.Equal(t, 1.5, reqs[0].Quantity)
	})

	t.Run("trailing commas are repaired once", func(t *testing.T) {
		markdown := "```json\n" +
			`[{"ingredient":"Honey","quantity":2,"unit":"kg",},{"ingredient":"Orange","quantity":3,"unit":"items",},]` +
			"\n```"

		reqs := ExtractIngredients(markdown)
		require.Len(t, reqs, 2)
		assert.Equal(t, "Orange", reqs[1].Name)
	})

	t.Run("quantity as numeric string", func(t *testing.T) {
		markdown := `[{"ingredient":"Honey","quantity":"2.5","unit":"kg"}]`

		reqs := ExtractIngredients(markdown)
		require.Len(t, reqs, 1)
		assert.Equal(t, 2.5, reqs[0].Quantity)
	})

	t.Run("unparseable quantity defaults to zero", func(t *testing.T) {
		markdown := `[{"ingredient":"Honey","quantity":"a splash","unit":"ml"},{"ingredient":"Lime","quantity":-2,"unit":"items"}]`

		reqs := ExtractIngredients(markdown)
		require.Len(t, reqs, 2)
		assert.Zero(t, reqs[0].Quantity)
		assert.Zero(t, reqs[1].Quantity)
	})

	t.Run("missing fields default to empty", func(t *testing.T) {
		markdown := `[{"quantity":5}]`

		reqs := ExtractIngredients(markdown)
		require.Len(t, reqs, 1)
		assert.Empty(t, reqs[0].Name)
		assert.Empty(t, reqs[0].Unit)
		assert.Equal(t, 5.0, reqs[0].Quantity)
	})

	t.Run("no array degrades to empty list", func(t *testing.T) {
		assert.Empty(t, ExtractIngredients("no json here at all"))
		assert.Empty(t, ExtractIngredients(""))
	})

	t.Run("irreparably broken json degrades to empty list", func(t *testing.T) {
		assert.Empty(t, ExtractIngredients(`[{"ingredient": "Honey", "quantity": }`))
	})
}
