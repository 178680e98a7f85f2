package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripTrailingCommas(t *testing.T) {
	t.Run("removes comma before closing brace", func(t *testing.T) {
		assert.Equal(t, `{"a": 1}`, StripTrailingCommas(`{"a": 1,}`))
	})

	t.Run("removes comma before closing bracket", func(t *testing.T) {
		assert.Equal(t, `[1, 2]`, StripTrailingCommas(`[1, 2,]`))
	})

	t.Run("handles whitespace between comma and closer", func(t *testing.T) {
		assert.Equal(t, "[1, 2\n]", StripTrailingCommas("[1, 2,\n]"))
	})

	t.Run("leaves valid JSON untouched", func(t *testing.T) {
		in := `[{"a": 1}, {"b": 2}]`
		assert.Equal(t, in, StripTrailingCommas(in))
	})
}

func TestQuoteJSONKeys(t *testing.T) {
	t.Run("quotes bare keys", func(t *testing.T) {
		assert.Equal(t, `{"name": "honey", "qty": 3}`, QuoteJSONKeys(`{name: "honey", qty: 3}`))
	})

	t.Run("leaves quoted keys untouched", func(t *testing.T) {
		in := `{"name": "honey"}`
		assert.Equal(t, in, QuoteJSONKeys(in))
	})
}

func TestParseJSON(t *testing.T) {
	type payload struct {
		Name string  `json:"name"`
		Qty  float64 `json:"qty"`
	}

	t.Run("decodes into struct", func(t *testing.T) {
		var p payload
		require.NoError(t, ParseJSON(`{"name": "honey", "qty": 3}`, &p))
		assert.Equal(t, "honey", p.Name)
		assert.Equal(t, 3.0, p.Qty)
	})

	t.Run("rejects trailing garbage", func(t *testing.T) {
		var p payload
		assert.Error(t, ParseJSON(`{"name": "honey"} extra`, &p))
	})

	t.Run("strict mode rejects unknown fields", func(t *testing.T) {
		var p payload
		assert.Error(t, ParseJSONStrict(`{"name": "honey", "color": "gold"}`, &p))
		assert.NoError(t, ParseJSON(`{"name": "honey", "color": "gold"}`, &p))
	})
}
