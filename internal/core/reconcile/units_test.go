package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		quantity float64
		unit     string
		want     Amount
	}{
		{"kg to grams", 3, "kg", Amount{3000, UnitGrams}},
		{"liters to ml", 1.5, "l", Amount{1500, UnitMilliliters}},
		{"liter spelled out", 2, "Liter", Amount{2000, UnitMilliliters}},
		{"liters plural", 0.5, "liters", Amount{500, UnitMilliliters}},
		{"packet aliases", 2, "sachet", Amount{2, UnitPackets}},
		{"pkg alias", 1, "pkg", Amount{1, UnitPackets}},
		{"item aliases", 6, "pieces", Amount{6, UnitItems}},
		{"swedish st", 4, "st", Amount{4, UnitItems}},
		{"case and whitespace insensitive", 1, "  KG ", Amount{1000, UnitGrams}},
		{"grams pass through", 250, "g", Amount{250, UnitGrams}},
		{"unknown unit passes through lowercased", 2, "Tbsp", Amount{2, "tbsp"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.quantity, tt.unit))
		})
	}
}

// Normalizing an already-canonical amount must be a no-op.
func TestNormalizeIdempotent(t *testing.T) {
	inputs := []struct {
		quantity float64
		unit     string
	}{
		{3, "kg"}, {1.5, "l"}, {2, "packet"}, {6, "pieces"}, {250, "g"}, {10, "ml"}, {2, "tbsp"},
	}

	for _, in := range inputs {
		once := Normalize(in.quantity, in.unit)
		twice := Normalize(once.Quantity, once.Unit)
		assert.Equal(t, once, twice, "normalize(%g, %q) is not idempotent", in.quantity, in.unit)
	}
}
