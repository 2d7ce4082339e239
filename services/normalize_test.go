package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRawFood() *RawFood {
	return &RawFood{
		FoodName:   "egg",
		ServingQty: 2.0,
		Calories:   143.1,
		TotalFat:   9.96,
		Protein:    12.4,
		Carbs:      0.77,
	}
}

func TestNormalizeFood_RoundsPerPolicy(t *testing.T) {
	entry, err := NormalizeFood(validRawFood())
	require.NoError(t, err)

	assert.Equal(t, "egg", entry.Name)
	assert.Equal(t, 2.0, entry.Quantity)
	assert.Equal(t, 143.0, entry.Calories) // whole kcal
	assert.Equal(t, 10.0, entry.Fat)       // one decimal gram
	assert.Equal(t, 12.4, entry.Protein)
	assert.Equal(t, 0.8, entry.Carbs)
}

// The external API intermittently sends numbers as strings; both forms
// must normalize identically.
func TestNormalizeFood_NumericStrings(t *testing.T) {
	raw := &RawFood{
		FoodName:   "oatmeal",
		ServingQty: "1",
		Calories:   "158.4",
		TotalFat:   "3.2",
		Protein:    "6",
		Carbs:      "27.32",
	}

	entry, err := NormalizeFood(raw)
	require.NoError(t, err)

	assert.Equal(t, 1.0, entry.Quantity)
	assert.Equal(t, 158.0, entry.Calories)
	assert.Equal(t, 3.2, entry.Fat)
	assert.Equal(t, 6.0, entry.Protein)
	assert.Equal(t, 27.3, entry.Carbs)
}

func TestNormalizeFood_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RawFood)
	}{
		{"missing name", func(r *RawFood) { r.FoodName = "" }},
		{"missing calories", func(r *RawFood) { r.Calories = nil }},
		{"missing fat", func(r *RawFood) { r.TotalFat = nil }},
		{"non-numeric string", func(r *RawFood) { r.Protein = "lots" }},
		{"negative value", func(r *RawFood) { r.Carbs = -1.0 }},
		{"negative string", func(r *RawFood) { r.Calories = "-90" }},
		{"unsupported type", func(r *RawFood) { r.ServingQty = []any{1} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validRawFood()
			tt.mutate(raw)

			_, err := NormalizeFood(raw)
			assert.ErrorIs(t, err, ErrNormalization)
		})
	}
}

func TestNormalizeFood_NilInput(t *testing.T) {
	_, err := NormalizeFood(nil)
	assert.ErrorIs(t, err, ErrNormalization)
}
