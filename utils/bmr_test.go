package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateBMR(t *testing.T) {
	// Mifflin-St Jeor: 10*75 + 6.25*185 - 5*29 + 5 = 1766.25, x1.375
	bmr, err := CalculateBMR("Male", 185, 75, 29, 2)
	require.NoError(t, err)
	assert.Equal(t, 2429.0, bmr)

	bmr, err = CalculateBMR("Female", 165, 60, 35, 1)
	require.NoError(t, err)
	assert.Equal(t, 1554.0, bmr)
}

func TestCalculateBMR_Invalid(t *testing.T) {
	cases := []struct {
		name          string
		sex           string
		height, weight float64
		age, activity int
	}{
		{"zero height", "Male", 0, 75, 29, 2},
		{"implausible weight", "Male", 185, 900, 29, 2},
		{"bad activity level", "Male", 185, 75, 29, 9},
		{"unknown sex", "Other", 185, 75, 29, 2},
		{"zero age", "Female", 165, 60, 0, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := CalculateBMR(tc.sex, tc.height, tc.weight, tc.age, tc.activity)
			assert.Error(t, err)
		})
	}
}
