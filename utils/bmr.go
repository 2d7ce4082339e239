package utils

import (
	"errors"
	"math"
	"strings"
)

// Activity multipliers indexed by level 1 (sedentary) … 5 (athlete).
var activityFactors = map[int]float64{
	1: 1.2,
	2: 1.375,
	3: 1.55,
	4: 1.725,
	5: 1.9,
}

// CalculateBMR estimates daily maintenance calories with the
// Mifflin-St Jeor equation scaled by the activity level. Height in
// centimeters, weight in kilograms.
func CalculateBMR(sex string, heightCm, weightKg float64, age, activityLevel int) (float64, error) {
	if heightCm <= 0 || weightKg <= 0 || age <= 0 {
		return 0, errors.New("height, weight and age must be positive")
	}
	// Sanity checks to avoid garbage input
	if heightCm < 50 || heightCm > 250 || weightKg < 10 || weightKg > 400 {
		return 0, errors.New("height/weight out of plausible range")
	}
	factor, ok := activityFactors[activityLevel]
	if !ok {
		return 0, errors.New("activity level must be between 1 and 5")
	}

	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	switch strings.ToLower(sex) {
	case "male":
		bmr += 5
	case "female":
		bmr -= 161
	default:
		return 0, errors.New("sex must be Male or Female")
	}

	return math.Round(bmr * factor), nil
}
