package services

import (
	"math"

	"github.com/john-zaremba/my-easy-tracker/models"
)

// Energy density of each macronutrient in kcal per gram.
const (
	kcalPerGramFat     = 9.0
	kcalPerGramProtein = 4.0
	kcalPerGramCarbs   = 4.0
)

type NutrientTotals struct {
	Calories float64 `json:"calories"`
	Fat      float64 `json:"fat"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
}

// MacroPercents is each macro's share of total calories, in percent.
type MacroPercents struct {
	Fat     float64 `json:"fat"`
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
}

// ComputeSummary folds the current entry set into nutrient totals and a
// macro percentage breakdown. It is pure and runs after every mutation;
// the summary is never stored, so it cannot drift from the entries.
// An empty or zero-calorie entry set yields all zeros. The three
// percentages are rounded independently and may not sum to exactly 100.
func ComputeSummary(entries []models.LogEntry) (NutrientTotals, MacroPercents) {
	var total NutrientTotals
	for _, e := range entries {
		total.Calories += e.Calories
		total.Fat += e.Fat
		total.Protein += e.Protein
		total.Carbs += e.Carbs
	}

	var macros MacroPercents
	if total.Calories > 0 {
		macros.Fat = round1(total.Fat * kcalPerGramFat / total.Calories * 100)
		macros.Protein = round1(total.Protein * kcalPerGramProtein / total.Calories * 100)
		macros.Carbs = round1(total.Carbs * kcalPerGramCarbs / total.Calories * 100)
	}
	return total, macros
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
