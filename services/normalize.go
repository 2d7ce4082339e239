package services

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/john-zaremba/my-easy-tracker/models"
)

// NormalizeFood converts a raw lookup result into a LogEntry snapshot.
// Pure transformation: the returned entry carries no identity and is
// not persisted here. Calories are rounded to the nearest whole kcal,
// macro grams to one decimal. Every nutrition field must coerce to a
// non-negative number or the whole input is rejected.
func NormalizeFood(raw *RawFood) (models.LogEntry, error) {
	if raw == nil || raw.FoodName == "" {
		return models.LogEntry{}, fmt.Errorf("%w: missing food name", ErrNormalization)
	}

	qty, err := coerceNutrient("serving_qty", raw.ServingQty)
	if err != nil {
		return models.LogEntry{}, err
	}
	calories, err := coerceNutrient("nf_calories", raw.Calories)
	if err != nil {
		return models.LogEntry{}, err
	}
	fat, err := coerceNutrient("nf_total_fat", raw.TotalFat)
	if err != nil {
		return models.LogEntry{}, err
	}
	protein, err := coerceNutrient("nf_protein", raw.Protein)
	if err != nil {
		return models.LogEntry{}, err
	}
	carbs, err := coerceNutrient("nf_total_carbohydrate", raw.Carbs)
	if err != nil {
		return models.LogEntry{}, err
	}

	return models.LogEntry{
		Name:     raw.FoodName,
		Quantity: qty,
		Calories: math.Round(calories),
		Fat:      round1(fat),
		Protein:  round1(protein),
		Carbs:    round1(carbs),
	}, nil
}

// coerceNutrient accepts the numeric and numeric-string forms the
// external API is known to produce. An absent field is an error, not a
// zero, so a partial record can never skew the day's totals.
func coerceNutrient(field string, v any) (float64, error) {
	var f float64
	switch n := v.(type) {
	case nil:
		return 0, fmt.Errorf("%w: missing field %s", ErrNormalization, field)
	case float64:
		f = n
	case int:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: field %s: %v", ErrNormalization, field, err)
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: field %s is not numeric: %q", ErrNormalization, field, n)
		}
		f = parsed
	default:
		return 0, fmt.Errorf("%w: field %s has unsupported type %T", ErrNormalization, field, v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, fmt.Errorf("%w: field %s out of range: %v", ErrNormalization, field, f)
	}
	return f, nil
}
