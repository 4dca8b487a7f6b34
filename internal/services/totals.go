package services

import (
	"math"

	"github.com/vidaplena/vidaplena/internal/models"
)

// DayTotals sums the macros of every present meal slot. Absent slots
// contribute zero; there is no cross-field kcal consistency check.
func DayTotals(day models.MealPlanDay) models.MacroTotals {
	var t models.MacroTotals
	for _, slot := range models.MealSlots {
		m := day.Meals[slot]
		if m == nil {
			continue
		}
		addMacros(&t, m.Macros)
	}
	return t
}

// SumEntryMacros accumulates the macros of logged food entries.
func SumEntryMacros(entries []*models.FoodEntry) models.MacroTotals {
	var t models.MacroTotals
	for _, e := range entries {
		if e == nil {
			continue
		}
		addMacros(&t, e.Macros)
	}
	return t
}

// WeeklyAverage sums each day's totals and divides by the day count, rounding
// every macro field independently to the nearest integer.
func WeeklyAverage(days []models.MealPlanDay) models.MacroTotals {
	if len(days) == 0 {
		return models.MacroTotals{}
	}
	var sum models.MacroTotals
	for _, d := range days {
		addMacros(&sum, DayTotals(d))
	}
	n := float64(len(days))
	return models.MacroTotals{
		Calories: math.Round(sum.Calories / n),
		Protein:  math.Round(sum.Protein / n),
		Carbs:    math.Round(sum.Carbs / n),
		Fat:      math.Round(sum.Fat / n),
		Fiber:    math.Round(sum.Fiber / n),
	}
}

func addMacros(dst *models.MacroTotals, m models.MacroTotals) {
	dst.Calories += m.Calories
	dst.Protein += m.Protein
	dst.Carbs += m.Carbs
	dst.Fat += m.Fat
	dst.Fiber += m.Fiber
}
