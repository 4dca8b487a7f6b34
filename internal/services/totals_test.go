package services

import (
	"testing"

	"github.com/vidaplena/vidaplena/internal/models"
)

func TestDayTotalsAdditive(t *testing.T) {
	breakfast := models.MacroTotals{Calories: 350, Protein: 20, Carbs: 40, Fat: 10, Fiber: 5}
	day := models.MealPlanDay{
		Day:   1,
		Meals: map[string]*models.Meal{models.SlotBreakfast: {Name: "Ovos", Macros: breakfast}},
	}
	if got := DayTotals(day); got != breakfast {
		t.Fatalf("single-meal totals = %+v, want %+v", got, breakfast)
	}

	lunch := models.MacroTotals{Calories: 600, Protein: 35, Carbs: 70, Fat: 18, Fiber: 8}
	day.Meals[models.SlotLunch] = &models.Meal{Name: "Frango", Macros: lunch}
	got := DayTotals(day)
	want := models.MacroTotals{Calories: 950, Protein: 55, Carbs: 110, Fat: 28, Fiber: 13}
	if got != want {
		t.Fatalf("two-meal totals = %+v, want %+v", got, want)
	}
}

func TestDayTotalsIgnoresAbsentSlots(t *testing.T) {
	day := models.MealPlanDay{Day: 1, Meals: map[string]*models.Meal{}}
	if got := DayTotals(day); got != (models.MacroTotals{}) {
		t.Fatalf("empty day totals = %+v, want zeros", got)
	}
}

func TestSumEntryMacros(t *testing.T) {
	entries := []*models.FoodEntry{
		{Macros: models.MacroTotals{Calories: 100, Protein: 10}},
		nil,
		{Macros: models.MacroTotals{Calories: 200, Fiber: 3}},
	}
	got := SumEntryMacros(entries)
	want := models.MacroTotals{Calories: 300, Protein: 10, Fiber: 3}
	if got != want {
		t.Fatalf("entry totals = %+v, want %+v", got, want)
	}
}

func TestWeeklyAverageRoundsPerField(t *testing.T) {
	days := []models.MealPlanDay{
		{Meals: map[string]*models.Meal{models.SlotLunch: {Macros: models.MacroTotals{Calories: 100, Protein: 10.2}}}},
		{Meals: map[string]*models.Meal{models.SlotLunch: {Macros: models.MacroTotals{Calories: 101, Protein: 10.2}}}},
	}
	got := WeeklyAverage(days)
	// 100.5 rounds up, 10.2 rounds down; fields round independently
	want := models.MacroTotals{Calories: 101, Protein: 10}
	if got != want {
		t.Fatalf("weekly average = %+v, want %+v", got, want)
	}
}

func TestWeeklyAverageEmpty(t *testing.T) {
	if got := WeeklyAverage(nil); got != (models.MacroTotals{}) {
		t.Fatalf("empty average = %+v, want zeros", got)
	}
}
