package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/vidaplena/vidaplena/internal/models"
)

func newTestMealPlanService(store *stubStore) *MealPlanService {
	svc := NewMealPlanService(store)
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC) }
	n := 0
	svc.idGen = func() string { n++; return fmt.Sprintf("p%d", n) }
	return svc
}

func planDays() []models.MealPlanDay {
	return []models.MealPlanDay{
		{Day: 99, Meals: map[string]*models.Meal{
			models.SlotBreakfast: {Name: "Ovos", Macros: models.MacroTotals{Calories: 300, Protein: 20}},
			models.SlotLunch:     {Name: "Frango", Macros: models.MacroTotals{Calories: 600, Protein: 40}},
		}},
		{Day: 0, Meals: map[string]*models.Meal{
			models.SlotDinner: {Name: "Sopa", Macros: models.MacroTotals{Calories: 400, Protein: 15}},
		}},
	}
}

func TestCreatePlanNormalizesDaysAndTotals(t *testing.T) {
	svc := newTestMealPlanService(newStubStore())
	p, err := svc.CreatePlan("u1", " Semana 1 ", planDays())
	if err != nil {
		t.Fatalf("CreatePlan returned error: %v", err)
	}
	if p.Title != "Semana 1" {
		t.Fatalf("title = %q", p.Title)
	}
	// incoming ordinals are ignored; days are renumbered in order
	if p.Days[0].Day != 1 || p.Days[1].Day != 2 {
		t.Fatalf("day ordinals = %d,%d, want 1,2", p.Days[0].Day, p.Days[1].Day)
	}
	if p.Days[0].DailyTotals == nil || p.Days[0].DailyTotals.Calories != 900 {
		t.Fatalf("day 1 totals = %+v", p.Days[0].DailyTotals)
	}
	if p.Days[1].DailyTotals.Calories != 400 {
		t.Fatalf("day 2 totals = %+v", p.Days[1].DailyTotals)
	}
}

func TestCreatePlanValidation(t *testing.T) {
	svc := newTestMealPlanService(newStubStore())
	if _, err := svc.CreatePlan("", "T", planDays()); err == nil {
		t.Fatalf("expected error for empty user")
	}
	if _, err := svc.CreatePlan("u1", "", planDays()); err == nil {
		t.Fatalf("expected error for empty title")
	}
	if _, err := svc.CreatePlan("u1", "T", nil); err == nil {
		t.Fatalf("expected error for no days")
	}
	bad := []models.MealPlanDay{{Meals: map[string]*models.Meal{"brunch": {Name: "X"}}}}
	_, err := svc.CreatePlan("u1", "T", bad)
	if se, ok := AsServiceError(err); !ok || se.Code != ErrorInvalid {
		t.Fatalf("expected invalid error for unknown slot, got %v", err)
	}
}

func TestWeeklySummary(t *testing.T) {
	svc := newTestMealPlanService(newStubStore())
	p, _ := svc.CreatePlan("u1", "Semana 1", planDays())

	avg, err := svc.WeeklySummary(p.ID)
	if err != nil {
		t.Fatalf("WeeklySummary returned error: %v", err)
	}
	// (900+400)/2 = 650, (60+15)/2 = 37.5 -> 38
	if avg.Calories != 650 || avg.Protein != 38 {
		t.Fatalf("weekly = %+v", avg)
	}
}

func TestPlanHTML(t *testing.T) {
	svc := newTestMealPlanService(newStubStore())
	p, _ := svc.CreatePlan("u1", "Semana 1", planDays())

	b, err := svc.PlanHTML(p.ID)
	if err != nil {
		t.Fatalf("PlanHTML returned error: %v", err)
	}
	out := string(b)
	if !strings.Contains(out, "Semana 1") || !strings.Contains(out, "Dia 2") {
		t.Fatalf("html missing plan content:\n%s", out)
	}
}

func TestDeletePlan(t *testing.T) {
	store := newStubStore()
	svc := newTestMealPlanService(store)
	p, _ := svc.CreatePlan("u1", "Semana 1", planDays())

	if err := svc.DeletePlan(p.ID); err != nil {
		t.Fatalf("DeletePlan returned error: %v", err)
	}
	if err := svc.DeletePlan(p.ID); err == nil {
		t.Fatalf("expected not found on second delete")
	}
	plans, _ := svc.PlansByUser("u1")
	if len(plans) != 0 {
		t.Fatalf("plans = %d, want 0", len(plans))
	}
}
