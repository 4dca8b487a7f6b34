package services

import (
	"strings"
	"time"

	"github.com/vidaplena/vidaplena/internal/models"
)

type MealPlanStore interface {
	InsertMealPlan(p *models.MealPlan) error
	GetMealPlan(id string) (*models.MealPlan, error)
	ListMealPlansByUser(userID string) ([]*models.MealPlan, error)
	DeleteMealPlan(id string) error
}

// MealPlanService manages the plans admins build for users. Day totals are a
// stored derived copy, recomputed on every write.
type MealPlanService struct {
	store MealPlanStore
	now   func() time.Time
	idGen func() string
}

func NewMealPlanService(store MealPlanStore) *MealPlanService {
	return &MealPlanService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		idGen: func() string { return shortID(8) },
	}
}

func (s *MealPlanService) CreatePlan(userID, title string, days []models.MealPlanDay) (*models.MealPlan, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, NewInvalidError("user_id required")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, NewInvalidError("title required")
	}
	if len(days) == 0 {
		return nil, NewInvalidError("at least one day required")
	}
	for i := range days {
		days[i].Day = i + 1
		for slot := range days[i].Meals {
			if !validMealSlot(slot) {
				return nil, NewInvalidError("unknown meal slot: " + slot)
			}
		}
		t := DayTotals(days[i])
		days[i].DailyTotals = &t
	}
	p := &models.MealPlan{
		ID:        s.idGen(),
		UserID:    userID,
		Title:     title,
		Days:      days,
		CreatedAt: s.now(),
	}
	if err := s.store.InsertMealPlan(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *MealPlanService) Plan(id string) (*models.MealPlan, error) {
	p, err := s.store.GetMealPlan(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, NewNotFoundError("meal plan not found")
	}
	return p, nil
}

func (s *MealPlanService) PlansByUser(userID string) ([]*models.MealPlan, error) {
	return s.store.ListMealPlansByUser(userID)
}

func (s *MealPlanService) DeletePlan(id string) error {
	p, err := s.store.GetMealPlan(id)
	if err != nil {
		return err
	}
	if p == nil {
		return NewNotFoundError("meal plan not found")
	}
	return s.store.DeleteMealPlan(id)
}

// WeeklySummary returns the per-field rounded average across the plan's days.
func (s *MealPlanService) WeeklySummary(id string) (models.MacroTotals, error) {
	p, err := s.Plan(id)
	if err != nil {
		return models.MacroTotals{}, err
	}
	return WeeklyAverage(p.Days), nil
}

// PlanHTML renders the printable plan document.
func (s *MealPlanService) PlanHTML(id string) ([]byte, error) {
	p, err := s.Plan(id)
	if err != nil {
		return nil, err
	}
	return BuildPlanHTML(p, WeeklyAverage(p.Days)), nil
}
