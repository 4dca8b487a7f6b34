package services

import (
	"strings"
	"time"

	"github.com/vidaplena/vidaplena/internal/models"
)

type TrackerStore interface {
	InsertFoodEntry(e *models.FoodEntry) error
	ListFoodEntries(userID, date string) ([]*models.FoodEntry, error)
	InsertWaterLog(l *models.WaterLog) error
	ListWaterLogs(userID, date string) ([]*models.WaterLog, error)
	InsertSleepLog(l *models.SleepLog) error
	ListSleepLogs(userID, date string) ([]*models.SleepLog, error)
	UpsertMoodLog(l *models.MoodLog) error
	GetMoodLog(userID, date string) (*models.MoodLog, error)
	InsertExerciseLog(l *models.ExerciseLog) error
	ListExerciseLogs(userID, date string) ([]*models.ExerciseLog, error)
	GetGoals(userID string) (*models.DailyGoals, error)
	SetGoals(g *models.DailyGoals) error
}

// TrackerService records a user's daily logs and derives the day summary the
// tracking widgets render. Submissions are not debounced: rapid duplicate
// water clicks create duplicate rows.
type TrackerService struct {
	store TrackerStore
	now   func() time.Time
	idGen func() string
}

func NewTrackerService(store TrackerStore) *TrackerService {
	return &TrackerService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		idGen: func() string { return shortID(8) },
	}
}

const dateLayout = "2006-01-02"

func (s *TrackerService) resolveDate(date string) (string, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return s.now().Format(dateLayout), nil
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return "", NewInvalidError("date must be YYYY-MM-DD")
	}
	return date, nil
}

func (s *TrackerService) AddFood(userID, date, meal, description string, macros models.MacroTotals) (*models.FoodEntry, error) {
	date, err := s.resolveDate(date)
	if err != nil {
		return nil, err
	}
	if meal == "" {
		meal = models.SlotSnack
	}
	if !validMealSlot(meal) {
		return nil, NewInvalidError("unknown meal slot")
	}
	if macros.Calories < 0 || macros.Protein < 0 || macros.Carbs < 0 || macros.Fat < 0 || macros.Fiber < 0 {
		return nil, NewInvalidError("macros must be non-negative")
	}
	e := &models.FoodEntry{
		ID:          s.idGen(),
		UserID:      userID,
		Date:        date,
		Meal:        meal,
		Description: strings.TrimSpace(description),
		Macros:      macros,
		CreatedAt:   s.now(),
	}
	if err := s.store.InsertFoodEntry(e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *TrackerService) AddWater(userID, date string, amountML float64) (*models.WaterLog, error) {
	date, err := s.resolveDate(date)
	if err != nil {
		return nil, err
	}
	if amountML <= 0 {
		return nil, NewInvalidError("amount_ml must be positive")
	}
	l := &models.WaterLog{ID: s.idGen(), UserID: userID, Date: date, AmountML: amountML, CreatedAt: s.now()}
	if err := s.store.InsertWaterLog(l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *TrackerService) AddSleep(userID, date string, hours float64) (*models.SleepLog, error) {
	date, err := s.resolveDate(date)
	if err != nil {
		return nil, err
	}
	if hours < 0 || hours > 24 {
		return nil, NewInvalidError("hours must be within 0..24")
	}
	l := &models.SleepLog{ID: s.idGen(), UserID: userID, Date: date, Hours: hours, CreatedAt: s.now()}
	if err := s.store.InsertSleepLog(l); err != nil {
		return nil, err
	}
	return l, nil
}

// SetMood stores the day's mood rating, replacing an earlier one for the
// same day.
func (s *TrackerService) SetMood(userID, date string, rating float64) (*models.MoodLog, error) {
	date, err := s.resolveDate(date)
	if err != nil {
		return nil, err
	}
	if rating < 0 || rating > 10 {
		return nil, NewInvalidError("rating must be within 0..10")
	}
	l := &models.MoodLog{ID: s.idGen(), UserID: userID, Date: date, Rating: rating, CreatedAt: s.now()}
	if err := s.store.UpsertMoodLog(l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *TrackerService) AddExercise(userID, date string, minutes float64, description string) (*models.ExerciseLog, error) {
	date, err := s.resolveDate(date)
	if err != nil {
		return nil, err
	}
	if minutes <= 0 {
		return nil, NewInvalidError("minutes must be positive")
	}
	l := &models.ExerciseLog{
		ID:          s.idGen(),
		UserID:      userID,
		Date:        date,
		Minutes:     minutes,
		Description: strings.TrimSpace(description),
		CreatedAt:   s.now(),
	}
	if err := s.store.InsertExerciseLog(l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *TrackerService) Goals(userID string) (*models.DailyGoals, error) {
	g, err := s.store.GetGoals(userID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return &models.DailyGoals{UserID: userID}, nil
	}
	return g, nil
}

func (s *TrackerService) SetGoals(g *models.DailyGoals) error {
	if g == nil || g.UserID == "" {
		return NewInvalidError("user_id required")
	}
	if g.WaterML < 0 || g.Calories < 0 || g.Protein < 0 || g.Carbs < 0 || g.Fat < 0 || g.Fiber < 0 {
		return NewInvalidError("goals must be non-negative")
	}
	return s.store.SetGoals(g)
}

// DaySummary aggregates one tracked day for the dashboard widgets. Absent
// categories read as zero and drag the score down, which is the intended
// nudge toward complete logging.
type DaySummary struct {
	Date            string              `json:"date"`
	Totals          models.MacroTotals  `json:"totals"`
	Entries         []*models.FoodEntry `json:"entries"`
	WaterML         float64             `json:"water_ml"`
	SleepHours      float64             `json:"sleep_hours"`
	MoodRating      float64             `json:"mood_rating"`
	ExerciseMinutes float64             `json:"exercise_minutes"`
	Goals           *models.DailyGoals  `json:"goals"`
	Score           int                 `json:"score"`
}

func (s *TrackerService) DaySummary(userID, date string) (*DaySummary, error) {
	date, err := s.resolveDate(date)
	if err != nil {
		return nil, err
	}
	entries, err := s.store.ListFoodEntries(userID, date)
	if err != nil {
		return nil, err
	}
	waterLogs, err := s.store.ListWaterLogs(userID, date)
	if err != nil {
		return nil, err
	}
	sleepLogs, err := s.store.ListSleepLogs(userID, date)
	if err != nil {
		return nil, err
	}
	mood, err := s.store.GetMoodLog(userID, date)
	if err != nil {
		return nil, err
	}
	exerciseLogs, err := s.store.ListExerciseLogs(userID, date)
	if err != nil {
		return nil, err
	}
	goals, err := s.Goals(userID)
	if err != nil {
		return nil, err
	}

	out := &DaySummary{
		Date:    date,
		Totals:  SumEntryMacros(entries),
		Entries: entries,
		Goals:   goals,
	}
	for _, l := range waterLogs {
		out.WaterML += l.AmountML
	}
	// a day's sleep is a single figure; the latest log wins
	if len(sleepLogs) > 0 {
		out.SleepHours = sleepLogs[len(sleepLogs)-1].Hours
	}
	if mood != nil {
		out.MoodRating = mood.Rating
	}
	for _, l := range exerciseLogs {
		out.ExerciseMinutes += l.Minutes
	}
	out.Score = DailyScore(DayInputs{
		WaterML:         out.WaterML,
		WaterGoalML:     goals.WaterML,
		SleepHours:      out.SleepHours,
		MoodRating:      out.MoodRating,
		ExerciseMinutes: out.ExerciseMinutes,
		Calories:        out.Totals.Calories,
		CalorieGoal:     goals.Calories,
	})
	return out, nil
}

func validMealSlot(slot string) bool {
	for _, s := range models.MealSlots {
		if s == slot {
			return true
		}
	}
	return false
}
