package models

import "time"

// Profile is an application account. Role is either "admin" (nutritionists
// building sessions and meal plans) or "user" (people logging their days).
type Profile struct {
	ID        string
	Email     string
	PassHash  []byte
	Name      string
	Role      string
	CreatedAt time.Time
}

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Session is a questionnaire built by an admin and assigned to users.
type Session struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedBy   string    `json:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Question types drive how responses are aggregated.
const (
	QuestionText           = "text"
	QuestionNumber         = "number"
	QuestionPercentage     = "percentage"
	QuestionBoolean        = "boolean"
	QuestionSingleChoice   = "single_choice"
	QuestionMultipleChoice = "multiple_choice"
)

// Question belongs to a session. Options apply to choice types only.
type Question struct {
	ID        string   `json:"id"`
	SessionID string   `json:"session_id"`
	Text      string   `json:"text"`
	Type      string   `json:"type"`
	Options   []string `json:"options,omitempty"`
	Position  int      `json:"position"`
}

// ResponseRecord stores the raw submitted literal. Interpretation happens at
// aggregation time based on the question type; records are never mutated.
type ResponseRecord struct {
	QuestionID string    `json:"question_id"`
	UserID     string    `json:"user_id"`
	Value      string    `json:"value"`
	CreatedAt  time.Time `json:"created_at"`
}

// Assignment links a session to a user. CompletedAt is set once, when the
// user submits their responses.
type Assignment struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	SessionID   string     `json:"session_id"`
	IsCompleted bool       `json:"is_completed"`
	AssignedAt  time.Time  `json:"assigned_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// MacroTotals carries the five tracked macro values. Stored meals keep each
// component non-negative; derived sums inherit whatever the components hold.
type MacroTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
}

// Meal slot names within a day plan.
const (
	SlotBreakfast = "breakfast"
	SlotLunch     = "lunch"
	SlotSnack     = "snack"
	SlotDinner    = "dinner"
	SlotSupper    = "supper"
)

// MealSlots lists the slots in serving order.
var MealSlots = []string{SlotBreakfast, SlotLunch, SlotSnack, SlotDinner, SlotSupper}

type Meal struct {
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Macros      MacroTotals `json:"macros"`
}

// MealPlanDay holds the optional meals of one day plus the derived totals,
// recomputed on every write.
type MealPlanDay struct {
	Day         int              `json:"day"`
	Meals       map[string]*Meal `json:"meals"`
	DailyTotals *MacroTotals     `json:"daily_totals,omitempty"`
}

type MealPlan struct {
	ID        string        `json:"id"`
	UserID    string        `json:"user_id"`
	Title     string        `json:"title"`
	Days      []MealPlanDay `json:"days"`
	CreatedAt time.Time     `json:"created_at"`
}

// FoodEntry is one logged meal of a tracked day. Date is "2006-01-02".
type FoodEntry struct {
	ID          string      `json:"id"`
	UserID      string      `json:"user_id"`
	Date        string      `json:"date"`
	Meal        string      `json:"meal"`
	Description string      `json:"description,omitempty"`
	Macros      MacroTotals `json:"macros"`
	CreatedAt   time.Time   `json:"created_at"`
}

type WaterLog struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Date      string    `json:"date"`
	AmountML  float64   `json:"amount_ml"`
	CreatedAt time.Time `json:"created_at"`
}

type SleepLog struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Date      string    `json:"date"`
	Hours     float64   `json:"hours"`
	CreatedAt time.Time `json:"created_at"`
}

// MoodLog rating is 0..10.
type MoodLog struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Date      string    `json:"date"`
	Rating    float64   `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

type ExerciseLog struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Date        string    `json:"date"`
	Minutes     float64   `json:"minutes"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// DailyGoals are per-user targets; zero values mean "not set".
type DailyGoals struct {
	UserID   string  `json:"user_id"`
	WaterML  float64 `json:"water_ml"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
}

// ChartPoint is the presenter output unit consumed by front-end charts.
type ChartPoint struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}
