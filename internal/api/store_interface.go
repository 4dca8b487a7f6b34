package api

import "github.com/vidaplena/vidaplena/internal/models"

// Store is the persistence surface the router wires into the services. Every
// service declares its own narrow subset; Store satisfies all of them
// structurally, so both the in-memory store and the SQLite store plug in
// without adapters.
type Store interface {
	InsertProfile(p *models.Profile) error
	FindProfileByEmail(email string) (*models.Profile, error)
	CountProfiles() (int, error)

	InsertSession(sc *models.Session) error
	GetSession(id string) (*models.Session, error)
	ListSessions() ([]*models.Session, error)

	InsertQuestion(q *models.Question) error
	GetQuestion(id string) (*models.Question, error)
	ListQuestions(sessionID string) ([]*models.Question, error)

	InsertAssignment(a *models.Assignment) error
	GetAssignment(id string) (*models.Assignment, error)
	FindAssignment(sessionID, userID string) (*models.Assignment, error)
	ListAssignmentsBySession(sessionID string) ([]*models.Assignment, error)
	UpdateAssignment(a *models.Assignment) error

	AddResponses(rs []*models.ResponseRecord) error
	ListResponsesBySession(sessionID string) ([]*models.ResponseRecord, error)

	InsertMealPlan(p *models.MealPlan) error
	GetMealPlan(id string) (*models.MealPlan, error)
	ListMealPlansByUser(userID string) ([]*models.MealPlan, error)
	DeleteMealPlan(id string) error

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

var _ Store = (*MemoryStore)(nil)
