package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vidaplena/vidaplena/internal/api"
	"github.com/vidaplena/vidaplena/internal/models"
)

// SQLiteStore is the production store. Decode problems on individual rows
// are logged and degrade to zero values instead of failing the whole read;
// the aggregation layer treats missing data as zeros anyway.
type SQLiteStore struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewSQLiteStore(db *sql.DB, logger *zap.Logger) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("nil db")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, stmt := range pragmas {
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("apply sqlite pragma %q: %w", stmt, err)
		}
	}
	return &SQLiteStore{db: db, logger: logger}, nil
}

var _ api.Store = (*SQLiteStore)(nil)

func boolToInt64(v bool) int64 {
	if v {
		return 1
	}
	return 0
}

func (s *SQLiteStore) encodeTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func (s *SQLiteStore) decodeTime(v string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		s.logger.Warn("sqlite store: decode timestamp", zap.String("value", v), zap.Error(err))
		return time.Time{}
	}
	return t
}

func (s *SQLiteStore) encodeJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (s *SQLiteStore) decodeOptions(ns sql.NullString) []string {
	if !ns.Valid || strings.TrimSpace(ns.String) == "" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(ns.String), &out); err != nil {
		s.logger.Warn("sqlite store: decode question options", zap.Error(err))
		return nil
	}
	return out
}

func (s *SQLiteStore) InsertProfile(p *models.Profile) error {
	_, err := s.db.Exec(
		`INSERT INTO profiles (id, email, pass_hash, name, role, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.Email, p.PassHash, p.Name, p.Role, s.encodeTime(p.CreatedAt))
	return err
}

func (s *SQLiteStore) FindProfileByEmail(email string) (*models.Profile, error) {
	row := s.db.QueryRow(
		`SELECT id, email, pass_hash, name, role, created_at FROM profiles WHERE email = ?`, email)
	var p models.Profile
	var createdAt string
	err := row.Scan(&p.ID, &p.Email, &p.PassHash, &p.Name, &p.Role, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.CreatedAt = s.decodeTime(createdAt)
	return &p, nil
}

func (s *SQLiteStore) CountProfiles() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM profiles`).Scan(&n)
	return n, err
}

func (s *SQLiteStore) InsertSession(sc *models.Session) error {
	_, err := s.db.Exec(
		`INSERT INTO sessions (id, title, description, created_by, created_at) VALUES (?, ?, ?, ?, ?)`,
		sc.ID, sc.Title, sc.Description, sc.CreatedBy, s.encodeTime(sc.CreatedAt))
	return err
}

func (s *SQLiteStore) GetSession(id string) (*models.Session, error) {
	row := s.db.QueryRow(
		`SELECT id, title, description, created_by, created_at FROM sessions WHERE id = ?`, id)
	var sc models.Session
	var createdAt string
	err := row.Scan(&sc.ID, &sc.Title, &sc.Description, &sc.CreatedBy, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	sc.CreatedAt = s.decodeTime(createdAt)
	return &sc, nil
}

func (s *SQLiteStore) ListSessions() ([]*models.Session, error) {
	rows, err := s.db.Query(
		`SELECT id, title, description, created_by, created_at FROM sessions ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []*models.Session{}
	for rows.Next() {
		var sc models.Session
		var createdAt string
		if err := rows.Scan(&sc.ID, &sc.Title, &sc.Description, &sc.CreatedBy, &createdAt); err != nil {
			return nil, err
		}
		sc.CreatedAt = s.decodeTime(createdAt)
		out = append(out, &sc)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) InsertQuestion(q *models.Question) error {
	opts := sql.NullString{}
	if len(q.Options) > 0 {
		encoded, err := s.encodeJSON(q.Options)
		if err != nil {
			return err
		}
		opts = sql.NullString{String: encoded, Valid: true}
	}
	_, err := s.db.Exec(
		`INSERT INTO session_questions (id, session_id, text, type, options, position) VALUES (?, ?, ?, ?, ?, ?)`,
		q.ID, q.SessionID, q.Text, q.Type, opts, q.Position)
	return err
}

func (s *SQLiteStore) scanQuestion(scan func(dest ...any) error) (*models.Question, error) {
	var q models.Question
	var opts sql.NullString
	if err := scan(&q.ID, &q.SessionID, &q.Text, &q.Type, &opts, &q.Position); err != nil {
		return nil, err
	}
	q.Options = s.decodeOptions(opts)
	return &q, nil
}

func (s *SQLiteStore) GetQuestion(id string) (*models.Question, error) {
	row := s.db.QueryRow(
		`SELECT id, session_id, text, type, options, position FROM session_questions WHERE id = ?`, id)
	q, err := s.scanQuestion(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return q, err
}

func (s *SQLiteStore) ListQuestions(sessionID string) ([]*models.Question, error) {
	rows, err := s.db.Query(
		`SELECT id, session_id, text, type, options, position FROM session_questions WHERE session_id = ? ORDER BY position`,
		sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []*models.Question{}
	for rows.Next() {
		q, err := s.scanQuestion(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) InsertAssignment(a *models.Assignment) error {
	completedAt := sql.NullString{}
	if a.CompletedAt != nil {
		completedAt = sql.NullString{String: s.encodeTime(*a.CompletedAt), Valid: true}
	}
	_, err := s.db.Exec(
		`INSERT INTO user_sessions (id, user_id, session_id, is_completed, assigned_at, completed_at) VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID, a.UserID, a.SessionID, boolToInt64(a.IsCompleted), s.encodeTime(a.AssignedAt), completedAt)
	return err
}

func (s *SQLiteStore) scanAssignment(scan func(dest ...any) error) (*models.Assignment, error) {
	var a models.Assignment
	var completed int64
	var assignedAt string
	var completedAt sql.NullString
	if err := scan(&a.ID, &a.UserID, &a.SessionID, &completed, &assignedAt, &completedAt); err != nil {
		return nil, err
	}
	a.IsCompleted = completed != 0
	a.AssignedAt = s.decodeTime(assignedAt)
	if completedAt.Valid {
		t := s.decodeTime(completedAt.String)
		a.CompletedAt = &t
	}
	return &a, nil
}

func (s *SQLiteStore) GetAssignment(id string) (*models.Assignment, error) {
	row := s.db.QueryRow(
		`SELECT id, user_id, session_id, is_completed, assigned_at, completed_at FROM user_sessions WHERE id = ?`, id)
	a, err := s.scanAssignment(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return a, err
}

func (s *SQLiteStore) FindAssignment(sessionID, userID string) (*models.Assignment, error) {
	row := s.db.QueryRow(
		`SELECT id, user_id, session_id, is_completed, assigned_at, completed_at FROM user_sessions WHERE session_id = ? AND user_id = ?`,
		sessionID, userID)
	a, err := s.scanAssignment(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return a, err
}

func (s *SQLiteStore) ListAssignmentsBySession(sessionID string) ([]*models.Assignment, error) {
	rows, err := s.db.Query(
		`SELECT id, user_id, session_id, is_completed, assigned_at, completed_at FROM user_sessions WHERE session_id = ? ORDER BY assigned_at, id`,
		sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []*models.Assignment{}
	for rows.Next() {
		a, err := s.scanAssignment(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) UpdateAssignment(a *models.Assignment) error {
	completedAt := sql.NullString{}
	if a.CompletedAt != nil {
		completedAt = sql.NullString{String: s.encodeTime(*a.CompletedAt), Valid: true}
	}
	_, err := s.db.Exec(
		`UPDATE user_sessions SET is_completed = ?, completed_at = ? WHERE id = ?`,
		boolToInt64(a.IsCompleted), completedAt, a.ID)
	return err
}

func (s *SQLiteStore) AddResponses(rs []*models.ResponseRecord) error {
	if len(rs) == 0 {
		return nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	for _, r := range rs {
		if _, err := tx.Exec(
			`INSERT INTO question_responses (question_id, user_id, value, created_at) VALUES (?, ?, ?, ?)`,
			r.QuestionID, r.UserID, r.Value, s.encodeTime(r.CreatedAt)); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) ListResponsesBySession(sessionID string) ([]*models.ResponseRecord, error) {
	rows, err := s.db.Query(
		`SELECT r.question_id, r.user_id, r.value, r.created_at
		 FROM question_responses r
		 JOIN session_questions q ON q.id = r.question_id
		 WHERE q.session_id = ?
		 ORDER BY r.created_at, r.rowid`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []*models.ResponseRecord{}
	for rows.Next() {
		var r models.ResponseRecord
		var createdAt string
		if err := rows.Scan(&r.QuestionID, &r.UserID, &r.Value, &createdAt); err != nil {
			return nil, err
		}
		r.CreatedAt = s.decodeTime(createdAt)
		out = append(out, &r)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) InsertMealPlan(p *models.MealPlan) error {
	days, err := s.encodeJSON(p.Days)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`INSERT INTO meal_plans (id, user_id, title, days, created_at) VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.UserID, p.Title, days, s.encodeTime(p.CreatedAt))
	return err
}

func (s *SQLiteStore) scanMealPlan(scan func(dest ...any) error) (*models.MealPlan, error) {
	var p models.MealPlan
	var days, createdAt string
	if err := scan(&p.ID, &p.UserID, &p.Title, &days, &createdAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(days), &p.Days); err != nil {
		s.logger.Warn("sqlite store: decode meal plan days", zap.String("plan_id", p.ID), zap.Error(err))
		p.Days = nil
	}
	p.CreatedAt = s.decodeTime(createdAt)
	return &p, nil
}

func (s *SQLiteStore) GetMealPlan(id string) (*models.MealPlan, error) {
	row := s.db.QueryRow(
		`SELECT id, user_id, title, days, created_at FROM meal_plans WHERE id = ?`, id)
	p, err := s.scanMealPlan(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

func (s *SQLiteStore) ListMealPlansByUser(userID string) ([]*models.MealPlan, error) {
	rows, err := s.db.Query(
		`SELECT id, user_id, title, days, created_at FROM meal_plans WHERE user_id = ? ORDER BY created_at, id`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []*models.MealPlan{}
	for rows.Next() {
		p, err := s.scanMealPlan(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) DeleteMealPlan(id string) error {
	_, err := s.db.Exec(`DELETE FROM meal_plans WHERE id = ?`, id)
	return err
}

func (s *SQLiteStore) InsertFoodEntry(e *models.FoodEntry) error {
	_, err := s.db.Exec(
		`INSERT INTO food_entries (id, user_id, date, meal, description, calories, protein, carbs, fat, fiber, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.UserID, e.Date, e.Meal, e.Description,
		e.Macros.Calories, e.Macros.Protein, e.Macros.Carbs, e.Macros.Fat, e.Macros.Fiber,
		s.encodeTime(e.CreatedAt))
	return err
}

func (s *SQLiteStore) ListFoodEntries(userID, date string) ([]*models.FoodEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, user_id, date, meal, description, calories, protein, carbs, fat, fiber, created_at
		 FROM food_entries WHERE user_id = ? AND date = ? ORDER BY created_at, id`, userID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []*models.FoodEntry{}
	for rows.Next() {
		var e models.FoodEntry
		var createdAt string
		if err := rows.Scan(&e.ID, &e.UserID, &e.Date, &e.Meal, &e.Description,
			&e.Macros.Calories, &e.Macros.Protein, &e.Macros.Carbs, &e.Macros.Fat, &e.Macros.Fiber,
			&createdAt); err != nil {
			return nil, err
		}
		e.CreatedAt = s.decodeTime(createdAt)
		out = append(out, &e)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) InsertWaterLog(l *models.WaterLog) error {
	_, err := s.db.Exec(
		`INSERT INTO water_logs (id, user_id, date, amount_ml, created_at) VALUES (?, ?, ?, ?, ?)`,
		l.ID, l.UserID, l.Date, l.AmountML, s.encodeTime(l.CreatedAt))
	return err
}

func (s *SQLiteStore) ListWaterLogs(userID, date string) ([]*models.WaterLog, error) {
	rows, err := s.db.Query(
		`SELECT id, user_id, date, amount_ml, created_at FROM water_logs WHERE user_id = ? AND date = ? ORDER BY created_at, id`,
		userID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []*models.WaterLog{}
	for rows.Next() {
		var l models.WaterLog
		var createdAt string
		if err := rows.Scan(&l.ID, &l.UserID, &l.Date, &l.AmountML, &createdAt); err != nil {
			return nil, err
		}
		l.CreatedAt = s.decodeTime(createdAt)
		out = append(out, &l)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) InsertSleepLog(l *models.SleepLog) error {
	_, err := s.db.Exec(
		`INSERT INTO sleep_logs (id, user_id, date, hours, created_at) VALUES (?, ?, ?, ?, ?)`,
		l.ID, l.UserID, l.Date, l.Hours, s.encodeTime(l.CreatedAt))
	return err
}

func (s *SQLiteStore) ListSleepLogs(userID, date string) ([]*models.SleepLog, error) {
	rows, err := s.db.Query(
		`SELECT id, user_id, date, hours, created_at FROM sleep_logs WHERE user_id = ? AND date = ? ORDER BY created_at, id`,
		userID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []*models.SleepLog{}
	for rows.Next() {
		var l models.SleepLog
		var createdAt string
		if err := rows.Scan(&l.ID, &l.UserID, &l.Date, &l.Hours, &createdAt); err != nil {
			return nil, err
		}
		l.CreatedAt = s.decodeTime(createdAt)
		out = append(out, &l)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) UpsertMoodLog(l *models.MoodLog) error {
	_, err := s.db.Exec(
		`INSERT INTO mood_logs (id, user_id, date, rating, created_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (user_id, date) DO UPDATE SET rating = excluded.rating, created_at = excluded.created_at`,
		l.ID, l.UserID, l.Date, l.Rating, s.encodeTime(l.CreatedAt))
	return err
}

func (s *SQLiteStore) GetMoodLog(userID, date string) (*models.MoodLog, error) {
	row := s.db.QueryRow(
		`SELECT id, user_id, date, rating, created_at FROM mood_logs WHERE user_id = ? AND date = ?`, userID, date)
	var l models.MoodLog
	var createdAt string
	err := row.Scan(&l.ID, &l.UserID, &l.Date, &l.Rating, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	l.CreatedAt = s.decodeTime(createdAt)
	return &l, nil
}

func (s *SQLiteStore) InsertExerciseLog(l *models.ExerciseLog) error {
	_, err := s.db.Exec(
		`INSERT INTO exercise_logs (id, user_id, date, minutes, description, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		l.ID, l.UserID, l.Date, l.Minutes, l.Description, s.encodeTime(l.CreatedAt))
	return err
}

func (s *SQLiteStore) ListExerciseLogs(userID, date string) ([]*models.ExerciseLog, error) {
	rows, err := s.db.Query(
		`SELECT id, user_id, date, minutes, description, created_at FROM exercise_logs WHERE user_id = ? AND date = ? ORDER BY created_at, id`,
		userID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []*models.ExerciseLog{}
	for rows.Next() {
		var l models.ExerciseLog
		var createdAt string
		if err := rows.Scan(&l.ID, &l.UserID, &l.Date, &l.Minutes, &l.Description, &createdAt); err != nil {
			return nil, err
		}
		l.CreatedAt = s.decodeTime(createdAt)
		out = append(out, &l)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) GetGoals(userID string) (*models.DailyGoals, error) {
	row := s.db.QueryRow(
		`SELECT user_id, water_ml, calories, protein, carbs, fat, fiber FROM daily_goals WHERE user_id = ?`, userID)
	var g models.DailyGoals
	err := row.Scan(&g.UserID, &g.WaterML, &g.Calories, &g.Protein, &g.Carbs, &g.Fat, &g.Fiber)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *SQLiteStore) SetGoals(g *models.DailyGoals) error {
	_, err := s.db.Exec(
		`INSERT INTO daily_goals (user_id, water_ml, calories, protein, carbs, fat, fiber) VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (user_id) DO UPDATE SET
		   water_ml = excluded.water_ml, calories = excluded.calories, protein = excluded.protein,
		   carbs = excluded.carbs, fat = excluded.fat, fiber = excluded.fiber`,
		g.UserID, g.WaterML, g.Calories, g.Protein, g.Carbs, g.Fat, g.Fiber)
	return err
}
