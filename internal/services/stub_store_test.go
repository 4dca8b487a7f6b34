package services

import (
	"sort"
	"strings"

	"github.com/vidaplena/vidaplena/internal/models"
)

// stubStore backs the service tests. It satisfies every store interface in
// this package; slices keep insertion order the way the real stores do.
type stubStore struct {
	profiles    map[string]*models.Profile
	sessions    map[string]*models.Session
	questions   []*models.Question
	assignments []*models.Assignment
	responses   []*models.ResponseRecord
	plans       map[string]*models.MealPlan
	planOrder   []string
	food        []*models.FoodEntry
	water       []*models.WaterLog
	sleep       []*models.SleepLog
	moods       map[string]*models.MoodLog
	exercise    []*models.ExerciseLog
	goals       map[string]*models.DailyGoals
}

func newStubStore() *stubStore {
	return &stubStore{
		profiles: map[string]*models.Profile{},
		sessions: map[string]*models.Session{},
		plans:    map[string]*models.MealPlan{},
		moods:    map[string]*models.MoodLog{},
		goals:    map[string]*models.DailyGoals{},
	}
}

func (s *stubStore) InsertProfile(p *models.Profile) error {
	s.profiles[strings.ToLower(p.Email)] = p
	return nil
}

func (s *stubStore) FindProfileByEmail(email string) (*models.Profile, error) {
	return s.profiles[strings.ToLower(email)], nil
}

func (s *stubStore) CountProfiles() (int, error) { return len(s.profiles), nil }

func (s *stubStore) InsertSession(sc *models.Session) error {
	s.sessions[sc.ID] = sc
	return nil
}

func (s *stubStore) GetSession(id string) (*models.Session, error) {
	return s.sessions[id], nil
}

func (s *stubStore) ListSessions() ([]*models.Session, error) {
	out := []*models.Session{}
	for _, sc := range s.sessions {
		out = append(out, sc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *stubStore) InsertQuestion(q *models.Question) error {
	s.questions = append(s.questions, q)
	return nil
}

func (s *stubStore) GetQuestion(id string) (*models.Question, error) {
	for _, q := range s.questions {
		if q.ID == id {
			return q, nil
		}
	}
	return nil, nil
}

func (s *stubStore) ListQuestions(sessionID string) ([]*models.Question, error) {
	out := []*models.Question{}
	for _, q := range s.questions {
		if q.SessionID == sessionID {
			out = append(out, q)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (s *stubStore) InsertAssignment(a *models.Assignment) error {
	s.assignments = append(s.assignments, a)
	return nil
}

func (s *stubStore) GetAssignment(id string) (*models.Assignment, error) {
	for _, a := range s.assignments {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, nil
}

func (s *stubStore) FindAssignment(sessionID, userID string) (*models.Assignment, error) {
	for _, a := range s.assignments {
		if a.SessionID == sessionID && a.UserID == userID {
			return a, nil
		}
	}
	return nil, nil
}

func (s *stubStore) ListAssignmentsBySession(sessionID string) ([]*models.Assignment, error) {
	out := []*models.Assignment{}
	for _, a := range s.assignments {
		if a.SessionID == sessionID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *stubStore) UpdateAssignment(a *models.Assignment) error {
	for i, old := range s.assignments {
		if old.ID == a.ID {
			s.assignments[i] = a
			return nil
		}
	}
	return NewNotFoundError("assignment not found")
}

func (s *stubStore) AddResponses(rs []*models.ResponseRecord) error {
	s.responses = append(s.responses, rs...)
	return nil
}

func (s *stubStore) ListResponsesBySession(sessionID string) ([]*models.ResponseRecord, error) {
	out := []*models.ResponseRecord{}
	for _, r := range s.responses {
		q, _ := s.GetQuestion(r.QuestionID)
		if q != nil && q.SessionID == sessionID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubStore) InsertMealPlan(p *models.MealPlan) error {
	if _, ok := s.plans[p.ID]; !ok {
		s.planOrder = append(s.planOrder, p.ID)
	}
	s.plans[p.ID] = p
	return nil
}

func (s *stubStore) GetMealPlan(id string) (*models.MealPlan, error) {
	return s.plans[id], nil
}

func (s *stubStore) ListMealPlansByUser(userID string) ([]*models.MealPlan, error) {
	out := []*models.MealPlan{}
	for _, id := range s.planOrder {
		if p := s.plans[id]; p != nil && p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubStore) DeleteMealPlan(id string) error {
	delete(s.plans, id)
	return nil
}

func (s *stubStore) InsertFoodEntry(e *models.FoodEntry) error {
	s.food = append(s.food, e)
	return nil
}

func (s *stubStore) ListFoodEntries(userID, date string) ([]*models.FoodEntry, error) {
	out := []*models.FoodEntry{}
	for _, e := range s.food {
		if e.UserID == userID && e.Date == date {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *stubStore) InsertWaterLog(l *models.WaterLog) error {
	s.water = append(s.water, l)
	return nil
}

func (s *stubStore) ListWaterLogs(userID, date string) ([]*models.WaterLog, error) {
	out := []*models.WaterLog{}
	for _, l := range s.water {
		if l.UserID == userID && l.Date == date {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *stubStore) InsertSleepLog(l *models.SleepLog) error {
	s.sleep = append(s.sleep, l)
	return nil
}

func (s *stubStore) ListSleepLogs(userID, date string) ([]*models.SleepLog, error) {
	out := []*models.SleepLog{}
	for _, l := range s.sleep {
		if l.UserID == userID && l.Date == date {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *stubStore) UpsertMoodLog(l *models.MoodLog) error {
	s.moods[l.UserID+"|"+l.Date] = l
	return nil
}

func (s *stubStore) GetMoodLog(userID, date string) (*models.MoodLog, error) {
	return s.moods[userID+"|"+date], nil
}

func (s *stubStore) InsertExerciseLog(l *models.ExerciseLog) error {
	s.exercise = append(s.exercise, l)
	return nil
}

func (s *stubStore) ListExerciseLogs(userID, date string) ([]*models.ExerciseLog, error) {
	out := []*models.ExerciseLog{}
	for _, l := range s.exercise {
		if l.UserID == userID && l.Date == date {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *stubStore) GetGoals(userID string) (*models.DailyGoals, error) {
	return s.goals[userID], nil
}

func (s *stubStore) SetGoals(g *models.DailyGoals) error {
	s.goals[g.UserID] = g
	return nil
}
