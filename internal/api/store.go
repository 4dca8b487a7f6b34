package api

import (
	"sort"
	"strings"
	"sync"

	"github.com/vidaplena/vidaplena/internal/models"
)

// MemoryStore is the dev/test store. It keeps everything behind one RWMutex;
// data volumes here are a single clinic's worth, never large.
type MemoryStore struct {
	mu               sync.RWMutex
	profilesByEmail  map[string]*models.Profile
	sessions         map[string]*models.Session
	sessionOrder     []string
	questions        map[string]*models.Question
	questionsByScope map[string][]*models.Question
	assignments      map[string]*models.Assignment
	assignmentOrder  []string
	responses        []*models.ResponseRecord
	mealPlans        map[string]*models.MealPlan
	planOrder        []string
	foodEntries      []*models.FoodEntry
	waterLogs        []*models.WaterLog
	sleepLogs        []*models.SleepLog
	moodLogs         map[string]*models.MoodLog
	exerciseLogs     []*models.ExerciseLog
	goals            map[string]*models.DailyGoals
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		profilesByEmail:  map[string]*models.Profile{},
		sessions:         map[string]*models.Session{},
		questions:        map[string]*models.Question{},
		questionsByScope: map[string][]*models.Question{},
		assignments:      map[string]*models.Assignment{},
		mealPlans:        map[string]*models.MealPlan{},
		moodLogs:         map[string]*models.MoodLog{},
		goals:            map[string]*models.DailyGoals{},
	}
}

func (s *MemoryStore) InsertProfile(p *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profilesByEmail[strings.ToLower(p.Email)] = p
	return nil
}

func (s *MemoryStore) FindProfileByEmail(email string) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profilesByEmail[strings.ToLower(email)], nil
}

func (s *MemoryStore) CountProfiles() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.profilesByEmail), nil
}

func (s *MemoryStore) InsertSession(sc *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sc.ID]; !ok {
		s.sessionOrder = append(s.sessionOrder, sc.ID)
	}
	s.sessions[sc.ID] = sc
	return nil
}

func (s *MemoryStore) GetSession(id string) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[id], nil
}

func (s *MemoryStore) ListSessions() ([]*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Session, 0, len(s.sessionOrder))
	for _, id := range s.sessionOrder {
		out = append(out, s.sessions[id])
	}
	return out, nil
}

func (s *MemoryStore) InsertQuestion(q *models.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.questions[q.ID] = q
	s.questionsByScope[q.SessionID] = append(s.questionsByScope[q.SessionID], q)
	sort.SliceStable(s.questionsByScope[q.SessionID], func(i, j int) bool {
		return s.questionsByScope[q.SessionID][i].Position < s.questionsByScope[q.SessionID][j].Position
	})
	return nil
}

func (s *MemoryStore) GetQuestion(id string) (*models.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.questions[id], nil
}

func (s *MemoryStore) ListQuestions(sessionID string) ([]*models.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*models.Question(nil), s.questionsByScope[sessionID]...), nil
}

func (s *MemoryStore) InsertAssignment(a *models.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.assignments[a.ID]; !ok {
		s.assignmentOrder = append(s.assignmentOrder, a.ID)
	}
	s.assignments[a.ID] = a
	return nil
}

func (s *MemoryStore) GetAssignment(id string) (*models.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.assignments[id], nil
}

func (s *MemoryStore) FindAssignment(sessionID, userID string) (*models.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.assignmentOrder {
		a := s.assignments[id]
		if a.SessionID == sessionID && a.UserID == userID {
			return a, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) ListAssignmentsBySession(sessionID string) ([]*models.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*models.Assignment{}
	for _, id := range s.assignmentOrder {
		if a := s.assignments[id]; a.SessionID == sessionID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *MemoryStore) UpdateAssignment(a *models.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assignments[a.ID] = a
	return nil
}

func (s *MemoryStore) AddResponses(rs []*models.ResponseRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses = append(s.responses, rs...)
	return nil
}

func (s *MemoryStore) ListResponsesBySession(sessionID string) ([]*models.ResponseRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*models.ResponseRecord{}
	for _, r := range s.responses {
		q := s.questions[r.QuestionID]
		if q != nil && q.SessionID == sessionID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *MemoryStore) InsertMealPlan(p *models.MealPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.mealPlans[p.ID]; !ok {
		s.planOrder = append(s.planOrder, p.ID)
	}
	s.mealPlans[p.ID] = p
	return nil
}

func (s *MemoryStore) GetMealPlan(id string) (*models.MealPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mealPlans[id], nil
}

func (s *MemoryStore) ListMealPlansByUser(userID string) ([]*models.MealPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*models.MealPlan{}
	for _, id := range s.planOrder {
		if p := s.mealPlans[id]; p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *MemoryStore) DeleteMealPlan(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.mealPlans, id)
	for i, pid := range s.planOrder {
		if pid == id {
			s.planOrder = append(s.planOrder[:i], s.planOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (s *MemoryStore) InsertFoodEntry(e *models.FoodEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.foodEntries = append(s.foodEntries, e)
	return nil
}

func (s *MemoryStore) ListFoodEntries(userID, date string) ([]*models.FoodEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*models.FoodEntry{}
	for _, e := range s.foodEntries {
		if e.UserID == userID && e.Date == date {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *MemoryStore) InsertWaterLog(l *models.WaterLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.waterLogs = append(s.waterLogs, l)
	return nil
}

func (s *MemoryStore) ListWaterLogs(userID, date string) ([]*models.WaterLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*models.WaterLog{}
	for _, l := range s.waterLogs {
		if l.UserID == userID && l.Date == date {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *MemoryStore) InsertSleepLog(l *models.SleepLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sleepLogs = append(s.sleepLogs, l)
	return nil
}

func (s *MemoryStore) ListSleepLogs(userID, date string) ([]*models.SleepLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*models.SleepLog{}
	for _, l := range s.sleepLogs {
		if l.UserID == userID && l.Date == date {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *MemoryStore) UpsertMoodLog(l *models.MoodLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.moodLogs[l.UserID+"|"+l.Date] = l
	return nil
}

func (s *MemoryStore) GetMoodLog(userID, date string) (*models.MoodLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.moodLogs[userID+"|"+date], nil
}

func (s *MemoryStore) InsertExerciseLog(l *models.ExerciseLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exerciseLogs = append(s.exerciseLogs, l)
	return nil
}

func (s *MemoryStore) ListExerciseLogs(userID, date string) ([]*models.ExerciseLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*models.ExerciseLog{}
	for _, l := range s.exerciseLogs {
		if l.UserID == userID && l.Date == date {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *MemoryStore) GetGoals(userID string) (*models.DailyGoals, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.goals[userID], nil
}

func (s *MemoryStore) SetGoals(g *models.DailyGoals) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.goals[g.UserID] = g
	return nil
}
