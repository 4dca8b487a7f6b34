package services

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/vidaplena/vidaplena/internal/models"
)

type SessionStore interface {
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
}

// SessionService hosts the admin session-builder workflow and the user-side
// response submission.
type SessionService struct {
	store SessionStore
	now   func() time.Time
	idGen func() string
}

func NewSessionService(store SessionStore) *SessionService {
	return &SessionService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		idGen: func() string { return shortID(8) },
	}
}

var validQuestionTypes = map[string]bool{
	models.QuestionText:           true,
	models.QuestionNumber:         true,
	models.QuestionPercentage:     true,
	models.QuestionBoolean:        true,
	models.QuestionSingleChoice:   true,
	models.QuestionMultipleChoice: true,
}

func (s *SessionService) CreateSession(adminID, title, description string) (*models.Session, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, NewInvalidError("title required")
	}
	sc := &models.Session{
		ID:          s.idGen(),
		Title:       title,
		Description: strings.TrimSpace(description),
		CreatedBy:   adminID,
		CreatedAt:   s.now(),
	}
	if err := s.store.InsertSession(sc); err != nil {
		return nil, err
	}
	return sc, nil
}

func (s *SessionService) Sessions() ([]*models.Session, error) {
	return s.store.ListSessions()
}

// AddQuestion appends a question to a session. Position is assigned from the
// current question count, keeping builder order.
func (s *SessionService) AddQuestion(sessionID, text, qtype string, options []string) (*models.Question, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, NewInvalidError("text required")
	}
	if qtype == "" {
		qtype = models.QuestionText
	}
	if !validQuestionTypes[qtype] {
		return nil, NewInvalidError("unknown question type")
	}
	sc, err := s.store.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if sc == nil {
		return nil, NewNotFoundError("session not found")
	}
	existing, err := s.store.ListQuestions(sessionID)
	if err != nil {
		return nil, err
	}
	q := &models.Question{
		ID:        s.idGen(),
		SessionID: sessionID,
		Text:      text,
		Type:      qtype,
		Options:   options,
		Position:  len(existing) + 1,
	}
	if err := s.store.InsertQuestion(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *SessionService) Questions(sessionID string) ([]*models.Question, error) {
	sc, err := s.store.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if sc == nil {
		return nil, NewNotFoundError("session not found")
	}
	return s.store.ListQuestions(sessionID)
}

// Assign links a session to a user. Assigning the same session to the same
// user twice is a conflict.
func (s *SessionService) Assign(sessionID, userID string) (*models.Assignment, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, NewInvalidError("user_id required")
	}
	sc, err := s.store.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if sc == nil {
		return nil, NewNotFoundError("session not found")
	}
	dup, err := s.store.FindAssignment(sessionID, userID)
	if err != nil {
		return nil, err
	}
	if dup != nil {
		return nil, NewConflictError("session already assigned to user")
	}
	a := &models.Assignment{
		ID:         s.idGen(),
		UserID:     userID,
		SessionID:  sessionID,
		AssignedAt: s.now(),
	}
	if err := s.store.InsertAssignment(a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *SessionService) Assignments(sessionID string) ([]*models.Assignment, error) {
	sc, err := s.store.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if sc == nil {
		return nil, NewNotFoundError("session not found")
	}
	return s.store.ListAssignmentsBySession(sessionID)
}

// Answer mirrors the inbound submission payload for one question. Value
// accepts any JSON scalar: clients send the literal true for boolean
// questions and bare numbers for numeric ones, and those must land on the
// same stored literal as their quoted spellings.
type Answer struct {
	QuestionID string `json:"question_id"`
	Value      string `json:"value"`
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	var raw struct {
		QuestionID string          `json:"question_id"`
		Value      json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	a.QuestionID = raw.QuestionID
	a.Value = scalarToString(raw.Value)
	return nil
}

// scalarToString renders a JSON value as its literal text: strings are
// unquoted, booleans and numbers keep their source spelling (true -> "true",
// 7 -> "7"), null and absent become "".
func scalarToString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	lit := strings.TrimSpace(string(raw))
	if lit == "null" {
		return ""
	}
	return lit
}

type SubmitResult struct {
	AssignmentID   string `json:"assignment_id"`
	ResponsesCount int    `json:"responses_count"`
}

// SubmitResponses stores one record per answered question and marks the
// assignment completed. Answers to unknown questions, or to questions of a
// different session, are skipped rather than rejected. Completion is
// idempotent: a second submission keeps the original CompletedAt.
func (s *SessionService) SubmitResponses(assignmentID, userID string, answers []Answer) (*SubmitResult, error) {
	a, err := s.store.GetAssignment(assignmentID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, NewNotFoundError("assignment not found")
	}
	if a.UserID != userID {
		return nil, NewForbiddenError("assignment belongs to another user")
	}
	now := s.now()
	rs := make([]*models.ResponseRecord, 0, len(answers))
	for _, ans := range answers {
		if ans.QuestionID == "" {
			continue
		}
		q, err := s.store.GetQuestion(ans.QuestionID)
		if err != nil {
			return nil, err
		}
		if q == nil || q.SessionID != a.SessionID {
			continue
		}
		rs = append(rs, &models.ResponseRecord{
			QuestionID: ans.QuestionID,
			UserID:     userID,
			Value:      ans.Value,
			CreatedAt:  now,
		})
	}
	if err := s.store.AddResponses(rs); err != nil {
		return nil, err
	}
	if !a.IsCompleted {
		a.IsCompleted = true
		a.CompletedAt = &now
		if err := s.store.UpdateAssignment(a); err != nil {
			return nil, err
		}
	}
	return &SubmitResult{AssignmentID: a.ID, ResponsesCount: len(rs)}, nil
}
