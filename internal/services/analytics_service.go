package services

import (
	"math"
	"strconv"
	"strings"

	"github.com/vidaplena/vidaplena/internal/models"
)

type AnalyticsStore interface {
	GetSession(id string) (*models.Session, error)
	ListQuestions(sessionID string) ([]*models.Question, error)
	ListResponsesBySession(sessionID string) ([]*models.ResponseRecord, error)
	ListAssignmentsBySession(sessionID string) ([]*models.Assignment, error)
}

type AnalyticsService struct {
	store AnalyticsStore
}

func NewAnalyticsService(store AnalyticsStore) *AnalyticsService {
	return &AnalyticsService{store: store}
}

// QuestionAggregate collects every response to one question plus its
// chart-ready breakdown. Recomputed on each analytics load, never persisted.
type QuestionAggregate struct {
	QuestionID   string                   `json:"question_id"`
	QuestionText string                   `json:"question_text"`
	QuestionType string                   `json:"question_type"`
	Responses    []*models.ResponseRecord `json:"responses"`
	ChartData    []models.ChartPoint      `json:"chart_data"`
}

type SessionSummary struct {
	Session          *models.Session      `json:"session"`
	TotalAssignments int                  `json:"total_assignments"`
	CompletionRate   int                  `json:"completion_rate"`
	TotalResponses   int                  `json:"total_responses"`
	Questions        []*QuestionAggregate `json:"questions"`
}

// Summary builds the admin analytics view for one session.
func (s *AnalyticsService) Summary(sessionID string) (*SessionSummary, error) {
	sc, err := s.store.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if sc == nil {
		return nil, NewNotFoundError("session not found")
	}
	questions, err := s.store.ListQuestions(sessionID)
	if err != nil {
		return nil, err
	}
	responses, err := s.store.ListResponsesBySession(sessionID)
	if err != nil {
		return nil, err
	}
	assignments, err := s.store.ListAssignmentsBySession(sessionID)
	if err != nil {
		return nil, err
	}
	groups := GroupResponses(questions, responses)
	for _, g := range groups {
		g.ChartData = BuildChartData(g.QuestionType, g.Responses)
	}
	return &SessionSummary{
		Session:          sc,
		TotalAssignments: len(assignments),
		CompletionRate:   CompletionRate(assignments),
		TotalResponses:   len(responses),
		Questions:        groups,
	}, nil
}

// GroupResponses partitions responses by question id in a single pass. A
// group is created the first time its question id is seen, so group order is
// discovery order and responses keep their insertion order within a group.
// Responses to unknown question ids are grouped too; the grouper never drops
// a record.
func GroupResponses(questions []*models.Question, responses []*models.ResponseRecord) []*QuestionAggregate {
	byID := make(map[string]*models.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}
	index := map[string]int{}
	groups := make([]*QuestionAggregate, 0, len(questions))
	for _, r := range responses {
		i, ok := index[r.QuestionID]
		if !ok {
			g := &QuestionAggregate{QuestionID: r.QuestionID, QuestionType: models.QuestionText}
			if q := byID[r.QuestionID]; q != nil {
				g.QuestionText = q.Text
				g.QuestionType = q.Type
			}
			index[r.QuestionID] = len(groups)
			groups = append(groups, g)
			i = len(groups) - 1
		}
		groups[i].Responses = append(groups[i].Responses, r)
	}
	return groups
}

var bucketLabels = []string{"0-25", "26-50", "51-75", "76-100"}

// BuildChartData turns a question's responses into {name, value} pairs.
// Numeric types are bucketed into four fixed ranges with empty buckets
// dropped; boolean values are normalized to "Sim"/"Não" before counting;
// everything else is counted by exact value in discovery order.
func BuildChartData(questionType string, responses []*models.ResponseRecord) []models.ChartPoint {
	switch questionType {
	case models.QuestionNumber, models.QuestionPercentage:
		counts := make([]int, len(bucketLabels))
		for _, r := range responses {
			counts[bucketIndex(coerceNumber(r.Value))]++
		}
		out := make([]models.ChartPoint, 0, len(bucketLabels))
		for i, label := range bucketLabels {
			if counts[i] == 0 {
				continue
			}
			out = append(out, models.ChartPoint{Name: label, Value: counts[i]})
		}
		return out
	case models.QuestionBoolean:
		return countValues(responses, NormalizeBool)
	default:
		return countValues(responses, func(v string) string { return v })
	}
}

func countValues(responses []*models.ResponseRecord, norm func(string) string) []models.ChartPoint {
	index := map[string]int{}
	out := []models.ChartPoint{}
	for _, r := range responses {
		name := norm(r.Value)
		i, ok := index[name]
		if !ok {
			index[name] = len(out)
			out = append(out, models.ChartPoint{Name: name})
			i = len(out) - 1
		}
		out[i].Value++
	}
	return out
}

// bucketIndex assigns v to one of the four inclusive-upper-bound ranges.
// Anything above 75 lands in the last bucket, so out-of-range values never
// fall through.
func bucketIndex(v float64) int {
	switch {
	case v <= 25:
		return 0
	case v <= 50:
		return 1
	case v <= 75:
		return 2
	default:
		return 3
	}
}

// coerceNumber parses a response value as a number. Non-numeric input
// silently becomes 0; that is the fallback policy, not a validation error.
func coerceNumber(v string) float64 {
	n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0
	}
	return n
}

// NormalizeBool maps affirmative boolean spellings onto the literal "Sim"
// and everything else onto "Não". The JSON literal true, the string "true"
// and the string "Sim" are all equivalent by business rule.
func NormalizeBool(v string) string {
	switch strings.TrimSpace(v) {
	case "true", "Sim":
		return "Sim"
	}
	return "Não"
}

// CompletionRate is the integer percentage of completed assignments.
func CompletionRate(assignments []*models.Assignment) int {
	if len(assignments) == 0 {
		return 0
	}
	done := 0
	for _, a := range assignments {
		if a.IsCompleted {
			done++
		}
	}
	return int(math.Round(float64(done) / float64(len(assignments)) * 100))
}
