package services

import (
	"reflect"
	"testing"
	"time"

	"github.com/vidaplena/vidaplena/internal/models"
)

func resp(qid, uid, value string) *models.ResponseRecord {
	return &models.ResponseRecord{QuestionID: qid, UserID: uid, Value: value}
}

func TestGroupResponsesKeepsEveryRecord(t *testing.T) {
	questions := []*models.Question{
		{ID: "q1", SessionID: "s1", Text: "Água", Type: models.QuestionNumber},
		{ID: "q2", SessionID: "s1", Text: "Dormiu bem?", Type: models.QuestionBoolean},
	}
	responses := []*models.ResponseRecord{
		resp("q2", "u1", "true"),
		resp("q1", "u1", "80"),
		resp("q1", "u2", "40"),
		resp("ghost", "u2", "whatever"),
	}
	groups := GroupResponses(questions, responses)
	if len(groups) != 3 {
		t.Fatalf("groups = %d, want 3", len(groups))
	}
	total := 0
	for _, g := range groups {
		total += len(g.Responses)
	}
	if total != len(responses) {
		t.Fatalf("grouped %d responses, want %d", total, len(responses))
	}
	// discovery order: q2 seen first
	if groups[0].QuestionID != "q2" || groups[1].QuestionID != "q1" {
		t.Fatalf("group order = %s,%s, want q2,q1", groups[0].QuestionID, groups[1].QuestionID)
	}
	if groups[0].QuestionText != "Dormiu bem?" {
		t.Fatalf("question text = %q", groups[0].QuestionText)
	}
	// unknown question id still gets a group, defaulting to text type
	ghost := groups[2]
	if ghost.QuestionID != "ghost" || ghost.QuestionType != models.QuestionText || ghost.QuestionText != "" {
		t.Fatalf("ghost group = %+v", ghost)
	}
}

func TestBuildChartDataNumericBuckets(t *testing.T) {
	values := []string{"0", "25", "25.5", "50", "51", "75", "76", "200", "abc"}
	responses := make([]*models.ResponseRecord, 0, len(values))
	for _, v := range values {
		responses = append(responses, resp("q1", "u", v))
	}
	got := BuildChartData(models.QuestionNumber, responses)
	want := []models.ChartPoint{
		{Name: "0-25", Value: 3}, // "abc" coerces to 0
		{Name: "26-50", Value: 2},
		{Name: "51-75", Value: 2},
		{Name: "76-100", Value: 2},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("chart = %+v, want %+v", got, want)
	}
}

func TestBuildChartDataDropsEmptyBuckets(t *testing.T) {
	responses := []*models.ResponseRecord{resp("q1", "u", "10"), resp("q1", "u", "90")}
	got := BuildChartData(models.QuestionPercentage, responses)
	want := []models.ChartPoint{{Name: "0-25", Value: 1}, {Name: "76-100", Value: 1}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("chart = %+v, want %+v", got, want)
	}
}

func TestBuildChartDataBoolean(t *testing.T) {
	values := []string{"true", "Sim", "false", "Não", "yes"}
	responses := make([]*models.ResponseRecord, 0, len(values))
	for _, v := range values {
		responses = append(responses, resp("q1", "u", v))
	}
	got := BuildChartData(models.QuestionBoolean, responses)
	want := []models.ChartPoint{{Name: "Sim", Value: 2}, {Name: "Não", Value: 3}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("chart = %+v, want %+v", got, want)
	}
}

func TestBuildChartDataTextCountsByValue(t *testing.T) {
	responses := []*models.ResponseRecord{
		resp("q1", "u1", "salada"),
		resp("q1", "u2", "sopa"),
		resp("q1", "u3", "salada"),
	}
	got := BuildChartData(models.QuestionText, responses)
	want := []models.ChartPoint{{Name: "salada", Value: 2}, {Name: "sopa", Value: 1}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("chart = %+v, want %+v", got, want)
	}
}

func TestCompletionRate(t *testing.T) {
	if got := CompletionRate(nil); got != 0 {
		t.Fatalf("empty rate = %d, want 0", got)
	}
	assignments := []*models.Assignment{
		{ID: "a1", IsCompleted: true},
		{ID: "a2"},
	}
	if got := CompletionRate(assignments); got != 50 {
		t.Fatalf("rate = %d, want 50", got)
	}
	assignments = append(assignments, &models.Assignment{ID: "a3", IsCompleted: true})
	if got := CompletionRate(assignments); got != 67 {
		t.Fatalf("rate = %d, want 67", got)
	}
}

func TestSummary(t *testing.T) {
	store := newStubStore()
	store.sessions["s1"] = &models.Session{ID: "s1", Title: "Hábitos", CreatedAt: time.Unix(0, 0)}
	store.questions = []*models.Question{
		{ID: "q1", SessionID: "s1", Text: "Água (%)", Type: models.QuestionPercentage, Position: 1},
	}
	store.assignments = []*models.Assignment{
		{ID: "a1", SessionID: "s1", UserID: "u1", IsCompleted: true},
		{ID: "a2", SessionID: "s1", UserID: "u2"},
	}
	store.responses = []*models.ResponseRecord{resp("q1", "u1", "80")}

	svc := NewAnalyticsService(store)
	sum, err := svc.Summary("s1")
	if err != nil {
		t.Fatalf("Summary returned error: %v", err)
	}
	if sum.TotalAssignments != 2 || sum.CompletionRate != 50 || sum.TotalResponses != 1 {
		t.Fatalf("summary = %+v", sum)
	}
	if len(sum.Questions) != 1 || len(sum.Questions[0].ChartData) != 1 {
		t.Fatalf("questions = %+v", sum.Questions)
	}
	if sum.Questions[0].ChartData[0].Name != "76-100" {
		t.Fatalf("bucket = %q, want 76-100", sum.Questions[0].ChartData[0].Name)
	}

	if _, err := svc.Summary("missing"); err == nil {
		t.Fatalf("expected not found for unknown session")
	}
}
