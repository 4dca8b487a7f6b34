package services

import (
	"strings"
	"testing"
	"time"

	"github.com/vidaplena/vidaplena/internal/models"
)

func newExportFixture() (*stubStore, *ExportService) {
	store := newStubStore()
	store.sessions["s1"] = &models.Session{ID: "s1", Title: "Check-in"}
	store.questions = []*models.Question{
		{ID: "q1", SessionID: "s1", Text: "Dormiu bem?", Type: models.QuestionBoolean, Position: 1},
	}
	store.responses = []*models.ResponseRecord{
		{QuestionID: "q1", UserID: "u1", Value: "true", CreatedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)},
		{QuestionID: "q1", UserID: "u2", Value: "false", CreatedAt: time.Date(2025, 3, 1, 13, 0, 0, 0, time.UTC)},
	}
	return store, NewExportService(store, NewTrackerService(store))
}

func TestExportSessionCSVResponses(t *testing.T) {
	_, svc := newExportFixture()
	res, err := svc.ExportSessionCSV(ExportParams{SessionID: "s1", Format: "responses"})
	if err != nil {
		t.Fatalf("export returned error: %v", err)
	}
	if res.Filename != "responses.csv" || !strings.HasPrefix(res.ContentType, "text/csv") {
		t.Fatalf("result meta = %+v", res)
	}
	lines := strings.Split(strings.TrimRight(string(res.Data), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(lines))
	}
	if lines[0] != "question_id,question_text,user_id,value,created_at" {
		t.Fatalf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "q1,Dormiu bem?,u1,true,2025-03-01T12:00:00Z") {
		t.Fatalf("row = %q", lines[1])
	}
}

func TestExportSessionCSVSummary(t *testing.T) {
	_, svc := newExportFixture()
	res, err := svc.ExportSessionCSV(ExportParams{SessionID: "s1", Format: "summary"})
	if err != nil {
		t.Fatalf("export returned error: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(res.Data), "\n"), "\n")
	if lines[0] != "question_id,question_text,name,value" {
		t.Fatalf("header = %q", lines[0])
	}
	if lines[1] != "q1,Dormiu bem?,Sim,1" || lines[2] != "q1,Dormiu bem?,Não,1" {
		t.Fatalf("rows = %q", lines[1:])
	}
}

func TestExportSessionCSVValidation(t *testing.T) {
	_, svc := newExportFixture()
	if _, err := svc.ExportSessionCSV(ExportParams{}); err == nil {
		t.Fatalf("expected error for missing session id")
	}
	if _, err := svc.ExportSessionCSV(ExportParams{SessionID: "nope"}); err == nil {
		t.Fatalf("expected not found")
	}
	_, err := svc.ExportSessionCSV(ExportParams{SessionID: "s1", Format: "pdf"})
	if se, ok := AsServiceError(err); !ok || se.Code != ErrorInvalid {
		t.Fatalf("expected invalid error, got %v", err)
	}
}

func TestExportTrackerCSV(t *testing.T) {
	store, svc := newExportFixture()
	store.goals["u1"] = &models.DailyGoals{UserID: "u1", WaterML: 2000, Calories: 2000}
	store.water = []*models.WaterLog{{ID: "w1", UserID: "u1", Date: "2025-03-01", AmountML: 1000}}

	res, err := svc.ExportTrackerCSV("u1", "2025-03-01", "2025-03-02")
	if err != nil {
		t.Fatalf("export returned error: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(res.Data), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want header + 2 days", len(lines))
	}
	if !strings.HasPrefix(lines[1], "2025-03-01,") || !strings.HasPrefix(lines[2], "2025-03-02,") {
		t.Fatalf("rows = %q", lines[1:])
	}
	if !strings.Contains(lines[1], ",1000,") {
		t.Fatalf("expected water total in row: %q", lines[1])
	}
}

func TestExportTrackerCSVRangeValidation(t *testing.T) {
	_, svc := newExportFixture()
	if _, err := svc.ExportTrackerCSV("u1", "bad", "2025-03-02"); err == nil {
		t.Fatalf("expected error for bad from")
	}
	if _, err := svc.ExportTrackerCSV("u1", "2025-03-02", "2025-03-01"); err == nil {
		t.Fatalf("expected error for inverted range")
	}
	if _, err := svc.ExportTrackerCSV("u1", "2024-01-01", "2025-06-01"); err == nil {
		t.Fatalf("expected error for oversized range")
	}
}
