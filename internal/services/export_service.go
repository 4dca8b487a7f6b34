package services

import (
	"time"

	"github.com/vidaplena/vidaplena/internal/models"
)

type ExportStore interface {
	GetSession(id string) (*models.Session, error)
	ListQuestions(sessionID string) ([]*models.Question, error)
	ListResponsesBySession(sessionID string) ([]*models.ResponseRecord, error)
}

type ExportParams struct {
	SessionID string
	Format    string
}

type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders session responses and tracker history as CSV files.
type ExportService struct {
	store   ExportStore
	tracker *TrackerService
}

func NewExportService(store ExportStore, tracker *TrackerService) *ExportService {
	return &ExportService{store: store, tracker: tracker}
}

func (s *ExportService) ExportSessionCSV(params ExportParams) (*ExportResult, error) {
	if params.SessionID == "" {
		return nil, NewInvalidError("session_id required")
	}
	format := params.Format
	if format == "" {
		format = "responses"
	}
	sc, err := s.store.GetSession(params.SessionID)
	if err != nil {
		return nil, err
	}
	if sc == nil {
		return nil, NewNotFoundError("session not found")
	}
	questions, err := s.store.ListQuestions(params.SessionID)
	if err != nil {
		return nil, err
	}
	responses, err := s.store.ListResponsesBySession(params.SessionID)
	if err != nil {
		return nil, err
	}

	switch format {
	case "responses":
		groups := GroupResponses(questions, responses)
		rows := make([][]string, 0, len(responses))
		for _, g := range groups {
			for _, r := range g.Responses {
				rows = append(rows, []string{
					g.QuestionID,
					g.QuestionText,
					r.UserID,
					r.Value,
					r.CreatedAt.Format(time.RFC3339),
				})
			}
		}
		b := BuildCSV([]string{"question_id", "question_text", "user_id", "value", "created_at"}, rows)
		return &ExportResult{Filename: "responses.csv", ContentType: "text/csv; charset=utf-8", Data: b}, nil
	case "summary":
		groups := GroupResponses(questions, responses)
		rows := [][]string{}
		for _, g := range groups {
			for _, pt := range BuildChartData(g.QuestionType, g.Responses) {
				rows = append(rows, []string{g.QuestionID, g.QuestionText, pt.Name, itoa(pt.Value)})
			}
		}
		b := BuildCSV([]string{"question_id", "question_text", "name", "value"}, rows)
		return &ExportResult{Filename: "summary.csv", ContentType: "text/csv; charset=utf-8", Data: b}, nil
	default:
		return nil, NewInvalidError("unsupported format")
	}
}

// maxTrackerExportDays bounds a single export request to one year of rows.
const maxTrackerExportDays = 366

// ExportTrackerCSV renders one row per day in [from, to], zeros included for
// days without logs.
func (s *ExportService) ExportTrackerCSV(userID, from, to string) (*ExportResult, error) {
	start, err := time.Parse(dateLayout, from)
	if err != nil {
		return nil, NewInvalidError("from must be YYYY-MM-DD")
	}
	end, err := time.Parse(dateLayout, to)
	if err != nil {
		return nil, NewInvalidError("to must be YYYY-MM-DD")
	}
	if start.After(end) {
		return nil, NewInvalidError("from must not be after to")
	}
	if end.Sub(start) > maxTrackerExportDays*24*time.Hour {
		return nil, NewInvalidError("date range too large")
	}

	rows := [][]string{}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		day, err := s.tracker.DaySummary(userID, d.Format(dateLayout))
		if err != nil {
			return nil, err
		}
		rows = append(rows, []string{
			day.Date,
			ftoa(day.Totals.Calories),
			ftoa(day.Totals.Protein),
			ftoa(day.Totals.Carbs),
			ftoa(day.Totals.Fat),
			ftoa(day.Totals.Fiber),
			ftoa(day.WaterML),
			ftoa(day.SleepHours),
			ftoa(day.MoodRating),
			ftoa(day.ExerciseMinutes),
			itoa(day.Score),
		})
	}
	header := []string{
		"date", "calories", "protein", "carbs", "fat", "fiber",
		"water_ml", "sleep_hours", "mood", "exercise_minutes", "score",
	}
	return &ExportResult{
		Filename:    "tracker.csv",
		ContentType: "text/csv; charset=utf-8",
		Data:        BuildCSV(header, rows),
	}, nil
}
