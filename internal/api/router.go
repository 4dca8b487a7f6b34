package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/vidaplena/vidaplena/internal/middleware"
	"github.com/vidaplena/vidaplena/internal/models"
	"github.com/vidaplena/vidaplena/internal/services"
	"github.com/vidaplena/vidaplena/internal/utils"
)

type Router struct {
	store     Store
	logger    *zap.Logger
	auth      *services.AuthService
	sessions  *services.SessionService
	analytics *services.AnalyticsService
	tracker   *services.TrackerService
	mealPlans *services.MealPlanService
	exports   *services.ExportService
	variants  *services.VariantPicker
}

func NewRouter(store Store, logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	tracker := services.NewTrackerService(store)
	return &Router{
		store:     store,
		logger:    logger,
		auth:      services.NewAuthService(store, middleware.SignToken),
		sessions:  services.NewSessionService(store),
		analytics: services.NewAnalyticsService(store),
		tracker:   tracker,
		mealPlans: services.NewMealPlanService(store),
		exports:   services.NewExportService(store, tracker),
		variants:  services.NewVariantPicker(nil),
	}
}

func (rt *Router) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/auth/register", rt.handleRegister)   // POST
	mux.HandleFunc("/api/auth/login", rt.handleLogin)         // POST
	mux.HandleFunc("/api/sessions", rt.handleSessions)        // POST, GET
	mux.HandleFunc("/api/sessions/", rt.handleSessionScoped)  // {id}/questions|assign|assignments|summary
	mux.HandleFunc("/api/assignments/", rt.handleAssignment)  // {id}/responses
	mux.HandleFunc("/api/mealplans", rt.handleMealPlans)      // POST, GET
	mux.HandleFunc("/api/mealplans/", rt.handleMealPlan)      // {id}[/html]
	mux.HandleFunc("/api/tracker/food", rt.handleFood)        // POST
	mux.HandleFunc("/api/tracker/water", rt.handleWater)      // POST
	mux.HandleFunc("/api/tracker/sleep", rt.handleSleep)      // POST
	mux.HandleFunc("/api/tracker/mood", rt.handleMood)        // POST
	mux.HandleFunc("/api/tracker/exercise", rt.handleExercise) // POST
	mux.HandleFunc("/api/tracker/day", rt.handleDay)          // GET
	mux.HandleFunc("/api/tracker/goals", rt.handleGoals)      // GET, PUT
	mux.HandleFunc("/api/export", rt.handleExport)            // GET
	mux.HandleFunc("/api/export/tracker", rt.handleExportTracker) // GET
	mux.HandleFunc("/api/loading-variant", rt.handleLoadingVariant) // GET
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// fail maps service errors onto HTTP statuses. Unexpected errors are logged
// and surfaced as a generic localized message, never as internals.
func (rt *Router) fail(w http.ResponseWriter, r *http.Request, err error, key string) {
	if se, ok := services.AsServiceError(err); ok {
		status := http.StatusBadRequest
		switch se.Code {
		case services.ErrorForbidden:
			status = http.StatusForbidden
		case services.ErrorNotFound:
			status = http.StatusNotFound
		case services.ErrorConflict:
			status = http.StatusConflict
		case services.ErrorUnauthorized:
			status = http.StatusUnauthorized
		}
		http.Error(w, se.Message, status)
		return
	}
	rt.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	locale := middleware.LocaleFromContext(r.Context())
	http.Error(w, utils.T(locale, key), http.StatusInternalServerError)
}

func (rt *Router) requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	uid, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return "", false
	}
	return uid, true
}

func (rt *Router) requireAdmin(w http.ResponseWriter, r *http.Request) (string, bool) {
	uid, ok := rt.requireUser(w, r)
	if !ok {
		return "", false
	}
	if !middleware.IsAdminFromContext(r.Context()) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return "", false
	}
	return uid, true
}

// POST /api/auth/register
func (rt *Router) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := rt.auth.Register(req.Email, req.Password, req.Name)
	if err != nil {
		rt.fail(w, r, err, "error.save")
		return
	}
	writeJSON(w, map[string]any{"token": res.Token, "user_id": res.UserID, "role": res.Role, "name": res.Name})
}

// POST /api/auth/login
func (rt *Router) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := rt.auth.Login(req.Email, req.Password)
	if err != nil {
		rt.fail(w, r, err, "error.load")
		return
	}
	writeJSON(w, map[string]any{"token": res.Token, "user_id": res.UserID, "role": res.Role, "name": res.Name})
}

// POST /api/sessions | GET /api/sessions
func (rt *Router) handleSessions(w http.ResponseWriter, r *http.Request) {
	uid, ok := rt.requireAdmin(w, r)
	if !ok {
		return
	}
	switch r.Method {
	case http.MethodPost:
		var req struct {
			Title       string `json:"title"`
			Description string `json:"description"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		sc, err := rt.sessions.CreateSession(uid, req.Title, req.Description)
		if err != nil {
			rt.fail(w, r, err, "error.save")
			return
		}
		writeJSON(w, sc)
	case http.MethodGet:
		out, err := rt.sessions.Sessions()
		if err != nil {
			rt.fail(w, r, err, "error.load")
			return
		}
		writeJSON(w, out)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// /api/sessions/{id}/questions | assign | assignments | summary
func (rt *Router) handleSessionScoped(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/sessions/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" {
		http.NotFound(w, r)
		return
	}
	id := parts[0]
	switch parts[1] {
	case "questions":
		rt.handleQuestions(w, r, id)
	case "assign":
		rt.handleAssign(w, r, id)
	case "assignments":
		rt.handleAssignments(w, r, id)
	case "summary":
		rt.handleSummary(w, r, id)
	default:
		http.NotFound(w, r)
	}
}

func (rt *Router) handleQuestions(w http.ResponseWriter, r *http.Request, sessionID string) {
	switch r.Method {
	case http.MethodPost:
		if _, ok := rt.requireAdmin(w, r); !ok {
			return
		}
		var req struct {
			Text    string   `json:"text"`
			Type    string   `json:"type"`
			Options []string `json:"options"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		q, err := rt.sessions.AddQuestion(sessionID, req.Text, req.Type, req.Options)
		if err != nil {
			rt.fail(w, r, err, "error.save")
			return
		}
		writeJSON(w, q)
	case http.MethodGet:
		if _, ok := rt.requireUser(w, r); !ok {
			return
		}
		qs, err := rt.sessions.Questions(sessionID)
		if err != nil {
			rt.fail(w, r, err, "error.load")
			return
		}
		writeJSON(w, map[string]any{"session_id": sessionID, "questions": qs})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (rt *Router) handleAssign(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if _, ok := rt.requireAdmin(w, r); !ok {
		return
	}
	var req struct {
		UserID string `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	a, err := rt.sessions.Assign(sessionID, req.UserID)
	if err != nil {
		rt.fail(w, r, err, "error.save")
		return
	}
	writeJSON(w, a)
}

func (rt *Router) handleAssignments(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if _, ok := rt.requireAdmin(w, r); !ok {
		return
	}
	out, err := rt.sessions.Assignments(sessionID)
	if err != nil {
		rt.fail(w, r, err, "error.load")
		return
	}
	writeJSON(w, out)
}

func (rt *Router) handleSummary(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if _, ok := rt.requireAdmin(w, r); !ok {
		return
	}
	summary, err := rt.analytics.Summary(sessionID)
	if err != nil {
		rt.fail(w, r, err, "error.load")
		return
	}
	writeJSON(w, summary)
}

// POST /api/assignments/{id}/responses
func (rt *Router) handleAssignment(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/assignments/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] != "responses" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	uid, ok := rt.requireUser(w, r)
	if !ok {
		return
	}
	var req struct {
		Answers []services.Answer `json:"answers"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := rt.sessions.SubmitResponses(parts[0], uid, req.Answers)
	if err != nil {
		rt.fail(w, r, err, "error.save")
		return
	}
	writeJSON(w, res)
}

// POST /api/mealplans | GET /api/mealplans[?user_id=]
func (rt *Router) handleMealPlans(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		if _, ok := rt.requireAdmin(w, r); !ok {
			return
		}
		var req struct {
			UserID string               `json:"user_id"`
			Title  string               `json:"title"`
			Days   []models.MealPlanDay `json:"days"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		p, err := rt.mealPlans.CreatePlan(req.UserID, req.Title, req.Days)
		if err != nil {
			rt.fail(w, r, err, "error.save")
			return
		}
		writeJSON(w, p)
	case http.MethodGet:
		uid, ok := rt.requireUser(w, r)
		if !ok {
			return
		}
		target := uid
		if q := r.URL.Query().Get("user_id"); q != "" && middleware.IsAdminFromContext(r.Context()) {
			target = q
		}
		out, err := rt.mealPlans.PlansByUser(target)
		if err != nil {
			rt.fail(w, r, err, "error.load")
			return
		}
		writeJSON(w, out)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// GET|DELETE /api/mealplans/{id} | GET /api/mealplans/{id}/html
func (rt *Router) handleMealPlan(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/mealplans/")
	parts := strings.Split(rest, "/")
	if parts[0] == "" || len(parts) > 2 {
		http.NotFound(w, r)
		return
	}
	id := parts[0]
	uid, ok := rt.requireUser(w, r)
	if !ok {
		return
	}
	if len(parts) == 2 {
		if parts[1] != "html" || r.Method != http.MethodGet {
			http.NotFound(w, r)
			return
		}
		if !rt.canSeePlan(w, r, id, uid) {
			return
		}
		b, err := rt.mealPlans.PlanHTML(id)
		if err != nil {
			rt.fail(w, r, err, "error.export")
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(b)
		return
	}
	switch r.Method {
	case http.MethodGet:
		if !rt.canSeePlan(w, r, id, uid) {
			return
		}
		p, err := rt.mealPlans.Plan(id)
		if err != nil {
			rt.fail(w, r, err, "error.load")
			return
		}
		writeJSON(w, p)
	case http.MethodDelete:
		if _, ok := rt.requireAdmin(w, r); !ok {
			return
		}
		if err := rt.mealPlans.DeletePlan(id); err != nil {
			rt.fail(w, r, err, "error.save")
			return
		}
		writeJSON(w, map[string]any{"ok": true})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// canSeePlan enforces that regular users only read their own plans.
func (rt *Router) canSeePlan(w http.ResponseWriter, r *http.Request, planID, uid string) bool {
	if middleware.IsAdminFromContext(r.Context()) {
		return true
	}
	p, err := rt.mealPlans.Plan(planID)
	if err != nil {
		rt.fail(w, r, err, "error.load")
		return false
	}
	if p.UserID != uid {
		http.Error(w, "forbidden", http.StatusForbidden)
		return false
	}
	return true
}

func (rt *Router) handleFood(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	uid, ok := rt.requireUser(w, r)
	if !ok {
		return
	}
	var req struct {
		Date        string             `json:"date"`
		Meal        string             `json:"meal"`
		Description string             `json:"description"`
		Macros      models.MacroTotals `json:"macros"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	e, err := rt.tracker.AddFood(uid, req.Date, req.Meal, req.Description, req.Macros)
	if err != nil {
		rt.fail(w, r, err, "error.save")
		return
	}
	writeJSON(w, e)
}

func (rt *Router) handleWater(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	uid, ok := rt.requireUser(w, r)
	if !ok {
		return
	}
	var req struct {
		Date     string  `json:"date"`
		AmountML float64 `json:"amount_ml"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	l, err := rt.tracker.AddWater(uid, req.Date, req.AmountML)
	if err != nil {
		rt.fail(w, r, err, "error.save")
		return
	}
	writeJSON(w, l)
}

func (rt *Router) handleSleep(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	uid, ok := rt.requireUser(w, r)
	if !ok {
		return
	}
	var req struct {
		Date  string  `json:"date"`
		Hours float64 `json:"hours"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	l, err := rt.tracker.AddSleep(uid, req.Date, req.Hours)
	if err != nil {
		rt.fail(w, r, err, "error.save")
		return
	}
	writeJSON(w, l)
}

func (rt *Router) handleMood(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	uid, ok := rt.requireUser(w, r)
	if !ok {
		return
	}
	var req struct {
		Date   string  `json:"date"`
		Rating float64 `json:"rating"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	l, err := rt.tracker.SetMood(uid, req.Date, req.Rating)
	if err != nil {
		rt.fail(w, r, err, "error.save")
		return
	}
	writeJSON(w, l)
}

func (rt *Router) handleExercise(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	uid, ok := rt.requireUser(w, r)
	if !ok {
		return
	}
	var req struct {
		Date        string  `json:"date"`
		Minutes     float64 `json:"minutes"`
		Description string  `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	l, err := rt.tracker.AddExercise(uid, req.Date, req.Minutes, req.Description)
	if err != nil {
		rt.fail(w, r, err, "error.save")
		return
	}
	writeJSON(w, l)
}

// GET /api/tracker/day?date=YYYY-MM-DD
func (rt *Router) handleDay(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	uid, ok := rt.requireUser(w, r)
	if !ok {
		return
	}
	day, err := rt.tracker.DaySummary(uid, r.URL.Query().Get("date"))
	if err != nil {
		rt.fail(w, r, err, "error.load")
		return
	}
	writeJSON(w, day)
}

// GET | PUT /api/tracker/goals
func (rt *Router) handleGoals(w http.ResponseWriter, r *http.Request) {
	uid, ok := rt.requireUser(w, r)
	if !ok {
		return
	}
	switch r.Method {
	case http.MethodGet:
		g, err := rt.tracker.Goals(uid)
		if err != nil {
			rt.fail(w, r, err, "error.load")
			return
		}
		writeJSON(w, g)
	case http.MethodPut:
		var g models.DailyGoals
		if err := json.NewDecoder(r.Body).Decode(&g); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		g.UserID = uid
		if err := rt.tracker.SetGoals(&g); err != nil {
			rt.fail(w, r, err, "error.save")
			return
		}
		writeJSON(w, g)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// GET /api/export?session_id=...&format=responses|summary
func (rt *Router) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if _, ok := rt.requireAdmin(w, r); !ok {
		return
	}
	res, err := rt.exports.ExportSessionCSV(services.ExportParams{
		SessionID: r.URL.Query().Get("session_id"),
		Format:    r.URL.Query().Get("format"),
	})
	if err != nil {
		rt.fail(w, r, err, "error.export")
		return
	}
	w.Header().Set("Content-Type", res.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+res.Filename)
	_, _ = w.Write(res.Data)
}

// GET /api/export/tracker?from=YYYY-MM-DD&to=YYYY-MM-DD
func (rt *Router) handleExportTracker(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	uid, ok := rt.requireUser(w, r)
	if !ok {
		return
	}
	res, err := rt.exports.ExportTrackerCSV(uid, r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		rt.fail(w, r, err, "error.export")
		return
	}
	w.Header().Set("Content-Type", res.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+res.Filename)
	_, _ = w.Write(res.Data)
}

// GET /api/loading-variant — public; feeds the decorative loading screen.
func (rt *Router) handleLoadingVariant(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, rt.variants.Pick())
}
