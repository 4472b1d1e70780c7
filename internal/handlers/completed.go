package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"speechcoach/internal/service"

	"go.uber.org/zap"
)

// CompletedHandler serves the per-day exercise completion log
type CompletedHandler struct {
	completed *service.CompletedExerciseService
	logger    *zap.Logger
}

// NewCompletedHandler creates a new completed exercise handler
func NewCompletedHandler(completed *service.CompletedExerciseService, logger *zap.Logger) *CompletedHandler {
	return &CompletedHandler{completed: completed, logger: logger}
}

// Register mounts the completed exercise routes
func (h *CompletedHandler) Register(mux *http.ServeMux, mw *Middleware) {
	mux.HandleFunc("POST /api/completed-exercises", mw.RequireAuth(h.Create))
	mux.HandleFunc("GET /api/completed-exercises/{userID}", mw.RequireAuth(h.List))
	mux.HandleFunc("GET /api/completed-exercises/{userID}/date/{date}", mw.RequireAuth(h.ByDate))
	mux.HandleFunc("GET /api/completed-exercises/{userID}/range", mw.RequireAuth(h.ByRange))
	mux.HandleFunc("GET /api/completed-exercises/{userID}/statistics", mw.RequireAuth(h.Statistics))
	mux.HandleFunc("GET /api/completed-exercises/{userID}/summary/{date}", mw.RequireAuth(h.DailySummary))
}

type completedRequest struct {
	UserID          int64  `json:"userId"`
	ExerciseName    string `json:"exerciseName"`
	ExerciseType    string `json:"exerciseType"`
	DifficultyLevel string `json:"difficultyLevel"`
	DurationSeconds int    `json:"durationSeconds"`
	Notes           string `json:"notes"`
}

// Create logs one finished exercise for today
func (h *CompletedHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req completedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.UserID <= 0 {
		badRequest(w, "userId is required")
		return
	}
	if req.ExerciseName == "" {
		badRequest(w, "exerciseName is required")
		return
	}

	entry, err := h.completed.MarkCompleted(req.UserID, req.ExerciseName, req.ExerciseType,
		req.DifficultyLevel, req.DurationSeconds, req.Notes)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// List returns every log entry for a user, newest first
func (h *CompletedHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userID")
	if !ok {
		return
	}

	entries, err := h.completed.GetAll(userID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// ByDate returns a user's log entries for one day
func (h *CompletedHandler) ByDate(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userID")
	if !ok {
		return
	}

	date, err := time.Parse(dateLayout, r.PathValue("date"))
	if err != nil {
		badRequest(w, "invalid date, expected YYYY-MM-DD")
		return
	}

	entries, err := h.completed.GetByDate(userID, date)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// ByRange returns log entries between the from and to dates inclusive
func (h *CompletedHandler) ByRange(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userID")
	if !ok {
		return
	}

	from, err := time.Parse(dateLayout, r.URL.Query().Get("from"))
	if err != nil {
		badRequest(w, "invalid from date, expected YYYY-MM-DD")
		return
	}
	to, err := time.Parse(dateLayout, r.URL.Query().Get("to"))
	if err != nil {
		badRequest(w, "invalid to date, expected YYYY-MM-DD")
		return
	}

	entries, err := h.completed.GetByDateRange(userID, from, to)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// Statistics aggregates a user's log: lifetime, today and this week
func (h *CompletedHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userID")
	if !ok {
		return
	}

	stats, err := h.completed.GetStatistics(userID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// DailySummary reports one day's log with grouping totals
func (h *CompletedHandler) DailySummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userID")
	if !ok {
		return
	}

	date, err := time.Parse(dateLayout, r.PathValue("date"))
	if err != nil {
		badRequest(w, "invalid date, expected YYYY-MM-DD")
		return
	}

	summary, err := h.completed.GetDailySummary(userID, date)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
