package handlers

import (
	"encoding/json"
	"net/http"

	"speechcoach/internal/service"

	"go.uber.org/zap"
)

// ProgressHandler serves daily progress summaries and analytics
type ProgressHandler struct {
	progress *service.ProgressService
	users    *service.UserService
	logger   *zap.Logger
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(progress *service.ProgressService, users *service.UserService, logger *zap.Logger) *ProgressHandler {
	return &ProgressHandler{progress: progress, users: users, logger: logger}
}

// Register mounts the progress routes
func (h *ProgressHandler) Register(mux *http.ServeMux, mw *Middleware) {
	mux.HandleFunc("GET /api/progress/{userID}", mw.RequireAuth(h.Summary))
	mux.HandleFunc("POST /api/progress/{userID}/daily", mw.RequireAuth(h.UpdateDaily))
	mux.HandleFunc("GET /api/progress/{userID}/analytics", mw.RequireAuth(h.Analytics))
	mux.HandleFunc("GET /api/progress/{userID}/weekly", mw.RequireAuth(h.Weekly))
	mux.HandleFunc("GET /api/progress/{userID}/monthly", mw.RequireAuth(h.Monthly))
}

// Summary reports today's totals plus the trailing week
func (h *ProgressHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userID")
	if !ok {
		return
	}

	user, err := h.users.GetUser(userID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	summary, err := h.progress.GetUserProgressSummary(user)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// UpdateDaily overwrites today's record with the provided absolute values
func (h *ProgressHandler) UpdateDaily(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userID")
	if !ok {
		return
	}

	var update service.DailyProgressUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	user, err := h.users.GetUser(userID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	progress, err := h.progress.UpdateDailyProgress(user, update)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

// Analytics reports the thirty-day trend and consistency figures
func (h *ProgressHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userID")
	if !ok {
		return
	}

	if _, err := h.users.GetUser(userID); err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	analytics, err := h.progress.GetProgressAnalytics(userID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, analytics)
}

// Weekly returns the trailing seven days of records
func (h *ProgressHandler) Weekly(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userID")
	if !ok {
		return
	}

	records, err := h.progress.GetWeeklyProgress(userID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// Monthly returns the trailing thirty days of records
func (h *ProgressHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userID")
	if !ok {
		return
	}

	records, err := h.progress.GetMonthlyProgress(userID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}
