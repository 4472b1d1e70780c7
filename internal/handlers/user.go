package handlers

import (
	"encoding/json"
	"net/http"

	"speechcoach/internal/models"
	"speechcoach/internal/service"

	"go.uber.org/zap"
)

// UserHandler serves account and per-user progress routes
type UserHandler struct {
	users    *service.UserService
	progress *service.ProgressService
	logger   *zap.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(users *service.UserService, progress *service.ProgressService, logger *zap.Logger) *UserHandler {
	return &UserHandler{users: users, progress: progress, logger: logger}
}

// Register mounts the user routes
func (h *UserHandler) Register(mux *http.ServeMux, mw *Middleware) {
	mux.HandleFunc("POST /api/users", h.Create)
	mux.HandleFunc("GET /api/users/default", h.GetDefault)
	mux.HandleFunc("GET /api/users/{id}", mw.RequireAuth(h.Get))
	mux.HandleFunc("PUT /api/users/{id}", mw.RequireAuth(h.Update))
	mux.HandleFunc("GET /api/users/{id}/statistics", mw.RequireAuth(h.Statistics))
	mux.HandleFunc("GET /api/users/{id}/progress", mw.RequireAuth(h.TodayProgress))
	mux.HandleFunc("GET /api/users/{id}/weekly-progress", mw.RequireAuth(h.WeeklyProgress))
	mux.HandleFunc("POST /api/users/{id}/update-progress", mw.RequireAuth(h.UpdateProgress))
}

// Create makes a new account without credentials, defaults applied
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	created, err := h.users.CreateUser(&user)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Get returns one account
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	user, err := h.users.GetUser(id)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// GetDefault returns the demo account, creating it when missing
func (h *UserHandler) GetDefault(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetDefaultUser()
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Update changes profile fields on an account
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var updated models.User
	if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	user, err := h.users.UpdateUser(id, &updated)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Statistics reports lifetime totals and current-week activity
func (h *UserHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	stats, err := h.users.GetUserStatistics(id)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// TodayProgress returns today's practice record
func (h *UserHandler) TodayProgress(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	user, err := h.users.GetUser(id)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	progress, err := h.progress.GetTodayProgress(user)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

// WeeklyProgress returns the trailing seven days of practice records
func (h *UserHandler) WeeklyProgress(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if _, err := h.users.GetUser(id); err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	week, err := h.progress.GetWeeklyProgress(id)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, week)
}

type updateProgressRequest struct {
	Points int `json:"points"`
}

// UpdateProgress credits points for a finished exercise and advances the streak
func (h *UserHandler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req updateProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.Points < 0 {
		badRequest(w, "points must not be negative")
		return
	}

	user, err := h.users.GetUser(id)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	if err := h.users.AwardPoints(user, req.Points); err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
