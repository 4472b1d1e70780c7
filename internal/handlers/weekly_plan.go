package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"speechcoach/internal/service"

	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// WeeklyPlanHandler serves weekly schedules and the body exercise catalog
type WeeklyPlanHandler struct {
	plans  *service.WeeklyPlanService
	users  *service.UserService
	logger *zap.Logger
}

// NewWeeklyPlanHandler creates a new weekly plan handler
func NewWeeklyPlanHandler(plans *service.WeeklyPlanService, users *service.UserService, logger *zap.Logger) *WeeklyPlanHandler {
	return &WeeklyPlanHandler{plans: plans, users: users, logger: logger}
}

// Register mounts the weekly plan routes
func (h *WeeklyPlanHandler) Register(mux *http.ServeMux, mw *Middleware) {
	mux.HandleFunc("GET /api/weekly-plan/statistics", mw.RequireAuth(h.Statistics))
	mux.HandleFunc("GET /api/weekly-plan/body-exercises", mw.RequireAuth(h.BodyExercises))
	mux.HandleFunc("GET /api/weekly-plan/body-exercises/difficulty/{level}", mw.RequireAuth(h.BodyExercisesByDifficulty))
	mux.HandleFunc("GET /api/weekly-plan/body-exercises/type/{type}", mw.RequireAuth(h.BodyExercisesByType))
	mux.HandleFunc("POST /api/weekly-plan/admin/reset-weekly", mw.RequireAdmin(h.ResetWeekly))
	mux.HandleFunc("GET /api/weekly-plan/{userID}", mw.RequireAuth(h.Schedule))
	mux.HandleFunc("GET /api/weekly-plan/{userID}/history", mw.RequireAuth(h.History))
	mux.HandleFunc("POST /api/weekly-plan/{userID}/update-progress", mw.RequireAuth(h.UpdateProgress))
}

// Schedule returns the current week's plan, recommended exercises and day goals
func (h *WeeklyPlanHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userID")
	if !ok {
		return
	}

	user, err := h.users.GetUser(userID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	schedule, err := h.plans.GenerateWeeklySchedule(user)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, schedule)
}

// History returns a user's past plans with summary figures
func (h *WeeklyPlanHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userID")
	if !ok {
		return
	}

	if _, err := h.users.GetUser(userID); err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	history, err := h.plans.GetUserPlanHistory(userID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}

type planProgressRequest struct {
	Minutes         int `json:"minutes"`
	SpeechExercises int `json:"speechExercises"`
}

// UpdateProgress folds one day's new practice into the week's counters.
// The optional date query parameter defaults to today.
func (h *WeeklyPlanHandler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userID")
	if !ok {
		return
	}

	date := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			badRequest(w, "invalid date, expected YYYY-MM-DD")
			return
		}
		date = parsed
	}

	var req planProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.Minutes < 0 || req.SpeechExercises < 0 {
		badRequest(w, "minutes and speechExercises must not be negative")
		return
	}

	user, err := h.users.GetUser(userID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	if err := h.plans.UpdateFromDailyProgress(user, date, req.Minutes, req.SpeechExercises); err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	plan, err := h.plans.GetOrCreatePlan(user, date)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

// BodyExercises lists the personalized catalog picks for the caller
func (h *WeeklyPlanHandler) BodyExercises(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeJSON(w, http.StatusUnauthorized, errorBody("missing bearer token"))
		return
	}

	exercises, err := h.plans.GetPersonalizedBodyExercises(user, queryInt(r, "count", 7))
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, exercises)
}

// BodyExercisesByDifficulty lists catalog entries for one difficulty level
func (h *WeeklyPlanHandler) BodyExercisesByDifficulty(w http.ResponseWriter, r *http.Request) {
	exercises, err := h.plans.GetBodyExercisesByDifficulty(r.PathValue("level"))
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, exercises)
}

// BodyExercisesByType lists catalog entries for one exercise type
func (h *WeeklyPlanHandler) BodyExercisesByType(w http.ResponseWriter, r *http.Request) {
	exercises, err := h.plans.GetBodyExercisesByType(r.PathValue("type"))
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, exercises)
}

// Statistics summarizes every user's current-week plan
func (h *WeeklyPlanHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.plans.GetWeeklyStatistics(time.Now())
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// ResetWeekly zeroes every plan for the current week
func (h *WeeklyPlanHandler) ResetWeekly(w http.ResponseWriter, r *http.Request) {
	count, err := h.plans.ResetAllWeeklyProgress(time.Now())
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"plansReset": count})
}
