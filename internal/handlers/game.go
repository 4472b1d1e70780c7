package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"speechcoach/internal/models"
	"speechcoach/internal/service"

	"go.uber.org/zap"
)

// GameHandler serves mini-game score routes and leaderboards
type GameHandler struct {
	scores *service.GameScoreService
	logger *zap.Logger
}

// NewGameHandler creates a new game handler
func NewGameHandler(scores *service.GameScoreService, logger *zap.Logger) *GameHandler {
	return &GameHandler{scores: scores, logger: logger}
}

// Register mounts the game routes
func (h *GameHandler) Register(mux *http.ServeMux, mw *Middleware) {
	mux.HandleFunc("POST /api/games/score", mw.RequireAuth(h.CreateScore))
	mux.HandleFunc("GET /api/games/leaderboard", mw.RequireAuth(h.Leaderboard))
	mux.HandleFunc("DELETE /api/games/cleanup", mw.RequireAdmin(h.Cleanup))
	mux.HandleFunc("GET /api/games/{userID}/statistics", mw.RequireAuth(h.Statistics))
	mux.HandleFunc("GET /api/games/{userID}/scores", mw.RequireAuth(h.Scores))
	mux.HandleFunc("GET /api/games/{userID}/best", mw.RequireAuth(h.BestScores))
	mux.HandleFunc("GET /api/games/{userID}/recent", mw.RequireAuth(h.RecentScores))
	mux.HandleFunc("GET /api/games/{userID}/weekly-progress", mw.RequireAuth(h.WeeklyProgress))
	mux.HandleFunc("GET /api/games/{userID}/completion-stats", mw.RequireAuth(h.CompletionStats))
	mux.HandleFunc("GET /api/games/{userID}/high-accuracy", mw.RequireAuth(h.HighAccuracy))
	mux.HandleFunc("GET /api/games/{userID}/date-range", mw.RequireAuth(h.DateRange))
}

// CreateScore records a finished game session
func (h *GameHandler) CreateScore(w http.ResponseWriter, r *http.Request) {
	var score models.GameScore
	if err := json.NewDecoder(r.Body).Decode(&score); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	created, err := h.scores.CreateScore(&score)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Statistics reports a user's lifetime game summary with breakdowns
func (h *GameHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userID")
	if !ok {
		return
	}

	stats, err := h.scores.GetUserStatistics(userID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Scores returns a user's latest sessions
func (h *GameHandler) Scores(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userID")
	if !ok {
		return
	}

	scores, err := h.scores.GetUserScores(userID, queryInt(r, "limit", 0))
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, scores)
}

// BestScores returns a user's highest scoring sessions
func (h *GameHandler) BestScores(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userID")
	if !ok {
		return
	}

	scores, err := h.scores.GetUserBestScores(userID, queryInt(r, "limit", 0))
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, scores)
}

// RecentScores returns the last thirty days of sessions
func (h *GameHandler) RecentScores(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userID")
	if !ok {
		return
	}

	scores, err := h.scores.GetUserRecentScores(userID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, scores)
}

// WeeklyProgress reports the last seven days of game activity
func (h *GameHandler) WeeklyProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userID")
	if !ok {
		return
	}

	progress, err := h.scores.GetUserWeeklyProgress(userID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

// CompletionStats counts a user's sessions across every known game
func (h *GameHandler) CompletionStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userID")
	if !ok {
		return
	}

	stats, err := h.scores.GetGameCompletionStats(userID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// HighAccuracy returns sessions at or above the accuracy threshold
func (h *GameHandler) HighAccuracy(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userID")
	if !ok {
		return
	}

	threshold := 90.0
	if raw := r.URL.Query().Get("threshold"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			badRequest(w, "invalid threshold")
			return
		}
		threshold = parsed
	}

	scores, err := h.scores.GetUserHighAccuracyScores(userID, threshold)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, scores)
}

// DateRange returns sessions between the from and to dates inclusive
func (h *GameHandler) DateRange(w http.ResponseWriter, r *http.Request) {
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

	scores, err := h.scores.GetUserScoresByDateRange(userID, from, to.AddDate(0, 0, 1))
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, scores)
}

// Leaderboard ranks users by points, optionally within one game
func (h *GameHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.scores.GetLeaderboard(r.URL.Query().Get("gameId"), queryInt(r, "limit", 0))
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// Cleanup deletes sessions older than daysOld days
func (h *GameHandler) Cleanup(w http.ResponseWriter, r *http.Request) {
	daysOld := queryInt(r, "daysOld", 90)
	if daysOld <= 0 {
		badRequest(w, "daysOld must be positive")
		return
	}

	deleted, err := h.scores.CleanupOldScores(daysOld)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}
