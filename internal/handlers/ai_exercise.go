package handlers

import (
	"net/http"

	"speechcoach/internal/models"
	"speechcoach/internal/service"

	"go.uber.org/zap"
)

// AIExerciseHandler serves the template exercise generator
type AIExerciseHandler struct {
	generator *service.GeneratorService
	users     *service.UserService
	logger    *zap.Logger
}

// NewAIExerciseHandler creates a new AI exercise handler
func NewAIExerciseHandler(generator *service.GeneratorService, users *service.UserService, logger *zap.Logger) *AIExerciseHandler {
	return &AIExerciseHandler{generator: generator, users: users, logger: logger}
}

// Register mounts the generator routes
func (h *AIExerciseHandler) Register(mux *http.ServeMux, mw *Middleware) {
	mux.HandleFunc("POST /api/ai-exercises/generate-exercise/{userID}", mw.RequireAuth(h.Generate))
	mux.HandleFunc("POST /api/ai-exercises/generate-weekly-plan/{userID}", mw.RequireAuth(h.GenerateWeeklyPlan))
	mux.HandleFunc("GET /api/ai-exercises/exercises/{userID}", mw.RequireAuth(h.List))
	mux.HandleFunc("GET /api/ai-exercises/exercises/{userID}/active", mw.RequireAuth(h.ListActive))
	mux.HandleFunc("POST /api/ai-exercises/exercises/{id}/complete", mw.RequireAuth(h.Complete))
	mux.HandleFunc("GET /api/ai-exercises/body-exercises/suggestions/{userID}", mw.RequireAuth(h.Suggestions))
	mux.HandleFunc("GET /api/ai-exercises/fluency-analysis/{userID}", mw.RequireAuth(h.FluencyAnalysis))
}

// Generate builds one personalized exercise of the requested type
func (h *AIExerciseHandler) Generate(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userID")
	if !ok {
		return
	}

	exerciseType, err := models.ParseGeneratedExerciseType(r.URL.Query().Get("exerciseType"))
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	user, err := h.users.GetUser(userID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	exercise, err := h.generator.GenerateExercise(user, exerciseType)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, exercise)
}

// GenerateWeeklyPlan builds one exercise of every type
func (h *AIExerciseHandler) GenerateWeeklyPlan(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userID")
	if !ok {
		return
	}

	user, err := h.users.GetUser(userID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	plan, err := h.generator.GenerateWeeklyExercisePlan(user)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, plan)
}

// List returns all generated exercises for a user
func (h *AIExerciseHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userID")
	if !ok {
		return
	}

	exercises, err := h.generator.ListExercises(userID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, exercises)
}

// ListActive returns exercises still open for practice
func (h *AIExerciseHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userID")
	if !ok {
		return
	}

	exercises, err := h.generator.ListActiveExercises(userID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, exercises)
}

// Complete records a performance score and closes the exercise
func (h *AIExerciseHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	score := queryInt(r, "performanceScore", -1)
	if score < 0 || score > 100 {
		badRequest(w, "performanceScore must be between 0 and 100")
		return
	}

	exercise, err := h.generator.CompleteExercise(id, score)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, exercise)
}

type suggestionsResponse struct {
	Exercises   []models.BodyExercise `json:"exercises"`
	StressLevel string                `json:"stressLevel"`
}

// Suggestions picks short body exercises for the user's level and target area
func (h *AIExerciseHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userID")
	if !ok {
		return
	}

	user, err := h.users.GetUser(userID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	exercises, stressLevel, err := h.generator.SuggestBodyExercises(user, r.URL.Query().Get("targetArea"))
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, suggestionsResponse{Exercises: exercises, StressLevel: stressLevel})
}

// FluencyAnalysis reports score trends over recent analysis sessions
func (h *AIExerciseHandler) FluencyAnalysis(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userID")
	if !ok {
		return
	}

	if _, err := h.users.GetUser(userID); err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	analysis, err := h.generator.AnalyzeFluencyTrends(userID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	if analysis == nil {
		writeJSON(w, http.StatusOK, map[string]string{"message": "No fluency data available yet"})
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}
