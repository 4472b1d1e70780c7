package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"speechcoach/internal/audio"
	"speechcoach/internal/models"
	"speechcoach/internal/service"

	"go.uber.org/zap"
)

// SpeechHandler serves speech analysis and the static practice catalogs.
// These routes are the recording demo surface and work without a token:
// requests without a userId run against the demo account.
type SpeechHandler struct {
	analysis      *service.AnalysisService
	users         *service.UserService
	tts           *audio.TTSService
	uploadMaxSize int64
	logger        *zap.Logger
}

// NewSpeechHandler creates a new speech handler
func NewSpeechHandler(analysis *service.AnalysisService, users *service.UserService, tts *audio.TTSService, uploadMaxSize int64, logger *zap.Logger) *SpeechHandler {
	return &SpeechHandler{
		analysis:      analysis,
		users:         users,
		tts:           tts,
		uploadMaxSize: uploadMaxSize,
		logger:        logger,
	}
}

// Register mounts the speech routes
func (h *SpeechHandler) Register(mux *http.ServeMux, mw *Middleware) {
	mux.HandleFunc("POST /api/speech/analyze", h.Analyze)
	mux.HandleFunc("POST /api/speech/quick-analyze", h.QuickAnalyze)
	mux.HandleFunc("GET /api/speech/exercises/{type}", h.ExerciseContent)
	mux.HandleFunc("GET /api/speech/phonemes", h.Phonemes)
	mux.HandleFunc("GET /api/speech/target-audio", h.TargetAudio)
}

// Analyze scores an uploaded recording and records the attempt
func (h *SpeechHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.uploadMaxSize)
	if err := r.ParseMultipartForm(h.uploadMaxSize); err != nil {
		badRequest(w, "invalid multipart form or upload too large")
		return
	}

	exerciseType, err := models.ParseSpeechExerciseType(r.FormValue("exerciseType"))
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	targetText := r.FormValue("targetText")
	if targetText == "" {
		badRequest(w, "targetText is required")
		return
	}

	file, _, err := r.FormFile("audio")
	if err != nil {
		badRequest(w, "audio file is required")
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		badRequest(w, "failed to read audio upload")
		return
	}

	user, err := h.resolveUser(r.FormValue("userId"))
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	result, err := h.analysis.Analyze(r.Context(), user, audio, exerciseType, targetText)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// resolveUser looks up the form user or falls back to the demo account
func (h *SpeechHandler) resolveUser(raw string) (*models.User, error) {
	if raw == "" {
		return h.users.GetDefaultUser()
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return h.users.GetDefaultUser()
	}
	return h.users.GetUser(id)
}

type quickAnalyzeRequest struct {
	ExerciseType string `json:"exerciseType"`
	TargetText   string `json:"targetText"`
}

// QuickAnalyze scores without persisting anything
func (h *SpeechHandler) QuickAnalyze(w http.ResponseWriter, r *http.Request) {
	var req quickAnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	exerciseType, err := models.ParseSpeechExerciseType(req.ExerciseType)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	if req.TargetText == "" {
		badRequest(w, "targetText is required")
		return
	}

	result, err := h.analysis.QuickAnalyze(r.Context(), exerciseType, req.TargetText)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// ExerciseContent returns the static practice material for one exercise type
func (h *SpeechHandler) ExerciseContent(w http.ResponseWriter, r *http.Request) {
	exerciseType, err := models.ParseSpeechExerciseType(r.PathValue("type"))
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, service.ExerciseContent(exerciseType))
}

// Phonemes returns the phoneme reference catalog
func (h *SpeechHandler) Phonemes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, service.PhonemeData())
}

// TargetAudio streams a reference pronunciation of the given text
func (h *SpeechHandler) TargetAudio(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("text")
	if text == "" {
		badRequest(w, "text is required")
		return
	}

	filename, err := h.tts.Synthesize(r.Context(), text)
	if err != nil {
		h.logger.Warn("reference audio synthesis failed", zap.Error(err))
		writeJSON(w, http.StatusBadGateway, errorBody("reference audio unavailable"))
		return
	}

	file, err := h.tts.Open(filename)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", "audio/mpeg")
	io.Copy(w, file)
}
