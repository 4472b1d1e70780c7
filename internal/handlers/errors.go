package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"speechcoach/internal/security"
	"speechcoach/internal/service"
	"speechcoach/internal/validation"

	"go.uber.org/zap"
)

// writeJSON writes a JSON response with the given status
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

func errorBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}

// respondWithError maps service errors onto the API's status taxonomy.
// Unexpected errors are logged and reported as a generic 500.
func respondWithError(logger *zap.Logger, w http.ResponseWriter, err error) {
	var verr validation.Error

	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrExerciseNotFound),
		errors.Is(err, service.ErrCodeNotFound):
		writeJSON(w, http.StatusNotFound, errorBody(err.Error()))
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorBody(verr.Error()))
	case errors.Is(err, service.ErrMissingCredentials):
		writeJSON(w, http.StatusBadRequest, errorBody("Email and password are required"))
	case errors.Is(err, service.ErrUnknownGame):
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
	case errors.Is(err, service.ErrEmailTaken):
		writeJSON(w, http.StatusConflict, errorBody("User with this email already exists"))
	case errors.Is(err, service.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorBody("Invalid email or password"))
	case errors.Is(err, security.ErrInvalidToken):
		writeJSON(w, http.StatusUnauthorized, errorBody("Invalid or expired token"))
	default:
		logger.Error("request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal server error"))
	}
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorBody(msg))
}

// pathID parses an int64 path parameter, writing a 400 on failure
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		badRequest(w, "invalid "+name)
		return 0, false
	}
	return id, true
}

// queryInt parses an optional integer query parameter
func queryInt(r *http.Request, name string, fallback int) int {
	if raw := r.URL.Query().Get(name); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			return n
		}
	}
	return fallback
}
