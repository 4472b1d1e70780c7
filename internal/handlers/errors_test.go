package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"speechcoach/internal/security"
	"speechcoach/internal/service"
	"speechcoach/internal/validation"

	"go.uber.org/zap"
)

func TestRespondWithError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "user not found",
			err:        service.ErrUserNotFound,
			wantStatus: http.StatusNotFound,
			wantBody:   service.ErrUserNotFound.Error(),
		},
		{
			name:       "exercise not found",
			err:        service.ErrExerciseNotFound,
			wantStatus: http.StatusNotFound,
			wantBody:   service.ErrExerciseNotFound.Error(),
		},
		{
			name:       "code not found",
			err:        service.ErrCodeNotFound,
			wantStatus: http.StatusNotFound,
			wantBody:   service.ErrCodeNotFound.Error(),
		},
		{
			name:       "validation error",
			err:        validation.Error{Field: "email", Message: "invalid email format"},
			wantStatus: http.StatusBadRequest,
			wantBody:   "email: invalid email format",
		},
		{
			name:       "missing credentials",
			err:        service.ErrMissingCredentials,
			wantStatus: http.StatusBadRequest,
			wantBody:   "Email and password are required",
		},
		{
			name:       "unknown game",
			err:        service.ErrUnknownGame,
			wantStatus: http.StatusBadRequest,
			wantBody:   service.ErrUnknownGame.Error(),
		},
		{
			name:       "email taken",
			err:        service.ErrEmailTaken,
			wantStatus: http.StatusConflict,
			wantBody:   "User with this email already exists",
		},
		{
			name:       "invalid credentials",
			err:        service.ErrInvalidCredentials,
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Invalid email or password",
		},
		{
			name:       "invalid token",
			err:        security.ErrInvalidToken,
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Invalid or expired token",
		},
		{
			name:       "unexpected error",
			err:        errors.New("database exploded"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			respondWithError(zap.NewNop(), recorder, tt.err)

			if recorder.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", recorder.Code, tt.wantStatus)
			}

			var body map[string]string
			if err := json.NewDecoder(recorder.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if body["error"] != tt.wantBody {
				t.Errorf("error = %q, want %q", body["error"], tt.wantBody)
			}
			if ct := recorder.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q, want application/json", ct)
			}
		})
	}
}

func TestPathID(t *testing.T) {
	tests := []struct {
		name   string
		value  string
		wantID int64
		wantOK bool
	}{
		{"valid id", "42", 42, true},
		{"zero rejected", "0", 0, false},
		{"negative rejected", "-3", 0, false},
		{"non-numeric rejected", "abc", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/users/"+tt.value, nil)
			r.SetPathValue("id", tt.value)
			w := httptest.NewRecorder()

			id, ok := pathID(w, r, "id")
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if id != tt.wantID {
				t.Errorf("id = %d, want %d", id, tt.wantID)
			}
			if !tt.wantOK && w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestQueryInt(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		fallback int
		want     int
	}{
		{"present", "/api/games/leaderboard?limit=25", 10, 25},
		{"absent uses fallback", "/api/games/leaderboard", 10, 10},
		{"garbage uses fallback", "/api/games/leaderboard?limit=lots", 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, tt.url, nil)
			if got := queryInt(r, "limit", tt.fallback); got != tt.want {
				t.Errorf("queryInt() = %d, want %d", got, tt.want)
			}
		})
	}
}
