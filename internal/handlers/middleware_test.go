package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"speechcoach/internal/models"
	"speechcoach/internal/security"

	"go.uber.org/zap"
)

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name       string
		adminKey   string
		headerKey  string
		wantStatus int
	}{
		{
			name:       "matching key passes",
			adminKey:   "hunter2",
			headerKey:  "hunter2",
			wantStatus: http.StatusOK,
		},
		{
			name:       "wrong key rejected",
			adminKey:   "hunter2",
			headerKey:  "guess",
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "missing key rejected",
			adminKey:   "hunter2",
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "empty configured key disables endpoint",
			adminKey:   "",
			headerKey:  "",
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mw := &Middleware{adminKey: tt.adminKey, logger: zap.NewNop()}
			handler := mw.RequireAdmin(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			r := httptest.NewRequest(http.MethodPost, "/api/redeem-codes", nil)
			if tt.headerKey != "" {
				r.Header.Set("X-Admin-Key", tt.headerKey)
			}
			w := httptest.NewRecorder()
			handler(w, r)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestRequireAuthMissingHeader(t *testing.T) {
	mw := &Middleware{logger: zap.NewNop()}
	handler := mw.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run without a token")
	})

	for _, header := range []string{"", "Bearer ", "Basic abc", "token-without-scheme"} {
		r := httptest.NewRequest(http.MethodGet, "/api/users/1", nil)
		if header != "" {
			r.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		handler(w, r)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("header %q: status = %d, want %d", header, w.Code, http.StatusUnauthorized)
		}
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	mw := &Middleware{
		limiter: security.NewRateLimiter(2, time.Minute),
		logger:  zap.NewNop(),
	}
	handler := mw.RateLimit(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for i := 0; i < 2; i++ {
		r := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		r.RemoteAddr = "192.0.2.1:1000"
		w := httptest.NewRecorder()
		handler(w, r)
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want %d", i+1, w.Code, http.StatusOK)
		}
	}

	r := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	r.RemoteAddr = "192.0.2.1:1000"
	w := httptest.NewRecorder()
	handler(w, r)
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want %d", w.Code, http.StatusTooManyRequests)
	}
}

func TestCORS(t *testing.T) {
	reached := false
	handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	}))

	r := httptest.NewRequest(http.MethodGet, "/api/users/default", nil)
	r.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if !reached {
		t.Error("GET request should reach the wrapped handler")
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Headers"); got == "" {
		t.Error("Access-Control-Allow-Headers header missing")
	}
}

func TestCORSPreflight(t *testing.T) {
	handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("preflight should not reach the wrapped handler")
	}))

	r := httptest.NewRequest(http.MethodOptions, "/api/games/score", nil)
	r.Header.Set("Origin", "http://localhost:3000")
	r.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNoContent)
	}
	if got := w.Header().Get("Access-Control-Allow-Methods"); got == "" {
		t.Error("Access-Control-Allow-Methods header missing")
	}
}

func TestGetUserFromContext(t *testing.T) {
	if got := GetUserFromContext(context.Background()); got != nil {
		t.Errorf("empty context should yield nil, got %+v", got)
	}

	user := &models.User{ID: 5, Email: "maria@example.com"}
	ctx := context.WithValue(context.Background(), UserContextKey, user)
	if got := GetUserFromContext(ctx); got == nil || got.ID != 5 {
		t.Errorf("GetUserFromContext() = %+v, want user 5", got)
	}
}
