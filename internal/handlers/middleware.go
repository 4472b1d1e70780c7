package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"speechcoach/internal/models"
	"speechcoach/internal/security"
	"speechcoach/internal/service"

	"go.uber.org/zap"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const UserContextKey ContextKey = "user"

// Middleware holds dependencies for middleware functions
type Middleware struct {
	authService *service.AuthService
	limiter     *security.RateLimiter
	adminKey    string
	logger      *zap.Logger
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(authService *service.AuthService, limiter *security.RateLimiter, adminKey string, logger *zap.Logger) *Middleware {
	return &Middleware{
		authService: authService,
		limiter:     limiter,
		adminKey:    adminKey,
		logger:      logger,
	}
}

// RequireAuth validates the Bearer token and puts the account on the context
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeJSON(w, http.StatusUnauthorized, errorBody("missing bearer token"))
			return
		}

		user, err := m.authService.ValidateToken(token)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorBody("Invalid or expired token"))
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next(w, r.WithContext(ctx))
	}
}

// RequireAdmin gates operational endpoints behind the configured admin key.
// With no key configured the endpoints are disabled.
func (m *Middleware) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if m.adminKey == "" || r.Header.Get("X-Admin-Key") != m.adminKey {
			writeJSON(w, http.StatusForbidden, errorBody("admin access required"))
			return
		}
		next(w, r)
	}
}

// RateLimit rejects clients that exceed the credential endpoint budget
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := security.GetClientIP(r)
		if !m.limiter.Allow(key) {
			m.logger.Warn("rate limit exceeded", zap.String("client", key))
			writeJSON(w, http.StatusTooManyRequests, errorBody("too many requests, try again later"))
			return
		}
		next(w, r)
	}
}

// statusRecorder captures the response status for request logging
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

// Logging logs every request with method, path, status and duration
func Logging(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rec.status),
				zap.Duration("duration", time.Since(start)))
		})
	}
}

// CORS opens the API to browser clients on any origin. The web app is served
// separately, so every response carries permissive headers and OPTIONS
// preflights are answered without reaching the mux.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Admin-Key")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserFromContext retrieves the authenticated user from the request context
func GetUserFromContext(ctx context.Context) *models.User {
	user, ok := ctx.Value(UserContextKey).(*models.User)
	if !ok {
		return nil
	}
	return user
}
