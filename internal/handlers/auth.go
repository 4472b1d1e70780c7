package handlers

import (
	"encoding/json"
	"net/http"

	"speechcoach/internal/models"
	"speechcoach/internal/service"

	"go.uber.org/zap"
)

// AuthHandler serves signup and login
type AuthHandler struct {
	authService *service.AuthService
	logger      *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, logger: logger}
}

// Register mounts the auth routes, rate limited against brute force
func (h *AuthHandler) Register(mux *http.ServeMux, mw *Middleware) {
	mux.HandleFunc("POST /api/auth/signup", mw.RateLimit(h.Signup))
	mux.HandleFunc("POST /api/auth/login", mw.RateLimit(h.Login))
}

type credentialsRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Signup creates an account and returns a token with the user payload
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	user, token, err := h.authService.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{Token: token, User: user})
}

// Login authenticates an account and returns a token with the user payload
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	user, token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}
