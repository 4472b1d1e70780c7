package handlers

import (
	"encoding/json"
	"net/http"

	"speechcoach/internal/service"

	"go.uber.org/zap"
)

// RedeemHandler serves reward code routes
type RedeemHandler struct {
	codes  *service.RedeemCodeService
	logger *zap.Logger
}

// NewRedeemHandler creates a new redeem code handler
func NewRedeemHandler(codes *service.RedeemCodeService, logger *zap.Logger) *RedeemHandler {
	return &RedeemHandler{codes: codes, logger: logger}
}

// Register mounts the redeem code routes
func (h *RedeemHandler) Register(mux *http.ServeMux, mw *Middleware) {
	mux.HandleFunc("POST /api/redeem-codes", mw.RequireAdmin(h.Create))
	mux.HandleFunc("GET /api/redeem-codes/{id}", mw.RequireAuth(h.Get))
	mux.HandleFunc("POST /api/redeem-codes/{id}", mw.RequireAuth(h.MarkUsed))
}

type createCodeRequest struct {
	PointsThreshold int `json:"pointsThreshold"`
}

// Create mints a reward code for a points threshold
func (h *RedeemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.PointsThreshold <= 0 {
		badRequest(w, "pointsThreshold must be positive")
		return
	}

	code, err := h.codes.CreateCode(req.PointsThreshold)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, code)
}

// Get returns one reward code
func (h *RedeemHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	code, err := h.codes.GetCode(id)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, code)
}

// MarkUsed stamps a code as used; redeeming again keeps the original timestamp
func (h *RedeemHandler) MarkUsed(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	code, err := h.codes.MarkUsed(id)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, code)
}
