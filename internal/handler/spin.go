package handler

import (
	"net/http"

	"github.com/fortunaworks/spinvault/internal/logger"
	"github.com/fortunaworks/spinvault/internal/quota"
	"github.com/fortunaworks/spinvault/internal/spin"
)

type SpinHandler struct {
	service  spin.Service
	quotaSvc quota.Service
}

func NewSpinHandler(service spin.Service, quotaSvc quota.Service) *SpinHandler {
	return &SpinHandler{
		service:  service,
		quotaSvc: quotaSvc,
	}
}

type SpinRequest struct {
	UserID string `json:"user_id" validate:"required,max=128,excludesall= "`
}

// SpinResponse carries the request token the caller can correlate the
// eventual result with
type SpinResponse struct {
	RequestID string `json:"request_id"`
}

// HandleSpin starts a free spin
// @Summary Start a free spin
// @Description Consumes one free spin credit and submits a randomness request. The result arrives asynchronously once the oracle calls back.
// @Tags spin
// @Accept json
// @Produce json
// @Param request body SpinRequest true "Spin request"
// @Success 202 {object} SpinResponse
// @Failure 400 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/spin [post]
func (h *SpinHandler) HandleSpin(w http.ResponseWriter, r *http.Request) {
	var req SpinRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Spin"); err != nil {
		return
	}

	requestID, err := h.service.Spin(r.Context(), req.UserID)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to start spin", "error", err, "user_id", req.UserID)
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		respondError(w, statusCode, userMsg)
		return
	}

	respondJSON(w, http.StatusAccepted, SpinResponse{RequestID: requestID})
}

// HandlePremiumSpin starts a premium spin
// @Summary Start a premium spin
// @Description Consumes one premium spin credit, charges the premium cost and submits a randomness request.
// @Tags spin
// @Accept json
// @Produce json
// @Param request body SpinRequest true "Spin request"
// @Success 202 {object} SpinResponse
// @Failure 400 {object} ErrorResponse
// @Failure 402 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/spin/premium [post]
func (h *SpinHandler) HandlePremiumSpin(w http.ResponseWriter, r *http.Request) {
	var req SpinRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Premium spin"); err != nil {
		return
	}

	requestID, err := h.service.PremiumSpin(r.Context(), req.UserID)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to start premium spin", "error", err, "user_id", req.UserID)
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		respondError(w, statusCode, userMsg)
		return
	}

	respondJSON(w, http.StatusAccepted, SpinResponse{RequestID: requestID})
}

// QuotaResponse reports how many spins of each kind the user has left today
type QuotaResponse struct {
	UserID           string `json:"user_id"`
	FreeRemaining    int    `json:"free_remaining"`
	PremiumRemaining int    `json:"premium_remaining"`
}

// HandleGetQuota returns the user's remaining daily spins
// @Summary Get remaining spin quota
// @Description Reports how many free and premium spins the user has left in the current day window
// @Tags spin
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {object} QuotaResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/spin/quota [get]
func (h *SpinHandler) HandleGetQuota(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}

	free, premium, err := h.quotaSvc.Remaining(r.Context(), userID)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to get quota", "error", err, "user_id", userID)
		respondError(w, http.StatusInternalServerError, ErrMsgQuotaLookupFailed)
		return
	}

	respondJSON(w, http.StatusOK, QuotaResponse{
		UserID:           userID,
		FreeRemaining:    free,
		PremiumRemaining: premium,
	})
}
