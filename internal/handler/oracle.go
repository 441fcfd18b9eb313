package handler

import (
	"net/http"

	"github.com/fortunaworks/spinvault/internal/logger"
	"github.com/fortunaworks/spinvault/internal/spin"
)

type OracleHandler struct {
	service spin.Service
}

func NewOracleHandler(service spin.Service) *OracleHandler {
	return &OracleHandler{service: service}
}

type FulfillRequest struct {
	RequestID   string   `json:"request_id" validate:"required,max=128"`
	RandomWords []uint64 `json:"random_words" validate:"required,min=1"`
}

// FulfillResponse reports the resolved outcome of a spin
type FulfillResponse struct {
	RequestID   string `json:"request_id"`
	UserID      string `json:"user_id"`
	TierIndex   int    `json:"tier_index"`
	TierName    string `json:"tier_name"`
	Premium     bool   `json:"premium"`
	JackpotPaid int64  `json:"jackpot_paid"`
}

// HandleFulfill receives the oracle's randomness callback and resolves the
// pending spin
// @Summary Fulfill a randomness request
// @Description Oracle callback endpoint. Resolves the pending spin for the request token; each token fulfills at most once.
// @Tags oracle
// @Accept json
// @Produce json
// @Param request body FulfillRequest true "Fulfillment payload"
// @Success 200 {object} FulfillResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/oracle/fulfill [post]
func (h *OracleHandler) HandleFulfill(w http.ResponseWriter, r *http.Request) {
	var req FulfillRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Fulfill"); err != nil {
		return
	}

	outcome, err := h.service.Fulfill(r.Context(), req.RequestID, req.RandomWords)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to fulfill request", "error", err, "request_id", req.RequestID)
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		respondError(w, statusCode, userMsg)
		return
	}

	respondJSON(w, http.StatusOK, FulfillResponse{
		RequestID:   outcome.RequestID,
		UserID:      outcome.UserID,
		TierIndex:   outcome.TierIndex,
		TierName:    outcome.TierName,
		Premium:     outcome.Premium,
		JackpotPaid: outcome.JackpotPaid,
	})
}
