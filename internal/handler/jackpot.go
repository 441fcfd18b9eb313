package handler

import (
	"net/http"

	"github.com/fortunaworks/spinvault/internal/jackpot"
	"github.com/fortunaworks/spinvault/internal/logger"
)

type JackpotHandler struct {
	service jackpot.Service
}

func NewJackpotHandler(service jackpot.Service) *JackpotHandler {
	return &JackpotHandler{service: service}
}

// JackpotResponse exposes the public view of the jackpot state
type JackpotResponse struct {
	Pool           int64 `json:"pool"`
	ContributionBP int   `json:"contribution_bp"`
	SeedAmount     int64 `json:"seed_amount"`
	WinningTier    int   `json:"winning_tier"`
}

// HandleGetJackpot returns the current jackpot state
// @Summary Get jackpot state
// @Description Returns the current pool, contribution rate, seed amount and winning tier
// @Tags jackpot
// @Produce json
// @Success 200 {object} JackpotResponse
// @Router /api/v1/jackpot [get]
func (h *JackpotHandler) HandleGetJackpot(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.State(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to get jackpot state", "error", err)
		respondError(w, http.StatusInternalServerError, ErrMsgJackpotLookupFailed)
		return
	}

	respondJSON(w, http.StatusOK, JackpotResponse{
		Pool:           state.Pool,
		ContributionBP: state.ContributionBP,
		SeedAmount:     state.SeedAmount,
		WinningTier:    state.WinningTier,
	})
}
