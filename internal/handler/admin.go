package handler

import (
	"net/http"

	"github.com/fortunaworks/spinvault/internal/jackpot"
	"github.com/fortunaworks/spinvault/internal/logger"
	"github.com/fortunaworks/spinvault/internal/spin"
	"github.com/fortunaworks/spinvault/internal/treasury"
)

type AdminHandler struct {
	spinSvc    spin.Service
	jackpotSvc jackpot.Service
	vault      treasury.Vault
}

func NewAdminHandler(spinSvc spin.Service, jackpotSvc jackpot.Service, vault treasury.Vault) *AdminHandler {
	return &AdminHandler{
		spinSvc:    spinSvc,
		jackpotSvc: jackpotSvc,
		vault:      vault,
	}
}

// HandlePause stops accepting new spins
// @Summary Pause the spin engine
// @Description Rejects new spin entries. Pending fulfillments still complete.
// @Tags admin
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /api/v1/admin/pause [post]
func (h *AdminHandler) HandlePause(w http.ResponseWriter, r *http.Request) {
	h.spinSvc.Pause()
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgEnginePaused})
}

// HandleUnpause resumes accepting spins
// @Summary Unpause the spin engine
// @Tags admin
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /api/v1/admin/unpause [post]
func (h *AdminHandler) HandleUnpause(w http.ResponseWriter, r *http.Request) {
	h.spinSvc.Unpause()
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgEngineUnpaused})
}

type SetContributionRequest struct {
	ContributionBP int `json:"contribution_bp" validate:"gte=0,lte=1000"`
}

// HandleSetContribution updates the jackpot contribution rate
// @Summary Set jackpot contribution rate
// @Description Sets the basis points of each premium spin cost credited to the jackpot pool. Capped at 1000 (10%).
// @Tags admin
// @Accept json
// @Produce json
// @Param request body SetContributionRequest true "New contribution rate"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/admin/jackpot/contribution [post]
func (h *AdminHandler) HandleSetContribution(w http.ResponseWriter, r *http.Request) {
	var req SetContributionRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Set contribution"); err != nil {
		return
	}

	if err := h.jackpotSvc.SetContributionBP(r.Context(), req.ContributionBP); err != nil {
		logger.FromContext(r.Context()).Error("Failed to set contribution rate", "error", err)
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		respondError(w, statusCode, userMsg)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgContributionSet})
}

type SetSeedRequest struct {
	SeedAmount int64 `json:"seed_amount" validate:"gte=0"`
}

// HandleSetSeed updates the post-win jackpot floor
// @Summary Set jackpot seed amount
// @Tags admin
// @Accept json
// @Produce json
// @Param request body SetSeedRequest true "New seed amount"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/admin/jackpot/seed [post]
func (h *AdminHandler) HandleSetSeed(w http.ResponseWriter, r *http.Request) {
	var req SetSeedRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Set seed"); err != nil {
		return
	}

	if err := h.jackpotSvc.SetSeedAmount(r.Context(), req.SeedAmount); err != nil {
		logger.FromContext(r.Context()).Error("Failed to set seed amount", "error", err)
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		respondError(w, statusCode, userMsg)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgSeedSet})
}

type WithdrawRequest struct {
	To     string `json:"to" validate:"required,max=128"`
	Amount int64  `json:"amount" validate:"gt=0"`
}

// HandleWithdraw sweeps accumulated house funds to an administrative account
// @Summary Withdraw house funds
// @Tags admin
// @Accept json
// @Produce json
// @Param request body WithdrawRequest true "Withdrawal target and amount"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/admin/withdraw [post]
func (h *AdminHandler) HandleWithdraw(w http.ResponseWriter, r *http.Request) {
	var req WithdrawRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Withdraw"); err != nil {
		return
	}

	if err := h.vault.Withdraw(r.Context(), req.To, req.Amount); err != nil {
		logger.FromContext(r.Context()).Error("Failed to withdraw house funds", "error", err, "to", req.To)
		respondError(w, http.StatusBadGateway, ErrMsgWithdrawFailed)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgWithdrawDone})
}
