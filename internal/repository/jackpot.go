package repository

import (
	"context"

	"github.com/fortunaworks/spinvault/internal/domain"
)

// Jackpot defines the interface for jackpot state persistence. The state is
// a single row initialized at startup.
type Jackpot interface {
	// GetJackpot returns the current jackpot state.
	GetJackpot(ctx context.Context) (*domain.JackpotState, error)

	// InitJackpot creates the state row if absent; existing state is left
	// untouched.
	InitJackpot(ctx context.Context, state *domain.JackpotState) error

	// CreditPool adds amount to the pool and returns the new pool value.
	CreditPool(ctx context.Context, amount int64) (int64, error)

	// ResetPool sets the pool to the configured seed amount and returns the
	// pool value from before the reset.
	ResetPool(ctx context.Context) (int64, error)

	// SetContributionBP updates the premium-spin contribution rate.
	SetContributionBP(ctx context.Context, bp int) error

	// SetSeedAmount updates the post-win floor value.
	SetSeedAmount(ctx context.Context, amount int64) error
}
