package jackpot

import (
	"context"
	"fmt"

	"github.com/fortunaworks/spinvault/internal/domain"
	"github.com/fortunaworks/spinvault/internal/event"
	"github.com/fortunaworks/spinvault/internal/logger"
	"github.com/fortunaworks/spinvault/internal/metrics"
	"github.com/fortunaworks/spinvault/internal/repository"
	"github.com/fortunaworks/spinvault/internal/treasury"
)

// Service manages the shared progressive jackpot pool.
type Service interface {
	// Split computes the jackpot contribution and burn amounts for a premium
	// spin cost under the current contribution rate.
	Split(ctx context.Context, cost int64) (contribution, burn int64, err error)

	// Credit adds a premium-spin contribution to the pool.
	Credit(ctx context.Context, amount int64) error

	// MaybePayout pays the full pool to the user and resets it to the seed
	// amount when tierIndex is the winning tier and the pool is positive.
	// Returns the paid amount, zero otherwise. The vault's reported success
	// is not checked; a failed jackpot payout is not retried or rolled back.
	MaybePayout(ctx context.Context, tierIndex int, userID string) (int64, error)

	// State returns the current jackpot state.
	State(ctx context.Context) (*domain.JackpotState, error)

	// SetContributionBP updates the contribution rate; capped at
	// domain.MaxContributionBP.
	SetContributionBP(ctx context.Context, bp int) error

	// SetSeedAmount updates the post-win floor value.
	SetSeedAmount(ctx context.Context, amount int64) error
}

type service struct {
	repo      repository.Jackpot
	vault     treasury.Vault
	publisher *event.ResilientPublisher
}

// NewService creates a new jackpot service.
func NewService(repo repository.Jackpot, vault treasury.Vault, publisher *event.ResilientPublisher) Service {
	return &service{
		repo:      repo,
		vault:     vault,
		publisher: publisher,
	}
}

// Split implements [Service].
func (s *service) Split(ctx context.Context, cost int64) (int64, int64, error) {
	state, err := s.repo.GetJackpot(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get jackpot state: %w", err)
	}

	contribution := cost * int64(state.ContributionBP) / domain.BPDenominator
	return contribution, cost - contribution, nil
}

// Credit implements [Service].
func (s *service) Credit(ctx context.Context, amount int64) error {
	if amount <= 0 {
		return nil
	}

	pool, err := s.repo.CreditPool(ctx, amount)
	if err != nil {
		return fmt.Errorf("failed to credit jackpot pool: %w", err)
	}

	metrics.JackpotPool.Set(float64(pool))
	return nil
}

// MaybePayout implements [Service].
func (s *service) MaybePayout(ctx context.Context, tierIndex int, userID string) (int64, error) {
	state, err := s.repo.GetJackpot(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get jackpot state: %w", err)
	}

	if tierIndex != state.WinningTier || state.Pool <= 0 {
		return 0, nil
	}

	paid, err := s.repo.ResetPool(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to reset jackpot pool: %w", err)
	}

	log := logger.FromContext(ctx)

	// Payout is fire-and-forget: the vault's reported success is ignored,
	// matching the no-retry, no-rollback contract of the pool.
	if _, err := s.vault.DistributeReward(ctx, userID, domain.AssetPrimary, paid); err != nil {
		log.Warn("Jackpot payout call failed", "error", err, "user_id", userID, "amount", paid)
	}

	log.Info("Jackpot won", "user_id", userID, "amount", paid)
	metrics.JackpotPool.Set(float64(state.SeedAmount))
	s.publisher.PublishWithRetry(ctx, event.NewJackpotWonEvent(userID, paid))

	return paid, nil
}

// State implements [Service].
func (s *service) State(ctx context.Context) (*domain.JackpotState, error) {
	state, err := s.repo.GetJackpot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get jackpot state: %w", err)
	}
	return state, nil
}

// SetContributionBP implements [Service].
func (s *service) SetContributionBP(ctx context.Context, bp int) error {
	if bp < 0 || bp > domain.MaxContributionBP {
		return fmt.Errorf("%w: contribution must be in [0, %d], got %d",
			domain.ErrInvalidParameter, domain.MaxContributionBP, bp)
	}
	if err := s.repo.SetContributionBP(ctx, bp); err != nil {
		return fmt.Errorf("failed to set jackpot contribution: %w", err)
	}
	return nil
}

// SetSeedAmount implements [Service].
func (s *service) SetSeedAmount(ctx context.Context, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("%w: seed amount must not be negative, got %d",
			domain.ErrInvalidParameter, amount)
	}
	if err := s.repo.SetSeedAmount(ctx, amount); err != nil {
		return fmt.Errorf("failed to set jackpot seed amount: %w", err)
	}
	return nil
}
