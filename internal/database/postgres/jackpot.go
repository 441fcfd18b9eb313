package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fortunaworks/spinvault/internal/domain"
	"github.com/fortunaworks/spinvault/internal/repository"
)

type jackpotRepository struct {
	db *pgxpool.Pool
}

// NewJackpotRepository creates a new PostgreSQL jackpot state repository.
// The state lives in a single row with id 1.
func NewJackpotRepository(db *pgxpool.Pool) repository.Jackpot {
	return &jackpotRepository{db: db}
}

// GetJackpot returns the current jackpot state
func (r *jackpotRepository) GetJackpot(ctx context.Context) (*domain.JackpotState, error) {
	query := `
		SELECT pool, contribution_bp, seed_amount, winning_tier, updated_at
		FROM jackpot
		WHERE id = 1
	`

	var state domain.JackpotState
	err := r.db.QueryRow(ctx, query).Scan(
		&state.Pool,
		&state.ContributionBP,
		&state.SeedAmount,
		&state.WinningTier,
		&state.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetJackpot, err)
	}

	return &state, nil
}

// InitJackpot creates the state row if absent; existing state wins
func (r *jackpotRepository) InitJackpot(ctx context.Context, state *domain.JackpotState) error {
	query := `
		INSERT INTO jackpot (id, pool, contribution_bp, seed_amount, winning_tier, updated_at)
		VALUES (1, $1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query,
		state.Pool,
		state.ContributionBP,
		state.SeedAmount,
		state.WinningTier,
		state.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInitJackpot, err)
	}

	return nil
}

// CreditPool adds amount to the pool and returns the new pool value
func (r *jackpotRepository) CreditPool(ctx context.Context, amount int64) (int64, error) {
	query := `
		UPDATE jackpot
		SET pool = pool + $1, updated_at = NOW()
		WHERE id = 1
		RETURNING pool
	`

	var pool int64
	if err := r.db.QueryRow(ctx, query, amount).Scan(&pool); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToCreditPool, err)
	}

	return pool, nil
}

// ResetPool sets the pool back to the seed amount and returns the pool value
// from before the reset
func (r *jackpotRepository) ResetPool(ctx context.Context) (int64, error) {
	query := `
		UPDATE jackpot AS j
		SET pool = j.seed_amount, updated_at = NOW()
		FROM (SELECT pool FROM jackpot WHERE id = 1 FOR UPDATE) AS prev
		WHERE j.id = 1
		RETURNING prev.pool
	`

	var previous int64
	if err := r.db.QueryRow(ctx, query).Scan(&previous); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToResetPool, err)
	}

	return previous, nil
}

// SetContributionBP updates the premium-spin contribution rate
func (r *jackpotRepository) SetContributionBP(ctx context.Context, bp int) error {
	query := `UPDATE jackpot SET contribution_bp = $1, updated_at = NOW() WHERE id = 1`
	if _, err := r.db.Exec(ctx, query, bp); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateJackpot, err)
	}
	return nil
}

// SetSeedAmount updates the post-win floor value
func (r *jackpotRepository) SetSeedAmount(ctx context.Context, amount int64) error {
	query := `UPDATE jackpot SET seed_amount = $1, updated_at = NOW() WHERE id = 1`
	if _, err := r.db.Exec(ctx, query, amount); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateJackpot, err)
	}
	return nil
}
