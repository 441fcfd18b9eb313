package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fortunaworks/spinvault/internal/domain"
	"github.com/fortunaworks/spinvault/internal/repository"
)

type accountRepository struct {
	db *pgxpool.Pool
}

// NewAccountRepository creates a new PostgreSQL quota account repository
func NewAccountRepository(db *pgxpool.Pool) repository.Account {
	return &accountRepository{db: db}
}

// GetAccount returns the quota account for the user, or (nil, nil) when the
// user has never spun
func (r *accountRepository) GetAccount(ctx context.Context, userID string) (*domain.QuotaAccount, error) {
	query := `
		SELECT user_id, last_spin_day, free_spins_used_today, premium_spins_used_today, updated_at
		FROM quota_accounts
		WHERE user_id = $1
	`

	var acct domain.QuotaAccount
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&acct.UserID,
		&acct.LastSpinDay,
		&acct.FreeSpinsUsedToday,
		&acct.PremiumSpinsUsedToday,
		&acct.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetAccount, err)
	}

	return &acct, nil
}

// UpsertAccount inserts or replaces the account record
func (r *accountRepository) UpsertAccount(ctx context.Context, acct *domain.QuotaAccount) error {
	query := `
		INSERT INTO quota_accounts (user_id, last_spin_day, free_spins_used_today, premium_spins_used_today, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			last_spin_day = EXCLUDED.last_spin_day,
			free_spins_used_today = EXCLUDED.free_spins_used_today,
			premium_spins_used_today = EXCLUDED.premium_spins_used_today,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.Exec(ctx, query,
		acct.UserID,
		acct.LastSpinDay,
		acct.FreeSpinsUsedToday,
		acct.PremiumSpinsUsedToday,
		acct.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpsertAccount, err)
	}

	return nil
}
