package repository

import (
	"context"

	"github.com/fortunaworks/spinvault/internal/domain"
)

// Account defines the interface for quota account persistence
type Account interface {
	// GetAccount returns the account for the user, or (nil, nil) when none
	// exists yet.
	GetAccount(ctx context.Context, userID string) (*domain.QuotaAccount, error)

	// UpsertAccount inserts or replaces the account record.
	UpsertAccount(ctx context.Context, acct *domain.QuotaAccount) error
}
