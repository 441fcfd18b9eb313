package repository

import (
	"context"
	"time"

	"github.com/fortunaworks/spinvault/internal/domain"
)

// Pending defines the interface for pending randomness request persistence.
// The store is keyed by request token: records are created at
// submission and removed by exactly one consumption.
type Pending interface {
	// CreatePending stores a new pending record keyed by its request token.
	CreatePending(ctx context.Context, p *domain.PendingSpin) error

	// ConsumePending atomically removes and returns the pending record for
	// the token. Returns (nil, nil) when no such record exists - either never
	// issued or already consumed, which are indistinguishable.
	ConsumePending(ctx context.Context, requestID string) (*domain.PendingSpin, error)

	// CountPending returns the number of outstanding records.
	CountPending(ctx context.Context) (int64, error)

	// CountStalePending returns the number of outstanding records created
	// before the cutoff.
	CountStalePending(ctx context.Context, cutoff time.Time) (int64, error)
}
