package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fortunaworks/spinvault/internal/domain"
	"github.com/fortunaworks/spinvault/internal/repository"
)

type pendingRepository struct {
	db *pgxpool.Pool
}

// NewPendingRepository creates a new PostgreSQL pending spin repository
func NewPendingRepository(db *pgxpool.Pool) repository.Pending {
	return &pendingRepository{db: db}
}

// CreatePending stores a new pending record keyed by its request token
func (r *pendingRepository) CreatePending(ctx context.Context, p *domain.PendingSpin) error {
	query := `
		INSERT INTO pending_spins (request_id, user_id, premium, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Exec(ctx, query, p.RequestID, p.UserID, p.Premium, p.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == PgErrorCodeUniqueViolation {
			return fmt.Errorf("%s: duplicate request token %s: %w", ErrMsgFailedToCreatePending, p.RequestID, err)
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToCreatePending, err)
	}

	return nil
}

// ConsumePending atomically removes and returns the pending record. The
// DELETE ... RETURNING makes concurrent consumers race safely: exactly one
// gets the row, the rest see (nil, nil).
func (r *pendingRepository) ConsumePending(ctx context.Context, requestID string) (*domain.PendingSpin, error) {
	query := `
		DELETE FROM pending_spins
		WHERE request_id = $1
		RETURNING request_id, user_id, premium, created_at
	`

	var p domain.PendingSpin
	err := r.db.QueryRow(ctx, query, requestID).Scan(
		&p.RequestID,
		&p.UserID,
		&p.Premium,
		&p.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToConsumePending, err)
	}

	return &p, nil
}

// CountPending returns the number of outstanding records
func (r *pendingRepository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM pending_spins`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToCountPending, err)
	}
	return count, nil
}

// CountStalePending returns the number of outstanding records created before
// the cutoff
func (r *pendingRepository) CountStalePending(ctx context.Context, cutoff time.Time) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM pending_spins WHERE created_at < $1`, cutoff).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToCountPending, err)
	}
	return count, nil
}
