package quota

import (
	"context"
	"fmt"
	"time"

	"github.com/fortunaworks/spinvault/internal/domain"
	"github.com/fortunaworks/spinvault/internal/logger"
	"github.com/fortunaworks/spinvault/internal/repository"
)

// Config holds the quota window parameters.
type Config struct {
	DayLengthSeconds      int64
	DailyFreeSpinLimit    int
	DailyPremiumSpinLimit int
}

// Service tracks per-user rolling daily spin counters.
type Service interface {
	// CheckAndConsume refreshes the quota window and consumes one credit of
	// the given kind. Returns domain.ErrQuotaExceeded when today's allotment
	// is already used; no state changes on rejection.
	CheckAndConsume(ctx context.Context, userID string, kind domain.SpinKind) error

	// Refund returns one previously consumed credit of the given kind. Used
	// when a later step of the same spin entry aborts.
	Refund(ctx context.Context, userID string, kind domain.SpinKind) error

	// Remaining reports how many free and premium spins the user has left
	// today, refreshing the window first.
	Remaining(ctx context.Context, userID string) (free, premium int, err error)
}

type service struct {
	repo  repository.Account
	cache *accountCache
	cfg   Config
	now   func() time.Time // injectable for testing
}

// NewService creates a new quota service.
func NewService(repo repository.Account, cfg Config) Service {
	return &service{
		repo:  repo,
		cache: newAccountCache(AccountCacheSize, AccountCacheTTL),
		cfg:   cfg,
		now:   time.Now,
	}
}

// CheckAndConsume implements [Service].
func (s *service) CheckAndConsume(ctx context.Context, userID string, kind domain.SpinKind) error {
	acct, err := s.loadAccount(ctx, userID)
	if err != nil {
		return err
	}

	s.refreshWindow(acct)

	switch kind {
	case domain.SpinKindFree:
		if acct.FreeSpinsUsedToday >= s.cfg.DailyFreeSpinLimit {
			return fmt.Errorf("%w: %d free spins used", domain.ErrQuotaExceeded, acct.FreeSpinsUsedToday)
		}
		acct.FreeSpinsUsedToday++
	case domain.SpinKindPremium:
		if acct.PremiumSpinsUsedToday >= s.cfg.DailyPremiumSpinLimit {
			return fmt.Errorf("%w: %d premium spins used", domain.ErrQuotaExceeded, acct.PremiumSpinsUsedToday)
		}
		acct.PremiumSpinsUsedToday++
	default:
		return fmt.Errorf("%w: unknown spin kind %q", domain.ErrInvalidParameter, kind)
	}

	return s.saveAccount(ctx, acct)
}

// Refund implements [Service].
func (s *service) Refund(ctx context.Context, userID string, kind domain.SpinKind) error {
	acct, err := s.loadAccount(ctx, userID)
	if err != nil {
		return err
	}

	s.refreshWindow(acct)

	switch kind {
	case domain.SpinKindFree:
		if acct.FreeSpinsUsedToday > 0 {
			acct.FreeSpinsUsedToday--
		}
	case domain.SpinKindPremium:
		if acct.PremiumSpinsUsedToday > 0 {
			acct.PremiumSpinsUsedToday--
		}
	default:
		return fmt.Errorf("%w: unknown spin kind %q", domain.ErrInvalidParameter, kind)
	}

	return s.saveAccount(ctx, acct)
}

// Remaining implements [Service].
func (s *service) Remaining(ctx context.Context, userID string) (int, int, error) {
	acct, err := s.loadAccount(ctx, userID)
	if err != nil {
		return 0, 0, err
	}

	s.refreshWindow(acct)
	if err := s.saveAccount(ctx, acct); err != nil {
		return 0, 0, err
	}

	free := s.cfg.DailyFreeSpinLimit - acct.FreeSpinsUsedToday
	premium := s.cfg.DailyPremiumSpinLimit - acct.PremiumSpinsUsedToday
	return free, premium, nil
}

// refreshWindow lazily resets both counters when the account is touched on a
// later day than the one recorded. This runs before any limit check, on
// every call, regardless of outcome.
func (s *service) refreshWindow(acct *domain.QuotaAccount) {
	currentDay := s.now().Unix() / s.cfg.DayLengthSeconds
	if acct.LastSpinDay != currentDay {
		acct.LastSpinDay = currentDay
		acct.FreeSpinsUsedToday = 0
		acct.PremiumSpinsUsedToday = 0
	}
}

// loadAccount fetches the account through the cache, creating a zero-valued
// record on first access. Accounts are never deleted.
func (s *service) loadAccount(ctx context.Context, userID string) (*domain.QuotaAccount, error) {
	if acct, ok := s.cache.Get(userID); ok {
		return acct, nil
	}

	acct, err := s.repo.GetAccount(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get quota account: %w", err)
	}
	if acct == nil {
		logger.FromContext(ctx).Debug("Creating quota account on first access", "user_id", userID)
		acct = &domain.QuotaAccount{UserID: userID}
	}

	return acct, nil
}

func (s *service) saveAccount(ctx context.Context, acct *domain.QuotaAccount) error {
	acct.UpdatedAt = s.now()
	if err := s.repo.UpsertAccount(ctx, acct); err != nil {
		s.cache.Invalidate(acct.UserID)
		return fmt.Errorf("failed to save quota account: %w", err)
	}
	s.cache.Set(acct.UserID, acct)
	return nil
}
