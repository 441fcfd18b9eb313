package spin

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fortunaworks/spinvault/internal/domain"
	"github.com/fortunaworks/spinvault/internal/event"
	"github.com/fortunaworks/spinvault/internal/jackpot"
	"github.com/fortunaworks/spinvault/internal/logger"
	"github.com/fortunaworks/spinvault/internal/metrics"
	"github.com/fortunaworks/spinvault/internal/oracle"
	"github.com/fortunaworks/spinvault/internal/quota"
	"github.com/fortunaworks/spinvault/internal/repository"
	"github.com/fortunaworks/spinvault/internal/reward"
	"github.com/fortunaworks/spinvault/internal/tier"
	"github.com/fortunaworks/spinvault/internal/token"
)

// Config holds the orchestrator parameters.
type Config struct {
	PremiumSpinCost int64
	HouseAccount    string
}

// Service is the top-level spin state machine. Each request token moves
// through none -> pending -> consumed; fulfillment consumes the pending
// record exactly once.
type Service interface {
	// Spin requests a free spin for the user and submits a randomness
	// request. Returns the issued request token.
	Spin(ctx context.Context, userID string) (string, error)

	// PremiumSpin requests a premium spin: consumes a premium credit, pulls
	// the premium cost from the user's token balance, credits the jackpot
	// contribution, burns the remainder, then submits a randomness request.
	PremiumSpin(ctx context.Context, userID string) (string, error)

	// Fulfill resolves a pending request from the oracle's callback. Exactly
	// one call per token succeeds; any other token is rejected with
	// domain.ErrUnknownRequest and no state change.
	Fulfill(ctx context.Context, requestID string, randomWords []uint64) (*domain.SpinOutcome, error)

	// Pause rejects new spin entries. In-flight fulfillments still complete.
	Pause()

	// Unpause re-enables spin entries.
	Unpause()

	// Paused reports the pause flag.
	Paused() bool
}

type service struct {
	// mu is the mutual-exclusion guard for every state-mutating entry point:
	// no two spins or fulfillments interleave their internal steps.
	mu sync.Mutex

	paused atomic.Bool

	quotaSvc   quota.Service
	table      *tier.Table
	jackpotSvc jackpot.Service
	rewardSvc  reward.Service
	oracleCli  oracle.Client
	ledger     token.Ledger
	pending    repository.Pending
	publisher  *event.ResilientPublisher
	cfg        Config
	now        func() time.Time // injectable for testing
}

// NewService creates a new spin orchestrator.
func NewService(
	quotaSvc quota.Service,
	table *tier.Table,
	jackpotSvc jackpot.Service,
	rewardSvc reward.Service,
	oracleCli oracle.Client,
	ledger token.Ledger,
	pending repository.Pending,
	publisher *event.ResilientPublisher,
	cfg Config,
) Service {
	return &service{
		quotaSvc:   quotaSvc,
		table:      table,
		jackpotSvc: jackpotSvc,
		rewardSvc:  rewardSvc,
		oracleCli:  oracleCli,
		ledger:     ledger,
		pending:    pending,
		publisher:  publisher,
		cfg:        cfg,
		now:        time.Now,
	}
}

// Spin implements [Service].
func (s *service) Spin(ctx context.Context, userID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.paused.Load() {
		metrics.SpinsRejected.WithLabelValues(string(domain.SpinKindFree), RejectReasonPaused).Inc()
		return "", domain.ErrEnginePaused
	}

	if err := s.quotaSvc.CheckAndConsume(ctx, userID, domain.SpinKindFree); err != nil {
		metrics.SpinsRejected.WithLabelValues(string(domain.SpinKindFree), RejectReasonQuota).Inc()
		return "", err
	}

	requestID, err := s.submitAndRecord(ctx, userID, false)
	if err != nil {
		// The oracle submission never happened; hand the consumed credit back.
		s.refundQuota(ctx, userID, domain.SpinKindFree)
		return "", err
	}

	return requestID, nil
}

// PremiumSpin implements [Service].
func (s *service) PremiumSpin(ctx context.Context, userID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.paused.Load() {
		metrics.SpinsRejected.WithLabelValues(string(domain.SpinKindPremium), RejectReasonPaused).Inc()
		return "", domain.ErrEnginePaused
	}

	if err := s.quotaSvc.CheckAndConsume(ctx, userID, domain.SpinKindPremium); err != nil {
		metrics.SpinsRejected.WithLabelValues(string(domain.SpinKindPremium), RejectReasonQuota).Inc()
		return "", err
	}

	if err := s.chargePremium(ctx, userID); err != nil {
		s.refundQuota(ctx, userID, domain.SpinKindPremium)
		metrics.SpinsRejected.WithLabelValues(string(domain.SpinKindPremium), RejectReasonCharge).Inc()
		return "", err
	}

	requestID, err := s.submitAndRecord(ctx, userID, true)
	if err != nil {
		// The charge is already settled on the external ledger and is not
		// reversed; only the quota credit comes back. Surfaced loudly because
		// the user paid for a spin that never reached the oracle.
		s.refundQuota(ctx, userID, domain.SpinKindPremium)
		logger.FromContext(ctx).Error("Premium spin charged but randomness submission failed",
			"user_id", userID, "cost", s.cfg.PremiumSpinCost, "error", err)
		return "", err
	}

	return requestID, nil
}

// chargePremium pulls the full premium cost from the user, credits the
// jackpot contribution and burns the remainder. A transfer failure aborts
// the whole entry with no partial charge.
func (s *service) chargePremium(ctx context.Context, userID string) error {
	contribution, burn, err := s.jackpotSvc.Split(ctx, s.cfg.PremiumSpinCost)
	if err != nil {
		return err
	}

	if err := s.ledger.TransferFrom(ctx, userID, s.cfg.HouseAccount, s.cfg.PremiumSpinCost); err != nil {
		return err
	}

	if err := s.jackpotSvc.Credit(ctx, contribution); err != nil {
		s.reverseCharge(ctx, userID, err)
		return err
	}

	if err := s.ledger.BurnFrom(ctx, s.cfg.HouseAccount, burn); err != nil {
		s.reverseCharge(ctx, userID, err)
		return err
	}

	return nil
}

// reverseCharge sends the pulled premium cost back from the house account
// after a later charge step failed, so an aborted entry never keeps the
// user's tokens.
func (s *service) reverseCharge(ctx context.Context, userID string, cause error) {
	if err := s.ledger.TransferFrom(ctx, s.cfg.HouseAccount, userID, s.cfg.PremiumSpinCost); err != nil {
		logger.FromContext(ctx).Error("Failed to reverse premium charge",
			"error", err, "cause", cause, "user_id", userID, "cost", s.cfg.PremiumSpinCost)
		return
	}
	logger.FromContext(ctx).Warn("Premium charge reversed after failed entry",
		"cause", cause, "user_id", userID, "cost", s.cfg.PremiumSpinCost)
}

// submitAndRecord submits the randomness request, records the pending
// correlation and emits the spin-requested notification.
func (s *service) submitAndRecord(ctx context.Context, userID string, premium bool) (string, error) {
	kind := domain.SpinKindFree
	if premium {
		kind = domain.SpinKindPremium
	}

	requestID, err := s.oracleCli.RequestRandomness(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to submit randomness request: %w", err)
	}

	p := &domain.PendingSpin{
		RequestID: requestID,
		UserID:    userID,
		Premium:   premium,
		CreatedAt: s.now(),
	}
	if err := s.pending.CreatePending(ctx, p); err != nil {
		// The oracle request is already paid for and cannot be withdrawn; a
		// failed correlation record means its eventual callback will be
		// rejected as unknown.
		return "", fmt.Errorf("failed to record pending spin: %w", err)
	}

	logger.FromContext(ctx).Info("Spin requested",
		"user_id", userID, "request_id", requestID, "kind", kind)
	metrics.SpinsRequested.WithLabelValues(string(kind)).Inc()
	s.updatePendingGauge(ctx)
	s.publisher.PublishWithRetry(ctx, event.NewSpinRequestedEvent(userID, requestID, premium))

	return requestID, nil
}

// Fulfill implements [Service].
func (s *service) Fulfill(ctx context.Context, requestID string, randomWords []uint64) (*domain.SpinOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(randomWords) == 0 {
		return nil, fmt.Errorf("%w: fulfillment carries no random words", domain.ErrInvalidParameter)
	}

	p, err := s.pending.ConsumePending(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to consume pending spin: %w", err)
	}
	if p == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownRequest, requestID)
	}

	log := logger.FromContext(ctx)
	metrics.OracleFulfillLag.Observe(s.now().Sub(p.CreatedAt).Seconds())

	tierIndex := s.table.Select(randomWords[0])
	resolved := s.table.Tier(tierIndex)

	jackpotPaid, err := s.jackpotSvc.MaybePayout(ctx, tierIndex, p.UserID)
	if err != nil {
		// The pending record is already consumed; the reward still pays out.
		log.Error("Jackpot payout failed during fulfillment",
			"error", err, "request_id", requestID, "user_id", p.UserID)
	}

	s.rewardSvc.Disburse(ctx, resolved, p.UserID, p.Premium)

	outcome := &domain.SpinOutcome{
		RequestID:   requestID,
		UserID:      p.UserID,
		TierIndex:   tierIndex,
		TierName:    resolved.Name,
		Premium:     p.Premium,
		JackpotPaid: jackpotPaid,
	}

	log.Info("Spin resolved",
		"user_id", p.UserID,
		"request_id", requestID,
		"tier", tierIndex,
		"premium", p.Premium,
		"jackpot_paid", jackpotPaid)
	metrics.SpinsResolved.WithLabelValues(resolved.Name).Inc()
	s.updatePendingGauge(ctx)
	s.publisher.PublishWithRetry(ctx, event.NewSpinResolvedEvent(p.UserID, requestID, tierIndex, p.Premium))

	return outcome, nil
}

// Pause implements [Service].
func (s *service) Pause() {
	s.paused.Store(true)
	logger.Info("Spin engine paused")
}

// Unpause implements [Service].
func (s *service) Unpause() {
	s.paused.Store(false)
	logger.Info("Spin engine unpaused")
}

// Paused implements [Service].
func (s *service) Paused() bool {
	return s.paused.Load()
}

func (s *service) refundQuota(ctx context.Context, userID string, kind domain.SpinKind) {
	if err := s.quotaSvc.Refund(ctx, userID, kind); err != nil {
		logger.FromContext(ctx).Error("Failed to refund quota credit",
			"error", err, "user_id", userID, "kind", kind)
	}
}

func (s *service) updatePendingGauge(ctx context.Context) {
	count, err := s.pending.CountPending(ctx)
	if err != nil {
		logger.FromContext(ctx).Warn("Failed to count pending spins", "error", err)
		return
	}
	metrics.PendingSpins.Set(float64(count))
}
