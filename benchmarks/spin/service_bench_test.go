package spin_bench

import (
	"context"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fortunaworks/spinvault/internal/domain"
	"github.com/fortunaworks/spinvault/internal/event"
	"github.com/fortunaworks/spinvault/internal/jackpot"
	"github.com/fortunaworks/spinvault/internal/quota"
	"github.com/fortunaworks/spinvault/internal/reward"
	"github.com/fortunaworks/spinvault/internal/spin"
	"github.com/fortunaworks/spinvault/internal/tier"
)

// --- Stubs (Zero-overhead mocks for benchmarking) ---

type StubAccountRepo struct{}

func (s *StubAccountRepo) GetAccount(ctx context.Context, userID string) (*domain.QuotaAccount, error) {
	// Fresh zero account every call: the quota check always passes
	return &domain.QuotaAccount{UserID: userID}, nil
}
func (s *StubAccountRepo) UpsertAccount(ctx context.Context, acct *domain.QuotaAccount) error {
	return nil
}

type StubJackpotRepo struct{}

func (s *StubJackpotRepo) GetJackpot(ctx context.Context) (*domain.JackpotState, error) {
	return &domain.JackpotState{Pool: 10_000, ContributionBP: 100, SeedAmount: 10_000, WinningTier: 4}, nil
}
func (s *StubJackpotRepo) InitJackpot(ctx context.Context, state *domain.JackpotState) error {
	return nil
}
func (s *StubJackpotRepo) CreditPool(ctx context.Context, amount int64) (int64, error) {
	return 10_000 + amount, nil
}
func (s *StubJackpotRepo) ResetPool(ctx context.Context) (int64, error) { return 10_000, nil }
func (s *StubJackpotRepo) SetContributionBP(ctx context.Context, bp int) error {
	return nil
}
func (s *StubJackpotRepo) SetSeedAmount(ctx context.Context, amount int64) error {
	return nil
}

// StubPendingRepo always has a pending record for whatever token is asked for,
// letting Fulfill run back to back without a paired Spin call.
type StubPendingRepo struct{}

func (s *StubPendingRepo) CreatePending(ctx context.Context, p *domain.PendingSpin) error {
	return nil
}
func (s *StubPendingRepo) ConsumePending(ctx context.Context, requestID string) (*domain.PendingSpin, error) {
	return &domain.PendingSpin{RequestID: requestID, UserID: "bench-user", CreatedAt: time.Now()}, nil
}
func (s *StubPendingRepo) CountPending(ctx context.Context) (int64, error) { return 1, nil }
func (s *StubPendingRepo) CountStalePending(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

type StubVault struct{}

func (s *StubVault) DistributeReward(ctx context.Context, recipient, asset string, amount int64) (bool, error) {
	return true, nil
}
func (s *StubVault) Withdraw(ctx context.Context, to string, amount int64) error { return nil }

type StubLedger struct{}

func (s *StubLedger) TransferFrom(ctx context.Context, from, to string, amount int64) error {
	return nil
}
func (s *StubLedger) BurnFrom(ctx context.Context, holder string, amount int64) error { return nil }

type StubOracle struct {
	counter atomic.Uint64
}

func (s *StubOracle) RequestRandomness(ctx context.Context) (string, error) {
	return "bench-req-" + strconv.FormatUint(s.counter.Add(1), 10), nil
}

// StubBus implements event.Bus
type StubBus struct{}

func (b *StubBus) Publish(ctx context.Context, e event.Event) error      { return nil }
func (b *StubBus) Subscribe(eventType event.Type, handler event.Handler) {}

func newBenchService(b *testing.B) spin.Service {
	b.Helper()

	publisher := event.NewResilientPublisher(&StubBus{},
		event.DefaultResilientConfig(filepath.Join(b.TempDir(), "dead_letter.log")))

	quotaSvc := quota.NewService(&StubAccountRepo{}, quota.Config{
		DayLengthSeconds:      86400,
		DailyFreeSpinLimit:    1 << 30,
		DailyPremiumSpinLimit: 1 << 30,
	})
	jackpotSvc := jackpot.NewService(&StubJackpotRepo{}, &StubVault{}, publisher)
	rewardSvc := reward.NewService(&StubVault{}, publisher)

	return spin.NewService(quotaSvc, tier.Default(), jackpotSvc, rewardSvc,
		&StubOracle{}, &StubLedger{}, &StubPendingRepo{}, publisher, spin.Config{
			PremiumSpinCost: 5000,
			HouseAccount:    "house",
		})
}

// --- Benchmark Functions ---

// BenchmarkSpin measures the free spin entry path: quota check, randomness
// submission and pending record, with all collaborators stubbed.
func BenchmarkSpin(b *testing.B) {
	svc := newBenchService(b)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := svc.Spin(ctx, "bench-user"); err != nil {
			b.Fatalf("Spin failed: %v", err)
		}
	}
}

// BenchmarkPremiumSpin adds the charge sequence on top of the entry path.
func BenchmarkPremiumSpin(b *testing.B) {
	svc := newBenchService(b)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := svc.PremiumSpin(ctx, "bench-user"); err != nil {
			b.Fatalf("PremiumSpin failed: %v", err)
		}
	}
}

// BenchmarkFulfill measures the resolution path: pending consumption, tier
// selection, jackpot check and reward disbursement.
func BenchmarkFulfill(b *testing.B) {
	svc := newBenchService(b)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		word := uint64(i % 10000)
		if _, err := svc.Fulfill(ctx, "bench-req", []uint64{word}); err != nil {
			b.Fatalf("Fulfill failed: %v", err)
		}
	}
}

// BenchmarkTierSelect isolates the weighted draw itself.
func BenchmarkTierSelect(b *testing.B) {
	table := tier.Default()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = table.Select(uint64(i))
	}
}
