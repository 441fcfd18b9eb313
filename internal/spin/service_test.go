package spin

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fortunaworks/spinvault/internal/domain"
	"github.com/fortunaworks/spinvault/internal/event"
	"github.com/fortunaworks/spinvault/internal/tier"
)

type fixture struct {
	quota   *MockQuota
	jackpot *MockJackpot
	reward  *MockReward
	oracle  *MockOracle
	ledger  *MockLedger
	pending *MockPending
	bus     *event.MemoryBus
	svc     Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		quota:   &MockQuota{},
		jackpot: &MockJackpot{},
		reward:  &MockReward{},
		oracle:  &MockOracle{},
		ledger:  &MockLedger{},
		pending: &MockPending{},
		bus:     event.NewMemoryBus(),
	}

	publisher := event.NewResilientPublisher(f.bus,
		event.DefaultResilientConfig(filepath.Join(t.TempDir(), "dead_letter.log")))

	f.svc = NewService(f.quota, tier.Default(), f.jackpot, f.reward, f.oracle, f.ledger, f.pending, publisher, Config{
		PremiumSpinCost: 5000,
		HouseAccount:    "house",
	})
	return f
}

func (f *fixture) assertExpectations(t *testing.T) {
	t.Helper()
	f.quota.AssertExpectations(t)
	f.jackpot.AssertExpectations(t)
	f.reward.AssertExpectations(t)
	f.oracle.AssertExpectations(t)
	f.ledger.AssertExpectations(t)
	f.pending.AssertExpectations(t)
}

func TestSpin_Success(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.quota.On("CheckAndConsume", ctx, "alice", domain.SpinKindFree).Return(nil)
	f.oracle.On("RequestRandomness", ctx).Return("req-1", nil)
	f.pending.On("CreatePending", ctx, mock.MatchedBy(func(p *domain.PendingSpin) bool {
		return p.RequestID == "req-1" && p.UserID == "alice" && !p.Premium
	})).Return(nil)
	f.pending.On("CountPending", ctx).Return(int64(1), nil)

	requestID, err := f.svc.Spin(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "req-1", requestID)

	f.assertExpectations(t)
}

func TestSpin_PausedRejectsEntry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.svc.Pause()
	assert.True(t, f.svc.Paused())

	_, err := f.svc.Spin(ctx, "alice")
	assert.ErrorIs(t, err, domain.ErrEnginePaused)

	_, err = f.svc.PremiumSpin(ctx, "alice")
	assert.ErrorIs(t, err, domain.ErrEnginePaused)

	// Neither entry touched the quota or the oracle
	f.assertExpectations(t)

	f.svc.Unpause()
	assert.False(t, f.svc.Paused())
}

func TestSpin_QuotaExceeded(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.quota.On("CheckAndConsume", ctx, "alice", domain.SpinKindFree).Return(domain.ErrQuotaExceeded)

	_, err := f.svc.Spin(ctx, "alice")
	assert.ErrorIs(t, err, domain.ErrQuotaExceeded)
	f.oracle.AssertNotCalled(t, "RequestRandomness", mock.Anything)

	f.assertExpectations(t)
}

func TestSpin_OracleFailureRefundsQuota(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.quota.On("CheckAndConsume", ctx, "alice", domain.SpinKindFree).Return(nil)
	f.oracle.On("RequestRandomness", ctx).Return("", errors.New("oracle unreachable"))
	f.quota.On("Refund", ctx, "alice", domain.SpinKindFree).Return(nil)

	_, err := f.svc.Spin(ctx, "alice")
	assert.Error(t, err)
	f.pending.AssertNotCalled(t, "CreatePending", mock.Anything, mock.Anything)

	f.assertExpectations(t)
}

func TestSpin_PendingRecordFailureRefundsQuota(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.quota.On("CheckAndConsume", ctx, "alice", domain.SpinKindFree).Return(nil)
	f.oracle.On("RequestRandomness", ctx).Return("req-1", nil)
	f.pending.On("CreatePending", ctx, mock.Anything).Return(errors.New("insert failed"))
	f.quota.On("Refund", ctx, "alice", domain.SpinKindFree).Return(nil)

	_, err := f.svc.Spin(ctx, "alice")
	assert.Error(t, err)

	f.assertExpectations(t)
}

func TestPremiumSpin_ChargeSequence(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.quota.On("CheckAndConsume", ctx, "alice", domain.SpinKindPremium).Return(nil)
	f.jackpot.On("Split", ctx, int64(5000)).Return(int64(50), int64(4950), nil)
	f.ledger.On("TransferFrom", ctx, "alice", "house", int64(5000)).Return(nil)
	f.jackpot.On("Credit", ctx, int64(50)).Return(nil)
	f.ledger.On("BurnFrom", ctx, "house", int64(4950)).Return(nil)
	f.oracle.On("RequestRandomness", ctx).Return("req-2", nil)
	f.pending.On("CreatePending", ctx, mock.MatchedBy(func(p *domain.PendingSpin) bool {
		return p.RequestID == "req-2" && p.Premium
	})).Return(nil)
	f.pending.On("CountPending", ctx).Return(int64(1), nil)

	requestID, err := f.svc.PremiumSpin(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "req-2", requestID)

	f.assertExpectations(t)
}

func TestPremiumSpin_TransferFailureRefundsQuota(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.quota.On("CheckAndConsume", ctx, "alice", domain.SpinKindPremium).Return(nil)
	f.jackpot.On("Split", ctx, int64(5000)).Return(int64(50), int64(4950), nil)
	f.ledger.On("TransferFrom", ctx, "alice", "house", int64(5000)).Return(domain.ErrTransferFailed)
	f.quota.On("Refund", ctx, "alice", domain.SpinKindPremium).Return(nil)

	_, err := f.svc.PremiumSpin(ctx, "alice")
	assert.ErrorIs(t, err, domain.ErrTransferFailed)

	f.jackpot.AssertNotCalled(t, "Credit", mock.Anything, mock.Anything)
	f.ledger.AssertNotCalled(t, "BurnFrom", mock.Anything, mock.Anything, mock.Anything)
	f.oracle.AssertNotCalled(t, "RequestRandomness", mock.Anything)

	f.assertExpectations(t)
}

func TestPremiumSpin_SubmissionFailureAfterCharge(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.quota.On("CheckAndConsume", ctx, "alice", domain.SpinKindPremium).Return(nil)
	f.jackpot.On("Split", ctx, int64(5000)).Return(int64(50), int64(4950), nil)
	f.ledger.On("TransferFrom", ctx, "alice", "house", int64(5000)).Return(nil)
	f.jackpot.On("Credit", ctx, int64(50)).Return(nil)
	f.ledger.On("BurnFrom", ctx, "house", int64(4950)).Return(nil)
	f.oracle.On("RequestRandomness", ctx).Return("", errors.New("oracle unreachable"))
	f.quota.On("Refund", ctx, "alice", domain.SpinKindPremium).Return(nil)

	// The charge stays settled; only the quota credit comes back.
	_, err := f.svc.PremiumSpin(ctx, "alice")
	assert.Error(t, err)

	f.assertExpectations(t)
}

func TestPremiumSpin_BurnFailureReversesCharge(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.quota.On("CheckAndConsume", ctx, "alice", domain.SpinKindPremium).Return(nil)
	f.jackpot.On("Split", ctx, int64(5000)).Return(int64(50), int64(4950), nil)
	f.ledger.On("TransferFrom", ctx, "alice", "house", int64(5000)).Return(nil)
	f.jackpot.On("Credit", ctx, int64(50)).Return(nil)
	f.ledger.On("BurnFrom", ctx, "house", int64(4950)).Return(errors.New("burn rejected"))
	// The pulled cost goes back to the user before the entry aborts.
	f.ledger.On("TransferFrom", ctx, "house", "alice", int64(5000)).Return(nil)
	f.quota.On("Refund", ctx, "alice", domain.SpinKindPremium).Return(nil)

	_, err := f.svc.PremiumSpin(ctx, "alice")
	assert.Error(t, err)

	f.oracle.AssertNotCalled(t, "RequestRandomness", mock.Anything)
	f.assertExpectations(t)
}

func TestPremiumSpin_CreditFailureReversesCharge(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.quota.On("CheckAndConsume", ctx, "alice", domain.SpinKindPremium).Return(nil)
	f.jackpot.On("Split", ctx, int64(5000)).Return(int64(50), int64(4950), nil)
	f.ledger.On("TransferFrom", ctx, "alice", "house", int64(5000)).Return(nil)
	f.jackpot.On("Credit", ctx, int64(50)).Return(errors.New("jackpot store down"))
	f.ledger.On("TransferFrom", ctx, "house", "alice", int64(5000)).Return(nil)
	f.quota.On("Refund", ctx, "alice", domain.SpinKindPremium).Return(nil)

	_, err := f.svc.PremiumSpin(ctx, "alice")
	assert.Error(t, err)

	f.ledger.AssertNotCalled(t, "BurnFrom", mock.Anything, mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestPremiumSpin_ReversalFailureStillAborts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.quota.On("CheckAndConsume", ctx, "alice", domain.SpinKindPremium).Return(nil)
	f.jackpot.On("Split", ctx, int64(5000)).Return(int64(50), int64(4950), nil)
	f.ledger.On("TransferFrom", ctx, "alice", "house", int64(5000)).Return(nil)
	f.jackpot.On("Credit", ctx, int64(50)).Return(nil)
	f.ledger.On("BurnFrom", ctx, "house", int64(4950)).Return(errors.New("burn rejected"))
	f.ledger.On("TransferFrom", ctx, "house", "alice", int64(5000)).Return(domain.ErrTransferFailed)
	f.quota.On("Refund", ctx, "alice", domain.SpinKindPremium).Return(nil)

	_, err := f.svc.PremiumSpin(ctx, "alice")
	assert.Error(t, err)

	f.oracle.AssertNotCalled(t, "RequestRandomness", mock.Anything)
	f.assertExpectations(t)
}

func TestFulfill_Success(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created := time.Now().Add(-3 * time.Second)
	f.pending.On("ConsumePending", ctx, "req-1").Return(&domain.PendingSpin{
		RequestID: "req-1", UserID: "alice", Premium: false, CreatedAt: created,
	}, nil)
	// Word 0 lands in tier 0
	f.jackpot.On("MaybePayout", ctx, 0, "alice").Return(int64(0), nil)
	f.reward.On("Disburse", ctx, mock.MatchedBy(func(rt domain.RewardTier) bool {
		return rt.Name == "common"
	}), "alice", false).Return()
	f.pending.On("CountPending", ctx).Return(int64(0), nil)

	var resolved []event.SpinResolvedPayloadV1
	f.bus.Subscribe(event.SpinResolved, func(ctx context.Context, e event.Event) error {
		resolved = append(resolved, e.Payload.(event.SpinResolvedPayloadV1))
		return nil
	})

	outcome, err := f.svc.Fulfill(ctx, "req-1", []uint64{0})
	require.NoError(t, err)
	assert.Equal(t, "req-1", outcome.RequestID)
	assert.Equal(t, "alice", outcome.UserID)
	assert.Equal(t, 0, outcome.TierIndex)
	assert.Equal(t, "common", outcome.TierName)
	assert.False(t, outcome.Premium)
	assert.Zero(t, outcome.JackpotPaid)

	require.Len(t, resolved, 1)
	assert.Equal(t, "req-1", resolved[0].RequestID)

	f.assertExpectations(t)
}

func TestFulfill_EmptyRandomWords(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Fulfill(context.Background(), "req-1", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)

	f.pending.AssertNotCalled(t, "ConsumePending", mock.Anything, mock.Anything)
}

func TestFulfill_UnknownRequest(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.pending.On("ConsumePending", ctx, "req-bogus").Return(nil, nil)

	_, err := f.svc.Fulfill(ctx, "req-bogus", []uint64{42})
	assert.ErrorIs(t, err, domain.ErrUnknownRequest)

	f.jackpot.AssertNotCalled(t, "MaybePayout", mock.Anything, mock.Anything, mock.Anything)
	f.reward.AssertNotCalled(t, "Disburse", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	f.assertExpectations(t)
}

func TestFulfill_SecondCallIsRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.pending.On("ConsumePending", ctx, "req-1").Return(&domain.PendingSpin{
		RequestID: "req-1", UserID: "alice", CreatedAt: time.Now(),
	}, nil).Once()
	f.pending.On("ConsumePending", ctx, "req-1").Return(nil, nil).Once()
	f.jackpot.On("MaybePayout", ctx, 0, "alice").Return(int64(0), nil)
	f.reward.On("Disburse", ctx, mock.Anything, "alice", false).Return()
	f.pending.On("CountPending", ctx).Return(int64(0), nil)

	_, err := f.svc.Fulfill(ctx, "req-1", []uint64{0})
	require.NoError(t, err)

	_, err = f.svc.Fulfill(ctx, "req-1", []uint64{0})
	assert.ErrorIs(t, err, domain.ErrUnknownRequest)

	f.assertExpectations(t)
}

func TestFulfill_JackpotTierPaysPool(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.pending.On("ConsumePending", ctx, "req-1").Return(&domain.PendingSpin{
		RequestID: "req-1", UserID: "alice", Premium: true, CreatedAt: time.Now(),
	}, nil)
	// Word 9950 lands in tier 4
	f.jackpot.On("MaybePayout", ctx, 4, "alice").Return(int64(25_000), nil)
	f.reward.On("Disburse", ctx, mock.MatchedBy(func(rt domain.RewardTier) bool {
		return rt.Name == "jackpot"
	}), "alice", true).Return()
	f.pending.On("CountPending", ctx).Return(int64(0), nil)

	outcome, err := f.svc.Fulfill(ctx, "req-1", []uint64{9950})
	require.NoError(t, err)
	assert.Equal(t, 4, outcome.TierIndex)
	assert.Equal(t, int64(25_000), outcome.JackpotPaid)
	assert.True(t, outcome.Premium)

	f.assertExpectations(t)
}

func TestFulfill_JackpotErrorDoesNotBlockReward(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.pending.On("ConsumePending", ctx, "req-1").Return(&domain.PendingSpin{
		RequestID: "req-1", UserID: "alice", CreatedAt: time.Now(),
	}, nil)
	f.jackpot.On("MaybePayout", ctx, 4, "alice").Return(int64(0), errors.New("db down"))
	f.reward.On("Disburse", ctx, mock.Anything, "alice", false).Return()
	f.pending.On("CountPending", ctx).Return(int64(0), nil)

	outcome, err := f.svc.Fulfill(ctx, "req-1", []uint64{9999})
	require.NoError(t, err, "a jackpot failure is logged, not surfaced")
	assert.Zero(t, outcome.JackpotPaid)

	f.assertExpectations(t)
}

func TestFulfill_WorksWhilePaused(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.svc.Pause()

	f.pending.On("ConsumePending", ctx, "req-1").Return(&domain.PendingSpin{
		RequestID: "req-1", UserID: "alice", CreatedAt: time.Now(),
	}, nil)
	f.jackpot.On("MaybePayout", ctx, 0, "alice").Return(int64(0), nil)
	f.reward.On("Disburse", ctx, mock.Anything, "alice", false).Return()
	f.pending.On("CountPending", ctx).Return(int64(0), nil)

	_, err := f.svc.Fulfill(ctx, "req-1", []uint64{0})
	require.NoError(t, err, "pause blocks entries, not fulfillments")

	f.assertExpectations(t)
}

func TestFulfill_NormalizesLargeWords(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.pending.On("ConsumePending", ctx, "req-1").Return(&domain.PendingSpin{
		RequestID: "req-1", UserID: "alice", CreatedAt: time.Now(),
	}, nil)
	// 3*10000 + 9950 reduces to 9950, tier 4
	f.jackpot.On("MaybePayout", ctx, 4, "alice").Return(int64(0), nil)
	f.reward.On("Disburse", ctx, mock.Anything, "alice", false).Return()
	f.pending.On("CountPending", ctx).Return(int64(0), nil)

	outcome, err := f.svc.Fulfill(ctx, "req-1", []uint64{39_950})
	require.NoError(t, err)
	assert.Equal(t, 4, outcome.TierIndex)

	f.assertExpectations(t)
}
