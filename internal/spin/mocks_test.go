package spin

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/fortunaworks/spinvault/internal/domain"
)

// MockQuota
type MockQuota struct {
	mock.Mock
}

// CheckAndConsume implements [quota.Service].
func (m *MockQuota) CheckAndConsume(ctx context.Context, userID string, kind domain.SpinKind) error {
	args := m.Called(ctx, userID, kind)
	return args.Error(0)
}

func (m *MockQuota) Refund(ctx context.Context, userID string, kind domain.SpinKind) error {
	args := m.Called(ctx, userID, kind)
	return args.Error(0)
}

func (m *MockQuota) Remaining(ctx context.Context, userID string) (int, int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Int(1), args.Error(2)
}

// MockJackpot
type MockJackpot struct {
	mock.Mock
}

func (m *MockJackpot) Split(ctx context.Context, cost int64) (int64, int64, error) {
	args := m.Called(ctx, cost)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func (m *MockJackpot) Credit(ctx context.Context, amount int64) error {
	args := m.Called(ctx, amount)
	return args.Error(0)
}

func (m *MockJackpot) MaybePayout(ctx context.Context, tierIndex int, userID string) (int64, error) {
	args := m.Called(ctx, tierIndex, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJackpot) State(ctx context.Context) (*domain.JackpotState, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JackpotState), args.Error(1)
}

func (m *MockJackpot) SetContributionBP(ctx context.Context, bp int) error {
	args := m.Called(ctx, bp)
	return args.Error(0)
}

func (m *MockJackpot) SetSeedAmount(ctx context.Context, amount int64) error {
	args := m.Called(ctx, amount)
	return args.Error(0)
}

// MockReward
type MockReward struct {
	mock.Mock
}

func (m *MockReward) Disburse(ctx context.Context, tier domain.RewardTier, userID string, premium bool) {
	m.Called(ctx, tier, userID, premium)
}

// MockOracle
type MockOracle struct {
	mock.Mock
}

func (m *MockOracle) RequestRandomness(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// MockLedger
type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) TransferFrom(ctx context.Context, from, to string, amount int64) error {
	args := m.Called(ctx, from, to, amount)
	return args.Error(0)
}

func (m *MockLedger) BurnFrom(ctx context.Context, holder string, amount int64) error {
	args := m.Called(ctx, holder, amount)
	return args.Error(0)
}

// MockPending
type MockPending struct {
	mock.Mock
}

func (m *MockPending) CreatePending(ctx context.Context, p *domain.PendingSpin) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPending) ConsumePending(ctx context.Context, requestID string) (*domain.PendingSpin, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PendingSpin), args.Error(1)
}

func (m *MockPending) CountPending(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPending) CountStalePending(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}
