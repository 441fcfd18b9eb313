package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/fortunaworks/spinvault/internal/domain"
)

// MockSpinService is a mock implementation of the spin.Service interface
type MockSpinService struct {
	mock.Mock
}

func (m *MockSpinService) Spin(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockSpinService) PremiumSpin(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockSpinService) Fulfill(ctx context.Context, requestID string, randomWords []uint64) (*domain.SpinOutcome, error) {
	args := m.Called(ctx, requestID, randomWords)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SpinOutcome), args.Error(1)
}

func (m *MockSpinService) Pause() {
	m.Called()
}

func (m *MockSpinService) Unpause() {
	m.Called()
}

func (m *MockSpinService) Paused() bool {
	args := m.Called()
	return args.Bool(0)
}

// MockQuotaService is a mock implementation of the quota.Service interface
type MockQuotaService struct {
	mock.Mock
}

func (m *MockQuotaService) CheckAndConsume(ctx context.Context, userID string, kind domain.SpinKind) error {
	args := m.Called(ctx, userID, kind)
	return args.Error(0)
}

func (m *MockQuotaService) Refund(ctx context.Context, userID string, kind domain.SpinKind) error {
	args := m.Called(ctx, userID, kind)
	return args.Error(0)
}

func (m *MockQuotaService) Remaining(ctx context.Context, userID string) (int, int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Int(1), args.Error(2)
}

// MockJackpotService is a mock implementation of the jackpot.Service interface
type MockJackpotService struct {
	mock.Mock
}

func (m *MockJackpotService) Split(ctx context.Context, cost int64) (int64, int64, error) {
	args := m.Called(ctx, cost)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func (m *MockJackpotService) Credit(ctx context.Context, amount int64) error {
	args := m.Called(ctx, amount)
	return args.Error(0)
}

func (m *MockJackpotService) MaybePayout(ctx context.Context, tierIndex int, userID string) (int64, error) {
	args := m.Called(ctx, tierIndex, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJackpotService) State(ctx context.Context) (*domain.JackpotState, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JackpotState), args.Error(1)
}

func (m *MockJackpotService) SetContributionBP(ctx context.Context, bp int) error {
	args := m.Called(ctx, bp)
	return args.Error(0)
}

func (m *MockJackpotService) SetSeedAmount(ctx context.Context, amount int64) error {
	args := m.Called(ctx, amount)
	return args.Error(0)
}

// MockVault is a mock implementation of the treasury.Vault interface
type MockVault struct {
	mock.Mock
}

func (m *MockVault) DistributeReward(ctx context.Context, recipient, asset string, amount int64) (bool, error) {
	args := m.Called(ctx, recipient, asset, amount)
	return args.Bool(0), args.Error(1)
}

func (m *MockVault) Withdraw(ctx context.Context, to string, amount int64) error {
	args := m.Called(ctx, to, amount)
	return args.Error(0)
}
