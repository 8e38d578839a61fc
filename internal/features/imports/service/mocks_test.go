package service

import (
	"context"
	"time"

	"cybake-bridge/internal/features/imports/domain"
	orderdomain "cybake-bridge/internal/features/orders/domain"

	"github.com/stretchr/testify/mock"
)

// MockOrderProvider is a mock implementation of orders ports.OrderProvider.
type MockOrderProvider struct {
	mock.Mock
}

func (m *MockOrderProvider) GetOrder(ctx context.Context, gid string) (*orderdomain.Order, error) {
	args := m.Called(ctx, gid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orderdomain.Order), args.Error(1)
}

func (m *MockOrderProvider) AddTags(ctx context.Context, gid string, tags ...string) error {
	args := m.Called(ctx, gid, tags)
	return args.Error(0)
}

func (m *MockOrderProvider) RemoveTags(ctx context.Context, gid string, tags ...string) error {
	args := m.Called(ctx, gid, tags)
	return args.Error(0)
}

// MockSubmitter is a mock implementation of ports.Submitter.
type MockSubmitter struct {
	mock.Mock
}

func (m *MockSubmitter) Submit(ctx context.Context, payload []byte) (*domain.SubmissionResult, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SubmissionResult), args.Error(1)
}

// MockLogRepository is a mock implementation of ports.LogRepository.
type MockLogRepository struct {
	mock.Mock
}

func (m *MockLogRepository) FindSuccessful(ctx context.Context, shopifyOrderID string) (*domain.ImportLog, error) {
	args := m.Called(ctx, shopifyOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ImportLog), args.Error(1)
}

func (m *MockLogRepository) Record(ctx context.Context, log *domain.ImportLog) (bool, error) {
	args := m.Called(ctx, log)
	return args.Bool(0), args.Error(1)
}

func (m *MockLogRepository) FindByID(ctx context.Context, id string) (*domain.ImportLog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ImportLog), args.Error(1)
}

func (m *MockLogRepository) UpdateAfterRetry(ctx context.Context, log *domain.ImportLog) (bool, error) {
	args := m.Called(ctx, log)
	return args.Bool(0), args.Error(1)
}

func (m *MockLogRepository) List(ctx context.Context, filter domain.LogFilter) ([]domain.ImportLog, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.ImportLog), args.Get(1).(int64), args.Error(2)
}

func (m *MockLogRepository) Summary(ctx context.Context) (domain.LogSummary, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.LogSummary), args.Error(1)
}

// MockLocker is a mock implementation of ports.ImportLocker.
type MockLocker struct {
	mock.Mock
}

func (m *MockLocker) Acquire(ctx context.Context, orderID string, ttl time.Duration) (string, bool, error) {
	args := m.Called(ctx, orderID, ttl)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockLocker) Release(ctx context.Context, orderID, token string) error {
	args := m.Called(ctx, orderID, token)
	return args.Error(0)
}
