package handler

import (
	"context"

	"cybake-bridge/internal/features/imports/domain"

	"github.com/stretchr/testify/mock"
)

type MockImportUseCase struct {
	mock.Mock
}

func (m *MockImportUseCase) Import(ctx context.Context, req domain.ImportRequest) (*domain.ImportResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ImportResult), args.Error(1)
}

type MockRetryUseCase struct {
	mock.Mock
}

func (m *MockRetryUseCase) Retry(ctx context.Context, logID string) (*domain.RetryResult, error) {
	args := m.Called(ctx, logID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RetryResult), args.Error(1)
}

type MockLogQuery struct {
	mock.Mock
}

func (m *MockLogQuery) List(ctx context.Context, filter domain.LogFilter) (*domain.LogPage, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LogPage), args.Error(1)
}
