package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Goutham227347/Ground-Water/internal/service"
)

type MockSyncService struct {
	mock.Mock
}

func (m *MockSyncService) SyncStation(ctx context.Context, code string, periodDays int) (*service.SyncResult, error) {
	args := m.Called(ctx, code, periodDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SyncResult), args.Error(1)
}

func (m *MockSyncService) SyncAll(ctx context.Context, periodDays int) (*service.SyncAllResult, error) {
	args := m.Called(ctx, periodDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SyncAllResult), args.Error(1)
}

func (m *MockSyncService) SyncByStates(ctx context.Context, states []string, periodDays int) (*service.SyncAllResult, error) {
	args := m.Called(ctx, states, periodDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SyncAllResult), args.Error(1)
}

func (m *MockSyncService) ImportStations(ctx context.Context, state, district string) (*service.ImportResult, error) {
	args := m.Called(ctx, state, district)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ImportResult), args.Error(1)
}
