package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Goutham227347/Ground-Water/internal/repository"
	"github.com/Goutham227347/Ground-Water/internal/service"
)

type MockStationService struct {
	mock.Mock
}

func (m *MockStationService) List(ctx context.Context, f repository.StationFilter) ([]service.StationListItem, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.StationListItem), args.Error(1)
}

func (m *MockStationService) Get(ctx context.Context, code string) (*service.StationDetail, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.StationDetail), args.Error(1)
}

func (m *MockStationService) Statistics(ctx context.Context) (*service.StationStatistics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.StationStatistics), args.Error(1)
}

func (m *MockStationService) Insights(ctx context.Context) ([]service.Insight, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.Insight), args.Error(1)
}
