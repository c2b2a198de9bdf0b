package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Goutham227347/Ground-Water/internal/model"
	"github.com/Goutham227347/Ground-Water/internal/repository"
)

type MockStationRepository struct {
	mock.Mock
}

func (m *MockStationRepository) Upsert(ctx context.Context, st *model.Station) (*model.Station, bool, error) {
	args := m.Called(ctx, st)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*model.Station), args.Bool(1), args.Error(2)
}

func (m *MockStationRepository) FindByCode(ctx context.Context, code string) (*model.Station, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Station), args.Error(1)
}

func (m *MockStationRepository) List(ctx context.Context, f repository.StationFilter) ([]model.Station, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Station), args.Error(1)
}

func (m *MockStationRepository) Stats(ctx context.Context) (*repository.StationStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.StationStats), args.Error(1)
}

func (m *MockStationRepository) TouchLastDataUpdate(ctx context.Context, code string, ts time.Time) error {
	args := m.Called(ctx, code, ts)
	return args.Error(0)
}

func (m *MockStationRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
