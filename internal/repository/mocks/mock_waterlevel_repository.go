package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Goutham227347/Ground-Water/internal/model"
	"github.com/Goutham227347/Ground-Water/internal/repository"
)

type MockWaterLevelRepository struct {
	mock.Mock
}

func (m *MockWaterLevelRepository) Upsert(ctx context.Context, wl *model.WaterLevel) (*model.WaterLevel, bool, error) {
	args := m.Called(ctx, wl)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*model.WaterLevel), args.Bool(1), args.Error(2)
}

func (m *MockWaterLevelRepository) ListByStation(ctx context.Context, code string, f repository.WaterLevelFilter, limit int) ([]model.WaterLevel, error) {
	args := m.Called(ctx, code, f, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.WaterLevel), args.Error(1)
}

func (m *MockWaterLevelRepository) List(ctx context.Context, f repository.WaterLevelFilter, pq repository.PageQuery) (*repository.PageResult[model.WaterLevel], error) {
	args := m.Called(ctx, f, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.WaterLevel]), args.Error(1)
}

func (m *MockWaterLevelRepository) ListRange(ctx context.Context, code string, from, to time.Time) ([]model.WaterLevel, error) {
	args := m.Called(ctx, code, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.WaterLevel), args.Error(1)
}

func (m *MockWaterLevelRepository) LatestPerStation(ctx context.Context) (map[string]model.WaterLevel, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]model.WaterLevel), args.Error(1)
}

func (m *MockWaterLevelRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
