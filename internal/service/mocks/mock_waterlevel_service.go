package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Goutham227347/Ground-Water/internal/model"
	"github.com/Goutham227347/Ground-Water/internal/repository"
	"github.com/Goutham227347/Ground-Water/internal/service"
)

type MockWaterLevelService struct {
	mock.Mock
}

func (m *MockWaterLevelService) ListByStation(ctx context.Context, code string, from, to *time.Time, limit int) ([]model.WaterLevel, error) {
	args := m.Called(ctx, code, from, to, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.WaterLevel), args.Error(1)
}

func (m *MockWaterLevelService) List(ctx context.Context, f repository.WaterLevelFilter, limit, offset int) (*service.WaterLevelListResult, error) {
	args := m.Called(ctx, f, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.WaterLevelListResult), args.Error(1)
}
