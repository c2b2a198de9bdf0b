package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Goutham227347/Ground-Water/internal/model"
	"github.com/Goutham227347/Ground-Water/internal/repository"
	"github.com/Goutham227347/Ground-Water/internal/service"
)

type MockResourceService struct {
	mock.Mock
}

func (m *MockResourceService) LatestOrCompute(ctx context.Context, code string) (*model.ResourceMetrics, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ResourceMetrics), args.Error(1)
}

func (m *MockResourceService) List(ctx context.Context, f repository.ResourceFilter, limit, offset int) (*service.ResourceListResult, error) {
	args := m.Called(ctx, f, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ResourceListResult), args.Error(1)
}

func (m *MockResourceService) Alerts(ctx context.Context) ([]model.ResourceMetrics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ResourceMetrics), args.Error(1)
}
