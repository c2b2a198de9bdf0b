package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Goutham227347/Ground-Water/internal/model"
	"github.com/Goutham227347/Ground-Water/internal/repository"
)

type MockResourceRepository struct {
	mock.Mock
}

func (m *MockResourceRepository) Create(ctx context.Context, rm *model.ResourceMetrics) (*model.ResourceMetrics, error) {
	args := m.Called(ctx, rm)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ResourceMetrics), args.Error(1)
}

func (m *MockResourceRepository) Latest(ctx context.Context, code string) (*model.ResourceMetrics, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ResourceMetrics), args.Error(1)
}

func (m *MockResourceRepository) List(ctx context.Context, f repository.ResourceFilter, pq repository.PageQuery) (*repository.PageResult[model.ResourceMetrics], error) {
	args := m.Called(ctx, f, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.ResourceMetrics]), args.Error(1)
}

func (m *MockResourceRepository) LatestPerStation(ctx context.Context) (map[string]model.ResourceMetrics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]model.ResourceMetrics), args.Error(1)
}

func (m *MockResourceRepository) AlertDistribution(ctx context.Context) (map[model.AlertStatus]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[model.AlertStatus]int), args.Error(1)
}

func (m *MockResourceRepository) DistinctStationCount(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockResourceRepository) CountByAlert(ctx context.Context, status model.AlertStatus) (int, error) {
	args := m.Called(ctx, status)
	return args.Int(0), args.Error(1)
}

func (m *MockResourceRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
