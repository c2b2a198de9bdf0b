package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Goutham227347/Ground-Water/internal/cgwb"
)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) FetchStations(ctx context.Context, state, district string) ([]cgwb.Station, error) {
	args := m.Called(ctx, state, district)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]cgwb.Station), args.Error(1)
}

func (m *MockClient) FetchWaterLevels(ctx context.Context, stationCode string, start, end time.Time) ([]cgwb.Reading, error) {
	args := m.Called(ctx, stationCode, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]cgwb.Reading), args.Error(1)
}
