package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Goutham227347/Ground-Water/internal/cgwb"
)

type MockArchiver struct {
	mock.Mock
}

func (m *MockArchiver) SaveStations(ctx context.Context, stations []cgwb.Station, fetchedAt time.Time) (string, error) {
	args := m.Called(ctx, stations, fetchedAt)
	return args.String(0), args.Error(1)
}

func (m *MockArchiver) SaveWaterLevels(ctx context.Context, stationCode string, readings []cgwb.Reading, fetchedAt time.Time) (string, error) {
	args := m.Called(ctx, stationCode, readings, fetchedAt)
	return args.String(0), args.Error(1)
}
