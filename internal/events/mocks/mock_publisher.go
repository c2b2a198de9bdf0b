package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Goutham227347/Ground-Water/internal/events"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishAlert(ctx context.Context, ev events.AlertEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
