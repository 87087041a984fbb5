package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"edulink/internal/domain"
)

// MockStatsService is a mock implementation of service.StatsService.
type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) GetStats(ctx context.Context, actor domain.Actor) (*domain.Stats, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Stats), args.Error(1)
}

func (m *MockStatsService) Reference() domain.Reference {
	args := m.Called()
	return args.Get(0).(domain.Reference)
}
