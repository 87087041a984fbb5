package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockStatsRepo is a mock implementation of port.StatsRepository.
type MockStatsRepo struct {
	mock.Mock
}

func (m *MockStatsRepo) CountEcoles(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockStatsRepo) CountAssignedMissions(ctx context.Context, intervenantID uuid.UUID) (int, error) {
	args := m.Called(ctx, intervenantID)
	return args.Int(0), args.Error(1)
}
