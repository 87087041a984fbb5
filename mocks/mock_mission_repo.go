package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"edulink/internal/domain"
)

// MockMissionRepo is a mock implementation of port.MissionRepository.
type MockMissionRepo struct {
	mock.Mock
}

func (m *MockMissionRepo) Create(ctx context.Context, mission *domain.Mission) error {
	args := m.Called(ctx, mission)
	return args.Error(0)
}

func (m *MockMissionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Mission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Mission), args.Error(1)
}

func (m *MockMissionRepo) List(ctx context.Context, filter domain.MissionFilter, offset, limit int) ([]domain.Mission, int, error) {
	args := m.Called(ctx, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Mission), args.Int(1), args.Error(2)
}

func (m *MockMissionRepo) Update(ctx context.Context, mission *domain.Mission) error {
	args := m.Called(ctx, mission)
	return args.Error(0)
}

func (m *MockMissionRepo) SetStatus(ctx context.Context, id uuid.UUID, from, to domain.MissionStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

func (m *MockMissionRepo) AssignIntervenant(ctx context.Context, id uuid.UUID, intervenantID *uuid.UUID) error {
	args := m.Called(ctx, id, intervenantID)
	return args.Error(0)
}

func (m *MockMissionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMissionRepo) CountByStatus(ctx context.Context, filter domain.MissionFilter) (domain.StatusCounts, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.StatusCounts), args.Error(1)
}
