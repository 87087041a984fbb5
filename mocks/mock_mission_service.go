package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"edulink/internal/domain"
	"edulink/internal/service"
)

// MockMissionService is a mock implementation of service.MissionService.
type MockMissionService struct {
	mock.Mock
}

func (m *MockMissionService) Create(ctx context.Context, actor domain.Actor, input service.MissionInput) (*domain.Mission, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Mission), args.Error(1)
}

func (m *MockMissionService) Get(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Mission, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Mission), args.Error(1)
}

func (m *MockMissionService) List(ctx context.Context, actor domain.Actor, status domain.MissionStatus, offset, limit int) ([]domain.Mission, int, error) {
	args := m.Called(ctx, actor, status, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Mission), args.Int(1), args.Error(2)
}

func (m *MockMissionService) ListMine(ctx context.Context, actor domain.Actor, status domain.MissionStatus, offset, limit int) ([]domain.Mission, int, error) {
	args := m.Called(ctx, actor, status, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Mission), args.Int(1), args.Error(2)
}

func (m *MockMissionService) ListAssigned(ctx context.Context, actor domain.Actor, offset, limit int) ([]domain.Mission, int, error) {
	args := m.Called(ctx, actor, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Mission), args.Int(1), args.Error(2)
}

func (m *MockMissionService) Update(ctx context.Context, actor domain.Actor, id uuid.UUID, input service.MissionInput) (*domain.Mission, error) {
	args := m.Called(ctx, actor, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Mission), args.Error(1)
}

func (m *MockMissionService) ToggleStatus(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Mission, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Mission), args.Error(1)
}

func (m *MockMissionService) Assign(ctx context.Context, actor domain.Actor, id uuid.UUID, intervenantID *uuid.UUID) (*domain.Mission, error) {
	args := m.Called(ctx, actor, id, intervenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Mission), args.Error(1)
}

func (m *MockMissionService) Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}
