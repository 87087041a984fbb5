package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"edulink/internal/domain"
)

// MockCollaborationRepo is a mock implementation of port.CollaborationRepository.
type MockCollaborationRepo struct {
	mock.Mock
}

func (m *MockCollaborationRepo) Create(ctx context.Context, collab *domain.Collaboration) error {
	args := m.Called(ctx, collab)
	return args.Error(0)
}

func (m *MockCollaborationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Collaboration, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Collaboration), args.Error(1)
}

func (m *MockCollaborationRepo) List(ctx context.Context, filter domain.CollaborationFilter, offset, limit int) ([]domain.Collaboration, int, error) {
	args := m.Called(ctx, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Collaboration), args.Int(1), args.Error(2)
}

func (m *MockCollaborationRepo) CountByStatus(ctx context.Context, filter domain.CollaborationFilter) (domain.StatusCounts, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.StatusCounts), args.Error(1)
}

func (m *MockCollaborationRepo) Update(ctx context.Context, collab *domain.Collaboration) error {
	args := m.Called(ctx, collab)
	return args.Error(0)
}

func (m *MockCollaborationRepo) SetValidated(ctx context.Context, id uuid.UUID, party domain.CollaborationParty) error {
	args := m.Called(ctx, id, party)
	return args.Error(0)
}

func (m *MockCollaborationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.CollaborationStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

func (m *MockCollaborationRepo) Delete(ctx context.Context, id uuid.UUID, party domain.CollaborationParty) error {
	args := m.Called(ctx, id, party)
	return args.Error(0)
}
