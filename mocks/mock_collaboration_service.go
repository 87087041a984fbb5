package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"edulink/internal/domain"
	"edulink/internal/service"
)

// MockCollaborationService is a mock implementation of service.CollaborationService.
type MockCollaborationService struct {
	mock.Mock
}

func (m *MockCollaborationService) Create(ctx context.Context, actor domain.Actor, input service.CreateCollaborationInput) (*domain.CollaborationView, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CollaborationView), args.Error(1)
}

func (m *MockCollaborationService) Get(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.CollaborationView, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CollaborationView), args.Error(1)
}

func (m *MockCollaborationService) List(ctx context.Context, actor domain.Actor, status domain.CollaborationStatus, offset, limit int) (*service.CollaborationList, int, error) {
	args := m.Called(ctx, actor, status, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(*service.CollaborationList), args.Int(1), args.Error(2)
}

func (m *MockCollaborationService) Update(ctx context.Context, actor domain.Actor, id uuid.UUID, input service.CollaborationTerms) (*domain.CollaborationView, error) {
	args := m.Called(ctx, actor, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CollaborationView), args.Error(1)
}

func (m *MockCollaborationService) Validate(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.CollaborationView, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CollaborationView), args.Error(1)
}

func (m *MockCollaborationService) ChangeStatus(ctx context.Context, actor domain.Actor, id uuid.UUID, to domain.CollaborationStatus) (*domain.CollaborationView, error) {
	args := m.Called(ctx, actor, id, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CollaborationView), args.Error(1)
}

func (m *MockCollaborationService) Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}
