package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"edulink/internal/domain"
	"edulink/internal/service"
)

// MockIntervenantService is a mock implementation of service.IntervenantService.
type MockIntervenantService struct {
	mock.Mock
}

func (m *MockIntervenantService) List(ctx context.Context, actor domain.Actor, filter domain.IntervenantFilter, offset, limit int) ([]domain.Intervenant, int, error) {
	args := m.Called(ctx, actor, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Intervenant), args.Int(1), args.Error(2)
}

func (m *MockIntervenantService) Get(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Intervenant, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Intervenant), args.Error(1)
}

func (m *MockIntervenantService) GetMine(ctx context.Context, actor domain.Actor) (*domain.Intervenant, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Intervenant), args.Error(1)
}

func (m *MockIntervenantService) UpdateMine(ctx context.Context, actor domain.Actor, input service.UpdateIntervenantInput) (*domain.Intervenant, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Intervenant), args.Error(1)
}

func (m *MockIntervenantService) Approve(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Intervenant, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Intervenant), args.Error(1)
}

func (m *MockIntervenantService) Reject(ctx context.Context, actor domain.Actor, id uuid.UUID, reason string) (*domain.Intervenant, error) {
	args := m.Called(ctx, actor, id, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Intervenant), args.Error(1)
}

func (m *MockIntervenantService) Stats(ctx context.Context) (*domain.ModerationStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ModerationStats), args.Error(1)
}
