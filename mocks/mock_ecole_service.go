package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"edulink/internal/domain"
	"edulink/internal/service"
)

// MockEcoleService is a mock implementation of service.EcoleService.
type MockEcoleService struct {
	mock.Mock
}

func (m *MockEcoleService) GetMine(ctx context.Context, actor domain.Actor) (*domain.Ecole, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ecole), args.Error(1)
}

func (m *MockEcoleService) UpdateMine(ctx context.Context, actor domain.Actor, input service.UpdateEcoleInput) (*domain.Ecole, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ecole), args.Error(1)
}

func (m *MockEcoleService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Ecole, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ecole), args.Error(1)
}

func (m *MockEcoleService) List(ctx context.Context, offset, limit int) ([]domain.Ecole, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Ecole), args.Int(1), args.Error(2)
}
