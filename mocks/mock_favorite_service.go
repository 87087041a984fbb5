package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"edulink/internal/domain"
	"edulink/internal/service"
)

// MockFavoriteService is a mock implementation of service.FavoriteService.
type MockFavoriteService struct {
	mock.Mock
}

func (m *MockFavoriteService) List(ctx context.Context, actor domain.Actor) ([]domain.Favorite, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Favorite), args.Error(1)
}

func (m *MockFavoriteService) Toggle(ctx context.Context, actor domain.Actor, intervenantID uuid.UUID) (*domain.FavoriteState, error) {
	args := m.Called(ctx, actor, intervenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FavoriteState), args.Error(1)
}

func (m *MockFavoriteService) SetNote(ctx context.Context, actor domain.Actor, intervenantID uuid.UUID, input service.NoteInput) (*domain.FavoriteState, error) {
	args := m.Called(ctx, actor, intervenantID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FavoriteState), args.Error(1)
}

func (m *MockFavoriteService) State(ctx context.Context, actor domain.Actor, intervenantID uuid.UUID) (*domain.FavoriteState, error) {
	args := m.Called(ctx, actor, intervenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FavoriteState), args.Error(1)
}
