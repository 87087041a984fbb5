package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"edulink/internal/domain"
)

// MockFavoriteRepo is a mock implementation of port.FavoriteRepository.
type MockFavoriteRepo struct {
	mock.Mock
}

func (m *MockFavoriteRepo) Toggle(ctx context.Context, ecoleID, intervenantID uuid.UUID) (bool, error) {
	args := m.Called(ctx, ecoleID, intervenantID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteRepo) Exists(ctx context.Context, ecoleID, intervenantID uuid.UUID) (bool, error) {
	args := m.Called(ctx, ecoleID, intervenantID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteRepo) List(ctx context.Context, ecoleID uuid.UUID) ([]domain.Favorite, error) {
	args := m.Called(ctx, ecoleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Favorite), args.Error(1)
}

func (m *MockFavoriteRepo) Count(ctx context.Context, ecoleID uuid.UUID) (int, error) {
	args := m.Called(ctx, ecoleID)
	return args.Int(0), args.Error(1)
}

func (m *MockFavoriteRepo) GetNote(ctx context.Context, ecoleID, intervenantID uuid.UUID) (string, error) {
	args := m.Called(ctx, ecoleID, intervenantID)
	return args.String(0), args.Error(1)
}

func (m *MockFavoriteRepo) UpsertNote(ctx context.Context, ecoleID, intervenantID uuid.UUID, note string) error {
	args := m.Called(ctx, ecoleID, intervenantID, note)
	return args.Error(0)
}
