package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"edulink/internal/domain"
)

// MockEcoleRepo is a mock implementation of port.EcoleRepository.
type MockEcoleRepo struct {
	mock.Mock
}

func (m *MockEcoleRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Ecole, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ecole), args.Error(1)
}

func (m *MockEcoleRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Ecole, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ecole), args.Error(1)
}

func (m *MockEcoleRepo) List(ctx context.Context, offset, limit int) ([]domain.Ecole, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Ecole), args.Int(1), args.Error(2)
}

func (m *MockEcoleRepo) Update(ctx context.Context, ecole *domain.Ecole) error {
	args := m.Called(ctx, ecole)
	return args.Error(0)
}
