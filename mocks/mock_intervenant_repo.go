package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"edulink/internal/domain"
)

// MockIntervenantRepo is a mock implementation of port.IntervenantRepository.
type MockIntervenantRepo struct {
	mock.Mock
}

func (m *MockIntervenantRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Intervenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Intervenant), args.Error(1)
}

func (m *MockIntervenantRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Intervenant, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Intervenant), args.Error(1)
}

func (m *MockIntervenantRepo) List(ctx context.Context, filter domain.IntervenantFilter, offset, limit int) ([]domain.Intervenant, int, error) {
	args := m.Called(ctx, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Intervenant), args.Int(1), args.Error(2)
}

func (m *MockIntervenantRepo) Update(ctx context.Context, intervenant *domain.Intervenant) error {
	args := m.Called(ctx, intervenant)
	return args.Error(0)
}

func (m *MockIntervenantRepo) Moderate(ctx context.Context, id uuid.UUID, from, to domain.ModerationStatus, reason *string) error {
	args := m.Called(ctx, id, from, to, reason)
	return args.Error(0)
}

func (m *MockIntervenantRepo) CountByStatus(ctx context.Context) (*domain.ModerationStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ModerationStats), args.Error(1)
}
