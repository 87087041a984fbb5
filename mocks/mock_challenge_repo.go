package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"edulink/internal/domain"
)

// MockChallengeRepo is a mock implementation of port.ChallengeRepository.
type MockChallengeRepo struct {
	mock.Mock
}

func (m *MockChallengeRepo) Create(ctx context.Context, challenge *domain.Challenge) error {
	args := m.Called(ctx, challenge)
	return args.Error(0)
}

func (m *MockChallengeRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Challenge, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Challenge), args.Error(1)
}

func (m *MockChallengeRepo) List(ctx context.Context, filter domain.ChallengeFilter, offset, limit int) ([]domain.Challenge, int, error) {
	args := m.Called(ctx, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Challenge), args.Int(1), args.Error(2)
}

func (m *MockChallengeRepo) Update(ctx context.Context, challenge *domain.Challenge) error {
	args := m.Called(ctx, challenge)
	return args.Error(0)
}

func (m *MockChallengeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockChallengeRepo) Moderate(ctx context.Context, id uuid.UUID, to domain.ModerationStatus, reason *string) error {
	args := m.Called(ctx, id, to, reason)
	return args.Error(0)
}

func (m *MockChallengeRepo) Stats(ctx context.Context, intervenantID *uuid.UUID) (*domain.ModerationStats, error) {
	args := m.Called(ctx, intervenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ModerationStats), args.Error(1)
}
