package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"edulink/internal/domain"
	"edulink/internal/service"
)

// MockChallengeService is a mock implementation of service.ChallengeService.
type MockChallengeService struct {
	mock.Mock
}

func (m *MockChallengeService) Create(ctx context.Context, actor domain.Actor, input service.ChallengeInput) (*domain.Challenge, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Challenge), args.Error(1)
}

func (m *MockChallengeService) Get(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Challenge, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Challenge), args.Error(1)
}

func (m *MockChallengeService) ListCatalog(ctx context.Context, filter domain.ChallengeFilter, offset, limit int) ([]domain.Challenge, int, error) {
	args := m.Called(ctx, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Challenge), args.Int(1), args.Error(2)
}

func (m *MockChallengeService) ListMine(ctx context.Context, actor domain.Actor, offset, limit int) ([]domain.Challenge, int, error) {
	args := m.Called(ctx, actor, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Challenge), args.Int(1), args.Error(2)
}

func (m *MockChallengeService) ListForModeration(ctx context.Context, filter domain.ChallengeFilter, offset, limit int) ([]domain.Challenge, int, error) {
	args := m.Called(ctx, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Challenge), args.Int(1), args.Error(2)
}

func (m *MockChallengeService) Update(ctx context.Context, actor domain.Actor, id uuid.UUID, input service.ChallengeInput) (*domain.Challenge, error) {
	args := m.Called(ctx, actor, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Challenge), args.Error(1)
}

func (m *MockChallengeService) Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

func (m *MockChallengeService) Approve(ctx context.Context, actor domain.Actor, id uuid.UUID) (*service.ModerationResult, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ModerationResult), args.Error(1)
}

func (m *MockChallengeService) Reject(ctx context.Context, actor domain.Actor, id uuid.UUID, reason string) (*service.ModerationResult, error) {
	args := m.Called(ctx, actor, id, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ModerationResult), args.Error(1)
}

func (m *MockChallengeService) Stats(ctx context.Context) (*domain.ModerationStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ModerationStats), args.Error(1)
}
