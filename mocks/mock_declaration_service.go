package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"edulink/internal/domain"
	"edulink/internal/service"
)

// MockDeclarationService is a mock implementation of service.DeclarationService.
type MockDeclarationService struct {
	mock.Mock
}

func (m *MockDeclarationService) Create(ctx context.Context, actor domain.Actor, input service.CreateDeclarationInput) (*domain.DeclarationView, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeclarationView), args.Error(1)
}

func (m *MockDeclarationService) Get(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.DeclarationView, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeclarationView), args.Error(1)
}

func (m *MockDeclarationService) List(ctx context.Context, actor domain.Actor, filter domain.DeclarationFilter, offset, limit int) (*service.DeclarationList, int, error) {
	args := m.Called(ctx, actor, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(*service.DeclarationList), args.Int(1), args.Error(2)
}

func (m *MockDeclarationService) Update(ctx context.Context, actor domain.Actor, id uuid.UUID, input service.DeclarationAmounts) (*domain.DeclarationView, error) {
	args := m.Called(ctx, actor, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeclarationView), args.Error(1)
}

func (m *MockDeclarationService) Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

func (m *MockDeclarationService) Transmit(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.DeclarationView, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeclarationView), args.Error(1)
}

func (m *MockDeclarationService) Validate(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.DeclarationView, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeclarationView), args.Error(1)
}

func (m *MockDeclarationService) Estimate(chiffreAffaires int64) (domain.Estimate, error) {
	args := m.Called(chiffreAffaires)
	return args.Get(0).(domain.Estimate), args.Error(1)
}

func (m *MockDeclarationService) Export(ctx context.Context, filter domain.DeclarationFilter, w io.Writer) error {
	args := m.Called(ctx, filter, w)
	return args.Error(0)
}
