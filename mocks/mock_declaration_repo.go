package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"edulink/internal/domain"
)

// MockDeclarationRepo is a mock implementation of port.DeclarationRepository.
type MockDeclarationRepo struct {
	mock.Mock
}

func (m *MockDeclarationRepo) Create(ctx context.Context, decl *domain.Declaration) error {
	args := m.Called(ctx, decl)
	return args.Error(0)
}

func (m *MockDeclarationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Declaration, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Declaration), args.Error(1)
}

func (m *MockDeclarationRepo) List(ctx context.Context, filter domain.DeclarationFilter, offset, limit int) ([]domain.Declaration, int, error) {
	args := m.Called(ctx, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Declaration), args.Int(1), args.Error(2)
}

func (m *MockDeclarationRepo) ListForExport(ctx context.Context, filter domain.DeclarationFilter) ([]domain.Declaration, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Declaration), args.Error(1)
}

func (m *MockDeclarationRepo) Update(ctx context.Context, decl *domain.Declaration) error {
	args := m.Called(ctx, decl)
	return args.Error(0)
}

func (m *MockDeclarationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDeclarationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from []domain.DeclarationStatus, to domain.DeclarationStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

func (m *MockDeclarationRepo) Summary(ctx context.Context, intervenantID *uuid.UUID, year int) (*domain.DeclarationSummary, error) {
	args := m.Called(ctx, intervenantID, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeclarationSummary), args.Error(1)
}
