package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"edulink/internal/domain"
)

// MockFactureRepo is a mock implementation of port.FactureRepository.
type MockFactureRepo struct {
	mock.Mock
}

func (m *MockFactureRepo) NextSequence(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFactureRepo) Create(ctx context.Context, facture *domain.Facture) error {
	args := m.Called(ctx, facture)
	return args.Error(0)
}

func (m *MockFactureRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Facture, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Facture), args.Error(1)
}

func (m *MockFactureRepo) List(ctx context.Context, filter domain.FactureFilter, offset, limit int) ([]domain.Facture, int, error) {
	args := m.Called(ctx, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Facture), args.Int(1), args.Error(2)
}

func (m *MockFactureRepo) ListForExport(ctx context.Context, filter domain.FactureFilter) ([]domain.Facture, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Facture), args.Error(1)
}

func (m *MockFactureRepo) Update(ctx context.Context, facture *domain.Facture) error {
	args := m.Called(ctx, facture)
	return args.Error(0)
}

func (m *MockFactureRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFactureRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from []domain.FactureStatus, to domain.FactureStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

func (m *MockFactureRepo) MarkPaid(ctx context.Context, id uuid.UUID, mode domain.ModePaiement, date domain.Date) error {
	args := m.Called(ctx, id, mode, date)
	return args.Error(0)
}

func (m *MockFactureRepo) SetPDFPath(ctx context.Context, id uuid.UUID, path string) error {
	args := m.Called(ctx, id, path)
	return args.Error(0)
}

func (m *MockFactureRepo) ListOverdue(ctx context.Context, today domain.Date, limit int) ([]domain.Facture, error) {
	args := m.Called(ctx, today, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Facture), args.Error(1)
}

func (m *MockFactureRepo) Totals(ctx context.Context, filter domain.FactureFilter) (*domain.FactureTotals, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FactureTotals), args.Error(1)
}
