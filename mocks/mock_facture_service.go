package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"edulink/internal/domain"
	"edulink/internal/service"
)

// MockFactureService is a mock implementation of service.FactureService.
type MockFactureService struct {
	mock.Mock
}

func (m *MockFactureService) Create(ctx context.Context, actor domain.Actor, input service.FactureInput) (*domain.Facture, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Facture), args.Error(1)
}

func (m *MockFactureService) Get(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Facture, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Facture), args.Error(1)
}

func (m *MockFactureService) List(ctx context.Context, actor domain.Actor, filter domain.FactureFilter, offset, limit int) (*service.FactureList, int, error) {
	args := m.Called(ctx, actor, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(*service.FactureList), args.Int(1), args.Error(2)
}

func (m *MockFactureService) Update(ctx context.Context, actor domain.Actor, id uuid.UUID, input service.FactureInput) (*domain.Facture, error) {
	args := m.Called(ctx, actor, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Facture), args.Error(1)
}

func (m *MockFactureService) Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

func (m *MockFactureService) Send(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Facture, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Facture), args.Error(1)
}

func (m *MockFactureService) MarkPaid(ctx context.Context, actor domain.Actor, id uuid.UUID, input service.MarkPaidInput) (*domain.Facture, error) {
	args := m.Called(ctx, actor, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Facture), args.Error(1)
}

func (m *MockFactureService) Cancel(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Facture, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Facture), args.Error(1)
}

func (m *MockFactureService) GeneratePDF(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Facture, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Facture), args.Error(1)
}

func (m *MockFactureService) DownloadPDF(ctx context.Context, actor domain.Actor, id uuid.UUID) (*service.PDFFile, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PDFFile), args.Error(1)
}

func (m *MockFactureService) ExportCSV(ctx context.Context, filter domain.FactureFilter, w io.Writer) error {
	args := m.Called(ctx, filter, w)
	return args.Error(0)
}

func (m *MockFactureService) MarkOverdue(ctx context.Context, facture *domain.Facture) error {
	args := m.Called(ctx, facture)
	return args.Error(0)
}
