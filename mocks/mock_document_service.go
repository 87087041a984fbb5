package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"edulink/internal/domain"
	"edulink/internal/service"
)

// MockDocumentService is a mock implementation of service.DocumentService.
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Upload(ctx context.Context, actor domain.Actor, input service.UploadDocumentInput) (*domain.Document, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentService) GetVault(ctx context.Context, actor domain.Actor, intervenantID uuid.UUID) (*domain.Vault, error) {
	args := m.Called(ctx, actor, intervenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vault), args.Error(1)
}

func (m *MockDocumentService) GetDownloadURL(ctx context.Context, actor domain.Actor, docID uuid.UUID) (string, error) {
	args := m.Called(ctx, actor, docID)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentService) Preview(ctx context.Context, actor domain.Actor, docID uuid.UUID) (*service.DocumentPreview, error) {
	args := m.Called(ctx, actor, docID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DocumentPreview), args.Error(1)
}

func (m *MockDocumentService) Delete(ctx context.Context, actor domain.Actor, docID uuid.UUID) error {
	args := m.Called(ctx, actor, docID)
	return args.Error(0)
}
