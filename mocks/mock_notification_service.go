package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"edulink/internal/domain"
	"edulink/internal/service"
)

// MockNotificationService is a mock implementation of service.NotificationService.
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) PasswordReset(ctx context.Context, to service.Recipient, token string) error {
	args := m.Called(ctx, to, token)
	return args.Error(0)
}

func (m *MockNotificationService) IntervenantModerated(ctx context.Context, to service.Recipient, status domain.ModerationStatus, reason *string) error {
	args := m.Called(ctx, to, status, reason)
	return args.Error(0)
}

func (m *MockNotificationService) ChallengeModerated(ctx context.Context, to service.Recipient, challenge *domain.Challenge) error {
	args := m.Called(ctx, to, challenge)
	return args.Error(0)
}

func (m *MockNotificationService) CollaborationProposed(ctx context.Context, to service.Recipient, collab *domain.Collaboration, proposedBy string) error {
	args := m.Called(ctx, to, collab, proposedBy)
	return args.Error(0)
}

func (m *MockNotificationService) FactureSent(ctx context.Context, to service.Recipient, facture *domain.Facture) error {
	args := m.Called(ctx, to, facture)
	return args.Error(0)
}

func (m *MockNotificationService) FactureOverdue(ctx context.Context, to service.Recipient, facture *domain.Facture) error {
	args := m.Called(ctx, to, facture)
	return args.Error(0)
}
