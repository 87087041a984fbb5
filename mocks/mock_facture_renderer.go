package mocks

import (
	"github.com/stretchr/testify/mock"

	"edulink/internal/domain"
)

// MockFactureRenderer is a mock implementation of port.FactureRenderer.
type MockFactureRenderer struct {
	mock.Mock
}

func (m *MockFactureRenderer) Render(facture *domain.Facture, parties domain.FactureParties) ([]byte, error) {
	args := m.Called(facture, parties)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
