package port

import (
	"context"

	"edulink/internal/domain"
)

// EmailMessage is a rendered email ready for delivery.
type EmailMessage struct {
	ToEmail string
	ToName  string
	Subject string
	HTML    string
	Text    string
}

// EmailSender delivers rendered emails.
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// FactureRenderer turns an invoice into a printable document.
type FactureRenderer interface {
	Render(facture *domain.Facture, parties domain.FactureParties) ([]byte, error)
}
