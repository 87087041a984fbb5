package noop

import (
	"context"
	"log"

	"edulink/internal/port"
)

type noopSender struct{}

// NewNoopSender creates an EmailSender that only logs what would have been sent.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) Send(_ context.Context, msg port.EmailMessage) error {
	log.Printf("[NOOP EMAIL] to=%s subject=%q\n%s", msg.ToEmail, msg.Subject, msg.Text)
	return nil
}
