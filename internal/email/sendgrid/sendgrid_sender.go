package sendgrid

import (
	"context"
	"fmt"
	"net/http"

	sg "github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"edulink/internal/port"
)

type sendgridSender struct {
	client *sg.Client
	from   *sgmail.Email
}

// NewSendgridSender creates a SendGrid-backed EmailSender.
func NewSendgridSender(apiKey, fromAddress, fromName string) port.EmailSender {
	return &sendgridSender{
		client: sg.NewSendClient(apiKey),
		from:   sgmail.NewEmail(fromName, fromAddress),
	}
}

func buildMail(from *sgmail.Email, msg port.EmailMessage) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = msg.Subject
	p.AddTos(sgmail.NewEmail(msg.ToName, msg.ToEmail))

	m := sgmail.NewV3Mail()
	m.SetFrom(from)
	m.AddPersonalizations(p)
	m.AddContent(
		sgmail.NewContent("text/plain", msg.Text),
		sgmail.NewContent("text/html", msg.HTML),
	)
	return m
}

func (s *sendgridSender) Send(ctx context.Context, msg port.EmailMessage) error {
	res, err := s.client.SendWithContext(ctx, buildMail(s.from, msg))
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid send: status %d: %s", res.StatusCode, res.Body)
	}
	return nil
}
