package sendgrid

import (
	"testing"

	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edulink/internal/port"
)

func TestBuildMail(t *testing.T) {
	m := buildMail(sgmail.NewEmail("EduLink", "noreply@edulink.fr"), port.EmailMessage{
		ToEmail: "ecole@example.fr",
		ToName:  "Lycée Victor Hugo",
		Subject: "Nouvelle collaboration",
		HTML:    "<p>Bonjour</p>",
		Text:    "Bonjour",
	})

	assert.Equal(t, "noreply@edulink.fr", m.From.Address)
	require.Len(t, m.Personalizations, 1)
	assert.Equal(t, "Nouvelle collaboration", m.Personalizations[0].Subject)
	require.Len(t, m.Personalizations[0].To, 1)
	assert.Equal(t, "ecole@example.fr", m.Personalizations[0].To[0].Address)
	require.Len(t, m.Content, 2)
	assert.Equal(t, "text/plain", m.Content[0].Type)
	assert.Equal(t, "<p>Bonjour</p>", m.Content[1].Value)
}
