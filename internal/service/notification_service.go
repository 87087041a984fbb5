package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"

	"edulink/internal/domain"
	"edulink/internal/pdf"
	"edulink/internal/port"
)

// Recipient is the addressee of a notification.
type Recipient struct {
	Email string
	Name  string
}

// NotificationService renders and sends the transactional emails of the platform.
type NotificationService interface {
	PasswordReset(ctx context.Context, to Recipient, token string) error
	IntervenantModerated(ctx context.Context, to Recipient, status domain.ModerationStatus, reason *string) error
	ChallengeModerated(ctx context.Context, to Recipient, challenge *domain.Challenge) error
	CollaborationProposed(ctx context.Context, to Recipient, collab *domain.Collaboration, proposedBy string) error
	FactureSent(ctx context.Context, to Recipient, facture *domain.Facture) error
	FactureOverdue(ctx context.Context, to Recipient, facture *domain.Facture) error
}

const layoutTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1f2937; max-width: 600px; margin: 0 auto;">
<p>Bonjour {{.Name}},</p>
{{template "content" .}}
{{if .Link}}<p><a href="{{.Link}}" style="display: inline-block; padding: 10px 20px; background: #4f46e5; color: #fff; text-decoration: none; border-radius: 6px;">{{.LinkLabel}}</a></p>{{end}}
<p style="color: #6b7280; font-size: 12px;">L'équipe EduLink</p>
</body>
</html>`

var contentTemplates = map[string]string{
	"password_reset": `<p>Vous avez demandé la réinitialisation de votre mot de passe. Ce lien est valable une heure.</p>
<p>Si vous n'êtes pas à l'origine de cette demande, ignorez simplement cet email.</p>`,
	"intervenant_approved": `<p>Votre profil intervenant a été validé. Il est désormais visible par les écoles.</p>`,
	"intervenant_rejected": `<p>Votre profil intervenant n'a pas été validé.</p>
{{if .Reason}}<p><strong>Motif :</strong> {{.Reason}}</p>{{end}}
<p>Vous pouvez compléter votre profil et vos documents avant une nouvelle revue.</p>`,
	"challenge_approved": `<p>Votre challenge « {{.Title}} » a été approuvé et apparaît dans le catalogue.</p>`,
	"challenge_rejected": `<p>Votre challenge « {{.Title}} » a été refusé.</p>
{{if .Reason}}<p><strong>Motif :</strong> {{.Reason}}</p>{{end}}
<p>Une modification le soumettra de nouveau à la modération.</p>`,
	"collaboration_proposed": `<p>{{.From}} vous propose une collaboration : « {{.Title}} ».</p>
<p>Montant HT : {{.Amount}}</p>
<p>Consultez et validez les termes depuis votre espace.</p>`,
	"facture_sent": `<p>Vous trouverez ci-dessous la facture {{.Numero}} d'un montant de {{.Amount}} TTC.</p>
<p>Date d'échéance : {{.DueDate}}</p>`,
	"facture_overdue": `<p>Sauf erreur de notre part, la facture {{.Numero}} d'un montant de {{.Amount}} TTC, échue le {{.DueDate}}, reste impayée.</p>
<p>Merci de procéder à son règlement dans les meilleurs délais.</p>`,
}

type emailData struct {
	Name      string
	Link      string
	LinkLabel string
	Reason    string
	Title     string
	From      string
	Amount    string
	Numero    string
	DueDate   string
}

type notificationService struct {
	sender      port.EmailSender
	frontendURL string
	templates   map[string]*template.Template
}

// NewNotificationService creates a NotificationService. Links in emails point to frontendURL.
func NewNotificationService(sender port.EmailSender, frontendURL string) NotificationService {
	base := template.Must(template.New("layout").Parse(layoutTemplate))
	templates := make(map[string]*template.Template, len(contentTemplates))
	for name, content := range contentTemplates {
		t := template.Must(base.Clone())
		templates[name] = template.Must(t.New("content").Parse(content))
	}
	return &notificationService{
		sender:      sender,
		frontendURL: strings.TrimRight(frontendURL, "/"),
		templates:   templates,
	}
}

func (s *notificationService) PasswordReset(ctx context.Context, to Recipient, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", s.frontendURL, token)
	return s.send(ctx, to, "Réinitialisation de votre mot de passe", "password_reset",
		emailData{Link: link, LinkLabel: "Réinitialiser mon mot de passe"},
		"Réinitialisez votre mot de passe : "+link)
}

func (s *notificationService) IntervenantModerated(ctx context.Context, to Recipient, status domain.ModerationStatus, reason *string) error {
	data := emailData{Link: s.frontendURL + "/profil", LinkLabel: "Voir mon profil", Reason: deref(reason)}
	if status == domain.ModerationApproved {
		return s.send(ctx, to, "Votre profil a été validé", "intervenant_approved", data,
			"Votre profil intervenant a été validé.")
	}
	return s.send(ctx, to, "Votre profil n'a pas été validé", "intervenant_rejected", data,
		"Votre profil intervenant n'a pas été validé. Motif : "+data.Reason)
}

func (s *notificationService) ChallengeModerated(ctx context.Context, to Recipient, challenge *domain.Challenge) error {
	data := emailData{
		Title:     challenge.Title,
		Reason:    deref(challenge.RejectionReason),
		Link:      s.frontendURL + "/challenges/" + challenge.ID.String(),
		LinkLabel: "Voir le challenge",
	}
	if challenge.Status == domain.ModerationApproved {
		return s.send(ctx, to, "Challenge approuvé : "+challenge.Title, "challenge_approved", data,
			fmt.Sprintf("Votre challenge « %s » a été approuvé.", challenge.Title))
	}
	return s.send(ctx, to, "Challenge refusé : "+challenge.Title, "challenge_rejected", data,
		fmt.Sprintf("Votre challenge « %s » a été refusé. Motif : %s", challenge.Title, data.Reason))
}

func (s *notificationService) CollaborationProposed(ctx context.Context, to Recipient, collab *domain.Collaboration, proposedBy string) error {
	data := emailData{
		From:      proposedBy,
		Title:     collab.Titre,
		Amount:    pdf.FormatEuros(collab.MontantHT),
		Link:      s.frontendURL + "/collaborations/" + collab.ID.String(),
		LinkLabel: "Voir la collaboration",
	}
	return s.send(ctx, to, "Nouvelle proposition de collaboration", "collaboration_proposed", data,
		fmt.Sprintf("%s vous propose une collaboration : « %s ».", proposedBy, collab.Titre))
}

func (s *notificationService) FactureSent(ctx context.Context, to Recipient, facture *domain.Facture) error {
	data := factureEmailData(facture)
	data.Link = s.frontendURL + "/factures/" + facture.ID.String()
	data.LinkLabel = "Consulter la facture"
	return s.send(ctx, to, "Facture "+facture.Numero, "facture_sent", data,
		fmt.Sprintf("Facture %s : %s TTC, échéance le %s.", data.Numero, data.Amount, data.DueDate))
}

func (s *notificationService) FactureOverdue(ctx context.Context, to Recipient, facture *domain.Facture) error {
	data := factureEmailData(facture)
	data.Link = s.frontendURL + "/factures/" + facture.ID.String()
	data.LinkLabel = "Consulter la facture"
	return s.send(ctx, to, "Relance : facture "+facture.Numero+" en retard", "facture_overdue", data,
		fmt.Sprintf("La facture %s (%s TTC) échue le %s reste impayée.", data.Numero, data.Amount, data.DueDate))
}

func factureEmailData(f *domain.Facture) emailData {
	return emailData{
		Numero:  f.Numero,
		Amount:  pdf.FormatEuros(f.MontantTTC),
		DueDate: f.DateEcheance.Format("02/01/2006"),
	}
}

func (s *notificationService) send(ctx context.Context, to Recipient, subject, tmpl string, data emailData, text string) error {
	if to.Email == "" {
		return nil
	}
	data.Name = to.Name
	if data.Name == "" {
		data.Name = to.Email
	}

	var html bytes.Buffer
	if err := s.templates[tmpl].ExecuteTemplate(&html, "layout", data); err != nil {
		return fmt.Errorf("rendering %s email: %w", tmpl, err)
	}
	return s.sender.Send(ctx, port.EmailMessage{
		ToEmail: to.Email,
		ToName:  to.Name,
		Subject: subject,
		HTML:    html.String(),
		Text:    fmt.Sprintf("Bonjour %s,\n\n%s\n\nL'équipe EduLink", data.Name, text),
	})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
