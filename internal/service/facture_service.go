package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"edulink/internal/config"
	"edulink/internal/csvexport"
	"edulink/internal/domain"
	"edulink/internal/port"
)

// LigneInput is one invoice line in cents.
type LigneInput struct {
	Description  string  `json:"description" binding:"required,notblank,max=500"`
	Quantite     float64 `json:"quantite" binding:"gt=0"`
	PrixUnitaire int64   `json:"prix_unitaire" binding:"min=0"`
}

// FactureInput is the DTO for creating or editing an invoice. Emission date
// defaults to today, due date to the configured payment term and TVA rate to
// the configured default.
type FactureInput struct {
	Type          domain.FactureType `json:"type" binding:"required,oneof=ecole intervenant"`
	EcoleID       uuid.UUID          `json:"ecole_id" binding:"required"`
	IntervenantID *uuid.UUID         `json:"intervenant_id"`
	MissionID     *uuid.UUID         `json:"mission_id"`
	TauxTVA       *float64           `json:"taux_tva" binding:"omitempty,min=0,max=100"`
	DateEmission  domain.Date        `json:"date_emission"`
	DateEcheance  domain.Date        `json:"date_echeance"`
	Lignes        []LigneInput       `json:"lignes" binding:"required,min=1,max=100,dive"`
	Notes         string             `json:"notes" binding:"max=5000"`
}

// MarkPaidInput records a payment. DatePaiement defaults to today.
type MarkPaidInput struct {
	ModePaiement domain.ModePaiement `json:"mode_paiement" binding:"required"`
	DatePaiement domain.Date         `json:"date_paiement"`
}

// FactureList is one page of invoices with totals over the whole filter.
type FactureList struct {
	Factures []domain.Facture      `json:"factures"`
	Totals   *domain.FactureTotals `json:"totals"`
}

// PDFFile is a rendered invoice ready to stream.
type PDFFile struct {
	Filename string
	Data     []byte
}

// FactureService defines the invoicing contract.
type FactureService interface {
	Create(ctx context.Context, actor domain.Actor, input FactureInput) (*domain.Facture, error)
	Get(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Facture, error)
	List(ctx context.Context, actor domain.Actor, filter domain.FactureFilter, offset, limit int) (*FactureList, int, error)
	Update(ctx context.Context, actor domain.Actor, id uuid.UUID, input FactureInput) (*domain.Facture, error)
	Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error
	Send(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Facture, error)
	MarkPaid(ctx context.Context, actor domain.Actor, id uuid.UUID, input MarkPaidInput) (*domain.Facture, error)
	Cancel(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Facture, error)
	GeneratePDF(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Facture, error)
	DownloadPDF(ctx context.Context, actor domain.Actor, id uuid.UUID) (*PDFFile, error)
	ExportCSV(ctx context.Context, filter domain.FactureFilter, w io.Writer) error
	MarkOverdue(ctx context.Context, facture *domain.Facture) error
}

type factureService struct {
	repo            port.FactureRepository
	ecoleRepo       port.EcoleRepository
	intervenantRepo port.IntervenantRepository
	storage         port.ObjectStorage
	renderer        port.FactureRenderer
	notifier        NotificationService
	billing         config.BillingConfig
	bucket          string
}

// NewFactureService creates a new FactureService implementation.
func NewFactureService(
	repo port.FactureRepository,
	ecoleRepo port.EcoleRepository,
	intervenantRepo port.IntervenantRepository,
	storage port.ObjectStorage,
	renderer port.FactureRenderer,
	notifier NotificationService,
	billing config.BillingConfig,
	bucket string,
) FactureService {
	return &factureService{
		repo:            repo,
		ecoleRepo:       ecoleRepo,
		intervenantRepo: intervenantRepo,
		storage:         storage,
		renderer:        renderer,
		notifier:        notifier,
		billing:         billing,
		bucket:          bucket,
	}
}

// apply copies input onto f, enforcing who may bill whom, and recomputes totals.
func (s *factureService) apply(ctx context.Context, actor domain.Actor, f *domain.Facture, input FactureInput) error {
	switch actor.Role {
	case domain.RoleAdmin:
		if input.Type == domain.FactureTypeIntervenant && input.IntervenantID == nil {
			return domain.ErrProfileNotFound
		}
	case domain.RoleIntervenant:
		if input.Type != domain.FactureTypeIntervenant {
			return domain.ErrForbidden
		}
		id := actor.ProfileID
		input.IntervenantID = &id
	default:
		return domain.ErrInsufficientRole
	}

	if _, err := s.ecoleRepo.GetByID(ctx, input.EcoleID); err != nil {
		return err
	}
	if input.IntervenantID != nil && actor.IsAdmin() {
		if _, err := s.intervenantRepo.GetByID(ctx, *input.IntervenantID); err != nil {
			return err
		}
	}

	emission := input.DateEmission
	if emission.IsZero() {
		emission = domain.DateOf(time.Now())
	}
	echeance := input.DateEcheance
	if echeance.IsZero() {
		echeance = domain.DateOf(emission.AddDate(0, 0, s.billing.PaymentTermDays))
	}
	if echeance.Before(emission.Time) {
		return domain.ErrInvalidDateRange
	}

	f.Type = input.Type
	f.EcoleID = input.EcoleID
	f.IntervenantID = input.IntervenantID
	f.MissionID = input.MissionID
	f.TauxTVA = s.billing.DefaultTauxTVA
	if input.TauxTVA != nil {
		f.TauxTVA = *input.TauxTVA
	}
	f.DateEmission = emission
	f.DateEcheance = echeance
	f.Notes = strings.TrimSpace(input.Notes)
	f.Lignes = make(domain.FactureLignes, 0, len(input.Lignes))
	for _, l := range input.Lignes {
		f.Lignes = append(f.Lignes, domain.LigneFacture{
			Description:  strings.TrimSpace(l.Description),
			Quantite:     l.Quantite,
			PrixUnitaire: l.PrixUnitaire,
		})
	}
	return f.ComputeTotals()
}

func (s *factureService) Create(ctx context.Context, actor domain.Actor, input FactureInput) (*domain.Facture, error) {
	f := &domain.Facture{CreatedBy: actor.UserID}
	if err := s.apply(ctx, actor, f, input); err != nil {
		return nil, err
	}

	seq, err := s.repo.NextSequence(ctx)
	if err != nil {
		return nil, err
	}
	f.Numero = domain.FormatNumero(f.DateEmission.Year(), seq)

	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}
	log.Printf("factureService.Create: facture %s (%s) created by %s, TTC %d", f.Numero, f.ID, actor.UserID, f.MontantTTC)
	return f, nil
}

func (s *factureService) Get(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Facture, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !f.VisibleTo(actor) {
		return nil, domain.ErrNotFound
	}
	return f, nil
}

// issued loads an invoice the actor may manage.
func (s *factureService) issued(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Facture, error) {
	f, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !f.IssuedBy(actor) {
		return nil, domain.ErrForbidden
	}
	return f, nil
}

func scopeFactures(actor domain.Actor, filter *domain.FactureFilter) error {
	switch actor.Role {
	case domain.RoleAdmin:
	case domain.RoleEcole:
		id := actor.ProfileID
		filter.EcoleID = &id
	case domain.RoleIntervenant:
		id := actor.ProfileID
		filter.IntervenantID = &id
	default:
		return domain.ErrInsufficientRole
	}
	return nil
}

func (s *factureService) List(ctx context.Context, actor domain.Actor, filter domain.FactureFilter, offset, limit int) (*FactureList, int, error) {
	if err := scopeFactures(actor, &filter); err != nil {
		return nil, 0, err
	}
	items, total, err := s.repo.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	totals, err := s.repo.Totals(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	if items == nil {
		items = []domain.Facture{}
	}
	return &FactureList{Factures: items, Totals: totals}, total, nil
}

func (s *factureService) Update(ctx context.Context, actor domain.Actor, id uuid.UUID, input FactureInput) (*domain.Facture, error) {
	f, err := s.issued(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !f.CanEdit() {
		return nil, domain.ErrNotEditable
	}
	if input.Type != f.Type {
		return nil, domain.ErrFactureTypeLocked
	}
	if err := s.apply(ctx, actor, f, input); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *factureService) Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	f, err := s.issued(ctx, actor, id)
	if err != nil {
		return err
	}
	if !f.CanEdit() {
		return domain.ErrNotEditable
	}
	return s.repo.Delete(ctx, id)
}

func (s *factureService) transition(ctx context.Context, f *domain.Facture, from []domain.FactureStatus, to domain.FactureStatus) error {
	allowed := false
	for _, st := range from {
		if st == f.Status && f.Status.CanTransition(to) {
			allowed = true
		}
	}
	if !allowed {
		return domain.ErrInvalidTransition
	}
	if err := s.repo.UpdateStatus(ctx, f.ID, from, to); err != nil {
		return err
	}
	log.Printf("factureService.transition: facture %s %s -> %s", f.Numero, f.Status, to)
	f.Status = to
	return nil
}

// Send issues a draft and emails the école.
func (s *factureService) Send(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Facture, error) {
	f, err := s.issued(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := s.transition(ctx, f, []domain.FactureStatus{domain.FactureBrouillon}, domain.FactureEnvoyee); err != nil {
		return nil, err
	}
	s.notifyEcole(ctx, f, s.notifier.FactureSent)
	return f, nil
}

func (s *factureService) MarkPaid(ctx context.Context, actor domain.Actor, id uuid.UUID, input MarkPaidInput) (*domain.Facture, error) {
	if !domain.ValidModesPaiement[input.ModePaiement] {
		return nil, domain.ErrInvalidModePaiement
	}
	f, err := s.issued(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !f.Status.CanTransition(domain.FacturePayee) {
		return nil, domain.ErrInvalidTransition
	}

	date := input.DatePaiement
	if date.IsZero() {
		date = domain.DateOf(time.Now())
	}
	if err := s.repo.MarkPaid(ctx, id, input.ModePaiement, date); err != nil {
		return nil, err
	}
	log.Printf("factureService.MarkPaid: facture %s paid (%s) on %s", f.Numero, input.ModePaiement, date)

	f.Status = domain.FacturePayee
	f.ModePaiement = &input.ModePaiement
	f.DatePaiement = &date
	return f, nil
}

func (s *factureService) Cancel(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Facture, error) {
	f, err := s.issued(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	from := []domain.FactureStatus{domain.FactureBrouillon, domain.FactureEnvoyee, domain.FactureEnRetard}
	if err := s.transition(ctx, f, from, domain.FactureAnnulee); err != nil {
		return nil, err
	}
	return f, nil
}

// GeneratePDF renders the invoice and stores it, replacing any previous rendering.
func (s *factureService) GeneratePDF(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Facture, error) {
	f, err := s.issued(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	parties, err := s.parties(ctx, f)
	if err != nil {
		return nil, err
	}

	data, err := s.renderer.Render(f, *parties)
	if err != nil {
		log.Printf("factureService.GeneratePDF: render failed for %s: %v", f.Numero, err)
		return nil, domain.ErrPDFGenerationFailed
	}

	key := f.PDFKey()
	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.bucket,
		Key:         key,
		Body:        bytes.NewReader(data),
		ContentType: "application/pdf",
		Size:        int64(len(data)),
	})
	if err != nil {
		log.Printf("factureService.GeneratePDF: upload failed for %s: %v", f.Numero, err)
		return nil, domain.ErrUploadFailed
	}
	if err := s.repo.SetPDFPath(ctx, f.ID, key); err != nil {
		return nil, err
	}
	f.PDFPath = &key
	return f, nil
}

func (s *factureService) DownloadPDF(ctx context.Context, actor domain.Actor, id uuid.UUID) (*PDFFile, error) {
	f, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if f.PDFPath == nil {
		return nil, domain.ErrPDFNotGenerated
	}
	data, err := s.storage.Download(ctx, s.bucket, *f.PDFPath)
	if err != nil {
		return nil, err
	}
	return &PDFFile{Filename: f.Numero + ".pdf", Data: data}, nil
}

func (s *factureService) parties(ctx context.Context, f *domain.Facture) (*domain.FactureParties, error) {
	ecole, err := s.ecoleRepo.GetByID(ctx, f.EcoleID)
	if err != nil {
		return nil, err
	}
	parties := &domain.FactureParties{
		Client: domain.PartyInfo{
			Name:    ecole.Name,
			Address: joinAddress(ecole.Address, ecole.PostalCode, ecole.City),
			Siret:   ecole.Siret,
			Email:   ecole.ContactEmail,
		},
		Issuer: domain.PartyInfo{
			Name:    s.billing.IssuerName,
			Address: s.billing.IssuerAddress,
			Siret:   s.billing.IssuerSiret,
		},
	}
	if f.Type == domain.FactureTypeIntervenant && f.IntervenantID != nil {
		intervenant, err := s.intervenantRepo.GetByID(ctx, *f.IntervenantID)
		if err != nil {
			return nil, err
		}
		parties.Issuer = domain.PartyInfo{
			Name:    intervenant.FullName(),
			Address: intervenant.City,
			Siret:   intervenant.Siret,
			Email:   intervenant.Email,
		}
	}
	return parties, nil
}

func joinAddress(street, postalCode, city string) string {
	locality := strings.TrimSpace(postalCode + " " + city)
	switch {
	case street == "":
		return locality
	case locality == "":
		return street
	}
	return street + ", " + locality
}

func (s *factureService) ExportCSV(ctx context.Context, filter domain.FactureFilter, w io.Writer) error {
	factures, err := s.repo.ListForExport(ctx, filter)
	if err != nil {
		return err
	}
	if _, err := w.Write(csvexport.BOM); err != nil {
		return fmt.Errorf("writing BOM: %w", err)
	}
	cw := csvexport.NewWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return err
	}
	if err := cw.WriteFactures(factures); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// MarkOverdue moves an envoyee invoice past its due date to en_retard and reminds the école.
func (s *factureService) MarkOverdue(ctx context.Context, f *domain.Facture) error {
	if err := s.transition(ctx, f, []domain.FactureStatus{domain.FactureEnvoyee}, domain.FactureEnRetard); err != nil {
		return err
	}
	s.notifyEcole(ctx, f, s.notifier.FactureOverdue)
	return nil
}

func (s *factureService) notifyEcole(ctx context.Context, f *domain.Facture, send func(context.Context, Recipient, *domain.Facture) error) {
	ecole, err := s.ecoleRepo.GetByID(ctx, f.EcoleID)
	if err != nil {
		log.Printf("WARNING: facture %s ecole lookup failed: %v", f.Numero, err)
		return
	}
	if err := send(ctx, Recipient{Email: ecole.ContactEmail, Name: ecole.Name}, f); err != nil {
		log.Printf("WARNING: failed to email facture %s to ecole %s: %v", f.Numero, ecole.ID, err)
	}
}
