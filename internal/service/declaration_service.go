package service

import (
	"context"
	"io"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"edulink/internal/config"
	"edulink/internal/domain"
	"edulink/internal/port"
	"edulink/internal/xlsxexport"
)

// DeclarationAmounts are the editable figures of a declaration, in cents.
type DeclarationAmounts struct {
	ChiffreAffaires int64   `json:"chiffre_affaires" binding:"min=0"`
	NbMissions      int     `json:"nb_missions" binding:"min=0"`
	NbHeures        float64 `json:"nb_heures" binding:"min=0"`
	FraisPro        int64   `json:"frais_pro" binding:"min=0"`
	Notes           string  `json:"notes" binding:"max=5000"`
}

// CreateDeclarationInput is the DTO for a new declaration.
type CreateDeclarationInput struct {
	Periode string `json:"periode" binding:"required,periode"`
	DeclarationAmounts
}

// DeclarationList is one page of declarations with the yearly summary.
type DeclarationList struct {
	Declarations []domain.DeclarationView  `json:"declarations"`
	Summary      *domain.DeclarationSummary `json:"summary"`
}

// DeclarationService defines the declaration ledger contract.
type DeclarationService interface {
	Create(ctx context.Context, actor domain.Actor, input CreateDeclarationInput) (*domain.DeclarationView, error)
	Get(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.DeclarationView, error)
	List(ctx context.Context, actor domain.Actor, filter domain.DeclarationFilter, offset, limit int) (*DeclarationList, int, error)
	Update(ctx context.Context, actor domain.Actor, id uuid.UUID, input DeclarationAmounts) (*domain.DeclarationView, error)
	Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error
	Transmit(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.DeclarationView, error)
	Validate(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.DeclarationView, error)
	Estimate(chiffreAffaires int64) (domain.Estimate, error)
	Export(ctx context.Context, filter domain.DeclarationFilter, w io.Writer) error
}

type declarationService struct {
	repo port.DeclarationRepository
	cfg  config.BillingConfig
}

// NewDeclarationService creates a new DeclarationService implementation.
func NewDeclarationService(repo port.DeclarationRepository, cfg config.BillingConfig) DeclarationService {
	return &declarationService{repo: repo, cfg: cfg}
}

func (s *declarationService) apply(d *domain.Declaration, a DeclarationAmounts) error {
	if a.ChiffreAffaires < 0 || a.FraisPro < 0 || a.NbMissions < 0 || a.NbHeures < 0 {
		return domain.ErrInvalidAmount
	}
	d.ChiffreAffaires = a.ChiffreAffaires
	d.NbMissions = a.NbMissions
	d.NbHeures = a.NbHeures
	d.FraisPro = a.FraisPro
	d.Notes = strings.TrimSpace(a.Notes)
	d.ApplyRates(s.cfg.CotisationRate, s.cfg.FormationRate)
	return nil
}

func (s *declarationService) Create(ctx context.Context, actor domain.Actor, input CreateDeclarationInput) (*domain.DeclarationView, error) {
	if actor.Role != domain.RoleIntervenant {
		return nil, domain.ErrInsufficientRole
	}
	if !domain.ValidPeriode(input.Periode) {
		return nil, domain.ErrInvalidPeriode
	}
	d := &domain.Declaration{IntervenantID: actor.ProfileID, Periode: input.Periode}
	if err := s.apply(d, input.DeclarationAmounts); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	view := d.View()
	return &view, nil
}

func (s *declarationService) load(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Declaration, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.IsAdmin() || (actor.Role == domain.RoleIntervenant && d.IntervenantID == actor.ProfileID) {
		return d, nil
	}
	return nil, domain.ErrNotFound
}

func (s *declarationService) owned(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Declaration, error) {
	d, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleIntervenant {
		return nil, domain.ErrForbidden
	}
	return d, nil
}

func (s *declarationService) Get(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.DeclarationView, error) {
	d, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	view := d.View()
	return &view, nil
}

// List scopes intervenants to their own declarations. The summary covers
// filter.Year, or the current year when unset.
func (s *declarationService) List(ctx context.Context, actor domain.Actor, filter domain.DeclarationFilter, offset, limit int) (*DeclarationList, int, error) {
	switch actor.Role {
	case domain.RoleAdmin:
	case domain.RoleIntervenant:
		id := actor.ProfileID
		filter.IntervenantID = &id
	default:
		return nil, 0, domain.ErrInsufficientRole
	}

	items, total, err := s.repo.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	year := filter.Year
	if year == 0 {
		year = time.Now().Year()
	}
	summary, err := s.repo.Summary(ctx, filter.IntervenantID, year)
	if err != nil {
		return nil, 0, err
	}

	views := make([]domain.DeclarationView, 0, len(items))
	for i := range items {
		views = append(views, items[i].View())
	}
	return &DeclarationList{Declarations: views, Summary: summary}, total, nil
}

func (s *declarationService) Update(ctx context.Context, actor domain.Actor, id uuid.UUID, input DeclarationAmounts) (*domain.DeclarationView, error) {
	d, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !d.CanEdit() {
		return nil, domain.ErrNotEditable
	}
	if err := s.apply(d, input); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	view := d.View()
	return &view, nil
}

func (s *declarationService) Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	d, err := s.owned(ctx, actor, id)
	if err != nil {
		return err
	}
	if !d.CanDelete() {
		return domain.ErrNotEditable
	}
	return s.repo.Delete(ctx, id)
}

func (s *declarationService) Transmit(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.DeclarationView, error) {
	d, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, d, domain.DeclarationTransmise)
}

func (s *declarationService) Validate(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.DeclarationView, error) {
	d, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, d, domain.DeclarationValidee)
}

func (s *declarationService) transition(ctx context.Context, d *domain.Declaration, to domain.DeclarationStatus) (*domain.DeclarationView, error) {
	if !d.CanTransition(to) {
		return nil, domain.ErrInvalidTransition
	}
	from := []domain.DeclarationStatus{domain.DeclarationBrouillon}
	if to == domain.DeclarationValidee {
		from = append(from, domain.DeclarationTransmise)
	}
	if err := s.repo.UpdateStatus(ctx, d.ID, from, to); err != nil {
		return nil, err
	}
	log.Printf("declarationService.transition: declaration %s (%s) %s -> %s", d.ID, d.Periode, d.Status, to)

	d.Status = to
	if to == domain.DeclarationValidee {
		now := time.Now().UTC()
		d.ValidatedAt = &now
	}
	view := d.View()
	return &view, nil
}

func (s *declarationService) Estimate(chiffreAffaires int64) (domain.Estimate, error) {
	if chiffreAffaires < 0 {
		return domain.Estimate{}, domain.ErrInvalidAmount
	}
	return domain.NewEstimate(chiffreAffaires), nil
}

func (s *declarationService) Export(ctx context.Context, filter domain.DeclarationFilter, w io.Writer) error {
	decls, err := s.repo.ListForExport(ctx, filter)
	if err != nil {
		return err
	}
	log.Printf("declarationService.Export: exporting %d declarations (year=%d status=%q)", len(decls), filter.Year, filter.Status)
	return xlsxexport.WriteDeclarations(w, decls)
}
