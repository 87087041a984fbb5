package service

import (
	"context"
	"log"
	"strings"

	"github.com/google/uuid"

	"edulink/internal/domain"
	"edulink/internal/port"
)

// CreateCollaborationInput is the DTO for proposing a collaboration. An école
// names the intervenant, an intervenant names the école.
type CreateCollaborationInput struct {
	IntervenantID *uuid.UUID `json:"intervenant_id"`
	EcoleID       *uuid.UUID `json:"ecole_id"`
	CollaborationTerms
}

// CollaborationTerms are the fields both parties validate.
type CollaborationTerms struct {
	Titre       string      `json:"titre" binding:"required,notblank,max=200"`
	Description string      `json:"description" binding:"max=10000"`
	DateDebut   domain.Date `json:"date_debut"`
	DateFin     domain.Date `json:"date_fin"`
	MontantHT   int64       `json:"montant_ht" binding:"min=0"`
	Notes       string      `json:"notes" binding:"max=5000"`
}

// StatusInput requests a lifecycle transition.
type StatusInput struct {
	Status string `json:"status" binding:"required"`
}

// CollaborationList is one page of collaborations with per-status counters.
type CollaborationList struct {
	Collaborations []domain.CollaborationView `json:"collaborations"`
	Stats          domain.StatusCounts        `json:"stats"`
}

// CollaborationService defines the collaboration ledger contract.
type CollaborationService interface {
	Create(ctx context.Context, actor domain.Actor, input CreateCollaborationInput) (*domain.CollaborationView, error)
	Get(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.CollaborationView, error)
	List(ctx context.Context, actor domain.Actor, status domain.CollaborationStatus, offset, limit int) (*CollaborationList, int, error)
	Update(ctx context.Context, actor domain.Actor, id uuid.UUID, input CollaborationTerms) (*domain.CollaborationView, error)
	Validate(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.CollaborationView, error)
	ChangeStatus(ctx context.Context, actor domain.Actor, id uuid.UUID, to domain.CollaborationStatus) (*domain.CollaborationView, error)
	Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error
}

type collaborationService struct {
	repo            port.CollaborationRepository
	ecoleRepo       port.EcoleRepository
	intervenantRepo port.IntervenantRepository
	notifier        NotificationService
}

// NewCollaborationService creates a new CollaborationService implementation.
func NewCollaborationService(
	repo port.CollaborationRepository,
	ecoleRepo port.EcoleRepository,
	intervenantRepo port.IntervenantRepository,
	notifier NotificationService,
) CollaborationService {
	return &collaborationService{
		repo:            repo,
		ecoleRepo:       ecoleRepo,
		intervenantRepo: intervenantRepo,
		notifier:        notifier,
	}
}

func applyTerms(c *domain.Collaboration, t CollaborationTerms) error {
	if t.DateDebut.IsZero() || t.DateFin.IsZero() {
		return domain.ErrDatesRequired
	}
	if t.DateFin.Before(t.DateDebut.Time) {
		return domain.ErrInvalidDateRange
	}
	if t.MontantHT < 0 {
		return domain.ErrInvalidAmount
	}
	c.Titre = strings.TrimSpace(t.Titre)
	c.Description = strings.TrimSpace(t.Description)
	c.DateDebut = t.DateDebut
	c.DateFin = t.DateFin
	c.MontantHT = t.MontantHT
	c.Notes = strings.TrimSpace(t.Notes)
	return nil
}

func (s *collaborationService) Create(ctx context.Context, actor domain.Actor, input CreateCollaborationInput) (*domain.CollaborationView, error) {
	party, ok := domain.PartyForRole(actor.Role)
	if !ok {
		return nil, domain.ErrInsufficientRole
	}

	c := &domain.Collaboration{CreatedBy: party}
	if err := applyTerms(c, input.CollaborationTerms); err != nil {
		return nil, err
	}
	var ecole *domain.Ecole
	var intervenant *domain.Intervenant
	var err error

	switch party {
	case domain.PartyEcole:
		if input.IntervenantID == nil {
			return nil, domain.ErrNotFound
		}
		if intervenant, err = s.intervenantRepo.GetByID(ctx, *input.IntervenantID); err != nil {
			return nil, err
		}
		if intervenant.Status != domain.ModerationApproved {
			return nil, domain.ErrIntervenantNotApproved
		}
		if ecole, err = s.ecoleRepo.GetByID(ctx, actor.ProfileID); err != nil {
			return nil, err
		}
	case domain.PartyIntervenant:
		if input.EcoleID == nil {
			return nil, domain.ErrNotFound
		}
		if ecole, err = s.ecoleRepo.GetByID(ctx, *input.EcoleID); err != nil {
			return nil, err
		}
		if intervenant, err = s.intervenantRepo.GetByID(ctx, actor.ProfileID); err != nil {
			return nil, err
		}
	}
	c.EcoleID = ecole.ID
	c.IntervenantID = intervenant.ID

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	log.Printf("collaborationService.Create: collaboration %s between ecole %s and intervenant %s (by %s)",
		c.ID, c.EcoleID, c.IntervenantID, party)

	var recipient Recipient
	var from string
	if party == domain.PartyEcole {
		recipient = Recipient{Email: intervenant.Email, Name: intervenant.FullName()}
		from = ecole.Name
	} else {
		recipient = Recipient{Email: ecole.ContactEmail, Name: ecole.Name}
		from = intervenant.FullName()
	}
	if err := s.notifier.CollaborationProposed(ctx, recipient, c, from); err != nil {
		log.Printf("WARNING: failed to notify collaboration %s: %v", c.ID, err)
	}

	view := c.ViewFor(party)
	return &view, nil
}

// load returns the collaboration and the caller's side. Admins read with an empty party.
func (s *collaborationService) load(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Collaboration, domain.CollaborationParty, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	switch {
	case actor.IsAdmin():
		return c, "", nil
	case actor.Role == domain.RoleEcole && c.EcoleID == actor.ProfileID:
		return c, domain.PartyEcole, nil
	case actor.Role == domain.RoleIntervenant && c.IntervenantID == actor.ProfileID:
		return c, domain.PartyIntervenant, nil
	}
	return nil, "", domain.ErrNotFound
}

// loadAsParty is load restricted to the two parties.
func (s *collaborationService) loadAsParty(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Collaboration, domain.CollaborationParty, error) {
	c, party, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, "", err
	}
	if party == "" {
		return nil, "", domain.ErrForbidden
	}
	return c, party, nil
}

func (s *collaborationService) Get(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.CollaborationView, error) {
	c, party, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	view := c.ViewFor(party)
	return &view, nil
}

func (s *collaborationService) List(ctx context.Context, actor domain.Actor, status domain.CollaborationStatus, offset, limit int) (*CollaborationList, int, error) {
	var filter domain.CollaborationFilter
	party, _ := domain.PartyForRole(actor.Role)
	switch actor.Role {
	case domain.RoleAdmin:
	case domain.RoleEcole:
		id := actor.ProfileID
		filter.EcoleID = &id
	case domain.RoleIntervenant:
		id := actor.ProfileID
		filter.IntervenantID = &id
	default:
		return nil, 0, domain.ErrInsufficientRole
	}

	stats, err := s.repo.CountByStatus(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	filter.Status = status
	items, total, err := s.repo.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	views := make([]domain.CollaborationView, 0, len(items))
	for i := range items {
		views = append(views, items[i].ViewFor(party))
	}
	return &CollaborationList{Collaborations: views, Stats: stats}, total, nil
}

// Update rewrites the terms of a draft; both validations are cleared.
func (s *collaborationService) Update(ctx context.Context, actor domain.Actor, id uuid.UUID, input CollaborationTerms) (*domain.CollaborationView, error) {
	c, party, err := s.loadAsParty(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !c.CanEdit() {
		return nil, domain.ErrNotEditable
	}
	if err := applyTerms(c, input); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	c.ValidatedByEcole = false
	c.ValidatedByIntervenant = false
	view := c.ViewFor(party)
	return &view, nil
}

func (s *collaborationService) Validate(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.CollaborationView, error) {
	c, party, err := s.loadAsParty(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(party); err != nil {
		return nil, err
	}
	if err := s.repo.SetValidated(ctx, id, party); err != nil {
		return nil, err
	}
	log.Printf("collaborationService.Validate: collaboration %s validated by %s", id, party)
	view := c.ViewFor(party)
	return &view, nil
}

func (s *collaborationService) ChangeStatus(ctx context.Context, actor domain.Actor, id uuid.UUID, to domain.CollaborationStatus) (*domain.CollaborationView, error) {
	if !to.Valid() {
		return nil, domain.ErrInvalidTransition
	}
	c, party, err := s.loadAsParty(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := c.CheckTransition(to); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, id, c.Status, to); err != nil {
		return nil, err
	}
	log.Printf("collaborationService.ChangeStatus: collaboration %s %s -> %s by %s", id, c.Status, to, party)
	c.Status = to
	view := c.ViewFor(party)
	return &view, nil
}

// Delete is limited to drafts and to the side that created them.
func (s *collaborationService) Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	c, party, err := s.loadAsParty(ctx, actor, id)
	if err != nil {
		return err
	}
	if !c.CanEdit() {
		return domain.ErrNotEditable
	}
	if c.CreatedBy != party {
		return domain.ErrNotCreator
	}
	return s.repo.Delete(ctx, id, party)
}
