package service

import (
	"context"
	"log"
	"strings"

	"github.com/google/uuid"

	"edulink/internal/domain"
	"edulink/internal/port"
)

// UpdateIntervenantInput is the DTO for the owner's profile edits. The owner
// never writes status or rejection reason.
type UpdateIntervenantInput struct {
	FirstName         *string                   `json:"first_name" binding:"omitempty,notblank,max=100"`
	LastName          *string                   `json:"last_name" binding:"omitempty,notblank,max=100"`
	Phone             *string                   `json:"phone" binding:"omitempty,max=30"`
	City              *string                   `json:"city" binding:"omitempty,max=100"`
	Bio               *string                   `json:"bio" binding:"omitempty,max=5000"`
	Siret             *string                   `json:"siret" binding:"omitempty,len=14,numeric"`
	YearsExperience   *int                      `json:"years_experience" binding:"omitempty,min=0,max=70"`
	DailyRateCents    *int64                    `json:"daily_rate_cents" binding:"omitempty,min=0"`
	LinkedinURL       *string                   `json:"linkedin_url" binding:"omitempty,url"`
	WebsiteURL        *string                   `json:"website_url" binding:"omitempty,url"`
	Expertises        *[]string                 `json:"expertises" binding:"omitempty,max=20,dive,notblank"`
	Languages         *[]domain.LanguageSkill   `json:"languages" binding:"omitempty,max=10,dive"`
	AvailabilityModes *[]domain.AvailabilityMode `json:"availability_modes" binding:"omitempty,max=3"`
}

// RejectInput carries the mandatory reason of a rejection.
type RejectInput struct {
	Reason string `json:"reason" binding:"required,notblank,max=2000"`
}

// IntervenantService defines the directory and vetting contract.
type IntervenantService interface {
	List(ctx context.Context, actor domain.Actor, filter domain.IntervenantFilter, offset, limit int) ([]domain.Intervenant, int, error)
	Get(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Intervenant, error)
	GetMine(ctx context.Context, actor domain.Actor) (*domain.Intervenant, error)
	UpdateMine(ctx context.Context, actor domain.Actor, input UpdateIntervenantInput) (*domain.Intervenant, error)
	Approve(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Intervenant, error)
	Reject(ctx context.Context, actor domain.Actor, id uuid.UUID, reason string) (*domain.Intervenant, error)
	Stats(ctx context.Context) (*domain.ModerationStats, error)
}

type intervenantService struct {
	repo     port.IntervenantRepository
	docRepo  port.DocumentRepository
	notifier NotificationService
}

// NewIntervenantService creates a new IntervenantService implementation.
func NewIntervenantService(
	repo port.IntervenantRepository,
	docRepo port.DocumentRepository,
	notifier NotificationService,
) IntervenantService {
	return &intervenantService{repo: repo, docRepo: docRepo, notifier: notifier}
}

// List restricts non-admin callers to approved profiles.
func (s *intervenantService) List(ctx context.Context, actor domain.Actor, filter domain.IntervenantFilter, offset, limit int) ([]domain.Intervenant, int, error) {
	if !actor.IsAdmin() {
		filter.Status = domain.ModerationApproved
	}
	filter.Query = strings.TrimSpace(filter.Query)
	return s.repo.List(ctx, filter, offset, limit)
}

func (s *intervenantService) Get(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Intervenant, error) {
	intervenant, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch actor.Role {
	case domain.RoleAdmin:
	case domain.RoleIntervenant:
		if intervenant.ID != actor.ProfileID && intervenant.Status != domain.ModerationApproved {
			return nil, domain.ErrNotFound
		}
	default:
		if intervenant.Status != domain.ModerationApproved {
			return nil, domain.ErrNotFound
		}
	}

	docs, err := s.docRepo.ListByIntervenant(ctx, id)
	if err != nil {
		return nil, err
	}
	intervenant.Documents = visibleDocuments(actor, intervenant.ID, docs)
	return intervenant, nil
}

// visibleDocuments hides sensitive documents from anyone but the owner and admins.
func visibleDocuments(actor domain.Actor, ownerID uuid.UUID, docs []domain.Document) []domain.Document {
	if actor.IsAdmin() || (actor.Role == domain.RoleIntervenant && actor.ProfileID == ownerID) {
		return docs
	}
	out := make([]domain.Document, 0, len(docs))
	for i := range docs {
		if !docs[i].Sensitive() {
			out = append(out, docs[i])
		}
	}
	return out
}

func (s *intervenantService) GetMine(ctx context.Context, actor domain.Actor) (*domain.Intervenant, error) {
	if actor.Role != domain.RoleIntervenant {
		return nil, domain.ErrInsufficientRole
	}
	return s.repo.GetByID(ctx, actor.ProfileID)
}

func (s *intervenantService) UpdateMine(ctx context.Context, actor domain.Actor, input UpdateIntervenantInput) (*domain.Intervenant, error) {
	intervenant, err := s.GetMine(ctx, actor)
	if err != nil {
		return nil, err
	}

	setTrimmed(&intervenant.FirstName, input.FirstName)
	setTrimmed(&intervenant.LastName, input.LastName)
	setTrimmed(&intervenant.Phone, input.Phone)
	setTrimmed(&intervenant.City, input.City)
	setTrimmed(&intervenant.Bio, input.Bio)
	setTrimmed(&intervenant.Siret, input.Siret)
	setTrimmed(&intervenant.LinkedinURL, input.LinkedinURL)
	setTrimmed(&intervenant.WebsiteURL, input.WebsiteURL)
	if input.YearsExperience != nil {
		intervenant.YearsExperience = *input.YearsExperience
	}
	if input.DailyRateCents != nil {
		if *input.DailyRateCents < 0 {
			return nil, domain.ErrInvalidAmount
		}
		intervenant.DailyRateCents = input.DailyRateCents
	}
	if input.Expertises != nil {
		intervenant.Expertises = normalizeList(*input.Expertises)
	}
	if input.Languages != nil {
		for _, l := range *input.Languages {
			if !domain.ValidLanguageLevels[l.Level] || strings.TrimSpace(l.Language) == "" {
				return nil, domain.ErrInvalidLanguageLevel
			}
		}
		intervenant.Languages = domain.LanguageSkills(*input.Languages)
	}
	if input.AvailabilityModes != nil {
		modes := make(domain.AvailabilityModes, 0, len(*input.AvailabilityModes))
		seen := map[domain.AvailabilityMode]bool{}
		for _, m := range *input.AvailabilityModes {
			if !domain.ValidAvailabilityModes[m] {
				return nil, domain.ErrInvalidAvailabilityMode
			}
			if !seen[m] {
				seen[m] = true
				modes = append(modes, m)
			}
		}
		intervenant.AvailabilityModes = modes
	}

	if err := s.repo.Update(ctx, intervenant); err != nil {
		return nil, err
	}
	return intervenant, nil
}

func (s *intervenantService) Approve(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Intervenant, error) {
	return s.moderate(ctx, actor, id, domain.ModerationApproved, nil)
}

func (s *intervenantService) Reject(ctx context.Context, actor domain.Actor, id uuid.UUID, reason string) (*domain.Intervenant, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, domain.ErrRejectionReasonRequired
	}
	return s.moderate(ctx, actor, id, domain.ModerationRejected, &reason)
}

func (s *intervenantService) moderate(ctx context.Context, actor domain.Actor, id uuid.UUID, to domain.ModerationStatus, reason *string) (*domain.Intervenant, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrInsufficientRole
	}
	intervenant, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanModerateIntervenant(intervenant.Status, to) {
		return nil, domain.ErrInvalidTransition
	}
	if err := s.repo.Moderate(ctx, id, intervenant.Status, to, reason); err != nil {
		return nil, err
	}

	log.Printf("intervenantService.moderate: intervenant %s %s -> %s by %s", id, intervenant.Status, to, actor.UserID)
	intervenant.Status = to
	intervenant.RejectionReason = reason

	recipient := Recipient{Email: intervenant.Email, Name: intervenant.FullName()}
	if err := s.notifier.IntervenantModerated(ctx, recipient, to, reason); err != nil {
		log.Printf("WARNING: failed to notify intervenant %s of moderation: %v", id, err)
	}
	return intervenant, nil
}

func (s *intervenantService) Stats(ctx context.Context) (*domain.ModerationStats, error) {
	return s.repo.CountByStatus(ctx)
}

// normalizeList trims entries and drops blanks and duplicates, keeping order.
func normalizeList(in []string) domain.StringList {
	out := make(domain.StringList, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		key := strings.ToLower(v)
		if v == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
	}
	return out
}
