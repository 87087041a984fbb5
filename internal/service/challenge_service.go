package service

import (
	"context"
	"log"
	"strings"

	"github.com/google/uuid"

	"edulink/internal/domain"
	"edulink/internal/port"
)

// ChallengeInput is the DTO for creating or editing a challenge.
type ChallengeInput struct {
	Title            string            `json:"title" binding:"required,notblank,max=200"`
	ShortDescription string            `json:"short_description" binding:"max=300"`
	Description      string            `json:"description" binding:"required,notblank,max=10000"`
	Thematique       domain.Thematique `json:"thematique" binding:"required,thematique"`
	Duration         string            `json:"duration" binding:"max=100"`
	TargetAudience   string            `json:"target_audience" binding:"max=300"`
	Objectives       []string          `json:"objectives" binding:"max=20,dive,max=500"`
	Deliverables     []string          `json:"deliverables" binding:"max=20,dive,max=500"`
	Prerequisites    string            `json:"prerequisites" binding:"max=2000"`
	ImageURL         string            `json:"image_url" binding:"omitempty,url"`
	VideoURL         string            `json:"video_url" binding:"omitempty,url"`
	PriceCents       *int64            `json:"price_cents" binding:"omitempty,min=0"`
}

// ModerationResult is the moderated challenge together with fresh counters.
type ModerationResult struct {
	Challenge *domain.Challenge       `json:"challenge"`
	Stats     *domain.ModerationStats `json:"stats"`
}

// ChallengeService defines the challenge catalog and moderation contract.
type ChallengeService interface {
	Create(ctx context.Context, actor domain.Actor, input ChallengeInput) (*domain.Challenge, error)
	Get(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Challenge, error)
	ListCatalog(ctx context.Context, filter domain.ChallengeFilter, offset, limit int) ([]domain.Challenge, int, error)
	ListMine(ctx context.Context, actor domain.Actor, offset, limit int) ([]domain.Challenge, int, error)
	ListForModeration(ctx context.Context, filter domain.ChallengeFilter, offset, limit int) ([]domain.Challenge, int, error)
	Update(ctx context.Context, actor domain.Actor, id uuid.UUID, input ChallengeInput) (*domain.Challenge, error)
	Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error
	Approve(ctx context.Context, actor domain.Actor, id uuid.UUID) (*ModerationResult, error)
	Reject(ctx context.Context, actor domain.Actor, id uuid.UUID, reason string) (*ModerationResult, error)
	Stats(ctx context.Context) (*domain.ModerationStats, error)
}

type challengeService struct {
	repo            port.ChallengeRepository
	intervenantRepo port.IntervenantRepository
	notifier        NotificationService
}

// NewChallengeService creates a new ChallengeService implementation.
func NewChallengeService(
	repo port.ChallengeRepository,
	intervenantRepo port.IntervenantRepository,
	notifier NotificationService,
) ChallengeService {
	return &challengeService{repo: repo, intervenantRepo: intervenantRepo, notifier: notifier}
}

func (s *challengeService) Create(ctx context.Context, actor domain.Actor, input ChallengeInput) (*domain.Challenge, error) {
	if actor.Role != domain.RoleIntervenant {
		return nil, domain.ErrInsufficientRole
	}
	c := &domain.Challenge{IntervenantID: actor.ProfileID}
	if err := applyChallengeInput(c, input); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	log.Printf("challengeService.Create: challenge %s submitted by intervenant %s", c.ID, actor.ProfileID)
	return c, nil
}

func applyChallengeInput(c *domain.Challenge, input ChallengeInput) error {
	if !domain.ValidThematique(input.Thematique) {
		return domain.ErrInvalidThematique
	}
	if input.PriceCents != nil && *input.PriceCents < 0 {
		return domain.ErrInvalidAmount
	}
	c.Title = strings.TrimSpace(input.Title)
	c.ShortDescription = strings.TrimSpace(input.ShortDescription)
	c.Description = strings.TrimSpace(input.Description)
	c.Thematique = input.Thematique
	c.Duration = strings.TrimSpace(input.Duration)
	c.TargetAudience = strings.TrimSpace(input.TargetAudience)
	c.Objectives = normalizeList(input.Objectives)
	c.Deliverables = normalizeList(input.Deliverables)
	c.Prerequisites = strings.TrimSpace(input.Prerequisites)
	c.ImageURL = strings.TrimSpace(input.ImageURL)
	c.VideoURL = strings.TrimSpace(input.VideoURL)
	c.PriceCents = input.PriceCents
	return nil
}

// Get returns approved challenges to anyone, others only to their owner and admins.
func (s *challengeService) Get(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Challenge, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.Status != domain.ModerationApproved && !actor.IsAdmin() && !s.owns(actor, c) {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (s *challengeService) owns(actor domain.Actor, c *domain.Challenge) bool {
	return actor.Role == domain.RoleIntervenant && c.IntervenantID == actor.ProfileID
}

func (s *challengeService) ListCatalog(ctx context.Context, filter domain.ChallengeFilter, offset, limit int) ([]domain.Challenge, int, error) {
	if filter.Thematique != "" && !domain.ValidThematique(filter.Thematique) {
		return nil, 0, domain.ErrInvalidThematique
	}
	filter.Status = domain.ModerationApproved
	filter.Query = strings.TrimSpace(filter.Query)
	return s.repo.List(ctx, filter, offset, limit)
}

func (s *challengeService) ListMine(ctx context.Context, actor domain.Actor, offset, limit int) ([]domain.Challenge, int, error) {
	if actor.Role != domain.RoleIntervenant {
		return nil, 0, domain.ErrInsufficientRole
	}
	id := actor.ProfileID
	return s.repo.List(ctx, domain.ChallengeFilter{IntervenantID: &id}, offset, limit)
}

func (s *challengeService) ListForModeration(ctx context.Context, filter domain.ChallengeFilter, offset, limit int) ([]domain.Challenge, int, error) {
	filter.Query = strings.TrimSpace(filter.Query)
	return s.repo.List(ctx, filter, offset, limit)
}

// Update is owner-only and sends the challenge back to moderation.
func (s *challengeService) Update(ctx context.Context, actor domain.Actor, id uuid.UUID, input ChallengeInput) (*domain.Challenge, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.owns(actor, c) {
		return nil, domain.ErrForbidden
	}
	if err := applyChallengeInput(c, input); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	c.Status = domain.ModerationPending
	c.RejectionReason = nil
	return c, nil
}

func (s *challengeService) Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() && !s.owns(actor, c) {
		return domain.ErrForbidden
	}
	log.Printf("challengeService.Delete: challenge %s deleted by %s", id, actor.UserID)
	return s.repo.Delete(ctx, id)
}

func (s *challengeService) Approve(ctx context.Context, actor domain.Actor, id uuid.UUID) (*ModerationResult, error) {
	return s.moderate(ctx, actor, id, domain.ModerationApproved, nil)
}

func (s *challengeService) Reject(ctx context.Context, actor domain.Actor, id uuid.UUID, reason string) (*ModerationResult, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, domain.ErrRejectionReasonRequired
	}
	return s.moderate(ctx, actor, id, domain.ModerationRejected, &reason)
}

func (s *challengeService) moderate(ctx context.Context, actor domain.Actor, id uuid.UUID, to domain.ModerationStatus, reason *string) (*ModerationResult, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrInsufficientRole
	}
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !c.CanModerate(to) {
		return nil, domain.ErrInvalidTransition
	}
	if err := s.repo.Moderate(ctx, id, to, reason); err != nil {
		return nil, err
	}
	c.Status = to
	c.RejectionReason = reason

	stats, err := s.repo.Stats(ctx, nil)
	if err != nil {
		return nil, err
	}

	log.Printf("challengeService.moderate: challenge %s -> %s by %s", id, to, actor.UserID)
	s.notifyOwner(ctx, c)
	return &ModerationResult{Challenge: c, Stats: stats}, nil
}

func (s *challengeService) notifyOwner(ctx context.Context, c *domain.Challenge) {
	owner, err := s.intervenantRepo.GetByID(ctx, c.IntervenantID)
	if err != nil {
		log.Printf("WARNING: challenge %s owner lookup failed: %v", c.ID, err)
		return
	}
	if err := s.notifier.ChallengeModerated(ctx, Recipient{Email: owner.Email, Name: owner.FullName()}, c); err != nil {
		log.Printf("WARNING: failed to notify owner of challenge %s: %v", c.ID, err)
	}
}

func (s *challengeService) Stats(ctx context.Context) (*domain.ModerationStats, error) {
	return s.repo.Stats(ctx, nil)
}
