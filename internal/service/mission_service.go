package service

import (
	"context"
	"log"
	"strings"

	"github.com/google/uuid"

	"edulink/internal/domain"
	"edulink/internal/port"
)

// MissionInput is the DTO for creating or editing a mission.
type MissionInput struct {
	Title       string      `json:"title" binding:"required,notblank,max=200"`
	Description string      `json:"description" binding:"max=10000"`
	StartDate   domain.Date `json:"start_date"`
	EndDate     domain.Date `json:"end_date"`
	PriceCents  int64       `json:"price_cents" binding:"min=0"`
}

// AssignInput sets or clears the intervenant of a mission.
type AssignInput struct {
	IntervenantID *uuid.UUID `json:"intervenant_id"`
}

// MissionService defines the mission board contract.
type MissionService interface {
	Create(ctx context.Context, actor domain.Actor, input MissionInput) (*domain.Mission, error)
	Get(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Mission, error)
	List(ctx context.Context, actor domain.Actor, status domain.MissionStatus, offset, limit int) ([]domain.Mission, int, error)
	ListMine(ctx context.Context, actor domain.Actor, status domain.MissionStatus, offset, limit int) ([]domain.Mission, int, error)
	ListAssigned(ctx context.Context, actor domain.Actor, offset, limit int) ([]domain.Mission, int, error)
	Update(ctx context.Context, actor domain.Actor, id uuid.UUID, input MissionInput) (*domain.Mission, error)
	ToggleStatus(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Mission, error)
	Assign(ctx context.Context, actor domain.Actor, id uuid.UUID, intervenantID *uuid.UUID) (*domain.Mission, error)
	Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error
}

type missionService struct {
	repo            port.MissionRepository
	intervenantRepo port.IntervenantRepository
}

// NewMissionService creates a new MissionService implementation.
func NewMissionService(repo port.MissionRepository, intervenantRepo port.IntervenantRepository) MissionService {
	return &missionService{repo: repo, intervenantRepo: intervenantRepo}
}

func applyMissionInput(m *domain.Mission, input MissionInput) error {
	if input.StartDate.IsZero() || input.EndDate.IsZero() || input.EndDate.Before(input.StartDate.Time) {
		return domain.ErrInvalidDateRange
	}
	if input.PriceCents < 0 {
		return domain.ErrInvalidAmount
	}
	m.Title = strings.TrimSpace(input.Title)
	m.Description = strings.TrimSpace(input.Description)
	m.StartDate = input.StartDate
	m.EndDate = input.EndDate
	m.PriceCents = input.PriceCents
	return nil
}

func (s *missionService) Create(ctx context.Context, actor domain.Actor, input MissionInput) (*domain.Mission, error) {
	if actor.Role != domain.RoleEcole {
		return nil, domain.ErrInsufficientRole
	}
	m := &domain.Mission{EcoleID: actor.ProfileID, Status: domain.MissionActive}
	if err := applyMissionInput(m, input); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *missionService) Get(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Mission, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	switch actor.Role {
	case domain.RoleAdmin:
		return m, nil
	case domain.RoleEcole:
		if m.EcoleID == actor.ProfileID {
			return m, nil
		}
	case domain.RoleIntervenant:
		assigned := m.IntervenantID != nil && *m.IntervenantID == actor.ProfileID
		if assigned || m.Status == domain.MissionActive {
			return m, nil
		}
	}
	return nil, domain.ErrNotFound
}

// List is the board: intervenants only see ACTIVE missions, admins any status.
func (s *missionService) List(ctx context.Context, actor domain.Actor, status domain.MissionStatus, offset, limit int) ([]domain.Mission, int, error) {
	filter := domain.MissionFilter{Status: status}
	switch actor.Role {
	case domain.RoleAdmin:
	case domain.RoleIntervenant:
		filter.Status = domain.MissionActive
	default:
		return nil, 0, domain.ErrInsufficientRole
	}
	return s.repo.List(ctx, filter, offset, limit)
}

func (s *missionService) ListMine(ctx context.Context, actor domain.Actor, status domain.MissionStatus, offset, limit int) ([]domain.Mission, int, error) {
	if actor.Role != domain.RoleEcole {
		return nil, 0, domain.ErrInsufficientRole
	}
	id := actor.ProfileID
	return s.repo.List(ctx, domain.MissionFilter{Status: status, EcoleID: &id}, offset, limit)
}

func (s *missionService) ListAssigned(ctx context.Context, actor domain.Actor, offset, limit int) ([]domain.Mission, int, error) {
	if actor.Role != domain.RoleIntervenant {
		return nil, 0, domain.ErrInsufficientRole
	}
	id := actor.ProfileID
	return s.repo.List(ctx, domain.MissionFilter{IntervenantID: &id}, offset, limit)
}

func (s *missionService) owned(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Mission, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleEcole || m.EcoleID != actor.ProfileID {
		return nil, domain.ErrForbidden
	}
	return m, nil
}

func (s *missionService) Update(ctx context.Context, actor domain.Actor, id uuid.UUID, input MissionInput) (*domain.Mission, error) {
	m, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := applyMissionInput(m, input); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *missionService) ToggleStatus(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Mission, error) {
	m, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	next := m.Status.Toggled()
	if err := s.repo.SetStatus(ctx, id, m.Status, next); err != nil {
		return nil, err
	}
	log.Printf("missionService.ToggleStatus: mission %s %s -> %s", id, m.Status, next)
	m.Status = next
	return m, nil
}

// Assign only accepts approved intervenants; a nil id clears the assignment.
func (s *missionService) Assign(ctx context.Context, actor domain.Actor, id uuid.UUID, intervenantID *uuid.UUID) (*domain.Mission, error) {
	m, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if intervenantID != nil {
		intervenant, err := s.intervenantRepo.GetByID(ctx, *intervenantID)
		if err != nil {
			return nil, err
		}
		if intervenant.Status != domain.ModerationApproved {
			return nil, domain.ErrIntervenantNotApproved
		}
	}
	if err := s.repo.AssignIntervenant(ctx, id, intervenantID); err != nil {
		return nil, err
	}
	m.IntervenantID = intervenantID
	return m, nil
}

func (s *missionService) Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	if _, err := s.owned(ctx, actor, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
