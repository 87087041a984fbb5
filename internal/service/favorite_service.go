package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"edulink/internal/domain"
	"edulink/internal/port"
)

// NoteInput is the DTO for a private école note on an intervenant.
type NoteInput struct {
	Note string `json:"note" binding:"max=5000"`
}

// FavoriteService manages the favorites and notes of an école.
type FavoriteService interface {
	List(ctx context.Context, actor domain.Actor) ([]domain.Favorite, error)
	Toggle(ctx context.Context, actor domain.Actor, intervenantID uuid.UUID) (*domain.FavoriteState, error)
	SetNote(ctx context.Context, actor domain.Actor, intervenantID uuid.UUID, input NoteInput) (*domain.FavoriteState, error)
	State(ctx context.Context, actor domain.Actor, intervenantID uuid.UUID) (*domain.FavoriteState, error)
}

type favoriteService struct {
	repo            port.FavoriteRepository
	intervenantRepo port.IntervenantRepository
}

// NewFavoriteService creates a new FavoriteService implementation.
func NewFavoriteService(repo port.FavoriteRepository, intervenantRepo port.IntervenantRepository) FavoriteService {
	return &favoriteService{repo: repo, intervenantRepo: intervenantRepo}
}

func ecoleOnly(actor domain.Actor) error {
	if actor.Role != domain.RoleEcole {
		return domain.ErrInsufficientRole
	}
	return nil
}

func (s *favoriteService) List(ctx context.Context, actor domain.Actor) ([]domain.Favorite, error) {
	if err := ecoleOnly(actor); err != nil {
		return nil, err
	}
	favs, err := s.repo.List(ctx, actor.ProfileID)
	if err != nil {
		return nil, err
	}
	if favs == nil {
		favs = []domain.Favorite{}
	}
	return favs, nil
}

// target checks the intervenant exists and is visible to écoles.
func (s *favoriteService) target(ctx context.Context, intervenantID uuid.UUID) error {
	intervenant, err := s.intervenantRepo.GetByID(ctx, intervenantID)
	if err != nil {
		return err
	}
	if intervenant.Status != domain.ModerationApproved {
		return domain.ErrNotFound
	}
	return nil
}

func (s *favoriteService) Toggle(ctx context.Context, actor domain.Actor, intervenantID uuid.UUID) (*domain.FavoriteState, error) {
	if err := ecoleOnly(actor); err != nil {
		return nil, err
	}
	if err := s.target(ctx, intervenantID); err != nil {
		return nil, err
	}
	favorited, err := s.repo.Toggle(ctx, actor.ProfileID, intervenantID)
	if err != nil {
		return nil, err
	}
	note, err := s.repo.GetNote(ctx, actor.ProfileID, intervenantID)
	if err != nil {
		return nil, err
	}
	return &domain.FavoriteState{IntervenantID: intervenantID, Favorited: favorited, Note: note}, nil
}

// SetNote stores the note whether or not the intervenant is a favorite.
func (s *favoriteService) SetNote(ctx context.Context, actor domain.Actor, intervenantID uuid.UUID, input NoteInput) (*domain.FavoriteState, error) {
	if err := ecoleOnly(actor); err != nil {
		return nil, err
	}
	if err := s.target(ctx, intervenantID); err != nil {
		return nil, err
	}
	note := strings.TrimSpace(input.Note)
	if err := s.repo.UpsertNote(ctx, actor.ProfileID, intervenantID, note); err != nil {
		return nil, err
	}
	favorited, err := s.repo.Exists(ctx, actor.ProfileID, intervenantID)
	if err != nil {
		return nil, err
	}
	return &domain.FavoriteState{IntervenantID: intervenantID, Favorited: favorited, Note: note}, nil
}

func (s *favoriteService) State(ctx context.Context, actor domain.Actor, intervenantID uuid.UUID) (*domain.FavoriteState, error) {
	if err := ecoleOnly(actor); err != nil {
		return nil, err
	}
	favorited, err := s.repo.Exists(ctx, actor.ProfileID, intervenantID)
	if err != nil {
		return nil, err
	}
	note, err := s.repo.GetNote(ctx, actor.ProfileID, intervenantID)
	if err != nil {
		return nil, err
	}
	return &domain.FavoriteState{IntervenantID: intervenantID, Favorited: favorited, Note: note}, nil
}
