package port

import (
	"context"

	"github.com/google/uuid"

	"edulink/internal/domain"
)

// ChallengeRepository defines the contract for challenge persistence.
type ChallengeRepository interface {
	Create(ctx context.Context, challenge *domain.Challenge) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Challenge, error)
	List(ctx context.Context, filter domain.ChallengeFilter, offset, limit int) ([]domain.Challenge, int, error)
	// Update writes the content fields and puts the challenge back in moderation.
	Update(ctx context.Context, challenge *domain.Challenge) error
	Delete(ctx context.Context, id uuid.UUID) error
	// Moderate moves a pending challenge to approved or rejected.
	// Returns ErrInvalidTransition when the challenge is no longer pending.
	Moderate(ctx context.Context, id uuid.UUID, to domain.ModerationStatus, reason *string) error
	Stats(ctx context.Context, intervenantID *uuid.UUID) (*domain.ModerationStats, error)
}

// MissionRepository defines the contract for mission persistence.
type MissionRepository interface {
	Create(ctx context.Context, mission *domain.Mission) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Mission, error)
	List(ctx context.Context, filter domain.MissionFilter, offset, limit int) ([]domain.Mission, int, error)
	Update(ctx context.Context, mission *domain.Mission) error
	SetStatus(ctx context.Context, id uuid.UUID, from, to domain.MissionStatus) error
	AssignIntervenant(ctx context.Context, id uuid.UUID, intervenantID *uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByStatus(ctx context.Context, filter domain.MissionFilter) (domain.StatusCounts, error)
}

// CollaborationRepository defines the contract for collaboration persistence.
// Mutations are conditional on the current state so that concurrent requests
// cannot both succeed.
type CollaborationRepository interface {
	Create(ctx context.Context, collab *domain.Collaboration) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Collaboration, error)
	List(ctx context.Context, filter domain.CollaborationFilter, offset, limit int) ([]domain.Collaboration, int, error)
	CountByStatus(ctx context.Context, filter domain.CollaborationFilter) (domain.StatusCounts, error)
	// Update rewrites the terms of a brouillon and clears both validation flags.
	Update(ctx context.Context, collab *domain.Collaboration) error
	// SetValidated raises the flag of party. Returns ErrAlreadyValidated or ErrNotEditable
	// when the row no longer matches.
	SetValidated(ctx context.Context, id uuid.UUID, party domain.CollaborationParty) error
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.CollaborationStatus) error
	// Delete removes a brouillon created by party.
	Delete(ctx context.Context, id uuid.UUID, party domain.CollaborationParty) error
}

// FavoriteRepository defines the contract for école favorites and notes.
type FavoriteRepository interface {
	// Toggle removes the favorite if present, otherwise adds it, and reports the new state.
	Toggle(ctx context.Context, ecoleID, intervenantID uuid.UUID) (bool, error)
	Exists(ctx context.Context, ecoleID, intervenantID uuid.UUID) (bool, error)
	List(ctx context.Context, ecoleID uuid.UUID) ([]domain.Favorite, error)
	Count(ctx context.Context, ecoleID uuid.UUID) (int, error)
	GetNote(ctx context.Context, ecoleID, intervenantID uuid.UUID) (string, error)
	UpsertNote(ctx context.Context, ecoleID, intervenantID uuid.UUID, note string) error
}
