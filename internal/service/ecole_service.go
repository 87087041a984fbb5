package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"edulink/internal/domain"
	"edulink/internal/port"
)

// UpdateEcoleInput is the DTO for editing an école profile. Nil fields are left unchanged.
type UpdateEcoleInput struct {
	Name         *string `json:"name" binding:"omitempty,notblank,max=200"`
	Siret        *string `json:"siret" binding:"omitempty,len=14,numeric"`
	Address      *string `json:"address" binding:"omitempty,max=300"`
	PostalCode   *string `json:"postal_code" binding:"omitempty,len=5,numeric"`
	City         *string `json:"city" binding:"omitempty,max=100"`
	Phone        *string `json:"phone" binding:"omitempty,max=30"`
	Website      *string `json:"website" binding:"omitempty,url"`
	ContactEmail *string `json:"contact_email" binding:"omitempty,email"`
	Description  *string `json:"description" binding:"omitempty,max=5000"`
}

// EcoleService defines the école profile contract.
type EcoleService interface {
	GetMine(ctx context.Context, actor domain.Actor) (*domain.Ecole, error)
	UpdateMine(ctx context.Context, actor domain.Actor, input UpdateEcoleInput) (*domain.Ecole, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Ecole, error)
	List(ctx context.Context, offset, limit int) ([]domain.Ecole, int, error)
}

type ecoleService struct {
	repo port.EcoleRepository
}

// NewEcoleService creates a new EcoleService implementation.
func NewEcoleService(repo port.EcoleRepository) EcoleService {
	return &ecoleService{repo: repo}
}

func (s *ecoleService) GetMine(ctx context.Context, actor domain.Actor) (*domain.Ecole, error) {
	if actor.Role != domain.RoleEcole {
		return nil, domain.ErrInsufficientRole
	}
	return s.repo.GetByID(ctx, actor.ProfileID)
}

func (s *ecoleService) UpdateMine(ctx context.Context, actor domain.Actor, input UpdateEcoleInput) (*domain.Ecole, error) {
	ecole, err := s.GetMine(ctx, actor)
	if err != nil {
		return nil, err
	}

	setTrimmed(&ecole.Name, input.Name)
	setTrimmed(&ecole.Siret, input.Siret)
	setTrimmed(&ecole.Address, input.Address)
	setTrimmed(&ecole.PostalCode, input.PostalCode)
	setTrimmed(&ecole.City, input.City)
	setTrimmed(&ecole.Phone, input.Phone)
	setTrimmed(&ecole.Website, input.Website)
	setTrimmed(&ecole.ContactEmail, input.ContactEmail)
	setTrimmed(&ecole.Description, input.Description)

	if err := s.repo.Update(ctx, ecole); err != nil {
		return nil, err
	}
	return ecole, nil
}

func (s *ecoleService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Ecole, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ecoleService) List(ctx context.Context, offset, limit int) ([]domain.Ecole, int, error) {
	return s.repo.List(ctx, offset, limit)
}

func setTrimmed(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}
