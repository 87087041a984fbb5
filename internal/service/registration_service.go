package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"edulink/internal/domain"
	"edulink/internal/port"
)

// RegisterInput is the DTO for self-registration. EcoleName is required for
// ECOLE accounts, FirstName and LastName for INTERVENANT accounts.
type RegisterInput struct {
	Email                string          `json:"email" binding:"required,email"`
	Password             string          `json:"password" binding:"required,min=8"`
	PasswordConfirmation string          `json:"password_confirmation" binding:"required,eqfield=Password"`
	FullName             string          `json:"full_name" binding:"required,notblank"`
	Role                 domain.UserRole `json:"role" binding:"required,oneof=ECOLE INTERVENANT"`
	EcoleName            string          `json:"ecole_name" binding:"required_if=Role ECOLE"`
	FirstName            string          `json:"first_name" binding:"required_if=Role INTERVENANT"`
	LastName             string          `json:"last_name" binding:"required_if=Role INTERVENANT"`
}

// RegisterOutput contains the results of a successful registration.
type RegisterOutput struct {
	User        *domain.User        `json:"user"`
	Ecole       *domain.Ecole       `json:"ecole,omitempty"`
	Intervenant *domain.Intervenant `json:"intervenant,omitempty"`
	Tokens      *TokenPair          `json:"tokens"`
}

// RegistrationService defines the self-registration contract.
type RegistrationService interface {
	Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error)
}

type registrationService struct {
	userRepo port.UserRepository
	authSvc  AuthService
}

// NewRegistrationService creates a new RegistrationService.
func NewRegistrationService(userRepo port.UserRepository, authSvc AuthService) RegistrationService {
	return &registrationService{userRepo: userRepo, authSvc: authSvc}
}

func (s *registrationService) Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error) {
	if !domain.SelfRegistrableRoles[input.Role] {
		return nil, domain.ErrInsufficientRole
	}
	if input.Password != input.PasswordConfirmation {
		return nil, domain.ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(input.FullName),
		Role:         input.Role,
		IsActive:     true,
	}
	out := &RegisterOutput{User: user}

	switch input.Role {
	case domain.RoleEcole:
		ecole := &domain.Ecole{
			Name:         strings.TrimSpace(input.EcoleName),
			ContactEmail: email,
		}
		if err := s.userRepo.CreateEcoleAccount(ctx, user, ecole); err != nil {
			return nil, err
		}
		out.Ecole = ecole
	case domain.RoleIntervenant:
		intervenant := &domain.Intervenant{
			FirstName:         strings.TrimSpace(input.FirstName),
			LastName:          strings.TrimSpace(input.LastName),
			Email:             email,
			Expertises:        domain.StringList{},
			Languages:         domain.LanguageSkills{},
			AvailabilityModes: domain.AvailabilityModes{},
			Status:            domain.ModerationPending,
		}
		if err := s.userRepo.CreateIntervenantAccount(ctx, user, intervenant); err != nil {
			return nil, err
		}
		out.Intervenant = intervenant
	}

	log.Printf("registrationService.Register: created %s account %s", user.Role, user.ID)

	tokens, err := s.authSvc.GenerateTokenPair(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("generating tokens: %w", err)
	}
	out.Tokens = tokens
	return out, nil
}
