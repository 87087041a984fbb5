package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"edulink/internal/domain"
	"edulink/internal/port"
)

// CreateAdminInput is the DTO for bootstrapping an administrator.
type CreateAdminInput struct {
	Email    string
	FullName string
	Password string
}

// UpdateUserInput is the DTO for admin edits of an account.
type UpdateUserInput struct {
	FullName *string `json:"full_name" binding:"omitempty,notblank"`
	IsActive *bool   `json:"is_active"`
}

// UserService defines the account administration contract.
type UserService interface {
	CreateAdmin(ctx context.Context, input CreateAdminInput) (*domain.User, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	List(ctx context.Context, role domain.UserRole, offset, limit int) ([]domain.User, int, error)
	Update(ctx context.Context, actor domain.Actor, userID uuid.UUID, input UpdateUserInput) (*domain.User, error)
}

type userService struct {
	repo port.UserRepository
}

// NewUserService creates a new UserService implementation.
func NewUserService(repo port.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) CreateAdmin(ctx context.Context, input CreateAdminInput) (*domain.User, error) {
	if len(input.Password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &domain.User{
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(input.FullName),
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.repo.GetByID(ctx, userID)
}

func (s *userService) List(ctx context.Context, role domain.UserRole, offset, limit int) ([]domain.User, int, error) {
	if role != "" && !domain.ValidUserRoles[role] {
		return nil, 0, domain.ErrInsufficientRole
	}
	return s.repo.List(ctx, role, offset, limit)
}

func (s *userService) Update(ctx context.Context, actor domain.Actor, userID uuid.UUID, input UpdateUserInput) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		user.FullName = strings.TrimSpace(*input.FullName)
	}
	if input.IsActive != nil {
		// An admin cannot lock themselves out.
		if !*input.IsActive && userID == actor.UserID {
			return nil, domain.ErrForbidden
		}
		user.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
