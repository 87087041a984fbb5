package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"edulink/internal/config"
	"edulink/internal/domain"
	"edulink/internal/port"
)

const bcryptCost = 12

// Claims represents the JWT claims. ProfileID is the école or intervenant
// profile of the user and uuid.Nil for admins.
type Claims struct {
	jwt.RegisteredClaims
	UserID    uuid.UUID       `json:"user_id"`
	Email     string          `json:"email"`
	Role      domain.UserRole `json:"role"`
	ProfileID uuid.UUID       `json:"profile_id"`
}

// Actor converts the claims into the caller identity used by services.
func (c *Claims) Actor() domain.Actor {
	return domain.Actor{UserID: c.UserID, Role: c.Role, ProfileID: c.ProfileID}
}

// TokenPair holds access and refresh tokens.
type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// LoginInput is the DTO for login requests.
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// RefreshInput is the DTO for token refresh requests.
type RefreshInput struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordInput is the DTO for changing the caller's password.
type ChangePasswordInput struct {
	CurrentPassword         string `json:"current_password" binding:"required"`
	NewPassword             string `json:"new_password" binding:"required,min=8"`
	NewPasswordConfirmation string `json:"new_password_confirmation" binding:"required,eqfield=NewPassword"`
}

// MeOutput is the authenticated user with its profile.
type MeOutput struct {
	User        *domain.User        `json:"user"`
	ProfileID   *uuid.UUID          `json:"profile_id"`
	Ecole       *domain.Ecole       `json:"ecole,omitempty"`
	Intervenant *domain.Intervenant `json:"intervenant,omitempty"`
}

// AuthService defines the authentication contract.
type AuthService interface {
	Login(ctx context.Context, input LoginInput) (*TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)
	ValidateToken(tokenString string) (*Claims, error)
	GenerateTokenPair(ctx context.Context, user *domain.User) (*TokenPair, error)
	Me(ctx context.Context, actor domain.Actor) (*MeOutput, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, input ChangePasswordInput) error
}

type authService struct {
	userRepo        port.UserRepository
	ecoleRepo       port.EcoleRepository
	intervenantRepo port.IntervenantRepository
	cfg             config.JWTConfig
}

// NewAuthService creates a new AuthService implementation.
func NewAuthService(
	userRepo port.UserRepository,
	ecoleRepo port.EcoleRepository,
	intervenantRepo port.IntervenantRepository,
	cfg config.JWTConfig,
) AuthService {
	return &authService{
		userRepo:        userRepo,
		ecoleRepo:       ecoleRepo,
		intervenantRepo: intervenantRepo,
		cfg:             cfg,
	}
}

func (s *authService) Login(ctx context.Context, input LoginInput) (*TokenPair, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(input.Email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("auth.Login: %w", err)
	}
	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return s.GenerateTokenPair(ctx, user)
}

func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.validateTokenString(refreshToken, "refresh")
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}

	return s.GenerateTokenPair(ctx, user)
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	return s.validateTokenString(tokenString, "access")
}

func (s *authService) Me(ctx context.Context, actor domain.Actor) (*MeOutput, error) {
	user, err := s.userRepo.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	out := &MeOutput{User: user}

	switch user.Role {
	case domain.RoleEcole:
		ecole, err := s.ecoleRepo.GetByUserID(ctx, user.ID)
		if err != nil {
			return nil, profileErr(err)
		}
		out.Ecole = ecole
		out.ProfileID = &ecole.ID
	case domain.RoleIntervenant:
		intervenant, err := s.intervenantRepo.GetByUserID(ctx, user.ID)
		if err != nil {
			return nil, profileErr(err)
		}
		out.Intervenant = intervenant
		out.ProfileID = &intervenant.ID
	}
	return out, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID uuid.UUID, input ChangePasswordInput) error {
	if input.NewPassword != input.NewPasswordConfirmation {
		return domain.ErrPasswordMismatch
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.CurrentPassword)); err != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	return s.userRepo.UpdatePassword(ctx, userID, string(hash))
}

// GenerateTokenPair issues access and refresh tokens, resolving the user's profile.
func (s *authService) GenerateTokenPair(ctx context.Context, user *domain.User) (*TokenPair, error) {
	profileID, err := s.profileID(ctx, user)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	accessExpiry := now.Add(s.cfg.AccessTokenExpiry)

	accessToken, err := s.sign(user, profileID, "access", now, accessExpiry)
	if err != nil {
		return nil, fmt.Errorf("signing access token: %w", err)
	}
	refreshToken, err := s.sign(user, profileID, "refresh", now, now.Add(s.cfg.RefreshTokenExpiry))
	if err != nil {
		return nil, fmt.Errorf("signing refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    accessExpiry,
	}, nil
}

func (s *authService) profileID(ctx context.Context, user *domain.User) (uuid.UUID, error) {
	switch user.Role {
	case domain.RoleEcole:
		ecole, err := s.ecoleRepo.GetByUserID(ctx, user.ID)
		if err != nil {
			return uuid.Nil, profileErr(err)
		}
		return ecole.ID, nil
	case domain.RoleIntervenant:
		intervenant, err := s.intervenantRepo.GetByUserID(ctx, user.ID)
		if err != nil {
			return uuid.Nil, profileErr(err)
		}
		return intervenant.ID, nil
	}
	return uuid.Nil, nil
}

func profileErr(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrProfileNotFound
	}
	return err
}

func (s *authService) sign(user *domain.User, profileID uuid.UUID, audience string, now, expiry time.Time) (string, error) {
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiry),
			ID:        uuid.New().String(),
			Audience:  jwt.ClaimStrings{audience},
		},
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		ProfileID: profileID,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
}

func (s *authService) validateTokenString(tokenString, audience string) (*Claims, error) {
	claims, err := parseClaims(tokenString, s.cfg.Secret)
	if err != nil {
		return nil, err
	}
	if !hasAudience(claims, audience) {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}

func parseClaims(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}
	if !token.Valid {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}

func hasAudience(claims *Claims, audience string) bool {
	aud, _ := claims.GetAudience()
	for _, a := range aud {
		if a == audience {
			return true
		}
	}
	return false
}
