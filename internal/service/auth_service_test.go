package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"edulink/internal/config"
	"edulink/internal/domain"
	"edulink/internal/service"
	"edulink/mocks"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:             "test-secret-key-for-unit-tests",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 168 * time.Hour,
		Issuer:             "edulink-test",
	}
}

func hashPassword(password string) string {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return string(hash)
}

type authDeps struct {
	users        *mocks.MockUserRepo
	ecoles       *mocks.MockEcoleRepo
	intervenants *mocks.MockIntervenantRepo
}

func newAuthService() (service.AuthService, authDeps) {
	d := authDeps{
		users:        new(mocks.MockUserRepo),
		ecoles:       new(mocks.MockEcoleRepo),
		intervenants: new(mocks.MockIntervenantRepo),
	}
	return service.NewAuthService(d.users, d.ecoles, d.intervenants, testJWTConfig()), d
}

func TestAuthService_Login_EcoleCarriesProfileID(t *testing.T) {
	svc, d := newAuthService()

	user := &domain.User{
		ID:           uuid.New(),
		Email:        "ecole@test.fr",
		PasswordHash: hashPassword("password123"),
		Role:         domain.RoleEcole,
		IsActive:     true,
	}
	ecole := &domain.Ecole{ID: uuid.New(), UserID: user.ID}

	d.users.On("GetByEmail", mock.Anything, "ecole@test.fr").Return(user, nil)
	d.ecoles.On("GetByUserID", mock.Anything, user.ID).Return(ecole, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{Email: "ecole@test.fr", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.True(t, pair.ExpiresAt.After(time.Now()))

	claims, err := svc.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, domain.RoleEcole, claims.Role)
	assert.Equal(t, ecole.ID, claims.Actor().ProfileID)

	d.users.AssertExpectations(t)
	d.ecoles.AssertExpectations(t)
}

func TestAuthService_Login_AdminHasNoProfile(t *testing.T) {
	svc, d := newAuthService()

	user := &domain.User{
		ID:           uuid.New(),
		Email:        "admin@test.fr",
		PasswordHash: hashPassword("password123"),
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}
	d.users.On("GetByEmail", mock.Anything, "admin@test.fr").Return(user, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{Email: "admin@test.fr", Password: "password123"})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, claims.ProfileID)
	assert.True(t, claims.Actor().IsAdmin())
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	svc, d := newAuthService()

	user := &domain.User{
		ID:           uuid.New(),
		Email:        "user@test.fr",
		PasswordHash: hashPassword("correct-password"),
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}
	d.users.On("GetByEmail", mock.Anything, "user@test.fr").Return(user, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{Email: "user@test.fr", Password: "wrong-password"})
	assert.Nil(t, pair)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc, d := newAuthService()
	d.users.On("GetByEmail", mock.Anything, "ghost@test.fr").Return(nil, domain.ErrNotFound)

	_, err := svc.Login(context.Background(), service.LoginInput{Email: "ghost@test.fr", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	svc, d := newAuthService()
	user := &domain.User{ID: uuid.New(), Email: "off@test.fr", PasswordHash: hashPassword("password123"), IsActive: false}
	d.users.On("GetByEmail", mock.Anything, "off@test.fr").Return(user, nil)

	_, err := svc.Login(context.Background(), service.LoginInput{Email: "off@test.fr", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrUserInactive)
}

func TestAuthService_Login_MissingProfile(t *testing.T) {
	svc, d := newAuthService()
	user := &domain.User{
		ID:           uuid.New(),
		Email:        "int@test.fr",
		PasswordHash: hashPassword("password123"),
		Role:         domain.RoleIntervenant,
		IsActive:     true,
	}
	d.users.On("GetByEmail", mock.Anything, "int@test.fr").Return(user, nil)
	d.intervenants.On("GetByUserID", mock.Anything, user.ID).Return(nil, domain.ErrNotFound)

	_, err := svc.Login(context.Background(), service.LoginInput{Email: "int@test.fr", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestAuthService_RefreshToken_RejectsAccessToken(t *testing.T) {
	svc, d := newAuthService()
	user := &domain.User{ID: uuid.New(), Email: "a@test.fr", Role: domain.RoleAdmin, IsActive: true}

	pair, err := svc.GenerateTokenPair(context.Background(), user)
	require.NoError(t, err)

	_, err = svc.RefreshToken(context.Background(), pair.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	d.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)
	refreshed, err := svc.RefreshToken(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestAuthService_ValidateToken_RejectsRefreshToken(t *testing.T) {
	svc, _ := newAuthService()
	user := &domain.User{ID: uuid.New(), Email: "a@test.fr", Role: domain.RoleAdmin, IsActive: true}

	pair, err := svc.GenerateTokenPair(context.Background(), user)
	require.NoError(t, err)

	_, err = svc.ValidateToken(pair.RefreshToken)
	assert.Error(t, err)
}

func TestAuthService_Me_Intervenant(t *testing.T) {
	svc, d := newAuthService()
	user := &domain.User{ID: uuid.New(), Role: domain.RoleIntervenant, IsActive: true}
	profile := &domain.Intervenant{ID: uuid.New(), UserID: user.ID, Status: domain.ModerationPending}

	d.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)
	d.intervenants.On("GetByUserID", mock.Anything, user.ID).Return(profile, nil)

	out, err := svc.Me(context.Background(), domain.Actor{UserID: user.ID, Role: domain.RoleIntervenant})
	require.NoError(t, err)
	require.NotNil(t, out.ProfileID)
	assert.Equal(t, profile.ID, *out.ProfileID)
	assert.Equal(t, profile, out.Intervenant)
	assert.Nil(t, out.Ecole)
}

func TestAuthService_ChangePassword(t *testing.T) {
	svc, d := newAuthService()
	user := &domain.User{ID: uuid.New(), PasswordHash: hashPassword("old-password")}
	d.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)
	d.users.On("UpdatePassword", mock.Anything, user.ID, mock.AnythingOfType("string")).Return(nil)

	err := svc.ChangePassword(context.Background(), user.ID, service.ChangePasswordInput{
		CurrentPassword:         "old-password",
		NewPassword:             "new-password",
		NewPasswordConfirmation: "new-password",
	})
	require.NoError(t, err)

	hash := d.users.Calls[1].Arguments.String(2)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("new-password")))
}

func TestAuthService_ChangePassword_Errors(t *testing.T) {
	svc, d := newAuthService()
	user := &domain.User{ID: uuid.New(), PasswordHash: hashPassword("old-password")}
	d.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)

	err := svc.ChangePassword(context.Background(), user.ID, service.ChangePasswordInput{
		CurrentPassword: "old-password", NewPassword: "new-password", NewPasswordConfirmation: "other-password",
	})
	assert.ErrorIs(t, err, domain.ErrPasswordMismatch)

	err = svc.ChangePassword(context.Background(), user.ID, service.ChangePasswordInput{
		CurrentPassword: "bad-password", NewPassword: "new-password", NewPasswordConfirmation: "new-password",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	d.users.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
}
