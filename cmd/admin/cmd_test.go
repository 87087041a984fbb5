package main

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"edulink/internal/domain"
	"edulink/mocks"
)

func stubPassword(t *testing.T, pwd string) {
	t.Helper()
	orig := readPasswordFunc
	readPasswordFunc = func(int) ([]byte, error) { return []byte(pwd), nil }
	t.Cleanup(func() { readPasswordFunc = orig })
}

func TestRun_Usage(t *testing.T) {
	cli := &commandLine{users: new(mocks.MockUserRepo)}

	assert.ErrorIs(t, cli.run([]string{"admin"}), errHelp)
	assert.ErrorIs(t, cli.run([]string{"admin", "unknown"}), errHelp)
	assert.ErrorIs(t, cli.run([]string{"admin", "createadmin", "-email", "a@edulink.fr"}), errHelp)
}

func TestRun_CreateAdmin(t *testing.T) {
	stubPassword(t, "motdepasse123")
	users := new(mocks.MockUserRepo)
	cli := &commandLine{users: users}

	users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "admin@edulink.fr" && u.Role == domain.RoleAdmin && u.IsActive &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("motdepasse123")) == nil
	})).Return(nil)

	err := cli.run([]string{"admin", "createadmin", "-email", " Admin@Edulink.fr ", "-name", "Camille Admin"})

	require.NoError(t, err)
	users.AssertExpectations(t)
}

func TestRun_CreateAdmin_ShortPassword(t *testing.T) {
	stubPassword(t, "court")
	users := new(mocks.MockUserRepo)
	cli := &commandLine{users: users}

	err := cli.run([]string{"admin", "createadmin", "-email", "admin@edulink.fr", "-name", "Camille"})

	assert.Error(t, err)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRun_ResetPassword(t *testing.T) {
	stubPassword(t, "nouveaumotdepasse")
	users := new(mocks.MockUserRepo)
	cli := &commandLine{users: users}
	id := uuid.New()

	users.On("GetByEmail", mock.Anything, "lea@exemple.fr").Return(&domain.User{ID: id, Email: "lea@exemple.fr"}, nil)
	users.On("UpdatePassword", mock.Anything, id, mock.AnythingOfType("string")).Return(nil)

	require.NoError(t, cli.run([]string{"admin", "resetpassword", "-email", "lea@exemple.fr"}))
	users.AssertExpectations(t)
}

func TestRun_ResetPassword_UnknownUser(t *testing.T) {
	stubPassword(t, "nouveaumotdepasse")
	users := new(mocks.MockUserRepo)
	cli := &commandLine{users: users}

	users.On("GetByEmail", mock.Anything, "inconnu@exemple.fr").Return(nil, domain.ErrNotFound)

	err := cli.run([]string{"admin", "resetpassword", "-email", "inconnu@exemple.fr"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
