package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cvmentor/interview-api/internal/config"
	"cvmentor/interview-api/internal/models"
	"cvmentor/interview-api/internal/repositories"
)

func newAuthService(t *testing.T) AuthService {
	t.Helper()

	db := setupTestDB(t)
	tokenService := NewTokenService(config.JWTConfig{Secret: "unit-test-secret", TTL: time.Hour})
	return NewAuthService(repositories.NewUserRepository(db), tokenService)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)

	user, token, err := svc.Register("Ada", "ada@example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "Ada", user.Name)
	assert.NotEqual(t, "hunter22", user.PasswordHash, "password must be stored hashed")

	loggedIn, token, err := svc.Login("ada@example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, loggedIn.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newAuthService(t)

	_, _, err := svc.Register("Ada", "ada@example.com", "hunter22")
	require.NoError(t, err)

	_, _, err = svc.Register("Impostor", "ada@example.com", "other-password")
	assert.ErrorIs(t, err, models.ErrEmailTaken)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newAuthService(t)

	_, _, err := svc.Register("Ada", "ada@example.com", "hunter22")
	require.NoError(t, err)

	_, _, err = svc.Login("ada@example.com", "wrong")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newAuthService(t)

	// Indistinguishable from a wrong password on purpose.
	_, _, err := svc.Login("nobody@example.com", "whatever")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
}
