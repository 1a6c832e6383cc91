package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cvmentor/interview-api/internal/config"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService(config.JWTConfig{Secret: "unit-test-secret", TTL: time.Hour})
	userID := uuid.New()

	token, err := svc.Issue(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := NewTokenService(config.JWTConfig{Secret: "secret-one", TTL: time.Hour})
	verifier := NewTokenService(config.JWTConfig{Secret: "secret-two", TTL: time.Hour})

	token, err := issuer.Issue(uuid.New())
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	svc := NewTokenService(config.JWTConfig{Secret: "unit-test-secret", TTL: -time.Minute})

	token, err := svc.Issue(uuid.New())
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.Error(t, err)
}

func TestTokenGarbage(t *testing.T) {
	svc := NewTokenService(config.JWTConfig{Secret: "unit-test-secret", TTL: time.Hour})

	_, err := svc.Verify("not-a-token")
	assert.Error(t, err)
}
