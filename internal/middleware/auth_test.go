package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cvmentor/interview-api/internal/config"
	"cvmentor/interview-api/internal/services"
)

func newAuthedApp(t *testing.T) (*fiber.App, services.TokenService, *uuid.UUID) {
	t.Helper()

	tokenService := services.NewTokenService(config.JWTConfig{Secret: "unit-test-secret", TTL: time.Hour})

	var seenUserID uuid.UUID
	app := fiber.New()
	app.Get("/protected", RequireAuth(tokenService), func(c *fiber.Ctx) error {
		seenUserID = UserID(c)
		return c.SendStatus(fiber.StatusOK)
	})

	return app, tokenService, &seenUserID
}

func TestRequireAuthAcceptsValidToken(t *testing.T) {
	app, tokenService, seenUserID := newAuthedApp(t)

	userID := uuid.New()
	token, err := tokenService.Issue(userID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, userID, *seenUserID)
}

func TestRequireAuthRejectsMissingHeader(t *testing.T) {
	app, _, _ := newAuthedApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/protected", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuthRejectsMalformedHeader(t *testing.T) {
	app, tokenService, _ := newAuthedApp(t)

	token, err := tokenService.Issue(uuid.New())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuthRejectsForgedToken(t *testing.T) {
	app, _, _ := newAuthedApp(t)

	forged := services.NewTokenService(config.JWTConfig{Secret: "other-secret", TTL: time.Hour})
	token, err := forged.Issue(uuid.New())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
