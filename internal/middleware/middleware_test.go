package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DurjoyKumar177/CrisisAid-Backend/domain"
	"github.com/DurjoyKumar177/CrisisAid-Backend/pkg/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(t *testing.T, optional bool) (*fiber.App, jwt.JWTService) {
	t.Helper()
	tokens := jwt.NewJWTService("secret", time.Hour)
	m := NewMiddleware("*")

	auth := m.AuthMiddleware(tokens)
	if optional {
		auth = m.OptionalAuthMiddleware(tokens)
	}

	app := fiber.New()
	app.Get("/whoami", auth, func(c *fiber.Ctx) error {
		return c.SendString(ActorFrom(c).Username)
	})
	return app, tokens
}

func get(t *testing.T, app *fiber.App, authorization string) int {
	t.Helper()
	req := httptest.NewRequest("GET", "/whoami", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestAuthMiddleware(t *testing.T) {
	app, tokens := newApp(t, false)
	token, err := tokens.GenerateTokenUser(domain.Actor{ID: uuid.New(), Username: "rahim"})
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, get(t, app, "Bearer "+token))
	assert.Equal(t, fiber.StatusOK, get(t, app, "bearer "+token))
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, ""))
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "Token "+token))
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "Bearer not-a-jwt"))
}

func TestOptionalAuthMiddleware(t *testing.T) {
	app, tokens := newApp(t, true)
	token, err := tokens.GenerateTokenUser(domain.Actor{ID: uuid.New(), Username: "rahim"})
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, get(t, app, ""))
	assert.Equal(t, fiber.StatusOK, get(t, app, "Bearer "+token))
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "Bearer not-a-jwt"))
}

func TestActorFromDefaultsToAnonymous(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		assert.False(t, ActorFrom(c).IsAuthenticated())
		return nil
	})
	_, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
}
