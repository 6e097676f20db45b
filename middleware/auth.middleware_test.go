package middleware_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/ebsys/gateway/config"
	"github.com/ebsys/gateway/connect"
	"github.com/ebsys/gateway/middleware"
	"github.com/ebsys/gateway/session"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func guarded() *fiber.App {
	guard := middleware.Auth{Env: &config.Env{}}

	app := fiber.New()
	app.Get("/me", guard.Check, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"email": session.GetEmail(c),
			"token": session.GetSessionToken(c),
		})
	})
	return app
}

func mint(t *testing.T, exp time.Time) string {
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "jo@example.com",
		"sub":   "user-1",
		"exp":   exp.Unix(),
	}).SignedString([]byte("upstream-secret"))
	require.NoError(t, err)
	return raw
}

func TestCheckAcceptsTheSessionCookie(t *testing.T) {
	app := guarded()
	raw := mint(t, time.Now().Add(time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: raw})

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)
}

func TestCheckAcceptsTheBearerHeader(t *testing.T) {
	app := guarded()
	raw := mint(t, time.Now().Add(time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+raw)

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)
}

func TestCheckResolvesTheSessionFromTheServerSideStore(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("redis is not reachable on %s: %v", addr, err)
	}

	scope := fmt.Sprintf("gateway-test:%s", uuid.NewString())
	store := session.NewRedisStore(client, scope)
	store.Set(session.Token, mint(t, time.Now().Add(time.Hour)), session.SessionTTL)

	guard := middleware.Auth{
		Env:  &config.Env{},
		Conn: &connect.Connector{R: &connect.Redis{Artifacts: client}},
	}
	app := fiber.New()
	app.Get("/me", guard.Check, func(c *fiber.Ctx) error {
		return c.SendString(session.GetEmail(c))
	})

	// the browser only carries the scope; the token lives server side
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: scope})

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)

	// an unknown scope is no credential at all
	store.Clear(session.Token)
	res, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
}

func TestCheckRejections(t *testing.T) {
	app := guarded()

	args := []struct {
		Name   string
		Cookie string
		Status int
	}{
		{Name: "no credential", Status: fiber.StatusUnauthorized},
		{Name: "garbage token", Cookie: "not-a-token", Status: fiber.StatusUnauthorized},
		{Name: "expired token", Cookie: mint(t, time.Now().Add(-time.Hour)), Status: fiber.StatusUnauthorized},
	}

	for _, arg := range args {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if arg.Cookie != "" {
			req.AddCookie(&http.Cookie{Name: "token", Value: arg.Cookie})
		}

		res, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, arg.Status, res.StatusCode, arg.Name)
	}
}
