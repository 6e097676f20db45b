package session

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ScopeCookie carries the per browser scope that keys server side artifacts
const ScopeCookie = "sid"

// ForRequest binds the artifact store of one request. Without a redis client
// the artifacts live in the cookie jar itself; with one they live server
// side, keyed by the scope cookie, and the browser only ever holds the scope.
func ForRequest(c *fiber.Ctx, opts CookieOptions, client *redis.Client) Store {
	if client == nil {
		return NewCookieStore(c, opts)
	}
	return NewRedisStore(client, EnsureScope(c, opts))
}

// EnsureScope returns the browser scope for server side artifacts, minting
// and setting it when the request carries none
func EnsureScope(c *fiber.Ctx, opts CookieOptions) string {
	if sid := c.Cookies(ScopeCookie); sid != "" {
		return sid
	}

	sid := uuid.NewString()
	c.Cookie(&fiber.Cookie{
		Name:     ScopeCookie,
		Value:    sid,
		Path:     "/",
		MaxAge:   int(SessionTTL.Seconds()),
		Secure:   opts.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Domain:   opts.Domain,
	})
	return sid
}
