package session

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// CookieOptions carries the attributes every artifact cookie is written with
type CookieOptions struct {
	Domain string
	Secure bool
}

// CookieStore reads and writes artifacts as cookies on one in flight request.
// All entries are http-only, same-site lax and path scoped to the root.
// Writes are mirrored in memory so a login that stores correlation state and
// immediately starts the MFA step observes its own writes.
type CookieStore struct {
	c       *fiber.Ctx
	opts    CookieOptions
	pending map[Artifact]string
}

// NewCookieStore is a function that is used to bind an artifact store to a request
func NewCookieStore(c *fiber.Ctx, opts CookieOptions) *CookieStore {
	return &CookieStore{
		c:       c,
		opts:    opts,
		pending: make(map[Artifact]string),
	}
}

// Set writes the artifact cookie with the given expiry window
func (s *CookieStore) Set(artifact Artifact, value string, ttl time.Duration) {
	s.pending[artifact] = value
	s.c.Cookie(&fiber.Cookie{
		Name:     string(artifact),
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		Secure:   s.opts.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Domain:   s.opts.Domain,
	})
}

// Get reads the artifact, preferring a value written earlier in the same request
func (s *CookieStore) Get(artifact Artifact) string {
	if v, ok := s.pending[artifact]; ok {
		return v
	}
	return s.c.Cookies(string(artifact))
}

// Clear expires the artifact cookies on the client
func (s *CookieStore) Clear(artifacts ...Artifact) {
	expired := time.Now().Add(-time.Hour * 24)
	for _, artifact := range artifacts {
		s.pending[artifact] = ""
		s.c.Cookie(&fiber.Cookie{
			Name:     string(artifact),
			Value:    "",
			Path:     "/",
			Expires:  expired,
			Secure:   s.opts.Secure,
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Domain:   s.opts.Domain,
		})
	}
}
