// Package token inspects the session tokens minted by the Auth API. The
// gateway holds no signing keys; the token is an opaque bearer credential and
// only its registered claims are read, without signature verification, to
// reject plainly expired sessions before a round trip upstream.
package token

import (
	"time"

	"github.com/ebsys/gateway/errors"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the subset of the session token claims the gateway reads
type Claims struct {
	Email     string
	Subject   string
	ExpiresAt time.Time
}

// Inspect is a function that is used to read the claims of the session token
func Inspect(raw string) (*Claims, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return nil, errors.ErrUnauthorized
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.ErrUnauthorized
	}

	claims := Claims{}
	if email, ok := mapClaims["email"].(string); ok {
		claims.Email = email
	}
	if sub, err := mapClaims.GetSubject(); err == nil {
		claims.Subject = sub
	}
	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}

	return &claims, nil
}

// Expired reports wether the session token has already expired
func (c *Claims) Expired(now time.Time) bool {
	if c.ExpiresAt.IsZero() {
		return false
	}
	return now.After(c.ExpiresAt)
}
