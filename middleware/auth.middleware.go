// Package middleware contains the request guards of the gateway
package middleware

import (
	"strings"
	"time"

	"github.com/ebsys/gateway/config"
	"github.com/ebsys/gateway/connect"
	"github.com/ebsys/gateway/errors"
	"github.com/ebsys/gateway/session"
	"github.com/ebsys/gateway/token"
	"github.com/gofiber/fiber/v2"
)

// Auth contains auth related middlewares
type Auth struct {
	Env  *config.Env
	Conn *connect.Connector
}

// storedToken resolves the session credential of browsers whose artifacts
// live server side and that only carry the scope cookie
func (a *Auth) storedToken(c *fiber.Ctx) string {
	if a.Conn == nil || a.Conn.R == nil {
		return ""
	}
	sid := c.Cookies(session.ScopeCookie)
	if sid == "" {
		return ""
	}
	return session.NewRedisStore(a.Conn.R.Artifacts, sid).Get(session.Token)
}

// Check is a function that is used to check wether the request carries a live
// session credential before it reaches the account endpoints. The credential
// is only inspected, not verified; the Auth API remains the authority and
// rejects anything the gateway let through by mistake.
func (a *Auth) Check(c *fiber.Ctx) error {
	var sessionToken string
	authorization := c.Get("Authorization")

	if strings.HasPrefix(authorization, "Bearer ") {
		sessionToken = strings.TrimPrefix(authorization, "Bearer ")
	} else if c.Cookies(string(session.Token)) != "" {
		sessionToken = c.Cookies(string(session.Token))
	} else {
		sessionToken = a.storedToken(c)
	}

	if sessionToken == "" {
		return errors.SessionNotProvided(c)
	}

	claims, err := token.Inspect(sessionToken)
	if err != nil {
		return errors.Unauthorized(c)
	}
	if claims.Expired(time.Now()) {
		return errors.SessionExpired(c)
	}

	session.Add(c, claims.Email, claims.Subject)
	session.SaveSessionToken(c, sessionToken)

	return c.Next()
}
