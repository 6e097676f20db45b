// Package controllers contains the http handlers of the gateway
package controllers

import (
	"fmt"
	"net/url"

	"github.com/ebsys/gateway/bridge"
	"github.com/ebsys/gateway/config"
	"github.com/ebsys/gateway/connect"
	"github.com/ebsys/gateway/errors"
	"github.com/ebsys/gateway/logger"
	"github.com/ebsys/gateway/mfa"
	"github.com/ebsys/gateway/services"
	"github.com/ebsys/gateway/session"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const oauthStateCookie = "oauth_state"

// bindStore picks the artifact backend of the request: the cookie jar by
// default, the artifacts redis when one is connected
func bindStore(c *fiber.Ctx, env *config.Env, conn *connect.Connector) session.Store {
	var artifacts *redis.Client
	if conn != nil && conn.R != nil {
		artifacts = conn.R.Artifacts
	}
	return session.ForRequest(c, session.CookieOptions{
		Domain: env.AppDomain,
		Secure: env.Secure(),
	}, artifacts)
}

// Auth struct contains all the auth related controllers
type Auth struct {
	Env    *config.Env
	Conn   *connect.Connector
	API    *services.AuthAPI
	Bridge bridge.Bridge
}

func (a *Auth) orchestrator(c *fiber.Ctx) *mfa.Orchestrator {
	return &mfa.Orchestrator{
		API:   a.API,
		Store: bindStore(c, a.Env, a.Conn),
	}
}

func loginResponse(c *fiber.Ctx, res mfa.LoginResult) error {
	if res.RequiresMFA {
		if !res.OK {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status": res.Error,
			})
		}
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":    errors.ErrMFARequired.Error(),
			"publicKey": res.PublicKey.Response,
		})
	}
	if res.OK {
		return errors.Done(c)
	}

	status := res.Status
	if status == 0 {
		status = fiber.StatusInternalServerError
	}
	return errors.UpstreamError(c, status, res.Error)
}

// Login is a function that is used to login the user with a federated
// identity assertion obtained by the browser
func (a *Auth) Login(c *fiber.Ctx) error {
	var payload struct {
		Email   string `json:"email" validate:"required,email"`
		IDToken string `json:"id_token" validate:"required"`
	}

	if err := c.BodyParser(&payload); err != nil {
		logger.Error(err)
		return errors.BadRequest(c)
	}
	if err := validator.New().Struct(payload); err != nil {
		logger.Error(err)
		return errors.IdentityAssertionMissing(c)
	}

	res := a.orchestrator(c).Login(c.Context(), bridge.Assertion{
		Email:   payload.Email,
		IDToken: payload.IDToken,
	})
	return loginResponse(c, res)
}

// Register is a function that is used to register a new account for a
// federated identity
func (a *Auth) Register(c *fiber.Ctx) error {
	var payload struct {
		Email   string `json:"email" validate:"required,email"`
		IDToken string `json:"id_token" validate:"required"`
	}

	if err := c.BodyParser(&payload); err != nil {
		logger.Error(err)
		return errors.BadRequest(c)
	}
	if err := validator.New().Struct(payload); err != nil {
		logger.Error(err)
		return errors.IdentityAssertionMissing(c)
	}

	status, res, err := a.API.Register(c.Context(), payload.Email, payload.IDToken)
	if err != nil {
		logger.Error(err)
		return errors.InternalServerErr(c)
	}
	if status != fiber.StatusOK {
		return errors.UpstreamError(c, status, res.Error)
	}
	return errors.Done(c)
}

// Logout is a function that is used to logout the user; the Auth API is
// notified before the local session credential is discarded
func (a *Auth) Logout(c *fiber.Ctx) error {
	if err := a.orchestrator(c).Logout(c.Context()); err != nil {
		logger.Error(err)
		return errors.InternalServerErr(c)
	}
	return errors.Done(c)
}

// FederatedRedirect is a function that is used to send the browser to the
// federated sign in provider
func (a *Auth) FederatedRedirect(c *fiber.Ctx) error {
	state := uuid.NewString()
	c.Cookie(&fiber.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   600,
		Secure:   a.Env.Secure(),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.Redirect(a.Bridge.AuthCodeURL(state))
}

// FederatedCallback is a function that exchanges the provider callback for an
// identity assertion and runs the login handshake with it
func (a *Auth) FederatedCallback(c *fiber.Ctx) error {
	state := c.Query("state")
	if state == "" || state != c.Cookies(oauthStateCookie) {
		return errors.FederatedAuthFailed(c)
	}

	code := c.Query("code")
	if code == "" {
		return errors.FederatedAuthFailed(c)
	}

	assertion, err := a.Bridge.Exchange(c.Context(), code)
	if err != nil {
		logger.Error(err)
		return errors.FederatedAuthFailed(c)
	}

	res := a.orchestrator(c).Login(c.Context(), *assertion)
	if res.RequiresMFA {
		return c.Redirect(fmt.Sprintf("%s/login/mfa?email=%s", a.Env.FrontendURL, url.QueryEscape(assertion.Email)))
	}
	if res.OK {
		return c.Redirect(a.Env.FrontendURL)
	}
	return c.Redirect(fmt.Sprintf("%s/login?error=%s", a.Env.FrontendURL, url.QueryEscape(res.Error)))
}
