// Package errors contians http errors and other custom errors
package errors

import (
	"fmt"
	"time"

	"github.com/ebsys/gateway/schemas"
	"github.com/gofiber/fiber/v2"
)

//revive:disable

var (
	ErrInternalServerError        = fmt.Errorf("internal_server_error")
	ErrUnauthorized               = fmt.Errorf("unauthorized")
	ErrBadRequest                 = fmt.Errorf("bad_request")
	ErrSessionNotProvided         = fmt.Errorf("session_not_provided")
	ErrSessionExpired             = fmt.Errorf("session_expired")
	ErrIdentityAssertionMissing   = fmt.Errorf("identity_assertion_missing")
	ErrFederatedAuthFailed        = fmt.Errorf("federated_auth_failed")
	ErrMFARequired                = fmt.Errorf("mfa_required")
	ErrChallengeInvalidOrExpired  = fmt.Errorf("challenge_invalid_or_expired")
	ErrCeremonyAborted            = fmt.Errorf("ceremony_aborted")
	ErrCeremonyFailed             = fmt.Errorf("ceremony_failed")
	ErrCorrelationMissing         = fmt.Errorf("correlation_missing")
	ErrConfirmationPhraseMismatch = fmt.Errorf("confirmation_phrase_mismatch")
	ErrCredentialMalformed        = fmt.Errorf("credential_malformed")
	Okay                          = "okay"
)

type res schemas.Res

func InternalServerErr(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(res{
		Status: ErrInternalServerError.Error(),
	})
}

func unauthorized(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusUnauthorized).JSON(res{
		Status: err.Error(),
	})
}

func Unauthorized(c *fiber.Ctx) error {
	return unauthorized(c, ErrUnauthorized)
}

func SessionNotProvided(c *fiber.Ctx) error {
	return unauthorized(c, ErrSessionNotProvided)
}

func SessionExpired(c *fiber.Ctx) error {
	expired := time.Now().Add(-time.Hour * 24)
	c.Cookie(&fiber.Cookie{
		Name:    "token",
		Value:   "",
		Expires: expired,
	})
	return unauthorized(c, ErrSessionExpired)
}

func FederatedAuthFailed(c *fiber.Ctx) error {
	return unauthorized(c, ErrFederatedAuthFailed)
}

func badrequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(res{
		Status: err.Error(),
	})
}

func BadRequest(c *fiber.Ctx) error {
	return badrequest(c, ErrBadRequest)
}

func IdentityAssertionMissing(c *fiber.Ctx) error {
	return badrequest(c, ErrIdentityAssertionMissing)
}

func ConfirmationPhraseMismatch(c *fiber.Ctx) error {
	return badrequest(c, ErrConfirmationPhraseMismatch)
}

func CredentialMalformed(c *fiber.Ctx) error {
	return badrequest(c, ErrCredentialMalformed)
}

// UpstreamError relays the verbatim message the Auth API responded with
func UpstreamError(c *fiber.Ctx, status int, message string) error {
	if message == "" {
		message = ErrInternalServerError.Error()
	}
	return c.Status(status).JSON(res{
		Status: message,
	})
}

func Done(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(schemas.Res{
		Status: Okay,
	})
}

//revive:enable
