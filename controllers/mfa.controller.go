package controllers

import (
	"encoding/json"

	"github.com/ebsys/gateway/ceremony"
	"github.com/ebsys/gateway/config"
	"github.com/ebsys/gateway/connect"
	"github.com/ebsys/gateway/errors"
	"github.com/ebsys/gateway/logger"
	"github.com/ebsys/gateway/mfa"
	"github.com/ebsys/gateway/schemas"
	"github.com/ebsys/gateway/services"
	"github.com/ebsys/gateway/session"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// MFA struct contains the passkey login ceremony controllers
type MFA struct {
	Env  *config.Env
	Conn *connect.Connector
	API  *services.AuthAPI
}

func (m *MFA) orchestrator(c *fiber.Ctx) *mfa.Orchestrator {
	return &mfa.Orchestrator{
		API:   m.API,
		Store: bindStore(c, m.Env, m.Conn),
	}
}

// Start is a function that is used to begin the passkey login ceremony for a
// login that was answered with an MFA challenge
func (m *MFA) Start(c *fiber.Ctx) error {
	var payload struct {
		Email string `json:"email" validate:"required,email"`
	}

	if err := c.BodyParser(&payload); err != nil {
		logger.Error(err)
		return errors.BadRequest(c)
	}
	if err := validator.New().Struct(payload); err != nil {
		logger.Error(err)
		return errors.BadRequest(c)
	}

	res := m.orchestrator(c).Start(c.Context(), payload.Email)
	if !res.OK {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status": res.Error,
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":    errors.Okay,
		"publicKey": res.PublicKey.Response,
	})
}

// Finish is a function that is used to complete the passkey login ceremony
// with the assertion produced by the authenticator
func (m *MFA) Finish(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return errors.BadRequest(c)
	}

	var wire schemas.PassKeyCredWhenLogginIn
	if err := c.BodyParser(&wire); err != nil {
		logger.Error(err)
		return errors.CredentialMalformed(c)
	}
	if err := validator.New().Struct(wire); err != nil {
		logger.Error(err)
		return errors.CredentialMalformed(c)
	}

	var cred ceremony.Credential
	if err := json.Unmarshal(c.Body(), &cred); err != nil {
		logger.Error(err)
		return errors.CredentialMalformed(c)
	}

	res := m.orchestrator(c).Finish(c.Context(), email, &cred)
	if !res.OK {
		status := res.Status
		if status == 0 {
			status = fiber.StatusInternalServerError
		}
		return errors.UpstreamError(c, status, res.Error)
	}
	return errors.Done(c)
}

// RequestCode is a function that is used to ask the Auth API to deliver a
// fallback verification code to the user
func (m *MFA) RequestCode(c *fiber.Ctx) error {
	var payload struct {
		Email string `json:"email" validate:"required,email"`
	}

	if err := c.BodyParser(&payload); err != nil {
		logger.Error(err)
		return errors.BadRequest(c)
	}
	if err := validator.New().Struct(payload); err != nil {
		logger.Error(err)
		return errors.BadRequest(c)
	}

	ok, err := m.API.RequestVerificationCode(c.Context(), bindStore(c, m.Env, m.Conn).Get(session.Token), payload.Email)
	if err != nil {
		logger.Error(err)
		return errors.InternalServerErr(c)
	}
	if !ok {
		return errors.BadRequest(c)
	}
	return errors.Done(c)
}

// VerifyCode is a function that is used to verify a fallback verification
// code and establish the session from it
func (m *MFA) VerifyCode(c *fiber.Ctx) error {
	var payload struct {
		Email string `json:"email" validate:"required,email"`
		Code  string `json:"code" validate:"required"`
	}

	if err := c.BodyParser(&payload); err != nil {
		logger.Error(err)
		return errors.BadRequest(c)
	}
	if err := validator.New().Struct(payload); err != nil {
		logger.Error(err)
		return errors.BadRequest(c)
	}

	ok, err := m.API.VerifyVerificationCode(c.Context(), bindStore(c, m.Env, m.Conn).Get(session.Token), payload.Email, payload.Code)
	if err != nil {
		logger.Error(err)
		return errors.InternalServerErr(c)
	}
	if !ok {
		return errors.Unauthorized(c)
	}
	return errors.Done(c)
}
