package controllers

import (
	"encoding/json"
	goerrors "errors"

	"github.com/ebsys/gateway/ceremony"
	"github.com/ebsys/gateway/config"
	"github.com/ebsys/gateway/connect"
	"github.com/ebsys/gateway/errors"
	"github.com/ebsys/gateway/logger"
	"github.com/ebsys/gateway/mfa"
	"github.com/ebsys/gateway/schemas"
	"github.com/ebsys/gateway/services"
	"github.com/ebsys/gateway/validate"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Devices struct contains the MFA device management controllers
type Devices struct {
	Env  *config.Env
	Conn *connect.Connector
	API  *services.AuthAPI
}

func (d *Devices) orchestrator(c *fiber.Ctx) *mfa.Orchestrator {
	return &mfa.Orchestrator{
		API:   d.API,
		Store: bindStore(c, d.Env, d.Conn),
	}
}

// List is a function that is used to list the MFA devices registered to the
// logged in account
func (d *Devices) List(c *fiber.Ctx) error {
	devices, err := d.orchestrator(c).Devices(c.Context())
	if err != nil {
		if goerrors.Is(err, errors.ErrSessionNotProvided) {
			return errors.SessionNotProvided(c)
		}
		logger.Error(err)
		return errors.InternalServerErr(c)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": errors.Okay,
		"data":   devices,
	})
}

// Revoke is a function that is used to revoke an MFA device after the user
// typed the confirmation phrase
func (d *Devices) Revoke(c *fiber.Ctx) error {
	var payload struct {
		Name    string `json:"name" validate:"required"`
		Confirm string `json:"confirm" validate:"required,validate_confirmation"`
	}

	if err := c.BodyParser(&payload); err != nil {
		logger.Error(err)
		return errors.BadRequest(c)
	}

	v := validator.New()
	if err := v.RegisterValidation("validate_confirmation", validate.RevokeConfirmation); err != nil {
		logger.Error(err)
		return errors.InternalServerErr(c)
	}
	if err := v.Struct(payload); err != nil {
		return errors.ConfirmationPhraseMismatch(c)
	}

	ok, err := d.orchestrator(c).Revoke(c.Context(), payload.Name)
	if err != nil {
		if goerrors.Is(err, errors.ErrSessionNotProvided) {
			return errors.SessionNotProvided(c)
		}
		logger.Error(err)
		return errors.InternalServerErr(c)
	}
	if !ok {
		return errors.BadRequest(c)
	}
	return errors.Done(c)
}

// RegisterStart is a function that is used to begin the registration ceremony
// for a new passkey on the logged in account
func (d *Devices) RegisterStart(c *fiber.Ctx) error {
	options, err := d.orchestrator(c).RegisterStart(c.Context())
	if err != nil {
		if goerrors.Is(err, errors.ErrSessionNotProvided) {
			return errors.SessionNotProvided(c)
		}
		if goerrors.Is(err, errors.ErrUnauthorized) {
			return errors.Unauthorized(c)
		}
		logger.Error(err)
		return errors.InternalServerErr(c)
	}
	return c.Status(fiber.StatusOK).JSON(options)
}

// RegisterFinish is a function that is used to complete the registration
// ceremony with the attestation produced by the authenticator
func (d *Devices) RegisterFinish(c *fiber.Ctx) error {
	var wire schemas.PassKeyCredWhenCreating
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

	ok, err := d.orchestrator(c).RegisterFinish(c.Context(), &cred)
	if err != nil {
		if goerrors.Is(err, errors.ErrSessionNotProvided) {
			return errors.SessionNotProvided(c)
		}
		if goerrors.Is(err, errors.ErrCredentialMalformed) {
			return errors.CredentialMalformed(c)
		}
		logger.Error(err)
		return errors.InternalServerErr(c)
	}
	if !ok {
		return errors.BadRequest(c)
	}
	return errors.Done(c)
}
