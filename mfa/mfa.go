// Package mfa drives the multi step login handshake against the Auth API: the
// primary login with a federated identity assertion, the passkey ceremony it
// may demand, and the management of registered credentials. Every operation
// returns a result value; the orchestrator never panics across its surface
// and never retries on its own.
package mfa

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ebsys/gateway/bridge"
	"github.com/ebsys/gateway/ceremony"
	"github.com/ebsys/gateway/errors"
	"github.com/ebsys/gateway/schemas"
	"github.com/ebsys/gateway/services"
	"github.com/ebsys/gateway/session"
	"github.com/go-webauthn/webauthn/protocol"
)

// Orchestrator coordinates the Auth API, the artifact store and the
// credential ceremony for one user session
type Orchestrator struct {
	API   *services.AuthAPI
	Store session.Store

	state State
}

// State returns the position of the current login attempt
func (o *Orchestrator) State() State {
	if o.state == "" {
		return StateUnauthenticated
	}
	return o.state
}

func (o *Orchestrator) correlation() services.MFAHeaders {
	return services.MFAHeaders{
		IDToken:   o.Store.Get(session.IDToken),
		FlowID:    o.Store.Get(session.FlowID),
		Challenge: o.Store.Get(session.Challenge),
	}
}

// Login presents the identity assertion to the Auth API. On success the
// durable session is established. When the response carries the MFA signal,
// the correlation artifacts are persisted and the passkey start step is
// invoked immediately; the combined outcome comes back as a RequiresMFA
// result instead of a hidden side effect.
func (o *Orchestrator) Login(ctx context.Context, assertion bridge.Assertion) LoginResult {
	res, err := o.API.Login(ctx, assertion.Email, assertion.IDToken)
	if err != nil {
		o.state = StateFailed
		return LoginResult{Error: err.Error()}
	}

	o.state = StateIdentityVerified

	if res.MFARequired {
		session.SetCorrelation(o.Store, assertion.IDToken, res.FlowID, res.Challenge)
		o.state = StateMFARequired

		start := o.Start(ctx, assertion.Email)
		return LoginResult{
			OK:          start.OK,
			RequiresMFA: true,
			PublicKey:   start.PublicKey,
			Error:       start.Error,
			Status:      res.Status,
		}
	}

	if res.Status == http.StatusOK && res.Token != "" {
		session.Establish(o.Store, res.Token)
		o.state = StateAuthenticated
		return LoginResult{OK: true, Status: res.Status}
	}

	o.state = StateFailed
	message := res.Error
	if message == "" {
		message = errors.ErrInternalServerError.Error()
	}
	return LoginResult{Error: message, Status: res.Status}
}

// Start begins the passkey login ceremony. The returned options carry the
// challenge and every allowed credential id as byte buffers, ready for the
// ceremony. Failure leaves the stored correlation untouched; challenges are
// single use, so callers recover from an aborted ceremony by calling Start
// again.
func (o *Orchestrator) Start(ctx context.Context, email string) StartResult {
	mfa := o.correlation()
	if mfa.IDToken == "" || mfa.FlowID == "" {
		return StartResult{Error: errors.ErrCorrelationMissing.Error()}
	}

	status, parsed, err := o.API.PasskeyLoginStart(ctx, email, mfa)
	if err != nil {
		return StartResult{Error: err.Error()}
	}
	if status != http.StatusOK || parsed == nil || len(parsed.PublicKey) == 0 {
		message := errors.ErrInternalServerError.Error()
		if parsed != nil && parsed.Error != "" {
			message = parsed.Error
		}
		return StartResult{Error: message}
	}

	publicKey, err := ceremony.DecodeAssertionOptions(parsed.PublicKey)
	if err != nil {
		return StartResult{Error: err.Error()}
	}

	o.state = StateMFAInProgress
	return StartResult{OK: true, PublicKey: publicKey}
}

// Finish sends the signed assertion to the Auth API together with the stored
// correlation headers. Success establishes the durable session and clears
// the correlation artifacts in the same step; an unauthorized response is
// terminal for the current flow and leaves the artifacts as they are.
func (o *Orchestrator) Finish(ctx context.Context, email string, cred *ceremony.Credential) FinishResult {
	if cred == nil || !cred.IsAssertion() {
		return FinishResult{Error: errors.ErrCredentialMalformed.Error()}
	}

	payload, err := json.Marshal(cred)
	if err != nil {
		return FinishResult{Error: errors.ErrCredentialMalformed.Error()}
	}

	status, parsed, err := o.API.PasskeyLoginFinish(ctx, email, o.correlation(), payload)
	if err != nil {
		return FinishResult{Error: err.Error()}
	}

	if status == http.StatusOK && parsed != nil && parsed.Token != "" {
		session.Establish(o.Store, parsed.Token)
		o.state = StateAuthenticated
		return FinishResult{OK: true, Status: status}
	}

	o.state = StateFailed
	message := errors.ErrChallengeInvalidOrExpired.Error()
	if parsed != nil && parsed.Error != "" {
		message = parsed.Error
	} else if status != http.StatusUnauthorized {
		message = errors.ErrInternalServerError.Error()
	}
	return FinishResult{Error: message, Status: status}
}

// Authenticate runs the whole login handshake, driving the credential
// ceremony through the given authenticator when the Auth API demands it. A
// dismissed platform prompt surfaces as an aborted result, distinct from any
// server error; the attempt stays recoverable through Start.
func (o *Orchestrator) Authenticate(ctx context.Context, assertion bridge.Assertion, authenticator ceremony.Authenticator) LoginResult {
	res := o.Login(ctx, assertion)
	if !res.RequiresMFA || !res.OK {
		return res
	}

	cred, err := authenticator.Get(ctx, res.PublicKey)
	if err != nil {
		return LoginResult{
			RequiresMFA: true,
			Aborted:     true,
			Error:       errors.ErrCeremonyAborted.Error(),
			Status:      res.Status,
		}
	}

	finish := o.Finish(ctx, assertion.Email, cred)
	status := res.Status
	if finish.Status != 0 {
		status = finish.Status
	}
	return LoginResult{
		OK:          finish.OK,
		RequiresMFA: true,
		Error:       finish.Error,
		Status:      status,
	}
}

// RegisterStart begins adding a new credential to the authenticated account
func (o *Orchestrator) RegisterStart(ctx context.Context) (*protocol.CredentialCreation, error) {
	sessionToken := o.Store.Get(session.Token)
	if sessionToken == "" {
		return nil, errors.ErrSessionNotProvided
	}

	status, body, err := o.API.DeviceRegisterStart(ctx, sessionToken)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, errors.ErrUnauthorized
	}

	return ceremony.DecodeCreationOptions(body)
}

// RegisterFinish posts the serialized attestation; the user is already
// authenticated so no session side effect happens here
func (o *Orchestrator) RegisterFinish(ctx context.Context, cred *ceremony.Credential) (bool, error) {
	if cred == nil || !cred.IsAttestation() {
		return false, errors.ErrCredentialMalformed
	}

	sessionToken := o.Store.Get(session.Token)
	if sessionToken == "" {
		return false, errors.ErrSessionNotProvided
	}

	payload, err := json.Marshal(cred)
	if err != nil {
		return false, errors.ErrCredentialMalformed
	}

	return o.API.DeviceRegisterFinish(ctx, sessionToken, payload)
}

// RegisterDevice runs the whole registration ceremony through the given authenticator
func (o *Orchestrator) RegisterDevice(ctx context.Context, authenticator ceremony.Authenticator) (bool, error) {
	options, err := o.RegisterStart(ctx)
	if err != nil {
		return false, err
	}

	cred, err := authenticator.Create(ctx, options)
	if err != nil {
		return false, errors.ErrCeremonyAborted
	}

	return o.RegisterFinish(ctx, cred)
}

// Devices lists the registered MFA devices of the authenticated account
func (o *Orchestrator) Devices(ctx context.Context) ([]schemas.MFADevice, error) {
	sessionToken := o.Store.Get(session.Token)
	if sessionToken == "" {
		return nil, errors.ErrSessionNotProvided
	}
	return o.API.Devices(ctx, sessionToken)
}

// Revoke removes a registered MFA device. The call is unconditional here;
// gating it on the typed confirmation phrase is the caller's contract.
func (o *Orchestrator) Revoke(ctx context.Context, name string) (bool, error) {
	sessionToken := o.Store.Get(session.Token)
	if sessionToken == "" {
		return false, errors.ErrSessionNotProvided
	}
	return o.API.RevokeDevice(ctx, sessionToken, name)
}

// Logout revokes the session with the Auth API before discarding the local
// credential, so server side session state does not outlive the client's
func (o *Orchestrator) Logout(ctx context.Context) error {
	sessionToken := o.Store.Get(session.Token)
	if sessionToken == "" {
		return nil
	}

	if err := o.API.Logout(ctx, sessionToken); err != nil {
		return err
	}

	session.ClearSession(o.Store)
	o.state = StateUnauthenticated
	return nil
}
