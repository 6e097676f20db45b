package mfa

import "github.com/go-webauthn/webauthn/protocol"

// State names the position of one login attempt in the handshake
type State string

const (
	// StateUnauthenticated -> no identity assertion has been presented yet
	StateUnauthenticated State = "unauthenticated"
	// StateIdentityVerified -> the federated assertion was accepted upstream
	StateIdentityVerified State = "identity_verified"
	// StateMFARequired -> the Auth API demanded a second factor
	StateMFARequired State = "mfa_required"
	// StateMFAInProgress -> ceremony options were issued and await a credential
	StateMFAInProgress State = "mfa_in_progress"
	// StateAuthenticated -> a durable session credential exists
	StateAuthenticated State = "authenticated"
	// StateFailed -> terminal failure of the current attempt
	StateFailed State = "failed"
)

// LoginResult is the discriminated outcome of Login. When the Auth API
// demands a second factor, RequiresMFA is set and PublicKey carries the
// decoded ceremony options; OK then mirrors the outcome of the coupled
// start step.
type LoginResult struct {
	OK          bool
	RequiresMFA bool
	Aborted     bool
	PublicKey   *protocol.CredentialAssertion
	Error       string
	Status      int
}

// StartResult is the outcome of the passkey login start step
type StartResult struct {
	OK        bool
	PublicKey *protocol.CredentialAssertion
	Error     string
}

// FinishResult is the outcome of the passkey login finish step. Status is
// the upstream response status, zero when no upstream call was made.
type FinishResult struct {
	OK     bool
	Error  string
	Status int
}
