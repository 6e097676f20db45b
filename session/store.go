// Package session holds the durable session credential and the short lived
// correlation artifacts of one login attempt as scoped, attribute tagged
// entries. The store is injected into every orchestrator call so nothing
// reads ambient cookie state.
package session

import "time"

// Artifact names one stored entry. The names are the cookie names the
// browser round trips.
type Artifact string

const (
	// IDToken -> the federated identity assertion, kept only for the handshake
	IDToken Artifact = "id_token"
	// Challenge -> the MFA challenge echoed back on the finishing call
	Challenge Artifact = "mfa_challenge"
	// FlowID -> the correlation id binding the two MFA round trips
	FlowID Artifact = "mfa_flow_id"
	// Token -> the durable session credential
	Token Artifact = "token"
)

const (
	// CorrelationTTL is the write expiry of the three correlation artifacts
	CorrelationTTL = time.Hour
	// SessionTTL is the write expiry of the durable session credential
	SessionTTL = 24 * time.Hour
)

// Store is the scoped artifact storage the orchestrator writes through
type Store interface {
	Set(artifact Artifact, value string, ttl time.Duration)
	Get(artifact Artifact) string
	Clear(artifacts ...Artifact)
}

// SetCorrelation persists the identity assertion and the challenge
// correlation of one login attempt. A later call overwrites the previous
// attempt, so the latest flow always wins.
func SetCorrelation(s Store, idToken, flowID, challenge string) {
	s.Set(IDToken, idToken, CorrelationTTL)
	s.Set(FlowID, flowID, CorrelationTTL)
	s.Set(Challenge, challenge, CorrelationTTL)
}

// Establish stores the durable session credential and discards the
// correlation artifacts. This is the single point at which correlation state
// is cleared; it is never read again afterwards.
func Establish(s Store, token string) {
	s.Clear(IDToken, FlowID, Challenge)
	s.Set(Token, token, SessionTTL)
}

// ClearSession removes the durable session credential locally. The Auth API
// must have been notified before this is called so server side state does not
// outlive the client's.
func ClearSession(s Store) {
	s.Clear(Token)
}
