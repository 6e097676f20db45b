// Package ceremony wraps the platform public key credential capability behind a
// single interface and owns the conversion between the wire encoding of
// challenges and credential ids (base64url text) and the binary buffers the
// capability operates on.
package ceremony

import (
	"context"

	"github.com/go-webauthn/webauthn/protocol"
)

// Authenticator is the platform credential capability. Create performs the
// registration ceremony (attestation), Get the authentication ceremony
// (assertion). Both may suspend until the user interacts with the platform
// prompt; dismissing the prompt resolves the call with an error rather than
// hanging. The platform does not distinguish dismissal from timeout or a
// missing authenticator, so implementations report a single failure mode and
// the caller treats it as an aborted ceremony.
type Authenticator interface {
	Create(ctx context.Context, options *protocol.CredentialCreation) (*Credential, error)
	Get(ctx context.Context, options *protocol.CredentialAssertion) (*Credential, error)
}

// AssertionResponse is the signed proof of possession of a registered credential
type AssertionResponse struct {
	ClientDataJSON    protocol.URLEncodedBase64
	AuthenticatorData protocol.URLEncodedBase64
	Signature         protocol.URLEncodedBase64
	UserHandle        protocol.URLEncodedBase64
}

// AttestationResponse is the signed response produced when creating a new credential
type AttestationResponse struct {
	ClientDataJSON    protocol.URLEncodedBase64
	AttestationObject protocol.URLEncodedBase64
	Transports        []string
}

// Credential is the product of a ceremony. Exactly one of Assertion and
// Attestation is set, depending on which ceremony produced it.
type Credential struct {
	ID                      string
	Type                    string
	RawID                   protocol.URLEncodedBase64
	AuthenticatorAttachment string
	Assertion               *AssertionResponse
	Attestation             *AttestationResponse
}

// IsAssertion reports wether the credential came from an authentication ceremony
func (c *Credential) IsAssertion() bool {
	return c.Assertion != nil
}

// IsAttestation reports wether the credential came from a registration ceremony
func (c *Credential) IsAttestation() bool {
	return c.Attestation != nil
}
