package ceremony

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/ebsys/gateway/errors"
	"github.com/go-webauthn/webauthn/protocol"
)

// EncodeBase64URL is a function that is used to encode a binary buffer to its wire form
func EncodeBase64URL(buf []byte) string {
	return base64.RawURLEncoding.EncodeToString(buf)
}

// DecodeBase64URL is a function that is used to decode the wire form back to a binary buffer;
// padded and unpadded input are both accepted
func DecodeBase64URL(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(strings.TrimRight(s, "="))
}

// DecodeAssertionOptions decodes the publicKey options of a passkey login start
// response into their in memory form; the challenge and every allowed
// credential id arrive as base64url text and come out as byte buffers
func DecodeAssertionOptions(raw []byte) (*protocol.CredentialAssertion, error) {
	var opts protocol.PublicKeyCredentialRequestOptions
	if err := json.Unmarshal(raw, &opts); err != nil {
		return nil, errors.ErrCeremonyFailed
	}
	if len(opts.Challenge) == 0 {
		return nil, errors.ErrCeremonyFailed
	}
	return &protocol.CredentialAssertion{Response: opts}, nil
}

// DecodeCreationOptions decodes the publicKey options of a device registration
// start response; the embedded user id is treated the same way as the challenge
func DecodeCreationOptions(raw []byte) (*protocol.CredentialCreation, error) {
	var creation protocol.CredentialCreation
	if err := json.Unmarshal(raw, &creation); err != nil {
		return nil, errors.ErrCeremonyFailed
	}
	if len(creation.Response.Challenge) == 0 {
		return nil, errors.ErrCeremonyFailed
	}
	if id, ok := creation.Response.User.ID.(string); ok {
		buf, err := DecodeBase64URL(id)
		if err != nil {
			return nil, errors.ErrCeremonyFailed
		}
		creation.Response.User.ID = protocol.URLEncodedBase64(buf)
	}
	return &creation, nil
}

type wireAssertionResponse struct {
	ClientDataJSON    protocol.URLEncodedBase64 `json:"clientDataJSON"`
	AuthenticatorData protocol.URLEncodedBase64 `json:"authenticatorData"`
	Signature         protocol.URLEncodedBase64 `json:"signature"`
	UserHandle        protocol.URLEncodedBase64 `json:"userHandle"`
}

type wireAttestationResponse struct {
	ClientDataJSON    protocol.URLEncodedBase64 `json:"clientDataJSON"`
	AttestationObject protocol.URLEncodedBase64 `json:"attestationObject"`
	Transports        []string                  `json:"transports,omitempty"`
}

type wireCredential struct {
	ClientExtensionResults  map[string]interface{}    `json:"clientExtensionResults"`
	AuthenticatorAttachment *string                   `json:"authenticatorAttachment"`
	ID                      string                    `json:"id"`
	Type                    string                    `json:"type"`
	RawID                   protocol.URLEncodedBase64 `json:"rawId"`
	Response                json.RawMessage           `json:"response"`
}

// MarshalJSON serializes the credential to the plain JSON structure the Auth
// API expects, with every binary field carried as base64url text
func (c *Credential) MarshalJSON() ([]byte, error) {
	if c.IsAssertion() == c.IsAttestation() {
		return nil, errors.ErrCredentialMalformed
	}

	var response json.RawMessage
	var err error
	if c.IsAssertion() {
		response, err = json.Marshal(wireAssertionResponse{
			ClientDataJSON:    c.Assertion.ClientDataJSON,
			AuthenticatorData: c.Assertion.AuthenticatorData,
			Signature:         c.Assertion.Signature,
			UserHandle:        c.Assertion.UserHandle,
		})
	} else {
		response, err = json.Marshal(wireAttestationResponse{
			ClientDataJSON:    c.Attestation.ClientDataJSON,
			AttestationObject: c.Attestation.AttestationObject,
			Transports:        c.Attestation.Transports,
		})
	}
	if err != nil {
		return nil, err
	}

	wire := wireCredential{
		ClientExtensionResults: map[string]interface{}{},
		ID:                     c.ID,
		Type:                   c.Type,
		RawID:                  c.RawID,
		Response:               response,
	}
	if c.AuthenticatorAttachment != "" {
		wire.AuthenticatorAttachment = &c.AuthenticatorAttachment
	}
	return json.Marshal(wire)
}

// UnmarshalJSON picks the assertion or attestation variant based on which
// response fields are present
func (c *Credential) UnmarshalJSON(data []byte) error {
	var wire wireCredential
	if err := json.Unmarshal(data, &wire); err != nil {
		return errors.ErrCredentialMalformed
	}
	if wire.ID == "" || len(wire.Response) == 0 {
		return errors.ErrCredentialMalformed
	}

	c.ID = wire.ID
	c.Type = wire.Type
	c.RawID = wire.RawID
	c.Assertion = nil
	c.Attestation = nil
	if wire.AuthenticatorAttachment != nil {
		c.AuthenticatorAttachment = *wire.AuthenticatorAttachment
	}

	var probe struct {
		Signature         *protocol.URLEncodedBase64 `json:"signature"`
		AttestationObject *protocol.URLEncodedBase64 `json:"attestationObject"`
	}
	if err := json.Unmarshal(wire.Response, &probe); err != nil {
		return errors.ErrCredentialMalformed
	}

	switch {
	case probe.Signature != nil:
		var response wireAssertionResponse
		if err := json.Unmarshal(wire.Response, &response); err != nil {
			return errors.ErrCredentialMalformed
		}
		c.Assertion = &AssertionResponse{
			ClientDataJSON:    response.ClientDataJSON,
			AuthenticatorData: response.AuthenticatorData,
			Signature:         response.Signature,
			UserHandle:        response.UserHandle,
		}
	case probe.AttestationObject != nil:
		var response wireAttestationResponse
		if err := json.Unmarshal(wire.Response, &response); err != nil {
			return errors.ErrCredentialMalformed
		}
		c.Attestation = &AttestationResponse{
			ClientDataJSON:    response.ClientDataJSON,
			AttestationObject: response.AttestationObject,
			Transports:        response.Transports,
		}
	default:
		return errors.ErrCredentialMalformed
	}
	return nil
}
