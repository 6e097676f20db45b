// Package bridge produces the identity assertion that seeds the login
// handshake: an opaque, short lived token bound to a verified email, issued
// by a third party sign in.
package bridge

import "context"

// Assertion is the product of a completed federated sign in. It is valid for
// a single login attempt and must not be persisted beyond the handshake.
type Assertion struct {
	Email   string
	IDToken string
}

// Bridge is the federated identity provider the gateway delegates the first
// authentication factor to
type Bridge interface {
	// AuthCodeURL builds the provider URL the browser is redirected to
	AuthCodeURL(state string) string
	// Exchange trades the callback code for a verified email assertion
	Exchange(ctx context.Context, code string) (*Assertion, error)
}
