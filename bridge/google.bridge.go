package bridge

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/ebsys/gateway/errors"
	"golang.org/x/oauth2"
)

const googleIssuer = "https://accounts.google.com"

// Google is the Google OIDC implementation of the identity bridge
type Google struct {
	oauthConfig *oauth2.Config
	verifier    *oidc.IDTokenVerifier
}

// NewGoogle is a function that is used to initialize the Google identity bridge
func NewGoogle(ctx context.Context, clientID, clientSecret, redirectURL string) (*Google, error) {
	if clientID == "" || clientSecret == "" || redirectURL == "" {
		return nil, fmt.Errorf("google oauth config missing required fields")
	}

	provider, err := oidc.NewProvider(ctx, googleIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to init google oidc provider: %w", err)
	}

	return &Google{
		oauthConfig: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes: []string{
				oidc.ScopeOpenID,
				"email",
			},
		},
		verifier: provider.Verifier(&oidc.Config{
			ClientID: clientID,
		}),
	}, nil
}

// AuthCodeURL builds the Google authorization URL for the given state
func (g *Google) AuthCodeURL(state string) string {
	return g.oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange trades the callback code for a verified email assertion
func (g *Google) Exchange(ctx context.Context, code string) (*Assertion, error) {
	oauthToken, err := g.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, errors.ErrFederatedAuthFailed
	}

	rawIDToken, ok := oauthToken.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, errors.ErrFederatedAuthFailed
	}

	idToken, err := g.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, errors.ErrFederatedAuthFailed
	}

	var claims struct {
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, errors.ErrFederatedAuthFailed
	}
	if claims.Email == "" || !claims.EmailVerified {
		return nil, errors.ErrFederatedAuthFailed
	}

	return &Assertion{
		Email:   claims.Email,
		IDToken: rawIDToken,
	}, nil
}
