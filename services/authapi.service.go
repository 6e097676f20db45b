// Package services contains the outbound calls the gateway makes to the Auth API
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/ebsys/gateway/config"
	"github.com/ebsys/gateway/logger"
	"github.com/ebsys/gateway/schemas"
)

// AuthAPI struct contains the services that talk to the remote Auth API
type AuthAPI struct {
	Env *config.Env

	// Client overrides the transport, mostly from tests
	Client *http.Client
}

// MFAHeaders are the correlation artifacts echoed verbatim on the passkey
// login round trips
type MFAHeaders struct {
	IDToken   string
	FlowID    string
	Challenge string
}

// LoginResult is the parsed outcome of the primary login call
type LoginResult struct {
	Status      int
	Token       string
	Error       string
	MFARequired bool
	FlowID      string
	Challenge   string
}

func (a *AuthAPI) httpClient() *http.Client {
	if a.Client != nil {
		return a.Client
	}
	return &http.Client{
		Timeout: 30 * time.Second,
	}
}

func (a *AuthAPI) do(ctx context.Context, method, path string, query url.Values, headers map[string]string, payload interface{}) (*http.Response, []byte, error) {
	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return nil, nil, err
		}
		body = bytes.NewReader(buf)
	}

	endpoint := fmt.Sprintf("%s%s", a.Env.APIHost, path)
	if len(query) > 0 {
		endpoint = fmt.Sprintf("%s?%s", endpoint, query.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	res, err := a.httpClient().Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, nil, err
	}

	logger.Debug(fmt.Sprintf("%s %s -> %d", method, path, res.StatusCode))
	return res, resBody, nil
}

// Login is a function that is used to login the user with the federated
// identity assertion as the bearer credential. An unauthorized response that
// carries the MFA signal header is not an error; it is reported through
// MFARequired together with the flow correlation headers.
func (a *AuthAPI) Login(ctx context.Context, email, idToken string) (*LoginResult, error) {
	res, body, err := a.do(ctx, http.MethodPost, "/auth/login", nil, map[string]string{
		"Authorization": idToken,
	}, map[string]string{
		"email": email,
	})
	if err != nil {
		return nil, err
	}

	result := LoginResult{Status: res.StatusCode}
	if res.StatusCode == http.StatusUnauthorized && res.Header.Get("X-Authenticate-MFA") == "true" {
		result.MFARequired = true
		result.FlowID = res.Header.Get("X-MFA-Flow-ID")
		result.Challenge = res.Header.Get("X-MFA-Challenge")
		return &result, nil
	}

	var parsed schemas.LoginRes
	if err := json.Unmarshal(body, &parsed); err == nil {
		result.Token = parsed.Token
		result.Error = parsed.Error
	}
	return &result, nil
}

// Register is a function that is used to register a new account for a
// federated identity
func (a *AuthAPI) Register(ctx context.Context, email, idToken string) (int, *schemas.RegisterRes, error) {
	res, body, err := a.do(ctx, http.MethodPost, "/auth/register", nil, map[string]string{
		"Authorization": idToken,
	}, map[string]string{
		"email": email,
	})
	if err != nil {
		return 0, nil, err
	}

	var parsed schemas.RegisterRes
	if err := json.Unmarshal(body, &parsed); err != nil && res.StatusCode == http.StatusOK {
		return res.StatusCode, nil, err
	}
	return res.StatusCode, &parsed, nil
}

func (h MFAHeaders) headers() map[string]string {
	return map[string]string{
		"Authorization":      h.IDToken,
		"X-MFA-Flow-ID":      h.FlowID,
		"X-Authenticate-MFA": "true",
		"X-MFA-Challenge":    h.Challenge,
	}
}

// PasskeyLoginStart is a function that is used to begin the passkey login
// ceremony for the given email
func (a *AuthAPI) PasskeyLoginStart(ctx context.Context, email string, mfa MFAHeaders) (int, *schemas.PasskeyLoginRes, error) {
	res, body, err := a.do(ctx, http.MethodPost, "/passkey/login/start", nil, mfa.headers(), map[string]string{
		"email": email,
	})
	if err != nil {
		return 0, nil, err
	}

	var parsed schemas.PasskeyLoginRes
	if err := json.Unmarshal(body, &parsed); err != nil && res.StatusCode == http.StatusOK {
		return res.StatusCode, nil, err
	}
	return res.StatusCode, &parsed, nil
}

// PasskeyLoginFinish is a function that is used to finish the passkey login
// ceremony; credential is the serialized assertion and must be sent as is
func (a *AuthAPI) PasskeyLoginFinish(ctx context.Context, email string, mfa MFAHeaders, credential json.RawMessage) (int, *schemas.PasskeyLoginRes, error) {
	res, body, err := a.do(ctx, http.MethodPost, "/passkey/login/finish", url.Values{
		"email": []string{email},
	}, mfa.headers(), credential)
	if err != nil {
		return 0, nil, err
	}

	var parsed schemas.PasskeyLoginRes
	if err := json.Unmarshal(body, &parsed); err != nil && res.StatusCode == http.StatusOK {
		return res.StatusCode, nil, err
	}
	return res.StatusCode, &parsed, nil
}

func bearer(token string) map[string]string {
	return map[string]string{
		"Authorization": fmt.Sprintf("Bearer %s", token),
	}
}

// DeviceRegisterStart is a function that is used to begin registering a new
// credential on an already authenticated account. The raw body is returned so
// the ceremony codec can decode the creation options.
func (a *AuthAPI) DeviceRegisterStart(ctx context.Context, sessionToken string) (int, []byte, error) {
	res, body, err := a.do(ctx, http.MethodPost, "/accounts/passkey/register/start", nil, bearer(sessionToken), nil)
	if err != nil {
		return 0, nil, err
	}
	return res.StatusCode, body, nil
}

// DeviceRegisterFinish is a function that is used to finish registering a new credential
func (a *AuthAPI) DeviceRegisterFinish(ctx context.Context, sessionToken string, credential json.RawMessage) (bool, error) {
	res, _, err := a.do(ctx, http.MethodPost, "/accounts/passkey/register/finish", nil, bearer(sessionToken), credential)
	if err != nil {
		return false, err
	}
	return res.StatusCode == http.StatusOK, nil
}

// Devices is a function that is used to list the registered MFA devices
func (a *AuthAPI) Devices(ctx context.Context, sessionToken string) ([]schemas.MFADevice, error) {
	res, body, err := a.do(ctx, http.MethodGet, "/accounts/devices", nil, bearer(sessionToken), nil)
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		return []schemas.MFADevice{}, nil
	}

	var parsed schemas.DevicesRes
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, err
	}
	return parsed.Data, nil
}

// RevokeDevice is a function that is used to revoke a registered MFA device
func (a *AuthAPI) RevokeDevice(ctx context.Context, sessionToken, name string) (bool, error) {
	res, _, err := a.do(ctx, http.MethodPut, "/accounts/devices/revoke", nil, bearer(sessionToken), map[string]string{
		"name": name,
	})
	if err != nil {
		return false, err
	}
	return res.StatusCode == http.StatusOK, nil
}

// Logout is a function that is used to revoke the session server side. A
// session the server no longer recognizes counts as already revoked.
func (a *AuthAPI) Logout(ctx context.Context, sessionToken string) error {
	res, _, err := a.do(ctx, http.MethodPost, "/auth/logout", nil, bearer(sessionToken), nil)
	if err != nil {
		return err
	}
	if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusUnauthorized {
		return fmt.Errorf("logout failed with status %d", res.StatusCode)
	}
	return nil
}

// RequestVerificationCode is a function that is used to request a fallback
// verification code for the given email
func (a *AuthAPI) RequestVerificationCode(ctx context.Context, sessionToken, email string) (bool, error) {
	res, _, err := a.do(ctx, http.MethodPost, "/passkey/login/request_code", nil, bearer(sessionToken), map[string]string{
		"email": email,
	})
	if err != nil {
		return false, err
	}
	return res.StatusCode == http.StatusOK, nil
}

// VerifyVerificationCode is a function that is used to verify a fallback
// verification code for the given email
func (a *AuthAPI) VerifyVerificationCode(ctx context.Context, sessionToken, email, code string) (bool, error) {
	res, _, err := a.do(ctx, http.MethodPost, "/passkey/login/verify_code", nil, bearer(sessionToken), map[string]string{
		"email": email,
		"code":  code,
	})
	if err != nil {
		return false, err
	}
	return res.StatusCode == http.StatusOK, nil
}
