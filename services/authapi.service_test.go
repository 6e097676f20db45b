package services_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ebsys/gateway/config"
	"github.com/ebsys/gateway/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func api(srv *httptest.Server) *services.AuthAPI {
	return &services.AuthAPI{
		Env:    &config.Env{APIHost: srv.URL},
		Client: srv.Client(),
	}
}

func TestLoginSendsTheAssertionAsTheBearer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)
		assert.Equal(t, "raw-id-token", r.Header.Get("Authorization"))

		var payload map[string]string
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &payload))
		assert.Equal(t, "jo@example.com", payload["email"])

		json.NewEncoder(w).Encode(map[string]string{"token": "session-token"})
	}))
	defer srv.Close()

	res, err := api(srv).Login(context.Background(), "jo@example.com", "raw-id-token")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "session-token", res.Token)
	assert.False(t, res.MFARequired)
}

func TestLoginReadsTheMFASignalHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Authenticate-MFA", "true")
		w.Header().Set("X-MFA-Flow-ID", "flow-1")
		w.Header().Set("X-MFA-Challenge", "challenge-1")
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	res, err := api(srv).Login(context.Background(), "jo@example.com", "raw-id-token")
	require.NoError(t, err)

	assert.True(t, res.MFARequired)
	assert.Equal(t, "flow-1", res.FlowID)
	assert.Equal(t, "challenge-1", res.Challenge)
	assert.Equal(t, http.StatusUnauthorized, res.Status)
}

func TestLoginWithoutTheSignalHeaderIsAPlainFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "user_not_found"})
	}))
	defer srv.Close()

	res, err := api(srv).Login(context.Background(), "jo@example.com", "raw-id-token")
	require.NoError(t, err)

	assert.False(t, res.MFARequired)
	assert.Equal(t, "user_not_found", res.Error)
}

func TestPasskeyLoginStartEchoesTheCorrelationHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/passkey/login/start", r.URL.Path)
		assert.Equal(t, "raw-id-token", r.Header.Get("Authorization"))
		assert.Equal(t, "true", r.Header.Get("X-Authenticate-MFA"))
		assert.Equal(t, "flow-1", r.Header.Get("X-MFA-Flow-ID"))
		assert.Equal(t, "challenge-1", r.Header.Get("X-MFA-Challenge"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"publicKey": map[string]string{"challenge": "dGVzdC1jaGFsbGVuZ2U"},
		})
	}))
	defer srv.Close()

	status, res, err := api(srv).PasskeyLoginStart(context.Background(), "jo@example.com", services.MFAHeaders{
		IDToken:   "raw-id-token",
		FlowID:    "flow-1",
		Challenge: "challenge-1",
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, status)
	require.NotNil(t, res)
	assert.NotEmpty(t, res.PublicKey)
}

func TestPasskeyLoginFinishSendsTheCredentialVerbatim(t *testing.T) {
	credential := json.RawMessage(`{"id":"AQIDBA","response":{"signature":"c2ln"}}`)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/passkey/login/finish", r.URL.Path)
		assert.Equal(t, "jo@example.com", r.URL.Query().Get("email"))
		assert.Equal(t, "true", r.Header.Get("X-Authenticate-MFA"))

		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, string(credential), string(body))

		json.NewEncoder(w).Encode(map[string]string{"token": "session-token"})
	}))
	defer srv.Close()

	status, res, err := api(srv).PasskeyLoginFinish(context.Background(), "jo@example.com", services.MFAHeaders{
		IDToken: "raw-id-token",
		FlowID:  "flow-1",
	}, credential)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, status)
	require.NotNil(t, res)
	assert.Equal(t, "session-token", res.Token)
}

func TestAccountCallsCarryTheBearerToken(t *testing.T) {
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Method+" "+r.URL.Path)
		assert.Equal(t, "Bearer session-token", r.Header.Get("Authorization"))

		switch r.URL.Path {
		case "/accounts/devices":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"data": []map[string]interface{}{
					{"name": "Pixel 9", "created_at": time.Now()},
				},
			})
		default:
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer srv.Close()

	client := api(srv)
	ctx := context.Background()

	devices, err := client.Devices(ctx, "session-token")
	require.NoError(t, err)
	require.Len(t, devices, 1)
	assert.Equal(t, "Pixel 9", devices[0].Name)

	ok, err := client.RevokeDevice(ctx, "session-token", "Pixel 9")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, client.Logout(ctx, "session-token"))

	assert.Equal(t, []string{
		"GET /accounts/devices",
		"PUT /accounts/devices/revoke",
		"POST /auth/logout",
	}, seen)
}

func TestLogoutTreatsUnauthorizedAsAlreadyRevoked(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	assert.NoError(t, api(srv).Logout(context.Background(), "stale-token"))
}

func TestLogoutFailsOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	assert.Error(t, api(srv).Logout(context.Background(), "session-token"))
}

func TestDeviceRegisterStartReturnsTheRawBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounts/passkey/register/start", r.URL.Path)
		w.Write([]byte(`{"publicKey":{"challenge":"Y3JlYXRlLWNoYWxsZW5nZQ"}}`))
	}))
	defer srv.Close()

	status, body, err := api(srv).DeviceRegisterStart(context.Background(), "session-token")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"publicKey":{"challenge":"Y3JlYXRlLWNoYWxsZW5nZQ"}}`, string(body))
}
