package schemas

import (
	"encoding/json"
	"time"
)

// LoginRes is the body of the Auth API primary login response
type LoginRes struct {
	Token string `json:"token"`
	Error string `json:"error"`
}

// PasskeyLoginRes is the body of the Auth API passkey login start and finish responses;
// PublicKey is only present on start, Token only on finish
type PasskeyLoginRes struct {
	Token     string          `json:"token"`
	Error     string          `json:"error"`
	PublicKey json.RawMessage `json:"publicKey"`
}

// RegisterRes is the body of the Auth API account registration response
type RegisterRes struct {
	UID   string `json:"uid"`
	Error string `json:"error"`
}

// MFADevice is a registered credential as listed by the Auth API
type MFADevice struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// DevicesRes is the body of the Auth API device listing response
type DevicesRes struct {
	Data []MFADevice `json:"data"`
}
