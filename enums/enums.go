// Package enums contains enums
package enums

const (
	// SysHealth -> denotes the health status of the system
	SysHealth = "health"

	// RevokePhrase -> the phrase the user must type before a credential is revoked
	RevokePhrase = "revoke"
)
