// Package schemas contains the wire shapes exchanged with the browser and the Auth API
package schemas

// Res is the generic status envelope returned by the gateway
type Res struct {
	Status string `json:"status"`
}
