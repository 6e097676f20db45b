// Package config contains the gateway configuration
package config

// DevEnv names the runtime mode the gateway is started in
type DevEnv string

const (
	// Prod defines the production mode
	Prod DevEnv = "PROD"
	// Dev defines the development mode
	Dev DevEnv = "DEV"
	// Test defines the mode the test suites run under
	Test DevEnv = "TEST"
)

// Mode reports the runtime mode the gateway was configured with
func (e *Env) Mode() DevEnv {
	switch e.DevEnv {
	case string(Prod):
		return Prod
	case string(Dev):
		return Dev
	default:
		return Test
	}
}
