package config

import (
	"time"

	"jansctl/pkg/oauth"
)

const (
	// DefaultClientID is the client the Jans admin UI registers.
	DefaultClientID = "2000.admin-ui"
	// DefaultOutput is the default output format.
	DefaultOutput = "table"
	// DefaultTimeout bounds each config API request.
	DefaultTimeout = 30 * time.Second
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ClientID:     DefaultClientID,
		Grant:        string(oauth.GrantUJWT),
		CallbackPort: oauth.DefaultCallbackPort,
		Output:       DefaultOutput,
		Timeout:      DefaultTimeout,
	}
}
