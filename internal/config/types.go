package config

import "time"

// Config is the content of config.yaml.
type Config struct {
	// Server is the base URL of the Jans server hosting the config API.
	Server string `yaml:"server,omitempty"`
	// Issuer is the OpenID issuer; defaults to Server.
	Issuer string `yaml:"issuer,omitempty"`

	ClientID     string `yaml:"client-id,omitempty"`
	ClientSecret string `yaml:"client-secret,omitempty"`

	// Grant selects how the API access token is minted: ujwt,
	// token-exchange or dex.
	Grant        string `yaml:"grant,omitempty"`
	DexConnector string `yaml:"dex-connector,omitempty"`

	// Scopes are requested for the API access token. Empty requests every
	// config API scope jansctl knows about.
	Scopes []string `yaml:"scopes,omitempty"`

	CallbackPort int           `yaml:"callback-port,omitempty"`
	Output       string        `yaml:"output,omitempty"`
	Timeout      time.Duration `yaml:"timeout,omitempty"`

	// TokenFile is watched for the identity token.
	TokenFile string `yaml:"token-file,omitempty"`
}

// IssuerURL returns Issuer, falling back to Server.
func (c Config) IssuerURL() string {
	if c.Issuer != "" {
		return c.Issuer
	}
	return c.Server
}
