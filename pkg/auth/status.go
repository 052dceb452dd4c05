package auth

import "time"

// StatusResponse describes the session of one jansctl invocation.
type StatusResponse struct {
	// Server is the config API base URL.
	Server string `json:"server"`
	Issuer string `json:"issuer,omitempty"`

	// Context is the named context that selected Server, if any.
	Context string `json:"context,omitempty"`

	// Phase is one of: "anonymous", "authorizing", "authorized",
	// "refreshing", "failed"
	Phase string `json:"phase"`

	Authenticated bool `json:"authenticated"`

	// User is present when an identity token is held
	User *UserStatus `json:"user,omitempty"`

	// AccessTokenExpiry is nil when the server did not report a lifetime
	AccessTokenExpiry *time.Time `json:"access_token_expiry,omitempty"`

	// Capabilities lists every known config API scope and whether the
	// access token carries it.
	Capabilities []CapabilityStatus `json:"capabilities,omitempty"`

	// Error is present when Phase == "failed"
	Error string `json:"error,omitempty"`
}

// UserStatus is the identity decoded from the identity token.
type UserStatus struct {
	Subject   string     `json:"sub"`
	Name      string     `json:"name,omitempty"`
	Email     string     `json:"email,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// CapabilityStatus reports one config API scope.
type CapabilityStatus struct {
	Scope   string `json:"scope"`
	Short   string `json:"short"`
	Granted bool   `json:"granted"`
}

// Granted returns the short names of the granted capabilities.
func (s StatusResponse) Granted() []string {
	var out []string
	for _, c := range s.Capabilities {
		if c.Granted {
			out = append(out, c.Short)
		}
	}
	return out
}
