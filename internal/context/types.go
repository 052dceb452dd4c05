package context

import (
	"fmt"
	"net/url"
	"regexp"
)

// ContextEnvVar is the environment variable name for overriding the current context.
const ContextEnvVar = "JANSCTL_CONTEXT"

const maxContextNameLength = 63

var contextNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*[a-z0-9]$|^[a-z0-9]$`)

// ContextSettings contains optional per-context settings that override the
// global configuration.
type ContextSettings struct {
	// Output is the default output format for this context
	Output string `yaml:"output,omitempty" json:"output,omitempty"`
	// ClientID is the OAuth client registered for this server
	ClientID string `yaml:"client-id,omitempty" json:"clientId,omitempty"`
}

// Context is a named Jans server.
type Context struct {
	Name     string           `yaml:"name"`
	Server   string           `yaml:"server"`
	Issuer   string           `yaml:"issuer,omitempty"`
	Settings *ContextSettings `yaml:"settings,omitempty"`
}

// IssuerURL returns the issuer, falling back to the server URL.
func (c Context) IssuerURL() string {
	if c.Issuer != "" {
		return c.Issuer
	}
	return c.Server
}

// ContextConfig is the root of contexts.yaml.
type ContextConfig struct {
	CurrentContext string    `yaml:"current-context,omitempty"`
	Contexts       []Context `yaml:"contexts,omitempty"`
}

// ContextNotFoundError is returned when a named context does not exist.
type ContextNotFoundError struct {
	Name string
}

func (e *ContextNotFoundError) Error() string {
	return fmt.Sprintf("context %q not found", e.Name)
}

// ValidateContextName checks that name is 1-63 lowercase alphanumerics or
// hyphens, starting and ending with an alphanumeric.
func ValidateContextName(name string) error {
	if name == "" {
		return fmt.Errorf("context name cannot be empty")
	}
	if len(name) > maxContextNameLength {
		return fmt.Errorf("context name cannot exceed %d characters", maxContextNameLength)
	}
	if !contextNamePattern.MatchString(name) {
		return fmt.Errorf("context name must contain only lowercase letters, numbers, and hyphens, and must start and end with an alphanumeric character")
	}
	return nil
}

// ValidateServerURL checks that raw is an absolute http(s) URL.
func ValidateServerURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("server cannot be empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid server URL %q: %w", raw, err)
	}
	if (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
		return fmt.Errorf("server URL %q must be an absolute http or https URL", raw)
	}
	return nil
}

// GetContext returns the context with the given name, or nil if not found.
func (c *ContextConfig) GetContext(name string) *Context {
	for i := range c.Contexts {
		if c.Contexts[i].Name == name {
			return &c.Contexts[i]
		}
	}
	return nil
}

// HasContext returns true if a context with the given name exists.
func (c *ContextConfig) HasContext(name string) bool {
	return c.GetContext(name) != nil
}

// AddOrUpdateContext adds ctx or replaces the context of the same name.
func (c *ContextConfig) AddOrUpdateContext(ctx Context) {
	if existing := c.GetContext(ctx.Name); existing != nil {
		*existing = ctx
		return
	}
	c.Contexts = append(c.Contexts, ctx)
}

// RemoveContext removes the named context and clears CurrentContext if it
// pointed at it. It reports whether the context existed.
func (c *ContextConfig) RemoveContext(name string) bool {
	for i := range c.Contexts {
		if c.Contexts[i].Name != name {
			continue
		}
		c.Contexts = append(c.Contexts[:i], c.Contexts[i+1:]...)
		if c.CurrentContext == name {
			c.CurrentContext = ""
		}
		return true
	}
	return false
}
