package session

import (
	"sort"
	"strings"
)

// Capability is a scope URI granted to the API access token.
type Capability string

const capabilityPrefix = "https://jans.io/oauth/config/"

// Capabilities checked by the console before rendering or dispatching writes.
const (
	ClientsRead   Capability = capabilityPrefix + "openid/clients.readonly"
	ClientsWrite  Capability = capabilityPrefix + "openid/clients.write"
	ClientsDelete Capability = capabilityPrefix + "openid/clients.delete"

	ScopesRead   Capability = capabilityPrefix + "scopes.readonly"
	ScopesWrite  Capability = capabilityPrefix + "scopes.write"
	ScopesDelete Capability = capabilityPrefix + "scopes.delete"

	AttributesRead   Capability = capabilityPrefix + "attributes.readonly"
	AttributesWrite  Capability = capabilityPrefix + "attributes.write"
	AttributesDelete Capability = capabilityPrefix + "attributes.delete"

	ScriptsRead  Capability = capabilityPrefix + "scripts.readonly"
	ScriptsWrite Capability = capabilityPrefix + "scripts.write"

	LoggingRead  Capability = capabilityPrefix + "logging.readonly"
	LoggingWrite Capability = capabilityPrefix + "logging.write"
)

// AllCapabilities lists every capability the console knows, in a stable
// order. It is the default scope request when minting an API token.
func AllCapabilities() []Capability {
	return []Capability{
		ClientsRead, ClientsWrite, ClientsDelete,
		ScopesRead, ScopesWrite, ScopesDelete,
		AttributesRead, AttributesWrite, AttributesDelete,
		ScriptsRead, ScriptsWrite,
		LoggingRead, LoggingWrite,
	}
}

// Short returns the capability without the common URI prefix.
func (c Capability) Short() string {
	return strings.TrimPrefix(string(c), capabilityPrefix)
}

// Permissions is an immutable set of capabilities. The zero value is the
// empty set.
type Permissions struct {
	set map[Capability]struct{}
}

// NewPermissions builds a set from scope strings, ignoring blanks.
func NewPermissions(scopes ...string) Permissions {
	set := make(map[Capability]struct{}, len(scopes))
	for _, s := range scopes {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		set[Capability(s)] = struct{}{}
	}
	return Permissions{set: set}
}

// Has reports whether c is granted.
func (p Permissions) Has(c Capability) bool {
	_, ok := p.set[c]
	return ok
}

// HasAny reports whether at least one of caps is granted.
func (p Permissions) HasAny(caps ...Capability) bool {
	for _, c := range caps {
		if p.Has(c) {
			return true
		}
	}
	return false
}

// Len returns the number of granted capabilities.
func (p Permissions) Len() int {
	return len(p.set)
}

// List returns the granted capabilities sorted.
func (p Permissions) List() []string {
	out := make([]string, 0, len(p.set))
	for c := range p.set {
		out = append(out, string(c))
	}
	sort.Strings(out)
	return out
}
