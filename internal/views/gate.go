package views

import (
	"jansctl/internal/actions"
	"jansctl/internal/api"
	"jansctl/internal/session"
	"jansctl/internal/store"
)

// Control is an action a view can offer, together with the capability it
// requires.
type Control struct {
	Name       string
	Capability session.Capability
}

// Controls offered per entity kind.
var (
	ScopeControls = []Control{
		{Name: "delete", Capability: session.ScopesDelete},
	}
	AttributeControls = []Control{
		{Name: "add", Capability: session.AttributesWrite},
		{Name: "edit", Capability: session.AttributesWrite},
		{Name: "delete", Capability: session.AttributesDelete},
	}
	LoggingControls = []Control{
		{Name: "save", Capability: session.LoggingWrite},
	}
)

// readCapability maps an entity kind to the capability needed to list it.
var readCapability = map[api.Kind]session.Capability{
	api.KindOIDCClient:   session.ClientsRead,
	api.KindScope:        session.ScopesRead,
	api.KindAttribute:    session.AttributesRead,
	api.KindCustomScript: session.ScriptsRead,
}

// ReadCapability returns the capability needed to view kind.
func ReadCapability(kind api.Kind) session.Capability {
	return readCapability[kind]
}

// Permitted returns the names of the controls perms allows, in order.
func Permitted(perms session.Permissions, controls []Control) []string {
	var out []string
	for _, c := range controls {
		if perms.Has(c.Capability) {
			out = append(out, c.Name)
		}
	}
	return out
}

// Allows reports whether perms grants the named control.
func Allows(perms session.Permissions, controls []Control, name string) bool {
	for _, c := range controls {
		if c.Name == name {
			return perms.Has(c.Capability)
		}
	}
	return false
}

// ControlsFor returns the controls of kind.
func ControlsFor(kind api.Kind) []Control {
	switch kind {
	case api.KindScope:
		return ScopeControls
	case api.KindAttribute:
		return AttributeControls
	default:
		return nil
	}
}

// RefreshActions returns the fetches for every collection the session can
// read.
func RefreshActions(s store.State) []actions.Action {
	perms := s.Auth.Session.Permissions
	var out []actions.Action
	if perms.Has(session.ClientsRead) {
		out = append(out, actions.GetOpenIDClients{})
	}
	if perms.Has(session.AttributesRead) {
		out = append(out, actions.GetAttributes{})
	}
	if perms.Has(session.ScopesRead) {
		out = append(out, actions.GetScopes{})
	}
	if perms.Has(session.ScriptsRead) {
		out = append(out, actions.GetCustomScripts{})
	}
	if perms.Has(session.LoggingRead) {
		out = append(out, actions.GetLoggingConfig{})
	}
	return out
}
