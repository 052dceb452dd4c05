package views

import (
	"fmt"
	"sort"
	"strconv"

	"jansctl/internal/api"
	"jansctl/internal/formatting"
	"jansctl/internal/session"
	jstrings "jansctl/pkg/strings"
)

// ClientsTable lists OpenID Connect clients.
func ClientsTable(items []api.OIDCClient) formatting.Table {
	t := formatting.Table{
		Title: "OpenID Connect Clients",
		Columns: []formatting.Column{
			{Header: "inum"},
			{Header: "name"},
			{Header: "application type"},
			{Header: "status"},
			{Header: "grant types", Wide: true},
			{Header: "redirect uris", Wide: true},
			{Header: "scopes", Wide: true},
		},
	}
	for _, c := range items {
		t.Rows = append(t.Rows, []string{
			c.Inum,
			jstrings.Truncate(c.DisplayName, jstrings.DefaultColumnMaxLen),
			c.ApplicationType,
			enabled(!c.Disabled),
			jstrings.JoinTruncated(c.GrantTypes, jstrings.DefaultColumnMaxLen),
			jstrings.JoinTruncated(c.RedirectURIs, jstrings.DefaultColumnMaxLen),
			strconv.Itoa(len(c.Scopes)),
		})
	}
	return t
}

// ScopesTable lists scopes with the controls perms allows.
func ScopesTable(items []api.Scope, perms session.Permissions) formatting.Table {
	t := formatting.Table{
		Title: "Scopes",
		Columns: []formatting.Column{
			{Header: "inum"},
			{Header: "id"},
			{Header: "type"},
			{Header: "default"},
			{Header: "display name", Wide: true},
			{Header: "description", Wide: true},
		},
		Footer: Permitted(perms, ScopeControls),
	}
	for _, s := range items {
		t.Rows = append(t.Rows, []string{
			s.Inum,
			s.ID,
			s.ScopeType,
			strconv.FormatBool(s.DefaultScope),
			s.DisplayName,
			jstrings.Truncate(s.Description, jstrings.DefaultColumnMaxLen),
		})
	}
	return t
}

// AttributesTable lists attributes with the controls perms allows.
func AttributesTable(items []api.Attribute, perms session.Permissions) formatting.Table {
	t := formatting.Table{
		Title: "Attributes",
		Columns: []formatting.Column{
			{Header: "inum"},
			{Header: "name"},
			{Header: "display name"},
			{Header: "data type"},
			{Header: "status"},
			{Header: "claim", Wide: true},
			{Header: "edit type", Wide: true},
		},
		Footer: Permitted(perms, AttributeControls),
	}
	for _, a := range items {
		t.Rows = append(t.Rows, []string{
			a.Inum,
			a.Name,
			a.DisplayName,
			a.DataType,
			a.Status,
			a.ClaimName,
			jstrings.JoinTruncated(a.EditType, jstrings.DefaultColumnMaxLen),
		})
	}
	return t
}

// ScriptsTable lists custom scripts.
func ScriptsTable(items []api.CustomScript) formatting.Table {
	t := formatting.Table{
		Title: "Custom Scripts",
		Columns: []formatting.Column{
			{Header: "inum"},
			{Header: "name"},
			{Header: "type"},
			{Header: "status"},
			{Header: "language", Wide: true},
			{Header: "level", Wide: true},
			{Header: "revision", Wide: true},
		},
	}
	for _, s := range items {
		t.Rows = append(t.Rows, []string{
			s.Inum,
			jstrings.Truncate(s.Name, jstrings.DefaultColumnMaxLen),
			s.ScriptType,
			enabled(s.Enabled),
			s.ProgrammingLanguage,
			strconv.Itoa(s.Level),
			strconv.Itoa(s.Revision),
		})
	}
	return t
}

// Detail renders one entity as a field/value table with its controls.
func Detail(e api.Entity, perms session.Permissions) formatting.Table {
	var fields map[string]string
	var title string
	switch v := e.(type) {
	case api.Scope:
		title = "Scope " + v.ID
		fields = map[string]string{
			"inum":         v.Inum,
			"id":           v.ID,
			"display name": v.DisplayName,
			"description":  v.Description,
			"type":         v.ScopeType,
			"default":      strconv.FormatBool(v.DefaultScope),
			"claims":       jstrings.JoinTruncated(v.Claims, 80),
		}
	case api.Attribute:
		title = "Attribute " + v.Name
		fields = map[string]string{
			"inum":            v.Inum,
			"name":            v.Name,
			"display name":    v.DisplayName,
			"description":     v.Description,
			"data type":       v.DataType,
			"status":          v.Status,
			"claim":           v.ClaimName,
			"origin":          v.Origin,
			"edit type":       jstrings.JoinTruncated(v.EditType, 80),
			"view type":       jstrings.JoinTruncated(v.ViewType, 80),
			"multi valued":    strconv.FormatBool(v.MultiValued),
			"required":        strconv.FormatBool(v.Required),
			"admin can edit":  strconv.FormatBool(v.AdminCanEdit),
			"user can access": strconv.FormatBool(v.UserCanAccess),
		}
	case api.OIDCClient:
		title = "Client " + v.DisplayName
		fields = map[string]string{
			"inum":             v.Inum,
			"name":             v.DisplayName,
			"application type": v.ApplicationType,
			"status":           enabled(!v.Disabled),
			"auth method":      v.TokenEndpointAuthMethod,
			"grant types":      jstrings.JoinTruncated(v.GrantTypes, 80),
			"redirect uris":    jstrings.JoinTruncated(v.RedirectURIs, 80),
			"trusted":          strconv.FormatBool(v.TrustedClient),
		}
	case api.CustomScript:
		title = "Script " + v.Name
		fields = map[string]string{
			"inum":     v.Inum,
			"name":     v.Name,
			"type":     v.ScriptType,
			"language": v.ProgrammingLanguage,
			"level":    strconv.Itoa(v.Level),
			"revision": strconv.Itoa(v.Revision),
			"status":   enabled(v.Enabled),
		}
	default:
		title = fmt.Sprintf("%s %s", e.EntityKind(), e.EntityInum())
		fields = map[string]string{"inum": e.EntityInum()}
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	t := formatting.Table{
		Title:   title,
		Columns: []formatting.Column{{Header: "field"}, {Header: "value"}},
		Footer:  Permitted(perms, ControlsFor(e.EntityKind())),
	}
	for _, k := range keys {
		t.Rows = append(t.Rows, []string{k, fields[k]})
	}
	return t
}

func enabled(v bool) string {
	if v {
		return "enabled"
	}
	return "disabled"
}
