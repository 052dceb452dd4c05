package views

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jansctl/internal/actions"
	"jansctl/internal/api"
	"jansctl/internal/session"
	"jansctl/internal/store"
)

func stateWith(perms ...session.Capability) store.State {
	scopes := make([]string, len(perms))
	for i, p := range perms {
		scopes[i] = string(p)
	}
	s := store.NewState(session.Session{
		Server:      "https://jans.example.org",
		AccessToken: session.NewSecret("t"),
		Permissions: session.NewPermissions(scopes...),
	})
	return s
}

func TestPermitted(t *testing.T) {
	tests := []struct {
		name     string
		perms    []session.Capability
		controls []Control
		want     []string
	}{
		{"empty permissions", nil, AttributeControls, nil},
		{"write only", []session.Capability{session.AttributesWrite}, AttributeControls, []string{"add", "edit"}},
		{"delete only", []session.Capability{session.AttributesDelete}, AttributeControls, []string{"delete"}},
		{"read does not grant delete", []session.Capability{session.ScopesRead}, ScopeControls, nil},
		{"exact capability", []session.Capability{session.ScopesDelete}, ScopeControls, []string{"delete"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			perms := stateWith(tt.perms...).Auth.Session.Permissions
			assert.Equal(t, tt.want, Permitted(perms, tt.controls))
		})
	}
}

func TestRefreshActions(t *testing.T) {
	var types []actions.Type
	for _, a := range RefreshActions(stateWith(session.ScopesRead, session.LoggingRead)) {
		types = append(types, a.Type())
	}
	assert.Equal(t, []actions.Type{actions.TypeGetScopes, actions.TypeGetLoggingConfig}, types)

	assert.Empty(t, RefreshActions(stateWith()))
}

func TestLoggingPage_Gating(t *testing.T) {
	cfg := &api.LoggingConfig{LoggingLevel: "INFO", LoggingLayout: "text"}

	t.Run("hidden without read permission", func(t *testing.T) {
		s := stateWith()
		s.Logging.Config = cfg
		page := NewLoggingPage(s)

		assert.Empty(t, page.Controls())
		out := page.Render()
		assert.Contains(t, out, "logging.readonly")
		assert.NotContains(t, out, "INFO")
		assert.NotContains(t, out, "Save")
	})

	t.Run("read only has no save control", func(t *testing.T) {
		s := stateWith(session.LoggingRead)
		s.Logging.Config = cfg
		page := NewLoggingPage(s)

		assert.Empty(t, page.Controls())
		out := page.Render()
		assert.Contains(t, out, "INFO")
		assert.NotContains(t, out, "Save")
	})

	t.Run("write permission renders save", func(t *testing.T) {
		s := stateWith(session.LoggingRead, session.LoggingWrite)
		s.Logging.Config = cfg
		page := NewLoggingPage(s)

		assert.Equal(t, []string{"save"}, page.Controls())
		assert.Contains(t, page.Render(), "Save")
	})

	t.Run("load failure", func(t *testing.T) {
		s := stateWith(session.LoggingRead)
		s.Logging.Err = errors.New("boom")
		assert.Contains(t, NewLoggingPage(s).Render(), "boom")
	})
}

func TestLoggingForm_Submit(t *testing.T) {
	current := api.LoggingConfig{
		LoggingLevel:             "INFO",
		LoggingLayout:            "text",
		HTTPLoggingEnabled:       true,
		EnabledOAuthAuditLogging: true,
		HTTPLoggingExcludePaths:  []string{"/health"},
	}
	off := false

	act, err := LoggingForm{Level: "debug", HTTPLogging: &off}.Submit(current)
	require.NoError(t, err)

	assert.Equal(t, "DEBUG", act.Config.LoggingLevel)
	assert.Equal(t, "text", act.Config.LoggingLayout)
	assert.False(t, act.Config.HTTPLoggingEnabled)
	assert.True(t, act.Config.EnabledOAuthAuditLogging, "unset booleans keep the current value")
	assert.False(t, act.Config.DisableJdkLogger)
	assert.Equal(t, []string{"/health"}, act.Config.HTTPLoggingExcludePaths)

	act.Config.HTTPLoggingExcludePaths[0] = "/changed"
	assert.Equal(t, "/health", current.HTTPLoggingExcludePaths[0])
}

func TestLoggingForm_Validate(t *testing.T) {
	assert.NoError(t, LoggingForm{}.Validate())
	assert.NoError(t, LoggingForm{Level: "trace", Layout: "JSON"}.Validate())
	assert.ErrorContains(t, LoggingForm{Level: "verbose"}.Validate(), "invalid log level")
	assert.ErrorContains(t, LoggingForm{Layout: "xml"}.Validate(), "invalid log layout")

	_, err := LoggingForm{Level: "verbose"}.Submit(api.LoggingConfig{})
	assert.Error(t, err)
}

func TestReports(t *testing.T) {
	s := stateWith(session.ClientsRead, session.AttributesRead, session.ScopesRead)
	s.OIDC.Items = []api.OIDCClient{{Inum: "1"}, {Inum: "2", Disabled: true}}
	s.Attributes.Items = []api.Attribute{
		{Inum: "a", Status: api.AttributeStatusActive},
		{Inum: "b", Status: api.AttributeStatusInactive},
		{Inum: "c", Status: api.AttributeStatusActive},
	}
	s.Scopes.Items = []api.Scope{{Inum: "s1", ScopeType: api.ScopeTypeOAuth}, {Inum: "s2", ScopeType: api.ScopeTypeOpenID}}
	s.Scripts.Items = []api.CustomScript{{Inum: "x", Enabled: true}}

	cards := Reports(s)
	require.Len(t, cards, 4)

	assert.Equal(t, [2]int{2, 1}, [2]int{cards[0].Total, cards[0].Count})
	assert.Equal(t, [2]int{3, 2}, [2]int{cards[1].Total, cards[1].Count})
	assert.Equal(t, [2]int{2, 1}, [2]int{cards[2].Total, cards[2].Count})
	assert.True(t, cards[3].Denied, "scripts need scripts.readonly")

	out := RenderReports(cards, 0)
	assert.Contains(t, out, "OpenID Connect Clients")
	assert.Contains(t, out, "no access")
	assert.Equal(t, 1, strings.Count(out, "Custom Scripts"))

	narrow := RenderReports(cards, 40)
	assert.Greater(t, strings.Count(narrow, "\n"), strings.Count(out, "\n"))
}

func TestScopesTable_Controls(t *testing.T) {
	items := []api.Scope{{Inum: "1", ID: "openid", ScopeType: "openid"}}

	assert.Empty(t, ScopesTable(items, session.Permissions{}).Footer)
	assert.Equal(t, []string{"delete"}, ScopesTable(items, stateWith(session.ScopesDelete).Auth.Session.Permissions).Footer)

	headers, rows := ScopesTable(items, session.Permissions{}).Project(false)
	assert.Equal(t, []string{"inum", "id", "type", "default"}, headers)
	assert.Equal(t, [][]string{{"1", "openid", "openid", "false"}}, rows)
}

func TestDetail(t *testing.T) {
	attr := api.Attribute{Inum: "B1", Name: "nickname", Status: "ACTIVE"}

	tbl := Detail(attr, session.Permissions{})
	assert.Equal(t, "Attribute nickname", tbl.Title)
	assert.Empty(t, tbl.Footer)

	tbl = Detail(attr, stateWith(session.AttributesWrite).Auth.Session.Permissions)
	assert.Equal(t, []string{"add", "edit"}, tbl.Footer)

	found := false
	for _, row := range tbl.Rows {
		if row[0] == "status" {
			found = true
			assert.Equal(t, "ACTIVE", row[1])
		}
	}
	assert.True(t, found)
}

func TestHeader(t *testing.T) {
	s := stateWith(session.ScopesRead)
	s.APIError = "server exploded"
	out := Header(s)
	assert.Contains(t, out, "https://jans.example.org")
	assert.Contains(t, out, "anonymous")
	assert.Contains(t, out, "1 scopes")
	assert.Contains(t, out, "server exploded")
}
