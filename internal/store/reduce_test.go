package store

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jansctl/internal/actions"
	"jansctl/internal/api"
	"jansctl/internal/session"
	"jansctl/pkg/oauth"
)

// unknownAction is an action no reducer handles.
type unknownAction struct {
	actions.Reset
}

func (unknownAction) Type() actions.Type { return "SOMETHING_ELSE" }

func populated() State {
	s := NewState(session.Session{
		Server:      "https://idp.example.org",
		AccessToken: session.NewSecret("t"),
		Permissions: session.NewPermissions(string(session.ScopesRead)),
	})
	s.Scopes.Items = []api.Scope{{Inum: "S1", ID: "openid"}, {Inum: "S2", ID: "profile"}}
	s.Attributes.Items = []api.Attribute{{Inum: "A1", Name: "uid", Status: api.AttributeStatusActive}}
	s.OIDC.Items = []api.OIDCClient{{Inum: "C1"}}
	s.Scripts.Items = []api.CustomScript{{Inum: "X1", Enabled: true}}
	s.Logging.Config = &api.LoggingConfig{LoggingLevel: "INFO"}
	s.APIError = "previous"
	return s
}

func TestReduce_UnknownActionLeavesStateUnchanged(t *testing.T) {
	before := populated()
	after := Reduce(before, unknownAction{})
	assert.Equal(t, before, after)
}

func TestReduce_SuccessfulFetchReplacesItems(t *testing.T) {
	scopes := []api.Scope{{Inum: "S9", ID: "email"}}
	clients := []api.OIDCClient{{Inum: "C2", Disabled: true}, {Inum: "C3"}}
	attrs := []api.Attribute{}
	scripts := []api.CustomScript{{Inum: "X2"}}

	s := populated()
	s = Reduce(s, actions.GetScopes{})
	assert.True(t, s.Scopes.Loading)
	assert.True(t, s.Loading())

	s = Reduce(s, actions.GetScopesResponse{Scopes: scopes})
	s = Reduce(s, actions.GetOpenIDClientsResponse{Clients: clients})
	s = Reduce(s, actions.GetAttributesResponse{Attributes: attrs})
	s = Reduce(s, actions.GetCustomScriptsResponse{Scripts: scripts})

	assert.Equal(t, scopes, s.Scopes.Items)
	assert.Equal(t, clients, s.OIDC.Items)
	assert.Equal(t, attrs, s.Attributes.Items)
	assert.Equal(t, scripts, s.Scripts.Items)
	assert.False(t, s.Scopes.Loading)
	assert.NoError(t, s.Scopes.Err)
}

func TestReduce_NilPayloadSuccessIsEmptyCollection(t *testing.T) {
	s := Reduce(populated(), actions.GetScopesResponse{})
	require.NotNil(t, s.Scopes.Items)
	assert.Empty(t, s.Scopes.Items)
}

func TestReduce_RejectedKeepsPreviousItems(t *testing.T) {
	boom := errors.New("boom")
	before := populated()

	s := Reduce(before, actions.GetScopes{})
	s = Reduce(s, actions.GetScopesResponse{Result: actions.Fail(boom)})

	assert.Equal(t, before.Scopes.Items, s.Scopes.Items)
	assert.Equal(t, boom, s.Scopes.Err)
	assert.False(t, s.Scopes.Loading)

	// A later success clears the error.
	s = Reduce(s, actions.GetScopesResponse{Scopes: []api.Scope{}})
	assert.NoError(t, s.Scopes.Err)
}

func TestReduce_Idempotent(t *testing.T) {
	resp := actions.GetAttributesResponse{Attributes: []api.Attribute{{Inum: "A7"}}}

	once := Reduce(Reduce(populated(), actions.GetAttributes{}), resp)

	twice := populated()
	for i := 0; i < 2; i++ {
		twice = Reduce(twice, actions.GetAttributes{})
		twice = Reduce(twice, resp)
	}

	assert.Equal(t, once, twice)
}

func TestReduce_DeleteRemovesInum(t *testing.T) {
	before := populated()
	before.Scopes.Item = &api.Scope{Inum: "S1"}

	s := Reduce(before, actions.DeleteScopeResponse{Inum: "S1"})
	assert.Equal(t, []api.Scope{{Inum: "S2", ID: "profile"}}, s.Scopes.Items)
	assert.Nil(t, s.Scopes.Item)

	// The input is not mutated.
	assert.Len(t, before.Scopes.Items, 2)
	assert.Equal(t, "S1", before.Scopes.Items[0].Inum)

	s = Reduce(s, actions.DeleteAttributeResponse{Inum: "A1"})
	assert.Empty(t, s.Attributes.Items)

	failed := Reduce(before, actions.DeleteScopeResponse{Result: actions.Fail(errors.New("x"))})
	assert.Len(t, failed.Scopes.Items, 2)
	assert.Error(t, failed.Scopes.Err)
}

func TestReduce_AttributeUpsert(t *testing.T) {
	s := populated()

	added := &api.Attribute{Inum: "A2", Name: "nickname"}
	s = Reduce(s, actions.AddAttributeResponse{Attribute: added})
	require.Len(t, s.Attributes.Items, 2)
	assert.Equal(t, "A2", s.Attributes.Item.Inum)

	edited := &api.Attribute{Inum: "A1", Name: "uid", Status: api.AttributeStatusInactive}
	s = Reduce(s, actions.EditAttributeResponse{Attribute: edited})
	require.Len(t, s.Attributes.Items, 2)
	assert.Equal(t, api.AttributeStatusInactive, s.Attributes.Items[0].Status)

	// The stored item is a copy.
	edited.Name = "changed"
	assert.Equal(t, "uid", s.Attributes.Item.Name)
}

func TestReduce_GetByInum(t *testing.T) {
	s := Reduce(populated(), actions.GetScopeByInumResponse{Scope: &api.Scope{Inum: "S2"}})
	require.NotNil(t, s.Scopes.Item)
	assert.Equal(t, "S2", s.Scopes.Item.Inum)

	s = Reduce(s, actions.GetAttributeByInumResponse{Result: actions.Fail(errors.New("404"))})
	assert.Nil(t, s.Attributes.Item)
	assert.Error(t, s.Attributes.Err)
}

func TestReduce_SetItem(t *testing.T) {
	s := populated()
	s = Reduce(s, actions.SetItem{Item: api.OIDCClient{Inum: "C1"}})
	s = Reduce(s, actions.SetItem{Item: &api.CustomScript{Inum: "X1"}})

	require.NotNil(t, s.OIDC.Item)
	assert.Equal(t, "C1", s.OIDC.Item.Inum)
	require.NotNil(t, s.Scripts.Item)
	assert.Equal(t, "X1", s.Scripts.Item.Inum)
	assert.Nil(t, s.Scopes.Item)
}

func TestReduce_ResetKeepsAuth(t *testing.T) {
	before := populated()
	s := Reduce(before, actions.Reset{})

	assert.Equal(t, before.Auth, s.Auth)
	assert.Nil(t, s.Scopes.Items)
	assert.Nil(t, s.Logging.Config)
	assert.Empty(t, s.APIError)
}

func TestReduce_SetAPIError(t *testing.T) {
	s := Reduce(populated(), actions.SetAPIError{Message: "GET /scopes: 500"})
	assert.Equal(t, "GET /scopes: 500", s.APIError)
}

func TestReduce_Logging(t *testing.T) {
	s := Reduce(populated(), actions.EditLoggingConfig{})
	assert.True(t, s.Logging.Loading)

	cfg := &api.LoggingConfig{LoggingLevel: "DEBUG", LoggingLayout: "json"}
	s = Reduce(s, actions.EditLoggingConfigResponse{Config: cfg})
	assert.False(t, s.Logging.Loading)
	assert.Equal(t, "DEBUG", s.Logging.Config.LoggingLevel)

	s = Reduce(s, actions.GetLoggingConfigResponse{Result: actions.Fail(errors.New("down"))})
	assert.Equal(t, "DEBUG", s.Logging.Config.LoggingLevel)
	assert.Error(t, s.Logging.Err)
}

func TestReduce_AuthLifecycle(t *testing.T) {
	s := NewState(session.Session{Issuer: "https://idp.example.org"})
	assert.Equal(t, PhaseAnonymous, s.Auth.Phase)

	md := &oauth.Metadata{Issuer: "https://idp.example.org", TokenEndpoint: "https://idp.example.org/token"}
	s = Reduce(s, actions.GetOAuth2ConfigResponse{Metadata: md})
	assert.Equal(t, md, s.Auth.Metadata)

	s = Reduce(s, actions.GetOAuth2AccessToken{})
	assert.Equal(t, PhaseAuthorizing, s.Auth.Phase)

	s = Reduce(s, actions.GetOAuth2AccessTokenResponse{
		AccessToken: session.NewSecret("oauth2"),
		IDToken:     session.NewSecret("id-from-code"),
	})
	assert.Equal(t, "id-from-code", s.Auth.Session.IdentityToken.Value())

	s = Reduce(s, actions.UserinfoResponse{
		IdentityToken: session.NewSecret("userinfo-jwt"),
		User:          &session.Claims{Subject: "admin"},
	})
	assert.Equal(t, "userinfo-jwt", s.Auth.Session.IdentityToken.Value())
	assert.Equal(t, "admin", s.Auth.Session.User.Subject)

	s = Reduce(s, actions.GetAPIAccessToken{IdentityToken: s.Auth.Session.IdentityToken})
	assert.Equal(t, PhaseAuthorizing, s.Auth.Phase)

	expiry := time.Now().Add(time.Hour)
	s = Reduce(s, actions.GetAPIAccessTokenResponse{
		AccessToken: session.NewSecret("api"),
		ExpiresAt:   expiry,
		Scopes:      []string{string(session.LoggingRead)},
	})
	assert.Equal(t, PhaseAuthorized, s.Auth.Phase)
	assert.True(t, s.Auth.Session.Can(session.LoggingRead))
	assert.False(t, s.Auth.Session.Can(session.LoggingWrite))
	assert.Equal(t, expiry, s.Auth.Session.AccessTokenExpiry)

	// A refresh of an authorized session passes through Refreshing.
	s = Reduce(s, actions.GetAPIAccessToken{})
	assert.Equal(t, PhaseRefreshing, s.Auth.Phase)
	assert.Equal(t, "userinfo-jwt", s.Auth.Session.IdentityToken.Value())

	s = Reduce(s, actions.GetAPIAccessTokenResponse{Result: actions.Fail(errors.New("denied"))})
	assert.Equal(t, PhaseFailed, s.Auth.Phase)
	assert.Equal(t, "api", s.Auth.Session.AccessToken.Value())
}
