package actions

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// all holds one value of every catalog entry.
var all = []Action{
	GetOAuth2Config{}, GetOAuth2ConfigResponse{},
	GetOAuth2AccessToken{}, GetOAuth2AccessTokenResponse{},
	GetAPIAccessToken{}, GetAPIAccessTokenResponse{},
	UserinfoRequest{}, UserinfoResponse{},
	GetScopes{}, GetScopesResponse{},
	GetScopeByInum{}, GetScopeByInumResponse{},
	DeleteScope{}, DeleteScopeResponse{},
	GetAttributes{}, GetAttributesResponse{},
	AddAttribute{}, AddAttributeResponse{},
	EditAttribute{}, EditAttributeResponse{},
	GetAttributeByInum{}, GetAttributeByInumResponse{},
	DeleteAttribute{}, DeleteAttributeResponse{},
	GetOpenIDClients{}, GetOpenIDClientsResponse{},
	GetCustomScripts{}, GetCustomScriptsResponse{},
	GetLoggingConfig{}, GetLoggingConfigResponse{},
	EditLoggingConfig{}, EditLoggingConfigResponse{},
	SetAPIError{}, Reset{}, SetItem{},
}

func TestCatalog_Unique(t *testing.T) {
	seen := map[Type]bool{}
	for _, typ := range Catalog() {
		assert.False(t, seen[typ], "duplicate action type %s", typ)
		seen[typ] = true
	}
}

func TestCatalog_EveryActionListed(t *testing.T) {
	catalog := map[Type]bool{}
	for _, typ := range Catalog() {
		catalog[typ] = true
	}

	types := map[Type]bool{}
	for _, a := range all {
		assert.True(t, catalog[a.Type()], "%T reports %s which is not in the catalog", a, a.Type())
		assert.False(t, types[a.Type()], "%T shares its type with another action", a)
		types[a.Type()] = true
	}
	assert.Len(t, types, len(Catalog()))
}

func TestCatalog_ResponsesImplementResponse(t *testing.T) {
	for _, a := range all {
		_, isResponse := a.(Response)
		assert.Equal(t, a.Type().IsResponse(), isResponse, "%T", a)
	}
}

func TestType_ResponseType(t *testing.T) {
	tests := []struct {
		in   Type
		want Type
	}{
		{TypeGetScopes, TypeGetScopesResponse},
		{TypeDeleteAttribute, TypeDeleteAttributeResponse},
		{TypeUserinfoRequest, TypeUserinfoResponse},
		{TypeGetAPIAccessToken, TypeGetAPIAccessTokenResponse},
		{TypeEditLoggingConfig, TypeEditLoggingConfigResponse},
		{TypeGetScopesResponse, ""},
		{TypeReset, ""},
		{TypeSetItem, ""},
		{Type("UNKNOWN"), ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.ResponseType())
			assert.Equal(t, tt.want != "", tt.in.IsRequest())
		})
	}
}

func TestResult(t *testing.T) {
	ok := GetScopesResponse{}
	assert.NoError(t, ok.Failure())
	assert.False(t, ok.Rejected())

	boom := errors.New("boom")
	failed := GetScopesResponse{Result: Fail(boom)}
	assert.Equal(t, boom, failed.Failure())
	assert.True(t, failed.Rejected())
	assert.Nil(t, failed.Scopes)
}
