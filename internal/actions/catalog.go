package actions

import "strings"

// Type is the catalog identifier of an action.
type Type string

// Auth.
const (
	TypeGetOAuth2Config              Type = "GET_OAUTH2_CONFIG"
	TypeGetOAuth2ConfigResponse      Type = "GET_OAUTH2_CONFIG_RESPONSE"
	TypeGetOAuth2AccessToken         Type = "GET_OAUTH2_ACCESS_TOKEN"
	TypeGetOAuth2AccessTokenResponse Type = "GET_OAUTH2_ACCESS_TOKEN_RESPONSE"
	TypeGetAPIAccessToken            Type = "GET_API_ACCESS_TOKEN"
	TypeGetAPIAccessTokenResponse    Type = "GET_API_ACCESS_TOKEN_RESPONSE"
	TypeUserinfoRequest              Type = "USERINFO_REQUEST"
	TypeUserinfoResponse             Type = "USERINFO_RESPONSE"
)

// Scopes.
const (
	TypeGetScopes              Type = "GET_SCOPES"
	TypeGetScopesResponse      Type = "GET_SCOPES_RESPONSE"
	TypeGetScopeByInum         Type = "GET_SCOPE_BY_INUM"
	TypeGetScopeByInumResponse Type = "GET_SCOPE_BY_INUM_RESPONSE"
	TypeDeleteScope            Type = "DELETE_SCOPE"
	TypeDeleteScopeResponse    Type = "DELETE_SCOPE_RESPONSE"
)

// Attributes.
const (
	TypeGetAttributes              Type = "GET_ATTRIBUTES"
	TypeGetAttributesResponse      Type = "GET_ATTRIBUTES_RESPONSE"
	TypeAddAttribute               Type = "ADD_ATTRIBUTE"
	TypeAddAttributeResponse       Type = "ADD_ATTRIBUTE_RESPONSE"
	TypeEditAttribute              Type = "EDIT_ATTRIBUTE"
	TypeEditAttributeResponse      Type = "EDIT_ATTRIBUTE_RESPONSE"
	TypeGetAttributeByInum         Type = "GET_ATTRIBUTE_BY_INUM"
	TypeGetAttributeByInumResponse Type = "GET_ATTRIBUTE_BY_INUM_RESPONSE"
	TypeDeleteAttribute            Type = "DELETE_ATTRIBUTE"
	TypeDeleteAttributeResponse    Type = "DELETE_ATTRIBUTE_RESPONSE"
)

// OpenID clients, custom scripts and logging.
const (
	TypeGetOpenIDClients          Type = "GET_OPENID_CLIENTS"
	TypeGetOpenIDClientsResponse  Type = "GET_OPENID_CLIENTS_RESPONSE"
	TypeGetCustomScripts          Type = "GET_CUSTOM_SCRIPTS"
	TypeGetCustomScriptsResponse  Type = "GET_CUSTOM_SCRIPTS_RESPONSE"
	TypeGetLoggingConfig          Type = "GET_LOGGING_CONFIG"
	TypeGetLoggingConfigResponse  Type = "GET_LOGGING_CONFIG_RESPONSE"
	TypeEditLoggingConfig         Type = "EDIT_LOGGING_CONFIG"
	TypeEditLoggingConfigResponse Type = "EDIT_LOGGING_CONFIG_RESPONSE"
)

// Misc.
const (
	TypeSetAPIError Type = "SET_API_ERROR"
	TypeReset       Type = "RESET"
	TypeSetItem     Type = "SET_ITEM"
)

const responseSuffix = "_RESPONSE"

// Catalog returns every action type.
func Catalog() []Type {
	return []Type{
		TypeGetOAuth2Config, TypeGetOAuth2ConfigResponse,
		TypeGetOAuth2AccessToken, TypeGetOAuth2AccessTokenResponse,
		TypeGetAPIAccessToken, TypeGetAPIAccessTokenResponse,
		TypeUserinfoRequest, TypeUserinfoResponse,

		TypeGetScopes, TypeGetScopesResponse,
		TypeGetScopeByInum, TypeGetScopeByInumResponse,
		TypeDeleteScope, TypeDeleteScopeResponse,

		TypeGetAttributes, TypeGetAttributesResponse,
		TypeAddAttribute, TypeAddAttributeResponse,
		TypeEditAttribute, TypeEditAttributeResponse,
		TypeGetAttributeByInum, TypeGetAttributeByInumResponse,
		TypeDeleteAttribute, TypeDeleteAttributeResponse,

		TypeGetOpenIDClients, TypeGetOpenIDClientsResponse,
		TypeGetCustomScripts, TypeGetCustomScriptsResponse,
		TypeGetLoggingConfig, TypeGetLoggingConfigResponse,
		TypeEditLoggingConfig, TypeEditLoggingConfigResponse,

		TypeSetAPIError, TypeReset, TypeSetItem,
	}
}

// IsResponse reports whether t is a _RESPONSE entry.
func (t Type) IsResponse() bool {
	return strings.HasSuffix(string(t), responseSuffix)
}

// ResponseType returns the _RESPONSE twin of a request type, or "" when t has
// none.
func (t Type) ResponseType() Type {
	if t.IsResponse() {
		return ""
	}
	if t == TypeUserinfoRequest {
		return TypeUserinfoResponse
	}
	resp := Type(string(t) + responseSuffix)
	for _, c := range Catalog() {
		if c == resp {
			return resp
		}
	}
	return ""
}

// IsRequest reports whether t is answered by a _RESPONSE entry.
func (t Type) IsRequest() bool {
	return t.ResponseType() != ""
}

// Action is a catalog entry.
type Action interface {
	Type() Type
	isAction()
}

// Response is implemented by every _RESPONSE entry.
type Response interface {
	Action
	// Failure returns the error of a rejected response, nil when fulfilled.
	Failure() error
}

// Result is embedded in response actions.
type Result struct {
	Err error
}

// Failure implements Response.
func (r Result) Failure() error { return r.Err }

// Rejected reports whether the response carries an error.
func (r Result) Rejected() bool { return r.Err != nil }

// Fail builds a rejected Result.
func Fail(err error) Result { return Result{Err: err} }
