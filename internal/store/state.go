package store

import (
	"jansctl/internal/api"
	"jansctl/internal/session"
	"jansctl/pkg/oauth"
)

// Collection is the state of one entity list.
type Collection[T any] struct {
	// Items is replaced wholesale by each successful fetch.
	Items []T
	// Item is the current item, set by SET_ITEM and get-by-inum responses.
	Item *T
	// Loading is true while a request for the collection is pending.
	Loading bool
	// Err is the error of the last rejected response, cleared on success.
	Err error
}

// LoggingState is the state of the server logging configuration.
type LoggingState struct {
	Config  *api.LoggingConfig
	Loading bool
	Err     error
}

// AuthPhase is the lifecycle of the API access token.
type AuthPhase string

const (
	PhaseAnonymous   AuthPhase = "anonymous"
	PhaseAuthorizing AuthPhase = "authorizing"
	PhaseAuthorized  AuthPhase = "authorized"
	PhaseRefreshing  AuthPhase = "refreshing"
	PhaseFailed      AuthPhase = "failed"
)

// AuthState is the authentication state.
type AuthState struct {
	Session  session.Session
	Metadata *oauth.Metadata

	// OAuth2AccessToken is the user's token from the authorization-code
	// login, used only for userinfo.
	OAuth2AccessToken session.Secret

	Phase AuthPhase
	Err   error
}

// State is the whole console state.
type State struct {
	Auth       AuthState
	OIDC       Collection[api.OIDCClient]
	Scopes     Collection[api.Scope]
	Attributes Collection[api.Attribute]
	Scripts    Collection[api.CustomScript]
	Logging    LoggingState

	// APIError is the last message recorded with SET_API_ERROR.
	APIError string
}

// NewState returns the initial state for a session.
func NewState(sess session.Session) State {
	phase := PhaseAnonymous
	if sess.IsAuthenticated() {
		phase = PhaseAuthorized
	}
	return State{Auth: AuthState{Session: sess, Phase: phase}}
}

// Loading reports whether any request is pending.
func (s State) Loading() bool {
	return s.OIDC.Loading || s.Scopes.Loading || s.Attributes.Loading ||
		s.Scripts.Loading || s.Logging.Loading ||
		s.Auth.Phase == PhaseAuthorizing || s.Auth.Phase == PhaseRefreshing
}
