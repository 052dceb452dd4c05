package effects

import (
	"context"
	"fmt"
	"net/http"

	"jansctl/internal/api"
	"jansctl/internal/session"
	"jansctl/pkg/oauth"
)

// API is the configuration API surface the handlers call.
type API interface {
	ListOpenIDClients(ctx context.Context, opts api.ListOptions) ([]api.OIDCClient, error)
	ListScopes(ctx context.Context, opts api.ListOptions) ([]api.Scope, error)
	GetScope(ctx context.Context, inum string) (*api.Scope, error)
	DeleteScope(ctx context.Context, inum string) error
	ListAttributes(ctx context.Context, opts api.ListOptions) ([]api.Attribute, error)
	GetAttribute(ctx context.Context, inum string) (*api.Attribute, error)
	AddAttribute(ctx context.Context, attr api.Attribute) (*api.Attribute, error)
	EditAttribute(ctx context.Context, attr api.Attribute) (*api.Attribute, error)
	DeleteAttribute(ctx context.Context, inum string) error
	ListCustomScripts(ctx context.Context, opts api.ListOptions) ([]api.CustomScript, error)
	GetLoggingConfig(ctx context.Context) (*api.LoggingConfig, error)
	EditLoggingConfig(ctx context.Context, cfg api.LoggingConfig) (*api.LoggingConfig, error)
}

// ClientFactory builds an API client for a session snapshot.
type ClientFactory func(sess session.Session) (API, error)

// NewAPIClientFactory returns a ClientFactory over api.NewClient.
func NewAPIClientFactory(opts ...api.Option) ClientFactory {
	return func(sess session.Session) (API, error) {
		if sess.Server == "" {
			return nil, fmt.Errorf("no server configured")
		}
		client, err := api.NewClient(sess.Server, sess.AccessToken.Value(), opts...)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
}

// IdentityProvider is the OAuth surface of the auth handlers. *oauth.Client
// implements it.
type IdentityProvider interface {
	DiscoverMetadata(ctx context.Context, issuer string) (*oauth.Metadata, error)
	ExchangeCode(ctx context.Context, metadata *oauth.Metadata, req oauth.CodeExchange) (*oauth.Token, error)
	FetchUserinfo(ctx context.Context, endpoint, accessToken string) (*oauth.Userinfo, error)
}

// AuthSettings are the console's client registration and token settings.
type AuthSettings struct {
	ClientID     string
	ClientSecret string

	// Scopes requested with the API access token. Empty requests every
	// capability the console knows.
	Scopes []string

	// ConnectorID is the Dex connector for the dex grant.
	ConnectorID string
}

// Deps are the collaborators of the built-in handlers.
type Deps struct {
	NewClient ClientFactory
	Identity  IdentityProvider
	Minter    oauth.Minter
	Auth      AuthSettings
}

// DefaultDeps wires the production collaborators.
func DefaultDeps(httpClient *http.Client, minter oauth.Minter, auth AuthSettings, opts ...api.Option) Deps {
	if httpClient != nil {
		opts = append([]api.Option{api.WithHTTPClient(httpClient)}, opts...)
	}
	var idpOpts []oauth.ClientOption
	if httpClient != nil {
		idpOpts = append(idpOpts, oauth.WithHTTPClient(httpClient))
	}
	return Deps{
		NewClient: NewAPIClientFactory(opts...),
		Identity:  oauth.NewClient(idpOpts...),
		Minter:    minter,
		Auth:      auth,
	}
}

func (s AuthSettings) requestedScopes() []string {
	if len(s.Scopes) > 0 {
		return s.Scopes
	}
	caps := session.AllCapabilities()
	out := make([]string, len(caps))
	for i, c := range caps {
		out[i] = string(c)
	}
	return out
}
