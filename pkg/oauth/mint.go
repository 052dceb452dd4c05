package oauth

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// Grant names the way an identity token is turned into an API access token.
type Grant string

const (
	// GrantUJWT posts a client credentials grant carrying the identity token
	// in the "ujwt" parameter. This is what the identity server's admin UI
	// backend expects.
	GrantUJWT Grant = "ujwt"

	// GrantTokenExchange performs an RFC 8693 exchange at the issuer.
	GrantTokenExchange Grant = "token-exchange"

	// GrantDex performs an RFC 8693 exchange against a Dex connector.
	GrantDex Grant = "dex"
)

// RFC 8693 identifiers.
const (
	GrantTypeTokenExchange = "urn:ietf:params:oauth:grant-type:token-exchange"
	TokenTypeIDToken       = "urn:ietf:params:oauth:token-type:id_token"
	TokenTypeAccessToken   = "urn:ietf:params:oauth:token-type:access_token"
)

// Grants lists the supported grants.
func Grants() []Grant {
	return []Grant{GrantUJWT, GrantTokenExchange, GrantDex}
}

// ParseGrant validates a grant name. The empty string selects GrantUJWT.
func ParseGrant(s string) (Grant, error) {
	if s == "" {
		return GrantUJWT, nil
	}
	for _, g := range Grants() {
		if string(g) == s {
			return g, nil
		}
	}
	return "", fmt.Errorf("unknown token grant %q", s)
}

// MintRequest describes one API access token request.
type MintRequest struct {
	TokenEndpoint string
	ClientID      string
	ClientSecret  string
	IdentityToken string
	Scopes        []string

	// ConnectorID is the Dex connector (GrantDex only).
	ConnectorID string

	// Subject keys the exchange cache (GrantDex only).
	Subject string
}

func (r MintRequest) validate() error {
	if r.TokenEndpoint == "" {
		return fmt.Errorf("token endpoint is required")
	}
	if r.IdentityToken == "" {
		return fmt.Errorf("identity token is required")
	}
	return nil
}

// Minter obtains an API access token for an identity token.
type Minter interface {
	Mint(ctx context.Context, req MintRequest) (*Token, error)
}

// MinterOptions configures NewMinter.
type MinterOptions struct {
	HTTPClient *http.Client

	// Dex-only settings.
	AllowPrivateIP  bool
	CacheMaxEntries int
}

// NewMinter returns the Minter for grant.
func NewMinter(grant Grant, opts MinterOptions) (Minter, error) {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultHTTPTimeout}
	}

	switch grant {
	case GrantUJWT, "":
		return &clientCredentialsMinter{httpClient: httpClient, params: ujwtParams}, nil
	case GrantTokenExchange:
		return &clientCredentialsMinter{httpClient: httpClient, params: tokenExchangeParams}, nil
	case GrantDex:
		return NewDexMinter(DexMinterOptions{
			HTTPClient:      opts.HTTPClient,
			AllowPrivateIP:  opts.AllowPrivateIP,
			CacheMaxEntries: opts.CacheMaxEntries,
		}), nil
	default:
		return nil, fmt.Errorf("unknown token grant %q", grant)
	}
}

func ujwtParams(idToken string) url.Values {
	return url.Values{"ujwt": {idToken}}
}

func tokenExchangeParams(idToken string) url.Values {
	return url.Values{
		"grant_type":           {GrantTypeTokenExchange},
		"subject_token":        {idToken},
		"subject_token_type":   {TokenTypeIDToken},
		"requested_token_type": {TokenTypeAccessToken},
	}
}

// clientCredentialsMinter authenticates as the console client at the token
// endpoint and passes the identity token as extra endpoint parameters.
type clientCredentialsMinter struct {
	httpClient *http.Client
	params     func(idToken string) url.Values
}

func (m *clientCredentialsMinter) Mint(ctx context.Context, req MintRequest) (*Token, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	conf := clientcredentials.Config{
		ClientID:       req.ClientID,
		ClientSecret:   req.ClientSecret,
		TokenURL:       req.TokenEndpoint,
		Scopes:         req.Scopes,
		EndpointParams: m.params(req.IdentityToken),
		AuthStyle:      oauth2.AuthStyleInHeader,
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, m.httpClient)
	tok, err := conf.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to mint API access token: %w", err)
	}

	token := TokenFromOAuth2(tok)
	if token.Scope == "" {
		// RFC 6749 5.1: an omitted scope means the requested scope was granted.
		token.Scope = strings.Join(req.Scopes, " ")
	}
	return token, nil
}
