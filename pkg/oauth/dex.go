package oauth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/giantswarm/mcp-oauth/providers/oidc"
)

// DefaultDexScopes is requested when a Dex exchange names no scopes.
const DefaultDexScopes = "openid profile email groups"

// DexMinterOptions configures a DexMinter.
type DexMinterOptions struct {
	Logger *slog.Logger

	// AllowPrivateIP allows token endpoints on private addresses.
	AllowPrivateIP bool

	// CacheMaxEntries is the exchange cache size (0 = library default).
	CacheMaxEntries int

	HTTPClient *http.Client
}

// DexMinter mints API tokens through an RFC 8693 exchange against a Dex
// connector that trusts the identity server. Exchanged tokens are cached per
// endpoint, connector and subject until they expire.
type DexMinter struct {
	client *oidc.TokenExchangeClient
	cache  *oidc.TokenExchangeCache
}

// NewDexMinter creates a DexMinter.
func NewDexMinter(opts DexMinterOptions) *DexMinter {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	maxEntries := opts.CacheMaxEntries
	if maxEntries <= 0 {
		maxEntries = oidc.DefaultCacheMaxEntries
	}

	return &DexMinter{
		client: oidc.NewTokenExchangeClientWithOptions(oidc.TokenExchangeClientOptions{
			Logger:         logger,
			AllowPrivateIP: opts.AllowPrivateIP,
			HTTPClient:     opts.HTTPClient,
		}),
		cache: oidc.NewTokenExchangeCacheWithMaxEntries(maxEntries),
	}
}

func validateDexRequest(req MintRequest) error {
	if err := req.validate(); err != nil {
		return err
	}
	if !strings.HasPrefix(req.TokenEndpoint, "https://") {
		return fmt.Errorf("dex token endpoint must use HTTPS (got: %s)", req.TokenEndpoint)
	}
	if req.ConnectorID == "" {
		return fmt.Errorf("dex connector ID is required")
	}
	if req.Subject == "" {
		return fmt.Errorf("subject is required for the exchange cache")
	}
	return nil
}

// Mint exchanges the identity token for an access token.
func (m *DexMinter) Mint(ctx context.Context, req MintRequest) (*Token, error) {
	if err := validateDexRequest(req); err != nil {
		return nil, err
	}

	scope := strings.Join(req.Scopes, " ")
	if scope == "" {
		scope = DefaultDexScopes
	}

	cacheKey := oidc.GenerateCacheKey(req.TokenEndpoint, req.ConnectorID, req.Subject)
	if cached := m.cache.Get(cacheKey); cached != nil {
		return &Token{AccessToken: cached.AccessToken, TokenType: "Bearer", Scope: scope}, nil
	}

	resp, err := m.client.Exchange(ctx, oidc.TokenExchangeRequest{
		TokenEndpoint:      req.TokenEndpoint,
		SubjectToken:       req.IdentityToken,
		SubjectTokenType:   oidc.TokenTypeIDToken,
		ConnectorID:        req.ConnectorID,
		Scope:              scope,
		RequestedTokenType: oidc.TokenTypeAccessToken,
		ClientID:           req.ClientID,
		ClientSecret:       req.ClientSecret,
	})
	if err != nil {
		return nil, fmt.Errorf("dex token exchange failed: %w", err)
	}

	if resp.ExpiresIn > 0 {
		m.cache.Set(cacheKey, resp.AccessToken, resp.IssuedTokenType, resp.ExpiresIn)
	}

	token := &Token{
		AccessToken: resp.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int(resp.ExpiresIn),
		Scope:       scope,
	}
	token.SetExpiresAtFromExpiresIn()
	return token, nil
}
