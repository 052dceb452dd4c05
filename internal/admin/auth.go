package admin

import (
	"context"
	"fmt"
	"time"

	"jansctl/internal/actions"
	"jansctl/internal/cli"
	"jansctl/internal/store"
	"jansctl/pkg/oauth"
)

// Discover fetches the issuer's OpenID metadata and keeps it in the store.
// An empty issuer uses the session's.
func (s *Service) Discover(ctx context.Context, issuer string) (*oauth.Metadata, error) {
	resp, err := s.request(ctx, actions.GetOAuth2Config{Issuer: issuer}, "discover issuer metadata")
	if err != nil {
		return nil, err
	}
	return resp.(actions.GetOAuth2ConfigResponse).Metadata, nil
}

// EnsureToken mints an API access token unless a live one is held.
func (s *Service) EnsureToken(ctx context.Context) error {
	sess := s.currentSession()
	if sess.IsAuthenticated() && !sess.AccessTokenExpired(time.Now()) {
		return nil
	}
	return s.RenewToken(ctx)
}

// Login redeems an authorization code. The handlers chain the userinfo
// request and the API token request, so on success the session holds the
// identity token, the user and the API access token.
func (s *Service) Login(ctx context.Context, exchange oauth.CodeExchange) error {
	server := s.server()
	if _, err := s.request(ctx, actions.GetOAuth2AccessToken{Exchange: exchange}, "log in"); err != nil {
		return &cli.AuthFailedError{Server: server, Reason: err}
	}

	auth := s.store.State().Auth
	if auth.Phase != store.PhaseAuthorized {
		reason := auth.Err
		if reason == nil {
			reason = fmt.Errorf("login ended in phase %s", auth.Phase)
		}
		return &cli.AuthFailedError{Server: server, Reason: reason}
	}
	return nil
}
