package effects

import (
	"fmt"

	"jansctl/internal/actions"
	"jansctl/internal/session"
	"jansctl/pkg/logging"
	"jansctl/pkg/oauth"
)

type authHandlers struct {
	deps Deps
}

// metadata returns the cached issuer metadata of the snapshot, discovering
// it when the session has none yet.
func (h *authHandlers) metadata(t *Task) (*oauth.Metadata, error) {
	if t.Auth.Metadata != nil {
		return t.Auth.Metadata, nil
	}
	if h.deps.Identity == nil {
		return nil, fmt.Errorf("no identity provider configured")
	}
	if t.Auth.Session.Issuer == "" {
		return nil, fmt.Errorf("no issuer configured")
	}
	return h.deps.Identity.DiscoverMetadata(t.Ctx, t.Auth.Session.Issuer)
}

func (h *authHandlers) getOAuth2Config(t *Task, act actions.Action) {
	issuer := act.(actions.GetOAuth2Config).Issuer
	if issuer == "" {
		issuer = t.Auth.Session.Issuer
	}
	if issuer == "" || h.deps.Identity == nil {
		t.Put(actions.GetOAuth2ConfigResponse{Result: actions.Fail(fmt.Errorf("no issuer configured"))})
		return
	}

	md, err := h.deps.Identity.DiscoverMetadata(t.Ctx, issuer)
	if err != nil {
		if t.Ctx.Err() != nil {
			return
		}
		t.Put(actions.GetOAuth2ConfigResponse{Result: actions.Fail(err)})
		return
	}
	logging.Debug("OAuth", "Discovered token endpoint %s", md.TokenEndpoint)
	t.Put(actions.GetOAuth2ConfigResponse{Metadata: md})
}

func (h *authHandlers) getOAuth2AccessToken(t *Task, act actions.Action) {
	fail := func(err error) {
		if t.Ctx.Err() == nil {
			t.Put(actions.GetOAuth2AccessTokenResponse{Result: actions.Fail(err)})
		}
	}

	if h.deps.Identity == nil {
		fail(fmt.Errorf("no identity provider configured"))
		return
	}
	md, err := h.metadata(t)
	if err != nil {
		fail(err)
		return
	}

	exchange := act.(actions.GetOAuth2AccessToken).Exchange
	if exchange.ClientID == "" {
		exchange.ClientID = h.deps.Auth.ClientID
	}
	if exchange.ClientSecret == "" {
		exchange.ClientSecret = h.deps.Auth.ClientSecret
	}

	tok, err := h.deps.Identity.ExchangeCode(t.Ctx, md, exchange)
	if err != nil {
		fail(err)
		return
	}

	access := session.NewSecret(tok.AccessToken)
	if !t.Put(actions.GetOAuth2AccessTokenResponse{
		AccessToken: access,
		IDToken:     session.NewSecret(tok.IDToken),
	}) {
		return
	}
	t.Put(actions.UserinfoRequest{AccessToken: access})
}

func (h *authHandlers) userinfo(t *Task, act actions.Action) {
	fail := func(err error) {
		if t.Ctx.Err() == nil {
			t.Put(actions.UserinfoResponse{Result: actions.Fail(err)})
		}
	}

	if h.deps.Identity == nil {
		fail(fmt.Errorf("no identity provider configured"))
		return
	}
	md, err := h.metadata(t)
	if err != nil {
		fail(err)
		return
	}

	access := act.(actions.UserinfoRequest).AccessToken
	if access.IsEmpty() {
		access = t.Auth.OAuth2AccessToken
	}

	info, err := h.deps.Identity.FetchUserinfo(t.Ctx, md.UserinfoEndpoint, access.Value())
	if err != nil {
		fail(err)
		return
	}

	// A signed userinfo document is the identity token; otherwise keep the
	// id_token from the code exchange.
	identity := t.Auth.Session.IdentityToken
	var user *session.Claims
	if info.JWT != "" {
		identity = session.NewSecret(info.JWT)
		if c, err := session.ParseClaims(info.JWT); err == nil {
			user = c
		}
	} else {
		user = session.ClaimsFromMap(info.Claims)
	}
	if identity.IsEmpty() {
		fail(fmt.Errorf("issuer returned no identity token"))
		return
	}

	if !t.Put(actions.UserinfoResponse{IdentityToken: identity, User: user}) {
		return
	}
	t.Put(actions.GetAPIAccessToken{IdentityToken: identity})
}

func (h *authHandlers) getAPIAccessToken(t *Task, act actions.Action) {
	fail := func(err error) {
		if t.Ctx.Err() == nil {
			logging.Warn("OAuth", "Failed to obtain API access token: %v", err)
			t.Put(actions.GetAPIAccessTokenResponse{Result: actions.Fail(err)})
		}
	}

	if h.deps.Minter == nil {
		fail(fmt.Errorf("no token minter configured"))
		return
	}

	identity := act.(actions.GetAPIAccessToken).IdentityToken
	if identity.IsEmpty() {
		identity = t.Auth.Session.IdentityToken
	}
	if identity.IsEmpty() {
		fail(fmt.Errorf("no identity token; run 'jansctl auth login' or set JANSCTL_ID_TOKEN"))
		return
	}

	md, err := h.metadata(t)
	if err != nil {
		fail(err)
		return
	}

	var subject string
	if c, err := session.ParseClaims(identity.Value()); err == nil {
		subject = c.Subject
	}

	tok, err := h.deps.Minter.Mint(t.Ctx, oauth.MintRequest{
		TokenEndpoint: md.TokenEndpoint,
		ClientID:      h.deps.Auth.ClientID,
		ClientSecret:  h.deps.Auth.ClientSecret,
		IdentityToken: identity.Value(),
		Scopes:        h.deps.Auth.requestedScopes(),
		ConnectorID:   h.deps.Auth.ConnectorID,
		Subject:       subject,
	})
	if err != nil {
		fail(err)
		return
	}

	scopes := tok.Scopes()
	if len(scopes) == 0 {
		if c, err := session.ParseClaims(tok.AccessToken); err == nil {
			scopes = c.Scopes
		}
	}

	logging.Info("OAuth", "Obtained API access token with %d scopes", len(scopes))
	t.Put(actions.GetAPIAccessTokenResponse{
		AccessToken: session.NewSecret(tok.AccessToken),
		ExpiresAt:   tok.ExpiresAt,
		Scopes:      scopes,
	})
}
