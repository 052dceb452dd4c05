package actions

import (
	"time"

	"jansctl/internal/session"
	"jansctl/pkg/oauth"
)

// GetOAuth2Config requests discovery of the issuer metadata.
type GetOAuth2Config struct {
	Issuer string
}

// GetOAuth2ConfigResponse carries the discovered metadata.
type GetOAuth2ConfigResponse struct {
	Metadata *oauth.Metadata
	Result
}

// GetOAuth2AccessToken redeems an authorization code obtained through the
// browser login.
type GetOAuth2AccessToken struct {
	Exchange oauth.CodeExchange
}

// GetOAuth2AccessTokenResponse carries the user's OAuth2 tokens.
type GetOAuth2AccessTokenResponse struct {
	AccessToken session.Secret
	IDToken     session.Secret
	Result
}

// UserinfoRequest fetches the userinfo document with the user's OAuth2
// access token.
type UserinfoRequest struct {
	AccessToken session.Secret
}

// UserinfoResponse carries the identity token and decoded user.
type UserinfoResponse struct {
	IdentityToken session.Secret
	User          *session.Claims
	Result
}

// GetAPIAccessToken mints a configuration API token from an identity token.
type GetAPIAccessToken struct {
	IdentityToken session.Secret
}

// GetAPIAccessTokenResponse carries the API token and its granted scopes.
type GetAPIAccessTokenResponse struct {
	AccessToken session.Secret
	ExpiresAt   time.Time
	Scopes      []string
	Result
}

func (GetOAuth2Config) Type() Type              { return TypeGetOAuth2Config }
func (GetOAuth2ConfigResponse) Type() Type      { return TypeGetOAuth2ConfigResponse }
func (GetOAuth2AccessToken) Type() Type         { return TypeGetOAuth2AccessToken }
func (GetOAuth2AccessTokenResponse) Type() Type { return TypeGetOAuth2AccessTokenResponse }
func (UserinfoRequest) Type() Type              { return TypeUserinfoRequest }
func (UserinfoResponse) Type() Type             { return TypeUserinfoResponse }
func (GetAPIAccessToken) Type() Type            { return TypeGetAPIAccessToken }
func (GetAPIAccessTokenResponse) Type() Type    { return TypeGetAPIAccessTokenResponse }

func (GetOAuth2Config) isAction()              {}
func (GetOAuth2ConfigResponse) isAction()      {}
func (GetOAuth2AccessToken) isAction()         {}
func (GetOAuth2AccessTokenResponse) isAction() {}
func (UserinfoRequest) isAction()              {}
func (UserinfoResponse) isAction()             {}
func (GetAPIAccessToken) isAction()            {}
func (GetAPIAccessTokenResponse) isAction()    {}
