// Package oauth provides the OAuth 2.0 / OpenID Connect protocol helpers used
// by jansctl to obtain and keep alive the bearer token for the configuration
// API.
//
// # Core Components
//
//   - Client: issuer metadata discovery (RFC 8414, then OIDC discovery),
//     authorization-code exchange and userinfo retrieval
//   - CallbackServer and Authorize: loopback redirect handling for the
//     authorization-code + PKCE login
//   - Minter: turns an identity token into an API access token. Three grants
//     are available: "ujwt" (client credentials carrying the identity token),
//     "token-exchange" (RFC 8693 against the issuer) and "dex" (RFC 8693
//     against a Dex connector)
//   - ParseWWWAuthenticate: Bearer challenge parsing for 401 responses
//
// # Usage
//
//	client := oauth.NewClient(oauth.WithLogger(logging.Logger()))
//	metadata, err := client.DiscoverMetadata(ctx, issuer)
//
//	minter, err := oauth.NewMinter(oauth.GrantUJWT, oauth.MinterOptions{})
//	token, err := minter.Mint(ctx, oauth.MintRequest{
//		TokenEndpoint: metadata.TokenEndpoint,
//		ClientID:      clientID,
//		ClientSecret:  clientSecret,
//		IdentityToken: idToken,
//		Scopes:        scopes,
//	})
//
// Tokens returned by this package are plain strings; callers wrap them in
// session.Secret before they reach any log or output path.
package oauth
