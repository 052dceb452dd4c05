package session

import "time"

// Session is the authenticated context the effect handlers act with.
type Session struct {
	// Issuer is the OpenID provider URL.
	Issuer string

	// Server is the configuration API base URL.
	Server string

	// AccessToken is the bearer token for the configuration API.
	AccessToken Secret

	// AccessTokenExpiry is zero when the server did not report a lifetime.
	AccessTokenExpiry time.Time

	// IdentityToken is the user's identity token (the userinfo JWT when the
	// console performed the login itself).
	IdentityToken Secret

	// Permissions are the scopes granted with AccessToken.
	Permissions Permissions

	// User is the decoded identity, when an identity token is present.
	User *Claims
}

// IsAuthenticated reports whether an API access token is held.
func (s Session) IsAuthenticated() bool {
	return !s.AccessToken.IsEmpty()
}

// AccessTokenExpired reports whether the access token is known to be past
// its expiry. Tokens without an expiry never report expired.
func (s Session) AccessTokenExpired(now time.Time) bool {
	return !s.AccessTokenExpiry.IsZero() && now.After(s.AccessTokenExpiry)
}

// Can reports whether the session holds capability c.
func (s Session) Can(c Capability) bool {
	return s.Permissions.Has(c)
}
