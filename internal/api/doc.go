// Package api is the client for the identity server's configuration REST API.
//
// A Client is bound to one server base URL and one bearer token. Construction
// is pure: no request is made, nothing is retried and nothing is cached.
// Callers that need a fresh token build a new Client.
//
//	client, err := api.NewClient("https://idp.example.org", token)
//	scopes, err := client.ListScopes(ctx, api.ListOptions{Pattern: "openid"})
//	if api.IsUnauthorized(err) {
//	    // mint a new API access token
//	}
//
// # Errors
//
// Non-2xx responses are returned as *Error, carrying the status code, the
// request method and path, the server message and, for 401 responses, the
// parsed WWW-Authenticate challenge. Transport failures are wrapped and
// returned as-is so callers can classify them.
//
// # Models
//
// OIDCClient, Scope, Attribute, CustomScript and LoggingConfig mirror the
// server's JSON documents. Every model with an inum implements Entity.
package api
