package api

import (
	"errors"
	"fmt"
	"net/http"

	"jansctl/pkg/oauth"
)

// Error is a non-2xx response from the configuration API.
type Error struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int

	// Method and Path identify the failed request.
	Method string
	Path   string

	// Message is the server-provided message, or the status text.
	Message string

	// RequestID is the X-Request-ID sent with the request.
	RequestID string

	// Challenge is the parsed WWW-Authenticate header of a 401 response.
	Challenge *oauth.AuthChallenge
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, e.Message)
}

// statusOf extracts the status code of an *Error anywhere in err's chain.
func statusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// IsUnauthorized reports whether err is, or wraps, a 401 response. This is
// the signal to mint a new API access token.
//
// Example:
//
//	if _, err := client.ListScopes(ctx, opts); api.IsUnauthorized(err) {
//	    store.Dispatch(actions.GetAPIAccessToken{IdentityToken: sess.IdentityToken})
//	}
func IsUnauthorized(err error) bool {
	return statusOf(err) == http.StatusUnauthorized
}

// IsForbidden reports whether err is, or wraps, a 403 response.
func IsForbidden(err error) bool {
	return statusOf(err) == http.StatusForbidden
}

// IsNotFound reports whether err is, or wraps, a 404 response.
func IsNotFound(err error) bool {
	return statusOf(err) == http.StatusNotFound
}
