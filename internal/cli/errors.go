package cli

import (
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"

	"jansctl/internal/api"
	"jansctl/internal/session"
)

// ConnectionErrorType categorizes the type of connection error.
type ConnectionErrorType int

const (
	// ConnectionErrorUnknown indicates an unclassified connection error.
	ConnectionErrorUnknown ConnectionErrorType = iota
	// ConnectionErrorTLS indicates a TLS/certificate verification error.
	ConnectionErrorTLS
	// ConnectionErrorNetwork indicates a refused or unreachable connection.
	ConnectionErrorNetwork
	// ConnectionErrorTimeout indicates a connection timeout.
	ConnectionErrorTimeout
	// ConnectionErrorDNS indicates a DNS resolution failure.
	ConnectionErrorDNS
)

// String returns a human-readable name for the connection error type.
func (t ConnectionErrorType) String() string {
	switch t {
	case ConnectionErrorTLS:
		return "TLS certificate error"
	case ConnectionErrorNetwork:
		return "Network error"
	case ConnectionErrorTimeout:
		return "Connection timeout"
	case ConnectionErrorDNS:
		return "DNS resolution error"
	default:
		return "Connection error"
	}
}

// ConnectionError indicates the Jans server could not be reached.
type ConnectionError struct {
	// Server is the URL that could not be reached.
	Server string
	// Type categorizes the connection error.
	Type ConnectionErrorType
	// Reason is the underlying error.
	Reason error
}

// Error returns the classified failure with a hint for the common causes.
func (e *ConnectionError) Error() string {
	var hint string
	switch e.Type {
	case ConnectionErrorTLS:
		hint = "Check that the server certificate is trusted by this machine."
	case ConnectionErrorDNS:
		hint = "Check the server hostname with 'jansctl context current'."
	case ConnectionErrorTimeout:
		hint = "The server did not answer in time; retry or check the network path."
	default:
		hint = "Check that the Jans config API is running and reachable."
	}
	return fmt.Sprintf("%s: cannot reach %s: %v\n\n%s", e.Type, e.Server, e.Reason, hint)
}

// Unwrap returns the underlying error.
func (e *ConnectionError) Unwrap() error {
	return e.Reason
}

// ClassifyConnectionError analyzes an error and returns a ConnectionError
// with the appropriate type. A nil error yields nil.
func ClassifyConnectionError(err error, server string) *ConnectionError {
	if err == nil {
		return nil
	}

	kind := ConnectionErrorUnknown
	var dnsErr *net.DNSError
	switch {
	case isTLSError(err):
		kind = ConnectionErrorTLS
	case errors.As(err, &dnsErr):
		kind = ConnectionErrorDNS
	case isTimeoutError(err):
		kind = ConnectionErrorTimeout
	case isNetworkError(err.Error()):
		kind = ConnectionErrorNetwork
	}
	return &ConnectionError{Server: server, Type: kind, Reason: err}
}

func isTLSError(err error) bool {
	var certErr x509.CertificateInvalidError
	var hostErr x509.HostnameError
	var unknownAuthErr x509.UnknownAuthorityError
	var systemRootsErr x509.SystemRootsError
	if errors.As(err, &certErr) || errors.As(err, &hostErr) ||
		errors.As(err, &unknownAuthErr) || errors.As(err, &systemRootsErr) {
		return true
	}

	msg := err.Error()
	for _, keyword := range []string{"x509:", "certificate", "tls:", "TLS handshake"} {
		if strings.Contains(msg, keyword) {
			return true
		}
	}
	return false
}

func isTimeoutError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline exceeded")
}

func isNetworkError(msg string) bool {
	for _, keyword := range []string{
		"connection refused",
		"connection reset",
		"network is unreachable",
		"no route to host",
		"dial tcp",
		"connect:",
	} {
		if strings.Contains(msg, keyword) {
			return true
		}
	}
	return false
}

// AuthRequiredError indicates no credentials are available for the server.
type AuthRequiredError struct {
	// Server is the config API that requires authentication.
	Server string
}

// Error returns a user-friendly error message with actionable guidance.
func (e *AuthRequiredError) Error() string {
	return fmt.Sprintf(`Authentication required for %s

To authenticate, run:
  jansctl auth login

Or provide an identity token:
  export JANSCTL_ID_TOKEN=<token>`, e.Server)
}

// Is allows errors.Is() to work with wrapped errors.
func (e *AuthRequiredError) Is(target error) bool {
	_, ok := target.(*AuthRequiredError)
	return ok
}

// AuthExpiredError indicates the API access token was rejected.
type AuthExpiredError struct {
	// Server is the config API that rejected the token.
	Server string
}

// Error returns a user-friendly error message with actionable guidance.
func (e *AuthExpiredError) Error() string {
	return fmt.Sprintf(`Authentication expired for %s

A new API access token was requested; run the command again.
If the problem persists, re-authenticate:
  jansctl auth login`, e.Server)
}

// Is allows errors.Is() to work with wrapped errors.
func (e *AuthExpiredError) Is(target error) bool {
	_, ok := target.(*AuthExpiredError)
	return ok
}

// AuthFailedError indicates a login or token request failed.
type AuthFailedError struct {
	// Server is the server the login was attempted for.
	Server string
	// Reason is the underlying error.
	Reason error
}

// Error returns a user-friendly error message with actionable guidance.
func (e *AuthFailedError) Error() string {
	return fmt.Sprintf(`Authentication failed for %s: %v

To retry authentication, run:
  jansctl auth login`, e.Server, e.Reason)
}

// Unwrap returns the underlying error.
func (e *AuthFailedError) Unwrap() error {
	return e.Reason
}

// Is allows errors.Is() to work with wrapped errors.
func (e *AuthFailedError) Is(target error) bool {
	_, ok := target.(*AuthFailedError)
	return ok
}

// PermissionDeniedError indicates the session lacks the capability an
// operation needs.
type PermissionDeniedError struct {
	// Operation is the attempted operation, e.g. "delete scope".
	Operation string
	// Capability is the missing scope, when known.
	Capability session.Capability
}

// Error returns a user-friendly error message naming the missing scope.
func (e *PermissionDeniedError) Error() string {
	if e.Capability == "" {
		return fmt.Sprintf("Permission denied: the server refused to %s", e.Operation)
	}
	return fmt.Sprintf(`Permission denied: %s requires the %s scope

Check the granted scopes with:
  jansctl auth whoami`, e.Operation, e.Capability)
}

// Is allows errors.Is() to work with wrapped errors.
func (e *PermissionDeniedError) Is(target error) bool {
	_, ok := target.(*PermissionDeniedError)
	return ok
}

// Classify maps an error produced while talking to server onto the typed
// errors of this package. Errors that are already typed, and API errors
// other than 401 and 403, are returned unchanged.
func Classify(err error, server, operation string) error {
	if err == nil {
		return nil
	}

	var connErr *ConnectionError
	var required *AuthRequiredError
	var expired *AuthExpiredError
	var failed *AuthFailedError
	var denied *PermissionDeniedError
	if errors.As(err, &connErr) || errors.As(err, &required) || errors.As(err, &expired) ||
		errors.As(err, &failed) || errors.As(err, &denied) {
		return err
	}

	switch {
	case api.IsUnauthorized(err):
		return &AuthExpiredError{Server: server}
	case api.IsForbidden(err):
		return &PermissionDeniedError{Operation: operation}
	}

	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return err
	}

	var urlErr *url.Error
	var netErr net.Error
	if errors.As(err, &urlErr) || errors.As(err, &netErr) || isNetworkError(err.Error()) {
		return ClassifyConnectionError(err, server)
	}
	return err
}
