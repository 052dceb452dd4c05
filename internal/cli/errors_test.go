package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jansctl/internal/api"
	"jansctl/internal/session"
)

func TestAuthErrors(t *testing.T) {
	t.Run("required mentions login and env", func(t *testing.T) {
		msg := (&AuthRequiredError{Server: "https://jans.example.org"}).Error()
		assert.Contains(t, msg, "https://jans.example.org")
		assert.Contains(t, msg, "jansctl auth login")
		assert.Contains(t, msg, IdentityTokenEnvVar)
	})

	t.Run("expired mentions rerun", func(t *testing.T) {
		msg := (&AuthExpiredError{Server: "https://jans.example.org"}).Error()
		assert.Contains(t, msg, "expired")
		assert.Contains(t, msg, "run the command again")
	})

	t.Run("failed unwraps", func(t *testing.T) {
		reason := errors.New("invalid_grant")
		err := fmt.Errorf("login: %w", &AuthFailedError{Server: "s", Reason: reason})
		assert.ErrorIs(t, err, reason)
		assert.ErrorIs(t, err, &AuthFailedError{})
	})

	t.Run("permission denied names scope", func(t *testing.T) {
		err := &PermissionDeniedError{Operation: "delete scope", Capability: session.ScopesDelete}
		assert.Contains(t, err.Error(), string(session.ScopesDelete))
		assert.ErrorIs(t, fmt.Errorf("x: %w", err), &PermissionDeniedError{})
	})

	t.Run("Is does not match other types", func(t *testing.T) {
		assert.False(t, (&AuthRequiredError{}).Is(&AuthExpiredError{}))
		assert.False(t, (&AuthExpiredError{}).Is(errors.New("x")))
	})
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o wait" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClassifyConnectionError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ConnectionErrorType
	}{
		{"tls", errors.New("tls: failed to verify certificate: x509: certificate signed by unknown authority"), ConnectionErrorTLS},
		{"dns", &net.DNSError{Err: "no such host", Name: "jans.invalid"}, ConnectionErrorDNS},
		{"net timeout", &url.Error{Op: "Get", URL: "https://x", Err: timeoutErr{}}, ConnectionErrorTimeout},
		{"deadline", context.DeadlineExceeded, ConnectionErrorTimeout},
		{"refused", errors.New("dial tcp 127.0.0.1:443: connect: connection refused"), ConnectionErrorNetwork},
		{"other", errors.New("boom"), ConnectionErrorUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ce := ClassifyConnectionError(tt.err, "https://jans.example.org")
			require.NotNil(t, ce)
			assert.Equal(t, tt.want, ce.Type)
			assert.ErrorIs(t, ce, tt.err)
			assert.Contains(t, ce.Error(), tt.want.String())
		})
	}

	assert.Nil(t, ClassifyConnectionError(nil, "x"))
}

func TestClassify(t *testing.T) {
	const server = "https://jans.example.org"

	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, Classify(nil, server, "list scopes"))
	})

	t.Run("401 becomes expired", func(t *testing.T) {
		err := Classify(&api.Error{StatusCode: http.StatusUnauthorized}, server, "list scopes")
		var expired *AuthExpiredError
		assert.ErrorAs(t, err, &expired)
	})

	t.Run("403 becomes permission denied", func(t *testing.T) {
		err := Classify(fmt.Errorf("wrapped: %w", &api.Error{StatusCode: http.StatusForbidden}), server, "delete scope")
		var denied *PermissionDeniedError
		require.ErrorAs(t, err, &denied)
		assert.Equal(t, "delete scope", denied.Operation)
	})

	t.Run("other API errors pass through", func(t *testing.T) {
		orig := &api.Error{StatusCode: http.StatusNotFound}
		assert.Same(t, orig, Classify(orig, server, "get scope"))
	})

	t.Run("transport errors become connection errors", func(t *testing.T) {
		err := Classify(&url.Error{Op: "Get", URL: server, Err: errors.New("dial tcp: connection refused")}, server, "list")
		var connErr *ConnectionError
		require.ErrorAs(t, err, &connErr)
		assert.Equal(t, ConnectionErrorNetwork, connErr.Type)
	})

	t.Run("typed errors are kept", func(t *testing.T) {
		orig := &AuthRequiredError{Server: server}
		assert.Same(t, orig, Classify(orig, server, "list"))
	})
}
