package oauth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMetadataServer(t *testing.T, path string, calls *int32, delay time.Duration) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if delay > 0 {
			time.Sleep(delay)
		}
		if calls != nil {
			atomic.AddInt32(calls, 1)
		}
		if r.URL.Path == path {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(&Metadata{
				Issuer:                "https://idp.example.org",
				AuthorizationEndpoint: "https://idp.example.org/jans-auth/restv1/authorize",
				TokenEndpoint:         "https://idp.example.org/jans-auth/restv1/token",
				UserinfoEndpoint:      "https://idp.example.org/jans-auth/restv1/userinfo",
			})
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestNewClient(t *testing.T) {
	t.Run("creates client with defaults", func(t *testing.T) {
		c := NewClient()
		assert.NotNil(t, c.httpClient)
		assert.NotNil(t, c.logger)
		assert.NotNil(t, c.metadataCache)
		assert.Equal(t, DefaultMetadataCacheTTL, c.metadataTTL)
	})

	t.Run("applies options", func(t *testing.T) {
		customHTTP := &http.Client{Timeout: 10 * time.Second}
		c := NewClient(WithHTTPClient(customHTTP), WithMetadataCacheTTL(5*time.Minute))
		assert.Same(t, customHTTP, c.HTTPClient())
		assert.Equal(t, 5*time.Minute, c.metadataTTL)
	})
}

func TestDiscoverMetadata(t *testing.T) {
	t.Run("discovers via RFC 8414 endpoint", func(t *testing.T) {
		server := newMetadataServer(t, "/.well-known/oauth-authorization-server", nil, 0)

		c := NewClient(WithHTTPClient(server.Client()))
		result, err := c.DiscoverMetadata(context.Background(), server.URL)

		require.NoError(t, err)
		assert.Equal(t, "https://idp.example.org/jans-auth/restv1/token", result.TokenEndpoint)
	})

	t.Run("falls back to OIDC discovery", func(t *testing.T) {
		server := newMetadataServer(t, "/.well-known/openid-configuration", nil, 0)

		c := NewClient(WithHTTPClient(server.Client()))
		result, err := c.DiscoverMetadata(context.Background(), server.URL+"/")

		require.NoError(t, err)
		assert.Equal(t, "https://idp.example.org/jans-auth/restv1/userinfo", result.UserinfoEndpoint)
	})

	t.Run("returns error when both endpoints fail", func(t *testing.T) {
		server := newMetadataServer(t, "/nowhere", nil, 0)

		c := NewClient(WithHTTPClient(server.Client()))
		_, err := c.DiscoverMetadata(context.Background(), server.URL)
		assert.Error(t, err)
	})

	t.Run("rejects empty issuer", func(t *testing.T) {
		_, err := NewClient().DiscoverMetadata(context.Background(), "")
		assert.Error(t, err)
	})

	t.Run("caches metadata", func(t *testing.T) {
		var calls int32
		server := newMetadataServer(t, "/.well-known/oauth-authorization-server", &calls, 0)

		c := NewClient(WithHTTPClient(server.Client()))
		_, err := c.DiscoverMetadata(context.Background(), server.URL)
		require.NoError(t, err)
		_, err = c.DiscoverMetadata(context.Background(), server.URL)
		require.NoError(t, err)

		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

		c.ClearMetadataCache()
		_, err = c.DiscoverMetadata(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	})

	t.Run("deduplicates concurrent requests", func(t *testing.T) {
		var calls int32
		server := newMetadataServer(t, "/.well-known/oauth-authorization-server", &calls, 50*time.Millisecond)

		c := NewClient(WithHTTPClient(server.Client()))

		var wg sync.WaitGroup
		for i := 0; i < 5; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = c.DiscoverMetadata(context.Background(), server.URL)
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})
}

func TestExchangeCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		assert.Equal(t, "the-code", r.PostForm.Get("code"))
		assert.Equal(t, "the-verifier", r.PostForm.Get("code_verifier"))
		assert.Equal(t, "http://127.0.0.1:8765/callback", r.PostForm.Get("redirect_uri"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "at",
			"token_type":   "Bearer",
			"expires_in":   300,
			"scope":        "openid profile",
			"id_token":     "header.payload.sig",
		})
	}))
	defer server.Close()

	c := NewClient(WithHTTPClient(server.Client()))
	metadata := &Metadata{TokenEndpoint: server.URL + "/token"}

	token, err := c.ExchangeCode(context.Background(), metadata, CodeExchange{
		Code:         "the-code",
		CodeVerifier: "the-verifier",
		RedirectURI:  "http://127.0.0.1:8765/callback",
		ClientID:     "admin-ui",
		ClientSecret: "secret",
	})
	require.NoError(t, err)

	assert.Equal(t, "at", token.AccessToken)
	assert.Equal(t, "header.payload.sig", token.IDToken)
	assert.Equal(t, []string{"openid", "profile"}, token.Scopes())
	assert.False(t, token.IsExpired())

	_, err = c.ExchangeCode(context.Background(), metadata, CodeExchange{})
	assert.Error(t, err)
	_, err = c.ExchangeCode(context.Background(), nil, CodeExchange{Code: "x"})
	assert.Error(t, err)
}

func TestFetchUserinfo(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		status      int
		wantJWT     string
		wantClaim   string
		wantErr     bool
	}{
		{
			name:        "signed userinfo",
			contentType: "application/jwt",
			body:        "aaa.bbb.ccc\n",
			status:      http.StatusOK,
			wantJWT:     "aaa.bbb.ccc",
		},
		{
			name:        "json userinfo",
			contentType: "application/json; charset=utf-8",
			body:        `{"sub":"admin","email":"admin@example.org"}`,
			status:      http.StatusOK,
			wantClaim:   "admin",
		},
		{
			name:    "unauthorized",
			status:  http.StatusUnauthorized,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "Bearer access", r.Header.Get("Authorization"))
				if tt.contentType != "" {
					w.Header().Set("Content-Type", tt.contentType)
				}
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			c := NewClient(WithHTTPClient(server.Client()))
			info, err := c.FetchUserinfo(context.Background(), server.URL, "access")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantJWT, info.JWT)
			if tt.wantClaim != "" {
				assert.Equal(t, tt.wantClaim, info.Claims["sub"])
			}
		})
	}
}
