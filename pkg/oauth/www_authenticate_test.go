package oauth

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWWWAuthenticate(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    *AuthChallenge
		wantErr bool
	}{
		{
			name:    "empty header",
			header:  "",
			wantErr: true,
		},
		{
			name:   "bare scheme",
			header: "Bearer",
			want:   &AuthChallenge{Scheme: "Bearer"},
		},
		{
			name:   "realm",
			header: `Bearer realm="jans-config-api"`,
			want:   &AuthChallenge{Scheme: "Bearer", Realm: "jans-config-api"},
		},
		{
			name:   "expired token",
			header: `Bearer error="invalid_token", error_description="The access token expired"`,
			want: &AuthChallenge{
				Scheme:           "Bearer",
				Error:            "invalid_token",
				ErrorDescription: "The access token expired",
			},
		},
		{
			name:   "insufficient scope with uppercase keys",
			header: `Bearer ERROR="insufficient_scope", Scope="https://jans.io/oauth/config/scopes.write"`,
			want: &AuthChallenge{
				Scheme: "Bearer",
				Error:  "insufficient_scope",
				Scope:  "https://jans.io/oauth/config/scopes.write",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseWWWAuthenticate(tt.header)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAuthChallengeHelpers(t *testing.T) {
	var nilChallenge *AuthChallenge
	assert.False(t, nilChallenge.IsBearer())
	assert.False(t, nilChallenge.IsTokenExpired())

	c := &AuthChallenge{Scheme: "bearer", Error: "invalid_token"}
	assert.True(t, c.IsBearer())
	assert.True(t, c.IsTokenExpired())
}

func TestParseWWWAuthenticateFromResponse(t *testing.T) {
	assert.Nil(t, ParseWWWAuthenticateFromResponse(nil))

	ok := &http.Response{StatusCode: http.StatusOK, Header: http.Header{}}
	assert.Nil(t, ParseWWWAuthenticateFromResponse(ok))

	noHeader := &http.Response{StatusCode: http.StatusUnauthorized, Header: http.Header{}}
	assert.Nil(t, ParseWWWAuthenticateFromResponse(noHeader))

	resp := &http.Response{StatusCode: http.StatusUnauthorized, Header: http.Header{}}
	resp.Header.Set("WWW-Authenticate", `Bearer error="invalid_token"`)
	challenge := ParseWWWAuthenticateFromResponse(resp)
	require.NotNil(t, challenge)
	assert.True(t, challenge.IsTokenExpired())
}
