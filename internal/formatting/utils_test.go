package formatting

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"jansctl/internal/api"
	"jansctl/internal/session"
)

func TestPrettyJSON(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  string
	}{
		{
			name:  "scope uses json tags and omits empty fields",
			input: api.Scope{Inum: "43F1", ID: "profile", ScopeType: "openid"},
			want:  "{\n  \"inum\": \"43F1\",\n  \"id\": \"profile\",\n  \"scopeType\": \"openid\"\n}",
		},
		{
			name:  "empty listing",
			input: []api.Attribute{},
			want:  "[]",
		},
		{
			name:  "secrets are redacted",
			input: map[string]session.Secret{"token": session.NewSecret("eyJ.secret")},
			want:  "{\n  \"token\": \"[REDACTED]\"\n}",
		},
		{
			name:  "nil",
			input: nil,
			want:  "null",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PrettyJSON(tt.input))
		})
	}
}

func TestPrettyJSON_UnmarshalableFallsBackToValue(t *testing.T) {
	got := PrettyJSON(func() {})

	assert.NotEmpty(t, got)
	assert.Contains(t, got, "0x")
}
