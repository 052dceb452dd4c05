package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the subset of token claims the console displays.
type Claims struct {
	Subject   string    `json:"sub"`
	Email     string    `json:"email,omitempty"`
	Name      string    `json:"name,omitempty"`
	Issuer    string    `json:"iss,omitempty"`
	Scopes    []string  `json:"scope,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
}

// DisplayName returns the best human label for the subject.
func (c *Claims) DisplayName() string {
	switch {
	case c == nil:
		return ""
	case c.Name != "":
		return c.Name
	case c.Email != "":
		return c.Email
	default:
		return c.Subject
	}
}

// Expired reports whether the token carried an exp in the past.
func (c *Claims) Expired(now time.Time) bool {
	return c != nil && !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// ParseClaims decodes the claims of a JWT without verifying its signature.
func ParseClaims(token string) (*Claims, error) {
	if token == "" {
		return nil, fmt.Errorf("token is empty")
	}

	mc := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, mc); err != nil {
		return nil, fmt.Errorf("failed to decode token claims: %w", err)
	}

	c := ClaimsFromMap(mc)
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		c.ExpiresAt = exp.Time
	}
	return c, nil
}

// ClaimsFromMap converts a decoded claim set, such as a JSON userinfo
// document, into Claims.
func ClaimsFromMap(m map[string]interface{}) *Claims {
	c := &Claims{}
	c.Subject, _ = m["sub"].(string)
	c.Email, _ = m["email"].(string)
	c.Name, _ = m["name"].(string)
	c.Issuer, _ = m["iss"].(string)
	if c.Name == "" {
		c.Name, _ = m["user_name"].(string)
	}
	c.Scopes = scopeClaim(m["scope"])
	if c.Scopes == nil {
		c.Scopes = scopeClaim(m["scp"])
	}
	if exp, ok := m["exp"].(float64); ok && exp > 0 {
		c.ExpiresAt = time.Unix(int64(exp), 0)
	}
	return c
}

// scopeClaim accepts a space-separated string or a JSON array.
func scopeClaim(v interface{}) []string {
	switch s := v.(type) {
	case string:
		if f := strings.Fields(s); len(f) > 0 {
			return f
		}
	case []interface{}:
		out := make([]string, 0, len(s))
		for _, item := range s {
			if str, ok := item.(string); ok && str != "" {
				out = append(out, str)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}
