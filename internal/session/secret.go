package session

import "log/slog"

const redacted = "[REDACTED]"

// Secret wraps a token so it cannot leak through logging or serialization.
//
//	tok := session.NewSecret("eyJhbGciOi...")
//	fmt.Println(tok)     // [REDACTED]
//	header := tok.Value() // the real token, for the Authorization header only
type Secret struct {
	value string
}

// NewSecret wraps value.
func NewSecret(value string) Secret {
	return Secret{value: value}
}

// Value returns the wrapped token. Never log the result.
func (s Secret) Value() string {
	return s.value
}

// IsEmpty reports whether no token is held.
func (s Secret) IsEmpty() bool {
	return s.value == ""
}

// String implements fmt.Stringer.
func (s Secret) String() string {
	if s.value == "" {
		return ""
	}
	return redacted
}

// GoString implements fmt.GoStringer for %#v.
func (s Secret) GoString() string {
	return "session.Secret{" + s.String() + "}"
}

// MarshalText implements encoding.TextMarshaler.
func (s Secret) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// MarshalJSON implements json.Marshaler.
func (s Secret) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// LogValue implements slog.LogValuer.
func (s Secret) LogValue() slog.Value {
	return slog.StringValue(s.String())
}
