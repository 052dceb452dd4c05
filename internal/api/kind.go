package api

import (
	"fmt"
	"strings"
)

var kindNames = map[string]Kind{
	"client":     KindOIDCClient,
	"clients":    KindOIDCClient,
	"oidc":       KindOIDCClient,
	"scope":      KindScope,
	"scopes":     KindScope,
	"attribute":  KindAttribute,
	"attributes": KindAttribute,
	"attr":       KindAttribute,
	"attrs":      KindAttribute,
	"script":     KindCustomScript,
	"scripts":    KindCustomScript,
}

// Kinds returns every entity kind in display order.
func Kinds() []Kind {
	return []Kind{KindOIDCClient, KindScope, KindAttribute, KindCustomScript}
}

// Plural returns the collection name of k.
func (k Kind) Plural() string {
	return string(k) + "s"
}

// ParseKind accepts a kind in singular, plural or short form.
func ParseKind(s string) (Kind, error) {
	if k, ok := kindNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return k, nil
	}
	return "", fmt.Errorf("unknown resource type %q (valid: clients, scopes, attributes, scripts)", s)
}
