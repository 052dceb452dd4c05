package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

const (
	pathOpenIDClients = "/openid/clients"
	pathScopes        = "/scopes"
	pathAttributes    = "/attributes"
	pathScripts       = "/config/scripts"
	pathLogging       = "/logging"
)

func inumPath(base, inum string) (string, error) {
	if inum == "" {
		return "", fmt.Errorf("inum is required")
	}
	if strings.ContainsAny(inum, "/?#") {
		return "", fmt.Errorf("invalid inum %q", inum)
	}
	return base + "/" + inum, nil
}

// ListOpenIDClients returns the registered OpenID Connect clients.
func (c *Client) ListOpenIDClients(ctx context.Context, opts ListOptions) ([]OIDCClient, error) {
	return list[OIDCClient](ctx, c, pathOpenIDClients, opts)
}

// ListScopes returns the scopes matching opts.
func (c *Client) ListScopes(ctx context.Context, opts ListOptions) ([]Scope, error) {
	return list[Scope](ctx, c, pathScopes, opts)
}

// GetScope returns one scope.
func (c *Client) GetScope(ctx context.Context, inum string) (*Scope, error) {
	path, err := inumPath(pathScopes, inum)
	if err != nil {
		return nil, err
	}
	var s Scope
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// DeleteScope deletes one scope.
func (c *Client) DeleteScope(ctx context.Context, inum string) error {
	path, err := inumPath(pathScopes, inum)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// ListAttributes returns the attributes matching opts.
func (c *Client) ListAttributes(ctx context.Context, opts ListOptions) ([]Attribute, error) {
	return list[Attribute](ctx, c, pathAttributes, opts)
}

// GetAttribute returns one attribute.
func (c *Client) GetAttribute(ctx context.Context, inum string) (*Attribute, error) {
	path, err := inumPath(pathAttributes, inum)
	if err != nil {
		return nil, err
	}
	var a Attribute
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// AddAttribute creates an attribute and returns it as stored by the server.
func (c *Client) AddAttribute(ctx context.Context, attr Attribute) (*Attribute, error) {
	var out Attribute
	if err := c.do(ctx, http.MethodPost, pathAttributes, nil, attr, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// EditAttribute replaces an attribute and returns it as stored by the server.
func (c *Client) EditAttribute(ctx context.Context, attr Attribute) (*Attribute, error) {
	if attr.Inum == "" {
		return nil, fmt.Errorf("inum is required")
	}
	var out Attribute
	if err := c.do(ctx, http.MethodPut, pathAttributes, nil, attr, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteAttribute deletes one attribute.
func (c *Client) DeleteAttribute(ctx context.Context, inum string) error {
	path, err := inumPath(pathAttributes, inum)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// ListCustomScripts returns the custom scripts.
func (c *Client) ListCustomScripts(ctx context.Context, opts ListOptions) ([]CustomScript, error) {
	return list[CustomScript](ctx, c, pathScripts, opts)
}

// GetLoggingConfig returns the server logging configuration.
func (c *Client) GetLoggingConfig(ctx context.Context) (*LoggingConfig, error) {
	var cfg LoggingConfig
	if err := c.do(ctx, http.MethodGet, pathLogging, nil, nil, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// EditLoggingConfig replaces the server logging configuration.
func (c *Client) EditLoggingConfig(ctx context.Context, cfg LoggingConfig) (*LoggingConfig, error) {
	var out LoggingConfig
	if err := c.do(ctx, http.MethodPut, pathLogging, nil, cfg, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
