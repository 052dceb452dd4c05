package oauth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os/exec"
	"runtime"

	"golang.org/x/oauth2"
)

// stateBytes is the number of random bytes for the state parameter.
const stateBytes = 32

// AuthorizeOptions configures an authorization-code + PKCE login.
type AuthorizeOptions struct {
	ClientID     string
	Scopes       []string
	CallbackPort int

	// OpenBrowser is called with the authorization URL. Nil uses OpenBrowser.
	OpenBrowser func(string) error

	// OnURL, when set, receives the authorization URL before the browser is
	// opened so it can be printed for headless sessions.
	OnURL func(string)
}

// Authorize runs the browser leg of the authorization-code flow: it starts a
// loopback callback server, sends the user to the authorization endpoint with
// a PKCE S256 challenge and waits for the redirect. The returned CodeExchange
// is ready for Client.ExchangeCode once the client secret is filled in.
func Authorize(ctx context.Context, metadata *Metadata, opts AuthorizeOptions) (*CodeExchange, error) {
	if metadata == nil || metadata.AuthorizationEndpoint == "" {
		return nil, fmt.Errorf("issuer metadata has no authorization endpoint")
	}
	if !metadata.SupportsPKCE() {
		return nil, fmt.Errorf("issuer %s does not support S256 PKCE", metadata.Issuer)
	}

	ctx, cancel := context.WithTimeout(ctx, CallbackTimeout)
	defer cancel()

	server := NewCallbackServer(opts.CallbackPort)
	redirectURI, err := server.Start(ctx)
	if err != nil {
		return nil, err
	}
	defer server.Stop()

	state, err := GenerateState()
	if err != nil {
		return nil, err
	}
	verifier := oauth2.GenerateVerifier()

	conf := &oauth2.Config{
		ClientID:    opts.ClientID,
		Endpoint:    metadata.Endpoint(),
		RedirectURL: redirectURI,
		Scopes:      opts.Scopes,
	}
	authURL := conf.AuthCodeURL(state, oauth2.S256ChallengeOption(verifier))

	if opts.OnURL != nil {
		opts.OnURL(authURL)
	}
	open := opts.OpenBrowser
	if open == nil {
		open = OpenBrowser
	}
	if err := open(authURL); err != nil {
		// The URL was already surfaced through OnURL; keep waiting.
		if opts.OnURL == nil {
			return nil, err
		}
	}

	result, err := server.WaitForCallback(ctx)
	if err != nil {
		return nil, fmt.Errorf("waiting for authorization callback: %w", err)
	}
	if result.IsError() {
		return nil, fmt.Errorf("authorization failed: %s: %s", result.Error, result.ErrorDescription)
	}
	if result.State != state {
		return nil, fmt.Errorf("authorization callback state mismatch")
	}
	if result.Code == "" {
		return nil, fmt.Errorf("authorization callback carried no code")
	}

	return &CodeExchange{
		Code:         result.Code,
		CodeVerifier: verifier,
		RedirectURI:  redirectURI,
		ClientID:     opts.ClientID,
	}, nil
}

// GenerateState generates a random state parameter.
func GenerateState() (string, error) {
	buf := make([]byte, stateBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// OpenBrowser opens the URL in the default web browser.
func OpenBrowser(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "linux", "freebsd", "openbsd":
		cmd = exec.Command("xdg-open", url)
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}
