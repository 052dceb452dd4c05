package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"jansctl/internal/cli"
	"jansctl/internal/config"
	"jansctl/internal/session"
	"jansctl/internal/store"
	"jansctl/pkg/auth"
	"jansctl/pkg/logging"
	"jansctl/pkg/oauth"

	"github.com/spf13/cobra"
)

// loginScopes are requested from the identity server for the user login.
var loginScopes = []string{"openid", "profile", "email", "user_name"}

var (
	loginNoBrowser bool
	loginSaveToken bool
	tokenPrint     bool
)

// authCmd represents the auth command group
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage authentication to the Jans server",
	Long: `Manage authentication to the Jans config API.

jansctl holds two tokens: the user's identity token, obtained with a browser
login or supplied through JANSCTL_ID_TOKEN or --token-file, and the API
access token minted from it. The scopes of the API access token decide which
operations are available.

Examples:
  jansctl auth login                   # Browser login, then mint an API token
  jansctl auth login --save-token      # Also write the identity token to --token-file
  jansctl auth whoami                  # Show the user and the granted scopes
  jansctl auth token                   # Mint a new API access token
  jansctl auth discover                # Show the issuer metadata`,
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in through the browser",
	Long: `Log in with the authorization code flow and PKCE.

A loopback callback server receives the redirect. The code is exchanged for
the user's tokens, the userinfo document becomes the identity token and an
API access token is minted from it.`,
	Args: cobra.NoArgs,
	RunE: runAuthLogin,
}

var authTokenCmd = &cobra.Command{
	Use:     "token",
	Aliases: []string{"refresh"},
	Short:   "Mint a new API access token",
	Long: `Trade the identity token for a new API access token.

Use --print to write the token to stdout, e.g. for curl.`,
	Args: cobra.NoArgs,
	RunE: runAuthToken,
}

var authWhoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current identity and granted scopes",
	Args:  cobra.NoArgs,
	RunE:  runAuthWhoami,
}

var authDiscoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Show the issuer's OpenID metadata",
	Args:  cobra.NoArgs,
	RunE:  runAuthDiscover,
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authTokenCmd)
	authCmd.AddCommand(authWhoamiCmd)
	authCmd.AddCommand(authDiscoverCmd)
	cli.RegisterCommonFlags(authCmd, &apiFlags)

	authLoginCmd.Flags().BoolVar(&loginNoBrowser, "no-browser", false, "Print the authorization URL instead of opening a browser")
	authLoginCmd.Flags().BoolVar(&loginSaveToken, "save-token", false, "Write the identity token to --token-file and record that path in config.yaml")
	authTokenCmd.Flags().BoolVar(&tokenPrint, "print", false, "Print the API access token")
}

// authPrintln prints unless --quiet is set.
func authPrintln(cmd *cobra.Command, format string, args ...interface{}) {
	if !apiFlags.Quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), format+"\n", args...)
	}
}

func runAuthLogin(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(apiFlags)
	if err != nil {
		return err
	}
	defer rt.Close()
	ctx := cmd.Context()

	if loginSaveToken && rt.settings.TokenFile == "" {
		return fmt.Errorf("--save-token needs --token-file or token-file in config.yaml")
	}

	md, err := rt.svc.Discover(ctx, "")
	if err != nil {
		return &cli.AuthFailedError{Server: rt.settings.Server, Reason: err}
	}

	opts := oauth.AuthorizeOptions{
		ClientID:     rt.settings.ClientID,
		Scopes:       loginScopes,
		CallbackPort: rt.settings.CallbackPort,
		OnURL: func(u string) {
			authPrintln(cmd, "Open this URL to log in:\n  %s", u)
		},
	}
	if loginNoBrowser {
		opts.OpenBrowser = func(string) error { return nil }
	}

	authPrintln(cmd, "Waiting for the browser login (timeout %s)...", oauth.CallbackTimeout)
	exchange, err := oauth.Authorize(ctx, md, opts)
	if err != nil {
		return &cli.AuthFailedError{Server: rt.settings.Server, Reason: err}
	}

	p := rt.progress("Exchanging authorization code...")
	if err := rt.svc.Login(ctx, *exchange); err != nil {
		p.Fail("Login failed")
		return err
	}
	p.Stop()

	sess := rt.svc.State().Auth.Session
	if loginSaveToken {
		if err := writeTokenFile(rt.settings.TokenFile, sess.IdentityToken); err != nil {
			return err
		}
		authPrintln(cmd, "Identity token written to %s", rt.settings.TokenFile)
		saved, err := rememberTokenFile(apiFlags, rt.settings.TokenFile)
		if err != nil {
			return err
		}
		if saved {
			authPrintln(cmd, "Token file recorded in config.yaml")
		}
	}

	name := sess.User.DisplayName()
	if name == "" {
		name = "unknown user"
	}
	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf(
		"Logged in to %s as %s (%d scopes granted)", rt.settings.Server, name, sess.Permissions.Len())))
	return nil
}

// writeTokenFile stores tok with owner-only permissions.
func writeTokenFile(path string, tok session.Secret) error {
	if tok.IsEmpty() {
		return fmt.Errorf("no identity token to save")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(tok.Value()+"\n"), 0o600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

// rememberTokenFile records path as token-file in config.yaml so later runs
// pick up the saved identity token. It reports whether the file changed.
func rememberTokenFile(flags cli.CommandFlags, path string) (bool, error) {
	dir, err := configDir(flags)
	if err != nil {
		return false, err
	}
	cfg, err := config.LoadConfig(dir)
	if err != nil {
		return false, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return false, fmt.Errorf("failed to resolve token file: %w", err)
	}
	if cfg.TokenFile == abs {
		return false, nil
	}
	cfg.TokenFile = abs
	if err := config.SaveConfig(dir, cfg); err != nil {
		return false, err
	}
	return true, nil
}

func runAuthToken(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(apiFlags)
	if err != nil {
		return err
	}
	defer rt.Close()

	p := rt.progress("Requesting API access token...")
	if err := rt.svc.RenewToken(cmd.Context()); err != nil {
		p.Fail("Token request failed")
		return err
	}
	p.Stop()

	sess := rt.svc.State().Auth.Session
	if tokenPrint {
		fmt.Fprintln(cmd.OutOrStdout(), sess.AccessToken.Value())
		return nil
	}
	msg := fmt.Sprintf("Obtained API access token with %d scopes", sess.Permissions.Len())
	if !sess.AccessTokenExpiry.IsZero() {
		msg += fmt.Sprintf(", valid until %s", sess.AccessTokenExpiry.Local().Format(time.RFC3339))
	}
	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(msg))
	return nil
}

// buildStatus summarizes the session of state.
func buildStatus(s store.State, contextName string) auth.StatusResponse {
	sess := s.Auth.Session
	status := auth.StatusResponse{
		Server:        sess.Server,
		Issuer:        sess.Issuer,
		Context:       contextName,
		Phase:         string(s.Auth.Phase),
		Authenticated: sess.IsAuthenticated(),
	}
	if s.Auth.Err != nil {
		status.Error = s.Auth.Err.Error()
	}
	if u := sess.User; u != nil {
		status.User = &auth.UserStatus{Subject: u.Subject, Name: u.Name, Email: u.Email}
		if !u.ExpiresAt.IsZero() {
			exp := u.ExpiresAt
			status.User.ExpiresAt = &exp
		}
	}
	if !sess.AccessTokenExpiry.IsZero() {
		exp := sess.AccessTokenExpiry
		status.AccessTokenExpiry = &exp
	}
	if sess.IsAuthenticated() {
		for _, c := range session.AllCapabilities() {
			status.Capabilities = append(status.Capabilities, auth.CapabilityStatus{
				Scope:   string(c),
				Short:   c.Short(),
				Granted: sess.Can(c),
			})
		}
	}
	return status
}

// writeStatus prints status as aligned text.
func writeStatus(cmd *cobra.Command, status auth.StatusResponse) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Server:   %s\n", status.Server)
	if status.Issuer != "" && status.Issuer != status.Server {
		fmt.Fprintf(out, "Issuer:   %s\n", status.Issuer)
	}
	if status.Context != "" {
		fmt.Fprintf(out, "Context:  %s\n", status.Context)
	}
	if status.User != nil {
		user := status.User.Subject
		if status.User.Name != "" {
			user = fmt.Sprintf("%s (%s)", status.User.Name, status.User.Subject)
		}
		fmt.Fprintf(out, "User:     %s\n", user)
	}
	fmt.Fprintf(out, "Status:   %s\n", status.Phase)
	if status.AccessTokenExpiry != nil {
		fmt.Fprintf(out, "Expires:  %s\n", status.AccessTokenExpiry.Local().Format(time.RFC3339))
	}
	if status.Error != "" {
		fmt.Fprintf(out, "Error:    %s\n", status.Error)
	}
	if granted := status.Granted(); len(granted) > 0 {
		fmt.Fprintf(out, "Scopes:   %s\n", strings.Join(granted, "\n          "))
	}
}

func runAuthWhoami(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(apiFlags)
	if err != nil {
		return err
	}
	defer rt.Close()

	if err := rt.authenticate(cmd.Context()); err != nil {
		logging.Debug("Auth", "No API access token: %v", err)
	}

	status := buildStatus(rt.svc.State(), rt.settings.ContextName)
	if cli.OutputFormat(rt.settings.Output).IsTable() {
		writeStatus(cmd, status)
		if !status.Authenticated {
			return &cli.AuthRequiredError{Server: status.Server}
		}
		return nil
	}
	return rt.print(cmd.OutOrStdout(), status, nil)
}

func runAuthDiscover(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(apiFlags)
	if err != nil {
		return err
	}
	defer rt.Close()

	md, err := rt.svc.Discover(cmd.Context(), "")
	if err != nil {
		return err
	}
	return rt.print(cmd.OutOrStdout(), md, nil)
}
