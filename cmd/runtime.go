package cmd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"jansctl/internal/actions"
	"jansctl/internal/admin"
	"jansctl/internal/api"
	"jansctl/internal/cli"
	"jansctl/internal/config"
	jansctx "jansctl/internal/context"
	"jansctl/internal/effects"
	"jansctl/internal/formatting"
	"jansctl/internal/session"
	"jansctl/internal/store"
	"jansctl/pkg/logging"
	"jansctl/pkg/oauth"

	"github.com/spf13/cobra"
)

// apiFlags are the connection and output flags of every command that talks
// to the config API. Only one command runs per process.
var apiFlags cli.CommandFlags

// runtime is the wiring of one invocation: settings, store, effect runner
// and the service the commands call.
type runtime struct {
	settings config.Settings
	store    *store.Store
	runner   *effects.Runner
	svc      *admin.Service
}

// configDir returns --config-path or ~/.config/jansctl.
func configDir(flags cli.CommandFlags) (string, error) {
	if flags.ConfigPath != "" {
		return flags.ConfigPath, nil
	}
	return config.DefaultConfigPath()
}

// loadSettings layers config.yaml, the active context, the environment and
// flags.
func loadSettings(flags cli.CommandFlags) (config.Settings, error) {
	if err := flags.Validate(); err != nil {
		return config.Settings{}, err
	}
	dir, err := configDir(flags)
	if err != nil {
		return config.Settings{}, err
	}
	cfg, err := config.LoadConfig(dir)
	if err != nil {
		return config.Settings{}, err
	}
	return config.Resolve(cfg, jansctx.NewStorageWithPath(dir), flags)
}

// identityToken returns the token from the environment or the token file.
func identityToken(settings config.Settings) (session.Secret, error) {
	if settings.IdentityToken != "" {
		return session.NewSecret(settings.IdentityToken), nil
	}
	if settings.TokenFile != "" {
		return session.ReadTokenFile(settings.TokenFile)
	}
	return session.Secret{}, nil
}

// newSession builds the initial session. The user is decoded from the
// identity token when it is a JWT.
func newSession(settings config.Settings, idToken session.Secret) session.Session {
	sess := session.Session{
		Issuer:        settings.IssuerURL(),
		Server:        settings.Server,
		IdentityToken: idToken,
	}
	if !idToken.IsEmpty() {
		claims, err := session.ParseClaims(idToken.Value())
		if err != nil {
			logging.Debug("Session", "Identity token is not a readable JWT: %v", err)
		} else {
			sess.User = claims
		}
	}
	return sess
}

// newRuntime resolves the settings and starts the effect runner. Call Close
// when done.
func newRuntime(flags cli.CommandFlags) (*runtime, error) {
	settings, err := loadSettings(flags)
	if err != nil {
		return nil, err
	}
	if settings.Server == "" {
		return nil, fmt.Errorf("no server configured: use --server, %s or 'jansctl context add'", cli.ServerEnvVar)
	}

	idToken, err := identityToken(settings)
	if err != nil {
		return nil, err
	}

	grant, err := oauth.ParseGrant(settings.Grant)
	if err != nil {
		return nil, err
	}
	httpClient := &http.Client{Timeout: settings.Timeout}
	minter, err := oauth.NewMinter(grant, oauth.MinterOptions{HTTPClient: httpClient})
	if err != nil {
		return nil, err
	}

	deps := effects.DefaultDeps(httpClient, minter, effects.AuthSettings{
		ClientID:     settings.ClientID,
		ClientSecret: settings.ClientSecret,
		Scopes:       settings.Scopes,
		ConnectorID:  settings.DexConnector,
	}, api.WithUserAgent("jansctl/"+GetVersion()))

	st := store.New(store.NewState(newSession(settings, idToken)))
	runner := effects.NewRunner(st, deps)
	runner.Start()

	logging.Debug("Runtime", "Using server %s (context %q, grant %s)", settings.Server, settings.ContextName, grant)
	return &runtime{
		settings: settings,
		store:    st,
		runner:   runner,
		svc:      admin.New(st, runner),
	}, nil
}

// Close stops the effect runner, cancelling requests in flight.
func (r *runtime) Close() {
	r.runner.Stop()
}

// authenticate makes sure an API access token is held before a command
// issues requests.
func (r *runtime) authenticate(ctx context.Context) error {
	return r.svc.EnsureToken(ctx)
}

// watchTokenFile requests a new API access token every time the token file
// changes. It returns immediately; the watcher stops with ctx.
func (r *runtime) watchTokenFile(ctx context.Context) {
	path := r.settings.TokenFile
	if path == "" {
		return
	}
	go func() {
		err := session.WatchIdentityToken(ctx, path, func(tok session.Secret) {
			r.store.Dispatch(actions.GetAPIAccessToken{IdentityToken: tok})
		})
		if err != nil {
			logging.Warn("Runtime", "Not watching %s: %v", path, err)
		}
	}()
}

// contextLabel names the session in prompts: the context, else the server.
func (r *runtime) contextLabel() string {
	if r.settings.ContextName != "" {
		return r.settings.ContextName
	}
	return r.settings.Server
}

// print renders data in the resolved output format.
func (r *runtime) print(w io.Writer, data interface{}, tbl *formatting.Table) error {
	return printOutput(w, r.settings.Output, data, tbl)
}

// printOutput writes data with formatting.Print. Table output is followed
// by the actions the token allows, unless headers are suppressed.
func printOutput(w io.Writer, format string, data interface{}, tbl *formatting.Table) error {
	f := cli.OutputFormat(format)
	err := formatting.Print(w, formatting.Options{
		Format:    f,
		Template:  apiFlags.Template,
		NoHeaders: apiFlags.NoHeaders,
	}, data, tbl)
	if err != nil {
		return err
	}
	if tbl != nil && f.IsTable() && !apiFlags.NoHeaders && len(tbl.Footer) > 0 {
		fmt.Fprintf(w, "\nActions: %s\n", strings.Join(tbl.Footer, ", "))
	}
	return nil
}

// progress starts a spinner unless --quiet or a machine format was chosen.
func (r *runtime) progress(msg string) *cli.Progress {
	quiet := apiFlags.Quiet || !cli.OutputFormat(r.settings.Output).IsTable()
	return cli.StartProgress(msg, quiet)
}

// withRuntime builds the runtime, makes sure a token is held and calls fn.
func withRuntime(cmd *cobra.Command, fn func(ctx context.Context, rt *runtime) error) error {
	rt, err := newRuntime(apiFlags)
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx := cmd.Context()
	p := rt.progress("Authenticating...")
	if err := rt.authenticate(ctx); err != nil {
		p.Fail("Authentication failed")
		return err
	}
	p.Stop()
	return fn(ctx, rt)
}
