package cmd

import (
	"errors"
	"fmt"
	"os"

	"jansctl/internal/cli"
	"jansctl/pkg/logging"

	"github.com/spf13/cobra"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodeAuthRequired indicates no usable API access token: log in, or
	// run the command again after the token was renewed.
	ExitCodeAuthRequired = 2
	// ExitCodeAuthFailed indicates the OAuth flow or the token grant failed.
	ExitCodeAuthFailed = 3
	// ExitCodePermissionDenied indicates the token lacks the scope an
	// operation needs.
	ExitCodePermissionDenied = 4
	// ExitCodeUnavailable indicates the server could not be reached.
	ExitCodeUnavailable = 5
)

var (
	rootLogLevel string
	rootDebug    bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "jansctl",
	Short: "Administer a Jans identity server from the terminal",
	Long: `jansctl is a terminal console for the Jans config API.

It signs in through the identity server, trades the identity token for an
API access token and shows only the operations that token's scopes allow:
OpenID clients, scopes, user attributes, custom scripts and the server
logging configuration.

Examples:
  jansctl context add prod --server https://jans.example.org
  jansctl auth login
  jansctl list scopes --pattern profile
  jansctl dashboard
  jansctl console`,
	SilenceUsage:      true,
	PersistentPreRunE: initLogging,
}

// initLogging configures pkg/logging from --log-level and --debug.
func initLogging(cmd *cobra.Command, _ []string) error {
	level := rootLogLevel
	if rootDebug {
		level = "debug"
	}
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	logging.InitForCLI(lvl, cmd.ErrOrStderr())
	return nil
}

// SetVersion sets the version for the root command.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute runs the root command and exits with the code of the error.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "jansctl version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(getExitCode(err))
	}
}

// getExitCode maps an error to a semantic exit code for scripting.
func getExitCode(err error) int {
	if err == nil {
		return ExitCodeSuccess
	}

	var authRequired *cli.AuthRequiredError
	if errors.As(err, &authRequired) {
		return ExitCodeAuthRequired
	}

	var authExpired *cli.AuthExpiredError
	if errors.As(err, &authExpired) {
		return ExitCodeAuthRequired
	}

	var authFailed *cli.AuthFailedError
	if errors.As(err, &authFailed) {
		return ExitCodeAuthFailed
	}

	var denied *cli.PermissionDeniedError
	if errors.As(err, &denied) {
		return ExitCodePermissionDenied
	}

	var connErr *cli.ConnectionError
	if errors.As(err, &connErr) {
		return ExitCodeUnavailable
	}

	return ExitCodeError
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&rootDebug, "debug", false, "Shorthand for --log-level debug")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
}
