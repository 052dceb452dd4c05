package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Environment variables read by the connection flags.
const (
	ServerEnvVar        = "JANSCTL_SERVER"
	IdentityTokenEnvVar = "JANSCTL_ID_TOKEN"
	ContextEnvVar       = "JANSCTL_CONTEXT"
)

// CommandFlags holds the flag values shared by the commands that talk to a
// Jans config API.
type CommandFlags struct {
	// OutputFormat specifies the desired output format
	OutputFormat string
	// Template is the Go template used with --output template
	Template string
	// NoHeaders suppresses the header row in table output
	NoHeaders bool
	// Quiet suppresses progress indicators and non-essential output
	Quiet bool
	// ConfigPath specifies a custom configuration directory path
	ConfigPath string
	// Server overrides the config API base URL
	Server string
	// Context specifies a named context to use for server resolution
	Context string
	// TokenFile is read for the identity token when set
	TokenFile string
}

// RegisterCommonFlags registers the connection flags plus the output flags.
//
// The registered flags are:
//   - --output/-o: Output format (table, wide, json, yaml, template), default: "table"
//   - --template: Go template for --output template
//   - --no-headers: Suppress header row in table output
//   - --quiet/-q: Suppress non-essential output
//   - the flags of RegisterConnectionFlags
func RegisterCommonFlags(cmd *cobra.Command, flags *CommandFlags) {
	cmd.PersistentFlags().StringVarP(&flags.OutputFormat, "output", "o", "", "Output format (table, wide, json, yaml, template)")
	cmd.PersistentFlags().StringVar(&flags.Template, "template", "", "Go template for --output template (sprig functions available)")
	cmd.PersistentFlags().BoolVar(&flags.NoHeaders, "no-headers", false, "Suppress header row in table output")
	cmd.PersistentFlags().BoolVarP(&flags.Quiet, "quiet", "q", false, "Suppress non-essential output")
	RegisterConnectionFlags(cmd, flags)
}

// RegisterConnectionFlags registers only the flags that select the server
// and the credentials.
//
// The registered flags are:
//   - --config-path: Configuration directory
//   - --server: Jans server URL (env: JANSCTL_SERVER)
//   - --context: Use a specific context (env: JANSCTL_CONTEXT)
//   - --token-file: File holding the identity token, watched for changes
func RegisterConnectionFlags(cmd *cobra.Command, flags *CommandFlags) {
	cmd.PersistentFlags().StringVar(&flags.ConfigPath, "config-path", "", "Configuration directory (default ~/.config/jansctl)")
	cmd.PersistentFlags().StringVar(&flags.Server, "server", "", fmt.Sprintf("Jans server URL (env: %s)", ServerEnvVar))
	cmd.PersistentFlags().StringVar(&flags.Context, "context", "", fmt.Sprintf("Use a specific context (env: %s)", ContextEnvVar))
	cmd.PersistentFlags().StringVar(&flags.TokenFile, "token-file", "", "File holding the identity token; re-read when it changes")
}

// Validate checks the output flags.
func (f *CommandFlags) Validate() error {
	if f.OutputFormat == "" {
		return nil
	}
	if err := ValidateOutputFormat(f.OutputFormat); err != nil {
		return err
	}
	if OutputFormat(f.OutputFormat) == OutputFormatTemplate && f.Template == "" {
		return fmt.Errorf("--output template requires --template")
	}
	return nil
}

// EnvIdentityToken returns the identity token from the environment.
func EnvIdentityToken() string {
	return os.Getenv(IdentityTokenEnvVar)
}
