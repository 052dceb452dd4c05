package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"jansctl/internal/cli"
	jansctx "jansctl/internal/context"

	"github.com/spf13/cobra"
)

var (
	contextConfigPath       string
	contextServer           string
	contextIssuer           string
	contextClientID         string
	contextOutput           string
	contextAddSetCurrent    bool
	contextDeleteForce      bool
	contextQuiet            bool
	contextShowOutputFormat string
)

// contextCmd represents the context command group
var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Manage jansctl contexts",
	Long: `Manage named contexts for different Jans servers.

Contexts provide a convenient way to work with several Jans servers without
specifying --server for every command. Similar to kubectl's context
management.

Examples:
  jansctl context                                    # List all contexts
  jansctl context current                            # Show current context
  jansctl context use production                     # Switch to context (alias: switch)
  jansctl context add staging --server <url>         # Add new context
  jansctl context add staging --server <url> --use   # Add and switch
  jansctl context update staging --issuer <url>      # Update context (alias: set)
  jansctl context delete staging --force             # Remove without confirmation
  jansctl context rename staging stage               # Rename a context
  jansctl context show production -o json            # Show as JSON

Context Configuration:
  Contexts are stored in ~/.config/jansctl/contexts.yaml

Precedence (highest to lowest):
  1. --server flag or JANSCTL_SERVER
  2. --context flag
  3. JANSCTL_CONTEXT environment variable
  4. current-context from contexts.yaml
  5. server from config.yaml`,
	Args: cobra.NoArgs,
	RunE: runContextList,
}

var contextListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all contexts",
	Long: `List all configured contexts.

The current context is marked with an asterisk (*).`,
	Args: cobra.NoArgs,
	RunE: runContextList,
}

var contextCurrentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show current context name",
	Long: `Display the name of the currently active context.

Returns nothing if no context is set.`,
	Args: cobra.NoArgs,
	RunE: runContextCurrent,
}

var contextUseCmd = &cobra.Command{
	Use:               "use <name>",
	Aliases:           []string{"switch"},
	Short:             "Switch to a different context",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeContextNames,
	RunE:              runContextUse,
}

var contextAddCmd = &cobra.Command{
	Use:   "add <name> --server <url>",
	Short: "Add a new context",
	Long: `Add a new named context pointing to a Jans server.

Context names must:
  - Be between 1 and 63 characters
  - Contain only lowercase letters, numbers, and hyphens
  - Start and end with an alphanumeric character

The issuer defaults to the server URL.

Examples:
  jansctl context add prod --server https://jans.example.org --use
  jansctl context add dev --server https://dev.example.org --issuer https://login.example.org`,
	Args: cobra.ExactArgs(1),
	RunE: runContextAdd,
}

var contextDeleteCmd = &cobra.Command{
	Use:     "delete <name>",
	Aliases: []string{"rm", "remove"},
	Short:   "Delete a context",
	Long: `Remove a context by name.

If the deleted context was the current context, the current context will be
cleared. By default, this command asks for confirmation. Use --force to skip
the prompt.`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeContextNames,
	RunE:              runContextDelete,
}

var contextRenameCmd = &cobra.Command{
	Use:   "rename <old-name> <new-name>",
	Short: "Rename a context",
	Args:  cobra.ExactArgs(2),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) == 0 {
			return getContextNamesForCompletion(), cobra.ShellCompDirectiveNoFileComp
		}
		return nil, cobra.ShellCompDirectiveNoFileComp
	},
	RunE: runContextRename,
}

var contextShowCmd = &cobra.Command{
	Use:               "show <name>",
	Aliases:           []string{"describe", "get"},
	Short:             "Show context details",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeContextNames,
	RunE:              runContextShow,
}

var contextUpdateCmd = &cobra.Command{
	Use:     "update <name>",
	Aliases: []string{"set"},
	Short:   "Update an existing context",
	Long: `Update the server, issuer or settings of an existing context. Only the
flags given are changed.

Examples:
  jansctl context update staging --server https://new-staging.example.org
  jansctl context set production --client-id 2000.custom --output wide`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeContextNames,
	RunE:              runContextUpdate,
}

func init() {
	rootCmd.AddCommand(contextCmd)
	contextCmd.AddCommand(contextListCmd)
	contextCmd.AddCommand(contextCurrentCmd)
	contextCmd.AddCommand(contextUseCmd)
	contextCmd.AddCommand(contextAddCmd)
	contextCmd.AddCommand(contextDeleteCmd)
	contextCmd.AddCommand(contextRenameCmd)
	contextCmd.AddCommand(contextShowCmd)
	contextCmd.AddCommand(contextUpdateCmd)

	contextCmd.PersistentFlags().BoolVarP(&contextQuiet, "quiet", "q", false, "Suppress non-essential output")
	contextCmd.PersistentFlags().StringVar(&contextConfigPath, "config-path", "", "Configuration directory (default ~/.config/jansctl)")

	for _, c := range []*cobra.Command{contextAddCmd, contextUpdateCmd} {
		c.Flags().StringVar(&contextServer, "server", "", "Jans server URL")
		c.Flags().StringVar(&contextIssuer, "issuer", "", "OpenID issuer URL (defaults to the server)")
		c.Flags().StringVar(&contextClientID, "client-id", "", "OAuth client registered for this server")
		c.Flags().StringVar(&contextOutput, "output", "", "Default output format for this context")
	}
	_ = contextAddCmd.MarkFlagRequired("server")
	contextAddCmd.Flags().BoolVar(&contextAddSetCurrent, "use", false, "Set as current context after adding")

	contextDeleteCmd.Flags().BoolVarP(&contextDeleteForce, "force", "f", false, "Skip confirmation prompt")

	contextShowCmd.Flags().StringVarP(&contextShowOutputFormat, "output", "o", "text", "Output format (text, json, yaml)")
}

// contextStorage opens contexts.yaml in --config-path or the default directory.
func contextStorage() (*jansctx.Storage, error) {
	if contextConfigPath != "" {
		return jansctx.NewStorageWithPath(contextConfigPath), nil
	}
	storage, err := jansctx.NewStorage()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize context storage: %w", err)
	}
	return storage, nil
}

// completeContextNames provides shell completion for context names
func completeContextNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return getContextNamesForCompletion(), cobra.ShellCompDirectiveNoFileComp
}

func getContextNamesForCompletion() []string {
	storage, err := contextStorage()
	if err != nil {
		return nil
	}
	names, err := storage.GetContextNames()
	if err != nil {
		return nil
	}
	return names
}

// contextSettings returns the settings given on the command line, or nil.
func contextSettings(cmd *cobra.Command, current *jansctx.ContextSettings) (*jansctx.ContextSettings, error) {
	flags := cmd.Flags()
	if !flags.Changed("client-id") && !flags.Changed("output") {
		return current, nil
	}
	settings := &jansctx.ContextSettings{}
	if current != nil {
		*settings = *current
	}
	if flags.Changed("client-id") {
		settings.ClientID = contextClientID
	}
	if flags.Changed("output") {
		if contextOutput != "" {
			if err := cli.ValidateOutputFormat(contextOutput); err != nil {
				return nil, err
			}
		}
		settings.Output = contextOutput
	}
	if *settings == (jansctx.ContextSettings{}) {
		return nil, nil
	}
	return settings, nil
}

func runContextList(cmd *cobra.Command, args []string) error {
	storage, err := contextStorage()
	if err != nil {
		return err
	}
	config, err := storage.Load()
	if err != nil {
		return fmt.Errorf("failed to load contexts: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(config.Contexts) == 0 {
		if !contextQuiet {
			fmt.Fprintln(out, "No contexts configured yet.")
			fmt.Fprintln(out, "")
			fmt.Fprintln(out, "Get started by adding your first context:")
			fmt.Fprintln(out, "  jansctl context add prod --server https://jans.example.org")
		}
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CURRENT\tNAME\tSERVER\tISSUER")
	for _, ctx := range config.Contexts {
		current := ""
		if ctx.Name == config.CurrentContext {
			current = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", current, ctx.Name, ctx.Server, ctx.IssuerURL())
	}
	return w.Flush()
}

func runContextCurrent(cmd *cobra.Command, args []string) error {
	storage, err := contextStorage()
	if err != nil {
		return err
	}
	name, err := storage.GetCurrentContextName()
	if err != nil {
		return fmt.Errorf("failed to get current context: %w", err)
	}
	if name != "" {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}

func runContextUse(cmd *cobra.Command, args []string) error {
	name := args[0]
	storage, err := contextStorage()
	if err != nil {
		return err
	}

	if err := storage.SetCurrentContext(name); err != nil {
		var notFoundErr *jansctx.ContextNotFoundError
		if errors.As(err, &notFoundErr) {
			return fmt.Errorf("context %q not found. Use 'jansctl context list' to see available contexts", name)
		}
		return fmt.Errorf("failed to set current context: %w", err)
	}

	if !contextQuiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Switched to context %q\n", name)
	}
	return nil
}

func runContextAdd(cmd *cobra.Command, args []string) error {
	name := args[0]
	storage, err := contextStorage()
	if err != nil {
		return err
	}

	settings, err := contextSettings(cmd, nil)
	if err != nil {
		return err
	}
	ctx := jansctx.Context{Name: name, Server: contextServer, Issuer: contextIssuer, Settings: settings}
	if err := storage.AddContext(ctx); err != nil {
		return fmt.Errorf("failed to add context: %w", err)
	}

	out := cmd.OutOrStdout()
	if !contextQuiet {
		fmt.Fprintf(out, "Context %q added.\n", name)
	}

	if contextAddSetCurrent {
		if err := storage.SetCurrentContext(name); err != nil {
			return fmt.Errorf("failed to set current context: %w", err)
		}
		if !contextQuiet {
			fmt.Fprintf(out, "Switched to context %q\n", name)
		}
	} else if !contextQuiet {
		currentName, _ := storage.GetCurrentContextName()
		if currentName != name {
			fmt.Fprintf(out, "\nTo use this context, run:\n  jansctl context use %s\n", name)
		}
	}
	return nil
}

func runContextDelete(cmd *cobra.Command, args []string) error {
	name := args[0]
	storage, err := contextStorage()
	if err != nil {
		return err
	}

	ctx, err := storage.GetContext(name)
	if err != nil {
		return fmt.Errorf("failed to check context: %w", err)
	}
	if ctx == nil {
		return fmt.Errorf("context %q not found", name)
	}

	currentName, _ := storage.GetCurrentContextName()
	wasCurrent := currentName == name
	out := cmd.OutOrStdout()

	if !contextDeleteForce {
		prompt := fmt.Sprintf("Delete context %q?", name)
		if wasCurrent {
			prompt = fmt.Sprintf("Delete context %q (current context)?", name)
		}
		if !confirmAction(cmd, prompt) {
			if !contextQuiet {
				fmt.Fprintln(out, "Aborted.")
			}
			return nil
		}
	}

	if err := storage.DeleteContext(name); err != nil {
		return fmt.Errorf("failed to delete context: %w", err)
	}

	if !contextQuiet {
		fmt.Fprintf(out, "Context %q deleted.\n", name)
		if wasCurrent {
			fmt.Fprintln(out, "Note: This was the current context. Current context is now unset.")
		}
	}
	return nil
}

func runContextRename(cmd *cobra.Command, args []string) error {
	oldName, newName := args[0], args[1]
	storage, err := contextStorage()
	if err != nil {
		return err
	}

	if err := storage.RenameContext(oldName, newName); err != nil {
		return fmt.Errorf("failed to rename context: %w", err)
	}
	if !contextQuiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Context %q renamed to %q.\n", oldName, newName)
	}
	return nil
}

// contextDetails is the structured output of context show.
type contextDetails struct {
	Name     string                   `json:"name"`
	Server   string                   `json:"server"`
	Issuer   string                   `json:"issuer"`
	Current  bool                     `json:"current"`
	Settings *jansctx.ContextSettings `json:"settings,omitempty"`
}

func runContextShow(cmd *cobra.Command, args []string) error {
	name := args[0]
	storage, err := contextStorage()
	if err != nil {
		return err
	}
	config, err := storage.Load()
	if err != nil {
		return fmt.Errorf("failed to load contexts: %w", err)
	}

	ctx := config.GetContext(name)
	if ctx == nil {
		return fmt.Errorf("context %q not found", name)
	}
	details := contextDetails{
		Name:     ctx.Name,
		Server:   ctx.Server,
		Issuer:   ctx.IssuerURL(),
		Current:  config.CurrentContext == name,
		Settings: ctx.Settings,
	}

	out := cmd.OutOrStdout()
	switch contextShowOutputFormat {
	case "json", "yaml":
		return printOutput(out, contextShowOutputFormat, details, nil)
	case "text", "":
	default:
		return fmt.Errorf("unsupported output format: %q (valid: text, json, yaml)", contextShowOutputFormat)
	}

	fmt.Fprintf(out, "Name:     %s\n", details.Name)
	fmt.Fprintf(out, "Server:   %s\n", details.Server)
	fmt.Fprintf(out, "Issuer:   %s\n", details.Issuer)
	if details.Current {
		fmt.Fprintf(out, "Current:  yes\n")
	}
	if s := details.Settings; s != nil {
		fmt.Fprintln(out, "Settings:")
		if s.ClientID != "" {
			fmt.Fprintf(out, "  client-id: %s\n", s.ClientID)
		}
		if s.Output != "" {
			fmt.Fprintf(out, "  output: %s\n", s.Output)
		}
	}
	return nil
}

func runContextUpdate(cmd *cobra.Command, args []string) error {
	name := args[0]
	storage, err := contextStorage()
	if err != nil {
		return err
	}

	existing, err := storage.GetContext(name)
	if err != nil {
		return fmt.Errorf("failed to load context: %w", err)
	}
	if existing == nil {
		return fmt.Errorf("context %q not found. Use 'jansctl context add' to create a new context", name)
	}

	flags := cmd.Flags()
	if !flags.Changed("server") && !flags.Changed("issuer") && !flags.Changed("client-id") && !flags.Changed("output") {
		return fmt.Errorf("nothing to update; use --server, --issuer, --client-id or --output")
	}

	updated := *existing
	if flags.Changed("server") {
		updated.Server = contextServer
	}
	if flags.Changed("issuer") {
		updated.Issuer = contextIssuer
	}
	if updated.Settings, err = contextSettings(cmd, existing.Settings); err != nil {
		return err
	}

	if err := storage.UpdateContext(updated); err != nil {
		return fmt.Errorf("failed to update context: %w", err)
	}
	if !contextQuiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Context %q updated.\n", name)
	}
	return nil
}

// confirmAction prompts on the command's output and reads the answer from
// its input. It returns true if the user confirms.
func confirmAction(cmd *cobra.Command, prompt string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", prompt)

	reader := bufio.NewReader(cmd.InOrStdin())
	response, err := reader.ReadString('\n')
	if err != nil && response == "" {
		return false
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
