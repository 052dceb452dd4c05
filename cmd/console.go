package cmd

import (
	"jansctl/internal/cli"
	"jansctl/internal/console"

	"github.com/spf13/cobra"
)

var consoleHistory bool

// consoleCmd starts the interactive console
var consoleCmd = &cobra.Command{
	Use:     "console",
	Aliases: []string{"repl", "shell"},
	Short:   "Start the interactive console",
	Long: `Start an interactive console with tab completion and history.

Commands run against one session, so the API access token is requested
once. After a command is rejected with 401 a new token is requested in the
background; run the command again.

Examples:
  jansctl console
  jansctl console --context staging`,
	Args: cobra.NoArgs,
	RunE: runConsole,
}

func init() {
	rootCmd.AddCommand(consoleCmd)
	cli.RegisterConnectionFlags(consoleCmd, &apiFlags)
	consoleCmd.Flags().BoolVar(&consoleHistory, "history", true, "Keep command history in ~/.config/jansctl")
}

func runConsole(cmd *cobra.Command, args []string) error {
	rt, cancel, err := startInteractive(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()
	defer cancel()

	opts := []console.Option{console.WithContextName(rt.contextLabel())}
	if !consoleHistory {
		opts = append(opts, console.WithHistoryFile(""))
	}
	return console.New(rt.svc, opts...).Run(cmd.Context())
}
