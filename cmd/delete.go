package cmd

import (
	"context"
	"fmt"

	"jansctl/internal/cli"

	"github.com/spf13/cobra"
)

var deleteForce bool

// deleteCmd removes one scope or attribute
var deleteCmd = &cobra.Command{
	Use:     "delete <scope|attribute> <inum>",
	Aliases: []string{"rm", "del"},
	Short:   "Delete a scope or attribute",
	Long: `Delete a scope or user attribute by inum.

The API access token must carry the delete scope of the collection. By
default, this command asks for confirmation. Use --force to skip the prompt.

Examples:
  jansctl delete scope 43F1
  jansctl rm attribute 29DA --force`,
	Args:      cobra.ExactArgs(2),
	ValidArgs: entityKinds,
	RunE:      runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	cli.RegisterCommonFlags(deleteCmd, &apiFlags)
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Skip confirmation prompt")
}

func runDelete(cmd *cobra.Command, args []string) error {
	kind, err := parseEntityKind(args[0])
	if err != nil {
		return err
	}
	inum := args[1]

	return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
		out := cmd.OutOrStdout()
		if !deleteForce && !confirmAction(cmd, fmt.Sprintf("Delete %s %s on %s?", kind, inum, rt.settings.Server)) {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}

		if err := rt.svc.Delete(ctx, kind, inum); err != nil {
			return err
		}
		if !apiFlags.Quiet {
			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Deleted %s %s", kind, inum)))
		}
		return nil
	})
}
