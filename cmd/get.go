package cmd

import (
	"context"
	"fmt"

	"jansctl/internal/api"
	"jansctl/internal/cli"
	"jansctl/internal/views"

	"github.com/spf13/cobra"
)

// entityKinds are the kinds that can be fetched, deleted or edited by inum.
var entityKinds = []string{string(api.KindScope), string(api.KindAttribute)}

// getCmd shows one scope or attribute
var getCmd = &cobra.Command{
	Use:     "get <scope|attribute> <inum>",
	Aliases: []string{"show", "describe"},
	Short:   "Show one scope or attribute",
	Long: `Fetch a scope or user attribute by inum and show its fields.

Examples:
  jansctl get scope 43F1
  jansctl get attribute 29DA -o yaml`,
	Args:      cobra.ExactArgs(2),
	ValidArgs: entityKinds,
	RunE:      runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
	cli.RegisterCommonFlags(getCmd, &apiFlags)
}

// parseEntityKind accepts only the kinds addressable by inum.
func parseEntityKind(s string) (api.Kind, error) {
	kind, err := api.ParseKind(s)
	if err != nil {
		return "", err
	}
	if kind != api.KindScope && kind != api.KindAttribute {
		return "", fmt.Errorf("%s cannot be addressed by inum; use 'jansctl list %s'", kind.Plural(), kind.Plural())
	}
	return kind, nil
}

func runGet(cmd *cobra.Command, args []string) error {
	kind, err := parseEntityKind(args[0])
	if err != nil {
		return err
	}
	inum := args[1]

	return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
		e, err := rt.svc.Get(ctx, kind, inum)
		if err != nil {
			return err
		}
		tbl := views.Detail(e, rt.svc.State().Auth.Session.Permissions)
		return rt.print(cmd.OutOrStdout(), e, &tbl)
	})
}
