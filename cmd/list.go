package cmd

import (
	"context"
	"fmt"
	"strings"

	"jansctl/internal/api"
	"jansctl/internal/cli"

	"github.com/spf13/cobra"
)

var (
	listPattern    string
	listLimit      int
	listStartIndex int
	listStatus     string
)

var attributeStatusFilters = []string{"active", "inactive", "all"}

// listCmd lists one collection of the config API
var listCmd = &cobra.Command{
	Use:     "list <clients|scopes|attributes|scripts>",
	Aliases: []string{"ls"},
	Short:   "List a collection",
	Long: `List OpenID clients, scopes, user attributes or custom scripts.

The collection is only fetched when the API access token carries its read
scope. The table footer names the actions the token allows on the rows.

Examples:
  jansctl list clients
  jansctl list scopes --pattern profile
  jansctl list attributes --status inactive --limit 20
  jansctl list scripts -o json`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: listResourceTypes(),
	RunE:      runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	cli.RegisterCommonFlags(listCmd, &apiFlags)

	listCmd.Flags().StringVar(&listPattern, "pattern", "", "Server-side search pattern")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum number of entries (0 uses the server default)")
	listCmd.Flags().IntVar(&listStartIndex, "start-index", 0, "Index of the first entry")
	listCmd.Flags().StringVar(&listStatus, "status", "", "Attribute status filter (active, inactive, all)")
}

// listResourceTypes returns the collection names for shell completion.
func listResourceTypes() []string {
	kinds := api.Kinds()
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = k.Plural()
	}
	return out
}

// listOptions builds the query of kind from the flags.
func listOptions(kind api.Kind) (api.ListOptions, error) {
	if listLimit < 0 || listStartIndex < 0 {
		return api.ListOptions{}, fmt.Errorf("--limit and --start-index cannot be negative")
	}
	opts := api.ListOptions{
		Pattern:    listPattern,
		Limit:      listLimit,
		StartIndex: listStartIndex,
	}
	if listStatus != "" {
		if kind != api.KindAttribute {
			return api.ListOptions{}, fmt.Errorf("--status only applies to attributes")
		}
		status := strings.ToLower(listStatus)
		if !contains(attributeStatusFilters, status) {
			return api.ListOptions{}, fmt.Errorf("invalid --status %q (valid: %s)", listStatus, strings.Join(attributeStatusFilters, ", "))
		}
		opts.Status = status
	}
	return opts, nil
}

func runList(cmd *cobra.Command, args []string) error {
	kind, err := api.ParseKind(args[0])
	if err != nil {
		return err
	}
	opts, err := listOptions(kind)
	if err != nil {
		return err
	}

	return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
		p := rt.progress(fmt.Sprintf("Listing %s...", kind.Plural()))
		l, err := rt.svc.List(ctx, kind, opts)
		if err != nil {
			p.Fail(fmt.Sprintf("Failed to list %s", kind.Plural()))
			return err
		}
		p.Stop()

		out := cmd.OutOrStdout()
		if l.Count == 0 && cli.OutputFormat(rt.settings.Output).IsTable() {
			fmt.Fprintf(out, "No %s found.\n", kind.Plural())
			return nil
		}
		return rt.print(out, l.Items, &l.Table)
	})
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
