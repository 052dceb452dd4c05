package cmd

import (
	"context"

	"jansctl/internal/cli"
	"jansctl/internal/views"

	"github.com/spf13/cobra"
)

// reportEntry is the structured form of a report card.
type reportEntry struct {
	Title  string `json:"title"`
	Total  int    `json:"total"`
	Label  string `json:"label"`
	Count  int    `json:"count"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// reportsCmd prints the report cards once
var reportsCmd = &cobra.Command{
	Use:     "reports",
	Aliases: []string{"stats"},
	Short:   "Show the entity counters",
	Long: `Fetch every collection the API access token can read and print the
counters of the dashboard: enabled clients, active attributes, OAuth scopes
and enabled scripts.

Examples:
  jansctl reports
  jansctl reports -o json`,
	Args: cobra.NoArgs,
	RunE: runReports,
}

func init() {
	rootCmd.AddCommand(reportsCmd)
	cli.RegisterCommonFlags(reportsCmd, &apiFlags)
}

func reportEntries(cards []views.Card) []reportEntry {
	out := make([]reportEntry, len(cards))
	for i, c := range cards {
		e := reportEntry{Title: c.Title, Total: c.Total, Label: c.Label, Count: c.Count, Status: "ok"}
		switch {
		case c.Denied:
			e.Status = "denied"
		case c.Err != nil:
			e.Status, e.Error = "error", c.Err.Error()
		}
		out[i] = e
	}
	return out
}

func runReports(cmd *cobra.Command, args []string) error {
	return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
		p := rt.progress("Fetching collections...")
		if err := rt.svc.Refresh(ctx); err != nil {
			p.Fail("Refresh failed")
			return err
		}
		p.Stop()

		cards := views.Reports(rt.svc.State())
		out := cmd.OutOrStdout()
		if cli.OutputFormat(rt.settings.Output).IsTable() {
			_, err := out.Write([]byte(views.RenderReports(cards, 0) + "\n"))
			return err
		}
		return rt.print(out, reportEntries(cards), nil)
	})
}
