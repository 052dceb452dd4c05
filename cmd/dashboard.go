package cmd

import (
	"context"
	"fmt"
	"time"

	"jansctl/internal/cli"
	"jansctl/internal/dashboard"
	"jansctl/pkg/logging"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var (
	dashboardInterval time.Duration
	dashboardTab      string
)

// dashboardCmd runs the live terminal dashboard
var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"ui"},
	Short:   "Open the live dashboard",
	Long: `Open a full-screen dashboard with the report cards and the logging
configuration. Cards the API access token cannot read show "no access".

When --token-file is set the file is watched and every new identity token is
traded for a new API access token.

Keys: r refreshes, tab switches page, q quits.

Examples:
  jansctl dashboard
  jansctl dashboard --interval 30s --tab logging`,
	Args: cobra.NoArgs,
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
	cli.RegisterConnectionFlags(dashboardCmd, &apiFlags)
	dashboardCmd.Flags().DurationVar(&dashboardInterval, "interval", 0, "Refresh every interval (0 disables)")
	dashboardCmd.Flags().StringVar(&dashboardTab, "tab", "reports", "Initial page (reports, logging)")
}

func parseDashboardTab(s string) (dashboard.Tab, error) {
	switch s {
	case "reports", "":
		return dashboard.TabReports, nil
	case "logging":
		return dashboard.TabLogging, nil
	default:
		return 0, fmt.Errorf("unknown tab %q (valid: reports, logging)", s)
	}
}

// startInteractive builds the runtime for a long-running session. A failed
// token request is only logged: the views show what is missing.
func startInteractive(cmd *cobra.Command) (*runtime, context.CancelFunc, error) {
	rt, err := newRuntime(apiFlags)
	if err != nil {
		return nil, nil, err
	}
	ctx, cancel := context.WithCancel(cmd.Context())
	if err := rt.authenticate(ctx); err != nil {
		logging.Warn("Runtime", "Continuing without an API access token: %v", err)
	}
	rt.watchTokenFile(ctx)
	return rt, cancel, nil
}

func runDashboard(cmd *cobra.Command, args []string) error {
	tab, err := parseDashboardTab(dashboardTab)
	if err != nil {
		return err
	}
	if dashboardInterval < 0 {
		return fmt.Errorf("--interval cannot be negative")
	}

	rt, cancel, err := startInteractive(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()
	defer cancel()

	model := dashboard.New(rt.store, dashboard.WithInterval(dashboardInterval), dashboard.WithTab(tab))
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("dashboard failed: %w", err)
	}
	return nil
}
