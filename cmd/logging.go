package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"jansctl/internal/api"
	"jansctl/internal/cli"
	"jansctl/internal/formatting"
	"jansctl/internal/views"

	"github.com/spf13/cobra"
)

var (
	loggingLevel            string
	loggingLayout           string
	loggingHTTP             bool
	loggingDisableJdkLogger bool
	loggingAudit            bool
)

// loggingCmd represents the logging command group
var loggingCmd = &cobra.Command{
	Use:     "logging",
	Aliases: []string{"log"},
	Short:   "Show or change the server logging configuration",
	Long: `Show or change the logging configuration of the Jans config API.

Reading requires the logging.readonly scope, saving the logging.write scope.

Examples:
  jansctl logging
  jansctl logging get -o json
  jansctl logging set --level DEBUG --http-logging`,
	Args: cobra.NoArgs,
	RunE: runLoggingGet,
}

var loggingGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the logging configuration",
	Args:  cobra.NoArgs,
	RunE:  runLoggingGet,
}

var loggingSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change the logging configuration",
	Long: fmt.Sprintf(`Change the logging configuration. Settings not given keep their
current value.

Levels:  %s
Layouts: %s`, strings.Join(api.LoggingLevels, ", "), strings.Join(api.LoggingLayouts, ", ")),
	Args: cobra.NoArgs,
	RunE: runLoggingSet,
}

func init() {
	rootCmd.AddCommand(loggingCmd)
	loggingCmd.AddCommand(loggingGetCmd)
	loggingCmd.AddCommand(loggingSetCmd)
	cli.RegisterCommonFlags(loggingCmd, &apiFlags)

	loggingSetCmd.Flags().StringVar(&loggingLevel, "level", "", "Logging level")
	loggingSetCmd.Flags().StringVar(&loggingLayout, "layout", "", "Logging layout")
	loggingSetCmd.Flags().BoolVar(&loggingHTTP, "http-logging", false, "Log HTTP requests")
	loggingSetCmd.Flags().BoolVar(&loggingDisableJdkLogger, "disable-jdk-logger", false, "Disable the JDK logger")
	loggingSetCmd.Flags().BoolVar(&loggingAudit, "audit-logging", false, "Enable OAuth audit logging")
}

// loggingTable renders cfg as field/value rows.
func loggingTable(cfg *api.LoggingConfig, controls []string) formatting.Table {
	t := formatting.Table{
		Title:   "Logging",
		Columns: []formatting.Column{{Header: "setting"}, {Header: "value"}},
		Footer:  controls,
	}
	t.Rows = [][]string{
		{"level", cfg.LoggingLevel},
		{"layout", cfg.LoggingLayout},
		{"http logging", strconv.FormatBool(cfg.HTTPLoggingEnabled)},
		{"disable jdk logger", strconv.FormatBool(cfg.DisableJdkLogger)},
		{"audit logging", strconv.FormatBool(cfg.EnabledOAuthAuditLogging)},
	}
	if len(cfg.HTTPLoggingExcludePaths) > 0 {
		t.Rows = append(t.Rows, []string{"http exclude paths", strings.Join(cfg.HTTPLoggingExcludePaths, ", ")})
	}
	return t
}

// loggingForm builds the form from the flags that were set.
func loggingForm(cmd *cobra.Command) (views.LoggingForm, error) {
	var form views.LoggingForm
	flags := cmd.Flags()
	changed := false

	if flags.Changed("level") {
		form.Level, changed = strings.ToUpper(loggingLevel), true
	}
	if flags.Changed("layout") {
		form.Layout, changed = strings.ToLower(loggingLayout), true
	}
	if flags.Changed("http-logging") {
		v := loggingHTTP
		form.HTTPLogging, changed = &v, true
	}
	if flags.Changed("disable-jdk-logger") {
		v := loggingDisableJdkLogger
		form.DisableJdkLogger, changed = &v, true
	}
	if flags.Changed("audit-logging") {
		v := loggingAudit
		form.AuditLogging, changed = &v, true
	}

	if !changed {
		return form, fmt.Errorf("nothing to set; see 'jansctl logging set --help'")
	}
	return form, form.Validate()
}

func runLoggingGet(cmd *cobra.Command, args []string) error {
	return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
		cfg, err := rt.svc.Logging(ctx)
		if err != nil {
			return err
		}
		perms := rt.svc.State().Auth.Session.Permissions
		tbl := loggingTable(cfg, views.Permitted(perms, views.LoggingControls))
		return rt.print(cmd.OutOrStdout(), cfg, &tbl)
	})
}

func runLoggingSet(cmd *cobra.Command, args []string) error {
	form, err := loggingForm(cmd)
	if err != nil {
		return err
	}

	return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
		cfg, err := rt.svc.SetLogging(ctx, form)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if cli.OutputFormat(rt.settings.Output).IsTable() {
			if !apiFlags.Quiet {
				fmt.Fprintln(out, cli.FormatSuccess("Saved logging configuration"))
			}
			tbl := loggingTable(cfg, nil)
			return rt.print(out, cfg, &tbl)
		}
		return rt.print(out, cfg, nil)
	})
}
