package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"jansctl/internal/cli"
	"jansctl/internal/session"

	"github.com/spf13/cobra"
)

func TestSetVersion(t *testing.T) {
	testVersion := "1.2.3-test"
	SetVersion(testVersion)

	if rootCmd.Version != testVersion {
		t.Errorf("Expected version to be %s, got %s", testVersion, rootCmd.Version)
	}
}

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "jansctl" {
		t.Errorf("Expected Use to be 'jansctl', got %s", rootCmd.Use)
	}

	if rootCmd.Short == "" {
		t.Error("Expected Short description to be set")
	}

	if rootCmd.Long == "" {
		t.Error("Expected Long description to be set")
	}

	if !rootCmd.SilenceUsage {
		t.Error("Expected SilenceUsage to be true")
	}
}

func TestVersionTemplate(t *testing.T) {
	testCmd := &cobra.Command{
		Use:     "test",
		Version: "1.0.0",
	}
	testCmd.SetVersionTemplate(`{{printf "jansctl version %s\n" .Version}}`)

	var buf bytes.Buffer
	testCmd.SetOut(&buf)
	testCmd.SetArgs([]string{"--version"})
	if err := testCmd.Execute(); err != nil {
		t.Fatalf("Error executing version command: %v", err)
	}

	expected := "jansctl version 1.0.0\n"
	if buf.String() != expected {
		t.Errorf("Expected version output %q, got %q", expected, buf.String())
	}
}

func TestSubcommands(t *testing.T) {
	expectedCommands := []string{
		"version", "self-update", "auth", "context", "list", "get", "delete",
		"create", "edit", "logging", "reports", "dashboard", "console",
	}
	foundCommands := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		foundCommands[cmd.Name()] = true
	}

	for _, expected := range expectedCommands {
		if !foundCommands[expected] {
			t.Errorf("Expected subcommand %s to be registered", expected)
		}
	}
}

func TestRootCommandHelp(t *testing.T) {
	var buf bytes.Buffer
	testRootCmd := &cobra.Command{
		Use:          rootCmd.Use,
		Short:        rootCmd.Short,
		Long:         rootCmd.Long,
		SilenceUsage: true,
	}
	testRootCmd.SetOut(&buf)
	testRootCmd.SetArgs([]string{"--help"})

	if err := testRootCmd.Execute(); err != nil {
		t.Fatalf("Error executing help command: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "jansctl") {
		t.Errorf("Help output should contain 'jansctl'. Got: %q", output)
	}
	if !strings.Contains(output, "API access token") {
		t.Errorf("Help output should contain the long description. Got: %q", output)
	}
}

func TestInitLogging(t *testing.T) {
	defer func() { rootLogLevel, rootDebug = "warn", false }()

	rootLogLevel = "bogus"
	if err := initLogging(rootCmd, nil); err == nil {
		t.Error("Expected error for an invalid log level")
	}

	rootDebug = true
	if err := initLogging(rootCmd, nil); err != nil {
		t.Errorf("Expected --debug to override the log level, got %v", err)
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitCodeSuccess},
		{"generic", errors.New("boom"), ExitCodeError},
		{"auth required", &cli.AuthRequiredError{Server: "https://jans.example.org"}, ExitCodeAuthRequired},
		{"auth expired", &cli.AuthExpiredError{Server: "https://jans.example.org"}, ExitCodeAuthRequired},
		{"auth failed", &cli.AuthFailedError{Server: "https://jans.example.org", Reason: errors.New("invalid_grant")}, ExitCodeAuthFailed},
		{"permission denied", &cli.PermissionDeniedError{Operation: "delete scope", Capability: session.ScopesDelete}, ExitCodePermissionDenied},
		{"unavailable", &cli.ConnectionError{Server: "https://jans.example.org", Reason: errors.New("refused")}, ExitCodeUnavailable},
		{"wrapped", fmt.Errorf("list scopes: %w", &cli.PermissionDeniedError{Operation: "list scopes"}), ExitCodePermissionDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := getExitCode(tt.err); got != tt.want {
				t.Errorf("getExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
