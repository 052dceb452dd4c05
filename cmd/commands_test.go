package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"jansctl/internal/cli"
	"jansctl/internal/config"
	"jansctl/internal/dashboard"
	"jansctl/internal/formatting"
	"jansctl/internal/session"
	"jansctl/internal/store"
	"jansctl/internal/views"

	"github.com/spf13/cobra"
)

func newLoggingTestCmd() *cobra.Command {
	c := &cobra.Command{}
	c.Flags().StringVar(&loggingLevel, "level", "", "")
	c.Flags().StringVar(&loggingLayout, "layout", "", "")
	c.Flags().BoolVar(&loggingHTTP, "http-logging", false, "")
	c.Flags().BoolVar(&loggingDisableJdkLogger, "disable-jdk-logger", false, "")
	c.Flags().BoolVar(&loggingAudit, "audit-logging", false, "")
	return c
}

func TestLoggingForm(t *testing.T) {
	t.Run("nothing set", func(t *testing.T) {
		if _, err := loggingForm(newLoggingTestCmd()); err == nil {
			t.Error("Expected error when no flag is given")
		}
	})

	t.Run("only given flags", func(t *testing.T) {
		c := newLoggingTestCmd()
		_ = c.Flags().Set("level", "debug")
		_ = c.Flags().Set("http-logging", "false")

		form, err := loggingForm(c)
		if err != nil {
			t.Fatalf("loggingForm failed: %v", err)
		}
		if form.Level != "DEBUG" {
			t.Errorf("Expected level DEBUG, got %q", form.Level)
		}
		if form.HTTPLogging == nil || *form.HTTPLogging {
			t.Errorf("Expected http logging to be explicitly false, got %v", form.HTTPLogging)
		}
		if form.AuditLogging != nil || form.DisableJdkLogger != nil || form.Layout != "" {
			t.Errorf("Expected unset flags to stay empty, got %+v", form)
		}
	})

	t.Run("invalid level", func(t *testing.T) {
		c := newLoggingTestCmd()
		_ = c.Flags().Set("level", "verbose")
		if _, err := loggingForm(c); err == nil {
			t.Error("Expected error for an unknown level")
		}
	})
}

func TestParseDashboardTab(t *testing.T) {
	tests := []struct {
		input   string
		want    dashboard.Tab
		wantErr bool
	}{
		{"", dashboard.TabReports, false},
		{"reports", dashboard.TabReports, false},
		{"logging", dashboard.TabLogging, false},
		{"scopes", 0, true},
	}
	for _, tt := range tests {
		got, err := parseDashboardTab(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseDashboardTab(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseDashboardTab(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestBuildStatus(t *testing.T) {
	expiry := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	sess := session.Session{
		Server:            "https://jans.example.org",
		Issuer:            "https://jans.example.org",
		AccessToken:       session.NewSecret("api-token"),
		AccessTokenExpiry: expiry,
		Permissions:       session.NewPermissions(string(session.ScopesRead), string(session.LoggingWrite)),
		User:              &session.Claims{Subject: "admin", Name: "Admin User"},
	}

	status := buildStatus(store.NewState(sess), "prod")

	if status.Context != "prod" || status.Phase != string(store.PhaseAuthorized) {
		t.Errorf("Unexpected context or phase: %+v", status)
	}
	if !status.Authenticated {
		t.Error("Expected authenticated status")
	}
	if status.User == nil || status.User.Name != "Admin User" {
		t.Errorf("Expected user to be reported, got %+v", status.User)
	}
	if status.AccessTokenExpiry == nil || !status.AccessTokenExpiry.Equal(expiry) {
		t.Errorf("Expected expiry %v, got %v", expiry, status.AccessTokenExpiry)
	}
	if len(status.Capabilities) != len(session.AllCapabilities()) {
		t.Errorf("Expected every capability to be listed, got %d", len(status.Capabilities))
	}
	granted := status.Granted()
	if len(granted) != 2 || granted[0] != session.ScopesRead.Short() || granted[1] != session.LoggingWrite.Short() {
		t.Errorf("Unexpected granted scopes %v", granted)
	}
}

func TestBuildStatusAnonymous(t *testing.T) {
	state := store.NewState(session.Session{Server: "https://jans.example.org"})
	state.Auth.Phase = store.PhaseFailed
	state.Auth.Err = errors.New("invalid_grant")

	status := buildStatus(state, "")
	if status.Authenticated {
		t.Error("Expected unauthenticated status")
	}
	if status.Error != "invalid_grant" {
		t.Errorf("Expected error to be reported, got %q", status.Error)
	}
	if len(status.Capabilities) != 0 {
		t.Errorf("Expected no capabilities without a token, got %v", status.Capabilities)
	}
}

func TestReportEntries(t *testing.T) {
	cards := []views.Card{
		{Title: "OpenID Connect Clients", Total: 4, Label: "enabled", Count: 3},
		{Title: "Attributes", Denied: true},
		{Title: "Scopes", Err: errors.New("timeout")},
	}

	entries := reportEntries(cards)
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}
	if entries[0].Status != "ok" || entries[0].Count != 3 || entries[0].Total != 4 {
		t.Errorf("Unexpected entry %+v", entries[0])
	}
	if entries[1].Status != "denied" {
		t.Errorf("Expected denied entry, got %+v", entries[1])
	}
	if entries[2].Status != "error" || entries[2].Error != "timeout" {
		t.Errorf("Expected error entry, got %+v", entries[2])
	}
}

func TestPrintOutputFooter(t *testing.T) {
	defer func() { apiFlags.NoHeaders = false }()

	tbl := formatting.Table{
		Columns: []formatting.Column{{Header: "inum"}, {Header: "name"}},
		Rows:    [][]string{{"43F1", "profile"}},
		Footer:  []string{"edit", "delete"},
	}

	var buf bytes.Buffer
	if err := printOutput(&buf, "table", nil, &tbl); err != nil {
		t.Fatalf("printOutput failed: %v", err)
	}
	if !strings.Contains(buf.String(), "43F1") || !strings.Contains(buf.String(), "Actions: edit, delete") {
		t.Errorf("Expected rows and actions, got %q", buf.String())
	}

	buf.Reset()
	apiFlags.NoHeaders = true
	if err := printOutput(&buf, "table", nil, &tbl); err != nil {
		t.Fatalf("printOutput failed: %v", err)
	}
	if strings.Contains(buf.String(), "Actions:") {
		t.Errorf("Expected no actions with --no-headers, got %q", buf.String())
	}

	buf.Reset()
	if err := printOutput(&buf, "json", map[string]string{"inum": "43F1"}, &tbl); err != nil {
		t.Fatalf("printOutput failed: %v", err)
	}
	if strings.Contains(buf.String(), "Actions:") || !strings.Contains(buf.String(), `"inum": "43F1"`) {
		t.Errorf("Expected plain JSON, got %q", buf.String())
	}
}

func TestWriteTokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "id-token")

	if err := writeTokenFile(path, session.Secret{}); err == nil {
		t.Error("Expected error for an empty token")
	}

	if err := writeTokenFile(path, session.NewSecret("eyJ.id.token")); err != nil {
		t.Fatalf("writeTokenFile failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read token file: %v", err)
	}
	if string(data) != "eyJ.id.token\n" {
		t.Errorf("Unexpected token file content %q", string(data))
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("Expected mode 0600, got %v", info.Mode().Perm())
	}
}

func TestRememberTokenFile(t *testing.T) {
	dir := t.TempDir()
	flags := cli.CommandFlags{ConfigPath: dir}
	tokenPath := filepath.Join(dir, "id-token")

	saved, err := rememberTokenFile(flags, tokenPath)
	if err != nil {
		t.Fatalf("rememberTokenFile failed: %v", err)
	}
	if !saved {
		t.Error("Expected config.yaml to be written")
	}

	cfg, err := config.LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.TokenFile != tokenPath {
		t.Errorf("Expected token-file %q, got %q", tokenPath, cfg.TokenFile)
	}
	if cfg.Grant != config.Default().Grant {
		t.Errorf("Expected other settings to keep their defaults, got grant %q", cfg.Grant)
	}

	saved, err = rememberTokenFile(flags, tokenPath)
	if err != nil {
		t.Fatalf("rememberTokenFile failed: %v", err)
	}
	if saved {
		t.Error("Expected no write when the token file is already recorded")
	}
}
