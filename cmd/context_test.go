package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	jansctx "jansctl/internal/context"

	"github.com/spf13/cobra"
)

// setupContextTest points the context commands at a temp directory and
// resets their flags.
func setupContextTest(t *testing.T) *jansctx.Storage {
	t.Helper()

	tmpDir := t.TempDir()
	contextConfigPath = tmpDir
	contextQuiet = false
	contextAddSetCurrent = false
	contextDeleteForce = false
	contextShowOutputFormat = "text"
	contextServer, contextIssuer, contextClientID, contextOutput = "", "", "", ""
	t.Cleanup(func() { contextConfigPath = "" })

	return jansctx.NewStorageWithPath(tmpDir)
}

// newContextTestCmd returns a command carrying the add/update flags, with
// its output captured and its input read from stdin.
func newContextTestCmd(stdin string) (*cobra.Command, *bytes.Buffer) {
	c := &cobra.Command{}
	c.Flags().StringVar(&contextServer, "server", "", "")
	c.Flags().StringVar(&contextIssuer, "issuer", "", "")
	c.Flags().StringVar(&contextClientID, "client-id", "", "")
	c.Flags().StringVar(&contextOutput, "output", "", "")

	var buf bytes.Buffer
	c.SetOut(&buf)
	c.SetIn(strings.NewReader(stdin))
	return c, &buf
}

func TestContextListEmpty(t *testing.T) {
	setupContextTest(t)
	c, out := newContextTestCmd("")

	if err := runContextList(c, nil); err != nil {
		t.Fatalf("runContextList failed: %v", err)
	}
	if !strings.Contains(out.String(), "No contexts configured yet") {
		t.Errorf("expected empty hint, got %q", out.String())
	}
}

func TestContextAddAndList(t *testing.T) {
	storage := setupContextTest(t)

	c, _ := newContextTestCmd("")
	_ = c.Flags().Set("server", "https://prod.example.org")
	contextAddSetCurrent = true
	if err := runContextAdd(c, []string{"prod"}); err != nil {
		t.Fatalf("runContextAdd failed: %v", err)
	}

	c, _ = newContextTestCmd("")
	_ = c.Flags().Set("server", "https://dev.example.org")
	_ = c.Flags().Set("issuer", "https://login.example.org")
	contextAddSetCurrent = false
	if err := runContextAdd(c, []string{"dev"}); err != nil {
		t.Fatalf("runContextAdd failed: %v", err)
	}

	contexts, err := storage.ListContexts()
	if err != nil {
		t.Fatalf("ListContexts failed: %v", err)
	}
	if len(contexts) != 2 {
		t.Fatalf("expected 2 contexts, got %d", len(contexts))
	}

	c, out := newContextTestCmd("")
	if err := runContextList(c, nil); err != nil {
		t.Fatalf("runContextList failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %q", out.String())
	}
	if !strings.HasPrefix(lines[0], "CURRENT") {
		t.Errorf("expected header row, got %q", lines[0])
	}
	for _, line := range lines[1:] {
		fields := strings.Fields(line)
		switch {
		case strings.Contains(line, "prod"):
			if fields[0] != "*" {
				t.Errorf("expected prod to be marked current, got %q", line)
			}
			if fields[len(fields)-1] != "https://prod.example.org" {
				t.Errorf("expected issuer to default to the server, got %q", line)
			}
		case strings.Contains(line, "dev"):
			if fields[len(fields)-1] != "https://login.example.org" {
				t.Errorf("expected explicit issuer, got %q", line)
			}
		}
	}
}

func TestContextAddInvalid(t *testing.T) {
	setupContextTest(t)

	tests := []struct {
		name   string
		ctx    string
		server string
		output string
	}{
		{"bad name", "Prod", "https://prod.example.org", ""},
		{"bad server", "prod", "not a url", ""},
		{"bad output", "prod", "https://prod.example.org", "xml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newContextTestCmd("")
			_ = c.Flags().Set("server", tt.server)
			if tt.output != "" {
				_ = c.Flags().Set("output", tt.output)
			}
			if err := runContextAdd(c, []string{tt.ctx}); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestContextUseAndCurrent(t *testing.T) {
	storage := setupContextTest(t)
	if err := storage.AddContext(jansctx.Context{Name: "prod", Server: "https://prod.example.org"}); err != nil {
		t.Fatalf("AddContext failed: %v", err)
	}

	c, out := newContextTestCmd("")
	if err := runContextUse(c, []string{"prod"}); err != nil {
		t.Fatalf("runContextUse failed: %v", err)
	}
	if !strings.Contains(out.String(), `Switched to context "prod"`) {
		t.Errorf("unexpected output %q", out.String())
	}

	c, out = newContextTestCmd("")
	if err := runContextCurrent(c, nil); err != nil {
		t.Fatalf("runContextCurrent failed: %v", err)
	}
	if out.String() != "prod\n" {
		t.Errorf("expected current context 'prod', got %q", out.String())
	}

	c, _ = newContextTestCmd("")
	err := runContextUse(c, []string{"missing"})
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestContextDelete(t *testing.T) {
	storage := setupContextTest(t)
	_ = storage.AddContext(jansctx.Context{Name: "prod", Server: "https://prod.example.org"})
	_ = storage.SetCurrentContext("prod")

	// Declined confirmation keeps the context.
	c, out := newContextTestCmd("n\n")
	if err := runContextDelete(c, []string{"prod"}); err != nil {
		t.Fatalf("runContextDelete failed: %v", err)
	}
	if !strings.Contains(out.String(), "(current context)?") || !strings.Contains(out.String(), "Aborted.") {
		t.Errorf("unexpected output %q", out.String())
	}
	if ctx, _ := storage.GetContext("prod"); ctx == nil {
		t.Fatal("expected context to be kept")
	}

	c, out = newContextTestCmd("yes\n")
	if err := runContextDelete(c, []string{"prod"}); err != nil {
		t.Fatalf("runContextDelete failed: %v", err)
	}
	if !strings.Contains(out.String(), "Current context is now unset") {
		t.Errorf("unexpected output %q", out.String())
	}
	if ctx, _ := storage.GetContext("prod"); ctx != nil {
		t.Error("expected context to be deleted")
	}
	if name, _ := storage.GetCurrentContextName(); name != "" {
		t.Errorf("expected current context to be cleared, got %q", name)
	}

	c, _ = newContextTestCmd("")
	contextDeleteForce = true
	if err := runContextDelete(c, []string{"prod"}); err == nil {
		t.Error("expected error deleting a missing context")
	}
}

func TestContextRename(t *testing.T) {
	storage := setupContextTest(t)
	_ = storage.AddContext(jansctx.Context{Name: "prod", Server: "https://prod.example.org"})
	_ = storage.SetCurrentContext("prod")

	c, _ := newContextTestCmd("")
	if err := runContextRename(c, []string{"prod", "production"}); err != nil {
		t.Fatalf("runContextRename failed: %v", err)
	}

	if ctx, _ := storage.GetContext("prod"); ctx != nil {
		t.Error("expected old context name to be gone")
	}
	if ctx, _ := storage.GetContext("production"); ctx == nil {
		t.Error("expected new context to exist")
	}
	if name, _ := storage.GetCurrentContextName(); name != "production" {
		t.Errorf("expected current context 'production', got %q", name)
	}
}

func TestContextUpdate(t *testing.T) {
	storage := setupContextTest(t)
	_ = storage.AddContext(jansctx.Context{
		Name:     "prod",
		Server:   "https://prod.example.org",
		Settings: &jansctx.ContextSettings{ClientID: "2000.a"},
	})

	c, _ := newContextTestCmd("")
	_ = c.Flags().Set("issuer", "https://login.example.org")
	_ = c.Flags().Set("output", "json")
	if err := runContextUpdate(c, []string{"prod"}); err != nil {
		t.Fatalf("runContextUpdate failed: %v", err)
	}

	ctx, err := storage.GetContext("prod")
	if err != nil {
		t.Fatalf("GetContext failed: %v", err)
	}
	if ctx.Server != "https://prod.example.org" {
		t.Errorf("expected server to be kept, got %q", ctx.Server)
	}
	if ctx.Issuer != "https://login.example.org" {
		t.Errorf("expected issuer to be updated, got %q", ctx.Issuer)
	}
	if ctx.Settings == nil || ctx.Settings.ClientID != "2000.a" || ctx.Settings.Output != "json" {
		t.Errorf("expected merged settings, got %+v", ctx.Settings)
	}
}

func TestContextUpdateRequiresChange(t *testing.T) {
	storage := setupContextTest(t)
	_ = storage.AddContext(jansctx.Context{Name: "prod", Server: "https://prod.example.org"})

	c, _ := newContextTestCmd("")
	if err := runContextUpdate(c, []string{"prod"}); err == nil {
		t.Error("expected error when no flag is given")
	}

	c, _ = newContextTestCmd("")
	_ = c.Flags().Set("server", "https://other.example.org")
	if err := runContextUpdate(c, []string{"nonexistent"}); err == nil {
		t.Error("expected error when updating nonexistent context")
	}
}

func TestContextShow(t *testing.T) {
	storage := setupContextTest(t)
	_ = storage.AddContext(jansctx.Context{
		Name:     "prod",
		Server:   "https://prod.example.org",
		Settings: &jansctx.ContextSettings{Output: "wide"},
	})
	_ = storage.SetCurrentContext("prod")

	c, out := newContextTestCmd("")
	if err := runContextShow(c, []string{"prod"}); err != nil {
		t.Fatalf("runContextShow failed: %v", err)
	}
	for _, want := range []string{"Name:     prod", "Issuer:   https://prod.example.org", "Current:  yes", "output: wide"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("expected %q in output, got %q", want, out.String())
		}
	}

	contextShowOutputFormat = "json"
	c, out = newContextTestCmd("")
	if err := runContextShow(c, []string{"prod"}); err != nil {
		t.Fatalf("runContextShow failed: %v", err)
	}
	if !strings.Contains(out.String(), `"server": "https://prod.example.org"`) {
		t.Errorf("expected JSON output, got %q", out.String())
	}

	contextShowOutputFormat = "xml"
	c, _ = newContextTestCmd("")
	if err := runContextShow(c, []string{"prod"}); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestContextFileFormat(t *testing.T) {
	storage := setupContextTest(t)

	if err := storage.AddContext(jansctx.Context{
		Name:     "prod",
		Server:   "https://prod.example.org",
		Settings: &jansctx.ContextSettings{Output: "json"},
	}); err != nil {
		t.Fatalf("AddContext failed: %v", err)
	}
	if err := storage.SetCurrentContext("prod"); err != nil {
		t.Fatalf("SetCurrentContext failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(contextConfigPath, "contexts.yaml"))
	if err != nil {
		t.Fatalf("failed to read contexts file: %v", err)
	}
	content := string(data)

	if !strings.Contains(content, "current-context: prod") {
		t.Error("expected 'current-context: prod' in file")
	}
	if !strings.Contains(content, "name: prod") {
		t.Error("expected 'name: prod' in file")
	}
	if !strings.Contains(content, "server: https://prod.example.org") {
		t.Error("expected server in file")
	}
}

func TestConfirmAction(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"y", true},
	}
	for _, tt := range tests {
		c, out := newContextTestCmd(tt.input)
		if got := confirmAction(c, "Proceed?"); got != tt.want {
			t.Errorf("confirmAction(%q) = %v, want %v", tt.input, got, tt.want)
		}
		if out.String() != "Proceed? [y/N] " {
			t.Errorf("unexpected prompt %q", out.String())
		}
	}
}
