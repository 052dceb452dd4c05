package cli

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandFlags_Validate(t *testing.T) {
	tests := []struct {
		name    string
		flags   CommandFlags
		wantErr string
	}{
		{name: "empty format uses config", flags: CommandFlags{}},
		{name: "table", flags: CommandFlags{OutputFormat: "table"}},
		{name: "wide", flags: CommandFlags{OutputFormat: "wide"}},
		{name: "json", flags: CommandFlags{OutputFormat: "json"}},
		{name: "yaml", flags: CommandFlags{OutputFormat: "yaml"}},
		{name: "template with text", flags: CommandFlags{OutputFormat: "template", Template: "{{.}}"}},
		{name: "template without text", flags: CommandFlags{OutputFormat: "template"}, wantErr: "requires --template"},
		{name: "unknown format", flags: CommandFlags{OutputFormat: "xml"}, wantErr: "unsupported output format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.flags.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestRegisterCommonFlags(t *testing.T) {
	var flags CommandFlags
	cmd := &cobra.Command{Use: "test", RunE: func(*cobra.Command, []string) error { return nil }}
	RegisterCommonFlags(cmd, &flags)

	cmd.SetArgs([]string{"-o", "json", "--server", "https://jans.example.org", "--context", "prod", "-q", "--no-headers"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, "json", flags.OutputFormat)
	assert.Equal(t, "https://jans.example.org", flags.Server)
	assert.Equal(t, "prod", flags.Context)
	assert.True(t, flags.Quiet)
	assert.True(t, flags.NoHeaders)
}

func TestOutputFormat_IsTable(t *testing.T) {
	assert.True(t, OutputFormatTable.IsTable())
	assert.True(t, OutputFormatWide.IsTable())
	assert.True(t, OutputFormat("").IsTable())
	assert.False(t, OutputFormatJSON.IsTable())
}
