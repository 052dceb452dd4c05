package formatting

import (
	"bytes"
	"fmt"
	"io"
	"text/template"

	"jansctl/internal/cli"

	"github.com/Masterminds/sprig/v3"
	"sigs.k8s.io/yaml"
)

// Options selects how Print renders.
type Options struct {
	Format    cli.OutputFormat
	Template  string
	NoHeaders bool
}

// Print writes data in the requested format. tbl is used for the table
// formats; when it is nil those formats fall back to YAML.
func Print(w io.Writer, opts Options, data interface{}, tbl *Table) error {
	switch opts.Format {
	case cli.OutputFormatJSON:
		_, err := fmt.Fprintln(w, PrettyJSON(data))
		return err

	case cli.OutputFormatYAML:
		return writeYAML(w, data)

	case cli.OutputFormatTemplate:
		return writeTemplate(w, opts.Template, data)

	case cli.OutputFormatTable, cli.OutputFormatWide, "":
		if tbl == nil {
			return writeYAML(w, data)
		}
		WritePlain(w, *tbl, opts.Format == cli.OutputFormatWide, opts.NoHeaders)
		return nil

	default:
		return cli.ValidateOutputFormat(string(opts.Format))
	}
}

// writeYAML goes through JSON so the json field tags of the API models are
// used.
func writeYAML(w io.Writer, data interface{}) error {
	out, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to format YAML: %w", err)
	}
	_, err = w.Write(out)
	return err
}

func writeTemplate(w io.Writer, text string, data interface{}) error {
	tmpl, err := template.New("output").Funcs(sprig.TxtFuncMap()).Parse(text)
	if err != nil {
		return fmt.Errorf("invalid template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}
	if buf.Len() > 0 && buf.Bytes()[buf.Len()-1] != '\n' {
		buf.WriteByte('\n')
	}
	_, err = buf.WriteTo(w)
	return err
}
