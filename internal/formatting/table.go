package formatting

import (
	"fmt"
	"io"
	"strings"

	"jansctl/internal/cli"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Column is a table column. Wide columns only show with --output wide.
type Column struct {
	Header string
	Wide   bool
}

// Table is a rendered-agnostic table: every row has one cell per column.
type Table struct {
	Title   string
	Columns []Column
	Rows    [][]string
	// Footer lists the actions available on the rows, e.g. "delete".
	Footer []string
}

// Project returns the headers and rows for the normal or wide view.
func (t Table) Project(wide bool) ([]string, [][]string) {
	keep := make([]int, 0, len(t.Columns))
	headers := make([]string, 0, len(t.Columns))
	for i, c := range t.Columns {
		if c.Wide && !wide {
			continue
		}
		keep = append(keep, i)
		headers = append(headers, c.Header)
	}

	rows := make([][]string, len(t.Rows))
	for r, row := range t.Rows {
		out := make([]string, len(keep))
		for j, i := range keep {
			if i < len(row) {
				out[j] = row[i]
			}
		}
		rows[r] = out
	}
	return headers, rows
}

// WritePlain writes t kubectl-style.
func WritePlain(w io.Writer, t Table, wide, noHeaders bool) {
	headers, rows := t.Project(wide)
	tw := cli.NewPlainTableWriter(w)
	tw.SetHeaders(headers)
	tw.SetNoHeaders(noHeaders)
	for _, row := range rows {
		tw.AppendRow(row)
	}
	tw.Render()
}

// RenderPretty renders t with rounded box drawing and coloured headers.
func RenderPretty(w io.Writer, t Table, wide bool) {
	headers, rows := t.Project(wide)

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Header = text.FormatDefault
	tw.Style().Format.Footer = text.FormatDefault
	if t.Title != "" {
		tw.SetTitle(t.Title)
	}

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = text.FgHiCyan.Sprint(strings.ToUpper(h))
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, len(row))
		for i, cell := range row {
			r[i] = cell
		}
		tw.AppendRow(r)
	}

	if len(rows) == 0 {
		tw.AppendFooter(table.Row{text.FgYellow.Sprint("No items found")})
	} else if len(t.Footer) > 0 {
		tw.AppendFooter(table.Row{text.FgHiBlue.Sprintf("%d items", len(rows))})
	}
	tw.Render()

	if len(t.Footer) > 0 {
		fmt.Fprintln(w, text.FgHiBlack.Sprint("actions: "+strings.Join(t.Footer, ", ")))
	}
}
