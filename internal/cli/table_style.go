package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
)

// PlainTableWriter writes kubectl-style tables: upper-case headers, columns
// padded with spaces, no box drawing.
type PlainTableWriter struct {
	headers     []string
	rows        [][]string
	padding     int
	showHeaders bool
	out         io.Writer
}

// NewPlainTableWriter creates a writer that shows headers by default.
func NewPlainTableWriter(out io.Writer) *PlainTableWriter {
	return &PlainTableWriter{padding: 3, showHeaders: true, out: out}
}

// SetHeaders sets the column headers. They are rendered upper-case.
func (w *PlainTableWriter) SetHeaders(headers []string) {
	w.headers = make([]string, len(headers))
	for i, h := range headers {
		w.headers[i] = strings.ToUpper(h)
	}
}

// SetNoHeaders controls whether to suppress the header row.
func (w *PlainTableWriter) SetNoHeaders(noHeaders bool) {
	w.showHeaders = !noHeaders
}

// AppendRow adds a row, padding or truncating it to the header count.
func (w *PlainTableWriter) AppendRow(row []string) {
	normalized := make([]string, len(w.headers))
	for i := range w.headers {
		if i >= len(row) {
			continue
		}
		normalized[i] = row[i]
	}
	w.rows = append(w.rows, normalized)
}

// Render writes the table. Nothing is written when there are neither rows
// nor headers to show.
func (w *PlainTableWriter) Render() {
	if len(w.headers) == 0 || (len(w.rows) == 0 && !w.showHeaders) {
		return
	}
	widths := w.columnWidths()
	if w.showHeaders {
		w.writeRow(w.headers, widths)
	}
	for _, row := range w.rows {
		w.writeRow(row, widths)
	}
}

// columnWidths returns the widest cell per column. Headers only count when
// they are shown.
func (w *PlainTableWriter) columnWidths() []int {
	widths := make([]int, len(w.headers))
	measure := func(row []string) {
		for i, cell := range row {
			if n := text.RuneWidthWithoutEscSequences(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}
	if w.showHeaders {
		measure(w.headers)
	}
	for _, row := range w.rows {
		measure(row)
	}
	return widths
}

func (w *PlainTableWriter) writeRow(row []string, widths []int) {
	var sb strings.Builder
	for i, cell := range row {
		sb.WriteString(cell)
		if i == len(row)-1 {
			break
		}
		pad := widths[i] + w.padding - text.RuneWidthWithoutEscSequences(cell)
		sb.WriteString(strings.Repeat(" ", pad))
	}
	fmt.Fprintln(w.out, strings.TrimRight(sb.String(), " "))
}
