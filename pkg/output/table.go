// Package output renders the console summary table.
package output

import (
	"fmt"
	"io"
)

// Table writes the token summary: one row per file, a divider, a grand
// total, and the model's context limit when known.
type Table struct {
	w io.Writer
}

// NewTable creates a Table writing to w.
func NewTable(w io.Writer) *Table {
	return &Table{w: w}
}

// Header writes the column header.
func (t *Table) Header() {
	fmt.Fprintln(t.w, "TOKENS | FILENAME")
}

// Row writes a per-file token count.
func (t *Table) Row(tokens int, name string) {
	fmt.Fprintf(t.w, "%6d | %s\n", tokens, name)
}

// SkipRow writes a row with a blank token column, used for files that
// were skipped and contribute nothing to the output.
func (t *Table) SkipRow(name string) {
	fmt.Fprintf(t.w, "%6s | %s\n", "", name)
}

// Divider separates the file rows from the totals.
func (t *Table) Divider() {
	fmt.Fprintln(t.w, "_______|____________________")
}

// Total writes the grand total row.
func (t *Table) Total(tokens int) {
	fmt.Fprintf(t.w, "%6d | Total Tokens\n", tokens)
}

// Limit writes the model's maximum input size for context.
func (t *Table) Limit(limit int, model string) {
	fmt.Fprintf(t.w, "%6d | %s max input size\n", limit, model)
}

// PartRow reports a sealed output artifact and its token count.
func (t *Table) PartRow(tokens int, name string) {
	fmt.Fprintf(t.w, "%6d | Output file `%s`\n", tokens, name)
}
