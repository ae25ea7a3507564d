// Package output renders command results: aligned tables for terminals,
// JSON and CSV for scripts.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Mode selects the render format.
type Mode string

const (
	ModeTable Mode = "table"
	ModeJSON  Mode = "json"
	ModeCSV   Mode = "csv"
)

// ParseMode converts a --output flag value to a Mode. An empty value selects
// the table mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", string(ModeTable):
		return ModeTable, nil
	case string(ModeJSON):
		return ModeJSON, nil
	case string(ModeCSV):
		return ModeCSV, nil
	default:
		return "", fmt.Errorf("unknown output format %q (expected table, json or csv)", s)
	}
}

// Renderer writes command results to the configured writers.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
}

// NewRenderer creates a renderer for the given mode.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	if mode == "" {
		mode = ModeTable
	}
	return &Renderer{out: out, errOut: errOut, mode: mode}
}

// Mode returns the active render mode.
func (r *Renderer) Mode() Mode {
	return r.mode
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}

// Table writes a table with the given header and rows. In CSV mode the same
// cells render as CSV instead.
func (r *Renderer) Table(header table.Row, rows []table.Row) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(header)
	t.AppendRows(rows)
	if r.mode == ModeCSV {
		t.RenderCSV()
		return
	}
	t.Render()
}

// Printf writes formatted text to standard output.
func (r *Renderer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

// Println writes a line to standard output.
func (r *Renderer) Println(args ...any) {
	_, _ = fmt.Fprintln(r.out, args...)
}

// Errorf writes formatted text to standard error.
func (r *Renderer) Errorf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.errOut, format, args...)
}
