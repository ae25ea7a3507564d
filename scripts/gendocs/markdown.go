package main

import (
	"fmt"
	"strings"
)

// MarkdownWriter accumulates a markdown document.
type MarkdownWriter struct {
	buf strings.Builder
}

// NewMarkdownWriter creates an empty markdown document.
func NewMarkdownWriter() *MarkdownWriter {
	return &MarkdownWriter{}
}

// Frontmatter writes a YAML frontmatter block with title and description.
func (w *MarkdownWriter) Frontmatter(title, description string) {
	w.buf.WriteString("---\n")
	fmt.Fprintf(&w.buf, "title: %s\n", title)
	if description != "" {
		fmt.Fprintf(&w.buf, "description: %s\n", description)
	}
	w.buf.WriteString("---\n\n")
}

// GeneratedMarker writes the do-not-edit comment.
func (w *MarkdownWriter) GeneratedMarker() {
	w.buf.WriteString("<!-- Generated by scripts/gendocs. Do not edit by hand. -->\n\n")
}

// Header writes a markdown header at the given level.
func (w *MarkdownWriter) Header(level int, text string) {
	w.buf.WriteString(strings.Repeat("#", level))
	w.buf.WriteString(" ")
	w.buf.WriteString(text)
	w.buf.WriteString("\n\n")
}

// Paragraph writes a paragraph followed by a blank line.
func (w *MarkdownWriter) Paragraph(text string) {
	w.buf.WriteString(strings.TrimSpace(text))
	w.buf.WriteString("\n\n")
}

// CodeBlock writes a fenced code block.
func (w *MarkdownWriter) CodeBlock(lang, code string) {
	fmt.Fprintf(&w.buf, "```%s\n%s\n```\n\n", lang, strings.TrimRight(code, "\n"))
}

// BulletList writes an unordered list.
func (w *MarkdownWriter) BulletList(items []string) {
	for _, item := range items {
		fmt.Fprintf(&w.buf, "- %s\n", item)
	}
	w.buf.WriteString("\n")
}

// Table writes a markdown table. Cells containing pipes are escaped.
func (w *MarkdownWriter) Table(headers []string, rows [][]string) {
	writeRow := func(cells []string) {
		w.buf.WriteString("|")
		for _, cell := range cells {
			w.buf.WriteString(" ")
			w.buf.WriteString(strings.ReplaceAll(cell, "|", "\\|"))
			w.buf.WriteString(" |")
		}
		w.buf.WriteString("\n")
	}

	writeRow(headers)
	sep := make([]string, len(headers))
	for i := range sep {
		sep[i] = "---"
	}
	writeRow(sep)
	for _, row := range rows {
		writeRow(row)
	}
	w.buf.WriteString("\n")
}

// Bytes returns the document.
func (w *MarkdownWriter) Bytes() []byte {
	return []byte(w.buf.String())
}

// InlineCode wraps s in backticks.
func InlineCode(s string) string {
	return "`" + s + "`"
}

// Bold wraps s in double asterisks.
func Bold(s string) string {
	return "**" + s + "**"
}

// cleanDescription strips trailing periods and newlines for table cells.
func cleanDescription(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}
