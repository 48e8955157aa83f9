// Package view provides terminal output for wiko commands.
package view

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

// Format represents an output format for listings.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatPlain Format = "plain"
)

// ValidFormats returns the accepted --output values.
func ValidFormats() []string {
	return []string{string(FormatTable), string(FormatJSON), string(FormatPlain)}
}

// ValidateFormat rejects unknown --output values. Empty means table.
func ValidateFormat(s string) error {
	if s == "" {
		return nil
	}
	for _, f := range ValidFormats() {
		if s == f {
			return nil
		}
	}
	return fmt.Errorf("invalid output format %q (valid: %s)", s, strings.Join(ValidFormats(), ", "))
}

// Renderer writes listings and build progress.
type Renderer struct {
	format  Format
	writer  io.Writer
	noColor bool
	quiet   bool
}

// NewRenderer creates a new renderer with the specified format.
func NewRenderer(format Format, noColor bool) *Renderer {
	if noColor {
		color.NoColor = true
	}
	if format == "" {
		format = FormatTable
	}
	return &Renderer{
		format:  format,
		writer:  os.Stdout,
		noColor: noColor,
	}
}

// SetWriter sets the output writer.
func (r *Renderer) SetWriter(w io.Writer) {
	r.writer = w
}

// SetQuiet suppresses progress lines. Errors and summaries still print.
func (r *Renderer) SetQuiet(quiet bool) {
	r.quiet = quiet
}

// NoColor reports whether colored output is disabled.
func (r *Renderer) NoColor() bool {
	return r.noColor || color.NoColor
}

// RenderTable renders rows under headers, aligned by display width.
func (r *Renderer) RenderTable(headers []string, rows [][]string) {
	switch r.format {
	case FormatJSON:
		r.renderTableAsJSON(headers, rows)
		return
	case FormatPlain:
		r.renderTableAsPlain(rows)
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, val := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], runewidth.StringWidth(val))
			}
		}
	}

	bold := color.New(color.Bold)
	r.renderRow(headers, widths, bold)
	for _, row := range rows {
		r.renderRow(row, widths, nil)
	}
}

func (r *Renderer) renderRow(cells []string, widths []int, c *color.Color) {
	var b strings.Builder
	for i, val := range cells {
		if i > 0 {
			b.WriteString("  ")
		}
		if i < len(cells)-1 && i < len(widths) {
			val = runewidth.FillRight(val, widths[i])
		}
		b.WriteString(val)
	}
	if c != nil {
		_, _ = c.Fprintln(r.writer, b.String())
		return
	}
	fmt.Fprintln(r.writer, b.String())
}

func (r *Renderer) renderTableAsJSON(headers []string, rows [][]string) {
	var result []map[string]string
	for _, row := range rows {
		item := make(map[string]string)
		for i, header := range headers {
			if i < len(row) {
				item[strings.ToLower(header)] = row[i]
			}
		}
		result = append(result, item)
	}

	data, _ := json.MarshalIndent(result, "", "  ")
	fmt.Fprintln(r.writer, string(data))
}

func (r *Renderer) renderTableAsPlain(rows [][]string) {
	for _, row := range rows {
		fmt.Fprintln(r.writer, strings.Join(row, "\t"))
	}
}

// RenderJSON renders an object as JSON.
func (r *Renderer) RenderJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(r.writer, string(data))
	return nil
}

// RenderText renders plain text.
func (r *Renderer) RenderText(text string) {
	fmt.Fprintln(r.writer, text)
}

// RenderKeyValue renders a label and value, padding the label to width.
func (r *Renderer) RenderKeyValue(key, value string, width int) {
	bold := color.New(color.Bold)
	_, _ = bold.Fprint(r.writer, runewidth.FillRight(key+":", width))
	fmt.Fprintln(r.writer, value)
}

// Progress prints a step of a running build unless quiet.
func (r *Renderer) Progress(format string, args ...interface{}) {
	if r.quiet {
		return
	}
	dim := color.New(color.Faint)
	_, _ = dim.Fprintf(r.writer, format+"\n", args...)
}

// Success prints a success message.
func (r *Renderer) Success(msg string) {
	green := color.New(color.FgGreen)
	_, _ = green.Fprintln(r.writer, "✓ "+msg)
}

// Warning prints a warning message.
func (r *Renderer) Warning(msg string) {
	yellow := color.New(color.FgYellow)
	_, _ = yellow.Fprintln(r.writer, "! "+msg)
}

// Error prints an error message.
func (r *Renderer) Error(msg string) {
	red := color.New(color.FgRed)
	_, _ = red.Fprintln(r.writer, "✗ "+msg)
}

// Truncate shortens s to maxLen display columns, ending in "..." when cut.
func Truncate(s string, maxLen int) string {
	if runewidth.StringWidth(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return runewidth.Truncate(s, maxLen, "")
	}
	return runewidth.Truncate(s, maxLen, "...")
}
