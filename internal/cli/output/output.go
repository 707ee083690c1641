// Package output renders command results for terminals, scripts, and
// JSON consumers. Mode "auto" picks styled text on a TTY and markdown
// when output is piped, so scripted callers get parseable output without
// extra flags.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"
)

// Mode selects an output format.
type Mode string

const (
	ModeAuto     Mode = "auto"
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
)

// ParseMode validates an output mode string. Empty input means auto.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeAuto, "":
		return ModeAuto, nil
	case ModeText:
		return ModeText, nil
	case ModeMarkdown:
		return ModeMarkdown, nil
	case ModeJSON:
		return ModeJSON, nil
	}
	return "", fmt.Errorf("unknown output mode %q (want auto, text, markdown, or json)", s)
}

// Renderer writes command output in a single resolved mode.
type Renderer struct {
	out  io.Writer
	errW io.Writer
	mode Mode
}

// NewRenderer creates a renderer over the given writers.
func NewRenderer(out, errW io.Writer, mode Mode) *Renderer {
	if mode == "" {
		mode = ModeAuto
	}
	return &Renderer{out: out, errW: errW, mode: mode}
}

// Out returns the underlying output writer.
func (r *Renderer) Out() io.Writer { return r.out }

// EffectiveMode resolves auto to a concrete mode based on whether output
// goes to a terminal.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if f, ok := r.out.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return ModeText
	}
	return ModeMarkdown
}

// Println writes a line to the output writer.
func (r *Renderer) Println(args ...any) {
	_, _ = fmt.Fprintln(r.out, args...)
}

// Printf writes formatted text to the output writer.
func (r *Renderer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

// Errorf writes formatted text to the error writer.
func (r *Renderer) Errorf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.errW, format, args...)
}

// Header writes a section header in the effective mode.
func (r *Renderer) Header(level int, text string) {
	if r.EffectiveMode() == ModeText {
		_, _ = fmt.Fprintln(r.out, text)
		if level == 1 {
			_, _ = fmt.Fprintln(r.out, strings.Repeat("=", len(text)))
		}
		return
	}
	_, _ = fmt.Fprintln(r.out, FormatHeader(level, text))
	_, _ = fmt.Fprintln(r.out)
}

// FormatHeader returns a markdown header at the given level.
func FormatHeader(level int, text string) string {
	if level < 1 {
		level = 1
	}
	return strings.Repeat("#", level) + " " + text
}

// Table writes a table: box-drawn in text mode, pipe-delimited in
// markdown mode.
func (r *Renderer) Table(header table.Row, rows []table.Row) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.AppendHeader(header)
	for _, row := range rows {
		t.AppendRow(row)
	}
	if r.EffectiveMode() == ModeMarkdown {
		t.RenderMarkdown()
		return
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
