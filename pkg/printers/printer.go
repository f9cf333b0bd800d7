// Package printers renders agenda records for the terminal.
package printers

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"
)

// Format selects how records are written.
type Format string

const (
	Text Format = "text"
	JSON Format = "json"
	YAML Format = "yaml"
)

// ParseFormat converts a flag value; empty means Text.
func ParseFormat(raw string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(raw))); f {
	case "":
		return Text, nil
	case Text, JSON, YAML:
		return f, nil
	default:
		return "", fmt.Errorf("printers: unknown output %q, want text, json or yaml", raw)
	}
}

// Printer writes human readable output.
type Printer struct {
	Out      io.Writer
	Color    bool
	Width    int
	Location *time.Location

	profile termenv.Profile
}

// New returns a printer for w. Colors are enabled only when w is a terminal.
func New(w io.Writer) *Printer {
	p := &Printer{
		Out:      w,
		Color:    IsTerminal(w),
		Width:    100,
		Location: time.Local,
		profile:  termenv.Ascii,
	}
	if p.Color {
		p.profile = termenv.EnvColorProfile()
	}
	return p
}

// ForceColor enables colors regardless of where Out points, using the
// profile of the environment.
func (p *Printer) ForceColor() {
	p.Color = true
	p.profile = termenv.EnvColorProfile()
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Structured encodes v as JSON or YAML.
func Structured(w io.Writer, f Format, v any) error {
	switch f {
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
}

func (p *Printer) style(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if p.Color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// Title prints an underlined heading.
func (p *Printer) Title(title string) {
	_, _ = p.style(color.Bold, color.Underline).Fprintln(p.Out, title)
}

// TitleWithCount prints a heading followed by a faint item count.
func (p *Printer) TitleWithCount(title string, count int, noun string) {
	_, _ = p.style(color.Bold, color.Underline).Fprint(p.Out, title)
	if count != 1 {
		noun += "s"
	}
	_, _ = p.style(color.Faint).Fprintf(p.Out, " - %d %s\n", count, noun)
}

// None prints the empty-list marker.
func (p *Printer) None() {
	_, _ = p.style(color.Faint, color.Italic).Fprint(p.Out, "  none\n")
}

// Swatch renders a colored block for hex, or a plain one when colors are off
// or hex is empty.
func (p *Printer) Swatch(hex string) string {
	if hex == "" {
		return " "
	}
	s := termenv.String("■")
	if p.Color {
		s = s.Foreground(p.profile.Color(hex))
	}
	return s.String()
}

// Fit truncates s to width cells, marking the cut with an ellipsis.
func Fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return truncate.StringWithTail(s, uint(width), "…")
}

func (p *Printer) local(t time.Time) time.Time {
	if p.Location == nil {
		return t
	}
	return t.In(p.Location)
}
