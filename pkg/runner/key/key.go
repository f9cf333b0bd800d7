// Package key prints the legend of symbols used by the agenda views.
package key

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/agenda/pkg/glyph"
)

// Key prints resource symbols and view markers.
type Key struct{}

// Do renders both tables to color.Output.
func (k *Key) Do(ctx context.Context) error {
	_, _ = fmt.Fprintln(color.Output, "")

	var resources, markers []glyph.Glyph
	for _, g := range glyph.DefaultGlyphs() {
		if g.Marker {
			markers = append(markers, g)
		} else {
			resources = append(resources, g)
		}
	}

	k.Key(ctx, resources, false)
	_, _ = fmt.Fprintln(color.Output, "")
	k.Key(ctx, markers, true)

	_, _ = fmt.Fprintln(color.Output, "")
	return nil
}

// Key renders a glyph table; markers switches the heading.
func (k *Key) Key(_ context.Context, glyfs []glyph.Glyph, markers bool) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	if markers {
		tbl.AddRow(bold.Sprint("Markers"), bold.Sprint("Meaning"))
	} else {
		tbl.AddRow(bold.Sprint("Resources"), bold.Sprint("Meaning"))
	}
	for _, v := range glyfs {
		tbl.AddRow(v.Symbol, v.Meaning)
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(color.Output, tbl)
}
