package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/fatih/color"

	"tableflip.dev/agenda/pkg/glyph"
	"tableflip.dev/agenda/pkg/layout"
	"tableflip.dev/agenda/pkg/window"
)

// group is the items of one bucket and lane.
type group struct {
	day   time.Time
	lane  string
	items []layout.Positioned
}

// Layout prints a computed view as side-by-side columns, one block per day
// bucket and lane. Empty days are listed for day and week views and skipped
// for the month view.
func (p *Printer) Layout(w window.Window, items []layout.Positioned) {
	head := fmt.Sprintf("%s view · %s → %s", w.View,
		w.Start.Format("Mon Jan 2"), w.End.Add(-time.Nanosecond).Format("Mon Jan 2"))
	p.TitleWithCount(head, len(items), "event")
	_, _ = p.style(color.Faint).Fprintf(p.Out, "visible %02d:00–%02d:00\n", w.VisibleStartHour, w.VisibleEndHour)

	groups := groupItems(items)
	byDay := make(map[time.Time][]group)
	for _, g := range groups {
		byDay[g.day] = append(byDay[g.day], g)
	}

	day := p.style(color.Bold)
	lane := p.style(color.FgCyan)
	for _, b := range w.Buckets {
		gs := byDay[b.Day]
		if len(gs) == 0 && w.View == window.ViewMonth {
			continue
		}
		_, _ = day.Fprintf(p.Out, "\n%s\n", b.Day.Format("Mon Jan 2"))
		if len(gs) == 0 {
			p.None()
			continue
		}
		for _, g := range gs {
			if g.lane != "" {
				_, _ = lane.Fprintf(p.Out, "  %s\n", g.lane)
			}
			_, _ = fmt.Fprintln(p.Out, p.columns(g.items))
		}
	}
}

// columns renders a laid-out group with one text block per column.
func (p *Printer) columns(items []layout.Positioned) string {
	count := 1
	if len(items) > 0 {
		count = items[0].ColumnCount
	}
	width := (p.Width - 2) / count
	if width < 12 {
		width = 12
	}

	cols := make([][]string, count)
	for _, it := range items {
		cols[it.Column] = append(cols[it.Column], Fit(p.cell(it), width-1))
	}

	style := lipgloss.NewStyle().Width(width)
	blocks := make([]string, 0, count+1)
	blocks = append(blocks, "  ")
	for _, lines := range cols {
		blocks = append(blocks, style.Render(strings.Join(lines, "\n")))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}

// cell is the one-line text of a positioned event.
func (p *Printer) cell(it layout.Positioned) string {
	lead, trail := glyph.Edges(it.TruncatedBefore, it.TruncatedAfter)
	return fmt.Sprintf("%s%s-%s%s %s", lead,
		p.local(it.ClampedStart).Format("15:04"), p.local(it.ClampedEnd).Format("15:04"), trail, it.Event.Title)
}

// groupItems splits ComputeLayout output, which is ordered by bucket then
// lane, into consecutive runs.
func groupItems(items []layout.Positioned) []group {
	var out []group
	for _, it := range items {
		n := len(out)
		if n > 0 && out[n-1].day.Equal(it.Bucket) && out[n-1].lane == it.Lane {
			out[n-1].items = append(out[n-1].items, it)
			continue
		}
		out = append(out, group{day: it.Bucket, lane: it.Lane, items: []layout.Positioned{it}})
	}
	return out
}
