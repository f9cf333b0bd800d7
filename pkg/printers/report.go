package printers

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/agenda/pkg/app"
	"tableflip.dev/agenda/pkg/glyph"
)

// Report prints a utilization report.
func (p *Printer) Report(result app.ReportResult, label string) {
	since := p.local(result.Since).Format("2006-01-02 15:04")
	until := p.local(result.Until).Format("2006-01-02 15:04")
	p.Title(fmt.Sprintf("Report · last %s (%s → %s)", label, since, until))

	if result.Total == 0 {
		_, _ = fmt.Fprintln(p.Out, "  No bookings found in this window.")
		return
	}

	faint := p.style(color.Faint)
	_, _ = faint.Fprintf(p.Out, "capacity %s per resource\n", hours(result.Capacity))

	for _, section := range result.Sections {
		name := section.Resource.Name
		if name == "" {
			name = section.Resource.ID
		}
		if section.Missing {
			name += " (missing)"
		}
		_, _ = p.style(color.Bold).Fprintf(p.Out, "\n%s %s", p.Swatch(section.Resource.Color), name)
		_, _ = faint.Fprintf(p.Out, "  %s booked · %.0f%%\n", hours(section.Booked), section.Utilization*100)

		tbl := uitable.New()
		tbl.Separator = "  "
		for _, item := range section.Items {
			flag := " "
			if item.Conflicts > 0 {
				flag = glyph.Conflict.String()
			}
			tbl.AddRow("", flag, p.local(item.Event.Start).Format(stamp), hours(item.Booked), item.Event.Title)
		}
		_, _ = fmt.Fprintln(p.Out, tbl)
	}
}

func hours(d time.Duration) string {
	return fmt.Sprintf("%.1fh", d.Hours())
}
