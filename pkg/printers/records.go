package printers

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/agenda/pkg/event"
	"tableflip.dev/agenda/pkg/glyph"
	"tableflip.dev/agenda/pkg/resource"
)

const stamp = "Mon Jan 2 15:04"

// Resources prints one row per resource. refs, when set, adds the number of
// events booked on each.
func (p *Printer) Resources(list []resource.Resource, refs func(id string) int) {
	p.TitleWithCount("Resources", len(list), "resource")
	if len(list) == 0 {
		p.None()
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	head := p.style(color.Faint)
	if refs != nil {
		tbl.AddRow(head.Sprint(""), head.Sprint("ID"), head.Sprint("NAME"), head.Sprint("TYPE"), head.Sprint("EVENTS"))
	} else {
		tbl.AddRow(head.Sprint(""), head.Sprint("ID"), head.Sprint("NAME"), head.Sprint("TYPE"))
	}
	for _, r := range list {
		mark := glyph.ForType(r.Type).String()
		if r.Color != "" {
			mark = p.Swatch(r.Color)
		}
		if refs != nil {
			tbl.AddRow(mark, r.ID, r.Name, r.Type, refs(r.ID))
		} else {
			tbl.AddRow(mark, r.ID, r.Name, r.Type)
		}
	}
	_, _ = fmt.Fprintln(p.Out, tbl)
}

// Events prints one row per event. conflicted marks ids that are double
// booked.
func (p *Printer) Events(title string, list []event.Event, conflicted map[string]bool) {
	p.TitleWithCount(title, len(list), "event")
	if len(list) == 0 {
		p.None()
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = uint(p.Width / 2)
	id := p.style(color.FgHiYellow, color.Faint)
	warn := p.style(color.FgRed, color.Bold)
	for _, e := range list {
		flag := " "
		if conflicted[e.ID] {
			flag = warn.Sprint(glyph.Conflict.String())
		}
		span := fmt.Sprintf("%s → %s", p.local(e.Start).Format(stamp), p.local(e.End).Format(stamp))
		tbl.AddRow(flag, id.Sprint(e.ID), span, e.ResourceID, e.Title)
	}
	_, _ = fmt.Fprintln(p.Out, tbl)
}

// Conflicts prints the events double booked with e.
func (p *Printer) Conflicts(e event.Event, list []event.Event) {
	if len(list) == 0 {
		_, _ = p.style(color.FgGreen).Fprintf(p.Out, "%s has no conflicts on %s\n", e.ID, e.ResourceID)
		return
	}
	_, _ = p.style(color.FgRed, color.Bold).Fprintf(p.Out, "%s %s overlaps %d event(s) on %s\n",
		glyph.Conflict.String(), e.ID, len(list), e.ResourceID)
	p.Events("Conflicts", list, nil)
}
