// Package report prints resource utilization over a trailing window.
package report

import (
	"context"

	"tableflip.dev/agenda/pkg/app"
	"tableflip.dev/agenda/pkg/printers"
	"tableflip.dev/agenda/pkg/timeutil"
)

type Report struct {
	Last    string
	Service *app.Service
	Printer *printers.Printer
	Format  printers.Format
}

func (r *Report) Do(ctx context.Context) error {
	duration, label, err := timeutil.ParseWindow(r.Last)
	if err != nil {
		return err
	}
	until := r.Service.Now()
	since := until.Add(-duration)

	result, err := r.Service.Report(ctx, since, until)
	if err != nil {
		return err
	}
	if r.Format != printers.Text {
		return printers.Structured(r.Printer.Out, r.Format, result)
	}
	r.Printer.Report(result, label)
	return nil
}
