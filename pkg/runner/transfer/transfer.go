// Package transfer moves events in and out of iCalendar files.
package transfer

import (
	"context"
	"fmt"
	"io"
	"os"

	"tableflip.dev/agenda/pkg/app"
	"tableflip.dev/agenda/pkg/printers"
)

// Export writes events as iCalendar to File, or Out when File is "" or "-".
type Export struct {
	File      string
	Resources []string
	Service   *app.Service
	Out       io.Writer
}

func (e *Export) Do(ctx context.Context) error {
	if e.File == "" || e.File == "-" {
		return e.Service.Export(ctx, e.Out, e.Resources...)
	}
	f, err := os.Create(e.File)
	if err != nil {
		return err
	}
	if err := e.Service.Export(ctx, f, e.Resources...); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Import reads iCalendar from File, or In when File is "" or "-".
type Import struct {
	File            string
	DefaultResource string
	Service         *app.Service
	In              io.Reader
	Printer         *printers.Printer
	Format          printers.Format
}

func (i *Import) Do(ctx context.Context) error {
	in := i.In
	if i.File != "" && i.File != "-" {
		f, err := os.Open(i.File)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	result, err := i.Service.Import(ctx, in, i.DefaultResource)
	if err != nil {
		return err
	}
	if i.Format != printers.Text {
		return printers.Structured(i.Printer.Out, i.Format, result)
	}
	_, _ = fmt.Fprintf(i.Printer.Out, "created %d, updated %d, skipped %d\n",
		len(result.Created), len(result.Updated), len(result.Skipped))
	for _, s := range result.Skipped {
		_, _ = fmt.Fprintf(i.Printer.Out, "  skipped %s: %s\n", s.UID, s.Reason)
	}
	return nil
}
