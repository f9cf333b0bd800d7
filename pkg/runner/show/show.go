// Package show renders computed views of the agenda.
package show

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/agenda/pkg/app"
	"tableflip.dev/agenda/pkg/layout"
	"tableflip.dev/agenda/pkg/printers"
	"tableflip.dev/agenda/pkg/window"
)

// Show prints one view.
type Show struct {
	View      window.View
	Anchor    time.Time
	Resources []string
	Service   *app.Service
	Printer   *printers.Printer
	Format    printers.Format
}

type rendered struct {
	Window window.Window       `json:"window" yaml:"window"`
	Items  []layout.Positioned `json:"items" yaml:"items"`
}

func (s *Show) Do(ctx context.Context) error {
	w, items, err := s.Service.Layout(ctx, s.View, s.Anchor, s.Resources)
	if err != nil {
		return err
	}
	if s.Format != printers.Text {
		return printers.Structured(s.Printer.Out, s.Format, rendered{Window: w, Items: items})
	}
	s.Printer.Layout(w, items)
	return nil
}

// Watch prints a view and prints it again whenever the store changes on
// disk, until ctx is done.
type Watch struct {
	Show
	Logger *zap.Logger
	// Clear is written before every redraw.
	Clear string
}

func (w *Watch) Do(ctx context.Context) error {
	if w.Logger == nil {
		w.Logger = zap.NewNop()
	}
	changes, err := w.Service.Watch(ctx)
	if err != nil {
		return err
	}
	if err := w.redraw(ctx); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case change, ok := <-changes:
			if !ok {
				return nil
			}
			w.Logger.Debug("store changed", zap.Stringer("kind", change.Kind))
			if err := w.Service.Reload(ctx); err != nil {
				w.Logger.Warn("reload failed", zap.Error(err))
				continue
			}
			if err := w.redraw(ctx); err != nil {
				return err
			}
		}
	}
}

func (w *Watch) redraw(ctx context.Context) error {
	if w.Clear != "" {
		_, _ = fmt.Fprint(w.Printer.Out, w.Clear)
	}
	return w.Show.Do(ctx)
}
