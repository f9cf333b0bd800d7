// Package events holds the runners for the event subcommands.
package events

import (
	"context"
	"fmt"

	"tableflip.dev/agenda/pkg/app"
	"tableflip.dev/agenda/pkg/event"
	"tableflip.dev/agenda/pkg/printers"
)

// Add books an event and warns about double bookings.
type Add struct {
	Draft   event.Draft
	Service *app.Service
	Printer *printers.Printer
	Format  printers.Format
}

func (n *Add) Do(ctx context.Context) error {
	e, conflicts, err := n.Service.AddEvent(ctx, n.Draft)
	if err != nil {
		return err
	}
	return n.print(e, conflicts)
}

func (n *Add) print(e event.Event, conflicts []event.Event) error {
	if n.Format != printers.Text {
		return printers.Structured(n.Printer.Out, n.Format, result{Event: e, Conflicts: conflicts})
	}
	n.Printer.Events("Booked", []event.Event{e}, nil)
	if len(conflicts) > 0 {
		n.Printer.Conflicts(e, conflicts)
	}
	return nil
}

type result struct {
	Event     event.Event   `json:"event" yaml:"event"`
	Conflicts []event.Event `json:"conflicts,omitempty" yaml:"conflicts,omitempty"`
}

// Move applies a patch to an event.
type Move struct {
	ID      string
	Patch   event.Patch
	Service *app.Service
	Printer *printers.Printer
	Format  printers.Format
}

func (n *Move) Do(ctx context.Context) error {
	e, conflicts, err := n.Service.UpdateEvent(ctx, n.ID, n.Patch)
	if err != nil {
		return err
	}
	add := Add{Service: n.Service, Printer: n.Printer, Format: n.Format}
	return add.print(e, conflicts)
}

// Remove deletes an event.
type Remove struct {
	ID      string
	Service *app.Service
	Printer *printers.Printer
}

func (n *Remove) Do(ctx context.Context) error {
	if err := n.Service.DeleteEvent(ctx, n.ID); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(n.Printer.Out, "removed %s\n", n.ID)
	return nil
}

// List prints events, optionally limited to some resources.
type List struct {
	Resources []string
	Service   *app.Service
	Printer   *printers.Printer
	Format    printers.Format
}

func (n *List) Do(ctx context.Context) error {
	list := n.Service.EventList(ctx, n.Resources...)
	if n.Format != printers.Text {
		return printers.Structured(n.Printer.Out, n.Format, list)
	}
	conflicted := make(map[string]bool)
	for _, e := range list {
		if len(n.Service.Events.FindConflicts(e)) > 0 {
			conflicted[e.ID] = true
		}
	}
	n.Printer.Events("Events", list, conflicted)
	return nil
}

// Conflicts prints the events double booked with one event.
type Conflicts struct {
	ID      string
	Service *app.Service
	Printer *printers.Printer
	Format  printers.Format
}

func (n *Conflicts) Do(ctx context.Context) error {
	e, err := n.Service.Events.Get(n.ID)
	if err != nil {
		return err
	}
	conflicts, err := n.Service.Conflicts(ctx, n.ID)
	if err != nil {
		return err
	}
	if n.Format != printers.Text {
		return printers.Structured(n.Printer.Out, n.Format, result{Event: e, Conflicts: conflicts})
	}
	n.Printer.Conflicts(e, conflicts)
	return nil
}
