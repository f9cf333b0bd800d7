// Package resources holds the runners for the resource subcommands.
package resources

import (
	"context"
	"fmt"

	"tableflip.dev/agenda/pkg/app"
	"tableflip.dev/agenda/pkg/printers"
	"tableflip.dev/agenda/pkg/resource"
)

// List prints every resource.
type List struct {
	Service *app.Service
	Printer *printers.Printer
	Format  printers.Format
}

func (n *List) Do(ctx context.Context) error {
	list := n.Service.ResourceList(ctx)
	if n.Format != printers.Text {
		return printers.Structured(n.Printer.Out, n.Format, list)
	}
	n.Printer.Resources(list, n.Service.Events.References)
	return nil
}

// Add creates a resource.
type Add struct {
	Resource resource.Resource
	Service  *app.Service
	Printer  *printers.Printer
	Format   printers.Format
}

func (n *Add) Do(ctx context.Context) error {
	r, err := n.Service.AddResource(ctx, n.Resource)
	if err != nil {
		return err
	}
	if n.Format != printers.Text {
		return printers.Structured(n.Printer.Out, n.Format, r)
	}
	_, _ = fmt.Fprintf(n.Printer.Out, "added %s %s\n", r.Type, r.ID)
	return nil
}

// Update patches a resource.
type Update struct {
	ID      string
	Patch   resource.Patch
	Service *app.Service
	Printer *printers.Printer
	Format  printers.Format
}

func (n *Update) Do(ctx context.Context) error {
	r, err := n.Service.UpdateResource(ctx, n.ID, n.Patch)
	if err != nil {
		return err
	}
	if n.Format != printers.Text {
		return printers.Structured(n.Printer.Out, n.Format, r)
	}
	n.Printer.Resources([]resource.Resource{r}, nil)
	return nil
}

// Remove deletes a resource. Events booked on it are kept unless
// RequireUnreferenced refuses the removal.
type Remove struct {
	ID                  string
	RequireUnreferenced bool
	Service             *app.Service
	Printer             *printers.Printer
}

func (n *Remove) Do(ctx context.Context) error {
	orphans := n.Service.Events.References(n.ID)
	if err := n.Service.RemoveResource(ctx, n.ID, n.RequireUnreferenced); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(n.Printer.Out, "removed %s\n", n.ID)
	if orphans > 0 {
		_, _ = fmt.Fprintf(n.Printer.Out, "%d event(s) still point at %s\n", orphans, n.ID)
	}
	return nil
}
