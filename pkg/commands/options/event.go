package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/agenda/pkg/event"
	"tableflip.dev/agenda/pkg/timeutil"
)

// EventOptions
type EventOptions struct {
	Title       string
	Resource    string
	At          string
	For         string
	Color       string
	Description string
	ID          string
}

func AddEventArgs(cmd *cobra.Command, o *EventOptions) {
	cmd.Flags().StringVar(&o.ID, "id", "",
		"Event id. Generated when empty.")
	cmd.Flags().StringVarP(&o.Resource, "resource", "r", "",
		"Resource the event is booked on.")
	cmd.Flags().StringVar(&o.At, "at", "",
		`Start time, example: --at="2026-10-15 09:00".`)
	cmd.Flags().StringVar(&o.For, "for", timeutil.DefaultLength,
		`Length of the event, example: --for=1h30m.`)
	cmd.Flags().StringVar(&o.Color, "color", "",
		"Display color.")
	cmd.Flags().StringVarP(&o.Description, "description", "d", "",
		"Longer description.")
}

func AddMoveArgs(cmd *cobra.Command, o *EventOptions) {
	cmd.Flags().StringVar(&o.At, "at", "",
		"New start time. The length is kept unless --for is given.")
	cmd.Flags().StringVar(&o.For, "for", "",
		"New length.")
	cmd.Flags().StringVarP(&o.Resource, "resource", "r", "",
		"Rebook on another resource.")
	cmd.Flags().StringVar(&o.Title, "title", "",
		"New title.")
}

// Draft builds an event draft, reading times in loc.
func (o *EventOptions) Draft(loc *time.Location) (event.Draft, error) {
	start, err := event.ParseTime(o.At, loc)
	if err != nil {
		return event.Draft{}, err
	}
	length, err := timeutil.ParseLength(o.For)
	if err != nil {
		return event.Draft{}, err
	}
	return event.Draft{
		ID:          o.ID,
		Title:       o.Title,
		Start:       start,
		End:         start.Add(length),
		ResourceID:  o.Resource,
		Color:       o.Color,
		Description: o.Description,
	}, nil
}

// Patch builds a move patch for current from the flags set on cmd.
func (o *EventOptions) Patch(cmd *cobra.Command, current event.Event, loc *time.Location) (event.Patch, error) {
	var p event.Patch
	start := current.Start
	if cmd.Flags().Changed("at") {
		t, err := event.ParseTime(o.At, loc)
		if err != nil {
			return p, err
		}
		p = event.Move(current, t)
		start = t
	}
	if cmd.Flags().Changed("for") {
		length, err := timeutil.ParseLength(o.For)
		if err != nil {
			return p, err
		}
		end := start.Add(length)
		p.End = &end
	}
	if cmd.Flags().Changed("resource") {
		p.ResourceID = &o.Resource
	}
	if cmd.Flags().Changed("title") {
		p.Title = &o.Title
	}
	return p, nil
}
