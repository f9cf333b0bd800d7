// Package ical converts agenda events to and from iCalendar.
package ical

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"tableflip.dev/agenda/pkg/event"
)

const (
	productID = "-//tableflip.dev//agenda//EN"

	// PropertyResource carries the resource id of an exported event.
	PropertyResource = ical.ComponentProperty("X-AGENDA-RESOURCE")
	// PropertyColor carries the event color.
	PropertyColor = ical.ComponentProperty("COLOR")
)

// Export writes events as a VCALENDAR. stamp is used for DTSTAMP.
func Export(w io.Writer, events []event.Event, stamp time.Time) error {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	for _, e := range events {
		ve := cal.AddEvent(e.ID)
		ve.SetDtStampTime(stamp)
		ve.SetStartAt(e.Start)
		ve.SetEndAt(e.End)
		ve.SetSummary(e.Title)
		if e.Description != "" {
			ve.SetDescription(e.Description)
		}
		if e.Color != "" {
			ve.SetProperty(PropertyColor, e.Color)
		}
		ve.SetProperty(PropertyResource, e.ResourceID)
	}

	if _, err := io.WriteString(w, cal.Serialize()); err != nil {
		return fmt.Errorf("ical: write: %w", err)
	}
	return nil
}

// Skipped records a VEVENT that could not be imported.
type Skipped struct {
	UID    string `json:"uid" yaml:"uid"`
	Reason string `json:"reason" yaml:"reason"`
}

// Import reads events from an iCalendar stream. Events without an
// X-AGENDA-RESOURCE property are booked on defaultResource. Only single
// instances are read; RRULE is ignored.
func Import(r io.Reader, defaultResource string) ([]event.Event, []Skipped, error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, nil, fmt.Errorf("ical: parse: %w", err)
	}

	var (
		events  []event.Event
		skipped []Skipped
	)
	for _, ve := range cal.Events() {
		e, err := fromVEvent(ve, defaultResource)
		if err != nil {
			skipped = append(skipped, Skipped{UID: e.ID, Reason: err.Error()})
			continue
		}
		events = append(events, e)
	}
	return events, skipped, nil
}

func fromVEvent(ve *ical.VEvent, defaultResource string) (event.Event, error) {
	var e event.Event
	uid := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uid == nil || strings.TrimSpace(uid.Value) == "" {
		return e, errors.New("missing UID")
	}
	e.ID = uid.Value

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		e.Title = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil {
		e.Description = p.Value
	}
	if p := ve.GetProperty(PropertyColor); p != nil {
		e.Color = p.Value
	}
	e.ResourceID = defaultResource
	if p := ve.GetProperty(PropertyResource); p != nil && p.Value != "" {
		e.ResourceID = p.Value
	}

	start, err := ve.GetStartAt()
	if err != nil {
		return e, fmt.Errorf("DTSTART: %w", err)
	}
	end, err := ve.GetEndAt()
	if err != nil {
		return e, fmt.Errorf("DTEND: %w", err)
	}
	e.Start = start
	e.End = end

	if err := event.Validate(e); err != nil {
		return e, err
	}
	return e, nil
}
