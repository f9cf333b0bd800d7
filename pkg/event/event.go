// Package event defines the agenda event record and the interval helpers the
// rest of the engine builds on.
package event

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidEvent is returned when an event violates a structural invariant.
var ErrInvalidEvent = errors.New("event: invalid event")

// Event is a single, materialized, time-bounded booking on one resource.
type Event struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Start       time.Time `json:"start" yaml:"start"`
	End         time.Time `json:"end" yaml:"end"`
	ResourceID  string    `json:"resourceId" yaml:"resourceId"`
	Color       string    `json:"color,omitempty" yaml:"color,omitempty"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
}

// Draft is the input for creating an event. An empty ID asks the controller
// to generate one.
type Draft struct {
	ID          string
	Title       string
	Start       time.Time
	End         time.Time
	ResourceID  string
	Color       string
	Description string
}

// Event converts the draft into an event record.
func (d Draft) Event() Event {
	return Event{
		ID:          d.ID,
		Title:       d.Title,
		Start:       d.Start,
		End:         d.End,
		ResourceID:  d.ResourceID,
		Color:       d.Color,
		Description: d.Description,
	}
}

// Patch describes a partial update. Nil fields are left untouched, so an
// empty Patch is a no-op.
type Patch struct {
	Title       *string
	Start       *time.Time
	End         *time.Time
	ResourceID  *string
	Color       *string
	Description *string
}

// IsZero reports whether the patch changes nothing.
func (p Patch) IsZero() bool {
	return p.Title == nil && p.Start == nil && p.End == nil &&
		p.ResourceID == nil && p.Color == nil && p.Description == nil
}

// Apply returns a copy of e with the patch applied. The id never changes.
func (p Patch) Apply(e Event) Event {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Start != nil {
		e.Start = *p.Start
	}
	if p.End != nil {
		e.End = *p.End
	}
	if p.ResourceID != nil {
		e.ResourceID = *p.ResourceID
	}
	if p.Color != nil {
		e.Color = *p.Color
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	return e
}

// Move shifts an event so that it starts at start, keeping its duration.
func Move(e Event, start time.Time) Patch {
	end := start.Add(e.Duration())
	return Patch{Start: &start, End: &end}
}

// Validate checks the structural invariants of an event: an id, a resource
// reference and a strictly positive duration.
func Validate(e Event) error {
	if e.ID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidEvent)
	}
	if e.ResourceID == "" {
		return fmt.Errorf("%w: %s: resource id is required", ErrInvalidEvent, e.ID)
	}
	if !e.End.After(e.Start) {
		return fmt.Errorf("%w: %s: end %s is not after start %s", ErrInvalidEvent, e.ID,
			FormatTime(e.End), FormatTime(e.Start))
	}
	return nil
}

// Overlaps reports whether a and b share any instant using half-open
// intervals: an event ending exactly when another starts does not overlap it.
func Overlaps(a, b Event) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// SameEvent reports identity, which is by id only.
func SameEvent(a, b Event) bool {
	return a.ID == b.ID
}

// Equal compares every field. Instants are compared with time.Equal so a
// change of location alone does not make two events different.
func Equal(a, b Event) bool {
	return a.ID == b.ID &&
		a.Title == b.Title &&
		a.Start.Equal(b.Start) &&
		a.End.Equal(b.End) &&
		a.ResourceID == b.ResourceID &&
		a.Color == b.Color &&
		a.Description == b.Description
}

// Duration is End - Start.
func (e Event) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

func (e Event) String() string {
	return fmt.Sprintf("%s %q [%s, %s) @%s", e.ID, e.Title, FormatTime(e.Start), FormatTime(e.End), e.ResourceID)
}
