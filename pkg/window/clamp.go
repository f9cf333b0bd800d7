package window

import (
	"time"

	"tableflip.dev/agenda/pkg/event"
	"tableflip.dev/agenda/pkg/layout"
)

// Placement is how one event appears in one bucket.
type Placement struct {
	Visibility      layout.Visibility
	ClampedStart    time.Time
	ClampedEnd      time.Time
	TruncatedBefore bool
	TruncatedAfter  bool
}

// EffectiveEnd is the end used for membership within b: the event end cut to
// the bucket day, where an end exactly at the next midnight counts as 23:59 of
// the bucket day.
func (b Bucket) EffectiveEnd(e event.Event) time.Time {
	end := e.End
	if end.After(b.DayEnd) {
		end = b.DayEnd
	}
	if end.Equal(b.DayEnd) {
		return b.DayEnd.Add(-time.Minute)
	}
	return end
}

// Place classifies e against b and computes its display interval in the
// bucket's zone. The stored event is never modified.
func (b Bucket) Place(e event.Event) Placement {
	if !e.Start.Before(b.DayEnd) || !b.Day.Before(e.End) {
		return Placement{Visibility: layout.Invisible}
	}

	loc := b.Day.Location()
	start := e.Start.In(loc)
	if start.Before(b.Day) {
		start = b.Day
	}
	end := e.End.In(loc)
	if end.After(b.DayEnd) {
		end = b.DayEnd
	}

	p := Placement{
		TruncatedBefore: start.Before(b.VisibleStart),
		TruncatedAfter:  !b.EffectiveEnd(e).Before(b.VisibleEnd),
		ClampedStart:    start,
		ClampedEnd:      end,
	}
	if p.TruncatedBefore {
		p.ClampedStart = b.VisibleStart
	}
	if p.TruncatedAfter {
		p.ClampedEnd = b.VisibleEnd
	}
	// Events living wholly in the hidden head or tail collapse to a marker at
	// that edge rather than an inverted interval.
	if p.ClampedStart.After(b.VisibleEnd) {
		p.ClampedStart = b.VisibleEnd
	}
	if p.ClampedEnd.Before(p.ClampedStart) {
		p.ClampedEnd = p.ClampedStart
	}

	p.Visibility = layout.Visible
	if p.TruncatedBefore || p.TruncatedAfter {
		p.Visibility = layout.Boundary
	}
	return p
}
