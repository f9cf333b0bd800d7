// Package layout assigns events to non-overlapping columns.
//
// The algorithm is greedy interval-graph colouring: items are sorted by start
// (ties by id), each item goes into the lowest-indexed column whose last end is
// at or before its start, and a new column is opened when none fits. Every item
// in a batch reports the final column count of that batch.
package layout

import (
	"sort"
	"time"

	"tableflip.dev/agenda/pkg/event"
)

// Visibility classifies an event relative to one view bucket.
type Visibility int

const (
	// Invisible events do not intersect the bucket and are never laid out.
	Invisible Visibility = iota
	// Visible events fit the visible hours unchanged.
	Visible
	// Boundary events cross one or both edges of the visible hours.
	Boundary
)

func (v Visibility) String() string {
	switch v {
	case Visible:
		return "visible"
	case Boundary:
		return "boundary"
	default:
		return "invisible"
	}
}

// MarshalText renders the classification by name in JSON and YAML output.
func (v Visibility) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// Positioned is an event plus where and how it should be drawn for one view
// bucket. It is derived state and recomputed on every layout request.
type Positioned struct {
	Event event.Event `json:"event" yaml:"event"`

	Column      int `json:"column" yaml:"column"`
	ColumnCount int `json:"columnCount" yaml:"columnCount"`

	ClampedStart    time.Time `json:"clampedStart" yaml:"clampedStart"`
	ClampedEnd      time.Time `json:"clampedEnd" yaml:"clampedEnd"`
	TruncatedBefore bool      `json:"truncatedBefore" yaml:"truncatedBefore"`
	TruncatedAfter  bool      `json:"truncatedAfter" yaml:"truncatedAfter"`

	Visibility Visibility `json:"visibility" yaml:"visibility"`
	// Bucket is the start of the day bucket this item was laid out in.
	Bucket time.Time `json:"bucket" yaml:"bucket"`
	// Lane is the resource id for per-resource layouts, empty otherwise.
	Lane string `json:"lane,omitempty" yaml:"lane,omitempty"`
}

// Unclamped wraps an event whose display interval equals its stored one.
func Unclamped(e event.Event) Positioned {
	return Positioned{
		Event:        e,
		ClampedStart: e.Start,
		ClampedEnd:   e.End,
		Visibility:   Visible,
	}
}

// Columns lays out raw events on their own start/end.
func Columns(events []event.Event) []Positioned {
	items := make([]Positioned, 0, len(events))
	for _, e := range events {
		items = append(items, Unclamped(e))
	}
	return Arrange(items)
}

// Arrange assigns Column and ColumnCount using each item's clamped interval
// and returns the items in layout order. The input slice is not modified.
func Arrange(items []Positioned) []Positioned {
	if len(items) == 0 {
		return []Positioned{}
	}

	out := make([]Positioned, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		left, right := out[i], out[j]
		if !left.ClampedStart.Equal(right.ClampedStart) {
			return left.ClampedStart.Before(right.ClampedStart)
		}
		return left.Event.ID < right.Event.ID
	})

	// columnEnds[i] is the end of the last item placed in column i.
	var columnEnds []time.Time
	for i := range out {
		col := -1
		for c, end := range columnEnds {
			if !end.After(out[i].ClampedStart) {
				col = c
				break
			}
		}
		if col < 0 {
			col = len(columnEnds)
			columnEnds = append(columnEnds, time.Time{})
		}
		columnEnds[col] = out[i].ClampedEnd
		out[i].Column = col
	}

	for i := range out {
		out[i].ColumnCount = len(columnEnds)
	}
	return out
}
