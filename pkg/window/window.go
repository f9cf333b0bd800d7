// Package window computes the visible time range of a calendar view, splits it
// into day buckets and places events into those buckets.
package window

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidWindow is returned for a malformed view request.
var ErrInvalidWindow = errors.New("window: invalid window")

// View selects how many day buckets a window has and how lanes are formed.
type View string

const (
	ViewDay      View = "day"
	ViewWeek     View = "week"
	ViewMonth    View = "month"
	ViewResource View = "resource"
)

const (
	// DefaultVisibleStartHour is the first visible hour of a day bucket.
	DefaultVisibleStartHour = 1
	// DefaultVisibleEndHour is the exclusive last visible hour of a day bucket.
	DefaultVisibleEndHour = 23
)

// AllViews returns the supported views.
func AllViews() []View {
	return []View{ViewDay, ViewWeek, ViewMonth, ViewResource}
}

// ParseView converts a string to a View.
func ParseView(raw string) (View, error) {
	v := View(strings.ToLower(strings.TrimSpace(raw)))
	for _, candidate := range AllViews() {
		if candidate == v {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: unknown view %q", ErrInvalidWindow, raw)
}

// ParseWeekStart accepts "monday" or "sunday"; empty means monday.
func ParseWeekStart(raw string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "monday":
		return time.Monday, nil
	case "sunday":
		return time.Sunday, nil
	default:
		return time.Monday, fmt.Errorf("%w: unsupported week start %q", ErrInvalidWindow, raw)
	}
}

// Window is the resolved time range of one view request.
type Window struct {
	View     View           `json:"view" yaml:"view"`
	Anchor   time.Time      `json:"anchor" yaml:"anchor"`
	Location *time.Location `json:"-" yaml:"-"`
	// Zone is the name of Location.
	Zone string `json:"zone" yaml:"zone"`

	// Start and End bound the union of all buckets, half-open.
	Start time.Time `json:"start" yaml:"start"`
	End   time.Time `json:"end" yaml:"end"`

	Buckets []Bucket `json:"buckets" yaml:"buckets"`

	// Lanes fixes the resource lanes, in order, for the resource view.
	Lanes []string `json:"lanes,omitempty" yaml:"lanes,omitempty"`

	VisibleStartHour int `json:"visibleStartHour" yaml:"visibleStartHour"`
	VisibleEndHour   int `json:"visibleEndHour" yaml:"visibleEndHour"`
}

// Bucket is one calendar day of a window.
type Bucket struct {
	Day          time.Time `json:"day" yaml:"day"`
	DayEnd       time.Time `json:"dayEnd" yaml:"dayEnd"`
	VisibleStart time.Time `json:"visibleStart" yaml:"visibleStart"`
	VisibleEnd   time.Time `json:"visibleEnd" yaml:"visibleEnd"`
}

// Option customises New.
type Option func(*options)

type options struct {
	location  *time.Location
	weekStart time.Weekday
	startHour int
	endHour   int
	lanes     []string
}

// WithLocation sets the zone day boundaries are computed in. Defaults to the
// anchor's location.
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		o.location = loc
	}
}

// WithWeekStart sets the first day of week views.
func WithWeekStart(d time.Weekday) Option {
	return func(o *options) {
		o.weekStart = d
	}
}

// WithVisibleHours overrides the visible hour range [start, end).
func WithVisibleHours(start, end int) Option {
	return func(o *options) {
		o.startHour = start
		o.endHour = end
	}
}

// WithLanes fixes the order of the resource lanes of a resource view. Events
// on other resources still get a lane after these unless a filter is given.
func WithLanes(resourceIDs ...string) Option {
	return func(o *options) {
		o.lanes = append([]string(nil), resourceIDs...)
	}
}

// New resolves the window for view around anchor.
func New(view View, anchor time.Time, opts ...Option) (Window, error) {
	o := &options{
		weekStart: time.Monday,
		startHour: DefaultVisibleStartHour,
		endHour:   DefaultVisibleEndHour,
	}
	for _, opt := range opts {
		opt(o)
	}

	if anchor.IsZero() {
		return Window{}, fmt.Errorf("%w: anchor date is required", ErrInvalidWindow)
	}
	if _, err := ParseView(string(view)); err != nil {
		return Window{}, err
	}
	if o.startHour < 0 || o.endHour > 24 || o.startHour >= o.endHour {
		return Window{}, fmt.Errorf("%w: visible hours [%d, %d) out of range", ErrInvalidWindow, o.startHour, o.endHour)
	}
	loc := o.location
	if loc == nil {
		loc = anchor.Location()
	}

	local := anchor.In(loc)
	first := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	days := 1
	switch view {
	case ViewWeek:
		offset := (int(first.Weekday()) - int(o.weekStart) + 7) % 7
		first = first.AddDate(0, 0, -offset)
		days = 7
	case ViewMonth:
		first = time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
		days = first.AddDate(0, 1, -1).Day()
	}

	w := Window{
		View:             view,
		Anchor:           anchor,
		Location:         loc,
		Zone:             loc.String(),
		Lanes:            o.lanes,
		VisibleStartHour: o.startHour,
		VisibleEndHour:   o.endHour,
		Buckets:          make([]Bucket, 0, days),
	}
	for i := 0; i < days; i++ {
		w.Buckets = append(w.Buckets, newBucket(first.AddDate(0, 0, i), o.startHour, o.endHour))
	}
	w.Start = w.Buckets[0].Day
	w.End = w.Buckets[len(w.Buckets)-1].DayEnd
	return w, nil
}

func newBucket(day time.Time, startHour, endHour int) Bucket {
	y, m, d := day.Date()
	loc := day.Location()
	return Bucket{
		Day:          day,
		DayEnd:       time.Date(y, m, d+1, 0, 0, 0, 0, loc),
		VisibleStart: time.Date(y, m, d, startHour, 0, 0, 0, loc),
		VisibleEnd:   time.Date(y, m, d, endHour, 0, 0, 0, loc),
	}
}

// Contains reports whether t falls within the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// BucketFor returns the bucket holding t.
func (w Window) BucketFor(t time.Time) (Bucket, bool) {
	for _, b := range w.Buckets {
		if !t.Before(b.Day) && t.Before(b.DayEnd) {
			return b, true
		}
	}
	return Bucket{}, false
}
