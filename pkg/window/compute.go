package window

import (
	"sort"

	"tableflip.dev/agenda/pkg/event"
	"tableflip.dev/agenda/pkg/layout"
)

// ComputeLayout places events into every bucket of w and lays each lane out
// into columns. Only events whose resource is in filter are considered; an
// empty filter keeps all of them. The day, week and month views have one lane
// per bucket; the resource view has one lane per resource per bucket.
//
// Output is ordered by bucket, then lane, then layout order.
func ComputeLayout(events []event.Event, w Window, filter []string) []layout.Positioned {
	keep := make(map[string]struct{}, len(filter))
	for _, id := range filter {
		keep[id] = struct{}{}
	}
	candidates := make([]event.Event, 0, len(events))
	for _, e := range events {
		if len(keep) > 0 {
			if _, ok := keep[e.ResourceID]; !ok {
				continue
			}
		}
		if !e.Start.Before(w.End) || !w.Start.Before(e.End) {
			continue
		}
		candidates = append(candidates, e)
	}

	lanes := []string{""}
	if w.View == ViewResource {
		lanes = resourceLanes(candidates, w, filter)
	}

	out := make([]layout.Positioned, 0, len(candidates))
	for _, b := range w.Buckets {
		byLane := make(map[string][]layout.Positioned, len(lanes))
		for _, e := range candidates {
			p := b.Place(e)
			if p.Visibility == layout.Invisible {
				continue
			}
			lane := ""
			if w.View == ViewResource {
				lane = e.ResourceID
			}
			byLane[lane] = append(byLane[lane], layout.Positioned{
				Event:           e,
				ClampedStart:    p.ClampedStart,
				ClampedEnd:      p.ClampedEnd,
				TruncatedBefore: p.TruncatedBefore,
				TruncatedAfter:  p.TruncatedAfter,
				Visibility:      p.Visibility,
				Bucket:          b.Day,
				Lane:            lane,
			})
		}
		for _, lane := range lanes {
			out = append(out, layout.Arrange(byLane[lane])...)
		}
	}
	return out
}

// resourceLanes picks the lanes of a resource view. Without a filter, the
// window's fixed lanes come first and every other resource seen follows,
// sorted; with one, the fixed lanes or else the filter.
func resourceLanes(events []event.Event, w Window, filter []string) []string {
	if len(filter) > 0 {
		if len(w.Lanes) > 0 {
			return unique(w.Lanes)
		}
		return unique(filter)
	}
	lanes := unique(w.Lanes)
	fixed := make(map[string]struct{}, len(lanes))
	for _, id := range lanes {
		fixed[id] = struct{}{}
	}
	var rest []string
	for _, e := range events {
		if _, ok := fixed[e.ResourceID]; !ok {
			rest = append(rest, e.ResourceID)
		}
	}
	rest = unique(rest)
	sort.Strings(rest)
	return append(lanes, rest...)
}

func unique(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
