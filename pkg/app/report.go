package app

import (
	"context"
	"sort"
	"time"

	"tableflip.dev/agenda/pkg/event"
	"tableflip.dev/agenda/pkg/resource"
)

// ReportItem is one event and the part of it that fell inside the report.
type ReportItem struct {
	Event  event.Event   `json:"event" yaml:"event"`
	Booked time.Duration `json:"booked" yaml:"booked"`
	// Conflicts counts the events double booked with this one.
	Conflicts int `json:"conflicts,omitempty" yaml:"conflicts,omitempty"`
}

// ReportSection groups booked events by resource.
type ReportSection struct {
	Resource resource.Resource `json:"resource" yaml:"resource"`
	// Missing is set when events point at a resource that no longer exists.
	Missing     bool          `json:"missing,omitempty" yaml:"missing,omitempty"`
	Items       []ReportItem  `json:"items" yaml:"items"`
	Booked      time.Duration `json:"booked" yaml:"booked"`
	Utilization float64       `json:"utilization" yaml:"utilization"`
}

// ReportResult is a utilization report for a time window.
type ReportResult struct {
	Since    time.Time       `json:"since" yaml:"since"`
	Until    time.Time       `json:"until" yaml:"until"`
	Capacity time.Duration   `json:"capacity" yaml:"capacity"`
	Sections []ReportSection `json:"sections" yaml:"sections"`
	Total    int             `json:"total" yaml:"total"`
}

// Report returns booked time per resource between the provided bounds.
// Utilization is booked time over the visible hours in the range.
func (s *Service) Report(ctx context.Context, since, until time.Time) (ReportResult, error) {
	if since.After(until) {
		since, until = until, since
	}
	result := ReportResult{
		Since:    since,
		Until:    until,
		Capacity: s.capacity(since, until),
	}

	grouped := make(map[string]*ReportSection)
	for _, e := range s.EventList(ctx) {
		booked := overlap(e.Start, e.End, since, until)
		if booked <= 0 {
			continue
		}
		section := s.ensureSection(grouped, e.ResourceID)
		section.Items = append(section.Items, ReportItem{
			Event:     e,
			Booked:    booked,
			Conflicts: len(s.Events.FindConflicts(e)),
		})
		section.Booked += booked
		result.Total++
	}

	if len(grouped) == 0 {
		return result, nil
	}

	ids := make([]string, 0, len(grouped))
	for id := range grouped {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	result.Sections = make([]ReportSection, 0, len(ids))
	for _, id := range ids {
		section := grouped[id]
		if result.Capacity > 0 {
			section.Utilization = float64(section.Booked) / float64(result.Capacity)
		}
		result.Sections = append(result.Sections, *section)
	}
	return result, nil
}

func (s *Service) ensureSection(grouped map[string]*ReportSection, resourceID string) *ReportSection {
	if section, ok := grouped[resourceID]; ok {
		return section
	}
	section := &ReportSection{}
	r, err := s.Resources.Get(resourceID)
	if err != nil {
		section.Resource = resource.Resource{ID: resourceID, Name: resourceID}
		section.Missing = true
	} else {
		section.Resource = r
	}
	grouped[resourceID] = section
	return section
}

// capacity sums the visible hours of every day touched by [since, until).
func (s *Service) capacity(since, until time.Time) time.Duration {
	loc := s.cfg.Location
	local := since.In(loc)
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	var total time.Duration
	for day.Before(until) {
		y, m, d := day.Date()
		open := time.Date(y, m, d, s.cfg.VisibleStartHour, 0, 0, 0, loc)
		shut := time.Date(y, m, d, s.cfg.VisibleEndHour, 0, 0, 0, loc)
		total += overlap(open, shut, since, until)
		day = time.Date(y, m, d+1, 0, 0, 0, 0, loc)
	}
	return total
}

// overlap is the length of [aStart, aEnd) ∩ [bStart, bEnd).
func overlap(aStart, aEnd, bStart, bEnd time.Time) time.Duration {
	start := aStart
	if bStart.After(start) {
		start = bStart
	}
	end := aEnd
	if bEnd.Before(end) {
		end = bEnd
	}
	if !end.After(start) {
		return 0
	}
	return end.Sub(start)
}
