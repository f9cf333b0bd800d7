package app

import (
	"context"
	"errors"
	"io"

	"go.uber.org/zap"

	"tableflip.dev/agenda/pkg/event"
	"tableflip.dev/agenda/pkg/ical"
	"tableflip.dev/agenda/pkg/schedule"
)

// ImportResult summarises an ICS import.
type ImportResult struct {
	Created []event.Event  `json:"created" yaml:"created"`
	Updated []event.Event  `json:"updated" yaml:"updated"`
	Skipped []ical.Skipped `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// Export writes every event on resourceIDs (all when empty) as iCalendar.
func (s *Service) Export(ctx context.Context, w io.Writer, resourceIDs ...string) error {
	return ical.Export(w, s.EventList(ctx, resourceIDs...), s.Now())
}

// Import reads iCalendar events. Events whose UID is already stored are
// updated in place; the rest are created. A rejected event is skipped and
// the import continues.
func (s *Service) Import(ctx context.Context, r io.Reader, defaultResource string) (ImportResult, error) {
	events, skipped, err := ical.Import(r, defaultResource)
	if err != nil {
		return ImportResult{}, err
	}
	result := ImportResult{Skipped: skipped}
	for _, e := range events {
		if _, err := s.Events.Get(e.ID); err == nil {
			updated, _, err := s.UpdateEvent(ctx, e.ID, replace(e))
			if err != nil {
				if isRejection(err) {
					result.Skipped = append(result.Skipped, ical.Skipped{UID: e.ID, Reason: err.Error()})
					continue
				}
				return result, err
			}
			result.Updated = append(result.Updated, updated)
			continue
		}
		created, _, err := s.AddEvent(ctx, event.Draft{
			ID:          e.ID,
			Title:       e.Title,
			Start:       e.Start,
			End:         e.End,
			ResourceID:  e.ResourceID,
			Color:       e.Color,
			Description: e.Description,
		})
		if err != nil {
			if isRejection(err) {
				result.Skipped = append(result.Skipped, ical.Skipped{UID: e.ID, Reason: err.Error()})
				continue
			}
			return result, err
		}
		result.Created = append(result.Created, created)
	}
	s.log.Info("import finished",
		zap.Int("created", len(result.Created)),
		zap.Int("updated", len(result.Updated)),
		zap.Int("skipped", len(result.Skipped)))
	return result, nil
}

// replace is a patch that overwrites every mutable field with e's.
func replace(e event.Event) event.Patch {
	return event.Patch{
		Title:       &e.Title,
		Start:       &e.Start,
		End:         &e.End,
		ResourceID:  &e.ResourceID,
		Color:       &e.Color,
		Description: &e.Description,
	}
}

// isRejection reports engine errors that concern a single record.
func isRejection(err error) bool {
	return errors.Is(err, event.ErrInvalidEvent) ||
		errors.Is(err, schedule.ErrConflict) ||
		errors.Is(err, schedule.ErrDuplicateID)
}
