package schedule

import "errors"

var (
	// ErrNotFound is returned when an id does not name a stored record.
	ErrNotFound = errors.New("schedule: not found")
	// ErrDuplicateID is returned when a create or add reuses an existing id.
	ErrDuplicateID = errors.New("schedule: duplicate id")
	// ErrConflict is returned under the reject policy when a change would
	// double-book a resource.
	ErrConflict = errors.New("schedule: conflicting event")
	// ErrReferencedByEvents is returned by Resources.Remove with
	// RequireUnreferenced when events still point at the resource.
	ErrReferencedByEvents = errors.New("schedule: resource referenced by events")
)
