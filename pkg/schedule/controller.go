// Package schedule holds the mutable agenda state: the event collection with
// its resource index, and the resource collection.
//
// Nothing in this package locks. Callers that share a Controller or Resources
// value between goroutines must serialize access themselves.
package schedule

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"tableflip.dev/agenda/pkg/event"
)

// Controller owns the event collection and applies validated mutations to it.
type Controller struct {
	events     map[string]event.Event
	byResource map[string]map[string]struct{}
	observers  []Observer
	settings
}

// NewController returns an empty controller.
func NewController(opts ...Option) *Controller {
	return &Controller{
		events:     make(map[string]event.Event),
		byResource: make(map[string]map[string]struct{}),
		settings:   newSettings(opts),
	}
}

// Subscribe registers an observer for committed mutations.
func (c *Controller) Subscribe(o Observer) {
	c.observers = append(c.observers, o)
}

// Load replaces the collection with events without notifying observers. It
// is meant for seeding from a store, so every record is still validated.
func (c *Controller) Load(events []event.Event) error {
	next := NewController()
	for _, e := range events {
		if err := event.Validate(e); err != nil {
			return err
		}
		if _, ok := next.events[e.ID]; ok {
			return fmt.Errorf("%w: event %s", ErrDuplicateID, e.ID)
		}
		next.put(e)
	}
	c.events = next.events
	c.byResource = next.byResource
	c.log.Debug("loaded events", zap.Int("count", len(events)))
	return nil
}

// Get returns the event with id.
func (c *Controller) Get(id string) (event.Event, error) {
	e, ok := c.events[id]
	if !ok {
		return event.Event{}, fmt.Errorf("%w: event %s", ErrNotFound, id)
	}
	return e, nil
}

// List returns every event ordered by start, then id.
func (c *Controller) List() []event.Event {
	out := make([]event.Event, 0, len(c.events))
	for _, e := range c.events {
		out = append(out, e)
	}
	sortEvents(out)
	return out
}

// Len is the number of stored events.
func (c *Controller) Len() int {
	return len(c.events)
}

// EventsFor returns the events booked on any of resourceIDs, ordered by start
// then id. No ids means every event.
func (c *Controller) EventsFor(resourceIDs ...string) []event.Event {
	if len(resourceIDs) == 0 {
		return c.List()
	}
	seen := make(map[string]struct{})
	var out []event.Event
	for _, rid := range resourceIDs {
		for id := range c.byResource[rid] {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, c.events[id])
		}
	}
	sortEvents(out)
	return out
}

// References counts the events booked on resourceID.
func (c *Controller) References(resourceID string) int {
	return len(c.byResource[resourceID])
}

// FindConflicts returns the events on e's resource that overlap e, excluding
// e itself, ordered by start then id. It never modifies the collection.
func (c *Controller) FindConflicts(e event.Event) []event.Event {
	var out []event.Event
	for id := range c.byResource[e.ResourceID] {
		other := c.events[id]
		if event.SameEvent(e, other) {
			continue
		}
		if event.Overlaps(e, other) {
			out = append(out, other)
		}
	}
	sortEvents(out)
	return out
}

// Create validates and stores a new event. An empty draft id is filled from
// the id generator.
func (c *Controller) Create(d event.Draft) (event.Event, error) {
	e := d.Event()
	if e.ID == "" {
		e.ID = c.ids.NewID()
	}
	if err := c.check(e); err != nil {
		return event.Event{}, err
	}
	if _, ok := c.events[e.ID]; ok {
		return event.Event{}, fmt.Errorf("%w: event %s", ErrDuplicateID, e.ID)
	}

	c.put(e)
	c.log.Debug("event created", zap.String("event_id", e.ID), zap.String("resource_id", e.ResourceID))
	for _, o := range c.observers {
		o.OnEventCreated(e)
	}
	return e, nil
}

// Update applies p to the event with id. An empty patch is a valid no-op
// update and still notifies observers.
func (c *Controller) Update(id string, p event.Patch) (event.Event, error) {
	old, ok := c.events[id]
	if !ok {
		return event.Event{}, fmt.Errorf("%w: event %s", ErrNotFound, id)
	}
	e := p.Apply(old)
	if err := c.check(e); err != nil {
		return event.Event{}, err
	}

	c.remove(old)
	c.put(e)
	c.log.Debug("event updated", zap.String("event_id", e.ID), zap.String("resource_id", e.ResourceID))
	for _, o := range c.observers {
		o.OnEventUpdated(e)
	}
	return e, nil
}

// Delete removes the event with id. On ErrNotFound the collection is left
// untouched.
func (c *Controller) Delete(id string) error {
	e, ok := c.events[id]
	if !ok {
		return fmt.Errorf("%w: event %s", ErrNotFound, id)
	}
	c.remove(e)
	c.log.Debug("event deleted", zap.String("event_id", id))
	for _, o := range c.observers {
		o.OnEventDeleted(e)
	}
	return nil
}

// check runs the invariants every mutation must hold before commit.
func (c *Controller) check(e event.Event) error {
	if err := event.Validate(e); err != nil {
		return err
	}
	if c.exists != nil && !c.exists(e.ResourceID) {
		return fmt.Errorf("%w: %s: unknown resource %q", event.ErrInvalidEvent, e.ID, e.ResourceID)
	}
	conflicts := c.FindConflicts(e)
	if len(conflicts) == 0 {
		return nil
	}
	ids := make([]string, 0, len(conflicts))
	for _, other := range conflicts {
		ids = append(ids, other.ID)
	}
	if c.policy == Reject {
		return fmt.Errorf("%w: %s overlaps %v on %s", ErrConflict, e.ID, ids, e.ResourceID)
	}
	c.log.Info("double booking",
		zap.String("event_id", e.ID),
		zap.String("resource_id", e.ResourceID),
		zap.Strings("conflicts", ids))
	return nil
}

func (c *Controller) put(e event.Event) {
	c.events[e.ID] = e
	set, ok := c.byResource[e.ResourceID]
	if !ok {
		set = make(map[string]struct{})
		c.byResource[e.ResourceID] = set
	}
	set[e.ID] = struct{}{}
}

func (c *Controller) remove(e event.Event) {
	delete(c.events, e.ID)
	if set, ok := c.byResource[e.ResourceID]; ok {
		delete(set, e.ID)
		if len(set) == 0 {
			delete(c.byResource, e.ResourceID)
		}
	}
}

func sortEvents(events []event.Event) {
	sort.Slice(events, func(i, j int) bool {
		if !events[i].Start.Equal(events[j].Start) {
			return events[i].Start.Before(events[j].Start)
		}
		return events[i].ID < events[j].ID
	})
}
