// Package app wires the durable store to the scheduling engine so the CLI
// commands share one set of operations.
package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/agenda/pkg/event"
	"tableflip.dev/agenda/pkg/layout"
	"tableflip.dev/agenda/pkg/resource"
	"tableflip.dev/agenda/pkg/schedule"
	"tableflip.dev/agenda/pkg/store"
	"tableflip.dev/agenda/pkg/window"
)

// Config tunes a Service. Zero values fall back to the engine defaults.
type Config struct {
	Location         *time.Location
	// WeekStart is "monday" or "sunday"; empty means monday.
	WeekStart        string
	VisibleStartHour int
	VisibleEndHour   int
	ConflictPolicy   schedule.ConflictPolicy
	// StrictResources rejects events on unknown resources.
	StrictResources  bool
	Clock            schedule.Clock
	IDs              schedule.IDGenerator
	Logger           *zap.Logger
}

// Service provides high-level operations for resources and events. Every
// committed change is written through to Persistence.
type Service struct {
	Persistence store.Persistence
	Events      *schedule.Controller
	Resources   *schedule.Resources

	cfg       Config
	weekStart time.Weekday
	log       *zap.Logger
	// persistErr holds the first store failure seen by an observer during
	// the current operation.
	persistErr error
}

var errNoPersistence = errors.New("app: no persistence configured")

// Open seeds a Service from p.
func Open(ctx context.Context, p store.Persistence, cfg Config) (*Service, error) {
	if p == nil {
		return nil, errNoPersistence
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.VisibleStartHour == 0 && cfg.VisibleEndHour == 0 {
		cfg.VisibleStartHour = window.DefaultVisibleStartHour
		cfg.VisibleEndHour = window.DefaultVisibleEndHour
	}
	if cfg.Clock == nil {
		cfg.Clock = schedule.WallClock
	}
	if cfg.IDs == nil {
		cfg.IDs = schedule.UUIDs
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	weekStart, err := window.ParseWeekStart(cfg.WeekStart)
	if err != nil {
		return nil, err
	}

	s := &Service{Persistence: p, cfg: cfg, weekStart: weekStart, log: cfg.Logger}
	s.Resources = schedule.NewResources(
		schedule.WithIDGenerator(cfg.IDs),
		schedule.WithLogger(cfg.Logger),
	)
	opts := []schedule.Option{
		schedule.WithIDGenerator(cfg.IDs),
		schedule.WithLogger(cfg.Logger),
		schedule.WithConflictPolicy(cfg.ConflictPolicy),
	}
	if cfg.StrictResources {
		opts = append(opts, schedule.WithReferenceCheck(s.Resources.Has))
	}
	s.Events = schedule.NewController(opts...)

	if err := s.Reload(ctx); err != nil {
		return nil, err
	}

	s.Events.Subscribe(schedule.ObserverFuncs{
		Created: s.storeEvent,
		Updated: s.storeEvent,
		Deleted: func(e event.Event) {
			s.keep(s.Persistence.DeleteEvent(e.ID))
		},
	})
	saveResources := func(resource.Resource) {
		s.keep(s.Persistence.SaveResources(s.Resources.List()))
	}
	s.Resources.Subscribe(schedule.ResourceObserverFuncs{
		Added:   saveResources,
		Updated: saveResources,
		Removed: saveResources,
	})
	return s, nil
}

// Reload replaces the in-memory state with what the store holds.
func (s *Service) Reload(ctx context.Context) error {
	resources, err := s.Persistence.ListResources()
	if err != nil {
		return err
	}
	if err := s.Resources.Load(resources); err != nil {
		return fmt.Errorf("app: load resources: %w", err)
	}
	if err := s.Events.Load(s.Persistence.ListEvents(ctx)); err != nil {
		return fmt.Errorf("app: load events: %w", err)
	}
	return nil
}

// Watch subscribes to persistence change notifications.
func (s *Service) Watch(ctx context.Context) (<-chan store.Change, error) {
	return s.Persistence.Watch(ctx)
}

// Now is the service clock in the configured location.
func (s *Service) Now() time.Time {
	return s.cfg.Clock.Now().In(s.cfg.Location)
}

// Location is the zone day boundaries are computed in.
func (s *Service) Location() *time.Location {
	return s.cfg.Location
}

func (s *Service) storeEvent(e event.Event) {
	s.keep(s.Persistence.StoreEvent(e))
}

func (s *Service) keep(err error) {
	if err != nil && s.persistErr == nil {
		s.persistErr = err
	}
}

// flush reports and clears any store failure raised while committing.
func (s *Service) flush() error {
	err := s.persistErr
	s.persistErr = nil
	if err != nil {
		s.log.Error("persisting change", zap.Error(err))
		return fmt.Errorf("app: persist: %w", err)
	}
	return nil
}

// AddResource creates a resource.
func (s *Service) AddResource(_ context.Context, r resource.Resource) (resource.Resource, error) {
	r, err := s.Resources.Add(r)
	if err != nil {
		return resource.Resource{}, err
	}
	return r, s.flush()
}

// UpdateResource patches a resource.
func (s *Service) UpdateResource(_ context.Context, id string, p resource.Patch) (resource.Resource, error) {
	r, err := s.Resources.Update(id, p)
	if err != nil {
		return resource.Resource{}, err
	}
	return r, s.flush()
}

// RemoveResource deletes a resource. With requireUnreferenced the removal is
// refused while events are still booked on it.
func (s *Service) RemoveResource(_ context.Context, id string, requireUnreferenced bool) error {
	var opts []schedule.RemoveOption
	if requireUnreferenced {
		opts = append(opts, schedule.RequireUnreferenced(s.Events.References))
	}
	if err := s.Resources.Remove(id, opts...); err != nil {
		return err
	}
	return s.flush()
}

// ResourceList returns resources ordered by id.
func (s *Service) ResourceList(context.Context) []resource.Resource {
	return s.Resources.List()
}

// AddEvent books an event and returns it with any double bookings it caused.
func (s *Service) AddEvent(_ context.Context, d event.Draft) (event.Event, []event.Event, error) {
	e, err := s.Events.Create(d)
	if err != nil {
		return event.Event{}, nil, err
	}
	return e, s.Events.FindConflicts(e), s.flush()
}

// UpdateEvent patches an event and returns it with its current conflicts.
func (s *Service) UpdateEvent(_ context.Context, id string, p event.Patch) (event.Event, []event.Event, error) {
	e, err := s.Events.Update(id, p)
	if err != nil {
		return event.Event{}, nil, err
	}
	return e, s.Events.FindConflicts(e), s.flush()
}

// DeleteEvent removes an event.
func (s *Service) DeleteEvent(_ context.Context, id string) error {
	if err := s.Events.Delete(id); err != nil {
		return err
	}
	return s.flush()
}

// EventList returns events on resourceIDs, or all events when none are given.
func (s *Service) EventList(_ context.Context, resourceIDs ...string) []event.Event {
	return s.Events.EventsFor(resourceIDs...)
}

// Conflicts returns the events double booked with the event id.
func (s *Service) Conflicts(_ context.Context, id string) ([]event.Event, error) {
	e, err := s.Events.Get(id)
	if err != nil {
		return nil, err
	}
	return s.Events.FindConflicts(e), nil
}

// Window resolves a view around anchor using the service settings. A zero
// anchor means today.
func (s *Service) Window(view window.View, anchor time.Time, lanes ...string) (window.Window, error) {
	if anchor.IsZero() {
		anchor = s.Now()
	}
	opts := []window.Option{
		window.WithLocation(s.cfg.Location),
		window.WithWeekStart(s.weekStart),
		window.WithVisibleHours(s.cfg.VisibleStartHour, s.cfg.VisibleEndHour),
	}
	if len(lanes) > 0 {
		opts = append(opts, window.WithLanes(lanes...))
	}
	return window.New(view, anchor, opts...)
}

// Layout computes the positioned events for a view. The resource view gets
// one lane per known resource, followed by any unknown resource ids events
// still point at, unless filter narrows it.
func (s *Service) Layout(ctx context.Context, view window.View, anchor time.Time, filter []string) (window.Window, []layout.Positioned, error) {
	events := s.EventList(ctx, filter...)
	var lanes []string
	if view == window.ViewResource {
		lanes = filter
		if len(lanes) == 0 {
			lanes = s.laneIDs(events)
		}
	}
	w, err := s.Window(view, anchor, lanes...)
	if err != nil {
		return window.Window{}, nil, err
	}
	return w, window.ComputeLayout(events, w, filter), nil
}

func (s *Service) laneIDs(events []event.Event) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, r := range s.Resources.List() {
		seen[r.ID] = true
		ids = append(ids, r.ID)
	}
	var dangling []string
	for _, e := range events {
		if !seen[e.ResourceID] {
			seen[e.ResourceID] = true
			dangling = append(dangling, e.ResourceID)
		}
	}
	sort.Strings(dangling)
	return append(ids, dangling...)
}
