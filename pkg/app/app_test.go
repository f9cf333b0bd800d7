package app

import (
	"bytes"
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"tableflip.dev/agenda/pkg/event"
	"tableflip.dev/agenda/pkg/resource"
	"tableflip.dev/agenda/pkg/schedule"
	"tableflip.dev/agenda/pkg/store"
	"tableflip.dev/agenda/pkg/window"
)

type memoryPersistence struct {
	mu        sync.Mutex
	events    map[string]event.Event
	resources []resource.Resource
	failWrite error
}

func newMemoryPersistence(events ...event.Event) *memoryPersistence {
	mp := &memoryPersistence{events: make(map[string]event.Event)}
	for _, e := range events {
		mp.events[e.ID] = e
	}
	return mp
}

func (m *memoryPersistence) ListEvents(context.Context) []event.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]event.Event, 0, len(m.events))
	for _, e := range m.events {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memoryPersistence) StoreEvent(e event.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrite != nil {
		return m.failWrite
	}
	m.events[e.ID] = e
	return nil
}

func (m *memoryPersistence) DeleteEvent(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.events, id)
	return nil
}

func (m *memoryPersistence) ListResources() ([]resource.Resource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]resource.Resource(nil), m.resources...), nil
}

func (m *memoryPersistence) SaveResources(list []resource.Resource) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resources = append([]resource.Resource(nil), list...)
	return nil
}

func (m *memoryPersistence) Watch(context.Context) (<-chan store.Change, error) {
	return nil, nil
}

var day = time.Date(2026, time.October, 15, 0, 0, 0, 0, time.UTC)

func hm(h, m int) time.Time {
	return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

func open(t *testing.T, mp *memoryPersistence, cfg Config) *Service {
	t.Helper()
	cfg.Location = time.UTC
	cfg.Clock = schedule.Fixed(hm(8, 0))
	if cfg.IDs == nil {
		cfg.IDs = schedule.Sequence("id")
	}
	svc, err := Open(context.Background(), mp, cfg)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return svc
}

func TestOpenSeedsFromStore(t *testing.T) {
	mp := newMemoryPersistence(event.Event{ID: "a", ResourceID: "alice", Start: hm(9, 0), End: hm(10, 0)})
	mp.resources = []resource.Resource{{ID: "alice", Name: "Alice", Type: resource.TypeStaff}}
	svc := open(t, mp, Config{})

	if got := svc.EventList(context.Background()); len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("expected seeded event, got %v", got)
	}
	if got := svc.ResourceList(context.Background()); len(got) != 1 || got[0].Name != "Alice" {
		t.Fatalf("expected seeded resource, got %v", got)
	}
}

func TestMutationsWriteThrough(t *testing.T) {
	mp := newMemoryPersistence()
	svc := open(t, mp, Config{})
	ctx := context.Background()

	if _, err := svc.AddResource(ctx, resource.Resource{ID: "alice", Name: "Alice"}); err != nil {
		t.Fatalf("add resource: %v", err)
	}
	e, conflicts, err := svc.AddEvent(ctx, event.Draft{Title: "standup", ResourceID: "alice", Start: hm(9, 0), End: hm(9, 15)})
	if err != nil {
		t.Fatalf("add event: %v", err)
	}
	if e.ID != "id-1" || len(conflicts) != 0 {
		t.Fatalf("unexpected event %v conflicts %v", e, conflicts)
	}
	if stored := mp.ListEvents(ctx); len(stored) != 1 || !event.Equal(stored[0], e) {
		t.Fatalf("event not persisted: %v", stored)
	}

	title := "sync"
	if _, _, err := svc.UpdateEvent(ctx, e.ID, event.Patch{Title: &title}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if mp.events[e.ID].Title != "sync" {
		t.Fatalf("update not persisted: %v", mp.events[e.ID])
	}

	if err := svc.DeleteEvent(ctx, e.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(mp.events) != 0 {
		t.Fatalf("delete not persisted: %v", mp.events)
	}

	if err := svc.RemoveResource(ctx, "alice", false); err != nil {
		t.Fatalf("remove resource: %v", err)
	}
	if len(mp.resources) != 0 {
		t.Fatalf("resource removal not persisted: %v", mp.resources)
	}
}

func TestPersistFailureIsReported(t *testing.T) {
	mp := newMemoryPersistence()
	svc := open(t, mp, Config{})
	mp.failWrite = errors.New("disk full")

	_, _, err := svc.AddEvent(context.Background(), event.Draft{ResourceID: "alice", Start: hm(9, 0), End: hm(10, 0)})
	if err == nil {
		t.Fatal("expected persistence error")
	}

	mp.failWrite = nil
	if _, _, err := svc.AddEvent(context.Background(), event.Draft{ResourceID: "alice", Start: hm(11, 0), End: hm(12, 0)}); err != nil {
		t.Fatalf("stale persistence error leaked: %v", err)
	}
}

func TestAddEventReportsConflicts(t *testing.T) {
	svc := open(t, newMemoryPersistence(), Config{})
	ctx := context.Background()
	svc.AddEvent(ctx, event.Draft{ID: "a", ResourceID: "alice", Start: hm(9, 0), End: hm(10, 0)})
	_, conflicts, err := svc.AddEvent(ctx, event.Draft{ID: "b", ResourceID: "alice", Start: hm(9, 59), End: hm(11, 0)})
	if err != nil {
		t.Fatalf("advisory conflicts must not fail: %v", err)
	}
	if len(conflicts) != 1 || conflicts[0].ID != "a" {
		t.Fatalf("expected conflict with a, got %v", conflicts)
	}
	got, err := svc.Conflicts(ctx, "a")
	if err != nil || len(got) != 1 || got[0].ID != "b" {
		t.Fatalf("expected conflict with b, got %v (%v)", got, err)
	}
	if _, err := svc.Conflicts(ctx, "missing"); !errors.Is(err, schedule.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStrictResources(t *testing.T) {
	svc := open(t, newMemoryPersistence(), Config{StrictResources: true})
	_, _, err := svc.AddEvent(context.Background(), event.Draft{ResourceID: "ghost", Start: hm(9, 0), End: hm(10, 0)})
	if !errors.Is(err, event.ErrInvalidEvent) {
		t.Fatalf("expected ErrInvalidEvent, got %v", err)
	}
}

func TestRemoveResourceRequireUnreferenced(t *testing.T) {
	svc := open(t, newMemoryPersistence(), Config{})
	ctx := context.Background()
	svc.AddResource(ctx, resource.Resource{ID: "alice"})
	svc.AddEvent(ctx, event.Draft{ID: "a", ResourceID: "alice", Start: hm(9, 0), End: hm(10, 0)})

	if err := svc.RemoveResource(ctx, "alice", true); !errors.Is(err, schedule.ErrReferencedByEvents) {
		t.Fatalf("expected ErrReferencedByEvents, got %v", err)
	}
	if err := svc.RemoveResource(ctx, "alice", false); err != nil {
		t.Fatalf("permissive removal failed: %v", err)
	}
	if got := svc.EventList(ctx); len(got) != 1 {
		t.Fatalf("events must survive resource removal: %v", got)
	}
}

func TestLayoutDefaultsToToday(t *testing.T) {
	svc := open(t, newMemoryPersistence(), Config{})
	ctx := context.Background()
	svc.AddEvent(ctx, event.Draft{ID: "late", ResourceID: "alice", Start: hm(23, 30), End: day.AddDate(0, 0, 1)})

	w, items, err := svc.Layout(ctx, window.ViewDay, time.Time{}, nil)
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	if !w.Start.Equal(day) {
		t.Fatalf("expected window on the clock's day, got %v", w.Start)
	}
	if len(items) != 1 || !items[0].TruncatedAfter || !items[0].ClampedEnd.Equal(hm(23, 0)) {
		t.Fatalf("unexpected layout: %+v", items)
	}
}

func TestLayoutResourceLanes(t *testing.T) {
	svc := open(t, newMemoryPersistence(), Config{})
	ctx := context.Background()
	svc.AddResource(ctx, resource.Resource{ID: "room-1"})
	svc.AddResource(ctx, resource.Resource{ID: "alice"})
	svc.AddEvent(ctx, event.Draft{ID: "a", ResourceID: "room-1", Start: hm(9, 0), End: hm(10, 0)})
	svc.AddEvent(ctx, event.Draft{ID: "b", ResourceID: "ghost", Start: hm(9, 0), End: hm(10, 0)})
	svc.AddEvent(ctx, event.Draft{ID: "c", ResourceID: "alice", Start: hm(9, 0), End: hm(10, 0)})

	w, items, err := svc.Layout(ctx, window.ViewResource, day, nil)
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	wantLanes := []string{"alice", "room-1", "ghost"}
	if len(w.Lanes) != 3 {
		t.Fatalf("expected lanes %v, got %v", wantLanes, w.Lanes)
	}
	for i, lane := range wantLanes {
		if w.Lanes[i] != lane || items[i].Lane != lane || items[i].ColumnCount != 1 {
			t.Fatalf("lane %d: expected %s, got lane %v item %+v", i, lane, w.Lanes, items[i])
		}
	}
}

func TestWeekStartConfig(t *testing.T) {
	svc := open(t, newMemoryPersistence(), Config{WeekStart: "sunday"})
	w, err := svc.Window(window.ViewWeek, day)
	if err != nil {
		t.Fatalf("window: %v", err)
	}
	if w.Start.Weekday() != time.Sunday {
		t.Fatalf("expected sunday start, got %s", w.Start.Weekday())
	}

	if _, err := Open(context.Background(), newMemoryPersistence(), Config{WeekStart: "friday"}); !errors.Is(err, window.ErrInvalidWindow) {
		t.Fatalf("expected ErrInvalidWindow, got %v", err)
	}
}

func TestImportExport(t *testing.T) {
	src := open(t, newMemoryPersistence(), Config{})
	ctx := context.Background()
	src.AddEvent(ctx, event.Draft{ID: "a", Title: "standup", ResourceID: "alice", Start: hm(9, 0), End: hm(9, 15)})
	src.AddEvent(ctx, event.Draft{ID: "b", Title: "review", ResourceID: "room-1", Start: hm(10, 0), End: hm(11, 0)})

	var buf bytes.Buffer
	if err := src.Export(ctx, &buf); err != nil {
		t.Fatalf("export: %v", err)
	}

	dst := open(t, newMemoryPersistence(), Config{})
	dst.AddEvent(ctx, event.Draft{ID: "a", Title: "old", ResourceID: "alice", Start: hm(7, 0), End: hm(8, 0)})
	result, err := dst.Import(ctx, &buf, "")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(result.Created) != 1 || len(result.Updated) != 1 || len(result.Skipped) != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
	got, _ := dst.Events.Get("a")
	if got.Title != "standup" || !got.Start.Equal(hm(9, 0)) {
		t.Fatalf("existing event not replaced: %v", got)
	}
}

func TestReportUtilization(t *testing.T) {
	svc := open(t, newMemoryPersistence(), Config{})
	ctx := context.Background()
	svc.AddResource(ctx, resource.Resource{ID: "alice", Name: "Alice"})
	svc.AddEvent(ctx, event.Draft{ID: "a", ResourceID: "alice", Start: hm(9, 0), End: hm(12, 0)})
	svc.AddEvent(ctx, event.Draft{ID: "b", ResourceID: "alice", Start: hm(11, 0), End: hm(12, 0)})
	svc.AddEvent(ctx, event.Draft{ID: "c", ResourceID: "ghost", Start: hm(0, 0), End: hm(2, 0)})
	svc.AddEvent(ctx, event.Draft{ID: "old", ResourceID: "alice", Start: hm(9, 0).AddDate(0, 0, -3), End: hm(10, 0).AddDate(0, 0, -3)})

	res, err := svc.Report(ctx, day.AddDate(0, 0, 1), day)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if !res.Since.Equal(day) {
		t.Fatalf("expected bounds to be swapped, got %v", res.Since)
	}
	if res.Capacity != 22*time.Hour {
		t.Fatalf("expected 22h capacity, got %s", res.Capacity)
	}
	if res.Total != 3 || len(res.Sections) != 2 {
		t.Fatalf("unexpected report: %+v", res)
	}
	alice := res.Sections[0]
	if alice.Resource.Name != "Alice" || alice.Booked != 4*time.Hour || alice.Items[0].Conflicts != 1 {
		t.Fatalf("unexpected alice section: %+v", alice)
	}
	ghost := res.Sections[1]
	if !ghost.Missing || ghost.Booked != 2*time.Hour {
		t.Fatalf("unexpected ghost section: %+v", ghost)
	}
}
