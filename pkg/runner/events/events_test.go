package events

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"tableflip.dev/agenda/pkg/app"
	"tableflip.dev/agenda/pkg/event"
	"tableflip.dev/agenda/pkg/printers"
	"tableflip.dev/agenda/pkg/resource"
	"tableflip.dev/agenda/pkg/schedule"
	"tableflip.dev/agenda/pkg/store"
)

type nopPersistence struct{}

func (nopPersistence) ListEvents(context.Context) []event.Event           { return nil }
func (nopPersistence) StoreEvent(event.Event) error                       { return nil }
func (nopPersistence) DeleteEvent(string) error                           { return nil }
func (nopPersistence) ListResources() ([]resource.Resource, error)        { return nil, nil }
func (nopPersistence) SaveResources([]resource.Resource) error            { return nil }
func (nopPersistence) Watch(context.Context) (<-chan store.Change, error) { return nil, nil }

var day = time.Date(2026, time.October, 15, 0, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*app.Service, *bytes.Buffer, *printers.Printer) {
	t.Helper()
	svc, err := app.Open(context.Background(), nopPersistence{}, app.Config{
		Location: time.UTC,
		Clock:    schedule.Fixed(day),
		IDs:      schedule.Sequence("ev"),
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	var buf bytes.Buffer
	p := printers.New(&buf)
	p.Location = time.UTC
	return svc, &buf, p
}

func draft(title string, h int) event.Draft {
	start := day.Add(time.Duration(h) * time.Hour)
	return event.Draft{Title: title, ResourceID: "alice", Start: start, End: start.Add(time.Hour)}
}

func TestAddWarnsAboutConflicts(t *testing.T) {
	svc, buf, p := setup(t)
	ctx := context.Background()

	first := Add{Draft: draft("standup", 9), Service: svc, Printer: p, Format: printers.Text}
	if err := first.Do(ctx); err != nil {
		t.Fatalf("add: %v", err)
	}
	if strings.Contains(buf.String(), "overlaps") {
		t.Fatalf("first booking should not conflict:\n%s", buf.String())
	}

	buf.Reset()
	second := Add{Draft: draft("review", 9), Service: svc, Printer: p, Format: printers.Text}
	if err := second.Do(ctx); err != nil {
		t.Fatalf("add: %v", err)
	}
	if !strings.Contains(buf.String(), "overlaps 1 event(s) on alice") {
		t.Fatalf("expected conflict warning, got:\n%s", buf.String())
	}
}

func TestListJSON(t *testing.T) {
	svc, buf, p := setup(t)
	ctx := context.Background()
	for i, title := range []string{"b", "a"} {
		if _, _, err := svc.AddEvent(ctx, draft(title, 10-i)); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	l := List{Service: svc, Printer: p, Format: printers.JSON}
	if err := l.Do(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}
	var got []event.Event
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, buf.String())
	}
	if len(got) != 2 || got[0].Title != "a" || got[1].Title != "b" {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestMoveAndRemove(t *testing.T) {
	svc, buf, p := setup(t)
	ctx := context.Background()
	e, _, err := svc.AddEvent(ctx, draft("standup", 9))
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	m := Move{ID: e.ID, Patch: event.Move(e, day.Add(14*time.Hour)), Service: svc, Printer: p, Format: printers.Text}
	if err := m.Do(ctx); err != nil {
		t.Fatalf("move: %v", err)
	}
	moved, _ := svc.Events.Get(e.ID)
	if moved.Start.Hour() != 14 || moved.Duration() != time.Hour {
		t.Fatalf("move kept wrong interval: %v", moved)
	}

	buf.Reset()
	r := Remove{ID: e.ID, Service: svc, Printer: p}
	if err := r.Do(ctx); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := r.Do(ctx); !errors.Is(err, schedule.ErrNotFound) {
		t.Fatalf("second remove err = %v, want ErrNotFound", err)
	}
}

func TestConflictsForMissingEvent(t *testing.T) {
	svc, _, p := setup(t)
	c := Conflicts{ID: "nope", Service: svc, Printer: p, Format: printers.Text}
	if err := c.Do(context.Background()); !errors.Is(err, schedule.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
