package event

import (
	"errors"
	"testing"
	"time"
)

func at(h, m int) time.Time {
	return time.Date(2026, time.October, 15, h, m, 0, 0, time.UTC)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		event   Event
		wantErr bool
	}{
		{name: "ok", event: Event{ID: "a", ResourceID: "r1", Start: at(9, 0), End: at(10, 0)}},
		{name: "end equals start", event: Event{ID: "a", ResourceID: "r1", Start: at(9, 0), End: at(9, 0)}, wantErr: true},
		{name: "end before start", event: Event{ID: "a", ResourceID: "r1", Start: at(10, 0), End: at(9, 0)}, wantErr: true},
		{name: "missing id", event: Event{ResourceID: "r1", Start: at(9, 0), End: at(10, 0)}, wantErr: true},
		{name: "missing resource", event: Event{ID: "a", Start: at(9, 0), End: at(10, 0)}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.event)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidEvent) {
					t.Fatalf("expected ErrInvalidEvent, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestOverlapsHalfOpen(t *testing.T) {
	a := Event{ID: "a", Start: at(9, 0), End: at(10, 0)}
	touching := Event{ID: "b", Start: at(10, 0), End: at(11, 0)}
	if Overlaps(a, touching) || Overlaps(touching, a) {
		t.Fatalf("events that only touch must not overlap")
	}
	crossing := Event{ID: "c", Start: at(9, 59), End: at(11, 0)}
	if !Overlaps(a, crossing) || !Overlaps(crossing, a) {
		t.Fatalf("expected overlap by one minute")
	}
	inside := Event{ID: "d", Start: at(9, 15), End: at(9, 30)}
	if !Overlaps(a, inside) {
		t.Fatalf("expected contained event to overlap")
	}
}

func TestIdentityIsByID(t *testing.T) {
	a := Event{ID: "a", Title: "standup", Start: at(9, 0), End: at(10, 0)}
	b := a
	b.Title = "renamed"
	if !SameEvent(a, b) {
		t.Fatalf("expected same identity")
	}
	if Equal(a, b) {
		t.Fatalf("expected field inequality")
	}
	c := a
	c.ID = "c"
	if SameEvent(a, c) {
		t.Fatalf("identical values with different ids must be distinct")
	}
}

func TestPatchApply(t *testing.T) {
	e := Event{ID: "a", Title: "standup", Start: at(9, 0), End: at(10, 0), ResourceID: "r1"}
	if got := (Patch{}).Apply(e); !Equal(got, e) {
		t.Fatalf("empty patch changed event: %v", got)
	}
	if !(Patch{}).IsZero() {
		t.Fatalf("expected zero patch")
	}

	moved := Move(e, at(13, 30)).Apply(e)
	if !moved.Start.Equal(at(13, 30)) || !moved.End.Equal(at(14, 30)) {
		t.Fatalf("unexpected move result: %v", moved)
	}

	r := "r2"
	reassigned := Patch{ResourceID: &r}.Apply(e)
	if reassigned.ResourceID != "r2" || reassigned.ID != "a" {
		t.Fatalf("unexpected reassignment: %v", reassigned)
	}
}

func TestParseTime(t *testing.T) {
	loc := time.FixedZone("test", 2*60*60)
	got, err := ParseTime("2026-10-15 09:30", loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2026, time.October, 15, 9, 30, 0, 0, loc)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	got, err = ParseTime("2026-10-15T09:30:00Z", loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(at(9, 30)) {
		t.Fatalf("expected %v, got %v", at(9, 30), got)
	}

	if _, err := ParseTime("tomorrow", loc); err == nil {
		t.Fatalf("expected error for unrecognised value")
	}
}

func TestSameDay(t *testing.T) {
	if !SameDay(at(0, 0), at(23, 59), time.UTC) {
		t.Fatalf("expected same day")
	}
	if SameDay(at(23, 59), at(23, 59).Add(time.Minute), time.UTC) {
		t.Fatalf("expected different days")
	}
}
