package ical

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"tableflip.dev/agenda/pkg/event"
)

func TestExportImportRoundTrip(t *testing.T) {
	start := time.Date(2026, time.October, 15, 9, 0, 0, 0, time.UTC)
	in := []event.Event{
		{ID: "a", Title: "standup", ResourceID: "alice", Start: start, End: start.Add(15 * time.Minute), Color: "#336699"},
		{ID: "b", Title: "review", ResourceID: "room-1", Start: start.Add(time.Hour), End: start.Add(2 * time.Hour), Description: "quarterly"},
	}

	var buf bytes.Buffer
	if err := Export(&buf, in, start); err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(buf.String(), "X-AGENDA-RESOURCE") {
		t.Fatalf("expected resource property in output:\n%s", buf.String())
	}

	out, skipped, err := Import(&buf, "")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(skipped) != 0 {
		t.Fatalf("unexpected skipped events: %v", skipped)
	}
	if len(out) != len(in) {
		t.Fatalf("expected %d events, got %d", len(in), len(out))
	}
	for i := range in {
		if !event.Equal(in[i], out[i]) {
			t.Errorf("event %d: expected %v, got %v", i, in[i], out[i])
		}
	}
}

const foreign = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"PRODID:-//example//test//EN\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:ok@example.com\r\n" +
	"DTSTAMP:20261001T000000Z\r\n" +
	"DTSTART:20261015T090000Z\r\n" +
	"DTEND:20261015T100000Z\r\n" +
	"SUMMARY:Dentist\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:backwards@example.com\r\n" +
	"DTSTAMP:20261001T000000Z\r\n" +
	"DTSTART:20261015T100000Z\r\n" +
	"DTEND:20261015T090000Z\r\n" +
	"SUMMARY:Broken\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

func TestImportDefaultsResourceAndSkipsInvalid(t *testing.T) {
	out, skipped, err := Import(strings.NewReader(foreign), "chair-2")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(out) != 1 || out[0].ID != "ok@example.com" || out[0].ResourceID != "chair-2" {
		t.Fatalf("unexpected events: %+v", out)
	}
	if out[0].Duration() != time.Hour {
		t.Fatalf("expected 1h, got %s", out[0].Duration())
	}
	if len(skipped) != 1 || skipped[0].UID != "backwards@example.com" {
		t.Fatalf("expected the backwards event to be skipped: %+v", skipped)
	}
}

func TestSkippedJSON(t *testing.T) {
	b, err := json.Marshal(Skipped{UID: "x@example.com", Reason: "end before start"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got, want := string(b), `{"uid":"x@example.com","reason":"end before start"}`; got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}
