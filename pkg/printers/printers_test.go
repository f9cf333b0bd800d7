package printers

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"tableflip.dev/agenda/pkg/app"
	"tableflip.dev/agenda/pkg/event"
	"tableflip.dev/agenda/pkg/resource"
	"tableflip.dev/agenda/pkg/window"
)

var day = time.Date(2026, time.October, 15, 0, 0, 0, 0, time.UTC)

func newTestPrinter(buf *bytes.Buffer) *Printer {
	p := New(buf)
	p.Location = time.UTC
	return p
}

func TestNewDisablesColorForBuffers(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)
	if p.Color {
		t.Fatal("expected colors off for a buffer")
	}
	if got := p.Swatch("#ff8800"); got != "■" {
		t.Fatalf("expected plain swatch, got %q", got)
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": Text, "JSON": JSON, "yaml": YAML} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatal("expected error for xml")
	}
}

func TestFit(t *testing.T) {
	if got := Fit("short", 10); got != "short" {
		t.Fatalf("unexpected %q", got)
	}
	got := Fit("a very long title indeed", 10)
	if !strings.HasSuffix(got, "…") || len([]rune(got)) > 10 {
		t.Fatalf("expected truncated title, got %q", got)
	}
}

func TestLayoutMarksTruncation(t *testing.T) {
	w, err := window.New(window.ViewDay, day)
	if err != nil {
		t.Fatalf("window: %v", err)
	}
	events := []event.Event{
		{ID: "late", Title: "deploy", ResourceID: "ops", Start: day.Add(23*time.Hour + 30*time.Minute), End: day.AddDate(0, 0, 1)},
		{ID: "early", Title: "backup", ResourceID: "ops", Start: day.Add(30 * time.Minute), End: day.Add(2 * time.Hour)},
	}
	var buf bytes.Buffer
	newTestPrinter(&buf).Layout(w, window.ComputeLayout(events, w, nil))
	out := buf.String()

	for _, want := range []string{"Thu Oct 15", "◂01:00-02:00", "23:00-23:00▸", "deploy", "backup"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestLayoutWeekListsEmptyDays(t *testing.T) {
	w, err := window.New(window.ViewWeek, day)
	if err != nil {
		t.Fatalf("window: %v", err)
	}
	var buf bytes.Buffer
	newTestPrinter(&buf).Layout(w, nil)
	if got := strings.Count(buf.String(), "none"); got != 7 {
		t.Fatalf("expected 7 empty days, got %d:\n%s", got, buf.String())
	}
}

func TestResourcesTable(t *testing.T) {
	var buf bytes.Buffer
	list := []resource.Resource{
		{ID: "alice", Name: "Alice", Type: resource.TypeStaff},
		{ID: "room-1", Name: "Room 1", Type: resource.TypeRoom, Color: "#336699"},
	}
	newTestPrinter(&buf).Resources(list, func(id string) int { return len(id) })
	out := buf.String()
	for _, want := range []string{"Resources - 2 resources", "alice", "Room 1", "room", "EVENTS", "●"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestEventsFlagsConflicts(t *testing.T) {
	var buf bytes.Buffer
	list := []event.Event{
		{ID: "a", Title: "standup", ResourceID: "alice", Start: day.Add(9 * time.Hour), End: day.Add(10 * time.Hour)},
	}
	newTestPrinter(&buf).Events("Events", list, map[string]bool{"a": true})
	if !strings.Contains(buf.String(), "!") || !strings.Contains(buf.String(), "Thu Oct 15 09:00") {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	res := app.ReportResult{
		Since:    day,
		Until:    day.AddDate(0, 0, 1),
		Capacity: 22 * time.Hour,
		Total:    1,
		Sections: []app.ReportSection{{
			Resource:    resource.Resource{ID: "alice", Name: "Alice"},
			Items:       []app.ReportItem{{Event: event.Event{ID: "a", Title: "standup", Start: day.Add(9 * time.Hour)}, Booked: 11 * time.Hour}},
			Booked:      11 * time.Hour,
			Utilization: 0.5,
		}},
	}
	newTestPrinter(&buf).Report(res, "1d")
	for _, want := range []string{"last 1d", "Alice", "11.0h booked", "50%", "standup"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("expected %q in output:\n%s", want, buf.String())
		}
	}
}

func TestStructured(t *testing.T) {
	e := event.Event{ID: "a", ResourceID: "alice", Start: day, End: day.Add(time.Hour)}

	var js bytes.Buffer
	if err := Structured(&js, JSON, e); err != nil {
		t.Fatalf("json: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(js.Bytes(), &decoded); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if decoded["resourceId"] != "alice" {
		t.Fatalf("unexpected json: %s", js.String())
	}

	var ys bytes.Buffer
	if err := Structured(&ys, YAML, e); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	var back map[string]any
	if err := yaml.Unmarshal(ys.Bytes(), &back); err != nil {
		t.Fatalf("decode yaml: %v", err)
	}
	if back["resourceId"] != "alice" {
		t.Fatalf("unexpected yaml: %s", ys.String())
	}
}

func TestLayoutPrintsInPrinterZone(t *testing.T) {
	cest := time.FixedZone("CEST", 2*60*60)
	w, err := window.New(window.ViewDay, time.Date(2026, time.October, 15, 12, 0, 0, 0, cest), window.WithLocation(cest))
	if err != nil {
		t.Fatalf("window: %v", err)
	}
	start := time.Date(2026, time.October, 15, 7, 0, 0, 0, time.UTC)
	events := []event.Event{
		{ID: "m", Title: "planning", ResourceID: "alice", Start: start, End: start.Add(time.Hour)},
		{ID: "e", Title: "backup", ResourceID: "ops", Start: start.Add(-8*time.Hour - 30*time.Minute), End: start.Add(-7 * time.Hour)},
	}
	var buf bytes.Buffer
	p := New(&buf)
	p.Location = cest
	p.Layout(w, window.ComputeLayout(events, w, nil))
	out := buf.String()
	for _, want := range []string{"09:00-10:00", "◂01:00-02:00"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "07:00") {
		t.Errorf("event printed in its stored zone:\n%s", out)
	}
}
