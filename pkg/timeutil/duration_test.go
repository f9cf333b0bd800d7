package timeutil

import (
	"testing"
	"time"
)

func TestParseWindowDefault(t *testing.T) {
	dur, label, err := ParseWindow("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := 7 * 24 * time.Hour
	if dur != want {
		t.Fatalf("expected %v, got %v", want, dur)
	}
	if label != "1w" {
		t.Fatalf("expected label 1w, got %s", label)
	}
}

func TestParseWindowComposite(t *testing.T) {
	dur, label, err := ParseWindow("1w 2d6h30m")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := (7*24+2*24+6)*time.Hour + 30*time.Minute
	if dur != want {
		t.Fatalf("expected %v, got %v", want, dur)
	}
	if label != "1w2d6h30m" {
		t.Fatalf("unexpected label: %s", label)
	}
}

func TestParseLength(t *testing.T) {
	tests := map[string]time.Duration{
		"":      time.Hour,
		"30m":   30 * time.Minute,
		"1h30m": 90 * time.Minute,
		"2 hrs": 2 * time.Hour,
	}
	for in, want := range tests {
		got, err := ParseLength(in)
		if err != nil {
			t.Fatalf("ParseLength(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("ParseLength(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseInvalid(t *testing.T) {
	for _, in := range []string{"noop", "5parsecs", "0h"} {
		if _, _, err := ParseWindow(in); err == nil {
			t.Errorf("expected error for %q", in)
		}
	}
}

func TestFormatWindow(t *testing.T) {
	if got := FormatWindow(25*time.Hour + 90*time.Second); got != "1d1h1m" {
		t.Fatalf("unexpected label %q", got)
	}
	if got := FormatWindow(0); got != "0m" {
		t.Fatalf("unexpected label %q", got)
	}
}
