package glyph

import (
	"fmt"

	"tableflip.dev/agenda/pkg/resource"
)

type Glyph struct {
	Key     string
	Symbol  string
	Meaning string
	Marker  bool
}

const (
	escape        = "\x1b"
	resetCode     = 0
	boldCode      = 1
	faintCode     = 2
	underlineCode = 4
)

func Bold(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, boldCode, in, escape, resetCode)
}

func Faint(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, faintCode, in, escape, resetCode)
}

func Underline(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, underlineCode, in, escape, resetCode)
}

// Kind indexes DefaultGlyphs.
type Kind int

const (
	Staff Kind = iota
	Room
	Equipment
	OtherResource
	StartsEarlier
	ContinuesLater
	Conflict
)

func DefaultGlyphs() []Glyph {
	return []Glyph{
		{Key: "staff", Symbol: "●", Meaning: "staff"},
		{Key: "room", Symbol: "■", Meaning: "room"},
		{Key: "equipment", Symbol: "▲", Meaning: "equipment"},
		{Key: "other", Symbol: "◆", Meaning: "other resource type"},
		{Key: "<", Symbol: "◂", Meaning: "starts before the visible hours", Marker: true},
		{Key: ">", Symbol: "▸", Meaning: "continues after the visible hours", Marker: true},
		{Key: "!", Symbol: "!", Meaning: "double booked", Marker: true},
	}
}

func (k Kind) Glyph() Glyph {
	return DefaultGlyphs()[k]
}

func (k Kind) String() string {
	return k.Glyph().Symbol
}

func (g Glyph) String() string {
	return g.Symbol
}

// ForType picks the symbol for a resource type.
func ForType(t resource.Type) Kind {
	switch t {
	case resource.TypeStaff:
		return Staff
	case resource.TypeRoom:
		return Room
	case resource.TypeEquipment:
		return Equipment
	default:
		return OtherResource
	}
}

// Edges returns the leading and trailing truncation markers, blank when the
// edge is not truncated.
func Edges(before, after bool) (string, string) {
	lead, trail := " ", " "
	if before {
		lead = StartsEarlier.String()
	}
	if after {
		trail = ContinuesLater.String()
	}
	return lead, trail
}
