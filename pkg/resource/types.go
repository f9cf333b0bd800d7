// Package resource defines bookable resources and their metadata helpers.
package resource

import (
	"strings"
)

// Type tags a resource. It is a label, not a hierarchy: unknown values are
// kept as-is so callers can extend the set.
type Type string

const (
	// TypeStaff is a person that can be booked.
	TypeStaff Type = "staff"
	// TypeRoom is a physical space.
	TypeRoom Type = "room"
	// TypeEquipment is a bookable device or tool.
	TypeEquipment Type = "equipment"
)

// AllTypes returns the list of well known resource types.
func AllTypes() []Type {
	return []Type{
		TypeStaff,
		TypeRoom,
		TypeEquipment,
	}
}

// ParseType normalises raw into a Type. Empty input maps to TypeStaff.
func ParseType(raw string) Type {
	t := Type(strings.ToLower(strings.TrimSpace(raw)))
	if t == "" {
		return TypeStaff
	}
	return t
}

// Known reports whether t is one of AllTypes.
func (t Type) Known() bool {
	for _, candidate := range AllTypes() {
		if candidate == t {
			return true
		}
	}
	return false
}

func (t Type) String() string {
	return string(t)
}
