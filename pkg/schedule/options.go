package schedule

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ConflictPolicy decides what happens when a change double-books a resource.
type ConflictPolicy string

const (
	// Warn commits overlapping events and logs the conflict.
	Warn ConflictPolicy = "warn"
	// Reject refuses overlapping creates and updates with ErrConflict.
	Reject ConflictPolicy = "reject"
)

// ParseConflictPolicy converts a config value; empty means Warn.
func ParseConflictPolicy(raw string) (ConflictPolicy, error) {
	switch ConflictPolicy(strings.ToLower(strings.TrimSpace(raw))) {
	case "", Warn:
		return Warn, nil
	case Reject:
		return Reject, nil
	default:
		return Warn, fmt.Errorf("schedule: unknown conflict policy %q", raw)
	}
}

// Option configures a Controller or a Resources manager.
type Option func(*settings)

type settings struct {
	ids    IDGenerator
	log    *zap.Logger
	policy ConflictPolicy
	exists func(resourceID string) bool
}

func newSettings(opts []Option) settings {
	s := settings{
		ids:    UUIDs,
		log:    zap.NewNop(),
		policy: Warn,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithIDGenerator replaces the default uuid generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(s *settings) {
		if g != nil {
			s.ids = g
		}
	}
}

// WithLogger sets the logger used for mutation and conflict logs.
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.log = l
		}
	}
}

// WithConflictPolicy sets how the controller treats double bookings.
func WithConflictPolicy(p ConflictPolicy) Option {
	return func(s *settings) {
		s.policy = p
	}
}

// WithReferenceCheck makes the controller reject events whose resource id is
// unknown to exists. Without it resource ids are weak references.
func WithReferenceCheck(exists func(resourceID string) bool) Option {
	return func(s *settings) {
		s.exists = exists
	}
}
