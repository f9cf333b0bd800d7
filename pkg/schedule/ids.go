package schedule

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// IDGenerator produces ids for records created without one.
type IDGenerator interface {
	NewID() string
}

// IDFunc adapts a function to IDGenerator.
type IDFunc func() string

func (f IDFunc) NewID() string { return f() }

// UUIDs generates random v4 uuids.
var UUIDs IDGenerator = IDFunc(uuid.NewString)

// Sequence returns a generator of "<prefix>-1", "<prefix>-2", ... for tests
// and fixtures.
func Sequence(prefix string) IDGenerator {
	n := 0
	return IDFunc(func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	})
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

type wallClock struct{}

func (wallClock) Now() time.Time { return time.Now() }

// WallClock is the system clock.
var WallClock Clock = wallClock{}

// Fixed is a clock stopped at one instant.
type Fixed time.Time

func (f Fixed) Now() time.Time { return time.Time(f) }
