package timebase

import (
	"time"
)

type SystemClock interface {
	Now() time.Time
	// WallClock returns the current wall clock time split into seconds and
	// microseconds since the Unix epoch.
	WallClock() (sec, usec int64)
	// Ticks returns a monotonic counter in platform units.
	Ticks() int64
}
