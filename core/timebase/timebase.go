package timebase

import (
	"sync/atomic"
	"time"

	"example.com/clockservice/base/timebase"
	"example.com/clockservice/base/timemath"
)

// Unit selects the granularity of ReadTicks.
type Unit int

const (
	Native Unit = iota
	Milliseconds
	Microseconds
)

func (u Unit) String() string {
	switch u {
	case Milliseconds:
		return "milliseconds"
	case Microseconds:
		return "microseconds"
	default:
		return "native"
	}
}

var (
	sysclk atomic.Value
)

func RegisterClock(c timebase.SystemClock) {
	if c == nil {
		panic("system clock must not be nil")
	}
	swapped := sysclk.CompareAndSwap(nil, c)
	if !swapped {
		panic("system clock already registered")
	}
}

func clock() timebase.SystemClock {
	c, _ := sysclk.Load().(timebase.SystemClock)
	if c == nil {
		panic("no system clock registered")
	}
	return c
}

func Now() time.Time {
	return clock().Now()
}

// Seconds returns the current wall clock time in seconds since the Unix
// epoch.
func Seconds() int64 {
	sec, _ := clock().WallClock()
	return sec
}

func ReadTicks(u Unit) int64 {
	c := clock()
	switch u {
	case Milliseconds:
		return timemath.Milliseconds(c.WallClock())
	case Microseconds:
		return timemath.Microseconds(c.WallClock())
	default:
		return c.Ticks()
	}
}
