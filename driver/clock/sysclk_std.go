//go:build !linux

package clock

import (
	"time"

	"go.uber.org/zap"

	"example.com/clockservice/base/timebase"
	"example.com/clockservice/base/timemath"
)

type SystemClock struct {
	Log *zap.Logger
}

var _ timebase.SystemClock = (*SystemClock)(nil)

var ticksOrigin = time.Now()

func (c *SystemClock) Now() time.Time {
	return time.Now().UTC()
}

func (c *SystemClock) WallClock() (sec, usec int64) {
	return timemath.Split(time.Now())
}

func (c *SystemClock) Ticks() int64 {
	return time.Since(ticksOrigin).Nanoseconds()
}
