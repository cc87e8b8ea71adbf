//go:build linux

package clock

import (
	"time"

	"go.uber.org/zap"

	"golang.org/x/sys/unix"

	"example.com/clockservice/base/logbase"
	"example.com/clockservice/base/timebase"
	"example.com/clockservice/base/unixutil"
)

type SystemClock struct {
	Log *zap.Logger
}

var _ timebase.SystemClock = (*SystemClock)(nil)

func clockGettime(log *zap.Logger, clockid int32) unix.Timespec {
	var ts unix.Timespec
	err := unix.ClockGettime(clockid, &ts)
	if err != nil {
		logbase.OrNop(log).Fatal("unix.ClockGettime failed",
			zap.Int32("clockid", clockid), zap.Error(err))
	}
	return ts
}

func (c *SystemClock) Now() time.Time {
	ts := clockGettime(c.Log, unix.CLOCK_REALTIME)
	return time.Unix(ts.Unix()).UTC()
}

func (c *SystemClock) WallClock() (sec, usec int64) {
	return unixutil.SplitTimespec(clockGettime(c.Log, unix.CLOCK_REALTIME))
}

func (c *SystemClock) Ticks() int64 {
	return unixutil.TimespecNsec(clockGettime(c.Log, unix.CLOCK_MONOTONIC))
}
