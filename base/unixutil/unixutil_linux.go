package unixutil

import (
	"golang.org/x/sys/unix"
)

// SplitTimespec returns ts as seconds and microseconds, truncating the
// sub-microsecond part.
func SplitTimespec(ts unix.Timespec) (sec, usec int64) {
	sec, nsec := ts.Unix()
	return sec, nsec / 1e3
}

func TimespecNsec(ts unix.Timespec) int64 {
	return ts.Nano()
}
