package timemath

import (
	"time"
)

func Milliseconds(sec, usec int64) int64 {
	return sec*1_000 + usec/1_000
}

func Microseconds(sec, usec int64) int64 {
	return sec*1_000_000 + usec
}

// Split returns t as whole seconds and non-negative microseconds since the
// Unix epoch.
func Split(t time.Time) (sec, usec int64) {
	return SplitNsec(t.UnixNano())
}

func SplitNsec(nsec int64) (sec, usec int64) {
	sec = nsec / 1e9
	nsec = nsec % 1e9
	if nsec < 0 {
		sec -= 1
		nsec += 1e9
	}
	return sec, nsec / 1e3
}

// EstimateExpansion returns an upper bound for the length of a strftime
// style template expansion, counting the terminating byte.
func EstimateExpansion(template string) int {
	n := 1
	for i := 0; i != len(template); i++ {
		if template[i] == '%' {
			n += 40
		} else {
			n++
		}
	}
	return n
}
