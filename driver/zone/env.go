// Package zone provides the process environment as the ambient timezone
// state and the calendar conversion that reads it.
package zone

import (
	"os"
	"strings"
	"sync/atomic"
	"time"
	_ "time/tzdata"

	"go.uber.org/zap"

	corezone "example.com/clockservice/core/zone"
)

const envTZ = "TZ"

var gmt = time.FixedZone(corezone.GMTMarker, 0)

// Env is the TZ environment variable together with the location it
// currently resolves to.
type Env struct {
	Log *zap.Logger

	initial *time.Location
	loc     atomic.Pointer[time.Location]
}

var _ corezone.Ambient = (*Env)(nil)

func NewEnv(log *zap.Logger) *Env {
	e := &Env{Log: log, initial: time.Local}
	value, set := os.LookupEnv(envTZ)
	e.loc.Store(e.resolve(value, set))
	return e
}

func (e *Env) Override() (string, bool) {
	return os.LookupEnv(envTZ)
}

func (e *Env) SetOverride(value string, set bool) {
	var err error
	if set {
		err = os.Setenv(envTZ, value)
	} else {
		err = os.Unsetenv(envTZ)
	}
	if err != nil && e.Log != nil {
		e.Log.Error("failed to update TZ", zap.String("value", value), zap.Error(err))
	}
	e.loc.Store(e.resolve(value, set))
}

// Location returns the location the ambient zone currently resolves to.
func (e *Env) Location() *time.Location {
	loc := e.loc.Load()
	if loc == nil {
		return time.Local
	}
	return loc
}

func (e *Env) Offset(epoch int64) int {
	_, offset := time.Unix(epoch, 0).In(e.Location()).Zone()
	return -offset / 60
}

func (e *Env) resolve(value string, set bool) *time.Location {
	if !set {
		return e.initial
	}
	value = strings.TrimPrefix(value, ":")
	switch value {
	case "", "UTC", "UTC0":
		return time.UTC
	case corezone.GMTMarker, "GMT0":
		return gmt
	}
	// POSIX rule strings such as "CET-1CEST" are not zone names and fall
	// back like any other unknown value.
	loc, err := time.LoadLocation(value)
	if err != nil {
		if e.Log != nil {
			e.Log.Warn("unknown zone, using initial local zone",
				zap.String("value", value), zap.Error(err))
		}
		return e.initial
	}
	return loc
}
