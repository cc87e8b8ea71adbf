package timebase_test

import (
	"testing"
	"time"

	"example.com/clockservice/core/timebase"
)

type fakeClock struct {
	sec, usec int64
	ticks     int64
}

func (c *fakeClock) Now() time.Time {
	return time.Unix(c.sec, c.usec*1e3)
}

func (c *fakeClock) WallClock() (sec, usec int64) {
	return c.sec, c.usec
}

func (c *fakeClock) Ticks() int64 {
	return c.ticks
}

var fclk = &fakeClock{sec: 1_700_000_000, usec: 123_456, ticks: 42}

func init() {
	timebase.RegisterClock(fclk)
}

func TestReadTicks(t *testing.T) {
	tests := []struct {
		unit timebase.Unit
		want int64
	}{
		{timebase.Native, 42},
		{timebase.Milliseconds, 1_700_000_000_123},
		{timebase.Microseconds, 1_700_000_000_123_456},
	}

	for _, tt := range tests {
		got := timebase.ReadTicks(tt.unit)
		if got != tt.want {
			t.Errorf("timebase.ReadTicks(%v) = %v, want %v", tt.unit, got, tt.want)
		}
	}
}

func TestSeconds(t *testing.T) {
	if got := timebase.Seconds(); got != 1_700_000_000 {
		t.Errorf("timebase.Seconds() = %v, want %v", got, 1_700_000_000)
	}
	if got := timebase.Now(); got.Unix() != 1_700_000_000 {
		t.Errorf("timebase.Now() = %v, want unix %v", got, 1_700_000_000)
	}
}

func TestRegisterClockTwice(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("second RegisterClock did not panic")
		}
	}()
	timebase.RegisterClock(&fakeClock{})
}

func TestRegisterNilClock(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("RegisterClock(nil) did not panic")
		}
	}()
	timebase.RegisterClock(nil)
}
