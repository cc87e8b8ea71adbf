package timemath_test

import (
	"testing"
	"time"

	"example.com/clockservice/base/timemath"
)

func TestMilliseconds(t *testing.T) {
	tests := []struct {
		sec, usec int64
		want      int64
	}{
		{0, 0, 0},
		{1, 0, 1000},
		{1, 999, 1000},
		{1, 1000, 1001},
		{1_700_000_000, 123_456, 1_700_000_000_123},
	}

	for _, tt := range tests {
		got := timemath.Milliseconds(tt.sec, tt.usec)
		if got != tt.want {
			t.Errorf("timemath.Milliseconds(%v, %v) = %v, want %v", tt.sec, tt.usec, got, tt.want)
		}
	}
}

func TestMicroseconds(t *testing.T) {
	tests := []struct {
		sec, usec int64
		want      int64
	}{
		{0, 0, 0},
		{1, 0, 1_000_000},
		{1, 999_999, 1_999_999},
		{1_700_000_000, 123_456, 1_700_000_000_123_456},
	}

	for _, tt := range tests {
		got := timemath.Microseconds(tt.sec, tt.usec)
		if got != tt.want {
			t.Errorf("timemath.Microseconds(%v, %v) = %v, want %v", tt.sec, tt.usec, got, tt.want)
		}
	}
}

func TestSplitNsec(t *testing.T) {
	tests := []struct {
		nsec      int64
		sec, usec int64
	}{
		{0, 0, 0},
		{1_500_000_000, 1, 500_000},
		{999, 0, 0},
		{1_000, 0, 1},
		{-1, -1, 999_999},
		{-1_500_000_000, -2, 500_000},
	}

	for _, tt := range tests {
		sec, usec := timemath.SplitNsec(tt.nsec)
		if sec != tt.sec || usec != tt.usec {
			t.Errorf("timemath.SplitNsec(%v) = (%v, %v), want (%v, %v)",
				tt.nsec, sec, usec, tt.sec, tt.usec)
		}
	}
}

func TestSplit(t *testing.T) {
	sec, usec := timemath.Split(time.Unix(100000, 250_000_000))
	if sec != 100000 || usec != 250_000 {
		t.Errorf("timemath.Split = (%v, %v), want (100000, 250000)", sec, usec)
	}
}

func TestEstimateExpansion(t *testing.T) {
	tests := []struct {
		template string
		want     int
	}{
		{"", 1},
		{"abc", 4},
		{"%Y", 42},
		{"%a %b %d %X %Z %Y", 1 + 6*40 + 11},
		{"%%", 81},
	}

	for _, tt := range tests {
		got := timemath.EstimateExpansion(tt.template)
		if got != tt.want {
			t.Errorf("timemath.EstimateExpansion(%q) = %v, want %v", tt.template, got, tt.want)
		}
	}
}
