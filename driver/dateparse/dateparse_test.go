package dateparse_test

import (
	"testing"
	"time"

	"example.com/clockservice/core/zone"
	"example.com/clockservice/driver/dateparse"
)

func TestParseDateString(t *testing.T) {
	const base = 1700000000 // 2023-11-14 22:13:20 GMT
	const est = 300

	tests := []struct {
		text   string
		base   int64
		offset int
		want   int64
	}{
		{"2023-11-14 22:13:20", base, zone.GMTOffset, 1700000000},
		{"2023-11-14 22:13:20", base, est, 1700018000},
		{"2023-11-14", base, zone.GMTOffset, 1699920000},
		{"22:13:20", base, zone.GMTOffset, 1700000000},
		{"22:13:20", base, est, 1700018000},
		{"00:00", base, zone.GMTOffset, 1699920000},
		{"10:13:20 pm", base, zone.GMTOffset, 1700000000},
		{"10:13PM", 0, zone.GMTOffset, 22*3600 + 13*60},
		{"  22:13:20  ", base, zone.GMTOffset, 1700000000},
		{"Tue Nov 14 22:13:20 GMT 2023", base, est, 1700000000},
	}
	for _, tt := range tests {
		got, err := dateparse.Parser{}.ParseDateString(tt.text, tt.base, tt.offset)
		if err != nil || got != tt.want {
			t.Errorf("ParseDateString(%q, %d, %d) = (%d, %v), want (%d, nil)",
				tt.text, tt.base, tt.offset, got, err, tt.want)
		}
	}
}

func TestParseDateStringInvalid(t *testing.T) {
	for _, text := range []string{"", "   ", "not a date"} {
		got, err := dateparse.Parser{}.ParseDateString(text, 0, zone.GMTOffset)
		if err == nil {
			t.Errorf("ParseDateString(%q) = (%d, nil), want error", text, got)
		}
	}
}

func TestLocation(t *testing.T) {
	tests := []struct {
		offset int
		want   int
	}{
		{zone.GMTOffset, 0},
		{0, 0},
		{300, -5 * 3600},
		{-60, 3600},
	}
	for _, tt := range tests {
		_, got := time.Unix(0, 0).In(dateparse.Location(tt.offset)).Zone()
		if got != tt.want {
			t.Errorf("Location(%d) offset = %d, want %d", tt.offset, got, tt.want)
		}
	}
}
