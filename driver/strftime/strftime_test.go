package strftime_test

import (
	"testing"

	"example.com/clockservice/core/engine"
	"example.com/clockservice/driver/strftime"
)

var gmtEpoch = engine.BrokenDownTime{
	Year: 1970, Month: 1, Day: 1, Weekday: 4, Zone: "GMT",
}

func TestExpandTemplate(t *testing.T) {
	later := engine.BrokenDownTime{
		Year: 2021, Month: 1, Day: 2, Hour: 3, Min: 4, Sec: 5, Weekday: 6, Yearday: 1,
		Zone: "EST", Offset: -5 * 3600,
	}

	tests := []struct {
		template string
		t        engine.BrokenDownTime
		want     string
	}{
		{"%a %b %d %X %Z %Y", gmtEpoch, "Thu Jan 01 00:00:00 GMT 1970"},
		{"%Y-%m-%d %H:%M:%S", gmtEpoch, "1970-01-01 00:00:00"},
		{"%s", gmtEpoch, "0"},
		{"%s", later, "1609574645"},
		{"%H:%M %Z %z", later, "03:04 EST -0500"},
		{"%G %g %V", later, "2020 20 53"},
		{"%j", later, "002"},
		{"100%%", later, "100%"},
		{"no conversions", later, "no conversions"},
	}
	for _, tt := range tests {
		got, err := strftime.Expander{}.ExpandTemplate(tt.template, tt.t, false)
		if err != nil || got != tt.want {
			t.Errorf("ExpandTemplate(%q) = (%q, %v), want (%q, nil)", tt.template, got, err, tt.want)
		}
	}
}

func TestExpandTemplateInvalid(t *testing.T) {
	for _, template := range []string{"bad%", "%Q"} {
		got, err := strftime.Expander{}.ExpandTemplate(template, gmtEpoch, true)
		if err == nil {
			t.Errorf("ExpandTemplate(%q) = (%q, nil), want error", template, got)
		}
	}
}
