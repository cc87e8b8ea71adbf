// Package dateparse interprets free-form date-time text.
package dateparse

import (
	"errors"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"example.com/clockservice/core/engine"
	"example.com/clockservice/core/zone"
)

var errEmpty = errors.New("empty date-time string")

var timeOfDayLayouts = []string{
	"15:04",
	"15:04:05",
	"3:04PM",
	"3:04:05PM",
	"3:04 PM",
	"3:04:05 PM",
}

var gmt = time.FixedZone(zone.GMTMarker, 0)

// Parser resolves time-of-day strings against the date of the base
// instant and hands everything else to github.com/araddon/dateparse.
type Parser struct{}

var _ engine.DateParser = Parser{}

// Location returns the fixed location for a zone offset in minutes west
// of GMT. zone.GMTOffset yields GMT.
func Location(zoneOffset int) *time.Location {
	if zoneOffset == zone.GMTOffset || zoneOffset == 0 {
		return gmt
	}
	return time.FixedZone("", -zoneOffset*60)
}

func (Parser) ParseDateString(text string, baseEpoch int64, zoneOffset int) (int64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, errEmpty
	}
	loc := Location(zoneOffset)
	if h, m, s, ok := parseTimeOfDay(text); ok {
		y, mo, d := time.Unix(baseEpoch, 0).In(loc).Date()
		return time.Date(y, mo, d, h, m, s, 0, loc).Unix(), nil
	}
	t, err := dateparse.ParseIn(text, loc)
	if err != nil {
		return 0, err
	}
	return t.Unix(), nil
}

func parseTimeOfDay(text string) (hour, min, sec int, ok bool) {
	text = strings.ToUpper(text)
	for _, layout := range timeOfDayLayouts {
		t, err := time.Parse(layout, text)
		if err == nil {
			return t.Hour(), t.Minute(), t.Second(), true
		}
	}
	return 0, 0, 0, false
}
