// Package engine declares the calendar, template and date grammar engines
// the clock operations delegate to. None of them is assumed to be
// reentrant; callers invoke them from inside a zone.Guard section.
package engine

import (
	"time"
)

type BrokenDownTime struct {
	Year    int
	Month   int // 1-12
	Day     int // 1-31
	Hour    int
	Min     int
	Sec     int
	Weekday int // days since Sunday
	Yearday int // days since January 1
	Zone    string
	Offset  int // seconds east of GMT
}

func (b BrokenDownTime) Time() time.Time {
	return time.Date(b.Year, time.Month(b.Month), b.Day, b.Hour, b.Min, b.Sec, 0,
		time.FixedZone(b.Zone, b.Offset))
}

func BrokenDown(t time.Time) BrokenDownTime {
	name, offset := t.Zone()
	return BrokenDownTime{
		Year:    t.Year(),
		Month:   int(t.Month()),
		Day:     t.Day(),
		Hour:    t.Hour(),
		Min:     t.Minute(),
		Sec:     t.Second(),
		Weekday: int(t.Weekday()),
		Yearday: t.YearDay() - 1,
		Zone:    name,
		Offset:  offset,
	}
}

type Converter interface {
	ToBrokenDown(epoch int64, useGMT bool) BrokenDownTime
}

type Expander interface {
	ExpandTemplate(template string, t BrokenDownTime, useGMT bool) (string, error)
}

// DateParser interprets free-form date text. zoneOffset is in minutes
// west of GMT; zone.GMTOffset forces GMT.
type DateParser interface {
	ParseDateString(text string, baseEpoch int64, zoneOffset int) (int64, error)
}

type ConverterFunc func(epoch int64, useGMT bool) BrokenDownTime

func (f ConverterFunc) ToBrokenDown(epoch int64, useGMT bool) BrokenDownTime {
	return f(epoch, useGMT)
}

type ExpanderFunc func(template string, t BrokenDownTime, useGMT bool) (string, error)

func (f ExpanderFunc) ExpandTemplate(template string, t BrokenDownTime, useGMT bool) (string, error) {
	return f(template, t, useGMT)
}

type DateParserFunc func(text string, baseEpoch int64, zoneOffset int) (int64, error)

func (f DateParserFunc) ParseDateString(text string, baseEpoch int64, zoneOffset int) (int64, error) {
	return f(text, baseEpoch, zoneOffset)
}
