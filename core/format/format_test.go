package format_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"example.com/clockservice/base/clockerr"

	"example.com/clockservice/core/engine"
	"example.com/clockservice/core/format"
	"example.com/clockservice/core/zone"
)

// tzAmbient models a TZ variable that the conversion engine reads
// implicitly, like localtime(3).
type tzAmbient struct {
	value string
	set   bool
}

func (a *tzAmbient) Override() (string, bool) { return a.value, a.set }

func (a *tzAmbient) SetOverride(value string, set bool) { a.value, a.set = value, set }

func (a *tzAmbient) Offset(epoch int64) int {
	_, off := time.Unix(epoch, 0).In(a.location()).Zone()
	return -off / 60
}

func (a *tzAmbient) location() *time.Location {
	if a.set && a.value == zone.GMTMarker {
		return time.FixedZone("GMT", 0)
	}
	return time.FixedZone("EST", -5*3600)
}

type counters struct {
	conversions int
	expansions  int
}

func newFormatter(a *tzAmbient, c *counters, expand engine.ExpanderFunc) *format.Formatter {
	return &format.Formatter{
		Guard: &zone.Guard{Ambient: a},
		Converter: engine.ConverterFunc(func(epoch int64, useGMT bool) engine.BrokenDownTime {
			c.conversions++
			return engine.BrokenDown(time.Unix(epoch, 0).In(a.location()))
		}),
		Expander: engine.ExpanderFunc(func(template string, t engine.BrokenDownTime, useGMT bool) (string, error) {
			c.expansions++
			return expand(template, t, useGMT)
		}),
	}
}

func isoExpand(template string, t engine.BrokenDownTime, useGMT bool) (string, error) {
	if strings.HasSuffix(template, "%") {
		return "", errors.New("stray % at the end of pattern")
	}
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d %s",
		t.Year, t.Month, t.Day, t.Hour, t.Min, t.Sec, t.Zone), nil
}

func TestEmptyTemplate(t *testing.T) {
	var c counters
	a := &tzAmbient{}
	f := newFormatter(a, &c, isoExpand)
	for _, choice := range []zone.Choice{zone.Local, zone.GMT} {
		s, err := f.Format(100000, choice, "")
		if err != nil || s != "" {
			t.Errorf("Format(100000, %v, \"\") = (%q, %v), want (\"\", nil)", choice, s, err)
		}
	}
	if c.conversions != 0 || c.expansions != 0 {
		t.Errorf("engine called %d/%d times, want 0/0", c.conversions, c.expansions)
	}
}

func TestZoneChoiceReachesConverter(t *testing.T) {
	var c counters
	a := &tzAmbient{}
	f := newFormatter(a, &c, isoExpand)

	local, err := f.Format(100000, zone.Local, "%c")
	if err != nil {
		t.Fatalf("Format(local) failed: %v", err)
	}
	gmt, err := f.Format(100000, zone.GMT, "%c")
	if err != nil {
		t.Fatalf("Format(gmt) failed: %v", err)
	}
	if local == gmt {
		t.Errorf("local and GMT renderings are both %q", local)
	}
	if want := "1970-01-02 03:46:40 GMT"; gmt != want {
		t.Errorf("Format(gmt) = %q, want %q", gmt, want)
	}
	if want := "1970-01-01 22:46:40 EST"; local != want {
		t.Errorf("Format(local) = %q, want %q", local, want)
	}
	if a.set {
		t.Errorf("ambient override leaked: %q", a.value)
	}
}

func TestBadTemplateRestoresOverride(t *testing.T) {
	var c counters
	a := &tzAmbient{value: "EST5EDT", set: true}
	f := newFormatter(a, &c, isoExpand)

	_, err := f.Format(0, zone.GMT, "bad%")
	if !errors.Is(err, clockerr.ErrFormat) {
		t.Fatalf("Format(bad%%) error = %v, want format error", err)
	}
	if got, want := err.Error(), `bad format string "bad%"`; got != want {
		t.Errorf("error message = %q, want %q", got, want)
	}
	if a.value != "EST5EDT" || !a.set {
		t.Errorf("ambient after failure = (%q, %v), want (%q, true)", a.value, a.set, "EST5EDT")
	}
}

func TestEmptyExpansion(t *testing.T) {
	var c counters
	f := newFormatter(&tzAmbient{}, &c, func(string, engine.BrokenDownTime, bool) (string, error) {
		return "", nil
	})
	_, err := f.Format(0, zone.Local, "%p")
	if clockerr.KindOf(err) != clockerr.KindFormat {
		t.Errorf("Format with empty expansion error = %v, want format error", err)
	}
}

func TestExpansionOverflow(t *testing.T) {
	var c counters
	a := &tzAmbient{}
	f := newFormatter(a, &c, func(template string, _ engine.BrokenDownTime, _ bool) (string, error) {
		return strings.Repeat("x", 42), nil
	})
	_, err := f.Format(0, zone.GMT, "%B")
	if !errors.Is(err, clockerr.ErrEngineContract) {
		t.Errorf("Format with oversized expansion error = %v, want engine contract error", err)
	}
	if a.set {
		t.Errorf("ambient override leaked after contract violation")
	}

	f = newFormatter(a, &c, func(template string, _ engine.BrokenDownTime, _ bool) (string, error) {
		return strings.Repeat("x", 41), nil
	})
	if _, err := f.Format(0, zone.GMT, "%B"); err != nil {
		t.Errorf("Format with expansion at estimate failed: %v", err)
	}
}
