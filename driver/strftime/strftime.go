// Package strftime expands strftime(3) style templates.
package strftime

import (
	"strconv"
	"time"

	lestrrat "github.com/lestrrat-go/strftime"

	"example.com/clockservice/core/engine"
)

// Expander supports the conversions of the underlying library plus %s
// (seconds since the epoch), %G and %g (ISO 8601 week-based year).
type Expander struct{}

var _ engine.Expander = Expander{}

var (
	isoYear = lestrrat.AppendFunc(func(b []byte, t time.Time) []byte {
		y, _ := t.ISOWeek()
		return append(b, strconv.Itoa(y)...)
	})
	isoYearNoCentury = lestrrat.AppendFunc(func(b []byte, t time.Time) []byte {
		y, _ := t.ISOWeek()
		y %= 100
		if y < 10 {
			b = append(b, '0')
		}
		return append(b, strconv.Itoa(y)...)
	})
)

// ExpandTemplate expands template for t. The zone name and offset of t
// are used as is; useGMT only matters to engines that keep zone state.
func (Expander) ExpandTemplate(template string, t engine.BrokenDownTime, useGMT bool) (string, error) {
	// Options force a fresh specification set per call.
	return lestrrat.Format(template, t.Time(),
		lestrrat.WithUnixSeconds('s'),
		lestrrat.WithSpecification('G', isoYear),
		lestrrat.WithSpecification('g', isoYearNoCentury),
	)
}
