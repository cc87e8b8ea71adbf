// Package clock implements the clock command: reading ticks and wall
// clock seconds, formatting clock values and scanning date-time strings.
package clock

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"go.uber.org/zap"

	"example.com/clockservice/base/clockerr"
	"example.com/clockservice/base/metrics"

	"example.com/clockservice/core/format"
	"example.com/clockservice/core/scan"
	"example.com/clockservice/core/timebase"
	"example.com/clockservice/core/zone"
)

const (
	cmdClicks  = "clicks"
	cmdFormat  = "format"
	cmdScan    = "scan"
	cmdSeconds = "seconds"
)

var (
	subcommands    = []string{cmdClicks, cmdFormat, cmdScan, cmdSeconds}
	clicksSwitches = []string{"-milliseconds", "-microseconds"}
	formatSwitches = []string{"-format", "-gmt"}
	scanSwitches   = []string{"-base", "-gmt"}
)

// Result is the value of a clock command: an integer for clicks, scan
// and seconds, text for format.
type Result struct {
	Int    int64
	Text   string
	IsText bool
}

func (r Result) String() string {
	if r.IsText {
		return r.Text
	}
	return strconv.FormatInt(r.Int, 10)
}

type dispatcherMetrics struct {
	calls *prometheus.CounterVec
	errs  *prometheus.CounterVec
}

var (
	dmtrcs     *dispatcherMetrics
	dmtrcsOnce sync.Once
)

func newDispatcherMetrics() *dispatcherMetrics {
	dmtrcsOnce.Do(func() {
		dmtrcs = &dispatcherMetrics{
			calls: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: metrics.ClockCallsN,
				Help: metrics.ClockCallsH,
			}, []string{"subcommand"}),
			errs: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: metrics.ClockErrsN,
				Help: metrics.ClockErrsH,
			}, []string{"subcommand", "kind"}),
		}
	})
	return dmtrcs
}

type Dispatcher struct {
	Log       *zap.Logger
	Formatter *format.Formatter
	Scanner   *scan.Scanner
}

func (d *Dispatcher) Clicks(u timebase.Unit) int64 {
	return timebase.ReadTicks(u)
}

func (d *Dispatcher) Seconds() int64 {
	return timebase.Seconds()
}

func (d *Dispatcher) Format(epoch int64, choice zone.Choice, template string) (string, error) {
	return d.Formatter.Format(epoch, choice, template)
}

func (d *Dispatcher) Scan(req scan.Request) (int64, error) {
	return d.Scanner.Scan(req)
}

// Dispatch runs the clock subcommand named by args[0] with the remaining
// arguments. Malformed invocations fail with a usage error before any
// clock state is read.
func (d *Dispatcher) Dispatch(args ...string) (Result, error) {
	mtrcs := newDispatcherMetrics()
	name := "unknown"
	res, err := func() (Result, error) {
		if len(args) < 1 {
			return Result{}, clockerr.Usage(`wrong # args: should be "clock option ?arg ...?"`)
		}
		i, err := lookup(args[0], subcommands, "option")
		if err != nil {
			return Result{}, err
		}
		name = subcommands[i]
		mtrcs.calls.WithLabelValues(name).Inc()
		switch name {
		case cmdClicks:
			return d.dispatchClicks(args[1:])
		case cmdFormat:
			return d.dispatchFormat(args[1:])
		case cmdScan:
			return d.dispatchScan(args[1:])
		default:
			return d.dispatchSeconds(args[1:])
		}
	}()
	if err != nil {
		kind := clockerr.KindOf(err)
		mtrcs.errs.WithLabelValues(name, kind.String()).Inc()
		if d.Log != nil {
			d.Log.Debug("clock command failed",
				zap.Strings("args", args),
				zap.Stringer("kind", kind),
				zap.Error(err))
		}
	}
	return res, err
}

func (d *Dispatcher) dispatchClicks(args []string) (Result, error) {
	unit := timebase.Native
	switch len(args) {
	case 0:
	case 1:
		i, err := lookup(args[0], clicksSwitches, "option")
		if err != nil {
			return Result{}, err
		}
		if i == 0 {
			unit = timebase.Milliseconds
		} else {
			unit = timebase.Microseconds
		}
	default:
		return Result{}, clockerr.Usage(`wrong # args: should be "clock clicks ?-milliseconds|-microseconds?"`)
	}
	return Result{Int: d.Clicks(unit)}, nil
}

func (d *Dispatcher) dispatchFormat(args []string) (Result, error) {
	const wrongArgs = `wrong # args: should be "clock format clockval ?-format string? ?-gmt boolean?"`
	if len(args) < 1 || len(args) > 5 {
		return Result{}, clockerr.Usage(wrongArgs)
	}
	epoch, err := parseClockValue(args[0])
	if err != nil {
		return Result{}, err
	}
	template := format.DefaultTemplate
	useGMT := false
	opts := args[1:]
	for ; len(opts) > 1; opts = opts[2:] {
		i, err := lookup(opts[0], formatSwitches, "switch")
		if err != nil {
			return Result{}, err
		}
		switch i {
		case 0:
			template = opts[1]
		case 1:
			useGMT, err = parseBool(opts[1])
			if err != nil {
				return Result{}, err
			}
		}
	}
	if len(opts) != 0 {
		return Result{}, clockerr.Usage(wrongArgs)
	}
	s, err := d.Format(epoch, zone.ChoiceOf(useGMT), template)
	if err != nil {
		return Result{}, err
	}
	return Result{Text: s, IsText: true}, nil
}

func (d *Dispatcher) dispatchScan(args []string) (Result, error) {
	const wrongArgs = `wrong # args: should be "clock scan dateString ?-base clockValue? ?-gmt boolean?"`
	if len(args) < 1 || len(args) > 5 {
		return Result{}, clockerr.Usage(wrongArgs)
	}
	var baseArg *string
	useGMT := false
	opts := args[1:]
	for ; len(opts) > 1; opts = opts[2:] {
		i, err := lookup(opts[0], scanSwitches, "switch")
		if err != nil {
			return Result{}, err
		}
		switch i {
		case 0:
			baseArg = &opts[1]
		case 1:
			useGMT, err = parseBool(opts[1])
			if err != nil {
				return Result{}, err
			}
		}
	}
	if len(opts) != 0 {
		return Result{}, clockerr.Usage(wrongArgs)
	}
	req := scan.Request{
		Text: args[0],
		Zone: zone.ChoiceOf(useGMT),
	}
	if baseArg != nil {
		base, err := parseClockValue(*baseArg)
		if err != nil {
			return Result{}, err
		}
		req.Base = &base
	}
	v, err := d.Scan(req)
	if err != nil {
		return Result{}, err
	}
	return Result{Int: v}, nil
}

func (d *Dispatcher) dispatchSeconds(args []string) (Result, error) {
	if len(args) != 0 {
		return Result{}, clockerr.Usage(`wrong # args: should be "clock seconds"`)
	}
	return Result{Int: d.Seconds()}, nil
}
