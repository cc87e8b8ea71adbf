// Package zone serializes access to the ambient timezone state.
//
// The conversion, template and date grammar engines consult process-wide
// zone state and are not reentrant. Every call into them runs inside a
// Guard section: the section holds a single process-wide lock and, when
// the engines cannot be told the zone per call, temporarily overrides the
// ambient zone for GMT requests. The previous ambient state is restored
// before the lock is released, on every exit path.
package zone

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"go.uber.org/zap"

	"example.com/clockservice/base/metrics"
)

// Choice selects the zone a single request is evaluated in.
type Choice int

const (
	Local Choice = iota
	GMT
)

func (c Choice) String() string {
	if c == GMT {
		return "gmt"
	}
	return "local"
}

func ChoiceOf(useGMT bool) Choice {
	if useGMT {
		return GMT
	}
	return Local
}

const (
	// GMTMarker is the ambient override value installed for GMT requests.
	GMTMarker = "GMT"

	// GMTOffset is the zone offset handed to the date grammar to force GMT
	// interpretation regardless of the ambient zone.
	GMTOffset = -50000
)

// Ambient is the process-wide timezone state, e.g. the TZ environment
// variable. Implementations are only used from inside a Guard section.
type Ambient interface {
	// Override returns the current override value and whether one is set.
	Override() (value string, set bool)
	// SetOverride installs value, or removes the override if set is false.
	SetOverride(value string, set bool)
	// Offset returns the ambient zone offset in minutes west of GMT in
	// effect at epoch.
	Offset(epoch int64) int
}

type guardMetrics struct {
	sections  prometheus.Counter
	overrides prometheus.Counter
}

var (
	gmtrcs     *guardMetrics
	gmtrcsOnce sync.Once
)

func newGuardMetrics() *guardMetrics {
	gmtrcsOnce.Do(func() {
		gmtrcs = &guardMetrics{
			sections: promauto.NewCounter(prometheus.CounterOpts{
				Name: metrics.ZoneSectionsN,
				Help: metrics.ZoneSectionsH,
			}),
			overrides: promauto.NewCounter(prometheus.CounterOpts{
				Name: metrics.ZoneOverridesN,
				Help: metrics.ZoneOverridesH,
			}),
		}
	})
	return gmtrcs
}

// Guard owns the ambient zone state. All Guards share one lock: the
// engines behind them hold process-wide state no matter which Guard
// instance is used to reach them.
type Guard struct {
	Log     *zap.Logger
	Ambient Ambient
	// PerCallZone reports whether the engines accept the zone as a call
	// parameter. If set, no ambient override is installed, but sections
	// are still serialized.
	PerCallZone bool
}

var mu sync.Mutex

// Section is one critical section of a Guard.
type Section struct {
	g        *Guard
	choice   Choice
	override bool
	saved    string
	savedSet bool
	released bool
}

// Enter blocks until no other section is active, then prepares the
// ambient zone for choice. The returned section must be released.
func (g *Guard) Enter(choice Choice) *Section {
	mtrcs := newGuardMetrics()
	mu.Lock()
	mtrcs.sections.Inc()
	s := &Section{g: g, choice: choice}
	if choice == GMT && !g.PerCallZone && g.Ambient != nil {
		s.saved, s.savedSet = g.Ambient.Override()
		s.override = true
		g.Ambient.SetOverride(GMTMarker, true)
		mtrcs.overrides.Inc()
		if g.Log != nil {
			g.Log.Debug("ambient zone overridden",
				zap.String("value", GMTMarker),
				zap.String("saved", s.saved),
				zap.Bool("saved_set", s.savedSet))
		}
	}
	return s
}

// Release restores the ambient zone state captured by Enter and unlocks
// the guard. Calling Release more than once has no effect.
func (s *Section) Release() {
	if s.released {
		return
	}
	s.released = true
	defer mu.Unlock()
	if s.override {
		s.g.Ambient.SetOverride(s.saved, s.savedSet)
		if s.g.Log != nil {
			s.g.Log.Debug("ambient zone restored",
				zap.String("value", s.saved),
				zap.Bool("set", s.savedSet))
		}
	}
}

func (s *Section) Choice() Choice {
	return s.choice
}

// Offset returns the zone offset in minutes west of GMT for the section's
// zone choice at epoch. For GMT it returns GMTOffset.
func (s *Section) Offset(epoch int64) int {
	if s.choice == GMT {
		return GMTOffset
	}
	if s.g.Ambient == nil {
		return 0
	}
	return s.g.Ambient.Offset(epoch)
}

// Do runs fn inside a section for choice. The section is released when fn
// returns or panics.
func (g *Guard) Do(choice Choice, fn func(s *Section) error) error {
	s := g.Enter(choice)
	defer s.Release()
	return fn(s)
}
