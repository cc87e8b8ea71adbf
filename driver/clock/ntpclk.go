package clock

import (
	"context"
	"sync"
	"time"

	"github.com/beevik/ntp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"go.uber.org/zap"

	"example.com/clockservice/base/logbase"
	"example.com/clockservice/base/metrics"
	"example.com/clockservice/base/timebase"
	"example.com/clockservice/base/timemath"
)

const (
	ntpQueryTimeout   = 5 * time.Second
	ntpBackoffInitial = 5 * time.Second
	ntpBackoffMax     = 5 * time.Minute

	ntpDefaultSyncInterval = 10 * time.Minute
)

// NTPClock corrects the wall clock of an underlying system clock by the
// offset measured against an NTP server. Ticks are passed through
// unchanged.
type NTPClock struct {
	Log          *zap.Logger
	Clock        timebase.SystemClock
	Server       string
	SyncInterval time.Duration
	// Query measures the local clock offset relative to server. Defaults
	// to an SNTP query.
	Query func(server string) (time.Duration, error)

	mu      sync.RWMutex
	offset  time.Duration
	synced  time.Time
	backoff time.Duration
}

var _ timebase.SystemClock = (*NTPClock)(nil)

type ntpClockMetrics struct {
	syncs    prometheus.Counter
	syncErrs prometheus.Counter
	offset   prometheus.Gauge
}

var (
	nmtrcs     *ntpClockMetrics
	nmtrcsOnce sync.Once
)

func newNTPClockMetrics() *ntpClockMetrics {
	nmtrcsOnce.Do(func() {
		nmtrcs = &ntpClockMetrics{
			syncs: promauto.NewCounter(prometheus.CounterOpts{
				Name: metrics.NTPClockSyncsN,
				Help: metrics.NTPClockSyncsH,
			}),
			syncErrs: promauto.NewCounter(prometheus.CounterOpts{
				Name: metrics.NTPClockSyncErrsN,
				Help: metrics.NTPClockSyncErrsH,
			}),
			offset: promauto.NewGauge(prometheus.GaugeOpts{
				Name: metrics.NTPClockOffsetN,
				Help: metrics.NTPClockOffsetH,
			}),
		}
	})
	return nmtrcs
}

func queryNTP(server string) (time.Duration, error) {
	resp, err := ntp.QueryWithOptions(server, ntp.QueryOptions{Timeout: ntpQueryTimeout})
	if err != nil {
		return 0, err
	}
	err = resp.Validate()
	if err != nil {
		return 0, err
	}
	return resp.ClockOffset, nil
}

func (c *NTPClock) Offset() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.offset
}

// Synced returns the time of the last successful sync, or the zero time.
func (c *NTPClock) Synced() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.synced
}

func (c *NTPClock) Now() time.Time {
	return c.Clock.Now().Add(c.Offset())
}

func (c *NTPClock) WallClock() (sec, usec int64) {
	sec, usec = c.Clock.WallClock()
	return timemath.SplitNsec(sec*1e9 + usec*1e3 + c.Offset().Nanoseconds())
}

func (c *NTPClock) Ticks() int64 {
	return c.Clock.Ticks()
}

// Sync queries the server once and, on success, installs the new offset.
// It returns the delay until the next sync is due.
func (c *NTPClock) Sync() (time.Duration, error) {
	mtrcs := newNTPClockMetrics()
	query := c.Query
	if query == nil {
		query = queryNTP
	}
	offset, err := query(c.Server)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		mtrcs.syncErrs.Inc()
		if c.backoff == 0 {
			c.backoff = ntpBackoffInitial
		} else {
			c.backoff *= 2
		}
		if c.backoff > ntpBackoffMax {
			c.backoff = ntpBackoffMax
		}
		return c.backoff, err
	}
	mtrcs.syncs.Inc()
	mtrcs.offset.Set(offset.Seconds())
	c.offset = offset
	c.synced = c.Clock.Now()
	c.backoff = 0
	if c.SyncInterval <= 0 {
		return ntpDefaultSyncInterval, nil
	}
	return c.SyncInterval, nil
}

// Run keeps the offset up to date until ctx is done.
func (c *NTPClock) Run(ctx context.Context) {
	log := logbase.OrNop(c.Log)
	for {
		d, err := c.Sync()
		if err != nil {
			log.Info("failed to query NTP server",
				zap.String("server", c.Server), zap.Duration("retry", d), zap.Error(err))
		} else {
			log.Debug("NTP clock offset updated",
				zap.String("server", c.Server), zap.Duration("offset", c.Offset()))
		}
		t := time.NewTimer(d)
		select {
		case <-ctx.Done():
			t.Stop()
			return
		case <-t.C:
		}
	}
}
