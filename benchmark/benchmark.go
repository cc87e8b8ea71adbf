// Package benchmark measures clock command latency under concurrent load.
package benchmark

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"

	"go.uber.org/zap"

	"example.com/clockservice/base/logbase"
)

const (
	maxLatency = int64(time.Minute)
	sigFigs    = 3
)

// Workload is the command mix issued round-robin by every goroutine. It
// alternates between GMT and local zone requests.
var Workload = [][]string{
	{"clicks"},
	{"seconds"},
	{"format", "1700000000", "-format", "%Y-%m-%d %H:%M:%S", "-gmt", "1"},
	{"format", "1700000000"},
	{"scan", "2023-11-14 22:13:20", "-gmt", "1"},
	{"scan", "2023-11-14 22:13:20", "-base", "0"},
	{"clicks", "-milliseconds"},
	{"format", "0", "-format", "%c", "-gmt", "0"},
}

type Result struct {
	Requests int64
	Errors   int64
	Elapsed  time.Duration
	// Latency holds per-request latencies in nanoseconds.
	Latency *hdrhistogram.Histogram
}

// Print writes the latency distribution in microseconds followed by a
// summary line.
func (r Result) Print(w io.Writer) error {
	_, err := r.Latency.PercentilesPrint(w, 1, 1e3)
	if err != nil {
		return err
	}
	var rate float64
	if r.Elapsed > 0 {
		rate = float64(r.Requests) / r.Elapsed.Seconds()
	}
	_, err = fmt.Fprintf(w,
		"requests: %d, errors: %d, elapsed: %v, rate: %.0f/s, p50: %v, p99: %v, max: %v\n",
		r.Requests, r.Errors, r.Elapsed, rate,
		time.Duration(r.Latency.ValueAtQuantile(50)),
		time.Duration(r.Latency.ValueAtQuantile(99)),
		time.Duration(r.Latency.Max()))
	return err
}

// run starts numGoroutine goroutines, releases them at once and has each
// call do numRequest times with the workload index of the request.
func run(log *zap.Logger, numGoroutine, numRequest int, do func(i int) error) Result {
	log = logbase.OrNop(log)

	res := Result{Latency: hdrhistogram.New(1, maxLatency, sigFigs)}
	var mu sync.Mutex
	sg := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(numGoroutine)
	for g := 0; g != numGoroutine; g++ {
		go func(g int) {
			defer wg.Done()
			hg := hdrhistogram.New(1, maxLatency, sigFigs)
			var nerr int64
			<-sg
			for j := 0; j != numRequest; j++ {
				t0 := time.Now()
				err := do(g + j)
				d := time.Since(t0).Nanoseconds()
				if err != nil {
					nerr++
					log.Debug("request failed", zap.Int("goroutine", g), zap.Error(err))
				}
				if d > maxLatency {
					d = maxLatency
				}
				_ = hg.RecordValue(d)
			}
			mu.Lock()
			defer mu.Unlock()
			res.Latency.Merge(hg)
			res.Requests += int64(numRequest)
			res.Errors += nerr
		}(g)
	}
	t0 := time.Now()
	close(sg)
	wg.Wait()
	res.Elapsed = time.Since(t0)
	log.Info("benchmark finished",
		zap.Int64("requests", res.Requests),
		zap.Int64("errors", res.Errors),
		zap.Duration("duration", res.Elapsed))
	return res
}
