package benchmark

import (
	"go.uber.org/zap"

	"example.com/clockservice/core/clock"
)

type Dispatcher interface {
	Dispatch(args ...string) (clock.Result, error)
}

// RunDispatcherBenchmark issues the workload against an in-process
// dispatcher.
func RunDispatcherBenchmark(log *zap.Logger, d Dispatcher, numGoroutine, numRequest int) Result {
	return run(log, numGoroutine, numRequest, func(i int) error {
		_, err := d.Dispatch(Workload[i%len(Workload)]...)
		return err
	})
}
