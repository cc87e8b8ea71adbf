package benchmark

import (
	"context"
	"net"
	"time"

	"go.uber.org/zap"

	"example.com/clockservice/core/client"
)

const requestTimeout = 500 * time.Millisecond

// RunIPBenchmark issues the workload against a remote server.
func RunIPBenchmark(log *zap.Logger, remoteAddr *net.UDPAddr, numGoroutine, numRequest int) Result {
	return run(log, numGoroutine, numRequest, func(i int) error {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		_, err := client.Do(ctx, log, remoteAddr, Workload[i%len(Workload)]...)
		return err
	})
}
