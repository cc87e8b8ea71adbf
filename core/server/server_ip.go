package server

import (
	"context"
	"errors"
	"net"
	"sync"

	"github.com/libp2p/go-reuseport"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"go.uber.org/zap"

	"example.com/clockservice/base/logbase"
	"example.com/clockservice/base/metrics"

	"example.com/clockservice/net/cmdproto"
)

type ipServerMetrics struct {
	pktsReceived prometheus.Counter
	reqsAccepted prometheus.Counter
	reqsServed   prometheus.Counter
}

var (
	smtrcs     *ipServerMetrics
	smtrcsOnce sync.Once
)

func newIPServerMetrics() *ipServerMetrics {
	smtrcsOnce.Do(func() {
		smtrcs = &ipServerMetrics{
			pktsReceived: promauto.NewCounter(prometheus.CounterOpts{
				Name: metrics.ServerPktsReceivedN,
				Help: metrics.ServerPktsReceivedH,
			}),
			reqsAccepted: promauto.NewCounter(prometheus.CounterOpts{
				Name: metrics.ServerReqsAcceptedN,
				Help: metrics.ServerReqsAcceptedH,
			}),
			reqsServed: promauto.NewCounter(prometheus.CounterOpts{
				Name: metrics.ServerReqsServedN,
				Help: metrics.ServerReqsServedH,
			}),
		}
	})
	return smtrcs
}

func runIPServer(ctx context.Context, log *zap.Logger, mtrcs *ipServerMetrics,
	conn *net.UDPConn, d Dispatcher) {
	defer conn.Close()

	buf := make([]byte, cmdproto.MaxPacketLen+1)
	var resp []byte
	for {
		buf = buf[:cap(buf)]
		n, srcAddr, err := conn.ReadFromUDPAddrPort(buf)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return
			}
			log.Error("failed to read packet", zap.Error(err))
			continue
		}
		buf = buf[:n]
		mtrcs.pktsReceived.Inc()

		log.Debug("received request",
			zap.Stringer("from", srcAddr),
			zap.ByteString("data", buf),
		)

		if handleRequest(log, d, buf, &resp) {
			mtrcs.reqsAccepted.Inc()
		}

		n, err = conn.WriteToUDPAddrPort(resp, srcAddr)
		if err != nil || n != len(resp) {
			log.Error("failed to write packet", zap.Error(err))
			continue
		}
		mtrcs.reqsServed.Inc()
	}
}

// StartIPServer binds numGoroutine UDP sockets to localAddr, sharing the
// port if there is more than one, and serves each from its own goroutine
// until ctx is done. If localAddr has port 0, all sockets share the port
// chosen for the first. It returns the bound address.
func StartIPServer(ctx context.Context, log *zap.Logger,
	localAddr string, numGoroutine int, d Dispatcher) (*net.UDPAddr, error) {
	log = logbase.OrNop(log)
	if numGoroutine < 1 {
		numGoroutine = 1
	}
	mtrcs := newIPServerMetrics()

	var bound *net.UDPAddr
	conns := make([]*net.UDPConn, 0, numGoroutine)
	for i := 0; i != numGoroutine; i++ {
		addr := localAddr
		if bound != nil {
			addr = bound.String()
		}
		var conn net.PacketConn
		var err error
		if numGoroutine == 1 {
			conn, err = net.ListenPacket("udp", addr)
		} else {
			conn, err = reuseport.ListenPacket("udp", addr)
		}
		if err != nil {
			for _, c := range conns {
				_ = c.Close()
			}
			return nil, err
		}
		if bound == nil {
			bound = conn.LocalAddr().(*net.UDPAddr)
		}
		conns = append(conns, conn.(*net.UDPConn))
	}

	log.Info("server listening via IP",
		zap.Stringer("local host", bound),
		zap.Int("sockets", len(conns)),
	)
	for _, conn := range conns {
		go func(conn *net.UDPConn) {
			<-ctx.Done()
			_ = conn.Close()
		}(conn)
		go runIPServer(ctx, log, mtrcs, conn, d)
	}
	return bound, nil
}
