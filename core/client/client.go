// Package client sends clock commands to a remote server.
package client

import (
	"context"
	"errors"
	"net"
	"net/netip"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"go.uber.org/zap"

	"example.com/clockservice/base/clockerr"
	"example.com/clockservice/base/logbase"
	"example.com/clockservice/base/metrics"

	"example.com/clockservice/net/cmdproto"
)

const maxNumRetries = 1

var (
	errWrite                  = errors.New("failed to write packet")
	errUnexpectedPacketSource = errors.New("failed to read packet: unexpected source")

	ipMetrics atomic.Pointer[ipClientMetrics]
)

type ipClientMetrics struct {
	reqsSent      prometheus.Counter
	respsAccepted prometheus.Counter
}

func init() {
	ipMetrics.Store(&ipClientMetrics{
		reqsSent: promauto.NewCounter(prometheus.CounterOpts{
			Name: metrics.ClientReqsSentN,
			Help: metrics.ClientReqsSentH,
		}),
		respsAccepted: promauto.NewCounter(prometheus.CounterOpts{
			Name: metrics.ClientRespsAcceptedN,
			Help: metrics.ClientRespsAcceptedH,
		}),
	})
}

func compareAddrs(x, y netip.Addr) int {
	return x.Unmap().Compare(y.Unmap())
}

// Do sends the command words to the server at remoteAddr and returns the
// result text. A command that fails on the server yields a
// *clockerr.Error carrying the reported kind and message. The deadline of
// ctx, if any, bounds the exchange.
func Do(ctx context.Context, log *zap.Logger, remoteAddr *net.UDPAddr, words ...string) (
	string, error) {
	log = logbase.OrNop(log)
	mtrcs := ipMetrics.Load()

	buf := make([]byte, 0, cmdproto.MaxPacketLen)
	err := cmdproto.EncodeRequest(&buf, words)
	if err != nil {
		return "", err
	}

	conn, err := net.ListenUDP("udp", nil)
	if err != nil {
		return "", err
	}
	defer conn.Close()
	deadline, deadlineIsSet := ctx.Deadline()
	if deadlineIsSet {
		err = conn.SetDeadline(deadline)
		if err != nil {
			return "", err
		}
	}

	raddr := remoteAddr.AddrPort()
	n, err := conn.WriteToUDPAddrPort(buf, raddr)
	if err != nil {
		return "", err
	}
	if n != len(buf) {
		return "", errWrite
	}
	mtrcs.reqsSent.Inc()

	numRetries := 0
	for {
		buf = buf[:cap(buf)]
		n, srcAddr, err := conn.ReadFromUDPAddrPort(buf)
		if err != nil {
			return "", err
		}
		buf = buf[:n]

		if compareAddrs(srcAddr.Addr(), raddr.Addr()) != 0 || srcAddr.Port() != raddr.Port() {
			if numRetries != maxNumRetries {
				log.Info("received packet from unexpected source", zap.Stringer("from", srcAddr))
				numRetries++
				continue
			}
			return "", errUnexpectedPacketSource
		}

		var resp cmdproto.Response
		err = cmdproto.DecodeResponse(&resp, buf)
		if err != nil {
			return "", err
		}
		mtrcs.respsAccepted.Inc()

		log.Debug("received response",
			zap.Stringer("from", srcAddr),
			zap.String("kind", resp.Kind),
			zap.String("text", resp.Text),
		)

		if !resp.OK() {
			return "", &clockerr.Error{
				Kind: clockerr.ParseKind(resp.Kind),
				Msg:  resp.Text,
			}
		}
		return resp.Text, nil
	}
}
