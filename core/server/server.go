// Package server serves clock commands over UDP.
package server

import (
	"go.uber.org/zap"

	"example.com/clockservice/base/clockerr"

	"example.com/clockservice/core/clock"

	"example.com/clockservice/net/cmdproto"
)

type Dispatcher interface {
	Dispatch(args ...string) (clock.Result, error)
}

var _ Dispatcher = (*clock.Dispatcher)(nil)

// handleRequest decodes req, runs the command and encodes the outcome
// into resp. It reports whether req was a well-formed request.
func handleRequest(log *zap.Logger, d Dispatcher, req []byte, resp *[]byte) bool {
	words, err := cmdproto.DecodeRequest(req)
	if err != nil {
		log.Info("failed to decode request", zap.Error(err))
		cmdproto.EncodeResponse(resp, cmdproto.Response{
			Kind: clockerr.KindUsage.String(),
			Text: err.Error(),
		})
		return false
	}
	res, err := d.Dispatch(words...)
	if err != nil {
		cmdproto.EncodeResponse(resp, cmdproto.Response{
			Kind: clockerr.KindOf(err).String(),
			Text: err.Error(),
		})
		return true
	}
	cmdproto.EncodeResponse(resp, cmdproto.Response{Text: res.String()})
	return true
}
