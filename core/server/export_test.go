package server

import (
	"go.uber.org/zap"
)

func HandleRequest(d Dispatcher, req []byte) ([]byte, bool) {
	var resp []byte
	ok := handleRequest(zap.NewNop(), d, req, &resp)
	return resp, ok
}
