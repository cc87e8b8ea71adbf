package server_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"example.com/clockservice/base/clockerr"

	"example.com/clockservice/core/client"
	"example.com/clockservice/core/clock"
	"example.com/clockservice/core/server"
)

type fakeDispatcher struct{}

func (fakeDispatcher) Dispatch(args ...string) (clock.Result, error) {
	switch args[0] {
	case "seconds":
		return clock.Result{Int: 42}, nil
	case "format":
		return clock.Result{Text: strings.Join(args[1:], "|"), IsText: true}, nil
	case "repeat":
		return clock.Result{Text: strings.Repeat(args[1], 1000), IsText: true}, nil
	case "scan":
		return clock.Result{}, clockerr.Scan(args[1], errors.New("no match"))
	default:
		return clock.Result{}, clockerr.Usage("bad option %q", args[0])
	}
}

func TestHandleRequest(t *testing.T) {
	tests := []struct {
		req  string
		resp string
		ok   bool
	}{
		{"seconds", "ok 42", true},
		{`format 0 -format '%Y %m'`, "ok 0|-format|%Y %m", true},
		{`format 0 -format ''`, "ok 0|-format|", true},
		{"scan 'not a date'", `error scan unable to convert date-time string "not a date"`, true},
		{"bogus", `error usage bad option "bogus"`, true},
		{"repeat ab", "ok " + strings.Repeat("ab", 1000), true},
		{"repeat abc", "error engine result exceeds packet size", true},
		{"", "error usage empty request", false},
		{`format 0 -format "%Y`, "error usage ", false},
	}
	for _, tt := range tests {
		resp, ok := server.HandleRequest(fakeDispatcher{}, []byte(tt.req))
		if ok != tt.ok || !strings.HasPrefix(string(resp), tt.resp) {
			t.Errorf("handleRequest(%q) = (%q, %v), want (%q, %v)", tt.req, resp, ok, tt.resp, tt.ok)
		}
	}
}

func TestIPServer(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for _, numGoroutine := range []int{1, 4} {
		addr, err := server.StartIPServer(ctx, zap.NewNop(), "127.0.0.1:0", numGoroutine, fakeDispatcher{})
		if err != nil {
			t.Fatalf("StartIPServer failed: %v", err)
		}

		for i := 0; i != 8; i++ {
			reqCtx, reqCancel := context.WithTimeout(ctx, 2*time.Second)
			res, err := client.Do(reqCtx, nil, addr, "seconds")
			reqCancel()
			if err != nil || res != "42" {
				t.Errorf("Do(seconds) = (%q, %v), want (%q, nil)", res, err, "42")
			}
		}

		reqCtx, reqCancel := context.WithTimeout(ctx, 2*time.Second)
		_, err = client.Do(reqCtx, nil, addr, "bogus")
		reqCancel()
		if !errors.Is(err, clockerr.ErrUsage) || err.Error() != `bad option "bogus"` {
			t.Errorf("Do(bogus) error = %v, want usage error", err)
		}
	}
}
