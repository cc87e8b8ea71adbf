package scan

import (
	"go.uber.org/zap"

	"example.com/clockservice/base/clockerr"

	"example.com/clockservice/core/engine"
	"example.com/clockservice/core/timebase"
	"example.com/clockservice/core/zone"
)

type Request struct {
	Text string
	// Base is the reference time for relative and partial dates. If nil,
	// the current wall clock seconds are used.
	Base *int64
	Zone zone.Choice
}

type Scanner struct {
	Log    *zap.Logger
	Guard  *zone.Guard
	Parser engine.DateParser
}

func (sc *Scanner) Scan(req Request) (int64, error) {
	var base int64
	if req.Base != nil {
		base = *req.Base
	} else {
		base = timebase.Seconds()
	}

	var res int64
	err := sc.Guard.Do(req.Zone, func(s *zone.Section) error {
		offset := s.Offset(base)
		v, err := sc.Parser.ParseDateString(req.Text, base, offset)
		if err != nil {
			return clockerr.Scan(req.Text, err)
		}
		res = v
		return nil
	})
	if err != nil {
		if sc.Log != nil {
			sc.Log.Debug("failed to scan date-time string",
				zap.String("text", req.Text),
				zap.Int64("base", base),
				zap.Stringer("zone", req.Zone),
				zap.Error(err))
		}
		return 0, err
	}
	return res, nil
}
