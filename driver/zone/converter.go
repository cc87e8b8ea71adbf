package zone

import (
	"time"

	"example.com/clockservice/core/engine"
)

// Converter breaks epoch seconds down in the ambient zone. If PerCallZone
// is set, GMT requests are converted in GMT directly instead of relying on
// an ambient override.
type Converter struct {
	Zone        *Env
	PerCallZone bool
}

var _ engine.Converter = (*Converter)(nil)

func (c *Converter) ToBrokenDown(epoch int64, useGMT bool) engine.BrokenDownTime {
	var loc *time.Location
	if useGMT && c.PerCallZone {
		loc = gmt
	} else {
		loc = c.Zone.Location()
	}
	return engine.BrokenDown(time.Unix(epoch, 0).In(loc))
}
