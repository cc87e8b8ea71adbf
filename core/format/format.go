package format

import (
	"fmt"

	"go.uber.org/zap"

	"example.com/clockservice/base/clockerr"
	"example.com/clockservice/base/timemath"

	"example.com/clockservice/core/engine"
	"example.com/clockservice/core/zone"
)

// DefaultTemplate is the template used when none is given: weekday,
// month, day, time of day, zone label and year, in this order.
const DefaultTemplate = "%a %b %d %X %Z %Y"

type Formatter struct {
	Log       *zap.Logger
	Guard     *zone.Guard
	Converter engine.Converter
	Expander  engine.Expander
}

// Format renders epoch in the zone selected by choice. An empty template
// yields an empty result without consulting any engine.
func (f *Formatter) Format(epoch int64, choice zone.Choice, template string) (string, error) {
	if template == "" {
		return "", nil
	}

	useGMT := choice == zone.GMT
	limit := timemath.EstimateExpansion(template) - 1

	var res string
	err := f.Guard.Do(choice, func(_ *zone.Section) error {
		t := f.Converter.ToBrokenDown(epoch, useGMT)
		s, err := f.Expander.ExpandTemplate(template, t, useGMT)
		if err != nil {
			return clockerr.Format(template, err)
		}
		if s == "" {
			return clockerr.Format(template, nil)
		}
		if len(s) > limit {
			return clockerr.EngineContract(template,
				fmt.Errorf("expansion of %d bytes exceeds estimate of %d bytes", len(s), limit))
		}
		res = s
		return nil
	})
	if err != nil {
		if f.Log != nil {
			f.Log.Debug("failed to format clock value",
				zap.Int64("epoch", epoch),
				zap.Stringer("zone", choice),
				zap.String("template", template),
				zap.Error(err))
		}
		return "", err
	}
	return res, nil
}
