package power

import (
	"github.com/pkg/errors"

	"github.com/battray/battray/pkg/utils/ptr"
)

// Sample holds one physical battery's raw counters in a common energy
// unit, before aggregation. Samples are built fresh for every query
// and discarded after folding into a Report.
type Sample struct {
	Status   string
	Charging bool

	// Voltage in millivolts, used to convert charge-based counters.
	Voltage float64

	// Max, MaxDesign, Now and Rate are energy-equivalent units
	// (milliwatt-hours and milliwatts for sysfs energy counters).
	Max       float64
	MaxDesign float64
	Now       float64
	Rate      float64
}

// Percent is the remaining charge relative to the current full
// capacity.
func (s Sample) Percent() float64 {
	if s.Max == 0 {
		return 0
	}
	return s.Now / s.Max * 100
}

// WearLevel is the current full capacity relative to the design
// capacity. Diagnostics only, not part of the Report.
func (s Sample) WearLevel() float64 {
	if s.MaxDesign == 0 {
		return 0
	}
	return s.Max / s.MaxDesign * 100
}

// TimeToEmptyOrFull is the time until the battery is drained, or full
// when it is charging. It fails when the rate is unknown; callers
// treat that battery's contribution as indeterminate.
func (s Sample) TimeToEmptyOrFull() (float64, error) {
	if s.Rate == 0 {
		return 0, errors.New("rate is zero or unreadable")
	}
	if s.Charging {
		return 3600 * (s.Max - s.Now) / s.Rate, nil
	}
	return 3600 * s.Now / s.Rate, nil
}

// Aggregate folds per-battery samples into a single logical report:
// percent is the arithmetic mean, remaining time is the sum, and
// charging is true if any battery is charging. Batteries whose rate is
// unknown simply contribute nothing to the remaining time.
func Aggregate(samples []Sample, ac *bool) *Report {
	if len(samples) == 0 {
		return NoBattery()
	}

	var percent, remaining float64
	charging := false
	for _, s := range samples {
		percent += s.Percent()
		if ttl, err := s.TimeToEmptyOrFull(); err == nil {
			remaining += ttl
		}
		charging = charging || s.Charging
	}
	percent /= float64(len(samples))

	return &Report{
		BatteryCount: 1,
		AC:           ac,
		Charging:     ptr.To(charging),
		Percent:      ptr.To(percent),
		Remaining:    ptr.To(remaining),
	}
}
