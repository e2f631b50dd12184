// Package power reports battery status (presence, AC connection,
// charging state, charge percentage, remaining time) by selecting and
// querying one of several OS-specific backends at runtime.
package power

import "github.com/battray/battray/pkg/utils/ptr"

// UnknownDuration is the value of Report.Remaining when the backend
// knows a battery is draining/charging but cannot tell how long it
// will take. It is distinct from Remaining being nil (field absent).
const UnknownDuration = -1

// Report is the canonical battery status produced by every backend.
// Pointer fields are nil when the backend could not determine them.
type Report struct {
	// BatteryCount is 0 or 1. Machines with multiple physical
	// batteries are folded into a single logical battery.
	BatteryCount int `json:"batteryCount"`

	// AC reports whether the machine runs on mains power.
	AC *bool `json:"ac,omitempty"`

	// Charging reports whether stored energy is increasing.
	Charging *bool `json:"charging,omitempty"`

	// Percent is the remaining charge, 0-100.
	Percent *float64 `json:"percent,omitempty"`

	// Remaining is the time to empty (discharging) or to full
	// (charging) in minutes, or UnknownDuration.
	Remaining *float64 `json:"remainingMinutes,omitempty"`
}

// NoBattery returns the report for a machine without a battery. This
// is a fully-known state, so every field is a definite zero/false
// rather than absent.
func NoBattery() *Report {
	return &Report{
		BatteryCount: 0,
		AC:           ptr.To(false),
		Charging:     ptr.To(false),
		Percent:      ptr.To(0.0),
		Remaining:    ptr.To(0.0),
	}
}
