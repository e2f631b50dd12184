package power

import (
	"math"
	"testing"

	"github.com/battray/battray/pkg/utils/ptr"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestNoBatteryReportFullyKnown(t *testing.T) {
	r := NoBattery()

	if r.BatteryCount != 0 {
		t.Fatalf("BatteryCount = %d, want 0", r.BatteryCount)
	}
	// No battery is a definite state: every field present and zeroed.
	if r.AC == nil || *r.AC {
		t.Error("AC should be a definite false")
	}
	if r.Charging == nil || *r.Charging {
		t.Error("Charging should be a definite false")
	}
	if r.Percent == nil || *r.Percent != 0 {
		t.Error("Percent should be a definite 0")
	}
	if r.Remaining == nil || *r.Remaining != 0 {
		t.Error("Remaining should be a definite 0")
	}
}

func TestAggregateSingleSampleIsIdentity(t *testing.T) {
	s := Sample{
		Charging: true,
		Max:      50000,
		Now:      20000,
		Rate:     10000,
	}

	r := Aggregate([]Sample{s}, ptr.To(true))

	if r.BatteryCount != 1 {
		t.Fatalf("BatteryCount = %d, want 1", r.BatteryCount)
	}
	if !almostEqual(*r.Percent, s.Percent()) {
		t.Errorf("Percent = %v, want %v", *r.Percent, s.Percent())
	}
	ttl, err := s.TimeToEmptyOrFull()
	if err != nil {
		t.Fatalf("TimeToEmptyOrFull returned error: %v", err)
	}
	if !almostEqual(*r.Remaining, ttl) {
		t.Errorf("Remaining = %v, want %v", *r.Remaining, ttl)
	}
	if !*r.Charging {
		t.Error("Charging should stay true")
	}
	if r.AC == nil || !*r.AC {
		t.Error("AC should stay true")
	}
}

func TestAggregateMultiBattery(t *testing.T) {
	// Percent is a plain arithmetic mean across batteries, not
	// weighted by capacity. Pinned deliberately.
	a := Sample{Max: 100, Now: 100, Rate: 10}                // 100%, ttl 36000
	b := Sample{Max: 100, Now: 50, Rate: 10, Charging: true} // 50%, ttl 18000

	r := Aggregate([]Sample{a, b}, ptr.To(false))

	if !almostEqual(*r.Percent, 75) {
		t.Errorf("Percent = %v, want 75", *r.Percent)
	}
	if !almostEqual(*r.Remaining, 54000) {
		t.Errorf("Remaining = %v, want 54000 (summed)", *r.Remaining)
	}
	if !*r.Charging {
		t.Error("Charging should be true when any battery charges")
	}
}

func TestAggregateZeroRateSkipsRemaining(t *testing.T) {
	a := Sample{Max: 100, Now: 80, Rate: 0}
	b := Sample{Max: 100, Now: 40, Rate: 20}

	r := Aggregate([]Sample{a, b}, nil)

	// a's contribution is indeterminate, but the query still succeeds
	// and a's percent still counts.
	if !almostEqual(*r.Percent, 60) {
		t.Errorf("Percent = %v, want 60", *r.Percent)
	}
	if !almostEqual(*r.Remaining, 3600*40/20) {
		t.Errorf("Remaining = %v, want %v", *r.Remaining, 3600.0*40/20)
	}
	if r.AC != nil {
		t.Error("AC should pass through as unknown")
	}
}

func TestAggregateEmptyIsNoBattery(t *testing.T) {
	r := Aggregate(nil, ptr.To(true))
	if r.BatteryCount != 0 {
		t.Fatalf("BatteryCount = %d, want 0", r.BatteryCount)
	}
}

func TestSampleWearLevel(t *testing.T) {
	s := Sample{Max: 40000, MaxDesign: 50000}
	if !almostEqual(s.WearLevel(), 80) {
		t.Errorf("WearLevel = %v, want 80", s.WearLevel())
	}
	if (Sample{}).WearLevel() != 0 {
		t.Error("zero design capacity should yield wear 0")
	}
}

func TestSampleTimeToEmptyOrFull(t *testing.T) {
	discharging := Sample{Max: 100, Now: 50, Rate: 25}
	ttl, err := discharging.TimeToEmptyOrFull()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(ttl, 3600*50/25) {
		t.Errorf("discharging ttl = %v, want %v", ttl, 3600.0*50/25)
	}

	charging := Sample{Max: 100, Now: 50, Rate: 25, Charging: true}
	ttl, err = charging.TimeToEmptyOrFull()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(ttl, 3600*(100-50)/25) {
		t.Errorf("charging ttl = %v, want %v", ttl, 3600.0*(100-50)/25)
	}

	if _, err := (Sample{Max: 100, Now: 50}).TimeToEmptyOrFull(); err == nil {
		t.Error("zero rate should be an error")
	}
}
