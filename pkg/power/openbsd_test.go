package power

import (
	"context"
	"errors"
	"testing"
)

func TestAPMDischarging(t *testing.T) {
	r, err := parseAPM("3 76 124 0\n", "1")
	if err != nil {
		t.Fatalf("parseAPM returned error: %v", err)
	}
	if r.BatteryCount != 1 {
		t.Fatalf("BatteryCount = %d, want 1", r.BatteryCount)
	}
	if *r.Percent != 76 {
		t.Errorf("Percent = %v, want 76", *r.Percent)
	}
	if r.AC == nil || *r.AC {
		t.Error("AC should be false for flag 0")
	}
	if *r.Charging {
		t.Error("Charging should be false when raw0 does not start with 2")
	}
	if *r.Remaining != 124*60 {
		t.Errorf("Remaining = %v, want %v", *r.Remaining, 124*60)
	}
}

func TestAPMNoBatteryShortCircuits(t *testing.T) {
	// Status 4 wins regardless of the other three tokens.
	r, err := parseAPM("4 99 unknown 1\n", "2 (charging)")
	if err != nil {
		t.Fatalf("parseAPM returned error: %v", err)
	}
	if r.BatteryCount != 0 {
		t.Fatalf("BatteryCount = %d, want 0", r.BatteryCount)
	}
	if *r.AC || *r.Charging || *r.Percent != 0 || *r.Remaining != 0 {
		t.Fatalf("no-battery report not zeroed: %+v", r)
	}
}

func TestAPMChargingFromRawSensor(t *testing.T) {
	// apm's own charging flag is not trusted; the raw acpi sensor is.
	r, err := parseAPM("2 40 unknown 1\n", "2 (battery charging)")
	if err != nil {
		t.Fatalf("parseAPM returned error: %v", err)
	}
	if !*r.Charging {
		t.Error("raw0 starting with 2 should mean charging")
	}
	if r.AC == nil || !*r.AC {
		t.Error("AC should be true for flag 1")
	}
	if *r.Remaining != UnknownDuration {
		t.Errorf("Remaining = %v, want %v", *r.Remaining, UnknownDuration)
	}
}

func TestAPMUnknownACFlag(t *testing.T) {
	r, err := parseAPM("3 50 90 255\n", "")
	if err != nil {
		t.Fatalf("parseAPM returned error: %v", err)
	}
	if r.AC != nil {
		t.Error("AC should be unknown for a flag that is neither 0 nor 1")
	}
}

func TestAPMMalformedOutput(t *testing.T) {
	for _, out := range []string{"", "1 2 3", "1 2 3 4 5", "a b c d"} {
		if _, err := parseAPM(out, ""); !errors.Is(err, ErrBackendUnavailable) {
			t.Errorf("parseAPM(%q) should be ErrBackendUnavailable, got %v", out, err)
		}
	}
}

func TestAPMCommandFailure(t *testing.T) {
	b := &APMBackend{
		run: func(_ context.Context, _ string, _ ...string) ([]byte, error) {
			return nil, errors.New("exit status 1")
		},
	}
	if _, err := b.Query(context.Background()); !errors.Is(err, ErrBackendUnavailable) {
		t.Fatalf("expected ErrBackendUnavailable, got %v", err)
	}
}

func TestAPMQueryUsesInjectedRunner(t *testing.T) {
	b := &APMBackend{
		run: func(_ context.Context, name string, _ ...string) ([]byte, error) {
			if name == "/usr/sbin/apm" {
				return []byte("3 55 1.5 1\n"), nil
			}
			return []byte("hw.sensors.acpibat0.raw0=2 (battery charging), OK\n"), nil
		},
	}

	r, err := b.Query(context.Background())
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if *r.Percent != 55 {
		t.Errorf("Percent = %v, want 55", *r.Percent)
	}
	if !*r.Charging {
		t.Error("Charging should come from the sysctl value")
	}
	if *r.Remaining != 1.5*60 {
		t.Errorf("Remaining = %v, want 90", *r.Remaining)
	}
}

func TestSysctlValue(t *testing.T) {
	if got := sysctlValue("hw.sensors.acpibat0.raw0=2 (battery charging), OK\n"); got != "2 (battery charging), OK" {
		t.Errorf("sysctlValue = %q", got)
	}
	if got := sysctlValue("garbage\n"); got != "" {
		t.Errorf("sysctlValue on garbage = %q, want empty", got)
	}
}
