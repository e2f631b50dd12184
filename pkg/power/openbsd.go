package power

import (
	"context"
	"strconv"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/battray/battray/pkg/utils/ptr"
)

// APMBackend runs apm(8) for the basic battery fields and
// cross-checks the charging flag against the raw ACPI sensor, because
// apm's own charging flag is not always reliable.
type APMBackend struct {
	run runCommand
}

func NewAPMBackend() *APMBackend {
	return &APMBackend{run: runCmd}
}

func (b *APMBackend) Name() string { return "apm" }

func (b *APMBackend) Query(ctx context.Context) (*Report, error) {
	out, err := b.run(ctx, "/usr/sbin/apm", "-balm")
	if err != nil {
		return nil, pkgerrors.Wrapf(ErrBackendUnavailable, "apm -balm: %v", err)
	}

	raw0 := ""
	if sout, err := b.run(ctx, "/sbin/sysctl", "hw.sensors.acpibat0.raw0"); err == nil {
		raw0 = sysctlValue(string(sout))
	} else {
		logrus.Debugf("sysctl hw.sensors.acpibat0.raw0 failed: %v", err)
	}

	return parseAPM(string(out), raw0)
}

// parseAPM expects the four whitespace-separated tokens of apm -balm:
// battery status code, percent, lifetime, AC flag.
func parseAPM(out, raw0 string) (*Report, error) {
	fields := strings.Fields(out)
	if len(fields) != 4 {
		return nil, pkgerrors.Wrapf(ErrBackendUnavailable, "unexpected apm output %q", strings.TrimSpace(out))
	}
	bstat, pct, life, acFlag := fields[0], fields[1], fields[2], fields[3]

	// Status 4 means no battery is installed; nothing else to parse.
	if bstat == "4" {
		return NoBattery(), nil
	}

	var ac *bool
	switch acFlag {
	case "0":
		ac = ptr.To(false)
	case "1":
		ac = ptr.To(true)
	}

	percent, err := strconv.ParseFloat(pct, 64)
	if err != nil {
		return nil, pkgerrors.Wrapf(ErrBackendUnavailable, "unparsable percent %q", pct)
	}

	remaining := float64(UnknownDuration)
	if life != "unknown" {
		v, err := strconv.ParseFloat(life, 64)
		if err != nil {
			return nil, pkgerrors.Wrapf(ErrBackendUnavailable, "unparsable lifetime %q", life)
		}
		remaining = v * 60
	}

	return &Report{
		BatteryCount: 1,
		AC:           ac,
		Charging:     ptr.To(strings.HasPrefix(raw0, "2")),
		Percent:      ptr.To(percent),
		Remaining:    ptr.To(remaining),
	}, nil
}

func sysctlValue(out string) string {
	_, value, ok := strings.Cut(out, "=")
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}
