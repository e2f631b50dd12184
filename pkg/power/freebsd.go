package power

import (
	"context"
	"strconv"
	"strings"

	pkgerrors "github.com/pkg/errors"

	"github.com/battray/battray/pkg/utils/ptr"
)

// ACPIConfBackend shells out to acpiconf(8) and parses its
// colon-delimited report. Works at least for FreeBSD 8 and newer.
type ACPIConfBackend struct {
	run runCommand
}

func NewACPIConfBackend() *ACPIConfBackend {
	return &ACPIConfBackend{run: runCmd}
}

func (b *ACPIConfBackend) Name() string { return "acpiconf" }

func (b *ACPIConfBackend) Query(ctx context.Context) (*Report, error) {
	out, err := b.run(ctx, "acpiconf", "-i0")
	if err != nil {
		return nil, pkgerrors.Wrapf(ErrBackendUnavailable, "acpiconf -i0: %v", err)
	}
	return parseACPIConf(string(out))
}

func parseACPIConf(out string) (*Report, error) {
	var (
		percent    *float64
		remaining  *float64
		charging   bool
		notPresent bool
		ac         *bool
	)

	for _, line := range strings.Split(out, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "Remaining capacity":
			if v, err := strconv.Atoi(strings.TrimSuffix(value, "%")); err == nil {
				percent = ptr.To(float64(v))
			}
		case "Remaining time":
			if value == "unknown" {
				remaining = ptr.To(float64(UnknownDuration))
			} else if m, err := parseACPITime(value); err == nil {
				remaining = ptr.To(m)
			}
		case "State":
			charging = value == "charging"
			notPresent = value == "not present"
		case "Present rate":
			// A zero draw rate means we run off the wall.
			ac = ptr.To(value == "0 mW" || strings.HasSuffix(value, "(0 mW)"))
		}
	}

	if percent == nil {
		return nil, pkgerrors.Wrap(ErrBackendUnavailable, "acpiconf output had no battery fields")
	}

	if notPresent {
		ac = nil
	}
	// Charging implies mains power, overriding a possibly stale rate
	// reading.
	if charging {
		ac = ptr.To(true)
	}

	return &Report{
		BatteryCount: 1,
		AC:           ac,
		Charging:     ptr.To(charging),
		Percent:      percent,
		Remaining:    remaining,
	}, nil
}

// parseACPITime converts acpiconf's "H:MM" remaining-time token into
// minutes with the fixed positional rule this parser has always used:
// the first digit is hours, the third digit is tens of minutes. It is
// not a general time parser.
func parseACPITime(s string) (float64, error) {
	if len(s) < 3 || !isDigit(s[0]) || !isDigit(s[2]) {
		return 0, pkgerrors.Errorf("unexpected time token %q", s)
	}
	return float64(int(s[0]-'0')*60 + int(s[2]-'0')*10), nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
