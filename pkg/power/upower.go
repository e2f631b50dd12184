package power

import (
	"context"

	"github.com/godbus/dbus/v5"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/battray/battray/pkg/utils/ptr"
)

const (
	upowerService     = "org.freedesktop.UPower"
	upowerDeviceIface = "org.freedesktop.UPower.Device"

	upowerLinePowerPath = dbus.ObjectPath("/org/freedesktop/UPower/devices/line_power_AC")
	upowerDisplayPath   = dbus.ObjectPath("/org/freedesktop/UPower/devices/DisplayDevice")
)

// Device states per org.freedesktop.UPower.Device.
const (
	upowerStateCharging     = 1
	upowerStateDischarging  = 2
	upowerStateFullyCharged = 4
)

// UPowerBackend asks the UPower daemon, over the system D-Bus, for
// the aggregated "display device" battery state.
type UPowerBackend struct{}

func NewUPowerBackend() *UPowerBackend {
	return &UPowerBackend{}
}

func (b *UPowerBackend) Name() string { return "upower" }

func (b *UPowerBackend) Query(ctx context.Context) (*Report, error) {
	conn, err := dbus.SystemBus()
	if err != nil {
		return nil, pkgerrors.Wrapf(ErrBackendUnavailable,
			"cannot connect to the system D-Bus (is dbus installed and running?): %v", err)
	}

	// Poke the line-power device first so UPower refreshes cached
	// values before we read them.
	lp := conn.Object(upowerService, upowerLinePowerPath)
	if call := lp.CallWithContext(ctx, upowerDeviceIface+".Refresh", 0); call.Err != nil {
		logrus.Debugf("upower refresh failed: %v", call.Err)
	}

	var props map[string]dbus.Variant
	disp := conn.Object(upowerService, upowerDisplayPath)
	err = disp.CallWithContext(ctx, "org.freedesktop.DBus.Properties.GetAll", 0, upowerDeviceIface).Store(&props)
	if err != nil {
		return nil, pkgerrors.Wrapf(ErrBackendUnavailable,
			"cannot read %s (is upowerd running?): %v", upowerDisplayPath, err)
	}

	return reportFromUPower(
		variantFloat(props["Percentage"]),
		variantUint(props["State"]),
		variantInt(props["TimeToFull"]),
		variantInt(props["TimeToEmpty"]),
	), nil
}

// reportFromUPower maps the DisplayDevice properties to a Report. The
// daemon already resolved battery presence, so the count is always 1.
func reportFromUPower(percent float64, state uint32, timeToFull, timeToEmpty int64) *Report {
	ac, charging := upowerPower(state)

	remaining := float64(timeToEmpty) / 60
	if charging {
		remaining = float64(timeToFull) / 60
	}

	return &Report{
		BatteryCount: 1,
		AC:           ac,
		Charging:     ptr.To(charging),
		Percent:      ptr.To(percent),
		Remaining:    ptr.To(remaining),
	}
}

// upowerPower decodes the Device state code. Anything outside the
// three codes we understand leaves the AC state unknown.
func upowerPower(state uint32) (ac *bool, charging bool) {
	switch state {
	case upowerStateCharging:
		return ptr.To(true), true
	case upowerStateDischarging:
		return ptr.To(false), false
	case upowerStateFullyCharged:
		return ptr.To(true), false
	default:
		return nil, false
	}
}

func variantFloat(v dbus.Variant) float64 {
	switch val := v.Value().(type) {
	case float64:
		return val
	case float32:
		return float64(val)
	default:
		return 0
	}
}

func variantUint(v dbus.Variant) uint32 {
	switch val := v.Value().(type) {
	case uint32:
		return val
	case int32:
		return uint32(val)
	case uint64:
		return uint32(val)
	default:
		return 0
	}
}

func variantInt(v dbus.Variant) int64 {
	switch val := v.Value().(type) {
	case int64:
		return val
	case int32:
		return int64(val)
	case uint64:
		return int64(val)
	default:
		return 0
	}
}
