package power

import (
	"context"

	"github.com/distatus/battery"
	pkgerrors "github.com/pkg/errors"

	"github.com/battray/battray/pkg/utils/ptr"
)

// PortableBackend serves the platforms without a dedicated backend
// (macOS, Windows) through the distatus/battery library.
type PortableBackend struct {
	getAll func() ([]*battery.Battery, error)
}

func NewPortableBackend() *PortableBackend {
	return &PortableBackend{getAll: battery.GetAll}
}

func (b *PortableBackend) Name() string { return "portable" }

func (b *PortableBackend) Query(_ context.Context) (*Report, error) {
	batteries, err := b.getAll()
	if err != nil {
		// Partial errors still come with usable per-battery data.
		if _, partial := err.(battery.Errors); !partial {
			return nil, pkgerrors.Wrapf(ErrBackendUnavailable, "battery read: %v", err)
		}
	}

	var samples []Sample
	var sawCharging, sawFull, sawDischarging bool
	for _, bat := range batteries {
		// Skip ghost batteries with no capacity, seen on some Macs.
		if bat == nil || bat.Full == 0 {
			continue
		}

		samples = append(samples, Sample{
			Status:    bat.State.String(),
			Charging:  bat.State == battery.Charging,
			Voltage:   bat.Voltage,
			Max:       bat.Full,
			MaxDesign: bat.Design,
			Now:       bat.Current,
			Rate:      bat.ChargeRate,
		})

		switch bat.State {
		case battery.Charging:
			sawCharging = true
		case battery.Full:
			sawFull = true
		case battery.Discharging:
			sawDischarging = true
		}
	}

	if len(samples) == 0 {
		return NoBattery(), nil
	}

	var ac *bool
	if sawCharging || sawFull {
		ac = ptr.To(true)
	} else if sawDischarging {
		ac = ptr.To(false)
	}

	return Aggregate(samples, ac), nil
}
