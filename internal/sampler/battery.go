package sampler

import (
	"errors"

	"github.com/distatus/battery"
)

// systemBattery reports the combined charge of every battery the OS exposes.
// Machines without a battery, or where the query fails, report -1.
type systemBattery struct {
	getAll func() ([]*battery.Battery, error)
}

func NewBatterySource() BatterySource {
	return &systemBattery{getAll: battery.GetAll}
}

func (b *systemBattery) BatteryLevel() float64 {
	batteries, err := b.getAll()
	var perBattery battery.Errors
	if err != nil && !errors.As(err, &perBattery) {
		return -1
	}

	var current, full float64
	for i, bat := range batteries {
		if bat == nil || !usable(perBattery, i) || bat.Full <= 0 {
			continue
		}
		current += bat.Current
		full += bat.Full
	}
	if full <= 0 {
		return -1
	}

	level := current / full * 100
	switch {
	case level < 0:
		return 0
	case level > 100:
		return 100
	}
	return level
}

// usable reports whether battery i was read well enough to give a charge.
func usable(errs battery.Errors, i int) bool {
	if i >= len(errs) || errs[i] == nil {
		return true
	}
	var partial battery.ErrPartial
	if !errors.As(errs[i], &partial) {
		return false
	}
	return partial.Current == nil && partial.Full == nil
}
