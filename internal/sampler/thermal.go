package sampler

import (
	"github.com/shirou/gopsutil/v3/host"

	"perfoverlay/internal/model"
)

// Thresholds used when a sensor does not publish its own, in °C.
const (
	defaultHighTemp     = 80.0
	defaultCriticalTemp = 95.0
	fairMargin          = 10.0
)

// sensorThermal maps hardware temperature sensors onto thermal states. The
// hottest sensor relative to its own limits decides the state.
type sensorThermal struct {
	read func() ([]host.TemperatureStat, error)
}

func NewThermalSource() ThermalSource {
	return &sensorThermal{read: host.SensorsTemperatures}
}

func (s *sensorThermal) ThermalState() model.ThermalState {
	// gopsutil returns readable sensors alongside a warning error, so only an
	// empty result counts as unsupported
	temps, _ := s.read()
	return classifyTemperatures(temps)
}

func classifyTemperatures(temps []host.TemperatureStat) model.ThermalState {
	state := model.ThermalUnsupported
	for _, t := range temps {
		if t.Temperature <= 0 {
			continue
		}
		if level := classifyTemperature(t); level > state {
			state = level
		}
	}
	return state
}

func classifyTemperature(t host.TemperatureStat) model.ThermalState {
	high, critical := t.High, t.Critical
	if high <= 0 {
		high = defaultHighTemp
	}
	if critical <= 0 || critical < high {
		critical = defaultCriticalTemp
		if critical < high {
			critical = high
		}
	}

	switch {
	case t.Temperature >= critical:
		return model.ThermalCritical
	case t.Temperature >= high:
		return model.ThermalSerious
	case t.Temperature >= high-fairMargin:
		return model.ThermalFair
	default:
		return model.ThermalNominal
	}
}
