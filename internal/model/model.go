package model

import "fmt"

// ThermalState is the coarse heat level reported by the device.
type ThermalState int

const (
	ThermalUnsupported ThermalState = iota
	ThermalNominal
	ThermalFair
	ThermalSerious
	ThermalCritical
)

var thermalNames = [...]string{
	ThermalUnsupported: "unsupported",
	ThermalNominal:     "nominal",
	ThermalFair:        "fair",
	ThermalSerious:     "serious",
	ThermalCritical:    "critical",
}

func (s ThermalState) String() string {
	if s < 0 || int(s) >= len(thermalNames) {
		return thermalNames[ThermalUnsupported]
	}
	return thermalNames[s]
}

func (s ThermalState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *ThermalState) UnmarshalText(text []byte) error {
	for i, name := range thermalNames {
		if name == string(text) {
			*s = ThermalState(i)
			return nil
		}
	}
	return fmt.Errorf("unknown thermal state %q", text)
}

type MemoryUsage struct {
	Used  uint64 `json:"used"`
	Total uint64 `json:"total"`
}

// PerformanceReport is the point-in-time snapshot without running statistics.
type PerformanceReport struct {
	CPUUsage    float64     `json:"cpu_usage"`
	FPS         int         `json:"fps"`
	MemoryUsage MemoryUsage `json:"memory_usage"`
}

type CPUReport struct {
	Usage   float64 `json:"usage"`
	Average float64 `json:"average"`
	Max     float64 `json:"max"`
	Min     float64 `json:"min"`
}

type MemoryReport struct {
	Usage   MemoryUsage `json:"usage"`
	Average float64     `json:"average"`
	Max     float64     `json:"max"`
	Min     float64     `json:"min"`
}

type ThermalReport struct {
	State ThermalState `json:"state"`
}

// PerformanceReportV2 extends the snapshot with running aggregates and the
// thermal state.
type PerformanceReportV2 struct {
	CPUReport     CPUReport     `json:"cpu_report"`
	FPS           int           `json:"fps"`
	MemoryReport  MemoryReport  `json:"memory_report"`
	ThermalReport ThermalReport `json:"thermal_report"`
}
