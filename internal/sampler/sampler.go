// Package sampler reads CPU, memory, thermal and battery figures for the
// current process from the operating system.
//
// Every query degrades instead of failing: a monitoring tool must never be
// the reason its host misbehaves.
package sampler

//go:generate go run go.uber.org/mock/mockgen -package sampler -destination mock_test.go perfoverlay/internal/sampler ThreadSource,ThreadList,MemorySource

import (
	"github.com/sirupsen/logrus"

	"perfoverlay/internal/model"
)

// ThreadInfo is the scheduling state of one thread.
type ThreadInfo struct {
	ID int32
	// CPUUsage is the fraction of one core used by the thread.
	CPUUsage float64
	Idle     bool
}

// ThreadList is a snapshot of the process threads. It may hold OS resources
// and must be released once read.
type ThreadList interface {
	Len() int
	Info(i int) (ThreadInfo, error)
	Release()
}

type ThreadSource interface {
	Threads() (ThreadList, error)
}

type MemorySource interface {
	// Footprint is the resident memory of the process in bytes.
	Footprint() (uint64, error)
	// TotalPhysical is the installed physical memory in bytes.
	TotalPhysical() (uint64, error)
}

type ThermalSource interface {
	ThermalState() model.ThermalState
}

type BatterySource interface {
	// BatteryLevel is the charge in percent, or -1 when unknown.
	BatteryLevel() float64
}

type Sampler struct {
	threads ThreadSource
	memory  MemorySource
	thermal ThermalSource
	battery BatterySource
	log     *logrus.Entry
}

type Option func(*Sampler)

func WithThermal(src ThermalSource) Option {
	return func(s *Sampler) { s.thermal = src }
}

func WithBattery(src BatterySource) Option {
	return func(s *Sampler) { s.battery = src }
}

func WithLogger(log *logrus.Entry) Option {
	return func(s *Sampler) { s.log = log }
}

func New(threads ThreadSource, memory MemorySource, opts ...Option) *Sampler {
	s := &Sampler{
		threads: threads,
		memory:  memory,
		log:     logrus.WithField("component", "sampler"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SampleCPU returns the summed CPU usage, in percent, of every thread that is
// not idle. It may exceed 100 on multi-core use. A failed enumeration yields
// 0; a failure part way through yields the sum gathered so far.
func (s *Sampler) SampleCPU() float64 {
	if s.threads == nil {
		return 0
	}

	list, err := s.threads.Threads()
	if err != nil {
		s.log.WithError(err).Debug("thread enumeration failed")
		return 0
	}
	if list == nil {
		return 0
	}
	defer list.Release()

	var total float64
	for i := 0; i < list.Len(); i++ {
		info, err := list.Info(i)
		if err != nil {
			s.log.WithError(err).WithField("index", i).Debug("thread info failed, returning partial sum")
			return total
		}
		if info.Idle {
			continue
		}
		total += info.CPUUsage * 100
	}
	return total
}

// SampleMemory returns the process footprint against installed memory. Used
// is 0 when the footprint cannot be read.
func (s *Sampler) SampleMemory() model.MemoryUsage {
	if s.memory == nil {
		return model.MemoryUsage{}
	}

	var usage model.MemoryUsage
	used, err := s.memory.Footprint()
	if err != nil {
		s.log.WithError(err).Debug("memory footprint query failed")
		used = 0
	}
	usage.Used = used

	total, err := s.memory.TotalPhysical()
	if err != nil {
		s.log.WithError(err).Debug("physical memory query failed")
	}
	usage.Total = total
	return usage
}

func (s *Sampler) ThermalState() model.ThermalState {
	if s.thermal == nil {
		return model.ThermalUnsupported
	}
	return s.thermal.ThermalState()
}

func (s *Sampler) BatteryLevel() float64 {
	if s.battery == nil {
		return -1
	}
	return s.battery.BatteryLevel()
}
