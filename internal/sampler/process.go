package sampler

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// NewProcess returns a Sampler bound to the calling process with the
// platform's thread, memory, thermal and battery sources.
func NewProcess(log *logrus.Entry) (*Sampler, error) {
	if log == nil {
		log = logrus.WithField("component", "sampler")
	}
	pid := int32(os.Getpid())

	threads, err := NewThreadSource(pid)
	if err != nil {
		return nil, fmt.Errorf("thread source: %w", err)
	}
	memory, err := NewMemorySource(pid)
	if err != nil {
		return nil, fmt.Errorf("memory source: %w", err)
	}

	return New(threads, memory,
		WithThermal(NewThermalSource()),
		WithBattery(NewBatterySource()),
		WithLogger(log),
	), nil
}
