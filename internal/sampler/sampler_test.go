package sampler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"perfoverlay/internal/model"
)

func TestSampleCPU_EnumerationFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	threads := NewMockThreadSource(ctrl)
	threads.EXPECT().Threads().Return(nil, errors.New("task_threads failed"))

	s := New(threads, nil)
	assert.Equal(t, 0.0, s.SampleCPU())
}

func TestSampleCPU_SumsBusyThreads(t *testing.T) {
	ctrl := gomock.NewController(t)
	threads := NewMockThreadSource(ctrl)
	list := NewMockThreadList(ctrl)

	threads.EXPECT().Threads().Return(list, nil)
	list.EXPECT().Len().Return(3).AnyTimes()
	list.EXPECT().Info(0).Return(ThreadInfo{ID: 1, CPUUsage: 0.5}, nil)
	list.EXPECT().Info(1).Return(ThreadInfo{ID: 2, CPUUsage: 0.9, Idle: true}, nil)
	list.EXPECT().Info(2).Return(ThreadInfo{ID: 3, CPUUsage: 0.75}, nil)
	list.EXPECT().Release().Times(1)

	s := New(threads, nil)
	assert.InDelta(t, 125.0, s.SampleCPU(), 1e-9)
}

func TestSampleCPU_PartialFailureReleasesList(t *testing.T) {
	ctrl := gomock.NewController(t)
	threads := NewMockThreadSource(ctrl)
	list := NewMockThreadList(ctrl)

	threads.EXPECT().Threads().Return(list, nil)
	list.EXPECT().Len().Return(3).AnyTimes()
	gomock.InOrder(
		list.EXPECT().Info(0).Return(ThreadInfo{ID: 1, CPUUsage: 0.25}, nil),
		list.EXPECT().Info(1).Return(ThreadInfo{}, errors.New("thread_info failed")),
		list.EXPECT().Release().Times(1),
	)

	s := New(threads, nil)
	assert.InDelta(t, 25.0, s.SampleCPU(), 1e-9)
}

func TestSampleCPU_NoSource(t *testing.T) {
	assert.Equal(t, 0.0, New(nil, nil).SampleCPU())
}

func TestSampleMemory(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mem := NewMockMemorySource(ctrl)
		mem.EXPECT().Footprint().Return(uint64(50<<20), nil)
		mem.EXPECT().TotalPhysical().Return(uint64(1000<<20), nil)

		got := New(nil, mem).SampleMemory()
		assert.Equal(t, model.MemoryUsage{Used: 50 << 20, Total: 1000 << 20}, got)
	})

	t.Run("footprint failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mem := NewMockMemorySource(ctrl)
		mem.EXPECT().Footprint().Return(uint64(123), errors.New("task_info failed"))
		mem.EXPECT().TotalPhysical().Return(uint64(1000), nil)

		got := New(nil, mem).SampleMemory()
		assert.Equal(t, uint64(0), got.Used)
		assert.Equal(t, uint64(1000), got.Total)
	})

	t.Run("no source", func(t *testing.T) {
		assert.Equal(t, model.MemoryUsage{}, New(nil, nil).SampleMemory())
	})
}

type fixedThermal model.ThermalState

func (f fixedThermal) ThermalState() model.ThermalState { return model.ThermalState(f) }

type fixedBattery float64

func (f fixedBattery) BatteryLevel() float64 { return float64(f) }

func TestDeviceQueries(t *testing.T) {
	s := New(nil, nil)
	assert.Equal(t, model.ThermalUnsupported, s.ThermalState())
	assert.Equal(t, -1.0, s.BatteryLevel())

	s = New(nil, nil, WithThermal(fixedThermal(model.ThermalSerious)), WithBattery(fixedBattery(42)))
	assert.Equal(t, model.ThermalSerious, s.ThermalState())
	assert.Equal(t, 42.0, s.BatteryLevel())
}
