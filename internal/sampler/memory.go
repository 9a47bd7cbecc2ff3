package sampler

import (
	"errors"
	"time"

	"github.com/bluele/gcache"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

const totalMemoryKey = "total"

var errNoTotalMemory = errors.New("installed memory unavailable")

// procMemory reports the resident set of a process. Installed memory is
// cached since it does not change while the process runs.
type procMemory struct {
	proc  *process.Process
	total gcache.Cache
}

func NewMemorySource(pid int32) (MemorySource, error) {
	proc, err := process.NewProcess(pid)
	if err != nil {
		return nil, err
	}
	return &procMemory{
		proc: proc,
		total: gcache.New(1).
			LRU().
			Expiration(10 * time.Minute).
			LoaderFunc(func(interface{}) (interface{}, error) {
				return loadTotalMemory()
			}).
			Build(),
	}, nil
}

func (m *procMemory) Footprint() (uint64, error) {
	info, err := m.proc.MemoryInfo()
	if err != nil {
		return 0, err
	}
	return info.RSS, nil
}

func (m *procMemory) TotalPhysical() (uint64, error) {
	v, err := m.total.Get(totalMemoryKey)
	if err != nil {
		return 0, err
	}
	return v.(uint64), nil
}

func loadTotalMemory() (uint64, error) {
	vm, err := mem.VirtualMemory()
	if err == nil && vm.Total > 0 {
		return vm.Total, nil
	}
	if total := sysTotalMemory(); total > 0 {
		return total, nil
	}
	if err != nil {
		return 0, err
	}
	return 0, errNoTotalMemory
}
