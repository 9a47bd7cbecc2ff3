package sampler

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/process"
)

var errListReleased = errors.New("thread list already released")

// procThreads derives per-thread usage from cumulative CPU times: usage is
// the CPU seconds a thread gained since the previous enumeration divided by
// the wall time in between. A thread that gained nothing, or was not seen
// before, is idle.
type procThreads struct {
	proc *process.Process
	now  func() time.Time

	mu     sync.Mutex
	prev   map[int32]float64
	prevAt time.Time
}

// NewThreadSource returns a ThreadSource for pid. It enumerates once so the
// first real sample already has a baseline.
func NewThreadSource(pid int32) (ThreadSource, error) {
	proc, err := process.NewProcess(pid)
	if err != nil {
		return nil, err
	}
	s := &procThreads{
		proc: proc,
		now:  time.Now,
		prev: make(map[int32]float64),
	}

	if times, err := s.cpuTimes(); err == nil {
		for tid, t := range times {
			if t != nil {
				s.prev[tid] = t.User + t.System
			}
		}
		s.prevAt = s.now()
	}
	return s, nil
}

// cpuTimes falls back to the whole process, keyed by pid, on platforms where
// gopsutil cannot list threads.
func (s *procThreads) cpuTimes() (map[int32]*cpu.TimesStat, error) {
	times, err := s.proc.Threads()
	if err == nil && len(times) > 0 {
		return times, nil
	}
	total, terr := s.proc.Times()
	if terr != nil {
		if err == nil {
			err = terr
		}
		return nil, fmt.Errorf("enumerate threads of pid %d: %w", s.proc.Pid, err)
	}
	return map[int32]*cpu.TimesStat{s.proc.Pid: total}, nil
}

func (s *procThreads) Threads() (ThreadList, error) {
	times, err := s.cpuTimes()
	if err != nil {
		return nil, err
	}
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	elapsed := now.Sub(s.prevAt).Seconds()
	list := &threadList{infos: make([]ThreadInfo, 0, len(times))}

	next := make(map[int32]float64, len(times))
	for tid, t := range times {
		if t == nil {
			continue
		}
		total := t.User + t.System
		next[tid] = total

		info := ThreadInfo{ID: tid, Idle: true}
		if before, ok := s.prev[tid]; ok && elapsed > 0 {
			if delta := total - before; delta > 0 {
				info.CPUUsage = delta / elapsed
				info.Idle = false
			}
		}
		list.infos = append(list.infos, info)
	}
	sort.Slice(list.infos, func(i, j int) bool {
		return list.infos[i].ID < list.infos[j].ID
	})

	s.prev, s.prevAt = next, now
	return list, nil
}

// threadList is a private snapshot; Release drops it for good.
type threadList struct {
	infos    []ThreadInfo
	released bool
}

func (l *threadList) Len() int {
	if l.released {
		return 0
	}
	return len(l.infos)
}

func (l *threadList) Info(i int) (ThreadInfo, error) {
	if l.released {
		return ThreadInfo{}, errListReleased
	}
	if i < 0 || i >= len(l.infos) {
		return ThreadInfo{}, fmt.Errorf("thread index %d out of range [0,%d)", i, len(l.infos))
	}
	return l.infos[i], nil
}

func (l *threadList) Release() {
	if l.released {
		return
	}
	l.released = true
	l.infos = nil
}
