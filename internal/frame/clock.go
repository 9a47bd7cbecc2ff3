// Package frame turns display refreshes into frame timestamps and keeps the
// one-second window used to derive the frame rate.
package frame

import (
	"sync"
	"time"

	"perfoverlay/internal/crash"
)

var origin = time.Now()

// Monotonic returns the seconds elapsed since the process started, read from
// the monotonic clock.
func Monotonic() float64 {
	return time.Since(origin).Seconds()
}

// TickHandler receives one call per display refresh.
type TickHandler interface {
	OnTick(timestamp float64)
}

type TickFunc func(timestamp float64)

func (f TickFunc) OnTick(timestamp float64) { f(timestamp) }

// Clock is a source of refresh ticks that can be paused.
type Clock interface {
	Bind(h TickHandler)
	Resume()
	Suspend()
}

// Ticker emulates a display link with a time.Ticker. Ticks are delivered
// one at a time from a single goroutine.
type Ticker struct {
	interval time.Duration

	mu      sync.Mutex
	handler TickHandler
	stop    chan struct{}
}

// NewTicker returns a suspended Ticker firing rate times per second.
func NewTicker(rate int) *Ticker {
	if rate <= 0 {
		rate = 60
	}
	return &Ticker{interval: time.Second / time.Duration(rate)}
}

func (t *Ticker) Bind(h TickHandler) {
	t.mu.Lock()
	t.handler = h
	t.mu.Unlock()
}

func (t *Ticker) Resume() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stop != nil {
		return
	}
	stop := make(chan struct{})
	t.stop = stop
	crash.Go(func() { t.run(stop) })
}

func (t *Ticker) Suspend() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stop == nil {
		return
	}
	close(t.stop)
	t.stop = nil
}

func (t *Ticker) run(stop <-chan struct{}) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			select {
			case <-stop:
				return
			default:
			}

			t.mu.Lock()
			h := t.handler
			t.mu.Unlock()
			if h == nil {
				continue
			}
			ts := Monotonic()
			crash.Call(func() { h.OnTick(ts) })
		}
	}
}

// Manual is a Clock driven by the host calling Tick, for hosts that own their
// render loop.
type Manual struct {
	mu      sync.Mutex
	handler TickHandler
	running bool
}

func (m *Manual) Bind(h TickHandler) {
	m.mu.Lock()
	m.handler = h
	m.mu.Unlock()
}

func (m *Manual) Resume() {
	m.mu.Lock()
	m.running = true
	m.mu.Unlock()
}

func (m *Manual) Suspend() {
	m.mu.Lock()
	m.running = false
	m.mu.Unlock()
}

func (m *Manual) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// Tick forwards timestamp to the bound handler. Ticks arriving while the
// clock is suspended are dropped; the return value reports delivery.
func (m *Manual) Tick(timestamp float64) bool {
	m.mu.Lock()
	h, running := m.handler, m.running
	m.mu.Unlock()
	if !running || h == nil {
		return false
	}
	h.OnTick(timestamp)
	return true
}
