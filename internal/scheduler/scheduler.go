// Package scheduler paces resource sampling against frame ticks and turns the
// samples into reports.
//
// After Start the scheduler waits out an accumulation window so the first
// report never describes a partial second, then samples once per report
// interval on whichever tick crosses it.
package scheduler

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"perfoverlay/internal/crash"
	"perfoverlay/internal/frame"
	"perfoverlay/internal/model"
	"perfoverlay/internal/stats"
)

type Phase int

const (
	Idle Phase = iota
	Accumulating
	Active
)

func (p Phase) String() string {
	switch p {
	case Accumulating:
		return "accumulating"
	case Active:
		return "active"
	default:
		return "idle"
	}
}

// ResourceSampler is the OS side of a sampling pass.
type ResourceSampler interface {
	SampleCPU() float64
	SampleMemory() model.MemoryUsage
	ThermalState() model.ThermalState
	BatteryLevel() float64
}

// LineWriter receives the periodic battery and thermal log lines.
type LineWriter interface {
	WriteLine(line string)
}

// Config holds the pacing intervals, in seconds.
type Config struct {
	AccumulationWindow float64
	ReportInterval     float64
	LogInterval        float64
	// ResetStatsOnPause discards the running statistics on Pause, so the
	// next Start begins a new series instead of continuing the old one.
	ResetStatsOnPause bool
}

func DefaultConfig() Config {
	return Config{
		AccumulationWindow: 1,
		ReportInterval:     1,
		LogInterval:        60,
	}
}

// withDefaults fills every non-positive interval from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.AccumulationWindow <= 0 {
		c.AccumulationWindow = def.AccumulationWindow
	}
	if c.ReportInterval <= 0 {
		c.ReportInterval = def.ReportInterval
	}
	if c.LogInterval <= 0 {
		c.LogInterval = def.LogInterval
	}
	return c
}

const logTimeLayout = "2006-01-02 15:04:05"

type Scheduler struct {
	cfg        Config
	clock      frame.Clock
	sampler    ResourceSampler
	now        func() float64
	wallNow    func() time.Time
	batteryLog LineWriter
	thermalLog LineWriter
	log        *logrus.Entry

	mu                  sync.Mutex
	phase               Phase
	session             uuid.UUID
	window              frame.Window
	startTimestamp      float64
	lastReportTimestamp float64
	lastLogTimestamp    float64
	reportCount         int
	lastCPU             *stats.RunningStat
	lastMemory          *stats.RunningStat
	onReport            func(model.PerformanceReport)
	onReportV2          func(model.PerformanceReportV2)
}

type Option func(*Scheduler)

// WithConfig sets the pacing. Intervals left at zero keep their defaults.
func WithConfig(cfg Config) Option {
	return func(s *Scheduler) { s.cfg = cfg.withDefaults() }
}

// WithNow sets the clock read by Start. It must share the time base of the
// tick timestamps.
func WithNow(now func() float64) Option {
	return func(s *Scheduler) { s.now = now }
}

func WithWallClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.wallNow = now }
}

func WithSideLogs(battery, thermal LineWriter) Option {
	return func(s *Scheduler) {
		s.batteryLog = battery
		s.thermalLog = thermal
	}
}

func WithLogger(log *logrus.Entry) Option {
	return func(s *Scheduler) { s.log = log }
}

// New binds a scheduler to clock. The clock stays suspended until Start.
func New(clock frame.Clock, sampler ResourceSampler, opts ...Option) *Scheduler {
	s := &Scheduler{
		cfg:              DefaultConfig(),
		clock:            clock,
		sampler:          sampler,
		now:              frame.Monotonic,
		wallNow:          time.Now,
		log:              logrus.WithField("component", "scheduler"),
		lastLogTimestamp: math.Inf(-1),
	}
	for _, opt := range opts {
		opt(s)
	}
	clock.Bind(s)
	return s
}

func (s *Scheduler) OnReport(f func(model.PerformanceReport)) {
	s.mu.Lock()
	s.onReport = f
	s.mu.Unlock()
}

func (s *Scheduler) OnReportV2(f func(model.PerformanceReportV2)) {
	s.mu.Lock()
	s.onReportV2 = f
	s.mu.Unlock()
}

// Start begins a monitoring session. It is a no-op while one is running.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != Idle {
		return
	}

	s.phase = Accumulating
	s.startTimestamp = s.now()
	s.lastReportTimestamp = s.startTimestamp
	s.session = uuid.New()
	s.window.Reset()
	s.clock.Resume()

	s.log.WithFields(logrus.Fields{
		"session": s.session,
		"reports": s.reportCount,
	}).Info("monitoring started")
}

// Pause stops the clock and returns to Idle. Ticks already in flight are
// ignored. Calling Pause while idle is harmless.
func (s *Scheduler) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clock.Suspend()
	if s.phase == Idle {
		return
	}

	s.phase = Idle
	s.startTimestamp = 0
	s.window.Reset()
	if s.cfg.ResetStatsOnPause {
		s.reportCount = 0
		s.lastCPU = nil
		s.lastMemory = nil
	}

	s.log.WithFields(logrus.Fields{
		"session": s.session,
		"reports": s.reportCount,
	}).Info("monitoring paused")
}

func (s *Scheduler) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

func (s *Scheduler) ReportCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reportCount
}

// Session identifies the current or most recent monitoring session.
func (s *Scheduler) Session() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

type emission struct {
	v1       model.PerformanceReport
	v2       model.PerformanceReportV2
	onReport func(model.PerformanceReport)
	onV2     func(model.PerformanceReportV2)
}

type sideLines struct {
	battery string
	thermal string
}

// OnTick records the frame and, when an interval has elapsed, samples and
// reports. Subscribers run after the lock is released.
func (s *Scheduler) OnTick(timestamp float64) {
	s.mu.Lock()
	if s.phase == Idle {
		s.mu.Unlock()
		return
	}

	s.window.Append(timestamp)

	if s.phase == Accumulating {
		if timestamp-s.startTimestamp < s.cfg.AccumulationWindow {
			s.mu.Unlock()
			return
		}
		s.phase = Active
		s.log.WithField("session", s.session).Debug("accumulation window elapsed")
	}

	var emit *emission
	if timestamp-s.lastReportTimestamp >= s.cfg.ReportInterval {
		emit = s.sampleLocked()
		s.lastReportTimestamp = timestamp
	}

	var side *sideLines
	if timestamp-s.lastLogTimestamp >= s.cfg.LogInterval {
		side = s.sideLinesLocked()
		s.lastLogTimestamp = timestamp
	}
	s.mu.Unlock()

	if side != nil {
		s.writeSideLines(side)
	}
	if emit != nil {
		s.deliver(emit)
	}
}

// sampleLocked runs one sampling pass. Must be called with s.mu held.
func (s *Scheduler) sampleLocked() *emission {
	cpu := s.sampler.SampleCPU()
	memory := s.sampler.SampleMemory()
	thermal := s.sampler.ThermalState()
	fps := s.window.Count()

	n := s.reportCount
	cpuStat := stats.Update(cpu, s.lastCPU, n)
	memStat := stats.Update(float64(memory.Used), s.lastMemory, n)
	s.lastCPU, s.lastMemory = &cpuStat, &memStat
	s.reportCount++

	s.log.WithFields(logrus.Fields{
		"session": s.session,
		"cpu":     cpu,
		"fps":     fps,
		"used":    memory.Used,
		"thermal": thermal,
	}).Trace("sampled")

	return &emission{
		v1: model.PerformanceReport{
			CPUUsage:    cpu,
			FPS:         fps,
			MemoryUsage: memory,
		},
		v2: model.PerformanceReportV2{
			CPUReport: model.CPUReport{
				Usage:   cpuStat.Current,
				Average: cpuStat.Average,
				Max:     cpuStat.Max,
				Min:     cpuStat.Min,
			},
			FPS: fps,
			MemoryReport: model.MemoryReport{
				Usage:   memory,
				Average: memStat.Average,
				Max:     memStat.Max,
				Min:     memStat.Min,
			},
			ThermalReport: model.ThermalReport{State: thermal},
		},
		onReport: s.onReport,
		onV2:     s.onReportV2,
	}
}

// sideLinesLocked must be called with s.mu held.
func (s *Scheduler) sideLinesLocked() *sideLines {
	if s.batteryLog == nil && s.thermalLog == nil {
		return nil
	}
	stamp := s.wallNow().Format(logTimeLayout)

	battery := "unknown"
	if level := s.sampler.BatteryLevel(); level >= 0 {
		battery = fmt.Sprintf("%.0f%%", level)
	}
	return &sideLines{
		battery: fmt.Sprintf("%s battery level: %s", stamp, battery),
		thermal: fmt.Sprintf("%s thermal state: %s", stamp, s.sampler.ThermalState()),
	}
}

func (s *Scheduler) writeSideLines(lines *sideLines) {
	if s.batteryLog != nil {
		s.batteryLog.WriteLine(lines.battery)
	}
	if s.thermalLog != nil {
		s.thermalLog.WriteLine(lines.thermal)
	}
}

func (s *Scheduler) deliver(e *emission) {
	if e.onReport != nil {
		crash.Call(func() { e.onReport(e.v1) })
	}
	if e.onV2 != nil {
		crash.Call(func() { e.onV2(e.v2) })
	}
}
