// Package monitor wires the frame clock, scheduler and label renderer into
// the control surface a host application drives.
package monitor

import (
	"errors"
	"slices"
	"sync"

	"github.com/sirupsen/logrus"

	"perfoverlay/internal/crash"
	"perfoverlay/internal/filelog"
	"perfoverlay/internal/frame"
	"perfoverlay/internal/model"
	"perfoverlay/internal/overlay"
	"perfoverlay/internal/scheduler"
)

// Display is the label the overlay text is pushed to.
type Display interface {
	Update(text string)
}

type LifecycleEvent int

const (
	Foreground LifecycleEvent = iota
	Background
)

type Options struct {
	Clock     frame.Clock
	Sampler   scheduler.ResourceSampler
	Display   Display
	Formatter *overlay.Formatter
	// Zero intervals fall back to scheduler.DefaultConfig.
	Scheduler scheduler.Config
	// Side log files; an empty path disables that log.
	BatteryLogPath string
	ThermalLogPath string
	// ThermalWarn is the state at which a warning is logged. Unsupported
	// disables the warning.
	ThermalWarn model.ThermalState
	// Now overrides the scheduler's time base. Leave nil with a Ticker clock.
	Now func() float64
	Log *logrus.Entry
}

type Monitor struct {
	sched     *scheduler.Scheduler
	display   Display
	formatter *overlay.Formatter
	logs      []*filelog.Writer
	log       *logrus.Entry
	warnAt    model.ThermalState

	// pushMu orders label pushes so a Hide is never overwritten.
	pushMu        sync.Mutex
	mu            sync.Mutex
	started       bool
	backgrounded  bool
	hidden        bool
	latest        *model.PerformanceReportV2
	lastThermal   model.ThermalState
	subscribers   []func(model.PerformanceReport)
	subscribersV2 []func(model.PerformanceReportV2)
}

func New(opts Options) (*Monitor, error) {
	if opts.Clock == nil {
		return nil, errors.New("monitor: clock is required")
	}
	if opts.Sampler == nil {
		return nil, errors.New("monitor: sampler is required")
	}
	log := opts.Log
	if log == nil {
		log = logrus.WithField("component", "monitor")
	}
	formatter := opts.Formatter
	if formatter == nil {
		formatter, _ = overlay.NewFormatter(overlay.DefaultOptions(), overlay.Info{})
	}

	m := &Monitor{
		display:   opts.Display,
		formatter: formatter,
		log:       log,
		warnAt:    opts.ThermalWarn,
	}

	schedOpts := []scheduler.Option{
		scheduler.WithConfig(opts.Scheduler),
		scheduler.WithLogger(log.WithField("component", "scheduler")),
	}
	if opts.Now != nil {
		schedOpts = append(schedOpts, scheduler.WithNow(opts.Now))
	}
	battery, thermal := m.openSideLog(opts.BatteryLogPath), m.openSideLog(opts.ThermalLogPath)
	if battery != nil || thermal != nil {
		schedOpts = append(schedOpts, scheduler.WithSideLogs(lineWriter(battery), lineWriter(thermal)))
	}

	m.sched = scheduler.New(opts.Clock, opts.Sampler, schedOpts...)
	m.sched.OnReport(m.publish)
	m.sched.OnReportV2(m.publishV2)
	return m, nil
}

func (m *Monitor) openSideLog(path string) *filelog.Writer {
	if path == "" {
		return nil
	}
	w := filelog.New(path)
	m.logs = append(m.logs, w)
	m.log.WithField("path", w.Path()).Debug("side log opened")
	return w
}

// lineWriter keeps a nil *filelog.Writer from becoming a non-nil interface.
func lineWriter(w *filelog.Writer) scheduler.LineWriter {
	if w == nil {
		return nil
	}
	return w
}

func (m *Monitor) Start() {
	m.mu.Lock()
	m.started = true
	background := m.backgrounded
	m.mu.Unlock()

	if background {
		return
	}
	m.sched.Start()
}

func (m *Monitor) Pause() {
	m.mu.Lock()
	m.started = false
	m.mu.Unlock()
	m.sched.Pause()
}

// HandleLifecycle pauses sampling while the host is in the background and
// resumes it on return if the host had started monitoring.
func (m *Monitor) HandleLifecycle(event LifecycleEvent) {
	m.mu.Lock()
	m.backgrounded = event == Background
	started := m.started
	m.mu.Unlock()

	if !started {
		return
	}
	switch event {
	case Background:
		m.sched.Pause()
	case Foreground:
		m.sched.Start()
	}
}

func (m *Monitor) Hide() {
	m.pushMu.Lock()
	defer m.pushMu.Unlock()

	m.mu.Lock()
	m.hidden = true
	m.mu.Unlock()
	m.push("")
}

func (m *Monitor) Show() {
	m.pushMu.Lock()
	defer m.pushMu.Unlock()

	m.mu.Lock()
	m.hidden = false
	latest := m.latest
	m.mu.Unlock()
	if latest != nil {
		m.push(m.formatter.Format(*latest))
	}
}

func (m *Monitor) Hidden() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hidden
}

func (m *Monitor) Phase() scheduler.Phase {
	return m.sched.Phase()
}

// Subscribe registers f for every v1 report.
func (m *Monitor) Subscribe(f func(model.PerformanceReport)) {
	m.mu.Lock()
	m.subscribers = append(m.subscribers, f)
	m.mu.Unlock()
}

// SubscribeV2 registers f for every v2 report.
func (m *Monitor) SubscribeV2(f func(model.PerformanceReportV2)) {
	m.mu.Lock()
	m.subscribersV2 = append(m.subscribersV2, f)
	m.mu.Unlock()
}

// LatestReport returns the most recent v2 report, if any was emitted.
func (m *Monitor) LatestReport() (model.PerformanceReportV2, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.latest == nil {
		return model.PerformanceReportV2{}, false
	}
	return *m.latest, true
}

// Close pauses monitoring and closes the side logs.
func (m *Monitor) Close() error {
	m.Pause()
	var errs []error
	for _, w := range m.logs {
		if err := w.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *Monitor) publish(r model.PerformanceReport) {
	m.mu.Lock()
	subs := slices.Clone(m.subscribers)
	m.mu.Unlock()

	for _, f := range subs {
		crash.Call(func() { f(r) })
	}
}

func (m *Monitor) publishV2(r model.PerformanceReportV2) {
	m.mu.Lock()
	m.latest = &r
	subs := slices.Clone(m.subscribersV2)
	previous := m.lastThermal
	m.lastThermal = r.ThermalReport.State
	m.mu.Unlock()

	m.warnThermal(previous, r.ThermalReport.State)
	m.pushLabel(m.formatter.Format(r))
	for _, f := range subs {
		crash.Call(func() { f(r) })
	}
}

// pushLabel shows text unless the label is hidden. The hidden flag is read
// under pushMu so a concurrent Hide always lands last.
func (m *Monitor) pushLabel(text string) {
	m.pushMu.Lock()
	defer m.pushMu.Unlock()

	m.mu.Lock()
	hidden := m.hidden
	m.mu.Unlock()
	if !hidden {
		m.push(text)
	}
}

func (m *Monitor) warnThermal(previous, current model.ThermalState) {
	if m.warnAt == model.ThermalUnsupported || current == previous {
		return
	}
	if current >= m.warnAt && previous < m.warnAt {
		m.log.WithField("thermal", current).Warn("thermal state elevated")
	}
}

func (m *Monitor) push(text string) {
	if m.display == nil {
		return
	}
	crash.Call(func() { m.display.Update(text) })
}
