package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"perfoverlay/internal/config"
	"perfoverlay/internal/crash"
	"perfoverlay/internal/frame"
	applog "perfoverlay/internal/log"
	"perfoverlay/internal/metrics"
	"perfoverlay/internal/model"
	"perfoverlay/internal/monitor"
	"perfoverlay/internal/overlay"
	"perfoverlay/internal/sampler"
	"perfoverlay/internal/server"
)

var version = "dev"

type flags struct {
	configPath  string
	refreshRate int
	metricsAddr string
	duration    time.Duration
	writeConfig bool
	debug       bool
}

func main() {
	os.Exit(run())
}

func run() int {
	var f flags
	app := kingpin.New("perfoverlay", "Live CPU, FPS, memory and thermal overlay for this process.")
	app.Version(version)
	app.Flag("config", "Path to config.yml.").Short('c').StringVar(&f.configPath)
	app.Flag("refresh-rate", "Frame clock rate in Hz.").IntVar(&f.refreshRate)
	app.Flag("metrics-addr", "Serve /metrics and /report on this address.").StringVar(&f.metricsAddr)
	app.Flag("duration", "Stop after this long (0 runs until interrupted).").DurationVar(&f.duration)
	app.Flag("write-config", "Write the effective config and exit.").BoolVar(&f.writeConfig)
	app.Flag("debug", "Enable debug logging.").BoolVar(&f.debug)
	kingpin.MustParse(app.Parse(os.Args[1:]))

	if err := serve(f); err != nil {
		fmt.Fprintln(os.Stderr, "perfoverlay:", err)
		return 1
	}
	return 0
}

func serve(f flags) error {
	if f.configPath == "" {
		path, err := config.DefaultPath()
		if err != nil {
			return err
		}
		f.configPath = path
	}
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return err
	}
	if f.refreshRate > 0 {
		cfg.RefreshRate = f.refreshRate
	}
	if f.metricsAddr != "" {
		cfg.MetricsAddr = f.metricsAddr
	}
	if f.debug {
		cfg.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if f.writeConfig {
		if err := cfg.Save(f.configPath); err != nil {
			return err
		}
		fmt.Println(f.configPath)
		return nil
	}

	closeLog, err := applog.Setup(applog.Options{Level: cfg.LogLevel, Debug: cfg.Debug, File: cfg.LogFile})
	if err != nil {
		return err
	}
	defer closeLog()

	if err := crash.Init(cfg.SentryDSN, "production", version); err != nil {
		logrus.WithError(err).Warn("crash reporting disabled")
	}
	defer crash.Flush(2 * time.Second)

	smp, err := sampler.NewProcess(applog.Component("sampler"))
	if err != nil {
		return err
	}
	appVersion := cfg.AppVersion
	if appVersion == "" {
		appVersion = version
	}
	formatter, err := overlay.NewFormatter(cfg.OverlayOptions(), overlay.CollectInfo(cfg.AppName, appVersion))
	if err != nil {
		return err
	}

	mon, err := monitor.New(monitor.Options{
		Clock:          frame.NewTicker(cfg.RefreshRate),
		Sampler:        smp,
		Display:        monitor.NewTerminalDisplay(os.Stdout),
		Formatter:      formatter,
		Scheduler:      cfg.SchedulerConfig(),
		BatteryLogPath: cfg.BatteryLogPath,
		ThermalLogPath: cfg.ThermalLogPath,
		ThermalWarn:    cfg.ThermalWarn,
		Log:            applog.Component("monitor"),
	})
	if err != nil {
		return err
	}

	exporter := metrics.NewExporter()
	exporter.Registry().MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	mon.SubscribeV2(exporter.Observe)
	mon.SubscribeV2(func(r model.PerformanceReportV2) {
		logrus.WithField("component", "report").Debug(overlay.Summary(r))
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if f.duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.duration)
		defer cancel()
	}

	var srvErr <-chan error
	if cfg.MetricsAddr != "" {
		router := server.NewRouter(mon, exporter.Handler())
		srvErr = runAsync(func() error { return server.Run(ctx, cfg.MetricsAddr, router) })
	}

	mon.Start()
	logrus.WithField("rate", cfg.RefreshRate).Info("perfoverlay running")

	var runErr error
	select {
	case <-ctx.Done():
		if srvErr != nil {
			runErr = <-srvErr
		}
	case runErr = <-srvErr:
	}

	return errors.Join(runErr, mon.Close())
}

var errPanicked = errors.New("panicked")

// runAsync runs f on a recovered goroutine. The returned channel always
// receives exactly one value, errPanicked if f panicked.
func runAsync(f func() error) <-chan error {
	done := make(chan error, 1)
	crash.Go(func() {
		err := errPanicked
		defer func() { done <- err }()
		err = f()
	})
	return done
}
