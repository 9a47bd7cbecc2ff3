// Package config loads and persists the overlay configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"perfoverlay/internal/model"
	"perfoverlay/internal/overlay"
	"perfoverlay/internal/scheduler"
)

const envPrefix = "PERFOVERLAY_"

type Config struct {
	Debug       bool   `yaml:"debug"`
	LogLevel    string `yaml:"log_level" validate:"oneof=trace debug info warn error"`
	LogFile     string `yaml:"log_file"`
	RefreshRate int    `yaml:"refresh_rate" validate:"gte=1,lte=240"`
	MetricsAddr string `yaml:"metrics_addr" validate:"omitempty,hostname_port"`
	SentryDSN   string `yaml:"sentry_dsn" validate:"omitempty,url"`

	AppName    string `yaml:"app_name"`
	AppVersion string `yaml:"app_version"`

	BatteryLogPath string `yaml:"battery_log_path"`
	ThermalLogPath string `yaml:"thermal_log_path"`
	// ThermalWarn is the thermal state that triggers a warning log line.
	ThermalWarn model.ThermalState `yaml:"thermal_warn"`

	Scheduler Scheduler `yaml:"scheduler"`
	Overlay   Overlay   `yaml:"overlay"`
}

type Scheduler struct {
	AccumulationWindow float64 `yaml:"accumulation_window" validate:"gt=0"`
	ReportInterval     float64 `yaml:"report_interval" validate:"gt=0"`
	LogInterval        float64 `yaml:"log_interval" validate:"gt=0"`
	ResetStatsOnPause  bool    `yaml:"reset_stats_on_pause"`
}

// Overlay picks the label lines. Template overrides them when set.
type Overlay struct {
	Performance bool   `yaml:"performance"`
	Memory      bool   `yaml:"memory"`
	Thermal     bool   `yaml:"thermal"`
	Application bool   `yaml:"application"`
	Device      bool   `yaml:"device"`
	System      bool   `yaml:"system"`
	Template    string `yaml:"template"`
}

func Defaults() *Config {
	sched := scheduler.DefaultConfig()
	opts := overlay.DefaultOptions()
	return &Config{
		LogLevel:    "info",
		RefreshRate: 60,
		AppName:     "perfoverlay",
		ThermalWarn: model.ThermalSerious,
		Scheduler: Scheduler{
			AccumulationWindow: sched.AccumulationWindow,
			ReportInterval:     sched.ReportInterval,
			LogInterval:        sched.LogInterval,
			ResetStatsOnPause:  sched.ResetStatsOnPause,
		},
		Overlay: Overlay{
			Performance: opts.Performance,
			Memory:      opts.Memory,
			Thermal:     opts.Thermal,
		},
	}
}

// DefaultPath returns <user config dir>/PerfOverlay/config.yml. The directory
// may not exist yet.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "PerfOverlay", "config.yml"), nil
}

// Load reads path over the defaults, then applies .env and PERFOVERLAY_*
// overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	_ = godotenv.Load()
	if err := applyEnv(cfg, os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	lookup := func(key string) (string, bool) {
		v := strings.TrimSpace(getenv(envPrefix + key))
		return v, v != ""
	}

	if v, ok := lookup("LOG_LEVEL"); ok {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v, ok := lookup("LOG_FILE"); ok {
		cfg.LogFile = v
	}
	if v, ok := lookup("METRICS_ADDR"); ok {
		cfg.MetricsAddr = v
	}
	if v, ok := lookup("SENTRY_DSN"); ok {
		cfg.SentryDSN = v
	}
	if v, ok := lookup("BATTERY_LOG"); ok {
		cfg.BatteryLogPath = v
	}
	if v, ok := lookup("THERMAL_LOG"); ok {
		cfg.ThermalLogPath = v
	}
	if v, ok := lookup("THERMAL_WARN"); ok {
		if err := cfg.ThermalWarn.UnmarshalText([]byte(strings.ToLower(v))); err != nil {
			return fmt.Errorf("%sTHERMAL_WARN: %w", envPrefix, err)
		}
	}
	if v, ok := lookup("REFRESH_RATE"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sREFRESH_RATE: %w", envPrefix, err)
		}
		cfg.RefreshRate = n
	}
	if v, ok := lookup("DEBUG"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sDEBUG: %w", envPrefix, err)
		}
		cfg.Debug = b
	}
	if v, ok := lookup("RESET_STATS_ON_PAUSE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sRESET_STATS_ON_PAUSE: %w", envPrefix, err)
		}
		cfg.Scheduler.ResetStatsOnPause = b
	}
	return nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Save writes the config as YAML, creating the parent directory.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

func (c *Config) SchedulerConfig() scheduler.Config {
	return scheduler.Config{
		AccumulationWindow: c.Scheduler.AccumulationWindow,
		ReportInterval:     c.Scheduler.ReportInterval,
		LogInterval:        c.Scheduler.LogInterval,
		ResetStatsOnPause:  c.Scheduler.ResetStatsOnPause,
	}
}

func (c *Config) OverlayOptions() overlay.Options {
	return overlay.Options{
		Performance: c.Overlay.Performance,
		Memory:      c.Overlay.Memory,
		Thermal:     c.Overlay.Thermal,
		Application: c.Overlay.Application,
		Device:      c.Overlay.Device,
		System:      c.Overlay.System,
		Template:    c.Overlay.Template,
	}
}
