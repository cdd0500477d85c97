// Package config parses the gmpmon command line and its environment
// overrides.
//
// Tunable resolution chain (highest priority first):
//  1. CLI flags (--threshold, --max-threshold, ...)
//  2. Environment variables (GMPMON_THRESHOLD, ...)
//  3. Static defaults from the monitor package
package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	apperrors "github.com/agbru/gmpmon/internal/errors"
	"github.com/agbru/gmpmon/monitor"
)

// EnvPrefix is prepended to every environment variable key.
const EnvPrefix = "GMPMON_"

// AppConfig holds the demo binary's settings.
type AppConfig struct {
	// Monitor tunables.
	Threshold    int64
	MaxThreshold int64
	Pause        time.Duration
	DebugLevel   int

	// Workload shape.
	Workers  int
	Duration time.Duration

	// Reporting.
	MetricsAddr    string
	SampleInterval time.Duration
	Verbose        bool
}

// ParseConfig parses args into an AppConfig, applying environment overrides
// for flags that were not set explicitly. Usage and parse errors are written
// to errWriter.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	cfg := AppConfig{}
	fs.Int64Var(&cfg.Threshold, "threshold", monitor.DefaultThreshold, "initial native-usage GC trigger threshold in bytes")
	fs.Int64Var(&cfg.MaxThreshold, "max-threshold", monitor.DefaultMaxThreshold, "escalation ceiling for the trigger threshold in bytes")
	fs.DurationVar(&cfg.Pause, "pause", monitor.DefaultPause, "initial cooldown pause per poll step")
	fs.IntVar(&cfg.DebugLevel, "debug", monitor.DebugOff, "monitor verbosity (0=off, 1=triggers, 2=pacing, 3=invariants)")
	fs.IntVar(&cfg.Workers, "workers", 4, "concurrent GMP workload goroutines")
	fs.DurationVar(&cfg.Duration, "duration", 10*time.Second, "how long to run the workload")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", "", "address for the Prometheus /metrics endpoint (empty disables it)")
	fs.DurationVar(&cfg.SampleInterval, "sample-interval", time.Second, "interval between usage/system log samples")
	fs.BoolVar(&cfg.Verbose, "v", false, "log at debug level")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected arguments: %v", fs.Args())
	}

	applyEnvOverrides(fs, &cfg)

	if err := validate(cfg); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// applyEnvOverrides fills in environment values for flags the user did not
// set on the command line.
func applyEnvOverrides(fs *flag.FlagSet, cfg *AppConfig) {
	if !isFlagSet(fs, "threshold") {
		cfg.Threshold = getEnvInt64("THRESHOLD", cfg.Threshold)
	}
	if !isFlagSet(fs, "max-threshold") {
		cfg.MaxThreshold = getEnvInt64("MAX_THRESHOLD", cfg.MaxThreshold)
	}
	if !isFlagSet(fs, "pause") {
		cfg.Pause = getEnvDuration("PAUSE", cfg.Pause)
	}
	if !isFlagSet(fs, "debug") {
		cfg.DebugLevel = getEnvInt("DEBUG", cfg.DebugLevel)
	}
	if !isFlagSet(fs, "workers") {
		cfg.Workers = getEnvInt("WORKERS", cfg.Workers)
	}
	if !isFlagSet(fs, "duration") {
		cfg.Duration = getEnvDuration("DURATION", cfg.Duration)
	}
	if !isFlagSet(fs, "metrics-addr") {
		cfg.MetricsAddr = getEnvString("METRICS_ADDR", cfg.MetricsAddr)
	}
	if !isFlagSet(fs, "sample-interval") {
		cfg.SampleInterval = getEnvDuration("SAMPLE_INTERVAL", cfg.SampleInterval)
	}
}

func validate(cfg AppConfig) error {
	if cfg.Threshold < 1 {
		return apperrors.NewConfigError("threshold must be positive, got %d", cfg.Threshold)
	}
	if cfg.MaxThreshold < cfg.Threshold {
		return apperrors.NewConfigError("max-threshold %d is below threshold %d", cfg.MaxThreshold, cfg.Threshold)
	}
	if cfg.Workers < 1 {
		return apperrors.NewConfigError("workers must be positive, got %d", cfg.Workers)
	}
	if cfg.Duration <= 0 {
		return apperrors.NewConfigError("duration must be positive, got %s", cfg.Duration)
	}
	if cfg.SampleInterval <= 0 {
		return apperrors.NewConfigError("sample-interval must be positive, got %s", cfg.SampleInterval)
	}
	return nil
}

// MonitorConfig converts the application settings into the monitor's Config.
func (c AppConfig) MonitorConfig() monitor.Config {
	mc := monitor.DefaultConfig()
	mc.Threshold = c.Threshold
	mc.MaxThreshold = c.MaxThreshold
	mc.Pause = c.Pause
	mc.DebugLevel = c.DebugLevel
	return mc
}

// String renders the configuration for startup logging.
func (c AppConfig) String() string {
	return fmt.Sprintf("threshold=%d max=%d pause=%s workers=%d duration=%s",
		c.Threshold, c.MaxThreshold, c.Pause, c.Workers, c.Duration)
}
