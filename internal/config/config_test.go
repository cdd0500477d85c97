package config

import (
	"errors"
	"io"
	"testing"
	"time"

	apperrors "github.com/agbru/gmpmon/internal/errors"
	"github.com/agbru/gmpmon/monitor"
)

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := ParseConfig("gmpmon", nil, io.Discard)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}

	if cfg.Threshold != monitor.DefaultThreshold {
		t.Errorf("Threshold = %d, want default %d", cfg.Threshold, monitor.DefaultThreshold)
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Workers)
	}
	if cfg.MetricsAddr != "" {
		t.Errorf("MetricsAddr = %q, want empty", cfg.MetricsAddr)
	}
}

func TestParseConfig_Flags(t *testing.T) {
	args := []string{
		"-threshold", "100000",
		"-max-threshold", "1000000",
		"-workers", "8",
		"-duration", "30s",
		"-metrics-addr", ":9091",
	}
	cfg, err := ParseConfig("gmpmon", args, io.Discard)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}

	if cfg.Threshold != 100_000 || cfg.MaxThreshold != 1_000_000 {
		t.Errorf("thresholds = %d/%d, want 100000/1000000", cfg.Threshold, cfg.MaxThreshold)
	}
	if cfg.Workers != 8 {
		t.Errorf("Workers = %d, want 8", cfg.Workers)
	}
	if cfg.Duration != 30*time.Second {
		t.Errorf("Duration = %s, want 30s", cfg.Duration)
	}
	if cfg.MetricsAddr != ":9091" {
		t.Errorf("MetricsAddr = %q, want :9091", cfg.MetricsAddr)
	}
}

func TestParseConfig_EnvOverrides(t *testing.T) {
	t.Setenv("GMPMON_THRESHOLD", "200000")
	t.Setenv("GMPMON_MAX_THRESHOLD", "4000000")
	t.Setenv("GMPMON_DURATION", "5s")

	t.Run("env applies when flag absent", func(t *testing.T) {
		cfg, err := ParseConfig("gmpmon", nil, io.Discard)
		if err != nil {
			t.Fatalf("ParseConfig: %v", err)
		}
		if cfg.Threshold != 200_000 {
			t.Errorf("Threshold = %d, want env value 200000", cfg.Threshold)
		}
		if cfg.Duration != 5*time.Second {
			t.Errorf("Duration = %s, want env value 5s", cfg.Duration)
		}
	})

	t.Run("explicit flag beats env", func(t *testing.T) {
		cfg, err := ParseConfig("gmpmon", []string{"-threshold", "300000"}, io.Discard)
		if err != nil {
			t.Fatalf("ParseConfig: %v", err)
		}
		if cfg.Threshold != 300_000 {
			t.Errorf("Threshold = %d, want flag value 300000", cfg.Threshold)
		}
	})

	t.Run("invalid env value falls back to default", func(t *testing.T) {
		t.Setenv("GMPMON_WORKERS", "not-a-number")
		cfg, err := ParseConfig("gmpmon", nil, io.Discard)
		if err != nil {
			t.Fatalf("ParseConfig: %v", err)
		}
		if cfg.Workers != 4 {
			t.Errorf("Workers = %d, want default 4", cfg.Workers)
		}
	})
}

func TestParseConfig_Rejections(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"zero threshold", []string{"-threshold", "0"}},
		{"max below threshold", []string{"-threshold", "1000", "-max-threshold", "500"}},
		{"zero workers", []string{"-workers", "0"}},
		{"negative duration", []string{"-duration", "-5s"}},
		{"positional arguments", []string{"leftover"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig("gmpmon", tt.args, io.Discard)
			var cfgErr apperrors.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Errorf("ParseConfig(%v) error = %v, want ConfigError", tt.args, err)
			}
		})
	}
}

func TestAppConfig_MonitorConfig(t *testing.T) {
	cfg := AppConfig{Threshold: 1000, MaxThreshold: 2000, Pause: time.Millisecond, DebugLevel: 2}
	mc := cfg.MonitorConfig()

	if mc.Threshold != 1000 || mc.MaxThreshold != 2000 {
		t.Errorf("monitor thresholds = %d/%d, want 1000/2000", mc.Threshold, mc.MaxThreshold)
	}
	if mc.Pause != time.Millisecond {
		t.Errorf("monitor pause = %s, want 1ms", mc.Pause)
	}
	if mc.DebugLevel != 2 {
		t.Errorf("monitor debug level = %d, want 2", mc.DebugLevel)
	}
	if mc.CooldownSteps != monitor.DefaultCooldownSteps {
		t.Errorf("CooldownSteps = %d, want default %d", mc.CooldownSteps, monitor.DefaultCooldownSteps)
	}
}
