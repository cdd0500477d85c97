// Package app wires the gmpmon demo binary: configuration, logging, the
// allocation monitor, the metrics endpoint and the GMP stress workload.
package app

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/briandowns/spinner"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"

	"github.com/agbru/gmpmon/hooks"
	"github.com/agbru/gmpmon/internal/config"
	apperrors "github.com/agbru/gmpmon/internal/errors"
	"github.com/agbru/gmpmon/internal/logging"
	"github.com/agbru/gmpmon/internal/metrics"
	"github.com/agbru/gmpmon/internal/sysmon"
	"github.com/agbru/gmpmon/internal/workload"
	"github.com/agbru/gmpmon/monitor"
)

// Application represents one gmpmon run.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
}

// New creates an Application by parsing command-line arguments.
func New(args []string, errWriter io.Writer) (*Application, error) {
	programName := "gmpmon"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	return &Application{Config: cfg, ErrWriter: errWriter}, nil
}

// Run enables the monitor, applies the workload for the configured duration
// and prints a summary. Returns a process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := a.newLogger()
	logger.Info("starting", logging.String("config", a.Config.String()))

	lib := hooks.NewDefaultLibrary()
	mon, err := monitor.New(lib, a.Config.MonitorConfig())
	if err != nil {
		logger.Error("invalid monitor configuration", logging.Err(err))
		return apperrors.ExitErrorConfig
	}
	mon.SetLogger(logger.Zerolog())

	mon.Enable()
	defer mon.Disable()

	if _, err := monitor.RegisterMeter(otel.GetMeterProvider().Meter("gmpmon"), mon); err != nil {
		logger.Warn("otel meter registration failed", logging.Err(err))
	}

	shutdownMetrics := a.serveMetrics(mon, logger)
	defer shutdownMetrics()

	memCollector := metrics.NewMemoryCollector()
	hostBefore := memCollector.Snapshot()

	stopSampling := a.startSampling(mon, memCollector, logger)

	spin := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(a.ErrWriter))
	spin.Suffix = " churning GMP values..."
	spin.Start()

	runCtx, cancel := context.WithTimeout(ctx, a.Config.Duration)
	defer cancel()
	totals, err := workload.Run(runCtx, workload.Options{
		Workers: a.Config.Workers,
		Library: lib,
	})

	spin.Stop()
	stopSampling()

	if err != nil && !apperrors.IsContextError(err) {
		logger.Error("workload failed", logging.Err(err))
		return apperrors.ExitErrorGeneric
	}

	hostAfter := memCollector.Snapshot()
	writeSummary(out, mon.Stats(), totals, hostBefore, hostAfter)

	if errors.Is(ctx.Err(), context.Canceled) {
		logger.Info("interrupted")
		return apperrors.ExitErrorCanceled
	}
	return apperrors.ExitSuccess
}

func (a *Application) newLogger() *logging.ZerologAdapter {
	level := zerolog.InfoLevel
	if a.Config.Verbose || a.Config.DebugLevel > monitor.DebugOff {
		level = zerolog.DebugLevel
	}
	zl := zerolog.New(zerolog.ConsoleWriter{Out: a.ErrWriter}).
		Level(level).
		With().Timestamp().Logger()
	return logging.NewZerologAdapter(zl)
}

// serveMetrics starts the Prometheus endpoint when configured. The returned
// function shuts the server down.
func (a *Application) serveMetrics(mon *monitor.Monitor, logger *logging.ZerologAdapter) func() {
	if a.Config.MetricsAddr == "" {
		return func() {}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		monitor.NewCollector(mon),
		collectors.NewGoCollector(),
	)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: a.Config.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		logger.Info("serving metrics", logging.String("addr", a.Config.MetricsAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("metrics server stopped", logging.Err(err))
		}
	}()

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}
}

// startSampling logs native usage next to host and system memory at the
// configured interval. The returned function stops the sampler.
func (a *Application) startSampling(mon *monitor.Monitor, memCollector *metrics.MemoryCollector, logger *logging.ZerologAdapter) func() {
	done := make(chan struct{})
	finished := make(chan struct{})

	go func() {
		defer close(finished)
		ticker := time.NewTicker(a.Config.SampleInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				sys := sysmon.Sample()
				host := memCollector.Snapshot()
				logger.Info("sample",
					logging.Int64("native_bytes", mon.Usage()),
					logging.Int64("native_peak_bytes", mon.PeakUsage()),
					logging.Int64("gc_triggers", mon.TriggerCount()),
					logging.Uint64("heap_alloc_bytes", host.HeapAlloc),
					logging.Uint64("rss_bytes", sys.RSSBytes),
					logging.Float64("cpu_percent", sys.CPUPercent))
			}
		}
	}()

	return func() {
		close(done)
		<-finished
	}
}
