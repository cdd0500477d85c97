package monitor

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/agbru/gmpmon/hooks"
)

// Monitor is the allocation monitor facade: it owns the captured original
// triple and the intercepting shims for its active lifetime, the usage
// counter, the threshold controller and the collection trigger.
//
// Monitors are independent instances; nothing in this package is
// module-level state. Two monitors must not be enabled against the same
// native library at once, since each would capture the other's shims as
// "original".
type Monitor struct {
	mu sync.Mutex // guards lifecycle and configuration baseline

	// gcMu serializes one GC epoch: the request-collection-and-cooldown
	// critical section. Shims take it with TryLock and skip on failure, so
	// under contention exactly one thread pays for the epoch. It is never
	// held while touching counter atomics, so GC-driven frees re-entering
	// the shims cannot deadlock against it.
	gcMu sync.Mutex

	lib      hooks.Library
	registry *hooks.Registry
	cfg      Config

	logger     zerolog.Logger
	debugLevel atomic.Int32
	requestGC  func()

	enabled  bool
	original hooks.Triple
	shims    hooks.Triple

	counter      usageCounter
	pace         atomic.Pointer[pacer]
	triggerCount atomic.Int64
}

// New builds a monitor for lib. The configuration is validated after
// defaulting; invalid combinations are rejected with a validation error.
// The monitor starts disabled and silent (zerolog.Nop).
func New(lib hooks.Library, cfg Config) (*Monitor, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	m := &Monitor{
		lib:       lib,
		registry:  hooks.NewRegistry(lib),
		cfg:       cfg,
		logger:    zerolog.Nop(),
		requestGC: cfg.RequestGC,
	}
	if m.requestGC == nil {
		m.requestGC = runtime.GC
	}
	m.debugLevel.Store(int32(cfg.DebugLevel))
	m.pace.Store(newPacer(cfg))
	return m, nil
}

// SetLogger configures the logger for monitor events. Call before Enable;
// the shims read it concurrently afterward.
func (m *Monitor) SetLogger(l zerolog.Logger) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logger = l
}

// Enable captures the library's current allocator triple, wraps it in the
// intercepting shims and installs them. Idempotent; concurrent calls are
// serialized so capture-then-install is atomic with respect to other
// lifecycle calls. Re-enabling after a Disable resets usage, peak, trigger
// count and pacing to the configured baseline.
func (m *Monitor) Enable() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.enabled {
		return
	}

	m.counter.reset()
	m.triggerCount.Store(0)
	m.pace.Store(newPacer(m.cfg))

	m.original = m.registry.Capture()
	m.shims = m.interceptingTriple(m.original)
	m.registry.Install(m.shims)
	m.enabled = true

	if m.debugLevel.Load() >= DebugLifecycle {
		m.logger.Debug().
			Int64("threshold_bytes", m.cfg.Threshold).
			Int64("max_threshold_bytes", m.cfg.MaxThreshold).
			Msg("allocation monitor enabled")
	}
}

// Disable reinstalls the captured original triple and drops both triple
// references. Idempotent; a no-op if never enabled. An in-flight shim call
// racing with Disable may complete on the outgoing triple; that is accepted
// rather than paying for a drain barrier.
func (m *Monitor) Disable() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.enabled {
		return
	}

	m.registry.Install(m.original)
	m.original = hooks.Triple{}
	m.shims = hooks.Triple{}
	m.enabled = false

	if m.debugLevel.Load() >= DebugLifecycle {
		m.logger.Debug().
			Int64("peak_bytes", m.counter.highWater()).
			Int64("gc_triggers", m.triggerCount.Load()).
			Msg("allocation monitor disabled")
	}
}

// Enabled reports whether the shims are currently installed.
func (m *Monitor) Enabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.enabled
}

// Threshold returns the trigger threshold currently in force (escalation
// included).
func (m *Monitor) Threshold() int64 {
	return m.pace.Load().currentThreshold()
}

// SetThreshold applies a new trigger threshold, clamped into
// [1, MaxThreshold], and re-bases the configured baseline used on the next
// Enable. Returns the value applied. Takes effect on the next evaluation.
func (m *Monitor) SetThreshold(v int64) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	applied := m.pace.Load().setThreshold(v)
	m.cfg.Threshold = applied
	return applied
}

// MaxThreshold returns the escalation ceiling.
func (m *Monitor) MaxThreshold() int64 {
	return m.pace.Load().snapshot().maxThreshold
}

// SetMaxThreshold applies a new escalation ceiling; lowering it under the
// current threshold pulls the threshold down too. The configured baseline
// threshold is only touched when the new ceiling clamps it, so a later
// re-enable still resets to the configured value. Returns the value applied.
func (m *Monitor) SetMaxThreshold(v int64) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	applied := m.pace.Load().setMaxThreshold(v)
	m.cfg.MaxThreshold = applied
	if m.cfg.Threshold > applied {
		m.cfg.Threshold = applied
	}
	return applied
}

// Pause returns the current per-step cooldown sleep.
func (m *Monitor) Pause() time.Duration {
	return m.pace.Load().currentPause()
}

// SetPause re-bases the adaptive cooldown pause, clamped into
// [MinPause, MaxPause]. Returns the value applied.
func (m *Monitor) SetPause(d time.Duration) time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	applied := m.pace.Load().setPause(d)
	m.cfg.Pause = applied
	return applied
}

// DebugLevel returns the current verbosity.
func (m *Monitor) DebugLevel() int {
	return int(m.debugLevel.Load())
}

// SetDebugLevel changes verbosity; negative values clamp to DebugOff.
func (m *Monitor) SetDebugLevel(v int) {
	if v < 0 {
		v = DebugOff
	}
	m.debugLevel.Store(int32(v))
}

// Usage returns the outstanding native bytes currently tracked.
func (m *Monitor) Usage() int64 {
	return m.counter.read()
}

// PeakUsage returns the high-water mark since the monitor was last enabled.
func (m *Monitor) PeakUsage() int64 {
	return m.counter.highWater()
}

// TriggerCount returns the number of GC requests issued since the monitor
// was last enabled.
func (m *Monitor) TriggerCount() int64 {
	return m.triggerCount.Load()
}

// Stats is a read-only snapshot of the monitor.
type Stats struct {
	Usage         int64         // outstanding native bytes
	Peak          int64         // high-water mark since enable
	Triggers      int64         // GC requests issued since enable
	Threshold     int64         // trigger threshold currently in force
	MaxThreshold  int64         // escalation ceiling
	Crossings     int64         // crossings counted in the current epoch
	CrossingLimit int64         // crossings tolerated before escalation
	Pause         time.Duration // current per-step cooldown sleep
	Enabled       bool
}

// Stats returns a point-in-time snapshot. The fields are read independently,
// so a snapshot taken under load is consistent per field, not across fields.
func (m *Monitor) Stats() Stats {
	ps := m.pace.Load().snapshot()
	return Stats{
		Usage:         m.counter.read(),
		Peak:          m.counter.highWater(),
		Triggers:      m.triggerCount.Load(),
		Threshold:     ps.threshold,
		MaxThreshold:  ps.maxThreshold,
		Crossings:     ps.crossings,
		CrossingLimit: ps.crossingLimit,
		Pause:         ps.pause,
		Enabled:       m.Enabled(),
	}
}
