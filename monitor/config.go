package monitor

import (
	"time"

	apperrors "github.com/agbru/gmpmon/internal/errors"
)

// Tunable resolution chain (highest priority first):
//  1. Setters on a live Monitor (clamped, effective on the next evaluation)
//  2. The Config passed to New
//  3. The defaults below
const (
	// DefaultThreshold is the initial native-usage trigger point.
	DefaultThreshold int64 = 4 << 20 // 4 MiB
	// DefaultMaxThreshold caps escalation.
	DefaultMaxThreshold int64 = 256 << 20 // 256 MiB
	// DefaultCrossingLimit is how many crossings are tolerated before the
	// threshold doubles.
	DefaultCrossingLimit int64 = 3
	// DefaultPause is the initial per-step cooldown sleep.
	DefaultPause = 2 * time.Millisecond
	// DefaultMinPause floors the adaptive pause.
	DefaultMinPause = 100 * time.Microsecond
	// DefaultMaxPause caps the adaptive pause.
	DefaultMaxPause = 64 * time.Millisecond
	// DefaultCooldownSteps bounds the cooldown poll loop.
	DefaultCooldownSteps = 8
)

// Config carries the monitor's tunables. The zero value of any field means
// "use the default"; RequestGC defaults to runtime.GC.
type Config struct {
	// Threshold is the native byte count at or above which a GC pass is
	// requested. Escalation doubles it, saturating at MaxThreshold.
	Threshold int64
	// MaxThreshold is the ceiling the threshold can escalate to.
	MaxThreshold int64
	// CrossingLimit is the number of crossings in the current epoch before
	// the threshold and the limit itself double.
	CrossingLimit int64
	// Pause is the initial per-step sleep of the cooldown loop. It adapts at
	// runtime within [MinPause, MaxPause].
	Pause    time.Duration
	MinPause time.Duration
	MaxPause time.Duration
	// CooldownSteps bounds the cooldown poll loop.
	CooldownSteps int
	// DebugLevel selects logging verbosity (see the Debug* constants).
	DebugLevel int
	// RequestGC asks the host runtime for a collection pass. Advisory only:
	// no return value, no completion signal.
	RequestGC func()
}

// Verbosity levels for Config.DebugLevel and SetDebugLevel.
const (
	DebugOff        = 0 // silent
	DebugLifecycle  = 1 // enable/disable and trigger events
	DebugPacing     = 2 // escalation and cooldown detail
	DebugInvariants = 3 // invariant violations and shim diagnostics
)

// DefaultConfig returns the default tunables.
func DefaultConfig() Config {
	return Config{
		Threshold:     DefaultThreshold,
		MaxThreshold:  DefaultMaxThreshold,
		CrossingLimit: DefaultCrossingLimit,
		Pause:         DefaultPause,
		MinPause:      DefaultMinPause,
		MaxPause:      DefaultMaxPause,
		CooldownSteps: DefaultCooldownSteps,
	}
}

// withDefaults fills zero-valued fields from the defaults.
func (c Config) withDefaults() Config {
	if c.Threshold == 0 {
		c.Threshold = DefaultThreshold
	}
	if c.MaxThreshold == 0 {
		c.MaxThreshold = DefaultMaxThreshold
	}
	if c.CrossingLimit == 0 {
		c.CrossingLimit = DefaultCrossingLimit
	}
	if c.Pause == 0 {
		c.Pause = DefaultPause
	}
	if c.MinPause == 0 {
		c.MinPause = DefaultMinPause
	}
	if c.MaxPause == 0 {
		c.MaxPause = DefaultMaxPause
	}
	if c.CooldownSteps == 0 {
		c.CooldownSteps = DefaultCooldownSteps
	}
	return c
}

// validate rejects configurations that would corrupt the controller's
// invariants. Live setters clamp instead; construction is the one place
// where misconfiguration should be loud.
func (c Config) validate() error {
	if c.Threshold < 1 {
		return apperrors.NewValidationError("Threshold", "must be at least 1 byte, got %d", c.Threshold)
	}
	if c.MaxThreshold < c.Threshold {
		return apperrors.NewValidationError("MaxThreshold", "must be at least the threshold (%d), got %d", c.Threshold, c.MaxThreshold)
	}
	if c.CrossingLimit < 1 {
		return apperrors.NewValidationError("CrossingLimit", "must be at least 1, got %d", c.CrossingLimit)
	}
	if c.Pause < 0 || c.MinPause < 0 {
		return apperrors.NewValidationError("Pause", "pause durations must not be negative")
	}
	if c.MaxPause < c.MinPause {
		return apperrors.NewValidationError("MaxPause", "must be at least MinPause (%s), got %s", c.MinPause, c.MaxPause)
	}
	if c.CooldownSteps < 1 {
		return apperrors.NewValidationError("CooldownSteps", "must be at least 1, got %d", c.CooldownSteps)
	}
	if c.DebugLevel < 0 {
		return apperrors.NewValidationError("DebugLevel", "must not be negative, got %d", c.DebugLevel)
	}
	return nil
}
