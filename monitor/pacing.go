package monitor

import (
	"math"
	"sync"
	"sync/atomic"
	"time"
)

// crossingLimitCeiling saturates the crossing-limit doubling.
const crossingLimitCeiling = int64(math.MaxInt32)

// pacer is the threshold controller: the trigger point, the escalation
// counters and the adaptive cooldown pause, all mutated under one mutex so
// each escalation transition is atomic. The only lock-free piece is an
// atomic mirror of the threshold, read by the shims on every allocation.
//
// Invariants: threshold <= maxThreshold always; threshold never shrinks
// except through an explicit setter.
type pacer struct {
	mu            sync.Mutex
	threshold     int64
	maxThreshold  int64
	crossings     int64
	crossingLimit int64
	pause         time.Duration
	minPause      time.Duration
	maxPause      time.Duration
	steps         int

	fastThreshold atomic.Int64
}

func newPacer(cfg Config) *pacer {
	p := &pacer{
		threshold:     cfg.Threshold,
		maxThreshold:  cfg.MaxThreshold,
		crossingLimit: cfg.CrossingLimit,
		pause:         cfg.Pause,
		minPause:      cfg.MinPause,
		maxPause:      cfg.MaxPause,
		steps:         cfg.CooldownSteps,
	}
	p.fastThreshold.Store(p.threshold)
	return p
}

// currentThreshold is the lock-free read used on the allocation hot path.
func (p *pacer) currentThreshold() int64 {
	return p.fastThreshold.Load()
}

// lowerWatermark is the usage level at which a cooldown resolves: 15/16 of
// the current threshold. Falling under it means the collection (or ordinary
// frees) relieved the pressure that caused the trigger.
func (p *pacer) lowerWatermark() int64 {
	t := p.fastThreshold.Load()
	return t - t/16
}

// recordCrossing applies the escalation rule for one trigger event: count
// the crossing, and once the limit is reached double the threshold
// (saturating at maxThreshold) and the limit itself (saturating at the
// ceiling), starting a fresh epoch. Returns the threshold now in force and
// whether it was raised.
func (p *pacer) recordCrossing() (threshold int64, escalated bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.crossings++
	if p.crossings >= p.crossingLimit {
		p.crossings = 0
		if p.threshold < p.maxThreshold {
			doubled := p.threshold * 2
			if doubled > p.maxThreshold || doubled < p.threshold {
				doubled = p.maxThreshold
			}
			p.threshold = doubled
			p.fastThreshold.Store(doubled)
			escalated = true
		}
		if p.crossingLimit < crossingLimitCeiling {
			doubled := p.crossingLimit * 2
			if doubled > crossingLimitCeiling {
				doubled = crossingLimitCeiling
			}
			p.crossingLimit = doubled
		}
	}
	return p.threshold, escalated
}

// adaptPause tunes the per-step cooldown sleep after one cooldown run:
// halve it when the watermark was reached (pressure drains fast, poll
// faster next time), double it when the poll budget ran out.
func (p *pacer) adaptPause(resolved bool) time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if resolved {
		p.pause /= 2
		if p.pause < p.minPause {
			p.pause = p.minPause
		}
	} else {
		p.pause *= 2
		if p.pause > p.maxPause {
			p.pause = p.maxPause
		}
	}
	return p.pause
}

func (p *pacer) currentPause() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pause
}

func (p *pacer) cooldownSteps() int {
	return p.steps
}

// setThreshold clamps v into [1, maxThreshold] and applies it. Returns the
// value actually applied.
func (p *pacer) setThreshold(v int64) int64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	if v < 1 {
		v = 1
	}
	if v > p.maxThreshold {
		v = p.maxThreshold
	}
	p.threshold = v
	p.fastThreshold.Store(v)
	return v
}

// setMaxThreshold applies a new ceiling. Lowering it under the current
// threshold pulls the threshold down with it, preserving the invariant.
// Returns the ceiling actually applied.
func (p *pacer) setMaxThreshold(v int64) int64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	if v < 1 {
		v = 1
	}
	p.maxThreshold = v
	if p.threshold > v {
		p.threshold = v
		p.fastThreshold.Store(v)
	}
	return v
}

// setPause re-bases the adaptive pause, clamped into [minPause, maxPause].
// Returns the value actually applied.
func (p *pacer) setPause(d time.Duration) time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if d < p.minPause {
		d = p.minPause
	}
	if d > p.maxPause {
		d = p.maxPause
	}
	p.pause = d
	return d
}

// pacerState is a snapshot of the controller for the stats surface.
type pacerState struct {
	threshold     int64
	maxThreshold  int64
	crossings     int64
	crossingLimit int64
	pause         time.Duration
}

func (p *pacer) snapshot() pacerState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return pacerState{
		threshold:     p.threshold,
		maxThreshold:  p.maxThreshold,
		crossings:     p.crossings,
		crossingLimit: p.crossingLimit,
		pause:         p.pause,
	}
}
