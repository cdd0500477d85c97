package monitor

import "time"

// onUsageUpdate is the collection trigger, evaluated with the post-update
// total of every allocation and growing reallocation. Safe for unbounded
// concurrent callers: the counter update that produced total was lock-free,
// and only the thread that wins gcMu pays for the GC request and cooldown.
// Everyone else returns immediately.
func (m *Monitor) onUsageUpdate(total int64) {
	if total < 0 {
		// Bookkeeping bug somewhere (a free reported larger than its
		// allocation); the counter self-corrects as matching allocations
		// arrive. Diagnostic only.
		if m.debugLevel.Load() >= DebugInvariants {
			m.logger.Debug().Int64("usage_bytes", total).Msg("native usage counter went negative")
		}
		return
	}

	p := m.pace.Load()
	if total < p.currentThreshold() {
		return
	}
	if !m.gcMu.TryLock() {
		// Another thread owns this cooldown epoch.
		return
	}
	defer m.gcMu.Unlock()

	// The previous epoch owner may have raised the threshold past us while
	// we waited on nothing; re-check before requesting.
	threshold := p.currentThreshold()
	if total < threshold {
		return
	}

	m.requestGC()
	count := m.triggerCount.Add(1)
	newThreshold, escalated := p.recordCrossing()

	level := m.debugLevel.Load()
	if level >= DebugLifecycle {
		m.logger.Debug().
			Int64("usage_bytes", total).
			Int64("threshold_bytes", threshold).
			Int64("trigger", count).
			Msg("native usage crossed threshold, requested collection")
	}
	if escalated && level >= DebugPacing {
		m.logger.Debug().
			Int64("threshold_bytes", newThreshold).
			Msg("trigger threshold escalated")
	}

	m.cooldown(p)
}

// cooldown suppresses further GC requests until tracked usage falls under
// the lower watermark or the bounded poll budget is spent, whichever first.
// The per-step sleep then adapts: it shrinks when the watermark was reached
// and grows (capped) when the budget ran out, so sustained pressure polls
// more patiently and transient spikes recover quickly.
func (m *Monitor) cooldown(p *pacer) {
	steps := p.cooldownSteps()
	pause := p.currentPause()
	watermark := p.lowerWatermark()

	resolved := false
	for i := 0; i < steps; i++ {
		if m.counter.read() < watermark {
			resolved = true
			break
		}
		if pause > 0 {
			time.Sleep(pause)
		}
	}

	next := p.adaptPause(resolved)
	if m.debugLevel.Load() >= DebugPacing {
		m.logger.Debug().
			Bool("resolved", resolved).
			Int64("watermark_bytes", watermark).
			Dur("pause", next).
			Msg("cooldown finished")
	}
}
