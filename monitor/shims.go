package monitor

import (
	"unsafe"

	"github.com/agbru/gmpmon/hooks"
)

// interceptingTriple decorates the captured original triple with the usage
// bookkeeping and the collection trigger. The delegation to the original
// entry point is deliberately outside any guard: the shims add accounting in
// front of the native allocator, they never stand in for it.
func (m *Monitor) interceptingTriple(orig hooks.Triple) hooks.Triple {
	return hooks.Triple{
		Alloc: func(size uintptr) unsafe.Pointer {
			m.track(int64(size), true)
			return orig.Alloc(size)
		},
		Realloc: func(ptr unsafe.Pointer, oldSize, newSize uintptr) unsafe.Pointer {
			delta := int64(newSize) - int64(oldSize)
			// Shrinking reallocations release pressure; only growth can
			// justify a collection.
			m.track(delta, delta > 0)
			return orig.Realloc(ptr, oldSize, newSize)
		},
		Free: func(ptr unsafe.Pointer, size uintptr) {
			m.track(-int64(size), false)
			orig.Free(ptr, size)
		},
	}
}

// track updates the usage counter and, when evaluate is set, consults the
// collection trigger. A panic here must not unwind into libgmp, which cannot
// handle a foreign exception crossing its frames, so the bookkeeping path is
// recover-guarded and failures degrade to "less effective monitoring".
func (m *Monitor) track(delta int64, evaluate bool) {
	defer func() {
		if r := recover(); r != nil && m.debugLevel.Load() >= DebugInvariants {
			m.logger.Debug().Interface("panic", r).Msg("allocation bookkeeping panicked")
		}
	}()

	usage := m.counter.add(delta)
	if evaluate {
		m.onUsageUpdate(usage)
	}
}
