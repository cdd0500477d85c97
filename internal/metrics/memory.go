// Package metrics reads host-heap statistics so the demo can report Go-side
// memory next to the monitor's native byte count.
package metrics

import "runtime"

// MemorySnapshot holds a point-in-time host memory reading.
type MemorySnapshot struct {
	HeapAlloc    uint64 // bytes in use by the Go heap
	HeapSys      uint64 // bytes obtained from OS for heap
	Sys          uint64 // total bytes obtained from OS
	NumGC        uint32 // number of completed GC cycles
	PauseTotalNs uint64 // cumulative GC pause time
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		HeapSys:      m.HeapSys,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
	}
}

// Delta returns the GC activity between an earlier snapshot and this one.
func (s MemorySnapshot) Delta(earlier MemorySnapshot) (cycles uint32, pauseNs uint64) {
	return s.NumGC - earlier.NumGC, s.PauseTotalNs - earlier.PauseTotalNs
}
