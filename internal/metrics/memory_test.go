package metrics

import (
	"runtime"
	"testing"
)

func TestMemoryCollector_Snapshot(t *testing.T) {
	t.Parallel()

	mc := NewMemoryCollector()
	snap := mc.Snapshot()

	if snap.HeapAlloc == 0 {
		t.Error("HeapAlloc should be > 0")
	}
	if snap.Sys == 0 {
		t.Error("Sys should be > 0")
	}
}

func TestMemorySnapshot_Delta(t *testing.T) {
	mc := NewMemoryCollector()
	before := mc.Snapshot()

	runtime.GC()

	after := mc.Snapshot()
	cycles, _ := after.Delta(before)
	if cycles == 0 {
		t.Error("Delta should report at least one GC cycle after runtime.GC")
	}
}
