package hooks

import (
	"sync"
	"testing"
	"unsafe"
)

func TestSimLibrary_AllocFreeAccounting(t *testing.T) {
	lib := NewSimLibrary()

	p1 := lib.Allocate(1000)
	p2 := lib.Allocate(500)
	if got := lib.LiveBytes(); got != 1500 {
		t.Fatalf("LiveBytes = %d after two allocations, want 1500", got)
	}

	lib.Free(p1, 1000)
	if got := lib.LiveBytes(); got != 500 {
		t.Fatalf("LiveBytes = %d after freeing first block, want 500", got)
	}

	lib.Free(p2, 500)
	if got := lib.LiveBytes(); got != 0 {
		t.Fatalf("LiveBytes = %d after freeing everything, want 0", got)
	}
}

func TestSimLibrary_ReallocPreservesData(t *testing.T) {
	lib := NewSimLibrary()

	p := lib.Allocate(4)
	b := unsafe.Slice((*byte)(p), 4)
	copy(b, []byte{0xde, 0xad, 0xbe, 0xef})

	grown := lib.Reallocate(p, 4, 8)
	gb := unsafe.Slice((*byte)(grown), 8)
	for i, want := range []byte{0xde, 0xad, 0xbe, 0xef} {
		if gb[i] != want {
			t.Errorf("byte %d = %#x after grow, want %#x", i, gb[i], want)
		}
	}
	if got := lib.LiveBytes(); got != 8 {
		t.Errorf("LiveBytes = %d after grow, want 8", got)
	}

	shrunk := lib.Reallocate(grown, 8, 2)
	sb := unsafe.Slice((*byte)(shrunk), 2)
	if sb[0] != 0xde || sb[1] != 0xad {
		t.Errorf("data lost on shrink: got %#x %#x", sb[0], sb[1])
	}
	if got := lib.LiveBytes(); got != 2 {
		t.Errorf("LiveBytes = %d after shrink, want 2", got)
	}

	lib.Free(shrunk, 2)
}

func TestSimLibrary_ZeroSizeAllocation(t *testing.T) {
	lib := NewSimLibrary()
	p := lib.Allocate(0)
	if p == nil {
		t.Fatal("zero-size allocation returned nil")
	}
	if got := lib.LiveBytes(); got != 0 {
		t.Errorf("LiveBytes = %d after zero-size allocation, want 0", got)
	}
	lib.Free(p, 0)
}

func TestSimLibrary_ConcurrentUse(t *testing.T) {
	lib := NewSimLibrary()

	const workers = 8
	const rounds = 200

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < rounds; j++ {
				p := lib.Allocate(64)
				p = lib.Reallocate(p, 64, 128)
				lib.Free(p, 128)
			}
		}()
	}
	wg.Wait()

	if got := lib.LiveBytes(); got != 0 {
		t.Errorf("LiveBytes = %d after balanced concurrent use, want 0", got)
	}
}
