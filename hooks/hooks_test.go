package hooks

import (
	"reflect"
	"testing"
	"unsafe"
)

// triplePointers returns the code pointers of a triple's entry points, used
// to check identity without calling them.
func triplePointers(t Triple) [3]uintptr {
	return [3]uintptr{
		reflect.ValueOf(t.Alloc).Pointer(),
		reflect.ValueOf(t.Realloc).Pointer(),
		reflect.ValueOf(t.Free).Pointer(),
	}
}

func TestTriple_Complete(t *testing.T) {
	t.Run("zero triple is incomplete", func(t *testing.T) {
		if (Triple{}).Complete() {
			t.Error("zero Triple should not be complete")
		}
	})

	t.Run("captured triple is complete", func(t *testing.T) {
		lib := NewSimLibrary()
		if !NewRegistry(lib).Capture().Complete() {
			t.Error("triple captured from a live library should be complete")
		}
	})

	t.Run("partial triple is incomplete", func(t *testing.T) {
		partial := Triple{Alloc: func(uintptr) unsafe.Pointer { return nil }}
		if partial.Complete() {
			t.Error("triple missing realloc/free should not be complete")
		}
	})
}

func TestRegistry_CaptureInstall(t *testing.T) {
	lib := NewSimLibrary()
	reg := NewRegistry(lib)

	original := reg.Capture()

	var allocCalls int
	replacement := Triple{
		Alloc: func(size uintptr) unsafe.Pointer {
			allocCalls++
			return original.Alloc(size)
		},
		Realloc: original.Realloc,
		Free:    original.Free,
	}

	reg.Install(replacement)

	p := lib.Allocate(64)
	if p == nil {
		t.Fatal("allocation through installed triple returned nil")
	}
	if allocCalls != 1 {
		t.Errorf("installed alloc hook called %d times, want 1", allocCalls)
	}
	lib.Free(p, 64)

	t.Run("install restores original exactly", func(t *testing.T) {
		reg.Install(original)
		if triplePointers(reg.Capture()) != triplePointers(original) {
			t.Error("reinstalled triple is not identical to the captured original")
		}
	})

	t.Run("reinstalling the active triple is a no-op", func(t *testing.T) {
		before := triplePointers(reg.Capture())
		reg.Install(original)
		if triplePointers(reg.Capture()) != before {
			t.Error("installing the already-active triple changed the active triple")
		}
	})
}
