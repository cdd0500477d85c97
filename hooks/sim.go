package hooks

import (
	"sync"
	"sync/atomic"
	"unsafe"
)

// SimLibrary is a pure-Go stand-in for a native arbitrary-precision library.
// Its backing triple serves blocks from the Go heap and keeps each block
// alive in a registry map until it is freed, so the returned pointers stay
// valid the way native pointers would.
//
// SimLibrary backs the monitor's tests and the demo binary on builds without
// cgo, where no libgmp is linked into the process.
type SimLibrary struct {
	current atomic.Pointer[Triple]

	mu     sync.Mutex
	blocks map[unsafe.Pointer][]byte
	live   atomic.Int64
}

// NewSimLibrary returns a simulated library with its backing triple active.
func NewSimLibrary() *SimLibrary {
	s := &SimLibrary{blocks: make(map[unsafe.Pointer][]byte)}
	t := Triple{Alloc: s.backingAlloc, Realloc: s.backingRealloc, Free: s.backingFree}
	s.current.Store(&t)
	return s
}

// MemoryFunctions returns the currently active triple.
func (s *SimLibrary) MemoryFunctions() Triple {
	return *s.current.Load()
}

// SetMemoryFunctions replaces the active triple.
func (s *SimLibrary) SetMemoryFunctions(t Triple) {
	s.current.Store(&t)
}

// Allocate routes one allocation through the installed triple, exactly as
// native arithmetic code would.
func (s *SimLibrary) Allocate(size uintptr) unsafe.Pointer {
	return s.current.Load().Alloc(size)
}

// Reallocate routes one resize through the installed triple.
func (s *SimLibrary) Reallocate(ptr unsafe.Pointer, oldSize, newSize uintptr) unsafe.Pointer {
	return s.current.Load().Realloc(ptr, oldSize, newSize)
}

// Free routes one release through the installed triple.
func (s *SimLibrary) Free(ptr unsafe.Pointer, size uintptr) {
	s.current.Load().Free(ptr, size)
}

// LiveBytes returns the bytes currently held by the backing triple. This is
// ground truth for tests: it counts what was actually allocated, independent
// of any interception layered on top.
func (s *SimLibrary) LiveBytes() int64 {
	return s.live.Load()
}

func (s *SimLibrary) backingAlloc(size uintptr) unsafe.Pointer {
	n := size
	if n == 0 {
		n = 1
	}
	b := make([]byte, n)
	p := unsafe.Pointer(&b[0])
	s.mu.Lock()
	s.blocks[p] = b
	s.mu.Unlock()
	s.live.Add(int64(size))
	return p
}

func (s *SimLibrary) backingRealloc(ptr unsafe.Pointer, oldSize, newSize uintptr) unsafe.Pointer {
	next := s.backingAlloc(newSize)
	s.mu.Lock()
	old, ok := s.blocks[ptr]
	dst := s.blocks[next]
	s.mu.Unlock()
	if ok {
		copyLen := oldSize
		if newSize < copyLen {
			copyLen = newSize
		}
		copy(dst, old[:copyLen])
	}
	s.backingFree(ptr, oldSize)
	return next
}

func (s *SimLibrary) backingFree(ptr unsafe.Pointer, size uintptr) {
	s.mu.Lock()
	_, ok := s.blocks[ptr]
	if ok {
		delete(s.blocks, ptr)
	}
	s.mu.Unlock()
	if ok {
		s.live.Add(-int64(size))
	}
}
