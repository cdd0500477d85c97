// Package hooks captures and replaces the allocator entry points that a
// native arbitrary-precision library invokes for all of its dynamic memory.
//
// The native contract is deliberately narrow: a library exposes exactly one
// active allocator triple (allocate, reallocate, free) and two operations on
// it, query and replace. Everything above this package composes triples; it
// never talks to the native side directly.
package hooks

import "unsafe"

// AllocFn allocates size bytes of native memory.
type AllocFn func(size uintptr) unsafe.Pointer

// ReallocFn resizes a native block from oldSize to newSize bytes.
type ReallocFn func(ptr unsafe.Pointer, oldSize, newSize uintptr) unsafe.Pointer

// FreeFn releases a native block of the given size.
type FreeFn func(ptr unsafe.Pointer, size uintptr)

// Triple is one complete set of allocator entry points. The native library
// routes every allocation, resize and release through whichever triple is
// currently installed.
type Triple struct {
	Alloc   AllocFn
	Realloc ReallocFn
	Free    FreeFn
}

// Complete reports whether all three entry points are set. A triple captured
// from a live library instance is always complete.
func (t Triple) Complete() bool {
	return t.Alloc != nil && t.Realloc != nil && t.Free != nil
}

// Library is the hook-registration surface of a native library: query the
// active allocator triple and replace it. Implementations exist for libgmp
// (cgo builds) and for an in-process simulation used in tests.
type Library interface {
	// MemoryFunctions returns the currently active triple.
	MemoryFunctions() Triple
	// SetMemoryFunctions replaces the active triple. Installing the triple
	// that is already active is a no-op in effect.
	SetMemoryFunctions(Triple)
}

// Registry saves and installs allocator triples on a Library. It holds no
// state of its own; it exists so callers depend on a capture/install pair
// rather than on a concrete library type.
type Registry struct {
	lib Library
}

// NewRegistry returns a registry bound to lib.
func NewRegistry(lib Library) *Registry {
	return &Registry{lib: lib}
}

// Capture queries the library for its currently active triple. It must be
// called before the first Install so the original entry points can be
// restored later.
func (r *Registry) Capture() Triple {
	return r.lib.MemoryFunctions()
}

// Install atomically replaces the library's active triple.
func (r *Registry) Install(t Triple) {
	r.lib.SetMemoryFunctions(t)
}
