//go:build cgo

package hooks

/*
#cgo LDFLAGS: -lgmp
#include <gmp.h>

// Implemented in gmp_export.go; cgo generates the C-side wrappers.
extern void *gmpmonAllocate(size_t size);
extern void *gmpmonReallocate(void *ptr, size_t old_size, size_t new_size);
extern void gmpmonFree(void *ptr, size_t size);

typedef void *(*gmpmon_alloc_fn)(size_t);
typedef void *(*gmpmon_realloc_fn)(void *, size_t, size_t);
typedef void (*gmpmon_free_fn)(void *, size_t);

static void gmpmon_get_functions(gmpmon_alloc_fn *a, gmpmon_realloc_fn *r, gmpmon_free_fn *f) {
	mp_get_memory_functions(a, r, f);
}

static void gmpmon_route_through_go(void) {
	mp_set_memory_functions(gmpmonAllocate, gmpmonReallocate, gmpmonFree);
}

static void *gmpmon_call_alloc(gmpmon_alloc_fn f, size_t n) {
	return f(n);
}

static void *gmpmon_call_realloc(gmpmon_realloc_fn f, void *p, size_t o, size_t n) {
	return f(p, o, n);
}

static void gmpmon_call_free(gmpmon_free_fn f, void *p, size_t n) {
	f(p, n);
}
*/
import "C"

import (
	"sync"
	"sync/atomic"
	"unsafe"
)

// gmpDispatch is the triple the exported trampolines forward to. It is
// package-global because libgmp's hook slots are process-global: whatever is
// stored here sees every allocation libgmp makes, from any goroutine and
// from any binding (ncw/gmp included) linked against the same libgmp.
var gmpDispatch atomic.Pointer[Triple]

var (
	gmpOnce sync.Once
	gmpLib  *GMPLibrary
)

// GMPLibrary adapts libgmp's mp_get_memory_functions /
// mp_set_memory_functions pair to the Library interface.
//
// libgmp hooks are raw C function pointers, so arbitrary Go triples cannot
// be handed to mp_set_memory_functions directly. Instead a fixed set of C
// trampolines is registered once, and SetMemoryFunctions swaps the Go triple
// those trampolines dispatch to. Restoring the "original" triple therefore
// still routes through the trampolines; the original entry points run, one
// indirect call later.
type GMPLibrary struct {
	native Triple
}

// NewGMPLibrary returns the process-wide libgmp adapter. The first call
// captures libgmp's own allocator entry points; later calls return the same
// instance, so the captured originals are never the trampolines themselves.
func NewGMPLibrary() *GMPLibrary {
	gmpOnce.Do(func() {
		var a C.gmpmon_alloc_fn
		var r C.gmpmon_realloc_fn
		var f C.gmpmon_free_fn
		C.gmpmon_get_functions(&a, &r, &f)
		gmpLib = &GMPLibrary{native: Triple{
			Alloc: func(size uintptr) unsafe.Pointer {
				return C.gmpmon_call_alloc(a, C.size_t(size))
			},
			Realloc: func(ptr unsafe.Pointer, oldSize, newSize uintptr) unsafe.Pointer {
				return C.gmpmon_call_realloc(r, ptr, C.size_t(oldSize), C.size_t(newSize))
			},
			Free: func(ptr unsafe.Pointer, size uintptr) {
				C.gmpmon_call_free(f, ptr, C.size_t(size))
			},
		}}
		gmpDispatch.Store(&gmpLib.native)
	})
	return gmpLib
}

// MemoryFunctions returns the triple the trampolines currently dispatch to.
func (g *GMPLibrary) MemoryFunctions() Triple {
	return *gmpDispatch.Load()
}

// SetMemoryFunctions swaps the dispatch triple and makes sure libgmp routes
// through the trampolines. Re-registering the trampolines is idempotent on
// the libgmp side.
func (g *GMPLibrary) SetMemoryFunctions(t Triple) {
	gmpDispatch.Store(&t)
	C.gmpmon_route_through_go()
}
