//go:build cgo

package hooks

// The //export rules forbid definitions in this file's preamble, so the
// trampoline helpers live in gmp.go.

/*
#include <stddef.h>
*/
import "C"

import "unsafe"

//export gmpmonAllocate
func gmpmonAllocate(size C.size_t) unsafe.Pointer {
	return gmpDispatch.Load().Alloc(uintptr(size))
}

//export gmpmonReallocate
func gmpmonReallocate(ptr unsafe.Pointer, oldSize, newSize C.size_t) unsafe.Pointer {
	return gmpDispatch.Load().Realloc(ptr, uintptr(oldSize), uintptr(newSize))
}

//export gmpmonFree
func gmpmonFree(ptr unsafe.Pointer, size C.size_t) {
	gmpDispatch.Load().Free(ptr, uintptr(size))
}
