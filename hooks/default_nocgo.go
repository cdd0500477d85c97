//go:build !cgo

package hooks

// NewDefaultLibrary returns the library whose allocations the monitor should
// watch on this build. Without cgo no libgmp is linked, so the simulated
// library stands in.
func NewDefaultLibrary() Library {
	return NewSimLibrary()
}
