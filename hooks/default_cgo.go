//go:build cgo

package hooks

// NewDefaultLibrary returns the library whose allocations the monitor should
// watch on this build: the process-wide libgmp adapter.
func NewDefaultLibrary() Library {
	return NewGMPLibrary()
}
