// Package monitor tracks the native memory a GMP-backed arbitrary-precision
// library holds outside the Go heap and forces garbage collection when that
// usage crosses an adaptive threshold.
//
// Go's collector only sees host-heap pressure. A process doing heavy GMP
// arithmetic can pin gigabytes of native limb storage behind finalizer-sized
// Go values, and the runtime has no reason to collect. The monitor closes
// that gap: it decorates the library's allocator triple with shims that
// maintain an atomic count of outstanding native bytes, and a trigger that
// requests a GC pass when the count crosses a threshold. Repeated crossings
// escalate the threshold (doubling, capped) and an adaptive cooldown paces
// requests so a hot allocation loop cannot turn into a collection storm.
//
// Typical use:
//
//	mon, err := monitor.New(hooks.NewDefaultLibrary(), monitor.DefaultConfig())
//	if err != nil { ... }
//	mon.Enable()
//	defer mon.Disable()
package monitor
