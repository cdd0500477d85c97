package monitor

import "sync/atomic"

// usageCounter tracks outstanding native bytes. Mutated from every
// intercepted allocate/reallocate/free call, concurrently, from arbitrary
// call stacks, so the whole thing is a single fetch-and-add plus a CAS loop
// for the high-water mark. It never blocks.
type usageCounter struct {
	cur  atomic.Int64
	peak atomic.Int64
}

// add applies a signed delta and returns the post-update total. The trigger
// decision path uses this return value, never a separate read, so there is
// no window between "update" and "decide".
func (c *usageCounter) add(delta int64) int64 {
	n := c.cur.Add(delta)
	for {
		p := c.peak.Load()
		if n <= p || c.peak.CompareAndSwap(p, n) {
			break
		}
	}
	return n
}

// read returns a snapshot of the current total. Diagnostics and the cooldown
// watermark poll only; not part of the trigger decision.
func (c *usageCounter) read() int64 {
	return c.cur.Load()
}

// highWater returns the peak total observed since the last reset.
func (c *usageCounter) highWater() int64 {
	return c.peak.Load()
}

// reset zeroes both the current total and the peak.
func (c *usageCounter) reset() {
	c.cur.Store(0)
	c.peak.Store(0)
}
