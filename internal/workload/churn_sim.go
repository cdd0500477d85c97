//go:build !cgo

package workload

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/agbru/gmpmon/hooks"
)

// churn mimics the limb growth of an accumulating GMP value against the
// simulated library: a block that doubles through the installed reallocate
// hook until it reaches MaxBits, then is freed and restarted.
func churn(ctx context.Context, opts Options, ops *atomic.Int64) error {
	sim, ok := opts.Library.(*hooks.SimLibrary)
	if !ok {
		return fmt.Errorf("workload: simulated churn needs a *hooks.SimLibrary, got %T", opts.Library)
	}

	const limb = 64
	maxBytes := uintptr(opts.MaxBits / 8)

	size := uintptr(limb)
	ptr := sim.Allocate(size)
	defer func() { sim.Free(ptr, size) }()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		next := size * 2
		if next > maxBytes {
			sim.Free(ptr, size)
			size = limb
			ptr = sim.Allocate(size)
		} else {
			ptr = sim.Reallocate(ptr, size, next)
			size = next
		}
		ops.Add(1)
	}
}
