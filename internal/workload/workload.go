// Package workload generates sustained arbitrary-precision allocation
// pressure so the monitor has something to watch. On cgo builds the churn
// runs real GMP arithmetic through ncw/gmp, whose limb storage comes from
// the very libgmp allocator the monitor intercepts; without cgo it drives a
// simulated library's installed triple with the same growth pattern.
package workload

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/gmpmon/hooks"
)

// Options shapes one workload run.
type Options struct {
	// Workers is the number of concurrent churn goroutines.
	Workers int
	// Library receives the simulated churn on builds without cgo. The GMP
	// churn allocates through the process-global libgmp hooks and ignores it.
	Library hooks.Library
	// MaxBits caps each value's size before the worker restarts its
	// accumulation, keeping usage sawtoothing instead of growing forever.
	MaxBits int
}

// Totals summarizes a finished run.
type Totals struct {
	// Operations counts completed arithmetic (or simulated growth) steps.
	Operations int64
}

// Run churns until ctx is done. Cancellation is the normal way a run ends;
// it is not reported as an error.
func Run(ctx context.Context, opts Options) (Totals, error) {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.MaxBits == 0 {
		opts.MaxBits = 1 << 20
	}

	var ops atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < opts.Workers; i++ {
		g.Go(func() error {
			return churn(ctx, opts, &ops)
		})
	}
	err := g.Wait()
	return Totals{Operations: ops.Load()}, err
}
