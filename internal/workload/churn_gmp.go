//go:build cgo

package workload

import (
	"context"
	"sync/atomic"

	"github.com/ncw/gmp"
)

// churn builds ever-larger factorials, restarting when the accumulator
// reaches MaxBits. Every multiplication grows the value's limb array, so
// libgmp reallocates native storage constantly; dropping the accumulator
// leaves the old storage to GMP finalizers, which is exactly the pressure
// pattern the monitor exists for.
func churn(ctx context.Context, opts Options, ops *atomic.Int64) error {
	acc := gmp.NewInt(1)
	step := gmp.NewInt(0)

	for n := int64(2); ; n++ {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		acc.Mul(acc, step.SetInt64(n))
		if acc.BitLen() > opts.MaxBits {
			// Drop the big accumulator and start over with a fresh value.
			acc = gmp.NewInt(1)
			n = 1
		}
		ops.Add(1)
	}
}
