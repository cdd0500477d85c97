package monitor

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestThresholdMonotonicity_PropertyBased verifies the threshold controller's
// core invariant over arbitrary escalation histories: the threshold never
// decreases and never exceeds the configured maximum, whatever the initial
// configuration and however many crossings occur.
func TestThresholdMonotonicity_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("threshold is non-decreasing and capped", prop.ForAll(
		func(initial, headroom, crossingLimit int64, crossings int) bool {
			maxThreshold := initial + headroom
			p := newPacer(pacerConfig(initial, maxThreshold, crossingLimit))

			prev := p.currentThreshold()
			for i := 0; i < crossings; i++ {
				got, _ := p.recordCrossing()
				if got < prev || got > maxThreshold {
					return false
				}
				if got != p.currentThreshold() {
					return false
				}
				prev = got
			}
			return true
		},
		gen.Int64Range(1, 1<<30),
		gen.Int64Range(0, 1<<40),
		gen.Int64Range(1, 64),
		gen.IntRange(0, 300),
	))

	properties.Property("crossing limit never shrinks and never exceeds its ceiling", prop.ForAll(
		func(crossingLimit int64, crossings int) bool {
			p := newPacer(pacerConfig(1, 2, crossingLimit))

			prev := crossingLimit
			for i := 0; i < crossings; i++ {
				p.recordCrossing()
				s := p.snapshot()
				if s.crossingLimit < prev || s.crossingLimit > crossingLimitCeiling {
					return false
				}
				prev = s.crossingLimit
			}
			return true
		},
		gen.Int64Range(1, 64),
		gen.IntRange(0, 300),
	))

	properties.TestingRun(t)
}
