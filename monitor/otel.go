package monitor

import (
	"context"

	"go.opentelemetry.io/otel/metric"
)

// RegisterMeter registers observable instruments for m's statistics on the
// given meter. Observations happen at collection time from a Stats snapshot.
// The returned registration unregisters the callback.
func RegisterMeter(meter metric.Meter, m *Monitor) (metric.Registration, error) {
	inuse, err := meter.Int64ObservableGauge("gmpmon.native.bytes.inuse",
		metric.WithUnit("By"),
		metric.WithDescription("Outstanding native bytes tracked by the allocation monitor."))
	if err != nil {
		return nil, err
	}
	peak, err := meter.Int64ObservableGauge("gmpmon.native.bytes.peak",
		metric.WithUnit("By"),
		metric.WithDescription("High-water mark of tracked native bytes since enable."))
	if err != nil {
		return nil, err
	}
	threshold, err := meter.Int64ObservableGauge("gmpmon.threshold.bytes",
		metric.WithUnit("By"),
		metric.WithDescription("Native usage threshold currently in force."))
	if err != nil {
		return nil, err
	}
	triggers, err := meter.Int64ObservableCounter("gmpmon.gc.triggers",
		metric.WithDescription("Garbage collection requests issued since enable."))
	if err != nil {
		return nil, err
	}

	return meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		s := m.Stats()
		o.ObserveInt64(inuse, s.Usage)
		o.ObserveInt64(peak, s.Peak)
		o.ObserveInt64(threshold, s.Threshold)
		o.ObserveInt64(triggers, s.Triggers)
		return nil
	}, inuse, peak, threshold, triggers)
}
