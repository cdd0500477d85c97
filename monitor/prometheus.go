package monitor

import "github.com/prometheus/client_golang/prometheus"

// Collector exposes a monitor's statistics as Prometheus metrics. Metrics
// are read from a Stats snapshot at scrape time, so registering a collector
// adds no cost to the allocation hot path.
type Collector struct {
	m *Monitor

	inuse     *prometheus.Desc
	peak      *prometheus.Desc
	triggers  *prometheus.Desc
	threshold *prometheus.Desc
	enabled   *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector returns a collector for m, ready to register.
func NewCollector(m *Monitor) *Collector {
	return &Collector{
		m: m,
		inuse: prometheus.NewDesc(
			"gmpmon_native_bytes_inuse",
			"Outstanding native bytes currently tracked by the allocation monitor.",
			nil, nil,
		),
		peak: prometheus.NewDesc(
			"gmpmon_native_bytes_peak",
			"High-water mark of tracked native bytes since the monitor was enabled.",
			nil, nil,
		),
		triggers: prometheus.NewDesc(
			"gmpmon_gc_triggers_total",
			"Garbage collection requests issued since the monitor was enabled.",
			nil, nil,
		),
		threshold: prometheus.NewDesc(
			"gmpmon_threshold_bytes",
			"Native usage threshold currently in force (escalation included).",
			nil, nil,
		),
		enabled: prometheus.NewDesc(
			"gmpmon_enabled",
			"Whether the allocation monitor shims are installed (1) or not (0).",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.inuse
	ch <- c.peak
	ch <- c.triggers
	ch <- c.threshold
	ch <- c.enabled
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.m.Stats()

	ch <- prometheus.MustNewConstMetric(c.inuse, prometheus.GaugeValue, float64(s.Usage))
	ch <- prometheus.MustNewConstMetric(c.peak, prometheus.GaugeValue, float64(s.Peak))
	ch <- prometheus.MustNewConstMetric(c.triggers, prometheus.CounterValue, float64(s.Triggers))
	ch <- prometheus.MustNewConstMetric(c.threshold, prometheus.GaugeValue, float64(s.Threshold))

	enabled := 0.0
	if s.Enabled {
		enabled = 1.0
	}
	ch <- prometheus.MustNewConstMetric(c.enabled, prometheus.GaugeValue, enabled)
}
