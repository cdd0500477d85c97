package app

import (
	"bytes"
	"strings"
	"testing"

	"github.com/agbru/gmpmon/internal/metrics"
	"github.com/agbru/gmpmon/internal/workload"
	"github.com/agbru/gmpmon/monitor"
)

func TestWriteSummary_ContainsStats(t *testing.T) {
	var buf bytes.Buffer
	writeSummary(&buf,
		monitor.Stats{Usage: 2048, Peak: 4096, Triggers: 3, Threshold: 100_000},
		workload.Totals{Operations: 42},
		metrics.MemorySnapshot{NumGC: 1},
		metrics.MemorySnapshot{NumGC: 5},
	)

	out := buf.String()
	for _, want := range []string{"2.0 KiB", "4.0 KiB", "3", "42", "4"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary should contain %q, got:\n%s", want, out)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{4 << 20, "4.0 MiB"},
		{3 << 30, "3.0 GiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
