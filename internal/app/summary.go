package app

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/gmpmon/internal/metrics"
	"github.com/agbru/gmpmon/internal/workload"
	"github.com/agbru/gmpmon/monitor"
)

var (
	summaryTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	summaryLabelStyle = lipgloss.NewStyle().Faint(true).Width(24)
	summaryValueStyle = lipgloss.NewStyle().Bold(true)
)

// writeSummary renders the end-of-run report.
func writeSummary(out io.Writer, s monitor.Stats, totals workload.Totals, hostBefore, hostAfter metrics.MemorySnapshot) {
	cycles, pauseNs := hostAfter.Delta(hostBefore)

	fmt.Fprintln(out, summaryTitleStyle.Render("allocation monitor summary"))

	row := func(label, value string) {
		fmt.Fprintf(out, "%s %s\n", summaryLabelStyle.Render(label), summaryValueStyle.Render(value))
	}

	row("native bytes in use", formatBytes(s.Usage))
	row("native bytes peak", formatBytes(s.Peak))
	row("gc triggers", fmt.Sprintf("%d", s.Triggers))
	row("threshold in force", formatBytes(s.Threshold))
	row("cooldown pause", s.Pause.String())
	row("workload operations", fmt.Sprintf("%d", totals.Operations))
	row("host gc cycles", fmt.Sprintf("%d", cycles))
	row("host gc pause total", time.Duration(pauseNs).String())
}

// formatBytes renders a byte count with a binary unit suffix.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
