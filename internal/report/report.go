// Package report serializes a finished run into a deterministic plain-text
// document. Section order, column widths and numeric precision are fixed:
// downstream consumers parse these reports, so the byte layout is part of
// the contract. Percentages carry one decimal place, memory is whole MB.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/agbru/resmon/internal/format"
	"github.com/agbru/resmon/internal/sample"
	"github.com/agbru/resmon/internal/stats"
)

// timeLayout is the timestamp format used throughout the report.
const timeLayout = "2006-01-02 15:04:05"

// detailProcessCount is how many processes each per-sample detail block
// lists, ordered by working set.
const detailProcessCount = 10

// RunMeta carries the run-level facts the report header needs.
type RunMeta struct {
	GeneratedAt time.Time
	Platform    string
	Processors  int
	Duration    time.Duration
	Interval    time.Duration
}

// Format renders the full report document: header, summary statistics,
// process rollup, then one detail block per sample. A run with zero
// samples produces only the header and an explicit notice, never empty
// statistics sections.
func Format(samples []sample.Sample, meta RunMeta) string {
	var sb strings.Builder

	writeHeader(&sb, samples, meta)

	runStats, ok := stats.Summarize(samples, stats.ReportTopN)
	if !ok {
		sb.WriteString("\nNo samples were collected.\n")
		return sb.String()
	}

	writeSummary(&sb, runStats)
	writeRollup(&sb, runStats.Rollups)
	writeDetails(&sb, samples)

	return sb.String()
}

func writeHeader(sb *strings.Builder, samples []sample.Sample, meta RunMeta) {
	fmt.Fprintf(sb, "=== Resource Monitoring Report ===\n")
	fmt.Fprintf(sb, "Generated:   %s\n", meta.GeneratedAt.Format(timeLayout))
	fmt.Fprintf(sb, "Platform:    %s\n", meta.Platform)
	fmt.Fprintf(sb, "Processors:  %d\n", meta.Processors)
	fmt.Fprintf(sb, "Duration:    %s (interval %s)\n", meta.Duration, meta.Interval)
	fmt.Fprintf(sb, "Samples:     %d\n", len(samples))
	if len(samples) > 0 {
		fmt.Fprintf(sb, "First:       %s\n", samples[0].Timestamp.Format(timeLayout))
		fmt.Fprintf(sb, "Last:        %s\n", samples[len(samples)-1].Timestamp.Format(timeLayout))
	}
}

func writeSummary(sb *strings.Builder, runStats stats.RunStatistics) {
	fmt.Fprintf(sb, "\n--- Summary ---\n")
	fmt.Fprintf(sb, "%-10s %8s %8s %8s\n", "", "Min", "Avg", "Max")
	fmt.Fprintf(sb, "%-10s %8s %8s %8s\n", "CPU %",
		format.FormatPercent(runStats.MinCPUPercent),
		format.FormatPercent(runStats.AvgCPUPercent),
		format.FormatPercent(runStats.MaxCPUPercent))
	fmt.Fprintf(sb, "%-10s %8s %8s %8s\n", "Memory %",
		format.FormatPercent(runStats.MinMemPercent),
		format.FormatPercent(runStats.AvgMemPercent),
		format.FormatPercent(runStats.MaxMemPercent))
}

func writeRollup(sb *strings.Builder, rollups []stats.ProcessRollup) {
	fmt.Fprintf(sb, "\n--- Process Rollup (top %d by avg working set) ---\n", stats.ReportTopN)
	fmt.Fprintf(sb, "%-28s %11s %11s %13s\n", "NAME", "AVG WS MB", "MAX WS MB", "AVG THREADS")
	for _, r := range rollups {
		fmt.Fprintf(sb, "%-28.28s %11s %11s %13s\n",
			r.Name,
			format.FormatMB(r.AvgWorkingSetMB),
			format.FormatMB(r.MaxWorkingSetMB),
			format.FormatAverage(r.AvgThreads))
	}
}

func writeDetails(sb *strings.Builder, samples []sample.Sample) {
	fmt.Fprintf(sb, "\n--- Samples ---\n")
	for _, s := range samples {
		fmt.Fprintf(sb, "\n[%d] %s  CPU %s%%  Memory %s/%s MB used, %s MB available (%s%%)\n",
			s.Sequence,
			s.Timestamp.Format(timeLayout),
			format.FormatPercent(s.CPUPercent),
			format.FormatMB(s.UsedMB),
			format.FormatMB(s.TotalMB),
			format.FormatMB(s.AvailableMB),
			format.FormatPercent(s.MemPercent))
		top := s.TopProcesses(detailProcessCount)
		if len(top) == 0 {
			continue
		}
		fmt.Fprintf(sb, "    %-8s %-28s %9s %9s %9s\n", "PID", "NAME", "WS MB", "PRIV MB", "THREADS")
		for _, p := range top {
			fmt.Fprintf(sb, "    %-8d %-28.28s %9s %9s %9d\n",
				p.PID,
				p.Name,
				format.FormatMB(p.WorkingSetMB),
				format.FormatMB(p.PrivateMB),
				p.Threads)
		}
	}
}
