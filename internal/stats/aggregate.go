// Package stats computes aggregate statistics over the ordered sample
// sequence of a finished (or partially finished) run.
package stats

import (
	"sort"

	"github.com/agbru/resmon/internal/sample"
)

// Rollup truncation limits. The persisted report keeps more entries than
// the interactive end-of-run summary.
const (
	SummaryTopN = 5
	ReportTopN  = 15
)

// ProcessRollup aggregates one process name across all samples of a run.
// Grouping is by name rather than pid: pids recycle, and short-lived
// processes with the same image recur across samples.
type ProcessRollup struct {
	Name            string
	AvgWorkingSetMB float64
	MaxWorkingSetMB float64
	AvgThreads      float64
}

// RunStatistics is the derived summary of a run. It is computed once over
// the full sample sequence and never persisted beyond the report.
type RunStatistics struct {
	MinCPUPercent float64
	AvgCPUPercent float64
	MaxCPUPercent float64
	MinMemPercent float64
	AvgMemPercent float64
	MaxMemPercent float64
	Rollups       []ProcessRollup
}

// Summarize computes run statistics over samples, keeping at most topN
// process rollups. The second return value is false when samples is empty:
// summary statistics are undefined without data, and callers must skip
// reporting instead of receiving zeros that look like measurements.
func Summarize(samples []sample.Sample, topN int) (RunStatistics, bool) {
	if len(samples) == 0 {
		return RunStatistics{}, false
	}

	stats := RunStatistics{
		MinCPUPercent: samples[0].CPUPercent,
		MaxCPUPercent: samples[0].CPUPercent,
		MinMemPercent: samples[0].MemPercent,
		MaxMemPercent: samples[0].MemPercent,
	}

	var cpuSum, memSum float64
	for _, s := range samples {
		cpuSum += s.CPUPercent
		memSum += s.MemPercent
		stats.MinCPUPercent = min(stats.MinCPUPercent, s.CPUPercent)
		stats.MaxCPUPercent = max(stats.MaxCPUPercent, s.CPUPercent)
		stats.MinMemPercent = min(stats.MinMemPercent, s.MemPercent)
		stats.MaxMemPercent = max(stats.MaxMemPercent, s.MemPercent)
	}
	n := float64(len(samples))
	stats.AvgCPUPercent = cpuSum / n
	stats.AvgMemPercent = memSum / n

	stats.Rollups = rollupProcesses(samples, topN)
	return stats, true
}

// group accumulates one process name's readings during the rollup pass.
type group struct {
	name       string
	count      int
	sumWS      float64
	maxWS      float64
	sumThreads float64
}

// rollupProcesses flattens every ProcessMetric across all samples, groups
// by process name, and returns the topN groups by average working set,
// descending. Name breaks ties so output order is deterministic.
func rollupProcesses(samples []sample.Sample, topN int) []ProcessRollup {
	groups := make(map[string]*group)
	for _, s := range samples {
		for _, p := range s.Processes {
			g, ok := groups[p.Name]
			if !ok {
				g = &group{name: p.Name}
				groups[p.Name] = g
			}
			g.count++
			g.sumWS += p.WorkingSetMB
			g.maxWS = max(g.maxWS, p.WorkingSetMB)
			g.sumThreads += float64(p.Threads)
		}
	}

	rollups := make([]ProcessRollup, 0, len(groups))
	for _, g := range groups {
		rollups = append(rollups, ProcessRollup{
			Name:            g.name,
			AvgWorkingSetMB: g.sumWS / float64(g.count),
			MaxWorkingSetMB: g.maxWS,
			AvgThreads:      g.sumThreads / float64(g.count),
		})
	}

	sort.Slice(rollups, func(i, j int) bool {
		if rollups[i].AvgWorkingSetMB != rollups[j].AvgWorkingSetMB {
			return rollups[i].AvgWorkingSetMB > rollups[j].AvgWorkingSetMB
		}
		return rollups[i].Name < rollups[j].Name
	})

	if topN >= 0 && len(rollups) > topN {
		rollups = rollups[:topN]
	}
	return rollups
}
