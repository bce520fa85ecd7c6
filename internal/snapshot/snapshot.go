// Package snapshot enumerates running processes and captures per-process
// memory and thread metrics. A process list is an inherently racy view of a
// mutating set, so the policy is "collect what you can": any single process
// that cannot be read is skipped and the rest of the snapshot stands.
package snapshot

import (
	"sort"
	"time"

	"github.com/shirou/gopsutil/v4/process"

	"github.com/agbru/resmon/internal/logging"
	"github.com/agbru/resmon/internal/sample"
)

const bytesPerMB = 1024 * 1024

// Snapshotter captures per-process metrics for all currently running
// processes. Process handles opened during an enumeration are released by
// gopsutil before Snapshot returns, success or not.
type Snapshotter struct {
	log logging.Logger

	// enumerate is swapped out by tests.
	enumerate func() ([]*process.Process, error)
}

// New creates a Snapshotter.
func New(log logging.Logger) *Snapshotter {
	return &Snapshotter{log: log, enumerate: process.Processes}
}

// Snapshot returns metrics for every readable process, sorted descending by
// working-set size; ties preserve enumeration order. Enumeration failure
// degrades to an empty snapshot rather than an error: a sample with zero
// processes is valid.
func (s *Snapshotter) Snapshot() []sample.ProcessMetric {
	procs, err := s.enumerate()
	if err != nil {
		s.log.Debug("process enumeration failed", logging.Err(err))
		return nil
	}

	out := make([]sample.ProcessMetric, 0, len(procs))
	for _, pr := range procs {
		if m, ok := s.readProcess(pr); ok {
			out = append(out, m)
		}
	}

	sortByWorkingSet(out)
	return out
}

// sortByWorkingSet orders metrics descending by working-set size. The sort
// is stable so equal-sized processes keep their enumeration order.
func sortByWorkingSet(metrics []sample.ProcessMetric) {
	sort.SliceStable(metrics, func(i, j int) bool {
		return metrics[i].WorkingSetMB > metrics[j].WorkingSetMB
	})
}

// readProcess captures one process's metrics. Name, memory and thread reads
// are required: failure on any of them (permission denied, process exited
// mid-enumeration) skips the whole entry. Cumulative CPU time is
// best-effort and records zero when unavailable.
func (s *Snapshotter) readProcess(pr *process.Process) (sample.ProcessMetric, bool) {
	name, err := pr.Name()
	if err != nil {
		return sample.ProcessMetric{}, false
	}
	memInfo, err := pr.MemoryInfo()
	if err != nil || memInfo == nil {
		return sample.ProcessMetric{}, false
	}
	threads, err := pr.NumThreads()
	if err != nil {
		return sample.ProcessMetric{}, false
	}

	metric := sample.ProcessMetric{
		PID:          pr.Pid,
		Name:         name,
		WorkingSetMB: float64(memInfo.RSS) / bytesPerMB,
		PrivateMB:    float64(memInfo.VMS) / bytesPerMB,
		Threads:      threads,
	}

	if times, err := pr.Times(); err == nil && times != nil {
		metric.CPUTime = time.Duration((times.User + times.System) * float64(time.Second))
	}
	return metric, true
}
