// Package sample defines the core measurement types shared between the
// sampling loop, aggregation, and presentation layers. Keeping these types
// in a leaf package avoids coupling producers and consumers to each other.
package sample

import "time"

// ProcessMetric is a point-in-time reading for a single process, captured
// during one enumeration pass. A new ProcessMetric is created on every tick
// even for the same pid: pids recycle, so identity across samples is by
// process name, never by pid.
type ProcessMetric struct {
	// PID is the operating system process identifier.
	PID int32
	// Name is the process image name used as the grouping key for rollups.
	Name string
	// WorkingSetMB is the resident memory footprint in megabytes.
	WorkingSetMB float64
	// PrivateMB is the private (non-shared) memory size in megabytes.
	PrivateMB float64
	// Threads is the thread count at capture time.
	Threads int32
	// CPUTime is the cumulative processor time consumed by the process.
	// Best-effort: zero when the platform cannot report it. Captured but
	// not consumed by aggregation or reporting; reserved for future use.
	CPUTime time.Duration
}

// Sample is one host-wide measurement taken at a single tick. It is
// immutable once constructed; the sampling loop is the only producer and
// appends it to the run buffer in sequence order.
type Sample struct {
	// Sequence is the 1-based, strictly increasing, gap-free tick number.
	Sequence int
	// Timestamp is the wall-clock time the measurement was taken.
	Timestamp time.Time
	// CPUPercent is the overall CPU utilization, clamped to [0,100].
	CPUPercent float64
	// TotalMB, UsedMB and AvailableMB describe host memory in megabytes.
	TotalMB     float64
	UsedMB      float64
	AvailableMB float64
	// MemPercent is the memory utilization, clamped to [0,100].
	MemPercent float64
	// Processes is ordered descending by working-set size; ties keep
	// enumeration order. An empty list is a valid degraded snapshot.
	Processes []ProcessMetric
}

// TopProcesses returns at most n leading entries of the process list.
// The returned slice aliases the sample's list; callers must not mutate it.
func (s Sample) TopProcesses(n int) []ProcessMetric {
	if n < 0 {
		n = 0
	}
	if n > len(s.Processes) {
		n = len(s.Processes)
	}
	return s.Processes[:n]
}
