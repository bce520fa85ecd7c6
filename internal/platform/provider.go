// Package platform measures host-wide CPU and memory utilization. Each
// supported operating system gets its own Provider variant; selection
// happens once at startup so no OS branching leaks into the sampling loop.
//
// Providers never return errors: a monitoring tool must keep sampling
// rather than abort a run over a transient OS read failure, so every read
// failure degrades to a zero or fallback value instead.
package platform

import (
	"math"
	"runtime"

	"github.com/agbru/resmon/internal/logging"
)

// MemoryInfo describes host memory at one point in time. All sizes are in
// megabytes; UsedPercent is rounded to one decimal and clamped to [0,100].
type MemoryInfo struct {
	TotalMB     float64
	UsedMB      float64
	AvailableMB float64
	UsedPercent float64
}

// Provider yields instantaneous CPU and memory utilization for the host.
// A Provider owns whatever state its measurement needs (previous counter
// values, native handles) for the lifetime of a single run; it is not safe
// for concurrent use and must be closed when the run ends.
type Provider interface {
	// CPUPercent returns overall CPU utilization in [0,100]. Delta-based
	// variants return 0 on their first call, before a baseline exists.
	CPUPercent() float64
	// MemoryInfo returns current host memory totals. Degrades to zero
	// values when no source is readable.
	MemoryInfo() MemoryInfo
	// Variant identifies the measurement strategy ("linux", "windows",
	// "fallback") for logging and the report header.
	Variant() string
	// Close releases provider-owned state. The provider must not be used
	// afterwards.
	Close() error
}

// NewProvider selects the measurement strategy for the current operating
// system. The decision is made once; callers hold the returned Provider for
// the whole run.
func NewProvider(log logging.Logger) Provider {
	switch runtime.GOOS {
	case "linux":
		return newLinuxProvider(log)
	case "windows":
		return newWindowsProvider(log)
	default:
		return newFallbackProvider(log)
	}
}

// clampPercent bounds a percentage to [0,100]. Applied to every value a
// provider hands out, regardless of source.
func clampPercent(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// round1 rounds to one decimal place, the precision all percentages carry.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
