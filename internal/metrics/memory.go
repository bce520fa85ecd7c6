// Package metrics reads memory statistics from the Go runtime. It is the
// last-resort memory source for platforms where no host-wide counters are
// available.
package metrics

import "runtime"

// MemorySnapshot holds a point-in-time memory reading.
type MemorySnapshot struct {
	HeapAlloc uint64 // bytes in use by application
	HeapSys   uint64 // bytes obtained from OS for heap
	Sys       uint64 // total bytes obtained from OS
	NumGC     uint32 // number of completed GC cycles
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc: m.HeapAlloc,
		HeapSys:   m.HeapSys,
		Sys:       m.Sys,
		NumGC:     m.NumGC,
	}
}

// SysMB returns the total bytes obtained from the OS, in megabytes. This is
// a process-level figure, not a host-wide one; callers reporting it must
// treat it as degraded data.
func (mc *MemoryCollector) SysMB() float64 {
	return float64(mc.Snapshot().Sys) / (1024 * 1024)
}
