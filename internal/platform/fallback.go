package platform

import (
	"runtime"

	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"

	"github.com/agbru/resmon/internal/logging"
	"github.com/agbru/resmon/internal/metrics"
)

// FallbackProvider serves operating systems without a dedicated variant and
// stands in whenever another variant's counters fail.
//
// Its CPU figure is an explicit estimate, not a measurement: the count of
// active processes (thread count > 0) relative to processorCount x 10,
// capped at 100. Consumers must treat it as approximate.
type FallbackProvider struct {
	runtimeMem   *metrics.MemoryCollector
	processCount func() int
	processors   int
	log          logging.Logger
}

func newFallbackProvider(log logging.Logger) *FallbackProvider {
	return &FallbackProvider{
		runtimeMem:   metrics.NewMemoryCollector(),
		processCount: countActiveProcesses,
		processors:   runtime.NumCPU(),
		log:          log,
	}
}

// Variant identifies the measurement strategy.
func (p *FallbackProvider) Variant() string { return "fallback" }

// CPUPercent estimates utilization from active process density.
func (p *FallbackProvider) CPUPercent() float64 {
	active := p.processCount()
	if active <= 0 || p.processors <= 0 {
		return 0
	}
	estimate := 100 * float64(active) / float64(p.processors*10)
	return clampPercent(round1(estimate))
}

// MemoryInfo reports whatever the environment can. When the host memory
// status is readable it is used in full; otherwise only the runtime's own
// total is reported and used/available/percent stay zero.
func (p *FallbackProvider) MemoryInfo() MemoryInfo {
	vm, err := mem.VirtualMemory()
	if err == nil && vm != nil && vm.Total > 0 {
		const mb = 1024 * 1024
		info := MemoryInfo{
			TotalMB:     float64(vm.Total) / mb,
			AvailableMB: float64(vm.Available) / mb,
		}
		info.UsedMB = info.TotalMB - info.AvailableMB
		info.UsedPercent = clampPercent(round1(info.UsedMB / info.TotalMB * 100))
		return info
	}

	p.log.Debug("host memory status unreadable, reporting runtime total", logging.Err(err))
	return MemoryInfo{TotalMB: p.runtimeMem.SysMB()}
}

// Close releases the provider.
func (p *FallbackProvider) Close() error { return nil }

// countActiveProcesses counts processes that currently have at least one
// thread. Enumeration failure degrades to zero.
func countActiveProcesses() int {
	procs, err := process.Processes()
	if err != nil {
		return 0
	}
	active := 0
	for _, pr := range procs {
		if threads, err := pr.NumThreads(); err == nil && threads > 0 {
			active++
		}
	}
	return active
}
