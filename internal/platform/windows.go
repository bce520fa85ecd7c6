package platform

import (
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/agbru/resmon/internal/logging"
)

// counterWarmup is the pause after the priming read. Performance counters
// need one discarded sample before their deltas mean anything.
const counterWarmup = 250 * time.Millisecond

// WindowsProvider measures CPU through the processor-time performance
// counter and memory through the global memory status, both via gopsutil.
// Any counter failure silently degrades to fallback behavior for that call
// only; the counter is retried on the next tick.
type WindowsProvider struct {
	fallback *FallbackProvider
	log      logging.Logger
}

func newWindowsProvider(log logging.Logger) *WindowsProvider {
	p := &WindowsProvider{
		fallback: newFallbackProvider(log),
		log:      log,
	}
	// Prime the counter with a discarded read so the first steady-state
	// call has a baseline delta.
	_, _ = cpu.Percent(0, false)
	time.Sleep(counterWarmup)
	return p
}

// Variant identifies the measurement strategy.
func (p *WindowsProvider) Variant() string { return "windows" }

// CPUPercent returns processor utilization since the previous call.
func (p *WindowsProvider) CPUPercent() float64 {
	pcts, err := cpu.Percent(0, false)
	if err != nil || len(pcts) == 0 {
		p.log.Debug("processor counter unreadable", logging.Err(err))
		return p.fallback.CPUPercent()
	}
	return clampPercent(round1(pcts[0]))
}

// MemoryInfo returns host memory totals; used = total - available.
func (p *WindowsProvider) MemoryInfo() MemoryInfo {
	vm, err := mem.VirtualMemory()
	if err != nil || vm == nil || vm.Total == 0 {
		p.log.Debug("memory status unreadable", logging.Err(err))
		return p.fallback.MemoryInfo()
	}

	const mb = 1024 * 1024
	info := MemoryInfo{
		TotalMB:     float64(vm.Total) / mb,
		AvailableMB: float64(vm.Available) / mb,
	}
	info.UsedMB = info.TotalMB - info.AvailableMB
	info.UsedPercent = clampPercent(round1(info.UsedMB / info.TotalMB * 100))
	return info
}

// Close releases the provider. The counter handle is managed by gopsutil,
// so only the embedded fallback state needs disposal.
func (p *WindowsProvider) Close() error {
	return p.fallback.Close()
}
