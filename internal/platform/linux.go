package platform

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/agbru/resmon/internal/logging"
)

// cpuMonitorState holds the previous jiffie counters for delta-based CPU
// computation. It is owned exclusively by one LinuxProvider for the run's
// lifetime and is never shared.
type cpuMonitorState struct {
	lastTotal uint64
	lastIdle  uint64
	primed    bool
}

// LinuxProvider measures CPU from /proc/stat jiffie deltas and memory from
// /proc/meminfo.
type LinuxProvider struct {
	procRoot string
	state    cpuMonitorState
	log      logging.Logger
}

func newLinuxProvider(log logging.Logger) *LinuxProvider {
	return newLinuxProviderAt("/proc", log)
}

// newLinuxProviderAt reads procfs under the given root. Tests point this at
// a fixture directory.
func newLinuxProviderAt(procRoot string, log logging.Logger) *LinuxProvider {
	return &LinuxProvider{procRoot: procRoot, log: log}
}

// Variant identifies the measurement strategy.
func (p *LinuxProvider) Variant() string { return "linux" }

// CPUPercent computes busy% = 100 * (1 - idleDelta/totalDelta) against the
// previous read. The first call establishes the baseline and reports 0; two
// reads landing on the same counters (totalDelta == 0) also report 0 rather
// than dividing by zero.
func (p *LinuxProvider) CPUPercent() float64 {
	total, idle, err := readCPUCounters(filepath.Join(p.procRoot, "stat"))
	if err != nil {
		p.log.Debug("cpu counters unreadable", logging.Err(err))
		return 0
	}

	if !p.state.primed || total < p.state.lastTotal {
		// No baseline yet, or the counters went backwards (reset).
		p.state = cpuMonitorState{lastTotal: total, lastIdle: idle, primed: true}
		return 0
	}

	totalDelta := total - p.state.lastTotal
	idleDelta := idle - p.state.lastIdle
	p.state.lastTotal = total
	p.state.lastIdle = idle

	if totalDelta == 0 {
		return 0
	}
	busy := 100 * (1 - float64(idleDelta)/float64(totalDelta))
	return clampPercent(round1(busy))
}

// MemoryInfo parses MemTotal and MemAvailable from /proc/meminfo.
func (p *LinuxProvider) MemoryInfo() MemoryInfo {
	totalKB, availKB, err := readMeminfo(filepath.Join(p.procRoot, "meminfo"))
	if err != nil {
		p.log.Debug("meminfo unreadable", logging.Err(err))
		return MemoryInfo{}
	}

	info := MemoryInfo{
		TotalMB:     float64(totalKB) / 1024,
		AvailableMB: float64(availKB) / 1024,
	}
	info.UsedMB = info.TotalMB - info.AvailableMB
	if info.TotalMB > 0 {
		info.UsedPercent = clampPercent(round1(info.UsedMB / info.TotalMB * 100))
	}
	return info
}

// Close discards the delta baseline, ending the monitor's lifecycle.
func (p *LinuxProvider) Close() error {
	p.state = cpuMonitorState{}
	return nil
}

// readCPUCounters parses the aggregate "cpu" line of /proc/stat. The first
// five fields are user, nice, system, idle and iowait jiffies; total is
// their sum and idle time includes iowait.
func readCPUCounters(path string) (total, idle uint64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 6 || fields[0] != "cpu" {
			continue
		}
		var vals [5]uint64
		for i := 0; i < 5; i++ {
			v, perr := strconv.ParseUint(fields[i+1], 10, 64)
			if perr != nil {
				return 0, 0, perr
			}
			vals[i] = v
		}
		total = vals[0] + vals[1] + vals[2] + vals[3] + vals[4]
		idle = vals[3] + vals[4]
		return total, idle, nil
	}
	if err := scanner.Err(); err != nil {
		return 0, 0, err
	}
	return 0, 0, os.ErrNotExist
}

// readMeminfo extracts MemTotal and MemAvailable (both in kB) from the
// key:value lines of /proc/meminfo.
func readMeminfo(path string) (totalKB, availKB uint64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		key, rest, ok := strings.Cut(scanner.Text(), ":")
		if !ok {
			continue
		}
		fields := strings.Fields(rest)
		if len(fields) == 0 {
			continue
		}
		switch key {
		case "MemTotal":
			totalKB, _ = strconv.ParseUint(fields[0], 10, 64)
		case "MemAvailable":
			availKB, _ = strconv.ParseUint(fields[0], 10, 64)
		}
	}
	return totalKB, availKB, scanner.Err()
}
