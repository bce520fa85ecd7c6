package stats

import (
	"testing"

	"github.com/agbru/resmon/internal/sample"
)

func cpuSample(seq int, cpu float64) sample.Sample {
	return sample.Sample{Sequence: seq, CPUPercent: cpu, MemPercent: cpu}
}

func TestSummarize_EmptyInputSignalsNoData(t *testing.T) {
	t.Parallel()
	if _, ok := Summarize(nil, ReportTopN); ok {
		t.Error("Summarize(nil) ok = true, want false (no data)")
	}
	if _, ok := Summarize([]sample.Sample{}, ReportTopN); ok {
		t.Error("Summarize(empty) ok = true, want false (no data)")
	}
}

func TestSummarize_MinAvgMax(t *testing.T) {
	t.Parallel()
	samples := []sample.Sample{
		cpuSample(1, 10),
		cpuSample(2, 50),
		cpuSample(3, 90),
	}

	stats, ok := Summarize(samples, ReportTopN)
	if !ok {
		t.Fatal("Summarize returned no data for 3 samples")
	}

	if stats.MinCPUPercent != 10 {
		t.Errorf("MinCPUPercent = %v, want 10", stats.MinCPUPercent)
	}
	if stats.AvgCPUPercent != 50 {
		t.Errorf("AvgCPUPercent = %v, want 50", stats.AvgCPUPercent)
	}
	if stats.MaxCPUPercent != 90 {
		t.Errorf("MaxCPUPercent = %v, want 90", stats.MaxCPUPercent)
	}
	if stats.MinMemPercent != 10 || stats.MaxMemPercent != 90 {
		t.Errorf("memory range = (%v, %v), want (10, 90)",
			stats.MinMemPercent, stats.MaxMemPercent)
	}
}

func TestSummarize_SingleSample(t *testing.T) {
	t.Parallel()
	stats, ok := Summarize([]sample.Sample{cpuSample(1, 33.3)}, ReportTopN)
	if !ok {
		t.Fatal("Summarize returned no data for 1 sample")
	}
	if stats.MinCPUPercent != 33.3 || stats.AvgCPUPercent != 33.3 || stats.MaxCPUPercent != 33.3 {
		t.Errorf("single sample stats = (%v, %v, %v), want all 33.3",
			stats.MinCPUPercent, stats.AvgCPUPercent, stats.MaxCPUPercent)
	}
}

func TestSummarize_RollupGroupsByName(t *testing.T) {
	t.Parallel()
	samples := []sample.Sample{
		{Sequence: 1, Processes: []sample.ProcessMetric{
			{PID: 100, Name: "worker", WorkingSetMB: 100, Threads: 4},
		}},
		{Sequence: 2, Processes: []sample.ProcessMetric{
			// Same image, different pid: still one rollup group.
			{PID: 200, Name: "worker", WorkingSetMB: 200, Threads: 8},
		}},
	}

	stats, ok := Summarize(samples, ReportTopN)
	if !ok {
		t.Fatal("Summarize returned no data")
	}
	if len(stats.Rollups) != 1 {
		t.Fatalf("rollup count = %d, want 1 (grouped by name)", len(stats.Rollups))
	}

	r := stats.Rollups[0]
	if r.Name != "worker" {
		t.Errorf("rollup name = %q, want %q", r.Name, "worker")
	}
	if r.AvgWorkingSetMB != 150 {
		t.Errorf("AvgWorkingSetMB = %v, want 150", r.AvgWorkingSetMB)
	}
	if r.MaxWorkingSetMB != 200 {
		t.Errorf("MaxWorkingSetMB = %v, want 200", r.MaxWorkingSetMB)
	}
	if r.AvgThreads != 6 {
		t.Errorf("AvgThreads = %v, want 6", r.AvgThreads)
	}
}

func TestSummarize_RollupOrderAndTruncation(t *testing.T) {
	t.Parallel()
	samples := []sample.Sample{
		{Sequence: 1, Processes: []sample.ProcessMetric{
			{Name: "small", WorkingSetMB: 10},
			{Name: "big", WorkingSetMB: 300},
			{Name: "mid-b", WorkingSetMB: 50},
			{Name: "mid-a", WorkingSetMB: 50},
		}},
	}

	stats, _ := Summarize(samples, 3)
	if len(stats.Rollups) != 3 {
		t.Fatalf("rollup count = %d, want 3 (truncated)", len(stats.Rollups))
	}

	wantOrder := []string{"big", "mid-a", "mid-b"}
	for i, want := range wantOrder {
		if stats.Rollups[i].Name != want {
			t.Errorf("rollup[%d] = %q, want %q (descending by avg, name breaks ties)",
				i, stats.Rollups[i].Name, want)
		}
	}
}

func TestSummarize_SamplesWithoutProcesses(t *testing.T) {
	t.Parallel()
	stats, ok := Summarize([]sample.Sample{cpuSample(1, 20)}, ReportTopN)
	if !ok {
		t.Fatal("Summarize returned no data")
	}
	if len(stats.Rollups) != 0 {
		t.Errorf("rollup count = %d, want 0 for process-free samples", len(stats.Rollups))
	}
}

func TestTopNConstants(t *testing.T) {
	t.Parallel()
	// The persisted report keeps more rollup entries than the live summary.
	if ReportTopN <= SummaryTopN {
		t.Errorf("ReportTopN (%d) should exceed SummaryTopN (%d)", ReportTopN, SummaryTopN)
	}
}
