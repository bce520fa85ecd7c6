package report

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	apperrors "github.com/agbru/resmon/internal/errors"
	"github.com/agbru/resmon/internal/sample"
)

func testMeta() RunMeta {
	return RunMeta{
		GeneratedAt: time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC),
		Platform:    "linux",
		Processors:  8,
		Duration:    10 * time.Second,
		Interval:    5 * time.Second,
	}
}

func testSamples() []sample.Sample {
	base := time.Date(2025, 3, 14, 9, 59, 50, 0, time.UTC)
	return []sample.Sample{
		{
			Sequence:    1,
			Timestamp:   base,
			CPUPercent:  10.0,
			TotalMB:     16000,
			UsedMB:      4000,
			AvailableMB: 12000,
			MemPercent:  25.0,
			Processes: []sample.ProcessMetric{
				{PID: 100, Name: "worker", WorkingSetMB: 512, PrivateMB: 1024, Threads: 4},
				{PID: 200, Name: "agent", WorkingSetMB: 128, PrivateMB: 256, Threads: 2},
			},
		},
		{
			Sequence:    2,
			Timestamp:   base.Add(5 * time.Second),
			CPUPercent:  30.0,
			TotalMB:     16000,
			UsedMB:      5000,
			AvailableMB: 11000,
			MemPercent:  31.25,
			Processes: []sample.ProcessMetric{
				{PID: 100, Name: "worker", WorkingSetMB: 600, PrivateMB: 1100, Threads: 4},
			},
		},
	}
}

func TestFormatSectionOrder(t *testing.T) {
	t.Parallel()

	doc := Format(testSamples(), testMeta())

	sections := []string{
		"=== Resource Monitoring Report ===",
		"--- Summary ---",
		"--- Process Rollup",
		"--- Samples ---",
	}
	last := -1
	for _, section := range sections {
		idx := strings.Index(doc, section)
		if idx < 0 {
			t.Fatalf("Missing section %q in report:\n%s", section, doc)
		}
		if idx < last {
			t.Errorf("Section %q out of order", section)
		}
		last = idx
	}
}

func TestFormatHeader(t *testing.T) {
	t.Parallel()

	doc := Format(testSamples(), testMeta())

	for _, want := range []string{
		"Generated:   2025-03-14 10:00:00",
		"Platform:    linux",
		"Processors:  8",
		"Duration:    10s (interval 5s)",
		"Samples:     2",
		"First:       2025-03-14 09:59:50",
		"Last:        2025-03-14 09:59:55",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("Report header missing %q:\n%s", want, doc)
		}
	}
}

func TestFormatSummaryPrecision(t *testing.T) {
	t.Parallel()

	doc := Format(testSamples(), testMeta())

	// CPU 10/20/30, memory 25/28.1/31.2 — one decimal place everywhere.
	for _, want := range []string{"10.0", "20.0", "30.0", "25.0", "28.1", "31.2"} {
		if !strings.Contains(doc, want) {
			t.Errorf("Summary missing value %q:\n%s", want, doc)
		}
	}
}

func TestFormatRollup(t *testing.T) {
	t.Parallel()

	doc := Format(testSamples(), testMeta())

	if !strings.Contains(doc, "worker") || !strings.Contains(doc, "agent") {
		t.Fatalf("Rollup missing process names:\n%s", doc)
	}
	// worker avg (512+600)/2 = 556, max 600, whole MB.
	if !strings.Contains(doc, "556") {
		t.Errorf("Rollup missing worker avg working set:\n%s", doc)
	}
	if !strings.Contains(doc, "600") {
		t.Errorf("Rollup missing worker max working set:\n%s", doc)
	}
	if strings.Index(doc, "worker") > strings.Index(doc, "agent") {
		t.Errorf("Rollup not ordered by avg working set:\n%s", doc)
	}
}

func TestFormatSampleDetails(t *testing.T) {
	t.Parallel()

	doc := Format(testSamples(), testMeta())

	for _, want := range []string{
		"[1] 2025-03-14 09:59:50",
		"[2] 2025-03-14 09:59:55",
		"4000/16000 MB used, 12000 MB available (25.0%)",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("Sample details missing %q:\n%s", want, doc)
		}
	}
}

func TestFormatDeterministic(t *testing.T) {
	t.Parallel()

	samples := testSamples()
	meta := testMeta()
	first := Format(samples, meta)
	for i := 0; i < 5; i++ {
		if got := Format(samples, meta); got != first {
			t.Fatal("Format produced differing output for identical input")
		}
	}
}

func TestFormatNoSamples(t *testing.T) {
	t.Parallel()

	doc := Format(nil, testMeta())

	if !strings.Contains(doc, "=== Resource Monitoring Report ===") {
		t.Errorf("Empty run report missing header:\n%s", doc)
	}
	if !strings.Contains(doc, "Samples:     0") {
		t.Errorf("Empty run report missing sample count:\n%s", doc)
	}
	if !strings.Contains(doc, "No samples were collected.") {
		t.Errorf("Empty run report missing notice:\n%s", doc)
	}
	if strings.Contains(doc, "--- Summary ---") || strings.Contains(doc, "--- Samples ---") {
		t.Errorf("Empty run report should not contain statistics sections:\n%s", doc)
	}
}

func TestWriteReportToFile(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()

	testCases := []struct {
		name        string
		outputFile  string
		expectError bool
	}{
		{
			name:        "Valid file path",
			outputFile:  filepath.Join(tmpDir, "report.txt"),
			expectError: false,
		},
		{
			name:        "Nested directory creation",
			outputFile:  filepath.Join(tmpDir, "nested", "dir", "report.txt"),
			expectError: false,
		},
		{
			name:        "Empty path is a no-op",
			outputFile:  "",
			expectError: false,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := WriteReportToFile(tc.outputFile, "report body\n")

			if tc.expectError {
				if err == nil {
					t.Error("Expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if tc.outputFile == "" {
				return
			}
			data, err := os.ReadFile(tc.outputFile)
			if err != nil {
				t.Fatalf("Failed to read written report: %v", err)
			}
			if string(data) != "report body\n" {
				t.Errorf("Written content = %q, want %q", string(data), "report body\n")
			}
		})
	}
}

func TestWriteReportToFileError(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()

	// A directory at the destination path forces the write to fail.
	blocked := filepath.Join(tmpDir, "blocked")
	if err := os.Mkdir(blocked, 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	err := WriteReportToFile(blocked, "body")
	if err == nil {
		t.Fatal("Expected error writing to a directory path")
	}
	var repErr apperrors.ReportError
	if !errors.As(err, &repErr) {
		t.Errorf("Expected ReportError, got %T", err)
	}
	if repErr.Path != blocked {
		t.Errorf("ReportError.Path = %q, want %q", repErr.Path, blocked)
	}
}

func TestPrepareOutputFile(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()

	path := filepath.Join(tmpDir, "out", "report.txt")
	if err := PrepareOutputFile(path); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Prepared file missing: %v", err)
	}
	if info.Size() != 0 {
		t.Errorf("Prepared file size = %d, want 0", info.Size())
	}

	// Existing content is truncated.
	if err := os.WriteFile(path, []byte("stale"), 0644); err != nil {
		t.Fatalf("Failed to seed file: %v", err)
	}
	if err := PrepareOutputFile(path); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	info, err = os.Stat(path)
	if err != nil {
		t.Fatalf("Prepared file missing: %v", err)
	}
	if info.Size() != 0 {
		t.Errorf("File not truncated, size = %d", info.Size())
	}
}
