package cli

import (
	"io"
	"strings"
	"testing"

	"github.com/briandowns/spinner"

	"github.com/agbru/resmon/internal/sample"
)

// MockSpinner for testing
type MockSpinner struct {
	started bool
	stopped bool
	suffix  string
}

func (m *MockSpinner) Start() {
	m.started = true
}

func (m *MockSpinner) Stop() {
	m.stopped = true
}

func (m *MockSpinner) UpdateSuffix(suffix string) {
	m.suffix = suffix
}

func withMockSpinner(t *testing.T) *MockSpinner {
	t.Helper()
	mock := &MockSpinner{}
	orig := newSpinner
	newSpinner = func(options ...spinner.Option) Spinner { return mock }
	t.Cleanup(func() { newSpinner = orig })
	return mock
}

func TestLiveSinkLifecycle(t *testing.T) {
	mock := withMockSpinner(t)

	sink := NewLiveSink(io.Discard, 10)
	sink.Start()
	if !mock.started {
		t.Error("Start should start the spinner")
	}
	sink.Stop()
	if !mock.stopped {
		t.Error("Stop should stop the spinner")
	}
}

func TestLiveSinkHandleSample(t *testing.T) {
	mock := withMockSpinner(t)

	sink := NewLiveSink(io.Discard, 12)
	sink.HandleSample(sample.Sample{
		Sequence:   3,
		CPUPercent: 21.4,
		MemPercent: 50.0,
		Processes: []sample.ProcessMetric{
			{PID: 42, Name: "browser", WorkingSetMB: 1024},
		},
	})

	for _, want := range []string{"3/12", "21.4", "50.0", "browser", "1024"} {
		if !strings.Contains(mock.suffix, want) {
			t.Errorf("Suffix missing %q: %s", want, mock.suffix)
		}
	}
}

func TestFormatLiveStatusNoProcesses(t *testing.T) {
	status := FormatLiveStatus(sample.Sample{Sequence: 1, CPUPercent: 5, MemPercent: 10}, 4)

	if !strings.Contains(status, "1/4") {
		t.Errorf("Status missing sequence: %s", status)
	}
	if strings.Contains(status, "top:") {
		t.Errorf("Status should omit top process when none exist: %s", status)
	}
}
