package cli

import (
	"fmt"
	"io"

	"github.com/briandowns/spinner"

	"github.com/agbru/resmon/internal/format"
	"github.com/agbru/resmon/internal/sample"
	"github.com/agbru/resmon/internal/sampler"
)

// LiveSink renders a one-line live status for each sample behind a terminal
// spinner. It implements sampler.Sink.
type LiveSink struct {
	spin  Spinner
	total int
}

// Verify that LiveSink implements sampler.Sink.
var _ sampler.Sink = (*LiveSink)(nil)

// NewLiveSink creates a live progress sink writing to out.
//
// Parameters:
//   - out: The output writer, normally a terminal.
//   - total: The number of ticks the run will take when it completes.
//
// Returns:
//   - *LiveSink: The sink, ready to Start.
func NewLiveSink(out io.Writer, total int) *LiveSink {
	return &LiveSink{
		spin:  newSpinner(spinner.WithWriter(out)),
		total: total,
	}
}

// Start begins the spinner animation. Call before the sampling loop starts.
func (ls *LiveSink) Start() {
	ls.spin.UpdateSuffix(" warming up...")
	ls.spin.Start()
}

// Stop halts the spinner animation. Call after the sampling loop returns.
func (ls *LiveSink) Stop() {
	ls.spin.Stop()
}

// HandleSample updates the live status line with the latest measurement.
func (ls *LiveSink) HandleSample(s sample.Sample) {
	ls.spin.UpdateSuffix(FormatLiveStatus(s, ls.total))
}

// FormatLiveStatus formats a single-line status for a sample: position in
// the run, CPU and memory utilization, and the heaviest process.
func FormatLiveStatus(s sample.Sample, total int) string {
	status := fmt.Sprintf(" sample %d/%d | CPU %s%% | Mem %s%%",
		s.Sequence, total,
		format.FormatPercent(s.CPUPercent),
		format.FormatPercent(s.MemPercent))
	if len(s.Processes) > 0 {
		top := s.Processes[0]
		status += fmt.Sprintf(" | top: %s (%s MB)", top.Name, format.FormatMB(top.WorkingSetMB))
	}
	return status
}
