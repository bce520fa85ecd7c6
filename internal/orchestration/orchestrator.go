// Package orchestration coordinates the goroutines of a monitoring run: the
// sampling loop produces on one side, the live display consumes on the
// other. Keeping the display on its own goroutine means a slow terminal
// never delays a tick.
package orchestration

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/resmon/internal/sample"
	"github.com/agbru/resmon/internal/sampler"
)

// SampleBufferSize defines the buffer size of the sample channel between
// the sampling loop and the display goroutine. A generous buffer reduces
// the likelihood of blocking the sampling goroutine when the UI is slow to
// consume updates.
const SampleBufferSize = 16

// RunResult encapsulates the outcome of a monitoring run.
type RunResult struct {
	// Samples is everything the run collected, in sequence order. A
	// canceled run yields a shorter slice, never a nil error.
	Samples []sample.Sample
	// Duration is the wall-clock time the run took, warm-up included.
	Duration time.Duration
	// Err is non-nil only when the sampling loop itself failed.
	Err error
}

// ExecuteRun drives one monitoring run to completion.
//
// The sampler runs inside an errgroup while a dedicated goroutine drains
// the sample channel into the display sink. The channel is closed only
// after the sampler returns, then the display goroutine is awaited, so no
// sample is ever dropped or delivered after return.
//
// Parameters:
//   - ctx: The context for cancellation (signals, timeouts).
//   - s: The sampler owning this run.
//   - display: The sink rendering live progress (use sampler.NullSink for
//     quiet mode).
//
// Returns:
//   - RunResult: The collected samples, the elapsed time, and any fatal
//     sampling error.
func ExecuteRun(ctx context.Context, s *sampler.Sampler, display sampler.Sink) RunResult {
	if display == nil {
		display = sampler.NullSink{}
	}

	sampleChan := make(chan sample.Sample, SampleBufferSize)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go func() {
		defer displayWg.Done()
		for smp := range sampleChan {
			display.HandleSample(smp)
		}
	}()

	startTime := time.Now()
	var result RunResult

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		samples, err := s.Run(ctx, sampler.SinkFunc(func(smp sample.Sample) {
			sampleChan <- smp
		}))
		result.Samples = samples
		return err
	})

	result.Err = g.Wait()
	close(sampleChan)
	displayWg.Wait()

	result.Duration = time.Since(startTime)
	return result
}
