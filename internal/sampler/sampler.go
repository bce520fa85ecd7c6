// Package sampler drives the timing loop of a monitoring run: once per tick
// it measures the host, assembles an immutable Sample, and hands it to the
// downstream sink. Scheduling is drift-compensated so the tick cadence
// tracks wall-clock multiples of the interval instead of compounding the
// overhead of each measurement.
package sampler

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	apperrors "github.com/agbru/resmon/internal/errors"
	"github.com/agbru/resmon/internal/logging"
	"github.com/agbru/resmon/internal/platform"
	"github.com/agbru/resmon/internal/sample"
)

// MetricsProvider is the host-wide measurement source. Satisfied by
// platform.Provider; narrowed here so tests can substitute fixed readings.
type MetricsProvider interface {
	CPUPercent() float64
	MemoryInfo() platform.MemoryInfo
}

// ProcessSnapshotter enumerates per-process metrics for one tick.
type ProcessSnapshotter interface {
	Snapshot() []sample.ProcessMetric
}

// State describes the sampler lifecycle. A sampler runs exactly once:
// Idle -> Running -> Completed. A canceled run still ends Completed, with
// whatever samples were collected; a partial run is valid, never an error.
type State int32

const (
	StateIdle State = iota
	StateRunning
	StateCompleted
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// DefaultSettleDelay is the pause between the discarded warm-up read and
// the first real tick. Delta-based CPU measurement needs an established
// baseline before its first value means anything.
const DefaultSettleDelay = 500 * time.Millisecond

// Sampler owns one bounded measurement run. It is the single producer of
// the sample buffer; samples are appended and emitted in strictly
// increasing sequence order.
type Sampler struct {
	provider MetricsProvider
	snap     ProcessSnapshotter
	duration time.Duration
	interval time.Duration
	settle   time.Duration
	log      logging.Logger

	state   atomic.Int32
	samples []sample.Sample
}

// Option configures a Sampler during construction.
type Option func(*Sampler)

// WithSettleDelay overrides the warm-up settle pause. Tests shrink it to
// keep runs fast.
func WithSettleDelay(d time.Duration) Option {
	return func(s *Sampler) { s.settle = d }
}

// New creates a Sampler for one run of the given duration and interval.
// Validation of duration and interval happens at the configuration layer;
// the sampler assumes both are positive.
func New(provider MetricsProvider, snap ProcessSnapshotter, duration, interval time.Duration, log logging.Logger, opts ...Option) *Sampler {
	s := &Sampler{
		provider: provider,
		snap:     snap,
		duration: duration,
		interval: interval,
		settle:   DefaultSettleDelay,
		log:      log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current lifecycle state. Safe to call from any
// goroutine.
func (s *Sampler) State() State {
	return State(s.state.Load())
}

// TickCount returns the number of ticks a full run produces:
// ceil(duration/interval). Zero when either value is non-positive.
func TickCount(duration, interval time.Duration) int {
	if duration <= 0 || interval <= 0 {
		return 0
	}
	return int((duration + interval - 1) / interval)
}

// Run executes the sampling loop until the duration elapses or ctx is
// canceled, emitting each Sample to sink as it is taken. It returns the
// collected samples; cancellation is not an error. The returned error is
// reserved for calling Run twice and for unexpected fatal failures of the
// loop itself, after which no report is guaranteed.
func (s *Sampler) Run(ctx context.Context, sink Sink) (samples []sample.Sample, err error) {
	if !s.state.CompareAndSwap(int32(StateIdle), int32(StateRunning)) {
		return nil, fmt.Errorf("sampler already %s: each run needs a fresh sampler", s.State())
	}
	defer s.state.Store(int32(StateCompleted))

	defer func() {
		if r := recover(); r != nil {
			samples = s.samples
			err = apperrors.SamplingError{Cause: fmt.Errorf("sampling loop panic: %v", r)}
		}
	}()

	if sink == nil {
		sink = NullSink{}
	}

	// Warm-up: one discarded read establishes the delta baseline, then a
	// short settle pause before the first real tick.
	_ = s.provider.CPUPercent()
	if !sleepCtx(ctx, s.settle) {
		return s.samples, nil
	}

	total := TickCount(s.duration, s.interval)
	start := time.Now()

	for seq := 1; seq <= total; seq++ {
		if ctx.Err() != nil {
			break
		}

		smp := s.capture(seq)
		s.samples = append(s.samples, smp)
		sink.HandleSample(smp)
		s.log.Debug("tick emitted",
			logging.Int("sequence", seq),
			logging.Float64("cpu", smp.CPUPercent),
			logging.Float64("mem", smp.MemPercent))

		if seq == total {
			break
		}
		// Drift compensation: the next tick targets seq*interval of
		// elapsed time, so only the residual is slept. Sampling overhead
		// shortens the sleep instead of accumulating as skew.
		residual := time.Duration(seq)*s.interval - time.Since(start)
		if residual > 0 && !sleepCtx(ctx, residual) {
			break
		}
	}

	return s.samples, nil
}

// capture performs one tick's measurement and assembles the Sample.
func (s *Sampler) capture(seq int) sample.Sample {
	memInfo := s.provider.MemoryInfo()
	return sample.Sample{
		Sequence:    seq,
		Timestamp:   time.Now(),
		CPUPercent:  s.provider.CPUPercent(),
		TotalMB:     memInfo.TotalMB,
		UsedMB:      memInfo.UsedMB,
		AvailableMB: memInfo.AvailableMB,
		MemPercent:  memInfo.UsedPercent,
		Processes:   s.snap.Snapshot(),
	}
}

// sleepCtx waits for d or until ctx is canceled, whichever comes first.
// Returns false on cancellation so the loop can exit at the wait point
// instead of finishing the interval.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
