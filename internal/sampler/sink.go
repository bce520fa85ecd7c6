package sampler

import "github.com/agbru/resmon/internal/sample"

// Sink receives each Sample as it is taken. This interface decouples the
// scheduling loop from the presentation layer: the sampler coordinates
// measurement while implementations handle live rendering or accumulation.
type Sink interface {
	// HandleSample is called once per tick, in sequence order, from the
	// sampling goroutine. Implementations should return quickly; a slow
	// sink eats into the inter-tick sleep budget.
	HandleSample(s sample.Sample)
}

// SinkFunc is a function adapter that implements Sink.
type SinkFunc func(sample.Sample)

// HandleSample calls the underlying function.
func (f SinkFunc) HandleSample(s sample.Sample) { f(s) }

// NullSink discards every sample. Used for quiet mode and testing.
type NullSink struct{}

// HandleSample discards the sample.
func (NullSink) HandleSample(sample.Sample) {}
