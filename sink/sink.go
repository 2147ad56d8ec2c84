// Package sink fans filtered cycles out to downstream consumers: a NATS
// subject stream carrying the sample frames and a UDP datagram feed
// carrying a single scalar metric. Sink failures are reported to the
// caller but are expected to be survivable; the pipeline logs and counts
// them without retrying within the cycle.
package sink

import (
	"context"

	"github.com/stican/eegpipe/eeg"
	"github.com/stican/eegpipe/measure/features"
)

// Cycle is the per-tick payload offered to every sink: the filtered block
// for that cycle plus the feature snapshot derived from the display buffer.
type Cycle struct {
	Block    eeg.Block
	Snapshot features.Snapshot
}

// Sink consumes one cycle at a time. Publish must not retain the cycle
// after returning.
type Sink interface {
	Name() string
	Publish(ctx context.Context, c Cycle) error
	Close() error
}

// Nop is a Sink that discards everything.
type Nop struct{}

func (Nop) Name() string { return "nop" }

func (Nop) Publish(context.Context, Cycle) error { return nil }

func (Nop) Close() error { return nil }
