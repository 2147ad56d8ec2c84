package eeg

import "github.com/stican/eegpipe/stats/amplitude"

// MicrovoltsPerVolt is the factor applied when acquisition output is
// detected to be in volts.
const MicrovoltsPerVolt = 1e6

// AutoScaler detects the unit of incoming sample blocks and yields the
// multiplicative factor that converts them to microvolts. Hardware either
// reports volts (typical magnitudes well below 1) or microvolts (tens).
//
// The decision is made once, on the first block with signal, and held.
// An optional recheck cadence re-runs the detection every n decisions so
// a mid-session unit change is eventually picked up. Not safe for
// concurrent use; the pipeline owns it.
type AutoScaler struct {
	factor  float64
	decided bool

	recheckEvery int
	sinceDecide  int
}

// ScalerOption configures an AutoScaler.
type ScalerOption func(*AutoScaler)

// WithRecheck re-evaluates the unit decision every n non-empty blocks.
// n <= 0 disables rechecking (the default).
func WithRecheck(n int) ScalerOption {
	return func(s *AutoScaler) {
		s.recheckEvery = n
	}
}

// NewAutoScaler creates a scaler with factor 1 until a decision is made.
func NewAutoScaler(opts ...ScalerOption) *AutoScaler {
	s := &AutoScaler{factor: 1}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Factor inspects the block and returns the current volts-to-microvolts
// factor. All-zero and empty blocks are inconclusive and retain the
// previous factor. The returned factor is always positive.
func (s *AutoScaler) Factor(block Block) float64 {
	if block.Empty() {
		return s.factor
	}

	if s.decided {
		if s.recheckEvery <= 0 {
			return s.factor
		}
		s.sinceDecide++
		if s.sinceDecide < s.recheckEvery {
			return s.factor
		}
	}

	var sum float64
	var n int
	for _, data := range block {
		st := amplitude.Calculate(data)
		sum += st.MeanAbs * float64(st.Length)
		n += st.Length
	}
	if n == 0 {
		return s.factor
	}

	meanAbs := sum / float64(n)
	switch {
	case meanAbs == 0:
		// Flat signal, cannot tell. Keep the previous factor.
		return s.factor
	case meanAbs < 1:
		s.factor = MicrovoltsPerVolt
	default:
		s.factor = 1
	}

	s.decided = true
	s.sinceDecide = 0

	return s.factor
}

// Decided reports whether a unit decision has been made.
func (s *AutoScaler) Decided() bool { return s.decided }

// Reset discards the decision and restores factor 1.
func (s *AutoScaler) Reset() {
	s.factor = 1
	s.decided = false
	s.sinceDecide = 0
}
