package eeg

import (
	"errors"
	"fmt"
	"math"
)

// Reference montage channel indices. Fp1/Fp2 are the frontal pair used for
// blink detection, O1/O2 the occipital pair.
const (
	Fp1 = iota
	Fp2
	O1
	O2

	NumChannels = 4
)

// ChannelNames lists the reference montage labels in index order.
var ChannelNames = []string{"Fp1", "Fp2", "O1", "O2"}

var (
	// ErrChannelMismatch reports a block whose channel count differs from
	// the configured montage.
	ErrChannelMismatch = errors.New("eeg: channel count mismatch")

	// ErrRaggedBlock reports a block whose channels hold different numbers
	// of samples.
	ErrRaggedBlock = errors.New("eeg: ragged block")

	// ErrNotFinite reports a block containing NaN or Inf samples.
	ErrNotFinite = errors.New("eeg: non-finite sample")
)

// Block is one chunk of acquisition output, one slice per channel. All
// channels carry the same number of samples; zero samples is a valid
// empty chunk.
type Block [][]float64

// NewBlock allocates a zeroed block of the given shape.
func NewBlock(channels, samples int) Block {
	b := make(Block, channels)
	for ch := range b {
		b[ch] = make([]float64, samples)
	}
	return b
}

// Channels returns the number of channels in the block.
func (b Block) Channels() int { return len(b) }

// Samples returns the per-channel sample count, 0 for an empty block.
func (b Block) Samples() int {
	if len(b) == 0 {
		return 0
	}
	return len(b[0])
}

// Empty reports whether the block carries no samples.
func (b Block) Empty() bool { return b.Samples() == 0 }

// Validate checks the block against the expected channel count and rejects
// ragged shapes and non-finite samples.
func (b Block) Validate(channels int) error {
	if len(b) != channels {
		return fmt.Errorf("%w: got %d, want %d", ErrChannelMismatch, len(b), channels)
	}

	n := b.Samples()
	for ch, data := range b {
		if len(data) != n {
			return fmt.Errorf("%w: channel %d has %d samples, want %d",
				ErrRaggedBlock, ch, len(data), n)
		}
		for i, v := range data {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: channel %d sample %d is %v",
					ErrNotFinite, ch, i, v)
			}
		}
	}

	return nil
}

// Clone returns a deep copy of the block.
func (b Block) Clone() Block {
	out := make(Block, len(b))
	for ch := range b {
		out[ch] = append([]float64(nil), b[ch]...)
	}
	return out
}

// Scale multiplies every sample by factor in place and returns the block.
func (b Block) Scale(factor float64) Block {
	if factor == 1 {
		return b
	}
	for ch := range b {
		for i := range b[ch] {
			b[ch][i] *= factor
		}
	}
	return b
}
