package buffer

import (
	"fmt"
	"sync"
)

// Rolling is a fixed-capacity multi-channel sample ring. Appends evict the
// oldest frames first; the buffer never holds more than its configured
// number of frames per channel.
//
// Append must be called from a single writer. Snapshot and Tail are safe
// to call concurrently with Append.
type Rolling struct {
	mu       sync.RWMutex
	channels int
	capacity int
	data     [][]float64 // per channel, ring storage
	head     int         // next write position
	length   int         // frames currently held
}

// NewRolling creates a rolling buffer holding up to capacity frames of the
// given channel count.
func NewRolling(channels, capacity int) (*Rolling, error) {
	if channels < 1 {
		return nil, fmt.Errorf("rolling buffer: channel count must be >= 1: %d", channels)
	}
	if capacity < 1 {
		return nil, fmt.Errorf("rolling buffer: capacity must be >= 1: %d", capacity)
	}

	data := make([][]float64, channels)
	for ch := range data {
		data[ch] = make([]float64, capacity)
	}

	return &Rolling{
		channels: channels,
		capacity: capacity,
		data:     data,
	}, nil
}

// Channels returns the fixed channel count.
func (r *Rolling) Channels() int { return r.channels }

// Capacity returns the maximum number of frames held.
func (r *Rolling) Capacity() int { return r.capacity }

// Len returns the number of frames currently held.
func (r *Rolling) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.length
}

// Append adds per-channel samples to the head of the ring, evicting the
// oldest frames when full. All channel slices must have equal length; a
// chunk larger than the capacity keeps only its newest frames. An empty
// chunk is a no-op.
func (r *Rolling) Append(chunk [][]float64) error {
	if len(chunk) != r.channels {
		return fmt.Errorf("rolling buffer: got %d channels, want %d", len(chunk), r.channels)
	}

	n := len(chunk[0])
	for ch := 1; ch < r.channels; ch++ {
		if len(chunk[ch]) != n {
			return fmt.Errorf("rolling buffer: ragged chunk: channel %d has %d samples, want %d",
				ch, len(chunk[ch]), n)
		}
	}
	if n == 0 {
		return nil
	}

	// Oversized chunk: only the newest capacity frames can survive.
	offset := 0
	if n > r.capacity {
		offset = n - r.capacity
		n = r.capacity
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for ch := 0; ch < r.channels; ch++ {
		src := chunk[ch][offset:]
		pos := r.head
		for i := 0; i < n; i++ {
			r.data[ch][pos] = src[i]
			pos++
			if pos == r.capacity {
				pos = 0
			}
		}
	}

	r.head = (r.head + n) % r.capacity
	r.length += n
	if r.length > r.capacity {
		r.length = r.capacity
	}

	return nil
}

// Snapshot returns a copy of all held frames in arrival order, oldest
// first, as one slice per channel.
func (r *Rolling) Snapshot() [][]float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.copyTail(r.length)
}

// Tail returns a copy of the most recent n frames per channel, oldest
// first. If fewer than n frames are held, all of them are returned.
func (r *Rolling) Tail(n int) [][]float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if n > r.length {
		n = r.length
	}
	return r.copyTail(n)
}

func (r *Rolling) copyTail(n int) [][]float64 {
	out := make([][]float64, r.channels)
	if n <= 0 {
		for ch := range out {
			out[ch] = []float64{}
		}
		return out
	}

	start := (r.head - n + r.capacity*2) % r.capacity
	for ch := 0; ch < r.channels; ch++ {
		dst := make([]float64, n)
		pos := start
		for i := 0; i < n; i++ {
			dst[i] = r.data[ch][pos]
			pos++
			if pos == r.capacity {
				pos = 0
			}
		}
		out[ch] = dst
	}

	return out
}
