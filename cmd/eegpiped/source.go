package main

import (
	"math"
	"math/rand"
	"time"

	"github.com/stican/eegpipe/eeg"
)

// syntheticSource generates an alpha-dominated rhythm with noise and a
// periodic frontal blink, standing in for headset hardware during
// development and soak testing. Read returns however many frames the
// wall clock has accumulated since the previous poll.
type syntheticSource struct {
	rate     float64
	channels int
	rng      *rand.Rand
	last     time.Time
	phase    float64
	frames   int64
}

func newSyntheticSource(rate float64, channels int) *syntheticSource {
	return &syntheticSource{
		rate:     rate,
		channels: channels,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		last:     time.Now(),
	}
}

func (s *syntheticSource) SampleRate() float64 { return s.rate }
func (s *syntheticSource) Channels() int       { return s.channels }

func (s *syntheticSource) Read() (eeg.Block, error) {
	now := time.Now()
	n := int(now.Sub(s.last).Seconds() * s.rate)
	if n <= 0 {
		return eeg.NewBlock(s.channels, 0), nil
	}
	s.last = s.last.Add(time.Duration(float64(n) / s.rate * float64(time.Second)))

	block := eeg.NewBlock(s.channels, n)
	step := 2 * math.Pi * 10 / s.rate
	for i := 0; i < n; i++ {
		s.frames++
		alpha := 25 * math.Sin(s.phase)
		s.phase += step

		// Blink-scale frontal deflection roughly every four seconds.
		var blink float64
		if cycle := s.frames % int64(4*s.rate); cycle < int64(s.rate/10) {
			blink = 200 * math.Sin(math.Pi*float64(cycle)/(s.rate/10))
		}

		for ch := 0; ch < s.channels; ch++ {
			v := alpha + (s.rng.Float64()*2-1)*8
			if ch == eeg.Fp1 || ch == eeg.Fp2 {
				v += blink
			}
			block[ch][i] = v
		}
	}
	return block, nil
}
