package bank

import (
	"fmt"

	"github.com/stican/eegpipe/dsp/filter/biquad"
	"github.com/stican/eegpipe/dsp/filter/design"
)

const (
	defaultNotchHz       = 50.0
	defaultNotchQ        = 30.0
	defaultBandLowHz     = 1.0
	defaultBandHighHz    = 45.0
	defaultBandOrder     = 4
	defaultClipMicrovolt = 500.0
)

// Bank filters multi-channel chunks through an independent notch and
// bandpass cascade per channel. Delay state persists across Process calls.
// Not safe for concurrent use.
type Bank struct {
	cfg      config
	channels []*channelChain
	primed   bool
}

type channelChain struct {
	notch *biquad.Chain
	band  *biquad.Chain
}

type config struct {
	sampleRate float64
	channels   int

	notchHz float64
	notchQ  float64

	bandLowHz  float64
	bandHighHz float64
	bandOrder  int

	clipAt float64 // 0 disables
}

// Option configures a Bank.
type Option func(*config)

// WithNotch sets the notch center frequency and quality factor.
// Defaults to 50 Hz, Q 30.
func WithNotch(freqHz, q float64) Option {
	return func(cfg *config) {
		cfg.notchHz = freqHz
		cfg.notchQ = q
	}
}

// WithBandpass sets the Butterworth bandpass edges and order.
// Defaults to 1-45 Hz, order 4.
func WithBandpass(lowHz, highHz float64, order int) Option {
	return func(cfg *config) {
		cfg.bandLowHz = lowHz
		cfg.bandHighHz = highHz
		cfg.bandOrder = order
	}
}

// WithClipGuard limits input samples to +/- limit before filtering, keeping
// rail artifacts from exciting the IIR state. limit <= 0 disables the guard.
// Defaults to 500 (microvolts).
func WithClipGuard(limit float64) Option {
	return func(cfg *config) {
		cfg.clipAt = limit
	}
}

// New creates a filter bank for the given channel count and sample rate.
func New(channels int, sampleRate float64, opts ...Option) (*Bank, error) {
	cfg := config{
		sampleRate: sampleRate,
		channels:   channels,
		notchHz:    defaultNotchHz,
		notchQ:     defaultNotchQ,
		bandLowHz:  defaultBandLowHz,
		bandHighHz: defaultBandHighHz,
		bandOrder:  defaultBandOrder,
		clipAt:     defaultClipMicrovolt,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if channels < 1 {
		return nil, fmt.Errorf("bank: channel count must be >= 1: %d", channels)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("bank: sample rate must be positive: %v", sampleRate)
	}
	if cfg.notchHz <= 0 || cfg.notchHz >= sampleRate/2 {
		return nil, fmt.Errorf("bank: notch frequency %v outside (0, Nyquist)", cfg.notchHz)
	}
	if cfg.notchQ <= 0 {
		return nil, fmt.Errorf("bank: notch Q must be positive: %v", cfg.notchQ)
	}

	notch := design.Notch(cfg.notchHz, cfg.notchQ, sampleRate)
	if notch == (biquad.Coefficients{}) {
		return nil, fmt.Errorf("bank: invalid notch design (%v Hz, Q %v)", cfg.notchHz, cfg.notchQ)
	}

	band := design.ButterworthBand(cfg.bandLowHz, cfg.bandHighHz, cfg.bandOrder, sampleRate)
	if band == nil {
		return nil, fmt.Errorf("bank: invalid bandpass design (%v-%v Hz, order %d)",
			cfg.bandLowHz, cfg.bandHighHz, cfg.bandOrder)
	}

	b := &Bank{cfg: cfg, channels: make([]*channelChain, channels)}
	for ch := range b.channels {
		b.channels[ch] = &channelChain{
			notch: biquad.NewChain([]biquad.Coefficients{notch}),
			band:  biquad.NewChain(band),
		}
	}

	return b, nil
}

// Channels returns the configured channel count.
func (b *Bank) Channels() int { return b.cfg.channels }

// Process filters one chunk in place and returns it. The chunk must have
// the configured channel count with equal-length channels. State carries
// over to the next call; an empty chunk is a no-op. On error the chunk and
// filter state are untouched.
func (b *Bank) Process(chunk [][]float64) ([][]float64, error) {
	if len(chunk) != b.cfg.channels {
		return nil, fmt.Errorf("bank: got %d channels, want %d", len(chunk), b.cfg.channels)
	}

	n := 0
	if len(chunk) > 0 {
		n = len(chunk[0])
	}
	for ch := range chunk {
		if len(chunk[ch]) != n {
			return nil, fmt.Errorf("bank: ragged chunk: channel %d has %d samples, want %d",
				ch, len(chunk[ch]), n)
		}
	}
	if n == 0 {
		return chunk, nil
	}

	if b.cfg.clipAt > 0 {
		clip(chunk, b.cfg.clipAt)
	}

	// Settle every chain to the steady state of its first sample so the
	// first chunk carries no startup transient.
	if !b.primed {
		for ch, c := range b.channels {
			x := chunk[ch][0]
			c.notch.Prime(x)
			c.band.Prime(x)
		}
		b.primed = true
	}

	for ch, c := range b.channels {
		c.notch.ProcessBlock(chunk[ch])
		c.band.ProcessBlock(chunk[ch])
	}

	return chunk, nil
}

// Reset clears all delay state; the next chunk primes the chains again.
func (b *Bank) Reset() {
	for _, c := range b.channels {
		c.notch.Reset()
		c.band.Reset()
	}
	b.primed = false
}

func clip(chunk [][]float64, limit float64) {
	for ch := range chunk {
		for i, v := range chunk[ch] {
			if v > limit {
				chunk[ch][i] = limit
			} else if v < -limit {
				chunk[ch][i] = -limit
			}
		}
	}
}
