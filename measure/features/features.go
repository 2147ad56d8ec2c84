package features

import (
	"fmt"
	"math"
	"time"

	"github.com/stican/eegpipe/dsp/spectrum"
	"github.com/stican/eegpipe/stats/amplitude"
)

const (
	defaultBlinkWindowSec  = 0.4
	defaultBlinkThreshold  = 150.0 // microvolts peak-to-peak
	defaultAlphaThreshold  = 0.35
	defaultFocusThreshold  = 1.0
	defaultNoiseThreshold  = 800.0 // microvolts absolute
	defaultFocusEpsilon    = 1e-12
	defaultSegmentDuration = 1.0 // seconds per Welch segment
)

// EEG band edges in Hz. Relative powers are taken against the 1-30 Hz total.
const (
	thetaLowHz  = 4.0
	thetaHighHz = 8.0
	alphaLowHz  = 8.0
	alphaHighHz = 12.0
	betaLowHz   = 13.0
	betaHighHz  = 30.0
	totalLowHz  = 1.0
	totalHighHz = 30.0
)

// Snapshot is one immutable feature estimate. All numeric fields are finite.
type Snapshot struct {
	Timestamp time.Time

	// Blink is set when the frontal pair shows a blink-scale swing within
	// the most recent blink window.
	Blink bool

	// ThetaPower, AlphaPower and BetaPower are relative band powers in
	// [0, 1], averaged across channels.
	ThetaPower float64
	AlphaPower float64
	BetaPower  float64

	// FocusRatio is beta over (theta + alpha); 0 when the denominator
	// is degenerate.
	FocusRatio float64

	// Relaxed is set when alpha dominates and focus is low.
	Relaxed bool

	// Noisy flags railing-scale amplitudes anywhere in the window; the
	// estimates above are then unreliable.
	Noisy bool
}

// Config holds extractor parameters. The zero value of every optional field
// selects its reference default.
type Config struct {
	// SampleRate of the window samples in Hz. Required.
	SampleRate float64

	// FrontalChannels are the indices checked for blink swings.
	// Required, at least one.
	FrontalChannels []int

	// BlinkWindowSec is the span inspected for blinks. Defaults to 0.4 s.
	BlinkWindowSec float64
	// BlinkThreshold is the frontal peak-to-peak level in microvolts that
	// counts as a blink. Defaults to 150.
	BlinkThreshold float64

	// AlphaThreshold is the relative alpha power above which the window
	// counts toward relaxation. Defaults to 0.35.
	AlphaThreshold float64
	// FocusThreshold is the focus ratio below which relaxation is allowed.
	// Defaults to 1.0.
	FocusThreshold float64

	// NoiseThreshold is the absolute amplitude in microvolts that marks
	// the window as noisy. Defaults to 800.
	NoiseThreshold float64
}

func (c *Config) normalize() error {
	if c.SampleRate <= 0 || math.IsNaN(c.SampleRate) || math.IsInf(c.SampleRate, 0) {
		return fmt.Errorf("features: sample rate must be > 0: %v", c.SampleRate)
	}
	if len(c.FrontalChannels) == 0 {
		return fmt.Errorf("features: at least one frontal channel required")
	}
	if c.BlinkWindowSec <= 0 {
		c.BlinkWindowSec = defaultBlinkWindowSec
	}
	if c.BlinkThreshold <= 0 {
		c.BlinkThreshold = defaultBlinkThreshold
	}
	if c.AlphaThreshold <= 0 {
		c.AlphaThreshold = defaultAlphaThreshold
	}
	if c.FocusThreshold <= 0 {
		c.FocusThreshold = defaultFocusThreshold
	}
	if c.NoiseThreshold <= 0 {
		c.NoiseThreshold = defaultNoiseThreshold
	}
	return nil
}

// Extractor computes feature snapshots from sample windows. It reuses one
// Welch estimator across calls and is not safe for concurrent use.
type Extractor struct {
	cfg   Config
	welch *spectrum.Welch
}

// New creates an extractor for the given configuration.
func New(cfg Config) (*Extractor, error) {
	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	welch, err := spectrum.NewWelch(spectrum.WelchConfig{
		SampleRate:    cfg.SampleRate,
		SegmentLength: int(defaultSegmentDuration * cfg.SampleRate),
	})
	if err != nil {
		return nil, err
	}

	return &Extractor{cfg: cfg, welch: welch}, nil
}

// MinSamples returns the shortest window Extract can compute spectra from.
func (e *Extractor) MinSamples() int { return e.welch.SegmentLength() }

// Extract computes a snapshot from the window, one slice of recent samples
// per channel, oldest first. Windows too short for spectral estimation
// yield a zeroed snapshot; the result is always finite.
func (e *Extractor) Extract(window [][]float64, at time.Time) Snapshot {
	snap := Snapshot{Timestamp: at}
	if len(window) == 0 || len(window[0]) == 0 {
		return snap
	}

	snap.Noisy = e.isNoisy(window)
	snap.Blink = e.detectBlink(window)

	if len(window[0]) >= e.MinSamples() {
		e.bandPowers(window, &snap)
	}

	snap.FocusRatio = focusRatio(snap.ThetaPower, snap.AlphaPower, snap.BetaPower)
	snap.Relaxed = snap.AlphaPower > e.cfg.AlphaThreshold && snap.FocusRatio < e.cfg.FocusThreshold

	return snap
}

func (e *Extractor) isNoisy(window [][]float64) bool {
	for _, data := range window {
		if amplitude.MaxAbs(data) > e.cfg.NoiseThreshold {
			return true
		}
	}
	return false
}

func (e *Extractor) detectBlink(window [][]float64) bool {
	n := int(e.cfg.BlinkWindowSec * e.cfg.SampleRate)
	for _, ch := range e.cfg.FrontalChannels {
		if ch < 0 || ch >= len(window) {
			continue
		}
		data := window[ch]
		if len(data) > n {
			data = data[len(data)-n:]
		}
		if amplitude.PeakToPeak(data) > e.cfg.BlinkThreshold {
			return true
		}
	}
	return false
}

func (e *Extractor) bandPowers(window [][]float64, snap *Snapshot) {
	var theta, alpha, beta float64
	counted := 0

	for _, data := range window {
		psd, err := e.welch.Estimate(data)
		if err != nil {
			continue
		}
		theta += psd.RelativePower(thetaLowHz, thetaHighHz, totalLowHz, totalHighHz)
		alpha += psd.RelativePower(alphaLowHz, alphaHighHz, totalLowHz, totalHighHz)
		beta += psd.RelativePower(betaLowHz, betaHighHz, totalLowHz, totalHighHz)
		counted++
	}
	if counted == 0 {
		return
	}

	snap.ThetaPower = sanitize(theta / float64(counted))
	snap.AlphaPower = sanitize(alpha / float64(counted))
	snap.BetaPower = sanitize(beta / float64(counted))
}

// focusRatio returns beta / (theta + alpha), with a 0 sentinel when the
// slow-wave denominator is too small to divide by.
func focusRatio(theta, alpha, beta float64) float64 {
	denom := theta + alpha
	if denom < defaultFocusEpsilon {
		return 0
	}
	return sanitize(beta / denom)
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
