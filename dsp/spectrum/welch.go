package spectrum

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/stican/eegpipe/dsp/window"
)

// WelchConfig holds parameters for Welch PSD estimation.
type WelchConfig struct {
	// SampleRate of the input signal in Hz. Required.
	SampleRate float64
	// SegmentLength is the number of samples per segment (nperseg).
	// Defaults to one second of samples.
	SegmentLength int
	// Overlap is the fractional overlap between segments in (0, 1).
	// Defaults to 0.5; pass a negative value for non-overlapping segments.
	Overlap float64
	// Window applied to each segment. Defaults to Hann.
	Window window.Type
}

func (c *WelchConfig) normalize() error {
	if c.SampleRate <= 0 || math.IsNaN(c.SampleRate) || math.IsInf(c.SampleRate, 0) {
		return fmt.Errorf("welch: sample rate must be > 0: %v", c.SampleRate)
	}
	if c.SegmentLength <= 0 {
		c.SegmentLength = int(c.SampleRate)
	}
	if c.SegmentLength < 8 {
		return fmt.Errorf("welch: segment length too short: %d", c.SegmentLength)
	}
	switch {
	case c.Overlap == 0:
		c.Overlap = 0.5
	case c.Overlap < 0:
		c.Overlap = 0
	case c.Overlap >= 1 || math.IsNaN(c.Overlap):
		c.Overlap = 0.5
	}
	return nil
}

// Welch estimates one-sided power spectral densities using Welch's method:
// overlapping windowed segments, periodogram per segment, averaged.
//
// The estimator precomputes its window coefficients and FFT plan, so a
// single instance can be reused every cycle without reallocation. It is not
// safe for concurrent use.
type Welch struct {
	cfg     WelchConfig
	coeffs  []float64
	winNorm float64 // sampleRate * sum(w^2)
	fftSize int
	plan    *algofft.Plan[complex128]
	in      []complex128
	out     []complex128
	seg     []float64
}

// NewWelch creates a reusable Welch estimator.
func NewWelch(cfg WelchConfig) (*Welch, error) {
	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	fftSize := nextPow2(cfg.SegmentLength)
	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("welch: fft plan: %w", err)
	}

	coeffs := window.Generate(cfg.Window, cfg.SegmentLength, window.WithPeriodic())

	return &Welch{
		cfg:     cfg,
		coeffs:  coeffs,
		winNorm: cfg.SampleRate * window.SumSquares(coeffs),
		fftSize: fftSize,
		plan:    plan,
		in:      make([]complex128, fftSize),
		out:     make([]complex128, fftSize),
		seg:     make([]float64, cfg.SegmentLength),
	}, nil
}

// SegmentLength returns the effective per-segment sample count.
func (w *Welch) SegmentLength() int { return w.cfg.SegmentLength }

// PSD is a one-sided power spectral density estimate.
type PSD struct {
	// Freqs holds the bin center frequencies in Hz, from 0 to Nyquist.
	Freqs []float64
	// Power holds the density per bin in amplitude^2 per Hz.
	Power []float64
	// BinWidth is the frequency spacing between bins in Hz.
	BinWidth float64
}

// Estimate computes the PSD of signal. The signal must contain at least one
// full segment of samples.
func (w *Welch) Estimate(signal []float64) (PSD, error) {
	segLen := w.cfg.SegmentLength
	if len(signal) < segLen {
		return PSD{}, fmt.Errorf("welch: signal length %d shorter than segment %d", len(signal), segLen)
	}

	hop := int(float64(segLen) * (1 - w.cfg.Overlap))
	if hop < 1 {
		hop = 1
	}

	nBins := w.fftSize/2 + 1
	acc := make([]float64, nBins)
	segments := 0

	for start := 0; start+segLen <= len(signal); start += hop {
		w.accumulateSegment(signal[start:start+segLen], acc)
		segments++
	}

	binWidth := w.cfg.SampleRate / float64(w.fftSize)
	psd := PSD{
		Freqs:    make([]float64, nBins),
		Power:    acc,
		BinWidth: binWidth,
	}

	norm := 1 / (w.winNorm * float64(segments))
	for k := 0; k < nBins; k++ {
		psd.Freqs[k] = float64(k) * binWidth
		p := acc[k] * norm
		// One-sided spectrum: interior bins carry the power of their
		// negative-frequency mirrors.
		if k != 0 && k != nBins-1 {
			p *= 2
		}
		psd.Power[k] = p
	}

	return psd, nil
}

func (w *Welch) accumulateSegment(seg []float64, acc []float64) {
	// Remove the segment mean so residual drift does not leak across bins.
	mean := 0.0
	for _, x := range seg {
		mean += x
	}
	mean /= float64(len(seg))

	for i, x := range seg {
		w.seg[i] = x - mean
	}
	window.ApplyTo(w.seg, w.seg, w.coeffs)

	for i := range w.in {
		if i < len(w.seg) {
			w.in[i] = complex(w.seg[i], 0)
		} else {
			w.in[i] = 0 // zero-pad up to the FFT size
		}
	}

	if err := w.plan.Forward(w.out, w.in); err != nil {
		return
	}

	for k := range acc {
		c := w.out[k]
		re, im := real(c), imag(c)
		acc[k] += re*re + im*im
	}
}

// BandPower integrates the density over [lowHz, highHz] using the
// trapezoidal rule, returning power in amplitude^2.
func (p PSD) BandPower(lowHz, highHz float64) float64 {
	if len(p.Power) < 2 || highHz <= lowHz {
		return 0
	}

	lo, hi := -1, -1
	for k, f := range p.Freqs {
		if lo < 0 && f >= lowHz {
			lo = k
		}
		if f <= highHz {
			hi = k
		}
	}
	if lo < 0 || hi <= lo {
		return 0
	}

	sum := 0.0
	for k := lo; k < hi; k++ {
		sum += 0.5 * (p.Power[k] + p.Power[k+1]) * p.BinWidth
	}
	return sum
}

// RelativePower returns the power in [lowHz, highHz] as a fraction of the
// power in [totalLowHz, totalHighHz]. The denominator is guarded so the
// result is always finite; an empty reference band yields 0.
func (p PSD) RelativePower(lowHz, highHz, totalLowHz, totalHighHz float64) float64 {
	total := p.BandPower(totalLowHz, totalHighHz)
	if total <= 0 {
		return 0
	}
	return p.BandPower(lowHz, highHz) / total
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
