package design

import (
	"math"
	"testing"

	"github.com/stican/eegpipe/dsp/filter/biquad"
)

const sampleRate = 250.0

func magDB(c biquad.Coefficients, freq float64) float64 {
	return c.MagnitudeDB(freq, sampleRate)
}

func TestNotch_RejectsCenterPassesNeighbors(t *testing.T) {
	c := Notch(50, 30, sampleRate)

	if db := magDB(c, 50); db > -40 {
		t.Errorf("center attenuation too weak: %.1f dB", db)
	}
	for _, f := range []float64{10, 30, 45, 55, 70} {
		if db := magDB(c, f); math.Abs(db) > 3 {
			t.Errorf("passband at %g Hz off unity: %.2f dB", f, db)
		}
	}
	if !c.IsStable() {
		t.Error("notch unstable")
	}
}

func TestNotch_UnityDCGain(t *testing.T) {
	c := Notch(50, 30, sampleRate)
	if g := c.DCGain(); math.Abs(g-1) > 1e-9 {
		t.Errorf("DC gain: got %v, want 1", g)
	}
}

func TestLowpassHighpass_EdgeGain(t *testing.T) {
	lp := Lowpass(45, defaultQ, sampleRate)
	hp := Highpass(1, defaultQ, sampleRate)

	// Butterworth-Q biquads are 3 dB down at the corner.
	if db := magDB(lp, 45); math.Abs(db+3) > 0.5 {
		t.Errorf("lowpass corner: got %.2f dB, want -3 dB", db)
	}
	if db := magDB(hp, 1); math.Abs(db+3) > 0.5 {
		t.Errorf("highpass corner: got %.2f dB, want -3 dB", db)
	}
	if g := lp.DCGain(); math.Abs(g-1) > 1e-9 {
		t.Errorf("lowpass DC gain: got %v, want 1", g)
	}
	if g := hp.DCGain(); math.Abs(g) > 1e-9 {
		t.Errorf("highpass DC gain: got %v, want 0", g)
	}
}

func TestBandpass_PeaksAtCenter(t *testing.T) {
	c := Bandpass(10, 2, sampleRate)
	center := magDB(c, 10)
	if magDB(c, 3) > center || magDB(c, 40) > center {
		t.Error("bandpass response does not peak at center")
	}
}

func TestInvalidParameters_ReturnZeroCoefficients(t *testing.T) {
	zero := biquad.Coefficients{}
	cases := []biquad.Coefficients{
		Notch(0, 30, sampleRate),
		Notch(130, 30, sampleRate), // above Nyquist
		Notch(50, 30, 0),
		Lowpass(-5, 1, sampleRate),
		Highpass(math.NaN(), 1, sampleRate),
	}
	for i, c := range cases {
		if c != zero {
			t.Errorf("case %d: got %v, want zero coefficients", i, c)
		}
	}
}

func TestNegativeQ_FallsBackToDefault(t *testing.T) {
	got := Lowpass(45, -1, sampleRate)
	want := Lowpass(45, defaultQ, sampleRate)
	if got != want {
		t.Errorf("negative Q: got %v, want default-Q design %v", got, want)
	}
}

func TestButterworthLP_SectionCountAndStability(t *testing.T) {
	cases := []struct {
		order, sections int
	}{
		{1, 1}, {2, 1}, {3, 2}, {4, 2}, {5, 3}, {8, 4},
	}
	for _, tc := range cases {
		s := ButterworthLP(45, tc.order, sampleRate)
		if len(s) != tc.sections {
			t.Errorf("order %d: got %d sections, want %d", tc.order, len(s), tc.sections)
		}
		if !biquad.NewChain(s).IsStable() {
			t.Errorf("order %d: unstable cascade", tc.order)
		}
	}
	if s := ButterworthLP(45, 0, sampleRate); s != nil {
		t.Errorf("order 0: got %v, want nil", s)
	}
}

func TestButterworthLP_CornerAttenuation(t *testing.T) {
	chain := biquad.NewChain(ButterworthLP(45, 4, sampleRate))

	// -3 dB at corner, monotone rolloff past it.
	if db := chain.MagnitudeDB(45, sampleRate); math.Abs(db+3) > 0.5 {
		t.Errorf("corner: got %.2f dB, want -3 dB", db)
	}
	if db := chain.MagnitudeDB(90, sampleRate); db > -20 {
		t.Errorf("stopband at 90 Hz: got %.2f dB, want < -20 dB", db)
	}
	if db := chain.MagnitudeDB(10, sampleRate); math.Abs(db) > 0.1 {
		t.Errorf("passband at 10 Hz: got %.2f dB, want ~0 dB", db)
	}
}

func TestButterworthBand_EEGBand(t *testing.T) {
	sections := ButterworthBand(1, 45, 4, sampleRate)
	if sections == nil {
		t.Fatal("nil design for valid parameters")
	}
	chain := biquad.NewChain(sections)
	if !chain.IsStable() {
		t.Fatal("unstable bandpass cascade")
	}

	// Mid-band roughly unity, DC fully rejected, 100 Hz strongly attenuated.
	if db := chain.MagnitudeDB(10, sampleRate); math.Abs(db) > 0.5 {
		t.Errorf("mid-band at 10 Hz: got %.2f dB, want ~0 dB", db)
	}
	if g := chain.DCGain(); math.Abs(g) > 1e-9 {
		t.Errorf("DC gain: got %v, want 0", g)
	}
	if db := chain.MagnitudeDB(100, sampleRate); db > -25 {
		t.Errorf("stopband at 100 Hz: got %.2f dB, want < -25 dB", db)
	}
}

func TestButterworthBand_InvalidParams(t *testing.T) {
	cases := [][]biquad.Coefficients{
		ButterworthBand(0, 45, 4, sampleRate),
		ButterworthBand(45, 1, 4, sampleRate),
		ButterworthBand(1, 125, 4, sampleRate), // high edge at Nyquist
		ButterworthBand(1, 45, 0, sampleRate),
	}
	for i, s := range cases {
		if s != nil {
			t.Errorf("case %d: got %d sections, want nil", i, len(s))
		}
	}
}
