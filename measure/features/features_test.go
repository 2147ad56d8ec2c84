package features

import (
	"testing"
	"time"

	"github.com/stican/eegpipe/internal/testutil"
)

const sampleRate = 250.0

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	e, err := New(Config{
		SampleRate:      sampleRate,
		FrontalChannels: []int{0, 1},
	})
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func requireFiniteSnapshot(t *testing.T, s Snapshot) {
	t.Helper()
	testutil.RequireFinite(t, []float64{s.ThetaPower, s.AlphaPower, s.BetaPower, s.FocusRatio})
}

func TestNew_Validation(t *testing.T) {
	if _, err := New(Config{FrontalChannels: []int{0}}); err == nil {
		t.Error("zero sample rate accepted")
	}
	if _, err := New(Config{SampleRate: sampleRate}); err == nil {
		t.Error("missing frontal channels accepted")
	}
}

func TestExtract_AlphaDominanceRelaxed(t *testing.T) {
	// A clean 10 Hz tone on every channel: alpha must dominate, focus
	// must be low and the window must classify as relaxed.
	e := newTestExtractor(t)
	window := testutil.MultiChannelSine(4, 10, sampleRate, 30, 2*int(sampleRate))

	snap := e.Extract(window, time.Now())
	requireFiniteSnapshot(t, snap)

	if snap.AlphaPower < 0.5 {
		t.Errorf("alpha relative power %v, want > 0.5", snap.AlphaPower)
	}
	if snap.FocusRatio >= 1 {
		t.Errorf("focus ratio %v, want < 1", snap.FocusRatio)
	}
	if !snap.Relaxed {
		t.Error("10 Hz tone not classified as relaxed")
	}
	if snap.Blink || snap.Noisy {
		t.Errorf("unexpected flags: blink=%v noisy=%v", snap.Blink, snap.Noisy)
	}
}

func TestExtract_BetaRaisesFocus(t *testing.T) {
	e := newTestExtractor(t)

	// Strong 20 Hz beta over weak 10 Hz alpha.
	window := testutil.MultiChannelSine(4, 20, sampleRate, 40, 2*int(sampleRate))
	for ch := range window {
		testutil.AddInPlace(window[ch], testutil.DeterministicSine(10, sampleRate, 5, len(window[ch])))
	}

	snap := e.Extract(window, time.Now())
	requireFiniteSnapshot(t, snap)

	if snap.FocusRatio <= 1 {
		t.Errorf("focus ratio %v, want > 1 for beta-dominated window", snap.FocusRatio)
	}
	if snap.Relaxed {
		t.Error("beta-dominated window classified as relaxed")
	}
}

func TestExtract_BlinkOnFrontalOnly(t *testing.T) {
	e := newTestExtractor(t)
	n := 2 * int(sampleRate)

	// Deflection inside the most recent 0.4 s on a frontal channel.
	window := testutil.MultiChannelSine(4, 10, sampleRate, 20, n)
	testutil.AddInPlace(window[0], testutil.BlinkArtifact(n, n-25, 40, 300))

	if snap := e.Extract(window, time.Now()); !snap.Blink {
		t.Error("frontal deflection not detected as blink")
	}

	// The same deflection on an occipital channel is not a blink.
	window = testutil.MultiChannelSine(4, 10, sampleRate, 20, n)
	testutil.AddInPlace(window[3], testutil.BlinkArtifact(n, n-25, 40, 300))

	if snap := e.Extract(window, time.Now()); snap.Blink {
		t.Error("occipital deflection misdetected as blink")
	}

	// A deflection older than the blink window is ignored.
	window = testutil.MultiChannelSine(4, 10, sampleRate, 20, n)
	testutil.AddInPlace(window[0], testutil.BlinkArtifact(n, n/4, 40, 300))

	if snap := e.Extract(window, time.Now()); snap.Blink {
		t.Error("stale deflection detected as blink")
	}
}

func TestExtract_NoisyFlag(t *testing.T) {
	e := newTestExtractor(t)
	window := testutil.MultiChannelSine(4, 10, sampleRate, 900, 2*int(sampleRate))

	if snap := e.Extract(window, time.Now()); !snap.Noisy {
		t.Error("railing amplitude not flagged as noisy")
	}
}

func TestExtract_DegenerateWindows(t *testing.T) {
	e := newTestExtractor(t)

	for _, window := range [][][]float64{
		nil,
		{},
		{{}, {}, {}, {}},
		testutil.MultiChannelSine(4, 10, sampleRate, 30, 50), // shorter than one segment
		{make([]float64, 500), make([]float64, 500), make([]float64, 500), make([]float64, 500)}, // all zero
	} {
		snap := e.Extract(window, time.Now())
		requireFiniteSnapshot(t, snap)
		if snap.ThetaPower != 0 || snap.AlphaPower != 0 || snap.BetaPower != 0 {
			t.Errorf("degenerate window produced band powers %+v", snap)
		}
	}
}

func TestExtract_ZeroWindowFocusSentinel(t *testing.T) {
	e := newTestExtractor(t)
	window := [][]float64{
		make([]float64, 500), make([]float64, 500),
		make([]float64, 500), make([]float64, 500),
	}

	snap := e.Extract(window, time.Now())
	if snap.FocusRatio != 0 {
		t.Errorf("zero-power window focus = %v, want 0 sentinel", snap.FocusRatio)
	}
	if snap.Relaxed {
		t.Error("zero-power window classified as relaxed")
	}
}

func TestExtract_Timestamp(t *testing.T) {
	e := newTestExtractor(t)
	at := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	snap := e.Extract(nil, at)
	if !snap.Timestamp.Equal(at) {
		t.Errorf("timestamp %v, want %v", snap.Timestamp, at)
	}
}
