package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// MultiChannelSine generates the same sine on every channel.
func MultiChannelSine(channels int, freqHz, sampleRate, amplitude float64, length int) [][]float64 {
	out := make([][]float64, channels)
	for ch := range out {
		out[ch] = DeterministicSine(freqHz, sampleRate, amplitude, length)
	}
	return out
}

// AddInPlace adds b to a element-wise. Panics on length mismatch.
func AddInPlace(a, b []float64) {
	if len(a) != len(b) {
		panic("testutil: length mismatch")
	}
	for i := range a {
		a[i] += b[i]
	}
}

// BlinkArtifact generates a raised-cosine deflection of the given peak
// amplitude and width, centered at pos, over an otherwise zero signal.
// The shape mimics the slow frontal transient of an eye blink.
func BlinkArtifact(length, pos, width int, peak float64) []float64 {
	out := make([]float64, length)
	half := width / 2
	for i := pos - half; i <= pos+half; i++ {
		if i < 0 || i >= length {
			continue
		}
		phase := float64(i-pos) / float64(half)
		out[i] = peak * 0.5 * (1 + math.Cos(math.Pi*phase))
	}
	return out
}
