package testutil

import (
	"math"
	"testing"
)

func TestDeterministicSine(t *testing.T) {
	s := DeterministicSine(10, 250, 1.0, 25)
	if len(s) != 25 {
		t.Fatalf("len = %d, want 25", len(s))
	}
	if math.Abs(s[0]) > 1e-15 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}
	for i, v := range s {
		if v < -1 || v > 1 {
			t.Fatalf("s[%d] = %v out of range", i, v)
		}
	}
}

func TestDeterministicNoiseReproducible(t *testing.T) {
	a := DeterministicNoise(42, 1.0, 64)
	b := DeterministicNoise(42, 1.0, 64)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("noise not deterministic at index %d", i)
		}
	}
}

func TestMultiChannelSine(t *testing.T) {
	m := MultiChannelSine(4, 10, 250, 2.0, 100)
	if len(m) != 4 {
		t.Fatalf("channels = %d, want 4", len(m))
	}
	for ch := 1; ch < 4; ch++ {
		for i := range m[0] {
			if m[ch][i] != m[0][i] {
				t.Fatalf("channel %d differs from channel 0 at index %d", ch, i)
			}
		}
	}
}

func TestBlinkArtifact(t *testing.T) {
	b := BlinkArtifact(200, 100, 50, 300)
	if math.Abs(b[100]-300) > 1e-9 {
		t.Fatalf("peak = %v, want 300", b[100])
	}
	if b[0] != 0 || b[199] != 0 {
		t.Fatal("artifact leaked outside its window")
	}
	for i, v := range b {
		if v < 0 || v > 300+1e-9 {
			t.Fatalf("b[%d] = %v out of range", i, v)
		}
	}
}

func TestAddInPlace(t *testing.T) {
	a := []float64{1, 2, 3}
	AddInPlace(a, []float64{10, 20, 30})
	want := []float64{11, 22, 33}
	for i := range a {
		if a[i] != want[i] {
			t.Fatalf("index %d: got %v, want %v", i, a[i], want[i])
		}
	}
}
