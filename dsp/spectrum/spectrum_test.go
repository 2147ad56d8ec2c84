package spectrum

import (
	"math"
	"testing"
)

func TestMagnitudePowerPhase(t *testing.T) {
	in := []complex128{3 + 4i, 0, -2, 1i}

	mag := Magnitude(in)
	wantMag := []float64{5, 0, 2, 1}
	for i, w := range wantMag {
		if math.Abs(mag[i]-w) > 1e-12 {
			t.Errorf("magnitude[%d]: got %v, want %v", i, mag[i], w)
		}
	}

	pow := Power(in)
	wantPow := []float64{25, 0, 4, 1}
	for i, w := range wantPow {
		if math.Abs(pow[i]-w) > 1e-12 {
			t.Errorf("power[%d]: got %v, want %v", i, pow[i], w)
		}
	}

	ph := Phase(in)
	if math.Abs(ph[2]-math.Pi) > 1e-12 {
		t.Errorf("phase of -2: got %v, want pi", ph[2])
	}
	if math.Abs(ph[3]-math.Pi/2) > 1e-12 {
		t.Errorf("phase of i: got %v, want pi/2", ph[3])
	}
}

func TestMagnitude_Empty(t *testing.T) {
	if Magnitude(nil) != nil || Power(nil) != nil || Phase(nil) != nil {
		t.Fatal("empty input must return nil")
	}
}
