package amplitude

import (
	"math"
	"testing"
)

func TestCalculate_Empty(t *testing.T) {
	s := Calculate(nil)
	if s != (Stats{}) {
		t.Fatalf("empty signal: got %+v, want zero stats", s)
	}
}

func TestCalculate_KnownSignal(t *testing.T) {
	s := Calculate([]float64{3, -1, 4, -1, -5})

	if s.Length != 5 {
		t.Errorf("Length = %d, want 5", s.Length)
	}
	if want := 14.0 / 5; math.Abs(s.MeanAbs-want) > 1e-12 {
		t.Errorf("MeanAbs = %v, want %v", s.MeanAbs, want)
	}
	if s.MaxAbs != 5 {
		t.Errorf("MaxAbs = %v, want 5", s.MaxAbs)
	}
	if s.Max != 4 || s.Min != -5 {
		t.Errorf("Max/Min = %v/%v, want 4/-5", s.Max, s.Min)
	}
	if s.PeakToPeak != 9 {
		t.Errorf("PeakToPeak = %v, want 9", s.PeakToPeak)
	}
	if want := math.Sqrt(52.0 / 5); math.Abs(s.RMS-want) > 1e-12 {
		t.Errorf("RMS = %v, want %v", s.RMS, want)
	}
}

func TestStandaloneHelpersMatchCalculate(t *testing.T) {
	sig := []float64{0.5, -2.5, 1.5, 0, 2}
	s := Calculate(sig)

	if got := MeanAbs(sig); got != s.MeanAbs {
		t.Errorf("MeanAbs = %v, want %v", got, s.MeanAbs)
	}
	if got := MaxAbs(sig); got != s.MaxAbs {
		t.Errorf("MaxAbs = %v, want %v", got, s.MaxAbs)
	}
	if got := PeakToPeak(sig); got != s.PeakToPeak {
		t.Errorf("PeakToPeak = %v, want %v", got, s.PeakToPeak)
	}
}

func TestHelpers_Empty(t *testing.T) {
	if MeanAbs(nil) != 0 || MaxAbs(nil) != 0 || PeakToPeak(nil) != 0 {
		t.Fatal("helpers must return 0 on empty input")
	}
}

func TestPeakToPeak_Constant(t *testing.T) {
	if got := PeakToPeak([]float64{7, 7, 7}); got != 0 {
		t.Errorf("constant signal peak-to-peak = %v, want 0", got)
	}
}
