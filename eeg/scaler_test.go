package eeg

import "testing"

func volts(v float64) Block {
	return Block{{v, -v}, {v, v}, {-v, v}, {v, -v}}
}

func TestAutoScaler_VoltsDetected(t *testing.T) {
	s := NewAutoScaler()
	if f := s.Factor(volts(3e-5)); f != MicrovoltsPerVolt {
		t.Errorf("volt-range block: factor %v, want %v", f, MicrovoltsPerVolt)
	}
	if !s.Decided() {
		t.Error("scaler did not record decision")
	}
}

func TestAutoScaler_MicrovoltsDetected(t *testing.T) {
	s := NewAutoScaler()
	if f := s.Factor(volts(40)); f != 1 {
		t.Errorf("microvolt-range block: factor %v, want 1", f)
	}
}

func TestAutoScaler_DecisionSticks(t *testing.T) {
	s := NewAutoScaler()
	s.Factor(volts(3e-5))

	// A later large-amplitude artifact must not flip the unit decision.
	if f := s.Factor(volts(500)); f != MicrovoltsPerVolt {
		t.Errorf("decision flipped: factor %v, want %v", f, MicrovoltsPerVolt)
	}
}

func TestAutoScaler_InconclusiveRetainsPrevious(t *testing.T) {
	s := NewAutoScaler()
	if f := s.Factor(Block{}); f != 1 {
		t.Errorf("empty block: factor %v, want default 1", f)
	}
	if f := s.Factor(volts(0)); f != 1 {
		t.Errorf("all-zero block: factor %v, want 1", f)
	}
	if s.Decided() {
		t.Error("decision recorded on inconclusive input")
	}

	s.Factor(volts(2e-5))
	if f := s.Factor(volts(0)); f != MicrovoltsPerVolt {
		t.Errorf("all-zero after decision: factor %v, want %v", f, MicrovoltsPerVolt)
	}
}

func TestAutoScaler_Recheck(t *testing.T) {
	s := NewAutoScaler(WithRecheck(2))
	s.Factor(volts(3e-5))

	// First block after the decision is within the cadence, held.
	if f := s.Factor(volts(40)); f != MicrovoltsPerVolt {
		t.Errorf("within cadence: factor %v, want %v", f, MicrovoltsPerVolt)
	}
	// Second block triggers the recheck and flips to microvolts.
	if f := s.Factor(volts(40)); f != 1 {
		t.Errorf("recheck: factor %v, want 1", f)
	}
}

func TestAutoScaler_Reset(t *testing.T) {
	s := NewAutoScaler()
	s.Factor(volts(3e-5))
	s.Reset()
	if s.Decided() || s.Factor(Block{}) != 1 {
		t.Error("reset did not restore defaults")
	}
}
