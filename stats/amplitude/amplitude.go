package amplitude

import "math"

// Stats holds the amplitude measures used by the acquisition guards:
// unit detection, blink detection and noise flagging.
type Stats struct {
	Length     int
	MeanAbs    float64
	MaxAbs     float64
	Max        float64
	Min        float64
	PeakToPeak float64 // Max - Min
	RMS        float64
}

// Calculate computes all amplitude statistics in a single pass.
// An empty signal yields the zero Stats.
func Calculate(signal []float64) Stats {
	n := len(signal)
	if n == 0 {
		return Stats{}
	}

	var (
		sumAbs float64
		sumSq  float64
		maxVal = signal[0]
		minVal = signal[0]
	)

	for _, x := range signal {
		sumAbs += math.Abs(x)
		sumSq += x * x

		if x > maxVal {
			maxVal = x
		}
		if x < minVal {
			minVal = x
		}
	}

	return Stats{
		Length:     n,
		MeanAbs:    sumAbs / float64(n),
		MaxAbs:     math.Max(math.Abs(maxVal), math.Abs(minVal)),
		Max:        maxVal,
		Min:        minVal,
		PeakToPeak: maxVal - minVal,
		RMS:        math.Sqrt(sumSq / float64(n)),
	}
}

// MeanAbs returns the mean absolute value of the signal, 0 if empty.
func MeanAbs(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	var sum float64
	for _, x := range signal {
		sum += math.Abs(x)
	}

	return sum / float64(len(signal))
}

// MaxAbs returns the largest absolute value in the signal, 0 if empty.
func MaxAbs(signal []float64) float64 {
	var m float64
	for _, x := range signal {
		if a := math.Abs(x); a > m {
			m = a
		}
	}

	return m
}

// PeakToPeak returns max minus min of the signal, 0 if empty.
func PeakToPeak(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	maxVal, minVal := signal[0], signal[0]
	for _, x := range signal {
		if x > maxVal {
			maxVal = x
		}
		if x < minVal {
			minVal = x
		}
	}

	return maxVal - minVal
}
