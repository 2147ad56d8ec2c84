package window

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function.
type Type int

// TypeHann is the zero value so spectral estimators default to it.
const (
	TypeHann Type = iota
	TypeHamming
	TypeBlackman
	TypeRectangular
)

// Option configures window generation.
type Option func(*config)

type config struct {
	periodic bool
}

// WithPeriodic generates a periodic (DFT-even) window instead of the
// symmetric variant. Periodic windows are the right choice for spectral
// estimation with overlapping segments.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Generate returns window coefficients of the given length.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}

	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	out := make([]float64, length)
	if length == 1 {
		out[0] = 1
		return out
	}

	denom := float64(length - 1)
	if cfg.periodic {
		denom = float64(length)
	}

	for i := range out {
		x := float64(i) / denom
		out[i] = eval(t, x)
	}

	return out
}

// Apply multiplies buf in-place by the selected window.
func Apply(t Type, buf []float64, opts ...Option) {
	if len(buf) == 0 {
		return
	}

	coeffs := Generate(t, len(buf), opts...)
	vecmath.MulBlockInPlace(buf, coeffs)
}

// ApplyTo multiplies src by the precomputed coefficients into dst.
// All three slices must have the same length.
func ApplyTo(dst, src, coeffs []float64) {
	vecmath.MulBlock(dst, src, coeffs)
}

// SumSquares returns the sum of squared coefficients, the normalization
// term for window-compensated power spectral density estimates.
func SumSquares(coeffs []float64) float64 {
	sum := 0.0
	for _, w := range coeffs {
		sum += w * w
	}

	return sum
}

func eval(t Type, x float64) float64 {
	switch t {
	case TypeHann:
		return 0.5 - 0.5*math.Cos(2*math.Pi*x)
	case TypeHamming:
		return 0.54 - 0.46*math.Cos(2*math.Pi*x)
	case TypeBlackman:
		return 0.42 - 0.5*math.Cos(2*math.Pi*x) + 0.08*math.Cos(4*math.Pi*x)
	case TypeRectangular:
		return 1
	default:
		return 1
	}
}
