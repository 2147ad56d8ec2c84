package spectrum

import (
	"math/cmplx"

	"github.com/cwbudde/algo-vecmath"
)

// Magnitude returns |X[k]| for each complex spectrum bin.
//
// Uses SIMD-optimized implementations when available.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	n := len(in)
	out := make([]float64, n)
	re := make([]float64, n)
	im := make([]float64, n)

	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	vecmath.Magnitude(out, re, im)
	return out
}

// Power returns |X[k]|^2 for each complex spectrum bin.
//
// Uses SIMD-optimized implementations when available.
func Power(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	n := len(in)
	out := make([]float64, n)
	re := make([]float64, n)
	im := make([]float64, n)

	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	vecmath.Power(out, re, im)
	return out
}

// Phase returns arg(X[k]) for each complex spectrum bin in radians.
func Phase(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}
	out := make([]float64, len(in))
	for i, c := range in {
		out[i] = cmplx.Phase(c)
	}
	return out
}
