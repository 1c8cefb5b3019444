package utils

import (
	"gonum.org/v1/gonum/floats"
	"math"
)

// Vector of length n filled with val.
func Fill(n int, val float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = val
	}
	return out
}

// Elementwise natural logarithm.
func Log(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = math.Log(x)
	}
	return out
}

// Elementwise exponential.
func Exp(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = math.Exp(x)
	}
	return out
}

// Weighted L1 distance, sum_i |x_i - y_i| / w_i. Slices must have equal
// lengths.
func ScaledL1(x, y, w []float64) float64 {
	diff := make([]float64, len(x))
	floats.SubTo(diff, x, y)
	for i, d := range diff {
		diff[i] = math.Abs(d)
	}
	floats.Div(diff, w)
	return floats.Sum(diff)
}
