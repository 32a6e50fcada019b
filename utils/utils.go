package utils

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Linspace returns n evenly spaced points covering [lo, hi], endpoints included.
func Linspace(n int, lo, hi float64) []float64 {
	out := make([]float64, n)
	floats.Span(out, lo, hi)
	// Span can be off by one ulp at the upper end.
	out[n-1] = hi
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

// AllFinite reports whether no element is NaN or infinite.
func AllFinite(xs []float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// Sum of squared differences between two vectors of equal length.
func SquaredDistance(a, b []float64) float64 {
	diff := make([]float64, len(a))
	floats.SubTo(diff, a, b)
	return floats.Dot(diff, diff)
}

// AddDiagonal returns a copy of a with v added to every diagonal entry.
func AddDiagonal(a mat.Symmetric, v float64) *mat.SymDense {
	n := a.SymmetricDim()
	out := mat.NewSymDense(n, nil)
	out.CopySym(a)
	for i := 0; i < n; i++ {
		out.SetSym(i, i, out.At(i, i)+v)
	}
	return out
}

