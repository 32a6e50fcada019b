package kern

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// DefaultLengthScale is the length-scale used when none is configured.
const DefaultLengthScale = 1.0

var ErrSmoothness = errors.New("kern: smoothness must be positive or +Inf")

// Kernel is a stationary covariance function on the real line.
type Kernel interface {
	// Covariance between the process values at a and b.
	Cov(a, b float64) float64
}

// New selects the kernel matching the smoothness nu. An infinite nu gives
// the squared-exponential kernel, the half-integer values 1/2, 3/2 and 5/2
// have closed forms and any other positive value uses the general Matern
// expression.
func New(nu, lscale float64) (Kernel, error) {
	if math.IsNaN(lscale) || math.IsInf(lscale, 0) || lscale <= 0 {
		return nil, fmt.Errorf("kern: length-scale must be positive and finite, got %v", lscale)
	}
	switch {
	case math.IsNaN(nu) || nu <= 0:
		return nil, fmt.Errorf("%w, got nu=%v", ErrSmoothness, nu)
	case math.IsInf(nu, 1):
		return NewRBF(lscale), nil
	case nu == 0.5:
		return NewMatern12(lscale), nil
	case nu == 1.5:
		return NewMatern32(lscale), nil
	case nu == 2.5:
		return NewMatern52(lscale), nil
	default:
		return NewMatern(nu, lscale), nil
	}
}

// Matrix evaluates k on every pair of xs.
func Matrix(k Kernel, xs []float64) *mat.SymDense {
	n := len(xs)
	cov := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			cov.SetSym(i, j, k.Cov(xs[i], xs[j]))
		}
	}
	return cov
}
