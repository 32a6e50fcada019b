package kern

import "math"

var (
	rbf *RBF
	_   Kernel = rbf // Check that RBF respects the Kernel interface.
)

// RBF is the squared-exponential kernel, the limit of the Matern family
// as the smoothness goes to infinity.
type RBF struct {
	lscale float64
}

func NewRBF(lscale float64) *RBF {
	return &RBF{
		lscale: lscale,
	}
}

func (k *RBF) Cov(a, b float64) float64 {
	d := (a - b) / k.lscale
	return math.Exp(-0.5 * d * d)
}
