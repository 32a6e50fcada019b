package kern

import (
	"math"
)

var (
	matern12 *Matern12
	_        Kernel = matern12 // Check that Matern12 respects the Kernel interface.
)

// Matern12 is the Matern kernel with nu = 1/2 (exponential kernel).
type Matern12 struct {
	lscale float64
}

func NewMatern12(lscale float64) *Matern12 {
	return &Matern12{
		lscale: lscale,
	}
}

func (k *Matern12) Cov(a, b float64) float64 {
	return math.Exp(-math.Abs(a-b) / k.lscale)
}
