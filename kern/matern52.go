package kern

import (
	"math"
)

var (
	matern52 *Matern52
	_        Kernel = matern52 // Check that Matern52 respects the Kernel interface.
)

type Matern52 struct {
	lambda float64
}

func NewMatern52(lscale float64) *Matern52 {
	return &Matern52{
		lambda: math.Sqrt(5) / lscale,
	}
}

func (k *Matern52) Cov(a, b float64) float64 {
	r := k.lambda * math.Abs(a-b)
	return (1 + r + r*r/3) * math.Exp(-r)
}
