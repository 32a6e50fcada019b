package kern

import (
	"math"
)

var (
	matern32 *Matern32
	_        Kernel = matern32 // Check that Matern32 respects the Kernel interface.
)

type Matern32 struct {
	lambda float64
}

func NewMatern32(lscale float64) *Matern32 {
	return &Matern32{
		lambda: math.Sqrt(3) / lscale,
	}
}

func (k *Matern32) Cov(a, b float64) float64 {
	r := k.lambda * math.Abs(a-b)
	return (1 + r) * math.Exp(-r)
}
