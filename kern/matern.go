package kern

import (
	"math"

	"gonum.org/v1/gonum/integrate/quad"
)

const (
	// Number of Gauss-Legendre nodes used for the Bessel integral.
	besselNodes = 256
	// The integrand is truncated once its log drops below -besselCutoff.
	besselCutoff = 45.0
	besselMaxT   = 60.0
)

var (
	matern *Matern
	_      Kernel = matern // Check that Matern respects the Kernel interface.
)

// Matern is the general Matern kernel for an arbitrary smoothness nu > 0:
//
//	k(d) = 2^(1-nu) / Gamma(nu) * z^nu * K_nu(z),  z = sqrt(2 nu) d / l,
//
// with k(0) = 1.
type Matern struct {
	nu     float64
	lambda float64
	// log(2^(1-nu) / Gamma(nu)), computed once.
	logc float64
}

func NewMatern(nu, lscale float64) *Matern {
	lg, _ := math.Lgamma(nu)
	return &Matern{
		nu:     nu,
		lambda: math.Sqrt(2*nu) / lscale,
		logc:   (1-nu)*math.Ln2 - lg,
	}
}

func (k *Matern) Cov(a, b float64) float64 {
	z := k.lambda * math.Abs(a-b)
	if z == 0 {
		return 1
	}
	kv := besselK(k.nu, z)
	if kv == 0 {
		return 0
	}
	return math.Exp(k.logc + k.nu*math.Log(z) + math.Log(kv))
}

// besselK evaluates the modified Bessel function of the second kind
//
//	K_nu(z) = int_0^inf exp(-z cosh t) cosh(nu t) dt,  z > 0.
func besselK(nu, z float64) float64 {
	// Past upper the integrand is below exp(-besselCutoff).
	upper := 1.0
	for z*math.Cosh(upper)-nu*upper < besselCutoff && upper < besselMaxT {
		upper += 0.5
	}
	f := func(t float64) float64 {
		c := z * math.Cosh(t)
		return 0.5 * (math.Exp(nu*t-c) + math.Exp(-nu*t-c))
	}
	return quad.Fixed(f, 0, upper, besselNodes, nil, 1)
}
