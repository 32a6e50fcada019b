// Package grid holds the discretisation of [0, 1] and the prior covariance
// kernel attached to it.
package grid

import (
	"errors"
	"fmt"
	"math"

	"github.com/lucasmaystre/goinverse/kern"
	"github.com/lucasmaystre/goinverse/utils"
	"gonum.org/v1/gonum/mat"
)

// MinPoints is the smallest grid for which the interior finite-difference
// system has a neighbour on each side.
const MinPoints = 4

var ErrConfiguration = errors.New("grid: invalid configuration")

// Inf is the smoothness value selecting the squared-exponential kernel.
var Inf = math.Inf(1)

type Grid struct {
	n      int
	nu     float64
	lscale float64
	points []float64
	kernel kern.Kernel
}

type Option func(*Grid)

// WithLengthScale overrides kern.DefaultLengthScale.
func WithLengthScale(l float64) Option {
	return func(g *Grid) {
		g.lscale = l
	}
}

// New discretises [0, 1] into n uniformly spaced points and attaches the
// Matern kernel of smoothness nu (RBF when nu is Inf).
func New(n int, nu float64, opts ...Option) (*Grid, error) {
	g := &Grid{
		n:      n,
		nu:     nu,
		lscale: kern.DefaultLengthScale,
	}
	for _, opt := range opts {
		opt(g)
	}
	if n < MinPoints {
		return nil, fmt.Errorf("%w: n=%d, need at least %d points", ErrConfiguration, n, MinPoints)
	}
	kernel, err := kern.New(nu, g.lscale)
	if err != nil {
		return nil, fmt.Errorf("%w: nu=%v, length_scale=%v: %v", ErrConfiguration, nu, g.lscale, err)
	}
	g.kernel = kernel
	g.points = utils.Linspace(n, 0, 1)
	return g, nil
}

func (g *Grid) N() int {
	return g.n
}

func (g *Grid) Smoothness() float64 {
	return g.nu
}

func (g *Grid) LengthScale() float64 {
	return g.lscale
}

func (g *Grid) Kernel() kern.Kernel {
	return g.kernel
}

// Points returns a copy of the grid points.
func (g *Grid) Points() []float64 {
	out := make([]float64, g.n)
	copy(out, g.points)
	return out
}

// Covariance evaluates the kernel on all pairs of grid points. A new
// matrix is built on every call.
func (g *Grid) Covariance() *mat.SymDense {
	return kern.Matrix(g.kernel, g.points)
}
