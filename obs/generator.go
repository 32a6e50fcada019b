// Package obs produces synthetic noisy observations of the forward model.
package obs

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/lucasmaystre/goinverse/solver"
	"gonum.org/v1/gonum/stat/distuv"
)

var ErrNoiseStd = errors.New("obs: noise standard deviation must be positive and finite")

// Generator perturbs forward solutions with i.i.d. Gaussian noise.
type Generator struct {
	n     int
	bc    solver.Boundary
	noise distuv.Normal
}

type Option func(*Generator)

func WithBoundary(bc solver.Boundary) Option {
	return func(g *Generator) {
		g.bc = bc
	}
}

// NewGenerator returns a generator for fields on n grid points. Noise is
// drawn from src; a nil src is replaced by a randomly seeded one.
func NewGenerator(n int, noiseStd float64, src rand.Source, opts ...Option) (*Generator, error) {
	if math.IsNaN(noiseStd) || math.IsInf(noiseStd, 0) || noiseStd <= 0 {
		return nil, fmt.Errorf("%w, got noise_std=%v", ErrNoiseStd, noiseStd)
	}
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	g := &Generator{
		n:  n,
		bc: solver.DefaultBoundary,
		noise: distuv.Normal{
			Mu:    0,
			Sigma: noiseStd,
			Src:   src,
		},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

func (g *Generator) NoiseStd() float64 {
	return g.noise.Sigma
}

// Generate solves the forward problem for f and adds one noise draw per
// grid point.
func (g *Generator) Generate(f []float64) ([]float64, error) {
	u, err := solver.Solve(g.n, f, g.bc)
	if err != nil {
		return nil, fmt.Errorf("obs: forward solve: %w", err)
	}
	for i := range u {
		u[i] += g.noise.Rand()
	}
	return u, nil
}
