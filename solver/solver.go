// Package solver implements the finite-difference forward model: the
// boundary-value problem on [0, 1] with coefficient field f and Dirichlet
// conditions u(0) = Left, u(1) = Right.
package solver

import (
	"errors"
	"fmt"

	"github.com/lucasmaystre/goinverse/utils"
	"gonum.org/v1/gonum/mat"
)

// MinPoints is the smallest number of grid points the stencil supports.
const MinPoints = 4

var (
	ErrDimensionMismatch = errors.New("solver: dimension mismatch")
	ErrSingularSystem    = errors.New("solver: singular finite-difference system")
)

// Boundary holds the Dirichlet values at x = 0 and x = 1.
type Boundary struct {
	Left  float64 `yaml:"left"`
	Right float64 `yaml:"right"`
}

var DefaultBoundary = Boundary{Left: 1, Right: 1}

// Solve computes the solution on the n grid points. The interior system,
// of size n-2, is tridiagonal with
//
//	diag_i = -2 (1 + f[i] h^2),  i = 1..n-2,  h = 1/n,
//
// ones on both off-diagonals, and right-hand side -Left in the first row,
// -Right in the last row, zero elsewhere. f[0] and f[n-1] are not used.
// The system is solved as a gonum tridiagonal matrix with partial pivoting.
func Solve(n int, f []float64, bc Boundary) ([]float64, error) {
	diag, rhs, err := assemble(n, f, bc)
	if err != nil {
		return nil, err
	}
	if !utils.AllFinite(diag) {
		return nil, fmt.Errorf("%w: coefficient field is not finite", ErrSingularSystem)
	}
	m := len(diag)
	off := make([]float64, m-1)
	for i := range off {
		off[i] = 1
	}
	a := mat.NewTridiag(m, off, diag, off)
	var x mat.VecDense
	if err := a.SolveVecTo(&x, false, mat.NewVecDense(m, rhs)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingularSystem, err)
	}
	return withBoundary(x.RawVector().Data, bc)
}

func assemble(n int, f []float64, bc Boundary) (diag, rhs []float64, err error) {
	if n < MinPoints {
		return nil, nil, fmt.Errorf("%w: n=%d, need at least %d points", ErrDimensionMismatch, n, MinPoints)
	}
	if len(f) != n {
		return nil, nil, fmt.Errorf("%w: coefficient field has length %d, want %d", ErrDimensionMismatch, len(f), n)
	}
	h := 1 / float64(n)
	m := n - 2
	diag = make([]float64, m)
	for i := range diag {
		diag[i] = -2 * (1 + f[i+1]*h*h)
	}
	rhs = make([]float64, m)
	rhs[0] = -bc.Left
	rhs[m-1] = -bc.Right
	return diag, rhs, nil
}

func withBoundary(interior []float64, bc Boundary) ([]float64, error) {
	if !utils.AllFinite(interior) {
		return nil, fmt.Errorf("%w: solution is not finite", ErrSingularSystem)
	}
	u := make([]float64, 0, len(interior)+2)
	u = append(u, bc.Left)
	u = append(u, interior...)
	u = append(u, bc.Right)
	return u, nil
}
