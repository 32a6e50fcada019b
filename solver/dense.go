package solver

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// SolveDense assembles the same system as Solve into a dense matrix and
// solves it by LU decomposition. It is slower than Solve and exists as the
// reference the banded solve is checked against.
func SolveDense(n int, f []float64, bc Boundary) ([]float64, error) {
	diag, rhs, err := assemble(n, f, bc)
	if err != nil {
		return nil, err
	}
	m := len(diag)
	a := mat.NewDense(m, m, nil)
	for i := 0; i < m; i++ {
		a.Set(i, i, diag[i])
		if i > 0 {
			a.Set(i, i-1, 1)
		}
		if i < m-1 {
			a.Set(i, i+1, 1)
		}
	}
	var x mat.VecDense
	if err := x.SolveVec(a, mat.NewVecDense(m, rhs)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingularSystem, err)
	}
	return withBoundary(x.RawVector().Data, bc)
}
