package solver

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveZeroFieldIsLinear(t *testing.T) {
	bcs := []Boundary{DefaultBoundary, {Left: 0, Right: 1}, {Left: 2, Right: -3}}
	for _, n := range []int{4, 5, 10, 33} {
		for _, bc := range bcs {
			u, err := Solve(n, make([]float64, n), bc)
			require.NoError(t, err)
			require.Len(t, u, n)
			for i, v := range u {
				want := bc.Left + (bc.Right-bc.Left)*float64(i)/float64(n-1)
				assert.InDelta(t, want, v, 1e-12, "n=%d i=%d", n, i)
			}
		}
	}
}

func TestSolveUnitBoundaryConstant(t *testing.T) {
	u, err := Solve(10, make([]float64, 10), DefaultBoundary)
	require.NoError(t, err)
	for _, v := range u {
		assert.InDelta(t, 1.0, v, 1e-14)
	}
}

func TestSolveBoundaryValues(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	for n := 4; n < 40; n++ {
		f := make([]float64, n)
		for i := range f {
			f[i] = math.Exp(rng.NormFloat64())
		}
		bc := Boundary{Left: rng.Float64(), Right: rng.Float64()}
		u, err := Solve(n, f, bc)
		require.NoError(t, err)
		require.Len(t, u, n)
		assert.Equal(t, bc.Left, u[0])
		assert.Equal(t, bc.Right, u[n-1])
	}
}

func TestSolveSatisfiesStencil(t *testing.T) {
	n := 12
	f := make([]float64, n)
	for i := range f {
		f[i] = 1 + float64(i)
	}
	u, err := Solve(n, f, DefaultBoundary)
	require.NoError(t, err)
	h := 1 / float64(n)
	for i := 1; i < n-1; i++ {
		r := u[i-1] - 2*(1+f[i]*h*h)*u[i] + u[i+1]
		assert.InDelta(t, 0, r, 1e-12, "i=%d", i)
	}
}

func TestSolveIgnoresBoundarySamples(t *testing.T) {
	f := []float64{1, 2, 3, 4, 5, 6}
	g := []float64{100, 2, 3, 4, 5, -100}
	u, err := Solve(6, f, DefaultBoundary)
	require.NoError(t, err)
	v, err := Solve(6, g, DefaultBoundary)
	require.NoError(t, err)
	assert.Equal(t, u, v)
}

func TestSolveMatchesDense(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for _, n := range []int{4, 7, 20, 64} {
		f := make([]float64, n)
		for i := range f {
			f[i] = math.Exp(2 * rng.NormFloat64())
		}
		bc := Boundary{Left: 1, Right: 0.5}
		banded, err := Solve(n, f, bc)
		require.NoError(t, err)
		dense, err := SolveDense(n, f, bc)
		require.NoError(t, err)
		assert.InDeltaSlice(t, dense, banded, 1e-10, "n=%d", n)
	}
}

func TestSolveLargeCoefficient(t *testing.T) {
	// A single huge coefficient dominates the diagonal but leaves the
	// system well posed.
	for _, c := range []float64{36, 37} {
		f := make([]float64, 20)
		for i := range f {
			f[i] = 1
		}
		f[10] = math.Exp(c)
		banded, err := Solve(20, f, DefaultBoundary)
		require.NoError(t, err, "f[10]=exp(%v)", c)
		dense, err := SolveDense(20, f, DefaultBoundary)
		require.NoError(t, err)
		assert.InDeltaSlice(t, dense, banded, 1e-10, "f[10]=exp(%v)", c)
		assert.InDelta(t, 0, banded[10], 1e-12)
	}
}

func TestSolveNegativeCoefficient(t *testing.T) {
	// f = -60 at n = 8 leaves a small diagonal (-0.125) that needs pivoting.
	f := make([]float64, 8)
	for i := range f {
		f[i] = -60
	}
	banded, err := Solve(8, f, DefaultBoundary)
	require.NoError(t, err)
	dense, err := SolveDense(8, f, DefaultBoundary)
	require.NoError(t, err)
	assert.InDeltaSlice(t, dense, banded, 1e-10)
}

func TestSolveDimensionMismatch(t *testing.T) {
	_, err := Solve(10, make([]float64, 9), DefaultBoundary)
	require.ErrorIs(t, err, ErrDimensionMismatch)
	assert.Contains(t, err.Error(), "length 9, want 10")

	_, err = Solve(3, make([]float64, 3), DefaultBoundary)
	require.ErrorIs(t, err, ErrDimensionMismatch)
	assert.Contains(t, err.Error(), "n=3")

	_, err = SolveDense(10, make([]float64, 11), DefaultBoundary)
	require.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestSolveSingular(t *testing.T) {
	// With n = 4 and f = -8 the interior matrix is [[-1, 1], [1, -1]].
	f := []float64{0, -8, -8, 0}
	_, err := Solve(4, f, DefaultBoundary)
	assert.ErrorIs(t, err, ErrSingularSystem)
	_, err = SolveDense(4, f, DefaultBoundary)
	assert.ErrorIs(t, err, ErrSingularSystem)
}

func TestSolveNonFinite(t *testing.T) {
	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		f := []float64{1, 1, bad, 1, 1}
		u, err := Solve(5, f, DefaultBoundary)
		assert.Nil(t, u)
		assert.ErrorIs(t, err, ErrSingularSystem, "f=%v", bad)
	}
}
