package kern

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSelectsKernel(t *testing.T) {
	cases := []struct {
		nu   float64
		want Kernel
	}{
		{math.Inf(1), &RBF{}},
		{0.5, &Matern12{}},
		{1.5, &Matern32{}},
		{2.5, &Matern52{}},
		{0.8, &Matern{}},
		{4, &Matern{}},
	}
	for _, c := range cases {
		k, err := New(c.nu, DefaultLengthScale)
		require.NoError(t, err)
		assert.IsType(t, c.want, k, "nu=%v", c.nu)
	}
}

func TestNewRejectsInvalid(t *testing.T) {
	for _, nu := range []float64{0, -1, math.NaN(), math.Inf(-1)} {
		_, err := New(nu, DefaultLengthScale)
		assert.ErrorIs(t, err, ErrSmoothness, "nu=%v", nu)
	}
	_, err := New(1.5, 0)
	assert.Error(t, err)
	_, err = New(1.5, math.Inf(1))
	assert.Error(t, err)
}

func TestUnitVarianceAtZeroDistance(t *testing.T) {
	for _, nu := range []float64{0.5, 0.8, 1.5, 2.5, 3.3, math.Inf(1)} {
		k, err := New(nu, 0.7)
		require.NoError(t, err)
		assert.Equal(t, 1.0, k.Cov(0.3, 0.3), "nu=%v", nu)
	}
}

func TestClosedFormsMatchGeneralMatern(t *testing.T) {
	closed := map[float64]Kernel{
		0.5: NewMatern12(0.8),
		1.5: NewMatern32(0.8),
		2.5: NewMatern52(0.8),
	}
	for nu, k := range closed {
		general := NewMatern(nu, 0.8)
		for _, d := range []float64{1e-3, 0.05, 0.3, 1, 2.5} {
			assert.InDelta(t, k.Cov(0, d), general.Cov(0, d), 1e-8, "nu=%v d=%v", nu, d)
		}
	}
}

func TestBesselK(t *testing.T) {
	// K_{1/2}(z) = sqrt(pi / (2z)) exp(-z).
	for _, z := range []float64{0.01, 0.5, 1, 3, 10} {
		want := math.Sqrt(math.Pi/(2*z)) * math.Exp(-z)
		assert.InEpsilon(t, want, besselK(0.5, z), 1e-8, "z=%v", z)
	}
}

func TestMaternApproachesRBF(t *testing.T) {
	rbf := NewRBF(1)
	m := NewMatern(60, 1)
	for _, d := range []float64{0.1, 0.5, 1} {
		assert.InDelta(t, rbf.Cov(0, d), m.Cov(0, d), 1e-2, "d=%v", d)
	}
}

func TestCovDecreasesWithDistance(t *testing.T) {
	for _, nu := range []float64{0.5, 1.2, 1.5, 2.5, math.Inf(1)} {
		k, err := New(nu, DefaultLengthScale)
		require.NoError(t, err)
		prev := k.Cov(0, 0)
		for d := 0.1; d <= 1.0; d += 0.1 {
			cur := k.Cov(0, d)
			assert.Less(t, cur, prev, "nu=%v d=%v", nu, d)
			assert.Equal(t, cur, k.Cov(d, 0))
			prev = cur
		}
	}
}

func TestMatrix(t *testing.T) {
	xs := []float64{0, 0.25, 0.5, 1}
	k := NewMatern32(1)
	cov := Matrix(k, xs)
	require.Equal(t, 4, cov.SymmetricDim())
	for i := range xs {
		assert.Equal(t, 1.0, cov.At(i, i))
		for j := range xs {
			assert.Equal(t, k.Cov(xs[i], xs[j]), cov.At(i, j))
			assert.Equal(t, cov.At(i, j), cov.At(j, i))
		}
	}
}
