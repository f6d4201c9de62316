package gp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gaussproc/kernel"
	"github.com/YuminosukeSato/gaussproc/pkg/errors"
)

func TestInitializeWithoutSamples(t *testing.T) {
	g := newModel(t, kernel.NewGaussian(1.0, 1.0))

	err := g.Initialize()
	var notInit *errors.NotInitializedError
	require.True(t, errors.As(err, &notInit), "got %v", err)
	assert.True(t, errors.Is(err, errors.ErrNoTrainingData))
	assert.False(t, g.IsReady())
}

func TestInversionMethodsAgree(t *testing.T) {
	in, out := wave(40)

	var reference *mat.Dense
	for _, m := range allMethods {
		t.Run(m.String(), func(t *testing.T) {
			g := newModel(t, kernel.NewGaussian(1.0, 1.0), WithSigma(0.1), WithInversionMethod(m))
			addAll(t, g, in, out)
			require.NoError(t, g.Initialize())

			if reference == nil {
				reference = g.coeffs
				return
			}
			assert.True(t, mat.EqualApprox(reference, g.coeffs, 1e-8),
				"coefficients from %s differ from FullPivotLU", m)
		})
	}
}

func TestCoefficientsSolveRegularizedSystem(t *testing.T) {
	for _, m := range allMethods {
		t.Run(m.String(), func(t *testing.T) {
			g := scenarioModel(t, WithInversionMethod(m))
			require.NoError(t, g.Initialize())

			// (K + sigma*I) * coeffs == Y
			var lhs mat.Dense
			lhs.Mul(g.regularizedKernelMatrix(), g.coeffs)
			assert.True(t, mat.EqualApprox(&lhs, g.labelMatrix(), 1e-10))

			r, c := g.coeffs.Dims()
			assert.Equal(t, 3, r)
			assert.Equal(t, 1, c)
		})
	}
}

func TestInverseIsRetainedUnlessEfficient(t *testing.T) {
	g := scenarioModel(t)
	require.NoError(t, g.Initialize())
	require.NotNil(t, g.core)

	var id mat.Dense
	id.Mul(g.regularizedKernelMatrix(), g.core)
	assert.True(t, mat.EqualApprox(&id, identity(3), 1e-12))

	e := scenarioModel(t, WithEfficientStorage(true))
	require.NoError(t, e.Initialize())
	assert.Nil(t, e.core)
	assert.True(t, mat.Equal(g.coeffs, e.coeffs), "efficient storage must not change the result")
}

func TestSingularKernelMatrix(t *testing.T) {
	build := func(m InversionMethod) *GaussianProcess[float64] {
		g := newModel(t, kernel.NewGaussian(1.0, 1.0), WithInversionMethod(m))
		require.NoError(t, g.AddSample([]float64{1}, []float64{2}))
		require.NoError(t, g.AddSample([]float64{1}, []float64{2}))
		return g
	}

	err := build(FullPivotLU).Initialize()
	var inst *errors.NumericalInstabilityError
	assert.True(t, errors.As(err, &inst), "LU on a singular matrix: %v", err)

	// pseudo-inverse splits the weight between the duplicates
	for _, m := range []InversionMethod{JacobiSVD, BDCSVD, SelfAdjointEigenSolver} {
		g := build(m)
		require.NoError(t, g.Initialize(), m.String())
		p, err := g.Predict([]float64{1})
		require.NoError(t, err)
		assert.InDelta(t, 2.0, p[0], 1e-9, m.String())
	}
}

func TestCoreMatrixWithLogDeterminant(t *testing.T) {
	in, out := wave(12)

	var det mat.LU
	for _, m := range allMethods {
		t.Run(m.String(), func(t *testing.T) {
			g := newModel(t, kernel.NewGaussian(1.0, 2.0), WithSigma(0.2), WithInversionMethod(m))
			addAll(t, g, in, out)

			a := g.regularizedKernelMatrix()
			det.Factorize(a)
			wantLogDet, wantSign := det.LogDet()

			core, logDet, sign, err := g.Internals().CoreMatrixWithLogDeterminant()
			require.NoError(t, err)
			assert.InDelta(t, wantLogDet, logDet, 1e-9)
			assert.Equal(t, wantSign, sign)

			var id mat.Dense
			id.Mul(a, core)
			assert.True(t, mat.EqualApprox(&id, identity(12), 1e-9))
		})
	}
}

func TestFloat32MatchesFloat64(t *testing.T) {
	g64 := scenarioModel(t)
	g32, err := New[float32](kernel.NewGaussian[float32](1, 1), WithSigma(0.01), WithLogger(quietLogger()))
	require.NoError(t, err)
	for _, s := range [][2]float32{{0, 0}, {1, 1}, {2, 4}} {
		require.NoError(t, g32.AddSample([]float32{s[0]}, []float32{s[1]}))
	}

	for _, x := range []float64{-1, 0, 0.5, 1, 1.7, 3} {
		p64, err := g64.Predict([]float64{x})
		require.NoError(t, err)
		p32, err := g32.Predict([]float32{float32(x)})
		require.NoError(t, err)
		assert.InDelta(t, p64[0], float64(p32[0]), 1e-4, "x=%v", x)
	}

	// coefficients are stored at single precision
	r, _ := g32.coeffs.Dims()
	for i := 0; i < r; i++ {
		v := g32.coeffs.At(i, 0)
		assert.Equal(t, v, float64(float32(v)))
	}
	assert.False(t, math.IsNaN(g32.coeffs.At(0, 0)))
}
