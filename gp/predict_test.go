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

func TestPredictScenario(t *testing.T) {
	g := scenarioModel(t)

	p, err := g.Predict([]float64{1})
	require.NoError(t, err)
	require.Len(t, p, 1)
	assert.InDelta(t, 1.0, p[0], 0.2, "noise smooths but must stay close to the sample")

	// independent solve of (K + sigma*I) a = y
	k := kernel.NewGaussian(1.0, 1.0)
	xs := []float64{0, 1, 2}
	a := mat.NewDense(3, 3, nil)
	for i := range xs {
		for j := range xs {
			a.Set(i, j, k.Evaluate([]float64{xs[i]}, []float64{xs[j]}))
		}
		a.Set(i, i, a.At(i, i)+0.01)
	}
	var alpha mat.VecDense
	require.NoError(t, alpha.SolveVec(a, mat.NewVecDense(3, []float64{0, 1, 4})))
	want := 0.0
	for i := range xs {
		want += k.Evaluate([]float64{1}, []float64{xs[i]}) * alpha.AtVec(i)
	}
	assert.InDelta(t, want, p[0], 1e-10)

	// read-only calls leave no trace
	again, err := g.Predict([]float64{1})
	require.NoError(t, err)
	assert.Equal(t, p, again)
}

func TestPredictWithoutSamples(t *testing.T) {
	g := newModel(t, kernel.NewGaussian(1.0, 1.0))

	_, err := g.Predict([]float64{1})
	var notInit *errors.NotInitializedError
	assert.True(t, errors.As(err, &notInit), "Predict: %v", err)

	_, _, err = g.PredictDerivative([]float64{1})
	assert.True(t, errors.As(err, &notInit), "PredictDerivative: %v", err)

	_, err = g.CredibleInterval([]float64{1})
	assert.True(t, errors.As(err, &notInit), "CredibleInterval: %v", err)
}

func TestPredictDimensionMismatch(t *testing.T) {
	g := scenarioModel(t)

	_, err := g.Predict([]float64{1, 2})
	var dimErr *errors.DimensionError
	require.True(t, errors.As(err, &dimErr), "got %v", err)
	assert.Equal(t, 1, dimErr.Expected)
	assert.Equal(t, 2, dimErr.Got)

	_, _, err = g.PredictDerivative(nil)
	assert.True(t, errors.As(err, &dimErr))

	_, err = g.PosteriorCovariance([]float64{1}, []float64{1, 2})
	assert.True(t, errors.As(err, &dimErr))
}

func TestInterpolationWithoutNoise(t *testing.T) {
	in, out := wave(8)
	for _, m := range allMethods {
		t.Run(m.String(), func(t *testing.T) {
			g := newModel(t, kernel.NewGaussian(0.7, 1.5), WithInversionMethod(m))
			addAll(t, g, in, out)

			for i := range in {
				p, err := g.Predict(in[i])
				require.NoError(t, err)
				for c := range p {
					tol := 1e-6 * math.Max(1, math.Abs(out[i][c]))
					assert.InDelta(t, out[i][c], p[c], tol, "sample %d output %d", i, c)
				}
			}
		})
	}
}

func TestPredictDerivativeShape(t *testing.T) {
	for _, n := range []int{1, 3, 10} {
		g := newModel(t, kernel.NewGaussian(1.0, 1.0), WithSigma(0.1))
		for i := 0; i < n; i++ {
			x := []float64{float64(i), float64(i) * 0.5, -float64(i)}
			require.NoError(t, g.AddSample(x, []float64{float64(i), 1}))
		}

		p, d, err := g.PredictDerivative([]float64{0.3, 0.1, 0.2})
		require.NoError(t, err)
		r, c := d.Dims()
		assert.Equal(t, 3, r, "n=%d", n)
		assert.Equal(t, 2, c, "n=%d", n)

		want, err := g.Predict([]float64{0.3, 0.1, 0.2})
		require.NoError(t, err)
		assert.Equal(t, want, p, "derivative call must return the point prediction")
	}
}

func TestPredictDerivativeMatchesFiniteDifference(t *testing.T) {
	// with unit length-scale the Gaussian kernel gradient is -(x - x_i) k(x, x_i)
	in, out := wave(15)
	g := newModel(t, kernel.NewGaussian(1.0, 1.0), WithSigma(0.05))
	addAll(t, g, in, out)

	x := []float64{1.3, 0.2}
	_, d, err := g.PredictDerivative(x)
	require.NoError(t, err)

	const h = 1e-6
	for j := range x {
		xp := append([]float64(nil), x...)
		xm := append([]float64(nil), x...)
		xp[j] += h
		xm[j] -= h
		pp, err := g.Predict(xp)
		require.NoError(t, err)
		pm, err := g.Predict(xm)
		require.NoError(t, err)
		for c := range pp {
			fd := (pp[c] - pm[c]) / (2 * h)
			assert.InDelta(t, fd, d.At(j, c), 1e-5, "d/dx%d output %d", j, c)
		}
	}
}

func TestCredibleInterval(t *testing.T) {
	for _, efficient := range []bool{false, true} {
		g := scenarioModel(t, WithEfficientStorage(efficient))

		near, err := g.CredibleInterval([]float64{1})
		require.NoError(t, err)
		far, err := g.CredibleInterval([]float64{50})
		require.NoError(t, err)

		assert.Less(t, near, 0.3, "efficient=%v", efficient)
		assert.InDelta(t, 1.96, far, 1e-9, "prior variance far from the data")
	}

	g := scenarioModel(t)
	e := scenarioModel(t, WithEfficientStorage(true))
	a, err := g.CredibleInterval([]float64{0.5})
	require.NoError(t, err)
	b, err := e.CredibleInterval([]float64{0.5})
	require.NoError(t, err)
	assert.InDelta(t, a, b, 1e-12)
}

func TestPosteriorCovarianceSymmetric(t *testing.T) {
	g := scenarioModel(t, WithInversionMethod(SelfAdjointEigenSolver))

	x, y := []float64{0.4}, []float64{1.6}
	cxy, err := g.PosteriorCovariance(x, y)
	require.NoError(t, err)
	cyx, err := g.PosteriorCovariance(y, x)
	require.NoError(t, err)
	assert.InDelta(t, cxy, cyx, 1e-12)

	vx, err := g.PosteriorCovariance(x, x)
	require.NoError(t, err)
	ci, err := g.CredibleInterval(x)
	require.NoError(t, err)
	assert.InDelta(t, 1.96*math.Sqrt(vx), ci, 1e-12)
}

func TestScore(t *testing.T) {
	in, out := wave(30)
	g := newModel(t, kernel.NewGaussian(1.0, 1.0), WithSigma(1e-4))
	addAll(t, g, in, out)

	X := mat.NewDense(len(in), 2, nil)
	Y := mat.NewDense(len(out), 2, nil)
	for i := range in {
		X.SetRow(i, in[i])
		Y.SetRow(i, out[i])
	}

	score, err := g.Score(X, Y)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, score, 1e-2)

	_, err = g.Score(X, mat.NewDense(len(out), 1, nil))
	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr))
}
