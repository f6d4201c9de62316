package gp

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gaussproc/kernel"
	"github.com/YuminosukeSato/gaussproc/pkg/errors"
)

func TestInternals(t *testing.T) {
	g := scenarioModel(t)
	in := g.Internals()

	k, err := in.KernelMatrix()
	require.NoError(t, err)
	assert.Equal(t, mat.Trace(k), in.KernelMatrixTrace())

	r, err := in.RegularizedKernelMatrix()
	require.NoError(t, err)
	assert.InDelta(t, mat.Trace(k)+3*0.01, mat.Trace(r), 1e-15)

	y, err := in.LabelMatrix()
	require.NoError(t, err)
	rows, cols := y.Dims()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 1, cols)

	assert.False(t, g.IsReady())
	rv, err := in.RegressionVectors()
	require.NoError(t, err)
	assert.True(t, g.IsReady(), "RegressionVectors trains a dirty model")
	rv.Set(0, 0, 1e9)
	assert.NotEqual(t, 1e9, g.coeffs.At(0, 0), "RegressionVectors returns a copy")

	samples := in.Samples()
	require.Len(t, samples, 3)
	samples[2][0] = -1
	assert.Equal(t, 2.0, g.samples[2][0])
}

func TestInternalsWithoutSamples(t *testing.T) {
	in := newModel(t, kernel.NewGaussian(1.0, 1.0)).Internals()

	var notInit *errors.NotInitializedError
	_, err := in.KernelMatrix()
	assert.True(t, errors.As(err, &notInit))
	_, err = in.LabelMatrix()
	assert.True(t, errors.As(err, &notInit))
	_, _, _, err = in.CoreMatrixWithLogDeterminant()
	assert.True(t, errors.As(err, &notInit))
	_, err = in.RegressionVectors()
	assert.True(t, errors.As(err, &notInit))
	assert.Equal(t, 0.0, in.KernelMatrixTrace())
}

func BenchmarkInitialize(b *testing.B) {
	sizes := []int{50, 200}
	for _, n := range sizes {
		for _, m := range allMethods {
			b.Run(fmt.Sprintf("%s/n=%d", m, n), func(b *testing.B) {
				in, out := wave(n)
				for i := 0; i < b.N; i++ {
					g, _ := New[float64](kernel.NewGaussian(1.0, 1.0), WithSigma(0.1), WithInversionMethod(m), WithLogger(quietLogger()))
					for j := range in {
						_ = g.AddSample(in[j], out[j])
					}
					if err := g.Initialize(); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

func BenchmarkPredict(b *testing.B) {
	in, out := wave(500)
	g, _ := New[float64](kernel.NewGaussian(1.0, 1.0), WithSigma(0.1), WithLogger(quietLogger()))
	for j := range in {
		_ = g.AddSample(in[j], out[j])
	}
	if err := g.Initialize(); err != nil {
		b.Fatal(err)
	}
	x := []float64{0.5, 0.5}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = g.Predict(x)
	}
}
