package gp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/gaussproc/kernel"
)

func TestKernelMatrixIsExactlySymmetric(t *testing.T) {
	for _, threshold := range []int{0, 1000} {
		g := newModel(t, kernel.NewPeriodic(1.3, 2.1, 0.8), WithParallelThreshold(threshold))
		in, out := wave(150)
		addAll(t, g, in, out)

		m := g.kernelMatrix()
		n, c := m.Dims()
		require.Equal(t, 150, n)
		require.Equal(t, 150, c)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if m.At(i, j) != m.At(j, i) {
					t.Fatalf("threshold %d: M[%d][%d]=%v != M[%d][%d]=%v", threshold, i, j, m.At(i, j), j, i, m.At(j, i))
				}
			}
		}
		assert.Equal(t, g.kernel.Evaluate(in[3], in[7]), m.At(3, 7))
	}
}

func TestParallelAndSequentialAgree(t *testing.T) {
	in, out := wave(120)

	seq := newModel(t, kernel.NewGaussian(0.8, 1.0), WithSigma(0.05), WithParallelThreshold(1000))
	par := newModel(t, kernel.NewGaussian(0.8, 1.0), WithSigma(0.05), WithParallelThreshold(0))
	addAll(t, seq, in, out)
	addAll(t, par, in, out)

	require.NoError(t, seq.Initialize())
	require.NoError(t, par.Initialize())
	assert.True(t, seq.Equal(par))
}

func TestRegularizedAndLabelMatrices(t *testing.T) {
	g := scenarioModel(t)

	k := g.kernelMatrix()
	r := g.regularizedKernelMatrix()
	for i := 0; i < 3; i++ {
		assert.Equal(t, k.At(i, i)+0.01, r.At(i, i))
		for j := 0; j < 3; j++ {
			if i != j {
				assert.Equal(t, k.At(i, j), r.At(i, j))
			}
		}
	}

	y := g.labelMatrix()
	assert.Equal(t, []float64{0, 1, 4}, []float64{y.At(0, 0), y.At(1, 0), y.At(2, 0)})

	d := g.differenceMatrix([]float64{1.5})
	assert.Equal(t, []float64{1.5, 0.5, -0.5}, []float64{d.At(0, 0), d.At(1, 0), d.At(2, 0)})

	assert.Equal(t, 3.0, g.kernelMatrixTrace())
}
