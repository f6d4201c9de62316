package gp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/gaussproc/kernel"
	"github.com/YuminosukeSato/gaussproc/pkg/log"
)

type variant struct {
	sigma   float64
	kernel  kernel.Kernel[float64]
	samples [][2]float64
	debug   bool
}

func baseVariant() variant {
	return variant{
		sigma:   0.01,
		kernel:  kernel.NewGaussian(1.0, 1.0),
		samples: [][2]float64{{0, 0}, {1, 1}, {2, 4}},
	}
}

func (v variant) build(t *testing.T) *GaussianProcess[float64] {
	t.Helper()
	g := newModel(t, v.kernel, WithSigma(v.sigma), WithDebug(v.debug))
	for _, s := range v.samples {
		require.NoError(t, g.AddSample([]float64{s[0]}, []float64{s[1]}))
	}
	require.NoError(t, g.Initialize())
	return g
}

func TestEqualReflexive(t *testing.T) {
	g := baseVariant().build(t)
	assert.True(t, g.Equal(g))
	assert.True(t, g.Equal(baseVariant().build(t)))
	assert.False(t, g.Equal(nil))
}

func TestEqualDetectsSingleFieldDifference(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(v *variant)
	}{
		{"sigma", func(v *variant) { v.sigma = 0.02 }},
		{"kernel parameter", func(v *variant) { v.kernel = kernel.NewGaussian(1.0, 1.5) }},
		{"kernel type", func(v *variant) { v.kernel = kernel.NewPeriodic(1.0, 1.0, 1.0) }},
		{"one sample input", func(v *variant) { v.samples = [][2]float64{{0, 0}, {1.5, 1}, {2, 4}} }},
		{"one sample output", func(v *variant) { v.samples = [][2]float64{{0, 0}, {1, 1}, {2, 5}} }},
		{"sample count", func(v *variant) { v.samples = v.samples[:2] }},
		{"debug flag", func(v *variant) { v.debug = true }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := baseVariant().build(t)
			v := baseVariant()
			tt.mutate(&v)
			b := v.build(t)

			assert.False(t, a.Equal(b))
			assert.False(t, b.Equal(a))
		})
	}
}

func TestEqualReadyState(t *testing.T) {
	a := baseVariant().build(t)
	b := baseVariant().build(t)

	// same stale coefficients but one side is dirty
	require.NoError(t, b.AddSample([]float64{3}, []float64{9}))
	assert.False(t, a.Equal(b))
	require.NoError(t, a.AddSample([]float64{3}, []float64{9}))
	assert.True(t, a.Equal(b), "both dirty with the same data")
}

func TestEqualIgnoresDroppedCoreMatrix(t *testing.T) {
	a := baseVariant().build(t)

	v := baseVariant()
	b := newModel(t, v.kernel, WithSigma(v.sigma), WithEfficientStorage(true))
	for _, s := range v.samples {
		require.NoError(t, b.AddSample([]float64{s[0]}, []float64{s[1]}))
	}
	require.NoError(t, b.Initialize())

	require.NotNil(t, a.core)
	require.Nil(t, b.core)
	assert.True(t, a.Equal(b))
}

func TestEqualLogsFirstMismatchInDebug(t *testing.T) {
	// trace records go to Info, so a Warn-level logger only sees the mismatch
	logger, _ := log.NewTestLogger(log.LevelWarn)
	a, err := New[float64](kernel.NewGaussian(1.0, 1.0), WithSigma(0.01), WithDebug(true), WithLogger(logger))
	require.NoError(t, err)
	require.NoError(t, a.AddSample([]float64{0}, []float64{0}))
	require.NoError(t, a.Initialize())

	b := newModel(t, kernel.NewGaussian(1.0, 1.0), WithSigma(0.01))
	require.NoError(t, b.AddSample([]float64{0}, []float64{1}))
	require.NoError(t, b.Initialize())

	assert.False(t, a.Equal(b))
	assert.True(t, logger.ContainsField("difference", "regression vectors not equal"))
	assert.True(t, logger.ContainsField("level", log.LevelWarn.String()))
}
