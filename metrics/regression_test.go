package metrics

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gaussproc/pkg/errors"
)

func vec(v ...float64) *mat.VecDense { return mat.NewVecDense(len(v), v) }

func TestVectorMetrics(t *testing.T) {
	// residuals 0.5, 0.5, -0.5, -0.5
	yTrue := vec(1, 2, 3, 4)
	yPred := vec(1.5, 2.5, 2.5, 3.5)

	tests := []struct {
		name   string
		metric func(a, b *mat.VecDense) (float64, error)
		want   float64
	}{
		{"MSE", MSE, 0.25},
		{"RMSE", RMSE, 0.5},
		{"MAE", MAE, 0.5},
		{"R2Score", R2Score, 1 - 1.0/5.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.metric(yTrue, yPred)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)

			perfect, err := tt.metric(yTrue, yTrue)
			require.NoError(t, err)
			if tt.name == "R2Score" {
				assert.Equal(t, 1.0, perfect)
			} else {
				assert.Equal(t, 0.0, perfect)
			}
		})
	}
}

func TestVectorMetricsErrors(t *testing.T) {
	metrics := map[string]func(a, b *mat.VecDense) (float64, error){
		"MSE": MSE, "RMSE": RMSE, "MAE": MAE, "R2Score": R2Score,
	}
	for name, metric := range metrics {
		t.Run(name, func(t *testing.T) {
			_, err := metric(vec(1, 2, 3), vec(1, 2))
			var dimErr *errors.DimensionError
			assert.True(t, errors.As(err, &dimErr), "got %v", err)

			_, err = metric(&mat.VecDense{}, &mat.VecDense{})
			var verr *errors.ValidationError
			assert.True(t, errors.As(err, &verr), "got %v", err)
		})
	}
}

func TestR2ScoreConstantTarget(t *testing.T) {
	_, err := R2Score(vec(3, 3, 3), vec(3, 3, 3))
	assert.Error(t, err)
}

func TestR2ScoreWorseThanMean(t *testing.T) {
	got, err := R2Score(vec(1, 2, 3, 4), vec(4, 3, 2, 1))
	require.NoError(t, err)
	assert.InDelta(t, -3.0, got, 1e-12)
}

func TestMeanR2Score(t *testing.T) {
	t.Run("averages outputs", func(t *testing.T) {
		yTrue := mat.NewDense(4, 2, []float64{
			1, 1,
			2, 2,
			3, 3,
			4, 4,
		})
		yPred := mat.NewDense(4, 2, []float64{
			1, 4,
			2, 3,
			3, 2,
			4, 1,
		})
		got, err := MeanR2Score(yTrue, yPred)
		require.NoError(t, err)
		// perfect column and reversed column
		assert.InDelta(t, (1.0+-3.0)/2, got, 1e-12)
	})

	t.Run("sine fit", func(t *testing.T) {
		n := 50
		yTrue := mat.NewDense(n, 1, nil)
		yPred := mat.NewDense(n, 1, nil)
		for i := 0; i < n; i++ {
			x := float64(i) / 5
			yTrue.Set(i, 0, math.Sin(x))
			yPred.Set(i, 0, math.Sin(x)+0.01)
		}
		got, err := MeanR2Score(yTrue, yPred)
		require.NoError(t, err)
		assert.Greater(t, got, 0.99)
	})

	t.Run("shape mismatch", func(t *testing.T) {
		var dimErr *errors.DimensionError
		_, err := MeanR2Score(mat.NewDense(2, 2, []float64{1, 2, 3, 4}), mat.NewDense(2, 1, []float64{1, 3}))
		assert.True(t, errors.As(err, &dimErr))
		_, err = MeanR2Score(mat.NewDense(2, 1, []float64{1, 2}), mat.NewDense(3, 1, []float64{1, 2, 3}))
		assert.True(t, errors.As(err, &dimErr))
	})

	t.Run("constant output", func(t *testing.T) {
		_, err := MeanR2Score(mat.NewDense(2, 1, []float64{3, 3}), mat.NewDense(2, 1, []float64{3, 3}))
		assert.Error(t, err)
	})
}

func BenchmarkMSE(b *testing.B) {
	for _, n := range []int{100, 10000} {
		yTrue := mat.NewVecDense(n, nil)
		yPred := mat.NewVecDense(n, nil)
		for i := 0; i < n; i++ {
			yTrue.SetVec(i, float64(i))
			yPred.SetVec(i, float64(i)+0.5)
		}
		b.Run("n="+strconv.Itoa(n), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_, _ = MSE(yTrue, yPred)
			}
		})
	}
}

