// Package preprocessing はガウス過程に渡す前のサンプル変換を提供します。
package preprocessing

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/gaussproc/core/model"
	"github.com/YuminosukeSato/gaussproc/pkg/errors"
)

// StandardScaler はベクトルの各成分を平均0、標準偏差1に変換します。
// 等方的なカーネルは成分ごとのスケールの違いに敏感なため、入力を揃えるのに使います。
type StandardScaler[T model.Float] struct {
	state model.Lifecycle

	// Mean は各成分の平均値
	Mean []float64
	// Scale は各成分の標準偏差 (母標準偏差)
	Scale []float64

	withMean bool
	withStd  bool
}

// NewStandardScaler は新しい StandardScaler を作成する
//
// 使用例:
//
//	scaler := preprocessing.NewStandardScaler[float64](true, true)
//	err := scaler.Fit(inputs)
//	x, err := scaler.Transform(inputs[0])
func NewStandardScaler[T model.Float](withMean, withStd bool) *StandardScaler[T] {
	return &StandardScaler[T]{withMean: withMean, withStd: withStd}
}

// Fit は vectors から統計情報を計算する。すべてのベクトルは同じ長さでなければならない。
func (s *StandardScaler[T]) Fit(vectors [][]T) error {
	if len(vectors) == 0 || len(vectors[0]) == 0 {
		return errors.NewValidationError("vectors", "empty data", len(vectors))
	}
	dim := len(vectors[0])
	for _, v := range vectors {
		if len(v) != dim {
			return errors.NewDimensionError("StandardScaler.Fit", dim, len(v), 0)
		}
	}

	// 失敗時は以前の統計情報を残す
	means := make([]float64, dim)
	scales := make([]float64, dim)
	col := make([]float64, len(vectors))
	for j := 0; j < dim; j++ {
		for i, v := range vectors {
			col[i] = float64(v[j])
		}
		if err := errors.CheckNumericalStability("StandardScaler.Fit", col); err != nil {
			return err
		}
		mean, std := stat.PopMeanStdDev(col, nil)

		if !s.withMean {
			mean = 0
		}
		// 標準偏差が0に近い場合は1に設定（ゼロ除算を避ける）
		if !s.withStd || math.Abs(std) < 1e-8 {
			std = 1
		}
		means[j] = mean
		scales[j] = std
	}
	s.Mean, s.Scale = means, scales
	s.state.MarkReady()
	return nil
}

// Transform は x を標準化した新しいベクトルを返す
func (s *StandardScaler[T]) Transform(x []T) ([]T, error) {
	if err := s.check("StandardScaler.Transform", x); err != nil {
		return nil, err
	}
	out := make([]T, len(x))
	for j, v := range x {
		out[j] = T((float64(v) - s.Mean[j]) / s.Scale[j])
	}
	return out, nil
}

// InverseTransform は Transform の逆変換を返す
func (s *StandardScaler[T]) InverseTransform(x []T) ([]T, error) {
	if err := s.check("StandardScaler.InverseTransform", x); err != nil {
		return nil, err
	}
	out := make([]T, len(x))
	for j, v := range x {
		out[j] = T(float64(v)*s.Scale[j] + s.Mean[j])
	}
	return out, nil
}

// TransformAll は各ベクトルを標準化する
func (s *StandardScaler[T]) TransformAll(vectors [][]T) ([][]T, error) {
	out := make([][]T, len(vectors))
	for i, v := range vectors {
		t, err := s.Transform(v)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

func (s *StandardScaler[T]) check(op string, x []T) error {
	if err := s.state.RequireReady(op); err != nil {
		return err
	}
	if len(x) != len(s.Mean) {
		return errors.NewDimensionError(op, len(s.Mean), len(x), 0)
	}
	return nil
}
