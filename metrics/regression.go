// Package metrics は回帰モデルの評価指標を提供します。
package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/gaussproc/pkg/errors"
)

func checkVectors(op string, yTrue, yPred *mat.VecDense) (int, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValidationError(op, "empty vector", 0)
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError(op, n, yPred.Len(), 1)
	}
	return n, nil
}

func raw(v *mat.VecDense) []float64 {
	out := make([]float64, v.Len())
	for i := range out {
		out[i] = v.AtVec(i)
	}
	return out
}

// MSE は平均二乗誤差（Mean Squared Error）を計算する
func MSE(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkVectors("MSE", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	// MSE = (1/n) * Σ(yTrue - yPred)²
	d := floats.Distance(raw(yTrue), raw(yPred), 2)
	return d * d / float64(n), nil
}

// RMSE は平方根平均二乗誤差（Root Mean Squared Error）を計算する
func RMSE(yTrue, yPred *mat.VecDense) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE は平均絶対誤差（Mean Absolute Error）を計算する
func MAE(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkVectors("MAE", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return floats.Distance(raw(yTrue), raw(yPred), 1) / float64(n), nil
}

// R2Score は決定係数（R²）を計算する
func R2Score(yTrue, yPred *mat.VecDense) (float64, error) {
	if _, err := checkVectors("R2Score", yTrue, yPred); err != nil {
		return 0, err
	}
	t, p := raw(yTrue), raw(yPred)
	yMean := stat.Mean(t, nil)

	// 全変動（TSS）と残差変動（RSS）
	var tss, rss float64
	for i := range t {
		tss += (t[i] - yMean) * (t[i] - yMean)
		rss += (t[i] - p[i]) * (t[i] - p[i])
	}

	// すべての yTrue が同じ値
	if tss == 0 {
		return 0, errors.Newf("R2Score: total sum of squares is zero (no variance in yTrue)")
	}
	return 1 - rss/tss, nil
}

// MeanR2Score は列ごとの R² の平均を返す。多出力回帰の Score に使う。
func MeanR2Score(yTrue, yPred mat.Matrix) (float64, error) {
	r, c := yTrue.Dims()
	rp, cp := yPred.Dims()
	if r == 0 || c == 0 {
		return 0, errors.NewValidationError("MeanR2Score", "empty matrix", 0)
	}
	if r != rp {
		return 0, errors.NewDimensionError("MeanR2Score", r, rp, 1)
	}
	if c != cp {
		return 0, errors.NewDimensionError("MeanR2Score", c, cp, 1)
	}

	var sum float64
	for j := 0; j < c; j++ {
		score, err := R2Score(
			mat.NewVecDense(r, mat.Col(nil, j, yTrue)),
			mat.NewVecDense(r, mat.Col(nil, j, yPred)),
		)
		if err != nil {
			return 0, errors.Wrapf(err, "output %d", j)
		}
		sum += score
	}
	return sum / float64(c), nil
}
