package gp

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gaussproc/metrics"
	"github.com/YuminosukeSato/gaussproc/pkg/errors"
	"github.com/YuminosukeSato/gaussproc/pkg/log"
)

const (
	opPredict             = "GaussianProcess.Predict"
	opPredictDerivative   = "GaussianProcess.PredictDerivative"
	opPosteriorCovariance = "GaussianProcess.PosteriorCovariance"
	opCredibleInterval    = "GaussianProcess.CredibleInterval"
	opScore               = "GaussianProcess.Score"
)

// credibleZ は 95% 区間の片側幅の係数です。
const credibleZ = 1.96

// Predict は x における事後平均 Kx^T * 係数 を返します。
// Dirty の場合は先に学習します。
func (g *GaussianProcess[T]) Predict(x []T) ([]T, error) {
	if err := g.prepare(opPredict, x); err != nil {
		return nil, err
	}
	return g.mean(g.kernelVector(x)), nil
}

// PredictDerivative は Predict と同じ予測値と、予測平均の x に関する
// inputDim x outputDim の微分行列を返します。
//
// 出力 c の列は -X^T * (Kx ∘ 係数[:,c]) で、X の i 行目は x - x_i です。
// カーネルの勾配が x - x_i に比例することを仮定しています。
func (g *GaussianProcess[T]) PredictDerivative(x []T) ([]T, *mat.Dense, error) {
	if err := g.prepare(opPredictDerivative, x); err != nil {
		return nil, nil, err
	}

	kx := g.kernelVector(x)
	pred := g.mean(kx)

	n, _ := g.coeffs.Dims()
	weighted := mat.NewDense(n, g.outputDim, nil)
	weighted.Apply(func(i, c int, _ float64) float64 {
		return kx.AtVec(i) * g.coeffs.At(i, c)
	}, weighted)

	d := mat.NewDense(g.inputDim, g.outputDim, nil)
	d.Mul(g.differenceMatrix(x).T(), weighted)
	d.Scale(-1, d)
	roundTo[T](d)

	g.trace("Predicted derivative",
		log.OperationKey, log.OperationPredictDerivative,
		log.SamplesKey, n,
	)
	return pred, d, nil
}

// PosteriorCovariance は事後共分散 k(x, y) - Kx^T * C * Ky を返します。
// C は正則化カーネル行列の逆行列で、保持していなければ再計算します。
func (g *GaussianProcess[T]) PosteriorCovariance(x, y []T) (T, error) {
	if err := g.prepare(opPosteriorCovariance, x); err != nil {
		return 0, err
	}
	if len(y) != g.inputDim {
		return 0, errors.NewDimensionError(opPosteriorCovariance, g.inputDim, len(y), 0)
	}
	v, err := g.posteriorCovariance(x, y)
	if err != nil {
		return 0, err
	}
	return T(v), nil
}

// CredibleInterval は x における 95% 信用区間の片側幅
// 1.96 * sqrt(max(0, 事後分散)) を返します。
func (g *GaussianProcess[T]) CredibleInterval(x []T) (T, error) {
	if err := g.prepare(opCredibleInterval, x); err != nil {
		return 0, err
	}
	v, err := g.posteriorCovariance(x, x)
	if err != nil {
		return 0, err
	}
	return T(credibleZ * math.Sqrt(math.Max(0, v))), nil
}

func (g *GaussianProcess[T]) posteriorCovariance(x, y []T) (float64, error) {
	c, err := g.coreMatrix()
	if err != nil {
		return 0, err
	}
	kx := g.kernelVector(x)
	ky := g.kernelVector(y)

	var cky mat.VecDense
	cky.MulVec(c, ky)
	v := float64(g.kernel.Evaluate(x, y)) - mat.Dot(kx, &cky)
	if err := errors.CheckScalar(opPosteriorCovariance, v); err != nil {
		return 0, err
	}
	return v, nil
}

// Score は X の各行を予測し、出力次元ごとの決定係数 R^2 の平均を返します。
func (g *GaussianProcess[T]) Score(X, Y mat.Matrix) (float64, error) {
	r, c := X.Dims()
	ry, cy := Y.Dims()
	if ry != r {
		return 0, errors.NewDimensionError(opScore, r, ry, 1)
	}
	if err := g.ensureReady(); err != nil {
		return 0, err
	}
	if c != g.inputDim {
		return 0, errors.NewDimensionError(opScore, g.inputDim, c, 0)
	}
	if cy != g.outputDim {
		return 0, errors.NewDimensionError(opScore, g.outputDim, cy, 1)
	}

	pred := mat.NewDense(r, cy, nil)
	x := make([]T, c)
	for i := 0; i < r; i++ {
		for j := range x {
			x[j] = T(X.At(i, j))
		}
		p := g.mean(g.kernelVector(x))
		for j, v := range p {
			pred.Set(i, j, float64(v))
		}
	}

	score, err := metrics.MeanR2Score(Y, pred)
	if err != nil {
		return 0, err
	}
	g.trace("Scored model", log.OperationKey, log.OperationPredict, log.R2ScoreKey, score)
	return score, nil
}

// prepare は学習を済ませ、x の次元を検証します。
func (g *GaussianProcess[T]) prepare(op string, x []T) error {
	if err := g.ensureReady(); err != nil {
		return err
	}
	if len(x) != g.inputDim {
		return errors.NewDimensionError(op, g.inputDim, len(x), 0)
	}
	return nil
}

func (g *GaussianProcess[T]) mean(kx *mat.VecDense) []T {
	var m mat.VecDense
	m.MulVec(g.coeffs.T(), kx)

	out := make([]T, g.outputDim)
	for c := range out {
		out[c] = T(m.AtVec(c))
	}
	return out
}
