package gp

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gaussproc/core/model"
	"github.com/YuminosukeSato/gaussproc/pkg/errors"
)

// Internals はモデル内部の行列への特権的なアクセスです。
// 尤度計算やハイパーパラメータ最適化のように、学習結果ではなく中間行列を
// 必要とするコードのために用意しています。返す行列はすべてコピーです。
type Internals[T model.Float] struct {
	g *GaussianProcess[T]
}

// Internals は g の内部アクセスを返します。
func (g *GaussianProcess[T]) Internals() Internals[T] {
	return Internals[T]{g: g}
}

func (in Internals[T]) requireSamples(op string) error {
	if len(in.g.samples) == 0 {
		return errors.NewNotInitializedError(op)
	}
	return nil
}

// KernelMatrix は正則化前のカーネル行列 K を返します。
func (in Internals[T]) KernelMatrix() (*mat.Dense, error) {
	if err := in.requireSamples("Internals.KernelMatrix"); err != nil {
		return nil, err
	}
	return in.g.kernelMatrix(), nil
}

// RegularizedKernelMatrix は K + sigma*I を返します。
func (in Internals[T]) RegularizedKernelMatrix() (*mat.Dense, error) {
	if err := in.requireSamples("Internals.RegularizedKernelMatrix"); err != nil {
		return nil, err
	}
	return in.g.regularizedKernelMatrix(), nil
}

// LabelMatrix は n x outputDim のラベル行列 Y を返します。
func (in Internals[T]) LabelMatrix() (*mat.Dense, error) {
	if err := in.requireSamples("Internals.LabelMatrix"); err != nil {
		return nil, err
	}
	return in.g.labelMatrix(), nil
}

// CoreMatrixWithLogDeterminant は (K + sigma*I)^-1 と log|K + sigma*I|、
// 行列式の符号を選択中の逆行列計算法で返します。
func (in Internals[T]) CoreMatrixWithLogDeterminant() (core *mat.Dense, logDet, sign float64, err error) {
	return in.g.coreMatrixWithLogDeterminant()
}

// KernelMatrixTrace は sum_i k(x_i, x_i) を返します。
func (in Internals[T]) KernelMatrixTrace() T {
	return T(in.g.kernelMatrixTrace())
}

// RegressionVectors は学習済みの回帰係数のコピーを返します。Dirty なら学習します。
func (in Internals[T]) RegressionVectors() (*mat.Dense, error) {
	if err := in.g.ensureReady(); err != nil {
		return nil, err
	}
	return mat.DenseCopyOf(in.g.coeffs), nil
}

// Samples は入力ベクトルのコピーを返します。
func (in Internals[T]) Samples() [][]T {
	out := make([][]T, len(in.g.samples))
	for i, s := range in.g.samples {
		out[i] = append([]T(nil), s...)
	}
	return out
}
