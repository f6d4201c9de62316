package gp

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gaussproc/core/model"
	"github.com/YuminosukeSato/gaussproc/pkg/log"
)

// Equal は二つのモデルが厳密に等しいかを返します。許容誤差はありません。
//
// 回帰係数、サンプル列、ラベル列、カーネル、sigma、Ready 状態、入出力次元、
// デバッグフラグの順に比較し、最初の不一致で false を返します。コア行列は
// 両方が保持している場合にのみ比較します。保存と読み込みの往復検証で
// 成り立つことを想定しています。
func (g *GaussianProcess[T]) Equal(other *GaussianProcess[T]) bool {
	if other == nil {
		return false
	}
	if g == other {
		return true
	}

	reason := g.firstDifference(other)
	if reason == "" {
		return true
	}
	if g.debug {
		g.logger.Warn("Gaussian processes differ",
			log.OperationKey, log.OperationCompare,
			"difference", reason,
		)
	}
	return false
}

func (g *GaussianProcess[T]) firstDifference(o *GaussianProcess[T]) string {
	switch {
	case !equalDense(g.coeffs, o.coeffs):
		return "regression vectors not equal"
	case !equalVectors(g.samples, o.samples):
		return "sample vectors not equal"
	case !equalVectors(g.labels, o.labels):
		return "label vectors not equal"
	case !equalKernel(g, o):
		return "kernel not equal"
	case g.sigma != o.sigma:
		return "sigma not equal"
	case g.state.IsReady() != o.state.IsReady():
		return "initialization state not equal"
	case g.inputDim != o.inputDim:
		return "input dimension not equal"
	case g.outputDim != o.outputDim:
		return "output dimension not equal"
	case g.debug != o.debug:
		return "debug state not equal"
	case g.core != nil && o.core != nil && !equalDense(g.core, o.core):
		return "core matrix not equal"
	}
	return ""
}

// equalDense は両方 nil、または同じ形で全要素が一致する場合に true です。
func equalDense(a, b *mat.Dense) bool {
	if a == nil || b == nil {
		return a == b
	}
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar != br || ac != bc {
		return false
	}
	return mat.Equal(a, b)
}

func equalVectors[T model.Float](a, b [][]T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				return false
			}
		}
	}
	return true
}

func equalKernel[T model.Float](a, b *GaussianProcess[T]) bool {
	if a.kernel == nil || b.kernel == nil {
		return a.kernel == nil && b.kernel == nil
	}
	return a.kernel.Equal(b.kernel)
}
