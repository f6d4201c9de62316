package gp

import (
	"github.com/YuminosukeSato/gaussproc/pkg/errors"
)

const opAddSample = "GaussianProcess.AddSample"

// AddSample は学習サンプル (input, output) を追加し、モデルを Dirty にします。
//
// 最初の呼び出しで入力次元と出力次元が固定されます。以降、次元が一致しない
// サンプルは DimensionError で拒否され、ストアは変更されません。
// スライスはコピーされるため、呼び出し側は再利用できます。
func (g *GaussianProcess[T]) AddSample(input, output []T) error {
	if len(g.samples) == 0 {
		if len(input) == 0 {
			return errors.NewValidationError("input", "first sample must have a non-zero dimension", 0)
		}
		if len(output) == 0 {
			return errors.NewValidationError("output", "first sample must have a non-zero dimension", 0)
		}
		g.inputDim = len(input)
		g.outputDim = len(output)
	} else {
		if len(input) != g.inputDim {
			return errors.NewDimensionError(opAddSample, g.inputDim, len(input), 0)
		}
		if len(output) != g.outputDim {
			return errors.NewDimensionError(opAddSample, g.outputDim, len(output), 1)
		}
	}

	g.samples = append(g.samples, append([]T(nil), input...))
	g.labels = append(g.labels, append([]T(nil), output...))
	g.state.MarkDirty()
	return nil
}

// NumberOfSamples は蓄積したサンプル数を返します。
func (g *GaussianProcess[T]) NumberOfSamples() int { return len(g.samples) }

// InputDimension は固定された入力次元を返します。サンプルがなければ 0 です。
func (g *GaussianProcess[T]) InputDimension() int { return g.inputDim }

// OutputDimension は固定された出力次元を返します。サンプルがなければ 0 です。
func (g *GaussianProcess[T]) OutputDimension() int { return g.outputDim }

// Sample は i 番目のサンプルのコピーを返します。
func (g *GaussianProcess[T]) Sample(i int) (input, output []T, err error) {
	if i < 0 || i >= len(g.samples) {
		return nil, nil, errors.NewValidationError("index", "out of range", i)
	}
	return append([]T(nil), g.samples[i]...), append([]T(nil), g.labels[i]...), nil
}
