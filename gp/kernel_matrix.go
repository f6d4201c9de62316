package gp

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gaussproc/core/parallel"
)

// kernelMatrix は M[i][j] = k(x_i, x_j) の n x n 行列を返します。
// 上三角 (i <= j) だけを評価して下三角にコピーするため、M は厳密に対称です。
// 各行は別々のワーカーが担当し、書き込むセルは重なりません。
func (g *GaussianProcess[T]) kernelMatrix() *mat.Dense {
	n := len(g.samples)
	m := mat.NewDense(n, n, nil)
	parallel.ParallelizeStrided(n, g.parallelThreshold, func(i int) {
		xi := g.samples[i]
		for j := i; j < n; j++ {
			v := float64(g.kernel.Evaluate(xi, g.samples[j]))
			m.Set(i, j, v)
			m.Set(j, i, v)
		}
	})
	return m
}

// regularizedKernelMatrix は K + sigma*I を返します。
func (g *GaussianProcess[T]) regularizedKernelMatrix() *mat.Dense {
	m := g.kernelMatrix()
	s := float64(g.sigma)
	n, _ := m.Dims()
	for i := 0; i < n; i++ {
		m.Set(i, i, m.At(i, i)+s)
	}
	return m
}

// labelMatrix は i 行目が i 番目の出力である n x outputDim 行列を返します。
func (g *GaussianProcess[T]) labelMatrix() *mat.Dense {
	n := len(g.labels)
	y := mat.NewDense(n, g.outputDim, nil)
	parallel.ParallelizeWithThreshold(n, g.parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			for c, v := range g.labels[i] {
				y.Set(i, c, float64(v))
			}
		}
	})
	return y
}

// kernelVector は Kx[i] = k(x, x_i) を返します。
func (g *GaussianProcess[T]) kernelVector(x []T) *mat.VecDense {
	n := len(g.samples)
	kx := mat.NewVecDense(n, nil)
	parallel.ParallelizeWithThreshold(n, g.parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			kx.SetVec(i, float64(g.kernel.Evaluate(x, g.samples[i])))
		}
	})
	return kx
}

// differenceMatrix は i 行目が x - x_i である n x inputDim 行列を返します。
func (g *GaussianProcess[T]) differenceMatrix(x []T) *mat.Dense {
	n := len(g.samples)
	d := mat.NewDense(n, g.inputDim, nil)
	for i, xi := range g.samples {
		for j := range xi {
			d.Set(i, j, float64(x[j])-float64(xi[j]))
		}
	}
	return d
}

// kernelMatrixTrace は sum_i k(x_i, x_i) を返します。
func (g *GaussianProcess[T]) kernelMatrixTrace() float64 {
	var tr float64
	for _, xi := range g.samples {
		tr += float64(g.kernel.Evaluate(xi, xi))
	}
	return tr
}
