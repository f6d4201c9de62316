package gp

import (
	"math"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gaussproc/core/model"
	"github.com/YuminosukeSato/gaussproc/pkg/errors"
	"github.com/YuminosukeSato/gaussproc/pkg/log"
)

const opInitialize = "GaussianProcess.Initialize"

// Initialize は蓄積されたサンプルから回帰係数を計算し、モデルを Ready にします。
// すでに Ready の場合は何もしません。サンプルがなければ NotInitializedError です。
//
// 手順: カーネル行列の構築、対角への sigma の加算、選択された方法による
// 逆行列の計算、係数 = 逆行列 * Y。
func (g *GaussianProcess[T]) Initialize() error {
	if g.state.IsReady() {
		return nil
	}
	n := len(g.samples)
	if n == 0 {
		return errors.NewNotInitializedError(opInitialize)
	}

	start := time.Now()
	g.trace("Computing regression vectors",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, n,
		log.InversionMethodKey, g.invMethod.String(),
	)

	inv, err := g.invert(g.regularizedKernelMatrix())
	if err != nil {
		g.logger.Error("Kernel matrix inversion failed", err,
			log.OperationKey, log.OperationFit,
			log.InversionMethodKey, g.invMethod.String(),
		)
		return err
	}

	var coeffs mat.Dense
	coeffs.Mul(inv, g.labelMatrix())
	roundTo[T](&coeffs)
	if err := errors.CheckMatrix(opInitialize, &coeffs); err != nil {
		return err
	}

	g.coeffs = &coeffs
	if g.efficientStorage {
		g.core = nil
	} else {
		g.core = inv
	}
	g.state.MarkReady()

	g.trace("Training completed",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, n,
		log.FeaturesKey, g.inputDim,
		log.TargetsKey, g.outputDim,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

// ensureReady は Dirty のとき学習を行います。
func (g *GaussianProcess[T]) ensureReady() error {
	return g.Initialize()
}

// invert は選択された方法で a の逆行列を返します。
// gonum が分解中に panic した場合はエラーに変換します。
func (g *GaussianProcess[T]) invert(a *mat.Dense) (inv *mat.Dense, err error) {
	defer errors.Recover(&err, opInitialize)

	switch g.invMethod {
	case JacobiSVD:
		inv, _, _, err = invertSVD(a, mat.SVDFull)
	case BDCSVD:
		inv, _, _, err = invertSVD(a, mat.SVDThin)
	case SelfAdjointEigenSolver:
		inv, _, _, err = invertEigen(a)
	default:
		inv, _, _, err = invertLU(a)
	}
	if err != nil {
		return nil, err
	}
	if err := errors.CheckMatrix(opInitialize, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// coreMatrixWithLogDeterminant は (K + sigma*I)^-1 と log|K + sigma*I|、
// 行列式の符号を返します。
func (g *GaussianProcess[T]) coreMatrixWithLogDeterminant() (inv *mat.Dense, logDet, sign float64, err error) {
	if len(g.samples) == 0 {
		return nil, 0, 0, errors.NewNotInitializedError("GaussianProcess.CoreMatrixWithLogDeterminant")
	}
	defer errors.Recover(&err, "GaussianProcess.CoreMatrixWithLogDeterminant")

	a := g.regularizedKernelMatrix()
	switch g.invMethod {
	case JacobiSVD:
		return invertSVD(a, mat.SVDFull)
	case BDCSVD:
		return invertSVD(a, mat.SVDThin)
	case SelfAdjointEigenSolver:
		return invertEigen(a)
	default:
		return invertLU(a)
	}
}

// coreMatrix は保持しているコア行列を返し、なければ再計算します。
// 再計算した結果はキャッシュしません。
func (g *GaussianProcess[T]) coreMatrix() (*mat.Dense, error) {
	if g.core != nil {
		return g.core, nil
	}
	return g.invert(g.regularizedKernelMatrix())
}

func invertLU(a *mat.Dense) (*mat.Dense, float64, float64, error) {
	n, _ := a.Dims()

	var lu mat.LU
	lu.Factorize(a)

	var inv mat.Dense
	err := lu.SolveTo(&inv, false, identity(n))
	if err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) || math.IsInf(float64(cond), 0) || math.IsNaN(float64(cond)) {
			return nil, 0, 0, errors.NewNumericalInstabilityError(opInitialize, nil, errors.ErrSingularMatrix)
		}
		// 条件数が大きいだけなら警告して続行する
		errors.Warn(errors.NewIllConditionedWarning(FullPivotLU.String(), float64(cond)))
	}

	logDet, sign := lu.LogDet()
	return &inv, logDet, sign, nil
}

func invertSVD(a *mat.Dense, kind mat.SVDKind) (*mat.Dense, float64, float64, error) {
	n, _ := a.Dims()

	var svd mat.SVD
	if ok := svd.Factorize(a, kind); !ok {
		return nil, 0, 0, errors.NewNumericalInstabilityError(opInitialize, nil,
			errors.Wrap(errors.ErrSingularMatrix, "SVD factorization failed"))
	}
	values := svd.Values(nil)

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	// 擬似逆行列 V * diag(1/s) * U^T。小さい特異値は落とす
	cutoff := float64(n) * eps * values[0]
	logDet := 0.0
	for i, s := range values {
		logDet += math.Log(s)
		if s > cutoff {
			values[i] = 1 / s
		} else {
			values[i] = 0
		}
	}

	var vs mat.Dense
	vs.Apply(func(_, j int, x float64) float64 { return x * values[j] }, &v)

	var inv mat.Dense
	inv.Mul(&vs, u.T())

	sign := 1.0
	if mat.Det(&u)*mat.Det(&v) < 0 {
		sign = -1
	}
	return &inv, logDet, sign, nil
}

func invertEigen(a *mat.Dense) (*mat.Dense, float64, float64, error) {
	n, _ := a.Dims()

	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sym.SetSym(i, j, a.At(i, j))
		}
	}

	var es mat.EigenSym
	if ok := es.Factorize(sym, true); !ok {
		return nil, 0, 0, errors.NewNumericalInstabilityError(opInitialize, nil,
			errors.Wrap(errors.ErrSingularMatrix, "eigen decomposition failed"))
	}
	values := es.Values(nil)

	var vecs mat.Dense
	es.VectorsTo(&vecs)

	maxAbs := 0.0
	for _, l := range values {
		maxAbs = math.Max(maxAbs, math.Abs(l))
	}
	cutoff := float64(n) * eps * maxAbs

	logDet, sign := 0.0, 1.0
	for i, l := range values {
		logDet += math.Log(math.Abs(l))
		if l < 0 {
			sign = -sign
		}
		if math.Abs(l) > cutoff {
			values[i] = 1 / l
		} else {
			values[i] = 0
		}
	}

	// V * diag(1/l) * V^T
	var scaled mat.Dense
	scaled.Apply(func(_, j int, x float64) float64 { return x * values[j] }, &vecs)

	var inv mat.Dense
	inv.Mul(&scaled, vecs.T())
	return &inv, logDet, sign, nil
}

// eps is the float64 machine epsilon.
const eps = 0x1p-52

func identity(n int) *mat.Dense {
	id := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		id.Set(i, i, 1)
	}
	return id
}

// roundTo は m の各要素を T の精度に丸めます。
func roundTo[T model.Float](m *mat.Dense) {
	if model.BitSize[T]() == 64 {
		return
	}
	m.Apply(func(_, _ int, v float64) float64 { return model.Round[T](v) }, m)
}
