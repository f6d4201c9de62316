// Package gp はガウス過程回帰エンジンを提供します。
//
// サンプルを AddSample で一件ずつ蓄積し、Predict / PredictDerivative の
// 初回呼び出し (または Initialize) で正則化カーネル行列の逆行列と回帰係数を
// 計算します。状態は Save / Load で四つのテキストファイルに保存・復元できます。
//
// # 並行性
//
// GaussianProcess は内部でロックを取りません。エンジンが正しさを保証するのは
// 逐次呼び出し、または呼び出し側が Lock / Unlock で排他区間を確保した
// 並行呼び出しに限られます。ロックなしで AddSample と Predict を並行に
// 呼ぶことはデータ競合です。まとめて追加してから学習する、といった
// バッチ処理の粒度は呼び出し側が決めます。
//
//	g.Lock()
//	for i := range xs {
//	    _ = g.AddSample(xs[i], ys[i])
//	}
//	err := g.Initialize()
//	g.Unlock()
package gp

import (
	"fmt"
	"strings"
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gaussproc/core/model"
	"github.com/YuminosukeSato/gaussproc/kernel"
	"github.com/YuminosukeSato/gaussproc/pkg/errors"
	"github.com/YuminosukeSato/gaussproc/pkg/log"
)

// GaussianProcess は精度 T のガウス過程回帰モデルです。
// 線形代数は float64 で行い、回帰係数は T の精度に丸めて保持します。
type GaussianProcess[T model.Float] struct {
	mu sync.Mutex

	kernel kernel.Kernel[T]
	sigma  T

	samples   [][]T
	labels    [][]T
	inputDim  int
	outputDim int

	// coeffs は n x outputDim の回帰係数
	coeffs *mat.Dense
	// core は (K + sigma*I) の逆行列。効率的ストレージ時は nil
	core  *mat.Dense
	state model.Lifecycle

	invMethod         InversionMethod
	efficientStorage  bool
	debug             bool
	parallelThreshold int
	logger            log.Logger
}

var (
	_ model.Regressor[float64]           = (*GaussianProcess[float64])(nil)
	_ model.DerivativePredictor[float32] = (*GaussianProcess[float32])(nil)
	_ model.Persistable                  = (*GaussianProcess[float64])(nil)
)

// New はカーネル k を持つ空のモデルを作成します。
func New[T model.Float](k kernel.Kernel[T], opts ...Option) (*GaussianProcess[T], error) {
	if k == nil {
		return nil, errors.NewValidationError("kernel", "must not be nil", nil)
	}
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	g := &GaussianProcess[T]{
		kernel:            k,
		sigma:             T(cfg.sigma),
		invMethod:         cfg.invMethod,
		efficientStorage:  cfg.efficientStorage,
		debug:             cfg.debug,
		parallelThreshold: cfg.parallelThreshold,
	}
	g.setLogger(cfg.logger)
	return g, nil
}

func (g *GaussianProcess[T]) setLogger(l log.Logger) {
	if l == nil {
		l = log.GetLoggerWithName("gp")
	}
	g.logger = l.With(log.ModelNameKey, modelName[T]())
}

func modelName[T model.Float]() string {
	var zero T
	return fmt.Sprintf("GaussianProcess[%T]", zero)
}

// trace はデバッグ有効時に Info、それ以外は Debug で記録します。
func (g *GaussianProcess[T]) trace(msg string, fields ...any) {
	if g.debug {
		g.logger.Info(msg, fields...)
		return
	}
	g.logger.Debug(msg, fields...)
}

// Lock はモデルの勧告ロックを取得します。エンジン自身は取得しません。
func (g *GaussianProcess[T]) Lock() { g.mu.Lock() }

// Unlock は Lock で取得したロックを解放します。
func (g *GaussianProcess[T]) Unlock() { g.mu.Unlock() }

// Kernel は現在のカーネルを返します。
func (g *GaussianProcess[T]) Kernel() kernel.Kernel[T] { return g.kernel }

// SetKernel はカーネルを差し替え、モデルを Dirty にします。
func (g *GaussianProcess[T]) SetKernel(k kernel.Kernel[T]) error {
	if k == nil {
		return errors.NewValidationError("kernel", "must not be nil", nil)
	}
	g.kernel = k
	g.state.MarkDirty()
	return nil
}

// Sigma は観測ノイズを返します。
func (g *GaussianProcess[T]) Sigma() T { return g.sigma }

// SigmaSquared は sigma の二乗を返します。
func (g *GaussianProcess[T]) SigmaSquared() T { return g.sigma * g.sigma }

// SetSigma は観測ノイズを設定し、モデルを Dirty にします。
func (g *GaussianProcess[T]) SetSigma(sigma T) error {
	if err := validateSigma(float64(sigma)); err != nil {
		return err
	}
	g.sigma = sigma
	g.state.MarkDirty()
	return nil
}

// InversionMethod は逆行列の計算方法を返します。
func (g *GaussianProcess[T]) InversionMethod() InversionMethod { return g.invMethod }

// SetInversionMethod は逆行列の計算方法を設定します。
// 結果の数学的な定義は変わらないため、状態は変えません。
func (g *GaussianProcess[T]) SetInversionMethod(m InversionMethod) error {
	if !m.valid() {
		return errors.NewValidationError("inversion_method", "unknown method", int(m))
	}
	g.invMethod = m
	return nil
}

// EfficientStorage はコア行列を破棄するモードかどうかを返します。
func (g *GaussianProcess[T]) EfficientStorage() bool { return g.efficientStorage }

// SetEfficientStorage はモードを切り替え、モデルを Dirty にします。
func (g *GaussianProcess[T]) SetEfficientStorage(on bool) {
	g.efficientStorage = on
	g.state.MarkDirty()
}

// Debug はデバッグフラグを返します。
func (g *GaussianProcess[T]) Debug() bool { return g.debug }

// DebugOn はトレース記録を有効にします。
func (g *GaussianProcess[T]) DebugOn() { g.debug = true }

// DebugOff はトレース記録を無効にします。
func (g *GaussianProcess[T]) DebugOff() { g.debug = false }

// IsReady は回帰係数が現在のサンプルに対して有効かどうかを返します。
func (g *GaussianProcess[T]) IsReady() bool { return g.state.IsReady() }

// String はモデルの概要を返します。
func (g *GaussianProcess[T]) String() string {
	var b strings.Builder
	b.WriteString("---------------------------------------\n")
	b.WriteString(modelName[T]() + "\n")
	fmt.Fprintf(&b, " - initialized:\t\t%t\n", g.state.IsReady())
	fmt.Fprintf(&b, " - # samples:\t\t%d\n", len(g.samples))
	fmt.Fprintf(&b, " - # labels:\t\t%d\n", len(g.labels))
	fmt.Fprintf(&b, " - noise:\t\t%v\n", g.sigma)
	fmt.Fprintf(&b, " - input dimension:\t%d\n", g.inputDim)
	fmt.Fprintf(&b, " - output dimension:\t%d\n", g.outputDim)
	fmt.Fprintf(&b, " - inversion method:\t%s\n", g.invMethod)
	b.WriteString("\n - Kernel:\n")
	fmt.Fprintf(&b, "       - Type:\t\t%s\n", g.kernel.Name())
	b.WriteString("       - Parameter:\t")
	for i, p := range g.kernel.Parameters() {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%v", p)
	}
	b.WriteString("\n---------------------------------------\n")
	return b.String()
}
