package model

import (
	"gonum.org/v1/gonum/mat"
)

// Regressor は多出力回帰モデルのインターフェースです。
type Regressor[T Float] interface {
	// AddSample は学習サンプルを一件追加します。
	AddSample(input, output []T) error

	// Initialize は蓄積されたサンプルで係数を計算します。
	Initialize() error

	// Predict は一点における予測平均を返します。
	Predict(input []T) ([]T, error)
}

// DerivativePredictor は予測平均の入力に関するヤコビアンを返せるモデルです。
type DerivativePredictor[T Float] interface {
	// PredictDerivative は Predict と同じ予測値と、
	// 入力次元 x 出力次元の行列を返します。
	PredictDerivative(input []T) ([]T, *mat.Dense, error)
}

// Scorer はスコアを計算できるモデルです。
type Scorer interface {
	// Score は予測の決定係数 R^2 を返します。
	Score(X, Y mat.Matrix) (float64, error)
}

// Persistable はパス接頭辞でファイルに保存・復元できるモデルです。
type Persistable interface {
	Save(prefix string) error
	Load(prefix string) error
}
