// Package model は推定器が共有する型と学習状態の管理を提供します。
package model

import "unsafe"

// Float はモデルとカーネルが扱える浮動小数点精度です。
// 線形代数は常に float64 で行い、結果をこの精度に丸めます。
type Float interface {
	float32 | float64
}

// BitSize は T のビット幅 (32 または 64) を返します。
// strconv による保存と読み込みで使用します。
func BitSize[T Float]() int {
	var zero T
	return int(unsafe.Sizeof(zero)) * 8
}

// Round は v を T の精度に丸めた float64 を返します。
func Round[T Float](v float64) float64 {
	return float64(T(v))
}
