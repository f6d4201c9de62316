package gp

import (
	"github.com/YuminosukeSato/gaussproc/pkg/errors"
)

// InversionMethod は正則化カーネル行列の逆行列の計算方法です。
// 精度と計算量のみが変わり、結果の定義は変わりません。
type InversionMethod int

const (
	// FullPivotLU は LU 分解による逆行列です (既定)。最も高速ですが、
	// 悪条件の行列では逆行列が対称性を失い予測が不安定になることがあります。
	FullPivotLU InversionMethod = iota
	// JacobiSVD は完全 SVD による擬似逆行列です。最も頑健ですが低速です。
	JacobiSVD
	// BDCSVD は薄い SVD による擬似逆行列です。JacobiSVD に近い精度でより軽量です。
	BDCSVD
	// SelfAdjointEigenSolver は対称固有値分解を使います。中規模問題向けです。
	SelfAdjointEigenSolver
)

var inversionNames = [...]string{
	FullPivotLU:            "FullPivotLU",
	JacobiSVD:              "JacobiSVD",
	BDCSVD:                 "BDCSVD",
	SelfAdjointEigenSolver: "SelfAdjointEigenSolver",
}

func (m InversionMethod) valid() bool {
	return m >= FullPivotLU && m <= SelfAdjointEigenSolver
}

func (m InversionMethod) String() string {
	if !m.valid() {
		return "InversionMethod(unknown)"
	}
	return inversionNames[m]
}

// ParseInversionMethod は名前から InversionMethod を返します。
func ParseInversionMethod(name string) (InversionMethod, error) {
	for i, n := range inversionNames {
		if n == name {
			return InversionMethod(i), nil
		}
	}
	return 0, errors.NewValidationError("inversion_method", "unknown method name", name)
}
