// Package errors はガウス過程回帰エンジン全体のエラーハンドリングと警告システムを提供します。
// すべてのエラーは型付きで、cockroachdb/errors によるスタックトレースを保持し、
// 呼び出し側は As / Is で種類を判別できます。
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	グローバル警告ハンドリング
//
// ===========================================================================
var (
	warningMutex sync.Mutex
	// zerologロガー（循環importを避けるため pkg/log から注入される）
	zerologWarnFunc func(warning error)
)

// SetZerologWarnFunc はzerolog警告関数を設定します（循環importを避けるため）。
// nil を渡すと標準エラー出力への出力に戻ります。
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn は警告を発生させます。
// zerologが設定されている場合は構造化ログとして出力し、そうでなければ標準エラー出力に書きます。
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}

	log.Printf("gaussproc-warning: %v\n", w)
}

// ===========================================================================
//
//	警告型
//
// ===========================================================================

// IllConditionedWarning は正則化済みカーネル行列の条件数が大きく、
// 逆行列の精度が保証できない場合の警告です。
type IllConditionedWarning struct {
	Method    string
	Condition float64
}

func (w *IllConditionedWarning) Error() string {
	return fmt.Sprintf("kernel matrix is ill-conditioned (condition number %.3g) under %s; consider a larger sigma or an SVD based inversion method", w.Condition, w.Method)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *IllConditionedWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("method", w.Method).
		Float64("condition", w.Condition).
		Str("type", "IllConditionedWarning")
}

// NewIllConditionedWarning は新しいIllConditionedWarningを作成します。
func NewIllConditionedWarning(method string, condition float64) *IllConditionedWarning {
	return &IllConditionedWarning{Method: method, Condition: condition}
}

// ===========================================================================
//
//	構造化されたエラー型
//
// ===========================================================================

// DimensionError は入力・出力ベクトルの次元がモデルで固定された次元と異なる場合のエラーです。
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 は入力ベクトル, 1 は出力ベクトル
}

func (e *DimensionError) axisName() string {
	if e.Axis == 0 {
		return "input"
	}
	return "output"
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("gaussproc: %s: dimension of %s vector (%d) does not correspond to the %s dimension (%d)",
		e.Op, e.axisName(), e.Got, e.axisName(), e.Expected)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", e.axisName()).
		Str("type", "DimensionError")
}

// NewDimensionError は新しいDimensionErrorを作成し、スタックトレースを付与します。
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// NotInitializedError は学習済みの回帰ベクトルが必要な操作で、
// 学習データが無いため学習できない場合のエラーです。
type NotInitializedError struct {
	Op string
}

func (e *NotInitializedError) Error() string {
	return fmt.Sprintf("gaussproc: %s: gaussian process is not initialized: %v", e.Op, ErrNoTrainingData)
}

// Unwrap は ErrNoTrainingData を返します。
func (e *NotInitializedError) Unwrap() error {
	return ErrNoTrainingData
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *NotInitializedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("type", "NotInitializedError")
}

// NewNotInitializedError は新しいNotInitializedErrorを作成し、スタックトレースを付与します。
func NewNotInitializedError(op string) error {
	return errors.WithStack(&NotInitializedError{Op: op})
}

// PreconditionError は操作の事前条件が満たされない場合のエラーです。
// 例えば、学習できないモデルに対する Save など。
type PreconditionError struct {
	Op     string
	Reason string
	Err    error
}

func (e *PreconditionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("gaussproc: %s: precondition violated: %s: %v", e.Op, e.Reason, e.Err)
	}
	return fmt.Sprintf("gaussproc: %s: precondition violated: %s", e.Op, e.Reason)
}

func (e *PreconditionError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *PreconditionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("reason", e.Reason).
		Str("type", "PreconditionError")
}

// NewPreconditionError は新しいPreconditionErrorを作成し、スタックトレースを付与します。
func NewPreconditionError(op, reason string, err error) error {
	return errors.WithStack(&PreconditionError{Op: op, Reason: reason, Err: err})
}

// PersistenceMissingError は必要なファイルが存在しない、またはディレクトリである場合のエラーです。
type PersistenceMissingError struct {
	Path string
	Err  error
}

func (e *PersistenceMissingError) Error() string {
	return fmt.Sprintf("gaussproc: %s does not exist or is a directory", e.Path)
}

func (e *PersistenceMissingError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *PersistenceMissingError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("path", e.Path).
		Str("type", "PersistenceMissingError")
}

// NewPersistenceMissingError は新しいPersistenceMissingErrorを作成し、スタックトレースを付与します。
func NewPersistenceMissingError(path string, err error) error {
	return errors.WithStack(&PersistenceMissingError{Path: path, Err: err})
}

// PersistenceCorruptError はファイルの内容が解析できない場合のエラーです。
// Line は 1 始まりの行番号で、不明な場合は 0 です。
type PersistenceCorruptError struct {
	Path   string
	Line   int
	Reason string
}

func (e *PersistenceCorruptError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("gaussproc: %s is corrupt at line %d: %s", e.Path, e.Line, e.Reason)
	}
	return fmt.Sprintf("gaussproc: %s is corrupt: %s", e.Path, e.Reason)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *PersistenceCorruptError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("path", e.Path).
		Int("line", e.Line).
		Str("reason", e.Reason).
		Str("type", "PersistenceCorruptError")
}

// NewPersistenceCorruptError は新しいPersistenceCorruptErrorを作成し、スタックトレースを付与します。
func NewPersistenceCorruptError(path string, line int, reason string) error {
	return errors.WithStack(&PersistenceCorruptError{Path: path, Line: line, Reason: reason})
}

// UnknownKernelError はカーネル名が認識できない、または認識できたカーネルに対して
// パラメータ数が正しくない場合のエラーです。Expected が 0 の場合は名前が未知であることを示します。
type UnknownKernelError struct {
	Name     string
	Expected int
	Got      int
}

func (e *UnknownKernelError) Error() string {
	if e.Expected == 0 {
		return fmt.Sprintf("gaussproc: kernel %q not recognized", e.Name)
	}
	return fmt.Sprintf("gaussproc: wrong number of kernel parameters for %s: expected %d, got %d", e.Name, e.Expected, e.Got)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *UnknownKernelError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("kernel", e.Name).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Str("type", "UnknownKernelError")
}

// NewUnknownKernelError は新しいUnknownKernelErrorを作成し、スタックトレースを付与します。
func NewUnknownKernelError(name string, expected, got int) error {
	return errors.WithStack(&UnknownKernelError{Name: name, Expected: expected, Got: got})
}

// ValidationError は入力パラメータの検証に失敗した場合のエラーです。
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("gaussproc: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError は新しいValidationErrorを作成し、スタックトレースを付与します。
func NewValidationError(param, reason string, value interface{}) error {
	err := &ValidationError{ParamName: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// NumericalInstabilityError は数値計算が不安定になった場合のエラーです。
// 逆行列に NaN や Inf が含まれる、分解が失敗するなど。
type NumericalInstabilityError struct {
	Operation string    // 発生した操作（例: "invert_kernel_matrix"）
	Values    []float64 // 問題のある値
	Err       error     // 原因となったエラー（任意）
}

func (e *NumericalInstabilityError) Error() string {
	valStr := ""
	for i, v := range e.Values {
		if i > 0 {
			valStr += ", "
		}
		if i >= 5 {
			valStr += "..."
			break
		}
		valStr += fmt.Sprintf("%.6g", v)
	}
	if e.Err != nil {
		return fmt.Sprintf("gaussproc: numerical instability detected in %s: %v", e.Operation, e.Err)
	}
	return fmt.Sprintf("gaussproc: numerical instability detected in %s. Values: [%s]", e.Operation, valStr)
}

func (e *NumericalInstabilityError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *NumericalInstabilityError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Operation).
		Floats64("values", e.Values).
		Str("type", "NumericalInstabilityError")
}

// NewNumericalInstabilityError は新しいNumericalInstabilityErrorを作成します。
func NewNumericalInstabilityError(operation string, values []float64, cause error) error {
	err := &NumericalInstabilityError{
		Operation: operation,
		Values:    values,
		Err:       cause,
	}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	cockroachdb/errors ラッパー関数
//
// ===========================================================================

// Is はエラーが特定のターゲットエラーかどうかを判定します。
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As はエラーが特定の型にキャスト可能かどうかを判定します。
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap は既存のエラーをメッセージ付きでラップします。
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf は既存のエラーをフォーマット文字列でラップします。
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New は新しいエラーを作成します。
func New(message string) error {
	return errors.New(message)
}

// Newf は新しいフォーマット済みエラーを作成します。
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack はエラーにスタックトレースを付与します。
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	共通エラー変数
//
// ===========================================================================

var (
	// ErrNoTrainingData は学習データが一件も追加されていない場合のエラーです。
	ErrNoTrainingData = New("no training data")

	// ErrSingularMatrix は正則化済みカーネル行列が特異な場合のエラーです。
	ErrSingularMatrix = New("singular matrix")
)
