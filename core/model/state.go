package model

import (
	"github.com/YuminosukeSato/gaussproc/pkg/errors"
)

// State は学習状態です。
type State int

const (
	// Dirty はサンプルまたはハイパーパラメータが最後の学習以降に変更された状態です。
	Dirty State = iota
	// Ready は係数が現在のサンプルとハイパーパラメータに一致している状態です。
	Ready
)

func (s State) String() string {
	if s == Ready {
		return "Ready"
	}
	return "Dirty"
}

// Lifecycle は Dirty/Ready の二状態を管理します。
//
// 内部でロックは取りません。同時アクセスは所有するモデルの
// 勧告ロックで直列化する前提です。
type Lifecycle struct {
	state State
}

// MarkDirty は状態を Dirty にします。
func (l *Lifecycle) MarkDirty() { l.state = Dirty }

// MarkReady は状態を Ready にします。
func (l *Lifecycle) MarkReady() { l.state = Ready }

// IsReady は Ready かどうかを返します。
func (l *Lifecycle) IsReady() bool { return l.state == Ready }

// State は現在の状態を返します。
func (l *Lifecycle) State() State { return l.state }

// RequireReady は Ready でない場合に PreconditionError を返します。
func (l *Lifecycle) RequireReady(op string) error {
	if l.state != Ready {
		return errors.NewPreconditionError(op, "model is not trained", nil)
	}
	return nil
}
