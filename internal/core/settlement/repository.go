package settlement

import "context"

// TriggerRepository は発火マーカー永続化の抽象です。Create は同一 terminationID に
// 対する 2 件目の挿入を ErrAlreadyTriggered として報告しなければなりません。
type TriggerRepository interface {
	Create(ctx context.Context, trigger *Trigger) (*Trigger, error)
	SetPayrollReference(ctx context.Context, id, reference string) error
	FindByTerminationID(ctx context.Context, terminationID string) (*Trigger, error)
}
