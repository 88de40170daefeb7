package clearance

import (
	"context"
	"time"
)

// Repository はチェックリスト永続化の抽象です。項目単位の更新は、取得してから
// 全体を書き戻すのではなく、対象キーの行だけを原子的に更新しなければなりません。
type Repository interface {
	Create(ctx context.Context, checklist *Checklist) (*Checklist, error)
	UpdateDepartmentItem(ctx context.Context, checklistID, department string, status ItemStatus, comments, actorID string, updatedAt time.Time) error
	UpdateEquipmentItem(ctx context.Context, checklistID, name string, returned bool, condition *string, updatedAt time.Time) error
	UpdateCardReturn(ctx context.Context, checklistID string, returned bool, updatedAt time.Time) error
	FindByID(ctx context.Context, id string) (*Checklist, error)
	FindByTerminationID(ctx context.Context, terminationID string) (*Checklist, error)
}
