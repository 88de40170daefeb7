package clearance

import (
	"context"

	"github.com/ogurasousui/offboarding-engine/internal/core/termination"
)

// CreatorAdapter は承認トランザクションから呼び出される termination.ChecklistCreator を
// Service で実装します。
type CreatorAdapter struct {
	svc *Service
}

// NewCreatorAdapter は CreatorAdapter を生成します。
func NewCreatorAdapter(svc *Service) *CreatorAdapter {
	return &CreatorAdapter{svc: svc}
}

// CreateForTermination は承認された退職申請のチェックリストを作成します。
func (a *CreatorAdapter) CreateForTermination(ctx context.Context, spec termination.ChecklistSpec) error {
	equipment := make([]EquipmentSeedInput, 0, len(spec.Equipment))
	for _, seed := range spec.Equipment {
		equipment = append(equipment, EquipmentSeedInput{
			Name:      seed.Name,
			Condition: seed.Condition,
		})
	}

	_, err := a.svc.CreateForTermination(ctx, CreateChecklistInput{
		TerminationID: spec.TerminationID,
		Departments:   spec.Departments,
		Equipment:     equipment,
	})
	return err
}
