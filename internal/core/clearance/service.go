package clearance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// Service はクリアランスチェックリストに関するユースケースをまとめます。
type Service struct {
	repo  Repository
	clock Clock
	tx    TransactionManager
}

// UseCase はチェックリストユースケースの公開インターフェースです。
type UseCase interface {
	CreateForTermination(ctx context.Context, in CreateChecklistInput) (*Checklist, error)
	UpdateDepartmentItem(ctx context.Context, in UpdateDepartmentItemInput) (*Checklist, error)
	UpdateEquipmentItem(ctx context.Context, in UpdateEquipmentItemInput) (*Checklist, error)
	UpdateCardReturn(ctx context.Context, in UpdateCardReturnInput) (*Checklist, error)
	GetChecklist(ctx context.Context, in GetChecklistInput) (*Checklist, error)
	GetChecklistByTermination(ctx context.Context, in GetChecklistByTerminationInput) (*Checklist, error)
	GetCompletion(ctx context.Context, in GetChecklistInput) (*CompletionStatus, error)
}

// NewService は Service を生成します。
func NewService(repo Repository, clock Clock, tx TransactionManager) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &Service{repo: repo, clock: clock, tx: tx}
}

// EquipmentSeedInput はチェックリスト作成時に登録する備品です。
type EquipmentSeedInput struct {
	Name      string
	Condition string
}

// CreateChecklistInput はチェックリスト作成時の入力です。
type CreateChecklistInput struct {
	TerminationID string
	Departments   []string
	Equipment     []EquipmentSeedInput
}

// UpdateDepartmentItemInput は部門項目更新時の入力です。
type UpdateDepartmentItemInput struct {
	ChecklistID string
	Department  string
	Status      ItemStatus
	Comments    string
	ActorID     string
}

// UpdateEquipmentItemInput は備品項目更新時の入力です。Condition が nil の場合、
// 記録済みの状態表記は変更されません。
type UpdateEquipmentItemInput struct {
	ChecklistID string
	Name        string
	Returned    bool
	Condition   *string
}

// UpdateCardReturnInput は入館カード返却フラグ更新時の入力です。
type UpdateCardReturnInput struct {
	ChecklistID string
	Returned    bool
}

// GetChecklistInput はチェックリスト取得時の入力です。
type GetChecklistInput struct {
	ID string
}

// GetChecklistByTerminationInput は退職申請 ID によるチェックリスト取得時の入力です。
type GetChecklistByTerminationInput struct {
	TerminationID string
}

// CreateForTermination は承認された退職申請に対するチェックリストを作成します。
// 退職申請 1 件につきチェックリストは 1 件のみで、重複作成は ErrChecklistExists になります。
func (s *Service) CreateForTermination(ctx context.Context, in CreateChecklistInput) (*Checklist, error) {
	terminationID := strings.TrimSpace(in.TerminationID)
	if terminationID == "" {
		return nil, ErrInvalidTerminationID
	}

	departments, err := normalizeDepartments(in.Departments)
	if err != nil {
		return nil, err
	}

	equipment, err := normalizeEquipmentSeeds(in.Equipment)
	if err != nil {
		return nil, err
	}

	var created *Checklist
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		now := s.clock.Now()

		checklist := &Checklist{
			ID:            uuid.NewString(),
			TerminationID: terminationID,
			Items:         make([]DepartmentItem, 0, len(departments)),
			Equipment:     make([]EquipmentItem, 0, len(equipment)),
			CardReturned:  false,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		for _, department := range departments {
			checklist.Items = append(checklist.Items, DepartmentItem{
				Department: department,
				Status:     ItemStatusPending,
				UpdatedAt:  now,
			})
		}
		for _, seed := range equipment {
			checklist.Equipment = append(checklist.Equipment, EquipmentItem{
				Name:      seed.Name,
				Condition: seed.Condition,
				Returned:  false,
				UpdatedAt: now,
			})
		}

		result, err := s.repo.Create(txCtx, checklist)
		if err != nil {
			return err
		}

		created = result
		return nil
	}); err != nil {
		return nil, err
	}

	return created, nil
}

// UpdateDepartmentItem は指定部門のサインオフ状態を更新します。更新は対象項目の
// 行のみを書き換え、他部門の並行更新と競合しません。
func (s *Service) UpdateDepartmentItem(ctx context.Context, in UpdateDepartmentItemInput) (*Checklist, error) {
	if strings.TrimSpace(in.ChecklistID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}
	department := strings.TrimSpace(in.Department)
	if department == "" {
		return nil, ErrInvalidDepartment
	}
	if !isValidItemStatus(in.Status) {
		return nil, ErrInvalidItemStatus
	}
	actorID := strings.TrimSpace(in.ActorID)
	if actorID == "" {
		return nil, ErrInvalidActorID
	}

	var updated *Checklist
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		now := s.clock.Now()
		if err := s.repo.UpdateDepartmentItem(txCtx, in.ChecklistID, department, in.Status, strings.TrimSpace(in.Comments), actorID, now); err != nil {
			return err
		}

		result, err := s.repo.FindByID(txCtx, in.ChecklistID)
		if err != nil {
			return err
		}

		updated = result
		return nil
	}); err != nil {
		return nil, err
	}

	return updated, nil
}

// UpdateEquipmentItem は指定備品の返却状態を更新します。
func (s *Service) UpdateEquipmentItem(ctx context.Context, in UpdateEquipmentItemInput) (*Checklist, error) {
	if strings.TrimSpace(in.ChecklistID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrInvalidEquipmentName
	}

	var condition *string
	if in.Condition != nil {
		trimmed := strings.TrimSpace(*in.Condition)
		condition = &trimmed
	}

	var updated *Checklist
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		now := s.clock.Now()
		if err := s.repo.UpdateEquipmentItem(txCtx, in.ChecklistID, name, in.Returned, condition, now); err != nil {
			return err
		}

		result, err := s.repo.FindByID(txCtx, in.ChecklistID)
		if err != nil {
			return err
		}

		updated = result
		return nil
	}); err != nil {
		return nil, err
	}

	return updated, nil
}

// UpdateCardReturn は入館カード返却フラグを更新します。
func (s *Service) UpdateCardReturn(ctx context.Context, in UpdateCardReturnInput) (*Checklist, error) {
	if strings.TrimSpace(in.ChecklistID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var updated *Checklist
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		now := s.clock.Now()
		if err := s.repo.UpdateCardReturn(txCtx, in.ChecklistID, in.Returned, now); err != nil {
			return err
		}

		result, err := s.repo.FindByID(txCtx, in.ChecklistID)
		if err != nil {
			return err
		}

		updated = result
		return nil
	}); err != nil {
		return nil, err
	}

	return updated, nil
}

// GetChecklist はチェックリストを取得します。
func (s *Service) GetChecklist(ctx context.Context, in GetChecklistInput) (*Checklist, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var result *Checklist
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.FindByID(txCtx, in.ID)
		if err != nil {
			return err
		}
		result = found
		return nil
	}); err != nil {
		return nil, err
	}

	return result, nil
}

// GetChecklistByTermination は退職申請 ID でチェックリストを取得します。
func (s *Service) GetChecklistByTermination(ctx context.Context, in GetChecklistByTerminationInput) (*Checklist, error) {
	if strings.TrimSpace(in.TerminationID) == "" {
		return nil, ErrInvalidTerminationID
	}

	var result *Checklist
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.FindByTerminationID(txCtx, in.TerminationID)
		if err != nil {
			return err
		}
		result = found
		return nil
	}); err != nil {
		return nil, err
	}

	return result, nil
}

// GetCompletion はチェックリストの完了状態を評価して返します。
func (s *Service) GetCompletion(ctx context.Context, in GetChecklistInput) (*CompletionStatus, error) {
	checklist, err := s.GetChecklist(ctx, in)
	if err != nil {
		return nil, err
	}

	status := EvaluateCompletion(checklist)
	return &status, nil
}

func normalizeDepartments(raw []string) ([]string, error) {
	if len(raw) == 0 {
		return nil, ErrNoDepartments
	}

	departments := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, department := range raw {
		trimmed := strings.TrimSpace(department)
		if trimmed == "" {
			return nil, ErrInvalidDepartment
		}
		key := strings.ToLower(trimmed)
		if _, ok := seen[key]; ok {
			return nil, fmt.Errorf("%s: %w", trimmed, ErrDuplicateDepartment)
		}
		seen[key] = struct{}{}
		departments = append(departments, trimmed)
	}
	return departments, nil
}

func normalizeEquipmentSeeds(raw []EquipmentSeedInput) ([]EquipmentSeedInput, error) {
	equipment := make([]EquipmentSeedInput, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, seed := range raw {
		name := strings.TrimSpace(seed.Name)
		if name == "" {
			return nil, ErrInvalidEquipmentName
		}
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			return nil, fmt.Errorf("%s: %w", name, ErrDuplicateEquipment)
		}
		seen[key] = struct{}{}
		equipment = append(equipment, EquipmentSeedInput{
			Name:      name,
			Condition: strings.TrimSpace(seed.Condition),
		})
	}
	return equipment, nil
}

func isValidItemStatus(status ItemStatus) bool {
	switch status {
	case ItemStatusPending, ItemStatusApproved, ItemStatusRejected:
		return true
	default:
		return false
	}
}
