package settlement

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ogurasousui/offboarding-engine/internal/core/clearance"
	"github.com/ogurasousui/offboarding-engine/internal/core/termination"
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

// Service は最終精算ゲートのユースケースをまとめます。退職申請が承認済みで、
// かつチェックリストが完全にクリアされている場合のみ発火を許可します。
type Service struct {
	terminations termination.Repository
	checklists   clearance.Repository
	triggers     TriggerRepository
	payroll      PayrollInitiator
	clock        Clock
	tx           TransactionManager
}

// UseCase は最終精算ゲートの公開インターフェースです。
type UseCase interface {
	TriggerFinalSettlement(ctx context.Context, in TriggerInput) (*Trigger, error)
	GetTrigger(ctx context.Context, in GetTriggerInput) (*Trigger, error)
}

// NewService は Service を生成します。
func NewService(terminations termination.Repository, checklists clearance.Repository, triggers TriggerRepository, payroll PayrollInitiator, clock Clock, tx TransactionManager) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &Service{
		terminations: terminations,
		checklists:   checklists,
		triggers:     triggers,
		payroll:      payroll,
		clock:        clock,
		tx:           tx,
	}
}

// TriggerInput は最終精算発火時の入力です。
type TriggerInput struct {
	TerminationID string
	ActorID       string
}

// GetTriggerInput は発火マーカー取得時の入力です。
type GetTriggerInput struct {
	TerminationID string
}

// TriggerFinalSettlement はゲート条件を検証した上で外部の給与精算開始を一度だけ
// 呼び出します。マーカー挿入を給与精算呼び出しより先に行うため、同一申請への
// 並行発火は一意制約により最初の 1 件だけが確定し、以降は ErrAlreadyTriggered に
// なります。給与精算呼び出しが失敗した場合はマーカーごとロールバックされます。
func (s *Service) TriggerFinalSettlement(ctx context.Context, in TriggerInput) (*Trigger, error) {
	terminationID := strings.TrimSpace(in.TerminationID)
	if terminationID == "" {
		return nil, ErrInvalidTerminationID
	}
	actorID := strings.TrimSpace(in.ActorID)
	if actorID == "" {
		return nil, ErrInvalidActorID
	}

	var fired *Trigger
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		request, err := s.terminations.FindByID(txCtx, terminationID)
		if err != nil {
			return err
		}

		if request.Status != termination.StatusApproved {
			return &GateNotSatisfiedError{Reason: GateReasonNotApproved}
		}

		checklist, err := s.checklists.FindByTerminationID(txCtx, terminationID)
		if err != nil {
			return err
		}

		completion := clearance.EvaluateCompletion(checklist)
		if !completion.FullyCleared {
			return &GateNotSatisfiedError{
				Reason:             GateReasonNotFullyCleared,
				PendingDepartments: completion.PendingDepartments,
				PendingEquipment:   completion.PendingEquipment,
				CardReturned:       completion.CardReturned,
			}
		}

		trigger := &Trigger{
			ID:            uuid.NewString(),
			TerminationID: terminationID,
			TriggeredBy:   actorID,
			TriggeredAt:   s.clock.Now(),
		}

		created, err := s.triggers.Create(txCtx, trigger)
		if err != nil {
			return err
		}

		ack, err := s.payroll.InitiateFinalSettlement(txCtx, terminationID)
		if err != nil {
			return err
		}

		if ack != nil && ack.Reference != "" {
			if err := s.triggers.SetPayrollReference(txCtx, created.ID, ack.Reference); err != nil {
				return err
			}
			created.PayrollReference = ack.Reference
		}

		fired = created
		return nil
	}); err != nil {
		return nil, err
	}

	return fired, nil
}

// GetTrigger は退職申請に対する発火マーカーを取得します。
func (s *Service) GetTrigger(ctx context.Context, in GetTriggerInput) (*Trigger, error) {
	terminationID := strings.TrimSpace(in.TerminationID)
	if terminationID == "" {
		return nil, ErrInvalidTerminationID
	}

	var result *Trigger
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.triggers.FindByTerminationID(txCtx, terminationID)
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
