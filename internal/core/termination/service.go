package termination

import (
	"context"
	"errors"
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

// EquipmentSeed は承認時にチェックリストへ登録する備品を表します。
type EquipmentSeed struct {
	Name      string
	Condition string
}

// ChecklistSpec は承認時に作成するクリアランスチェックリストの内容です。
type ChecklistSpec struct {
	TerminationID string
	Departments   []string
	Equipment     []EquipmentSeed
}

// ChecklistCreator は承認トランザクション内でチェックリストを作成する抽象です。
type ChecklistCreator interface {
	CreateForTermination(ctx context.Context, spec ChecklistSpec) error
}

// Service は退職申請に関するユースケースをまとめます。
type Service struct {
	repo               Repository
	checklists         ChecklistCreator
	clock              Clock
	tx                 TransactionManager
	defaultDepartments []string
}

// UseCase は退職申請ユースケースの公開インターフェースです。
type UseCase interface {
	CreateRequest(ctx context.Context, in CreateRequestInput) (*Request, error)
	DecideRequest(ctx context.Context, in DecideRequestInput) (*Request, error)
	RescheduleRequest(ctx context.Context, in RescheduleRequestInput) (*Request, error)
	GetRequest(ctx context.Context, in GetRequestInput) (*Request, error)
	ListRequestsByEmployee(ctx context.Context, in ListRequestsByEmployeeInput) ([]*Request, error)
}

// NewService は Service を生成します。
func NewService(repo Repository, checklists ChecklistCreator, clock Clock, tx TransactionManager, defaultDepartments []string) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &Service{
		repo:               repo,
		checklists:         checklists,
		clock:              clock,
		tx:                 tx,
		defaultDepartments: append([]string(nil), defaultDepartments...),
	}
}

// CreateRequestInput は退職申請作成時の入力です。
type CreateRequestInput struct {
	EmployeeID       string
	Initiator        Initiator
	Reason           Reason
	TerminationDate  time.Time
	EmployeeComments string
}

// DecideRequestInput は退職申請の裁定時の入力です。
// Departments と Equipment は承認時のみ参照され、Departments が空の場合は
// 設定済みの既定部門リストが用いられます。
type DecideRequestInput struct {
	RequestID   string
	Decision    Decision
	DeciderID   string
	Comments    string
	Departments []string
	Equipment   []EquipmentSeed
}

// RescheduleRequestInput は最終勤務日変更時の入力です。
type RescheduleRequestInput struct {
	RequestID       string
	TerminationDate time.Time
}

// GetRequestInput は退職申請取得時の入力です。
type GetRequestInput struct {
	ID string
}

// ListRequestsByEmployeeInput は社員単位の一覧取得時の入力です。
type ListRequestsByEmployeeInput struct {
	EmployeeID string
}

// CreateRequest は新しい退職申請を作成します。
func (s *Service) CreateRequest(ctx context.Context, in CreateRequestInput) (*Request, error) {
	employeeID, err := normalizeEmployeeID(in.EmployeeID)
	if err != nil {
		return nil, err
	}
	if !isValidInitiator(in.Initiator) {
		return nil, ErrInvalidInitiator
	}
	if !isValidReason(in.Reason) {
		return nil, ErrInvalidReason
	}
	if in.TerminationDate.IsZero() {
		return nil, ErrInvalidTerminationDate
	}

	terminationDate := normalizeDate(in.TerminationDate)

	var created *Request
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		// 同時作成で未決申請チェックをすり抜けないよう、社員単位のロックを先に取る。
		if err := s.repo.LockEmployee(txCtx, employeeID); err != nil {
			return err
		}
		if err := s.ensureNoOpenRequest(txCtx, employeeID); err != nil {
			return err
		}

		now := s.clock.Now()
		request := &Request{
			ID:               uuid.NewString(),
			EmployeeID:       employeeID,
			Initiator:        in.Initiator,
			Reason:           in.Reason,
			TerminationDate:  terminationDate,
			EmployeeComments: strings.TrimSpace(in.EmployeeComments),
			Status:           StatusPending,
			CreatedAt:        now,
			UpdatedAt:        now,
		}

		result, err := s.repo.Create(txCtx, request)
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

// DecideRequest は退職申請を承認または却下します。承認時は同一トランザクション内で
// クリアランスチェックリストを作成し、作成に失敗した場合は状態遷移ごとロールバックします。
func (s *Service) DecideRequest(ctx context.Context, in DecideRequestInput) (*Request, error) {
	if strings.TrimSpace(in.RequestID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}
	deciderID := strings.TrimSpace(in.DeciderID)
	if deciderID == "" {
		return nil, ErrInvalidDeciderID
	}
	if in.Decision != DecisionApprove && in.Decision != DecisionReject {
		return nil, ErrInvalidDecision
	}

	var decided *Request
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByID(txCtx, in.RequestID)
		if err != nil {
			return err
		}

		if existing.Status != StatusPending {
			return ErrAlreadyDecided
		}

		now := s.clock.Now()
		switch in.Decision {
		case DecisionApprove:
			existing.Status = StatusApproved
		case DecisionReject:
			existing.Status = StatusRejected
		}
		existing.DecidedBy = deciderID
		existing.DecisionComments = strings.TrimSpace(in.Comments)
		existing.DecidedAt = &now
		existing.UpdatedAt = now

		updated, err := s.repo.Update(txCtx, existing)
		if err != nil {
			return err
		}

		if in.Decision == DecisionApprove {
			departments := in.Departments
			if len(departments) == 0 {
				departments = s.defaultDepartments
			}
			if err := s.checklists.CreateForTermination(txCtx, ChecklistSpec{
				TerminationID: updated.ID,
				Departments:   departments,
				Equipment:     in.Equipment,
			}); err != nil {
				return err
			}
		}

		decided = updated
		return nil
	}); err != nil {
		return nil, err
	}

	return decided, nil
}

// RescheduleRequest は裁定前の申請の最終勤務日を変更します。
func (s *Service) RescheduleRequest(ctx context.Context, in RescheduleRequestInput) (*Request, error) {
	if strings.TrimSpace(in.RequestID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}
	if in.TerminationDate.IsZero() {
		return nil, ErrInvalidTerminationDate
	}

	var rescheduled *Request
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByID(txCtx, in.RequestID)
		if err != nil {
			return err
		}

		if existing.Status != StatusPending {
			return ErrAlreadyDecided
		}

		existing.TerminationDate = normalizeDate(in.TerminationDate)
		existing.UpdatedAt = s.clock.Now()

		updated, err := s.repo.Update(txCtx, existing)
		if err != nil {
			return err
		}

		rescheduled = updated
		return nil
	}); err != nil {
		return nil, err
	}

	return rescheduled, nil
}

// GetRequest は退職申請を取得します。
func (s *Service) GetRequest(ctx context.Context, in GetRequestInput) (*Request, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var result *Request
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

// ListRequestsByEmployee は社員の退職申請を作成日時の降順で取得します。
func (s *Service) ListRequestsByEmployee(ctx context.Context, in ListRequestsByEmployeeInput) ([]*Request, error) {
	employeeID, err := normalizeEmployeeID(in.EmployeeID)
	if err != nil {
		return nil, err
	}

	var requests []*Request
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.ListByEmployee(txCtx, employeeID)
		if err != nil {
			return err
		}
		requests = found
		return nil
	}); err != nil {
		return nil, err
	}

	return requests, nil
}

func (s *Service) ensureNoOpenRequest(ctx context.Context, employeeID string) error {
	open, err := s.repo.FindOpenByEmployee(ctx, employeeID)
	if err != nil && !errors.Is(err, ErrRequestNotFound) {
		return err
	}
	if open != nil {
		return ErrOpenRequestExists
	}
	return nil
}

func normalizeEmployeeID(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrInvalidEmployeeID
	}
	return trimmed, nil
}

func normalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func isValidInitiator(initiator Initiator) bool {
	switch initiator {
	case InitiatorEmployee, InitiatorHR:
		return true
	default:
		return false
	}
}

func isValidReason(reason Reason) bool {
	switch reason {
	case ReasonResignation, ReasonRetirement, ReasonEndOfContract, ReasonDismissal, ReasonRedundancy:
		return true
	default:
		return false
	}
}
