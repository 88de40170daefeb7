package revocation

import (
	"context"
	"errors"
	"fmt"
	"sort"
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

// 承認からこの日数を超えて未剥奪のままなら緊急扱いにする既定値です。
const defaultUrgentAfterDays = 3

// Service はアクセス剥奪スケジューラのユースケースをまとめます。
type Service struct {
	repo            Repository
	directory       EmployeeDirectory
	identity        IdentityProvider
	clock           Clock
	tx              TransactionManager
	urgentAfterDays int
}

// UseCase はアクセス剥奪ユースケースの公開インターフェースです。
type UseCase interface {
	ListPendingRevocations(ctx context.Context) ([]*PendingRevocation, error)
	RevokeAccess(ctx context.Context, in RevokeAccessInput) (*Result, error)
}

// NewService は Service を生成します。urgentAfterDays が 0 以下の場合は既定値を使います。
func NewService(repo Repository, directory EmployeeDirectory, identity IdentityProvider, clock Clock, tx TransactionManager, urgentAfterDays int) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	if urgentAfterDays <= 0 {
		urgentAfterDays = defaultUrgentAfterDays
	}
	return &Service{
		repo:            repo,
		directory:       directory,
		identity:        identity,
		clock:           clock,
		tx:              tx,
		urgentAfterDays: urgentAfterDays,
	}
}

// RevokeAccessInput はアクセス剥奪実行時の入力です。
type RevokeAccessInput struct {
	EmployeeID string
}

// ListPendingRevocations は剥奪が未実施の承認済み退職者を緊急度順に返します。
// 緊急(最終勤務日が到来済み、または承認から urgentAfterDays 日超過)を先頭に、
// 各グループ内は最終勤務日の昇順です。ディレクトリに記録がない社員もプロフィール
// 欄を空のまま一覧に含め、ディレクトリ自体の障害のみ ErrDirectoryUnavailable で
// 報告します。
func (s *Service) ListPendingRevocations(ctx context.Context) ([]*PendingRevocation, error) {
	var candidates []*Candidate
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.ListApprovedUnrevoked(txCtx)
		if err != nil {
			return err
		}
		candidates = found
		return nil
	}); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	pending := make([]*PendingRevocation, 0, len(candidates))
	for _, candidate := range candidates {
		entry := &PendingRevocation{
			TerminationID:     candidate.TerminationID,
			EmployeeID:        candidate.EmployeeID,
			TerminationReason: candidate.Reason,
			TerminationDate:   candidate.TerminationDate,
			DaysSinceApproval: daysSince(candidate.DecidedAt, now),
		}
		entry.IsUrgent = !candidate.TerminationDate.After(now) || entry.DaysSinceApproval > s.urgentAfterDays

		profile, err := s.directory.GetEmployee(ctx, candidate.EmployeeID)
		switch {
		case err == nil:
			entry.EmployeeName = profile.Name
			entry.EmployeeNumber = profile.EmployeeNumber
			entry.WorkEmail = profile.WorkEmail
		case errors.Is(err, ErrEmployeeProfileNotFound):
			// ディレクトリ側の欠落で剥奪候補自体が隠れないよう、空のまま返す。
		default:
			return nil, fmt.Errorf("%w: %v", ErrDirectoryUnavailable, err)
		}

		pending = append(pending, entry)
	}

	sort.SliceStable(pending, func(i, j int) bool {
		if pending[i].IsUrgent != pending[j].IsUrgent {
			return pending[i].IsUrgent
		}
		return pending[i].TerminationDate.Before(pending[j].TerminationDate)
	})

	return pending, nil
}

// RevokeAccess は社員のシステムアクセスを剥奪します。冪等であり、剥奪済みの場合は
// ID 基盤を再呼び出しせず SystemRolesDisabled = 0 を返します。
func (s *Service) RevokeAccess(ctx context.Context, in RevokeAccessInput) (*Result, error) {
	employeeID := strings.TrimSpace(in.EmployeeID)
	if employeeID == "" {
		return nil, ErrInvalidEmployeeID
	}

	var result *Result
	err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		candidate, err := s.repo.FindLatestApprovedByEmployee(txCtx, employeeID)
		if err != nil {
			return err
		}

		if existing, err := s.repo.FindByTerminationID(txCtx, candidate.TerminationID); err != nil {
			if !errors.Is(err, ErrRevocationNotFound) {
				return err
			}
		} else if existing != nil {
			result = &Result{SystemRolesDisabled: 0, AlreadyRevoked: true}
			return nil
		}

		revocation := &Revocation{
			ID:            uuid.NewString(),
			TerminationID: candidate.TerminationID,
			EmployeeID:    employeeID,
			RevokedAt:     s.clock.Now(),
		}

		created, err := s.repo.Create(txCtx, revocation)
		if err != nil {
			return err
		}

		count, err := s.identity.DisableRoles(txCtx, employeeID)
		if err != nil {
			return err
		}

		if err := s.repo.SetRolesDisabled(txCtx, created.ID, count); err != nil {
			return err
		}

		result = &Result{SystemRolesDisabled: count}
		return nil
	})
	if err != nil {
		// 並行実行で先を越された場合も冪等な no-op として扱います。
		if errors.Is(err, ErrAlreadyRevoked) {
			return &Result{SystemRolesDisabled: 0, AlreadyRevoked: true}, nil
		}
		return nil, err
	}

	return result, nil
}

func daysSince(from, now time.Time) int {
	if now.Before(from) {
		return 0
	}
	return int(now.Sub(from) / (24 * time.Hour))
}
