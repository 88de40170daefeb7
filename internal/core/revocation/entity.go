package revocation

import (
	"context"
	"time"

	"github.com/ogurasousui/offboarding-engine/internal/core/termination"
)

// Revocation はシステムアクセス剥奪の実施記録です。退職申請 1 件につき最大 1 件です。
type Revocation struct {
	ID                  string
	TerminationID       string
	EmployeeID          string
	SystemRolesDisabled int
	RevokedAt           time.Time
}

// Candidate はアクセス剥奪が未実施の承認済み退職申請のスキャン結果です。
type Candidate struct {
	TerminationID   string
	EmployeeID      string
	Reason          termination.Reason
	TerminationDate time.Time
	DecidedAt       time.Time
}

// PendingRevocation は剥奪待ち一覧の表示用ビューです。社員情報は外部の
// 社員ディレクトリから補完されます。
type PendingRevocation struct {
	TerminationID     string
	EmployeeID        string
	EmployeeName      string
	EmployeeNumber    string
	WorkEmail         string
	TerminationReason termination.Reason
	TerminationDate   time.Time
	DaysSinceApproval int
	IsUrgent          bool
}

// Result はアクセス剥奪操作の結果です。剥奪済みの申請に対する再実行は
// AlreadyRevoked が真で SystemRolesDisabled は 0 になります。
type Result struct {
	SystemRolesDisabled int
	AlreadyRevoked      bool
}

// EmployeeProfile は社員ディレクトリから取得する表示用情報です。
type EmployeeProfile struct {
	Name           string
	EmployeeNumber string
	WorkEmail      string
}

// EmployeeDirectory は外部の社員ディレクトリコラボレーターの抽象です。
type EmployeeDirectory interface {
	GetEmployee(ctx context.Context, employeeID string) (*EmployeeProfile, error)
}

// IdentityProvider は外部の ID 基盤コラボレーターの抽象です。DisableRoles は
// 無効化したロール数を返します。
type IdentityProvider interface {
	DisableRoles(ctx context.Context, employeeID string) (int, error)
}
