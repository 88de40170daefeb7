package revocation

import "context"

// Repository はアクセス剥奪記録の永続化と剥奪待ちスキャンの抽象です。Create は
// 同一 terminationID に対する 2 件目の挿入を ErrAlreadyRevoked として報告しなければ
// なりません。
type Repository interface {
	ListApprovedUnrevoked(ctx context.Context) ([]*Candidate, error)
	FindLatestApprovedByEmployee(ctx context.Context, employeeID string) (*Candidate, error)
	Create(ctx context.Context, revocation *Revocation) (*Revocation, error)
	SetRolesDisabled(ctx context.Context, id string, count int) error
	FindByTerminationID(ctx context.Context, terminationID string) (*Revocation, error)
}
