package termination

import "context"

// Repository は退職申請永続化の抽象です。
type Repository interface {
	// LockEmployee は同一社員に対する申請作成をトランザクション終了まで直列化します。
	LockEmployee(ctx context.Context, employeeID string) error
	Create(ctx context.Context, request *Request) (*Request, error)
	Update(ctx context.Context, request *Request) (*Request, error)
	FindByID(ctx context.Context, id string) (*Request, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]*Request, error)
	// FindOpenByEmployee は未却下かつ最終精算が未発火の申請を返します。
	FindOpenByEmployee(ctx context.Context, employeeID string) (*Request, error)
}
