package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/ogurasousui/offboarding-engine/internal/core/termination"
	pgdb "github.com/ogurasousui/offboarding-engine/internal/platform/db/postgres"
)

const terminationColumns = `
               id,
               employee_id,
               initiator,
               reason,
               termination_date,
               employee_comments,
               status,
               decided_by,
               decision_comments,
               decided_at,
               created_at,
               updated_at`

// TerminationRepository は PostgreSQL を利用した退職申請永続化の実装です。
type TerminationRepository struct {
	pool pgdb.Queryer
}

// NewTerminationRepository は TerminationRepository を生成します。
func NewTerminationRepository(pool pgdb.Queryer) *TerminationRepository {
	return &TerminationRepository{pool: pool}
}

// LockEmployee は社員 ID に紐づくアドバイザリロックを取得します。ロックは
// トランザクション終了時に解放され、同一社員への並行申請作成を直列化します。
func (r *TerminationRepository) LockEmployee(ctx context.Context, employeeID string) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	if _, err := exec.Exec(ctx, `
        SELECT pg_advisory_xact_lock(hashtext($1))
    `, employeeID); err != nil {
		return translateTerminationPgError(err)
	}
	return nil
}

// Create は退職申請を新規作成します。
func (r *TerminationRepository) Create(ctx context.Context, req *termination.Request) (*termination.Request, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO termination_requests (id, employee_id, initiator, reason, termination_date, employee_comments, status, decided_by, decision_comments, decided_at, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        RETURNING`+terminationColumns+`
    `,
		req.ID,
		req.EmployeeID,
		string(req.Initiator),
		string(req.Reason),
		req.TerminationDate,
		req.EmployeeComments,
		string(req.Status),
		req.DecidedBy,
		req.DecisionComments,
		nullableTime(req.DecidedAt),
		req.CreatedAt,
		req.UpdatedAt,
	)

	created, err := scanTermination(row)
	if err != nil {
		return nil, translateTerminationPgError(err)
	}
	return created, nil
}

// Update は退職申請を更新します。
func (r *TerminationRepository) Update(ctx context.Context, req *termination.Request) (*termination.Request, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        UPDATE termination_requests
           SET termination_date = $1,
               status = $2,
               decided_by = $3,
               decision_comments = $4,
               decided_at = $5,
               updated_at = $6
         WHERE id = $7
        RETURNING`+terminationColumns+`
    `,
		req.TerminationDate,
		string(req.Status),
		req.DecidedBy,
		req.DecisionComments,
		nullableTime(req.DecidedAt),
		req.UpdatedAt,
		req.ID,
	)

	updated, err := scanTermination(row)
	if err != nil {
		return nil, translateTerminationPgError(err)
	}
	return updated, nil
}

// FindByID は ID で退職申請を取得します。
func (r *TerminationRepository) FindByID(ctx context.Context, id string) (*termination.Request, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT`+terminationColumns+`
          FROM termination_requests
         WHERE id = $1
         LIMIT 1
    `, id)

	found, err := scanTermination(row)
	if err != nil {
		return nil, translateTerminationPgError(err)
	}
	return found, nil
}

// ListByEmployee は社員の退職申請を作成日時の降順で取得します。
func (r *TerminationRepository) ListByEmployee(ctx context.Context, employeeID string) ([]*termination.Request, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT`+terminationColumns+`
          FROM termination_requests
         WHERE employee_id = $1
         ORDER BY created_at DESC, id DESC
    `, employeeID)
	if err != nil {
		return nil, translateTerminationPgError(err)
	}
	defer rows.Close()

	requests := make([]*termination.Request, 0)
	for rows.Next() {
		req, err := scanTermination(rows)
		if err != nil {
			return nil, translateTerminationPgError(err)
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, translateTerminationPgError(err)
	}

	return requests, nil
}

// FindOpenByEmployee は未却下かつ最終精算が未発火の申請を返します。
func (r *TerminationRepository) FindOpenByEmployee(ctx context.Context, employeeID string) (*termination.Request, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT`+terminationColumns+`
          FROM termination_requests t
         WHERE t.employee_id = $1
           AND t.status <> 'rejected'
           AND NOT EXISTS (
               SELECT 1 FROM settlement_triggers st WHERE st.termination_id = t.id
           )
         ORDER BY t.created_at DESC, t.id DESC
         LIMIT 1
    `, employeeID)

	found, err := scanTermination(row)
	if err != nil {
		return nil, translateTerminationPgError(err)
	}
	return found, nil
}

func scanTermination(row pgx.Row) (*termination.Request, error) {
	var (
		id               string
		employeeID       string
		initiator        string
		reason           string
		terminationDate  time.Time
		employeeComments string
		status           string
		decidedBy        string
		decisionComments string
		decidedAt        sql.NullTime
		createdAt        time.Time
		updatedAt        time.Time
	)

	if err := row.Scan(
		&id,
		&employeeID,
		&initiator,
		&reason,
		&terminationDate,
		&employeeComments,
		&status,
		&decidedBy,
		&decisionComments,
		&decidedAt,
		&createdAt,
		&updatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, termination.ErrRequestNotFound
		}
		return nil, err
	}

	var decidedPtr *time.Time
	if decidedAt.Valid {
		t := decidedAt.Time.UTC()
		decidedPtr = &t
	}

	return &termination.Request{
		ID:               id,
		EmployeeID:       employeeID,
		Initiator:        termination.Initiator(initiator),
		Reason:           termination.Reason(reason),
		TerminationDate:  terminationDate.UTC(),
		EmployeeComments: employeeComments,
		Status:           termination.Status(status),
		DecidedBy:        decidedBy,
		DecisionComments: decisionComments,
		DecidedAt:        decidedPtr,
		CreatedAt:        createdAt,
		UpdatedAt:        updatedAt,
	}, nil
}

func translateTerminationPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return termination.ErrRequestNotFound
	}
	return err
}

func nullableTime(value *time.Time) any {
	if value == nil {
		return nil
	}
	return value.UTC()
}
