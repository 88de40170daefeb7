package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/offboarding-engine/internal/core/revocation"
	"github.com/ogurasousui/offboarding-engine/internal/core/termination"
	pgdb "github.com/ogurasousui/offboarding-engine/internal/platform/db/postgres"
)

// RevocationRepository は PostgreSQL を利用したアクセス剥奪記録の実装です。
type RevocationRepository struct {
	pool pgdb.Queryer
}

// NewRevocationRepository は RevocationRepository を生成します。
func NewRevocationRepository(pool pgdb.Queryer) *RevocationRepository {
	return &RevocationRepository{pool: pool}
}

// ListApprovedUnrevoked は剥奪記録を持たない承認済み退職申請を走査します。
func (r *RevocationRepository) ListApprovedUnrevoked(ctx context.Context) ([]*revocation.Candidate, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT t.id, t.employee_id, t.reason, t.termination_date, COALESCE(t.decided_at, t.updated_at)
          FROM termination_requests t
         WHERE t.status = 'approved'
           AND NOT EXISTS (
               SELECT 1 FROM access_revocations ar WHERE ar.termination_id = t.id
           )
         ORDER BY t.termination_date ASC, t.id ASC
    `)
	if err != nil {
		return nil, translateRevocationPgError(err)
	}
	defer rows.Close()

	candidates := make([]*revocation.Candidate, 0)
	for rows.Next() {
		candidate, err := scanCandidate(rows)
		if err != nil {
			return nil, translateRevocationPgError(err)
		}
		candidates = append(candidates, candidate)
	}

	if err := rows.Err(); err != nil {
		return nil, translateRevocationPgError(err)
	}

	return candidates, nil
}

// FindLatestApprovedByEmployee は社員の最新の承認済み退職申請を返します。
func (r *RevocationRepository) FindLatestApprovedByEmployee(ctx context.Context, employeeID string) (*revocation.Candidate, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT t.id, t.employee_id, t.reason, t.termination_date, COALESCE(t.decided_at, t.updated_at)
          FROM termination_requests t
         WHERE t.employee_id = $1
           AND t.status = 'approved'
         ORDER BY t.created_at DESC, t.id DESC
         LIMIT 1
    `, employeeID)

	candidate, err := scanCandidate(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, revocation.ErrNoApprovedTermination
		}
		return nil, translateRevocationPgError(err)
	}
	return candidate, nil
}

// Create は剥奪記録を挿入します。同一退職申請に対する 2 件目は ErrAlreadyRevoked になります。
func (r *RevocationRepository) Create(ctx context.Context, rev *revocation.Revocation) (*revocation.Revocation, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO access_revocations (id, termination_id, employee_id, system_roles_disabled, revoked_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, termination_id, employee_id, system_roles_disabled, revoked_at
    `,
		rev.ID,
		rev.TerminationID,
		rev.EmployeeID,
		rev.SystemRolesDisabled,
		rev.RevokedAt,
	)

	created, err := scanRevocation(row)
	if err != nil {
		return nil, translateRevocationPgError(err)
	}
	return created, nil
}

// SetRolesDisabled は ID 基盤が報告した無効化ロール数を記録します。
func (r *RevocationRepository) SetRolesDisabled(ctx context.Context, id string, count int) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `
        UPDATE access_revocations SET system_roles_disabled = $1 WHERE id = $2
    `, count, id)
	if err != nil {
		return translateRevocationPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return revocation.ErrRevocationNotFound
	}
	return nil
}

// FindByTerminationID は退職申請 ID で剥奪記録を取得します。
func (r *RevocationRepository) FindByTerminationID(ctx context.Context, terminationID string) (*revocation.Revocation, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT id, termination_id, employee_id, system_roles_disabled, revoked_at
          FROM access_revocations
         WHERE termination_id = $1
         LIMIT 1
    `, terminationID)

	found, err := scanRevocation(row)
	if err != nil {
		return nil, translateRevocationPgError(err)
	}
	return found, nil
}

func scanCandidate(row pgx.Row) (*revocation.Candidate, error) {
	var (
		candidate       revocation.Candidate
		reason          string
		terminationDate time.Time
		decidedAt       time.Time
	)
	if err := row.Scan(
		&candidate.TerminationID,
		&candidate.EmployeeID,
		&reason,
		&terminationDate,
		&decidedAt,
	); err != nil {
		return nil, err
	}

	candidate.Reason = termination.Reason(reason)
	candidate.TerminationDate = terminationDate.UTC()
	candidate.DecidedAt = decidedAt.UTC()
	return &candidate, nil
}

func scanRevocation(row pgx.Row) (*revocation.Revocation, error) {
	var rev revocation.Revocation
	if err := row.Scan(
		&rev.ID,
		&rev.TerminationID,
		&rev.EmployeeID,
		&rev.SystemRolesDisabled,
		&rev.RevokedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, revocation.ErrRevocationNotFound
		}
		return nil, err
	}
	return &rev, nil
}

func translateRevocationPgError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return revocation.ErrAlreadyRevoked
		case foreignKeyViolationCode:
			return revocation.ErrNoApprovedTermination
		}
	}

	return err
}
