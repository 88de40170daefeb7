package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/offboarding-engine/internal/core/settlement"
	pgdb "github.com/ogurasousui/offboarding-engine/internal/platform/db/postgres"
)

// SettlementRepository は PostgreSQL を利用した発火マーカー永続化の実装です。
// termination_id の一意制約により、並行する発火は最初の 1 件だけが確定します。
type SettlementRepository struct {
	pool pgdb.Queryer
}

// NewSettlementRepository は SettlementRepository を生成します。
func NewSettlementRepository(pool pgdb.Queryer) *SettlementRepository {
	return &SettlementRepository{pool: pool}
}

// Create は発火マーカーを挿入します。同一退職申請に対する 2 件目は
// ErrAlreadyTriggered になります。
func (r *SettlementRepository) Create(ctx context.Context, trigger *settlement.Trigger) (*settlement.Trigger, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO settlement_triggers (id, termination_id, triggered_by, payroll_reference, triggered_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, termination_id, triggered_by, payroll_reference, triggered_at
    `,
		trigger.ID,
		trigger.TerminationID,
		trigger.TriggeredBy,
		trigger.PayrollReference,
		trigger.TriggeredAt,
	)

	created, err := scanTrigger(row)
	if err != nil {
		return nil, translateSettlementPgError(err)
	}
	return created, nil
}

// SetPayrollReference は給与精算側の受理参照番号を記録します。
func (r *SettlementRepository) SetPayrollReference(ctx context.Context, id, reference string) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `
        UPDATE settlement_triggers SET payroll_reference = $1 WHERE id = $2
    `, reference, id)
	if err != nil {
		return translateSettlementPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return settlement.ErrTriggerNotFound
	}
	return nil
}

// FindByTerminationID は退職申請 ID で発火マーカーを取得します。
func (r *SettlementRepository) FindByTerminationID(ctx context.Context, terminationID string) (*settlement.Trigger, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT id, termination_id, triggered_by, payroll_reference, triggered_at
          FROM settlement_triggers
         WHERE termination_id = $1
         LIMIT 1
    `, terminationID)

	found, err := scanTrigger(row)
	if err != nil {
		return nil, translateSettlementPgError(err)
	}
	return found, nil
}

func scanTrigger(row pgx.Row) (*settlement.Trigger, error) {
	var trigger settlement.Trigger
	if err := row.Scan(
		&trigger.ID,
		&trigger.TerminationID,
		&trigger.TriggeredBy,
		&trigger.PayrollReference,
		&trigger.TriggeredAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, settlement.ErrTriggerNotFound
		}
		return nil, err
	}
	return &trigger, nil
}

func translateSettlementPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return settlement.ErrTriggerNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return settlement.ErrAlreadyTriggered
		case foreignKeyViolationCode:
			return settlement.ErrInvalidTerminationID
		}
	}

	return err
}
