package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/offboarding-engine/internal/core/clearance"
	pgdb "github.com/ogurasousui/offboarding-engine/internal/platform/db/postgres"
)

const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
)

// ClearanceRepository は PostgreSQL を利用したチェックリスト永続化の実装です。
// チェックリスト本体・部門項目・備品項目を正規化して保持し、項目単位の更新は
// 対象キーの 1 行だけを書き換えます。
type ClearanceRepository struct {
	pool pgdb.Queryer
}

// NewClearanceRepository は ClearanceRepository を生成します。
func NewClearanceRepository(pool pgdb.Queryer) *ClearanceRepository {
	return &ClearanceRepository{pool: pool}
}

// Create はチェックリストと項目一式を作成します。
func (r *ClearanceRepository) Create(ctx context.Context, checklist *clearance.Checklist) (*clearance.Checklist, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)

	if _, err := exec.Exec(ctx, `
        INSERT INTO clearance_checklists (id, termination_id, card_returned, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5)
    `,
		checklist.ID,
		checklist.TerminationID,
		checklist.CardReturned,
		checklist.CreatedAt,
		checklist.UpdatedAt,
	); err != nil {
		return nil, translateClearancePgError(err)
	}

	for _, item := range checklist.Items {
		if _, err := exec.Exec(ctx, `
            INSERT INTO clearance_items (checklist_id, department, status, comments, updated_by, updated_at)
            VALUES ($1, $2, $3, $4, $5, $6)
        `,
			checklist.ID,
			item.Department,
			string(item.Status),
			item.Comments,
			item.UpdatedBy,
			item.UpdatedAt,
		); err != nil {
			return nil, translateClearancePgError(err)
		}
	}

	for _, item := range checklist.Equipment {
		if _, err := exec.Exec(ctx, `
            INSERT INTO clearance_equipment (checklist_id, name, condition, returned, updated_at)
            VALUES ($1, $2, $3, $4, $5)
        `,
			checklist.ID,
			item.Name,
			item.Condition,
			item.Returned,
			item.UpdatedAt,
		); err != nil {
			return nil, translateClearancePgError(err)
		}
	}

	return r.FindByID(ctx, checklist.ID)
}

// UpdateDepartmentItem は部門項目 1 行を更新します。
func (r *ClearanceRepository) UpdateDepartmentItem(ctx context.Context, checklistID, department string, status clearance.ItemStatus, comments, actorID string, updatedAt time.Time) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `
        UPDATE clearance_items
           SET status = $1,
               comments = $2,
               updated_by = $3,
               updated_at = $4
         WHERE checklist_id = $5 AND department = $6
    `, string(status), comments, actorID, updatedAt, checklistID, department)
	if err != nil {
		return translateClearancePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return r.classifyMissingKey(ctx, checklistID, clearance.ErrItemNotFound)
	}

	return r.touchChecklist(ctx, checklistID, updatedAt)
}

// UpdateEquipmentItem は備品項目 1 行を更新します。condition が nil の場合、
// 状態表記の列は変更しません。
func (r *ClearanceRepository) UpdateEquipmentItem(ctx context.Context, checklistID, name string, returned bool, condition *string, updatedAt time.Time) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `
        UPDATE clearance_equipment
           SET returned = $1,
               condition = COALESCE($2, condition),
               updated_at = $3
         WHERE checklist_id = $4 AND name = $5
    `, returned, condition, updatedAt, checklistID, name)
	if err != nil {
		return translateClearancePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return r.classifyMissingKey(ctx, checklistID, clearance.ErrEquipmentNotFound)
	}

	return r.touchChecklist(ctx, checklistID, updatedAt)
}

// UpdateCardReturn は入館カード返却フラグを更新します。
func (r *ClearanceRepository) UpdateCardReturn(ctx context.Context, checklistID string, returned bool, updatedAt time.Time) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `
        UPDATE clearance_checklists
           SET card_returned = $1,
               updated_at = $2
         WHERE id = $3
    `, returned, updatedAt, checklistID)
	if err != nil {
		return translateClearancePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return clearance.ErrChecklistNotFound
	}
	return nil
}

// FindByID は ID でチェックリストを取得します。
func (r *ClearanceRepository) FindByID(ctx context.Context, id string) (*clearance.Checklist, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT id, termination_id, card_returned, created_at, updated_at
          FROM clearance_checklists
         WHERE id = $1
         LIMIT 1
    `, id)

	return r.scanChecklistWithItems(ctx, row)
}

// FindByTerminationID は退職申請 ID でチェックリストを取得します。
func (r *ClearanceRepository) FindByTerminationID(ctx context.Context, terminationID string) (*clearance.Checklist, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT id, termination_id, card_returned, created_at, updated_at
          FROM clearance_checklists
         WHERE termination_id = $1
         LIMIT 1
    `, terminationID)

	return r.scanChecklistWithItems(ctx, row)
}

func (r *ClearanceRepository) scanChecklistWithItems(ctx context.Context, row pgx.Row) (*clearance.Checklist, error) {
	checklist, err := scanChecklist(row)
	if err != nil {
		return nil, translateClearancePgError(err)
	}

	items, err := r.loadItems(ctx, checklist.ID)
	if err != nil {
		return nil, err
	}
	checklist.Items = items

	equipment, err := r.loadEquipment(ctx, checklist.ID)
	if err != nil {
		return nil, err
	}
	checklist.Equipment = equipment

	return checklist, nil
}

func (r *ClearanceRepository) loadItems(ctx context.Context, checklistID string) ([]clearance.DepartmentItem, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT department, status, comments, updated_by, updated_at
          FROM clearance_items
         WHERE checklist_id = $1
         ORDER BY department ASC
    `, checklistID)
	if err != nil {
		return nil, translateClearancePgError(err)
	}
	defer rows.Close()

	items := make([]clearance.DepartmentItem, 0)
	for rows.Next() {
		var (
			item   clearance.DepartmentItem
			status string
		)
		if err := rows.Scan(&item.Department, &status, &item.Comments, &item.UpdatedBy, &item.UpdatedAt); err != nil {
			return nil, translateClearancePgError(err)
		}
		item.Status = clearance.ItemStatus(status)
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, translateClearancePgError(err)
	}

	return items, nil
}

func (r *ClearanceRepository) loadEquipment(ctx context.Context, checklistID string) ([]clearance.EquipmentItem, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT name, condition, returned, updated_at
          FROM clearance_equipment
         WHERE checklist_id = $1
         ORDER BY name ASC
    `, checklistID)
	if err != nil {
		return nil, translateClearancePgError(err)
	}
	defer rows.Close()

	equipment := make([]clearance.EquipmentItem, 0)
	for rows.Next() {
		var item clearance.EquipmentItem
		if err := rows.Scan(&item.Name, &item.Condition, &item.Returned, &item.UpdatedAt); err != nil {
			return nil, translateClearancePgError(err)
		}
		equipment = append(equipment, item)
	}

	if err := rows.Err(); err != nil {
		return nil, translateClearancePgError(err)
	}

	return equipment, nil
}

// classifyMissingKey は項目更新が 1 行も対象にならなかった原因を、チェックリスト
// 自体の欠落と項目キーの欠落に区別します。
func (r *ClearanceRepository) classifyMissingKey(ctx context.Context, checklistID string, itemErr error) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	var exists bool
	if err := exec.QueryRow(ctx, `
        SELECT EXISTS (SELECT 1 FROM clearance_checklists WHERE id = $1)
    `, checklistID).Scan(&exists); err != nil {
		return translateClearancePgError(err)
	}
	if !exists {
		return clearance.ErrChecklistNotFound
	}
	return itemErr
}

func (r *ClearanceRepository) touchChecklist(ctx context.Context, checklistID string, updatedAt time.Time) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	if _, err := exec.Exec(ctx, `
        UPDATE clearance_checklists SET updated_at = $1 WHERE id = $2
    `, updatedAt, checklistID); err != nil {
		return translateClearancePgError(err)
	}
	return nil
}

func scanChecklist(row pgx.Row) (*clearance.Checklist, error) {
	var checklist clearance.Checklist
	if err := row.Scan(
		&checklist.ID,
		&checklist.TerminationID,
		&checklist.CardReturned,
		&checklist.CreatedAt,
		&checklist.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, clearance.ErrChecklistNotFound
		}
		return nil, err
	}
	return &checklist, nil
}

func translateClearancePgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return clearance.ErrChecklistNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return clearance.ErrChecklistExists
		case foreignKeyViolationCode:
			return clearance.ErrInvalidTerminationID
		}
	}

	return err
}
