package clearance

import "time"

// ItemStatus は部門ごとのサインオフ状態を表します。
type ItemStatus string

const (
	ItemStatusPending  ItemStatus = "pending"
	ItemStatusApproved ItemStatus = "approved"
	ItemStatusRejected ItemStatus = "rejected"
)

// DepartmentItem はチェックリスト内の 1 部門分のサインオフ項目です。
type DepartmentItem struct {
	Department string
	Status     ItemStatus
	Comments   string
	UpdatedAt  time.Time
	UpdatedBy  string
}

// EquipmentItem は返却対象の備品項目です。
type EquipmentItem struct {
	Name      string
	Condition string
	Returned  bool
	UpdatedAt time.Time
}

// Checklist はクリアランスチェックリスト集約です。項目の集合は作成時に確定し、
// 以後は項目単位の状態更新のみが行われます。
type Checklist struct {
	ID            string
	TerminationID string
	Items         []DepartmentItem
	Equipment     []EquipmentItem
	CardReturned  bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
