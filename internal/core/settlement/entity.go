package settlement

import (
	"context"
	"time"
)

// Trigger は最終精算の発火マーカーです。退職申請 1 件につき最大 1 件で、
// 最初に確定した発火だけが残ります。
type Trigger struct {
	ID               string
	TerminationID    string
	TriggeredBy      string
	PayrollReference string
	TriggeredAt      time.Time
}

// Acknowledgement は給与精算側からの受理応答です。
type Acknowledgement struct {
	Reference string
}

// PayrollInitiator は外部の給与精算開始コラボレーターの抽象です。
type PayrollInitiator interface {
	InitiateFinalSettlement(ctx context.Context, terminationID string) (*Acknowledgement, error)
}
