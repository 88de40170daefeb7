package settlement

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTerminationID = errors.New("settlement: invalid termination id")
	ErrInvalidActorID       = errors.New("settlement: invalid actor id")
	ErrTriggerNotFound      = errors.New("settlement: trigger not found")
	ErrAlreadyTriggered     = errors.New("settlement: final settlement already triggered")
	ErrGateNotSatisfied     = errors.New("settlement: gate not satisfied")
)

// ゲート不成立の理由を表す定数です。
const (
	GateReasonNotApproved     = "not approved"
	GateReasonNotFullyCleared = "not fully cleared"
)

// GateNotSatisfiedError は最終精算ゲートの不成立を表し、満たされていない条件の
// 詳細を保持します。errors.Is(err, ErrGateNotSatisfied) で判別できます。
type GateNotSatisfiedError struct {
	Reason             string
	PendingDepartments []string
	PendingEquipment   []string
	CardReturned       bool
}

func (e *GateNotSatisfiedError) Error() string {
	return fmt.Sprintf("settlement: gate not satisfied: %s", e.Reason)
}

func (e *GateNotSatisfiedError) Unwrap() error {
	return ErrGateNotSatisfied
}
