package termination

import "errors"

var (
	ErrInvalidID              = errors.New("termination: invalid id")
	ErrInvalidEmployeeID      = errors.New("termination: invalid employee id")
	ErrInvalidInitiator       = errors.New("termination: invalid initiator")
	ErrInvalidReason          = errors.New("termination: invalid reason")
	ErrInvalidTerminationDate = errors.New("termination: invalid termination date")
	ErrInvalidDeciderID       = errors.New("termination: invalid decider id")
	ErrInvalidDecision        = errors.New("termination: invalid decision")
	ErrRequestNotFound        = errors.New("termination: request not found")
	ErrAlreadyDecided         = errors.New("termination: request already decided")
	ErrOpenRequestExists      = errors.New("termination: open request already exists for employee")
)
