package clearance

import "errors"

var (
	ErrInvalidID            = errors.New("clearance: invalid id")
	ErrInvalidTerminationID = errors.New("clearance: invalid termination id")
	ErrInvalidDepartment    = errors.New("clearance: invalid department")
	ErrInvalidEquipmentName = errors.New("clearance: invalid equipment name")
	ErrInvalidItemStatus    = errors.New("clearance: invalid item status")
	ErrInvalidActorID       = errors.New("clearance: invalid actor id")
	ErrNoDepartments        = errors.New("clearance: department list must not be empty")
	ErrDuplicateDepartment  = errors.New("clearance: duplicate department")
	ErrDuplicateEquipment   = errors.New("clearance: duplicate equipment name")
	ErrChecklistNotFound    = errors.New("clearance: checklist not found")
	ErrChecklistExists      = errors.New("clearance: checklist already exists for termination")
	ErrItemNotFound         = errors.New("clearance: department item not found")
	ErrEquipmentNotFound    = errors.New("clearance: equipment item not found")
)
