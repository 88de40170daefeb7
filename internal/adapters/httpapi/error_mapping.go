package httpapi

import (
	"errors"
	"net/http"

	"github.com/ogurasousui/offboarding-engine/internal/core/clearance"
	"github.com/ogurasousui/offboarding-engine/internal/core/revocation"
	"github.com/ogurasousui/offboarding-engine/internal/core/settlement"
	"github.com/ogurasousui/offboarding-engine/internal/core/termination"
)

// writeDomainError はドメインエラーを HTTP ステータスと機械可読コードに写像します。
func writeDomainError(w http.ResponseWriter, err error) {
	var gateErr *settlement.GateNotSatisfiedError
	if errors.As(err, &gateErr) {
		cardReturned := gateErr.CardReturned
		writeJSON(w, http.StatusConflict, errorResponse{Error: errorBody{
			Code:               "gate_not_satisfied",
			Message:            gateErr.Error(),
			Reason:             gateErr.Reason,
			PendingDepartments: gateErr.PendingDepartments,
			PendingEquipment:   gateErr.PendingEquipment,
			CardReturned:       &cardReturned,
		}})
		return
	}

	switch {
	case errors.Is(err, termination.ErrInvalidID),
		errors.Is(err, termination.ErrInvalidEmployeeID),
		errors.Is(err, termination.ErrInvalidInitiator),
		errors.Is(err, termination.ErrInvalidReason),
		errors.Is(err, termination.ErrInvalidTerminationDate),
		errors.Is(err, termination.ErrInvalidDeciderID),
		errors.Is(err, termination.ErrInvalidDecision),
		errors.Is(err, clearance.ErrInvalidID),
		errors.Is(err, clearance.ErrInvalidTerminationID),
		errors.Is(err, clearance.ErrInvalidDepartment),
		errors.Is(err, clearance.ErrInvalidEquipmentName),
		errors.Is(err, clearance.ErrInvalidItemStatus),
		errors.Is(err, clearance.ErrInvalidActorID),
		errors.Is(err, clearance.ErrNoDepartments),
		errors.Is(err, clearance.ErrDuplicateDepartment),
		errors.Is(err, clearance.ErrDuplicateEquipment),
		errors.Is(err, settlement.ErrInvalidTerminationID),
		errors.Is(err, settlement.ErrInvalidActorID),
		errors.Is(err, revocation.ErrInvalidEmployeeID):
		writeError(w, http.StatusBadRequest, "invalid_argument", err.Error())
	case errors.Is(err, termination.ErrRequestNotFound),
		errors.Is(err, clearance.ErrChecklistNotFound),
		errors.Is(err, clearance.ErrItemNotFound),
		errors.Is(err, clearance.ErrEquipmentNotFound),
		errors.Is(err, settlement.ErrTriggerNotFound),
		errors.Is(err, revocation.ErrNoApprovedTermination),
		errors.Is(err, revocation.ErrRevocationNotFound),
		errors.Is(err, revocation.ErrEmployeeProfileNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, termination.ErrAlreadyDecided),
		errors.Is(err, termination.ErrOpenRequestExists),
		errors.Is(err, clearance.ErrChecklistExists):
		writeError(w, http.StatusConflict, "invalid_state", err.Error())
	case errors.Is(err, settlement.ErrAlreadyTriggered):
		writeError(w, http.StatusConflict, "already_triggered", err.Error())
	case errors.Is(err, revocation.ErrDirectoryUnavailable):
		writeError(w, http.StatusBadGateway, "directory_unavailable", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "unexpected server error")
	}
}
