package httpapi

import (
	"fmt"
	"strings"
	"time"

	"github.com/ogurasousui/offboarding-engine/internal/core/clearance"
	"github.com/ogurasousui/offboarding-engine/internal/core/revocation"
	"github.com/ogurasousui/offboarding-engine/internal/core/settlement"
	"github.com/ogurasousui/offboarding-engine/internal/core/termination"
)

const dateLayout = "2006-01-02"

type createTerminationRequest struct {
	EmployeeID       string `json:"employeeId"`
	Initiator        string `json:"initiator"`
	Reason           string `json:"reason"`
	TerminationDate  string `json:"terminationDate"`
	EmployeeComments string `json:"employeeComments"`
}

type equipmentSeedRequest struct {
	Name      string `json:"name"`
	Condition string `json:"condition"`
}

type decideTerminationRequest struct {
	Decision    string                 `json:"decision"`
	DeciderID   string                 `json:"deciderId"`
	Comments    string                 `json:"comments"`
	Departments []string               `json:"departments"`
	Equipment   []equipmentSeedRequest `json:"equipment"`
}

type rescheduleTerminationRequest struct {
	TerminationDate string `json:"terminationDate"`
}

type updateDepartmentItemRequest struct {
	Status   string `json:"status"`
	Comments string `json:"comments"`
	ActorID  string `json:"actorId"`
}

type updateEquipmentItemRequest struct {
	Returned  bool    `json:"returned"`
	Condition *string `json:"condition"`
}

type updateCardReturnRequest struct {
	Returned bool `json:"returned"`
}

type triggerSettlementRequest struct {
	ActorID string `json:"actorId"`
}

type terminationResponse struct {
	ID               string `json:"id"`
	EmployeeID       string `json:"employeeId"`
	Initiator        string `json:"initiator"`
	Reason           string `json:"reason"`
	TerminationDate  string `json:"terminationDate"`
	EmployeeComments string `json:"employeeComments,omitempty"`
	Status           string `json:"status"`
	DecidedBy        string `json:"decidedBy,omitempty"`
	DecisionComments string `json:"decisionComments,omitempty"`
	DecidedAt        string `json:"decidedAt,omitempty"`
	CreatedAt        string `json:"createdAt"`
	UpdatedAt        string `json:"updatedAt"`
}

type departmentItemResponse struct {
	Department string `json:"department"`
	Status     string `json:"status"`
	Comments   string `json:"comments,omitempty"`
	UpdatedAt  string `json:"updatedAt"`
	UpdatedBy  string `json:"updatedBy,omitempty"`
}

type equipmentItemResponse struct {
	Name      string `json:"name"`
	Condition string `json:"condition,omitempty"`
	Returned  bool   `json:"returned"`
	UpdatedAt string `json:"updatedAt"`
}

type checklistResponse struct {
	ID            string                   `json:"id"`
	TerminationID string                   `json:"terminationId"`
	Items         []departmentItemResponse `json:"items"`
	Equipment     []equipmentItemResponse  `json:"equipment"`
	CardReturned  bool                     `json:"cardReturned"`
	CreatedAt     string                   `json:"createdAt"`
	UpdatedAt     string                   `json:"updatedAt"`
}

type completionResponse struct {
	AllDepartmentsCleared bool     `json:"allDepartmentsCleared"`
	AllEquipmentReturned  bool     `json:"allEquipmentReturned"`
	CardReturned          bool     `json:"cardReturned"`
	FullyCleared          bool     `json:"fullyCleared"`
	PendingDepartments    []string `json:"pendingDepartments"`
	PendingEquipment      []string `json:"pendingEquipment"`
}

type triggerResponse struct {
	ID               string `json:"id"`
	TerminationID    string `json:"terminationId"`
	TriggeredBy      string `json:"triggeredBy"`
	PayrollReference string `json:"payrollReference,omitempty"`
	TriggeredAt      string `json:"triggeredAt"`
}

type pendingRevocationResponse struct {
	TerminationID     string `json:"terminationId"`
	EmployeeID        string `json:"employeeId"`
	EmployeeName      string `json:"employeeName"`
	EmployeeNumber    string `json:"employeeNumber"`
	WorkEmail         string `json:"workEmail"`
	TerminationReason string `json:"terminationReason"`
	TerminationDate   string `json:"terminationDate"`
	DaysSinceApproval int    `json:"daysSinceApproval"`
	IsUrgent          bool   `json:"isUrgent"`
}

type revocationResultResponse struct {
	SystemRolesDisabled int  `json:"systemRolesDisabled"`
	AlreadyRevoked      bool `json:"alreadyRevoked"`
}

func toTerminationResponse(req *termination.Request) terminationResponse {
	resp := terminationResponse{
		ID:               req.ID,
		EmployeeID:       req.EmployeeID,
		Initiator:        string(req.Initiator),
		Reason:           string(req.Reason),
		TerminationDate:  req.TerminationDate.Format(dateLayout),
		EmployeeComments: req.EmployeeComments,
		Status:           string(req.Status),
		DecidedBy:        req.DecidedBy,
		DecisionComments: req.DecisionComments,
		CreatedAt:        req.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        req.UpdatedAt.Format(time.RFC3339),
	}
	if req.DecidedAt != nil {
		resp.DecidedAt = req.DecidedAt.Format(time.RFC3339)
	}
	return resp
}

func toChecklistResponse(checklist *clearance.Checklist) checklistResponse {
	resp := checklistResponse{
		ID:            checklist.ID,
		TerminationID: checklist.TerminationID,
		Items:         make([]departmentItemResponse, 0, len(checklist.Items)),
		Equipment:     make([]equipmentItemResponse, 0, len(checklist.Equipment)),
		CardReturned:  checklist.CardReturned,
		CreatedAt:     checklist.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     checklist.UpdatedAt.Format(time.RFC3339),
	}
	for _, item := range checklist.Items {
		resp.Items = append(resp.Items, departmentItemResponse{
			Department: item.Department,
			Status:     string(item.Status),
			Comments:   item.Comments,
			UpdatedAt:  item.UpdatedAt.Format(time.RFC3339),
			UpdatedBy:  item.UpdatedBy,
		})
	}
	for _, item := range checklist.Equipment {
		resp.Equipment = append(resp.Equipment, equipmentItemResponse{
			Name:      item.Name,
			Condition: item.Condition,
			Returned:  item.Returned,
			UpdatedAt: item.UpdatedAt.Format(time.RFC3339),
		})
	}
	return resp
}

func toCompletionResponse(status *clearance.CompletionStatus) completionResponse {
	return completionResponse{
		AllDepartmentsCleared: status.AllDepartmentsCleared,
		AllEquipmentReturned:  status.AllEquipmentReturned,
		CardReturned:          status.CardReturned,
		FullyCleared:          status.FullyCleared,
		PendingDepartments:    status.PendingDepartments,
		PendingEquipment:      status.PendingEquipment,
	}
}

func toTriggerResponse(trigger *settlement.Trigger) triggerResponse {
	return triggerResponse{
		ID:               trigger.ID,
		TerminationID:    trigger.TerminationID,
		TriggeredBy:      trigger.TriggeredBy,
		PayrollReference: trigger.PayrollReference,
		TriggeredAt:      trigger.TriggeredAt.Format(time.RFC3339),
	}
}

func toPendingRevocationResponse(pending *revocation.PendingRevocation) pendingRevocationResponse {
	return pendingRevocationResponse{
		TerminationID:     pending.TerminationID,
		EmployeeID:        pending.EmployeeID,
		EmployeeName:      pending.EmployeeName,
		EmployeeNumber:    pending.EmployeeNumber,
		WorkEmail:         pending.WorkEmail,
		TerminationReason: string(pending.TerminationReason),
		TerminationDate:   pending.TerminationDate.Format(dateLayout),
		DaysSinceApproval: pending.DaysSinceApproval,
		IsUrgent:          pending.IsUrgent,
	}
}

func parseDate(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	t, err := time.ParseInLocation(dateLayout, trimmed, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid format, expected YYYY-MM-DD")
	}
	return t, nil
}
