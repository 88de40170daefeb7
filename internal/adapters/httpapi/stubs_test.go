package httpapi

import (
	"context"
	"net/http"

	"github.com/ogurasousui/offboarding-engine/internal/core/clearance"
	"github.com/ogurasousui/offboarding-engine/internal/core/revocation"
	"github.com/ogurasousui/offboarding-engine/internal/core/settlement"
	"github.com/ogurasousui/offboarding-engine/internal/core/termination"
)

type stubTerminationUseCase struct {
	createFn     func(ctx context.Context, in termination.CreateRequestInput) (*termination.Request, error)
	decideFn     func(ctx context.Context, in termination.DecideRequestInput) (*termination.Request, error)
	rescheduleFn func(ctx context.Context, in termination.RescheduleRequestInput) (*termination.Request, error)
	getFn        func(ctx context.Context, in termination.GetRequestInput) (*termination.Request, error)
	listFn       func(ctx context.Context, in termination.ListRequestsByEmployeeInput) ([]*termination.Request, error)
}

func (s *stubTerminationUseCase) CreateRequest(ctx context.Context, in termination.CreateRequestInput) (*termination.Request, error) {
	return s.createFn(ctx, in)
}

func (s *stubTerminationUseCase) DecideRequest(ctx context.Context, in termination.DecideRequestInput) (*termination.Request, error) {
	return s.decideFn(ctx, in)
}

func (s *stubTerminationUseCase) RescheduleRequest(ctx context.Context, in termination.RescheduleRequestInput) (*termination.Request, error) {
	return s.rescheduleFn(ctx, in)
}

func (s *stubTerminationUseCase) GetRequest(ctx context.Context, in termination.GetRequestInput) (*termination.Request, error) {
	return s.getFn(ctx, in)
}

func (s *stubTerminationUseCase) ListRequestsByEmployee(ctx context.Context, in termination.ListRequestsByEmployeeInput) ([]*termination.Request, error) {
	return s.listFn(ctx, in)
}

type stubClearanceUseCase struct {
	createFn           func(ctx context.Context, in clearance.CreateChecklistInput) (*clearance.Checklist, error)
	updateDepartmentFn func(ctx context.Context, in clearance.UpdateDepartmentItemInput) (*clearance.Checklist, error)
	updateEquipmentFn  func(ctx context.Context, in clearance.UpdateEquipmentItemInput) (*clearance.Checklist, error)
	updateCardFn       func(ctx context.Context, in clearance.UpdateCardReturnInput) (*clearance.Checklist, error)
	getFn              func(ctx context.Context, in clearance.GetChecklistInput) (*clearance.Checklist, error)
	getByTerminationFn func(ctx context.Context, in clearance.GetChecklistByTerminationInput) (*clearance.Checklist, error)
	completionFn       func(ctx context.Context, in clearance.GetChecklistInput) (*clearance.CompletionStatus, error)
}

func (s *stubClearanceUseCase) CreateForTermination(ctx context.Context, in clearance.CreateChecklistInput) (*clearance.Checklist, error) {
	return s.createFn(ctx, in)
}

func (s *stubClearanceUseCase) UpdateDepartmentItem(ctx context.Context, in clearance.UpdateDepartmentItemInput) (*clearance.Checklist, error) {
	return s.updateDepartmentFn(ctx, in)
}

func (s *stubClearanceUseCase) UpdateEquipmentItem(ctx context.Context, in clearance.UpdateEquipmentItemInput) (*clearance.Checklist, error) {
	return s.updateEquipmentFn(ctx, in)
}

func (s *stubClearanceUseCase) UpdateCardReturn(ctx context.Context, in clearance.UpdateCardReturnInput) (*clearance.Checklist, error) {
	return s.updateCardFn(ctx, in)
}

func (s *stubClearanceUseCase) GetChecklist(ctx context.Context, in clearance.GetChecklistInput) (*clearance.Checklist, error) {
	return s.getFn(ctx, in)
}

func (s *stubClearanceUseCase) GetChecklistByTermination(ctx context.Context, in clearance.GetChecklistByTerminationInput) (*clearance.Checklist, error) {
	return s.getByTerminationFn(ctx, in)
}

func (s *stubClearanceUseCase) GetCompletion(ctx context.Context, in clearance.GetChecklistInput) (*clearance.CompletionStatus, error) {
	return s.completionFn(ctx, in)
}

type stubSettlementUseCase struct {
	triggerFn func(ctx context.Context, in settlement.TriggerInput) (*settlement.Trigger, error)
	getFn     func(ctx context.Context, in settlement.GetTriggerInput) (*settlement.Trigger, error)
}

func (s *stubSettlementUseCase) TriggerFinalSettlement(ctx context.Context, in settlement.TriggerInput) (*settlement.Trigger, error) {
	return s.triggerFn(ctx, in)
}

func (s *stubSettlementUseCase) GetTrigger(ctx context.Context, in settlement.GetTriggerInput) (*settlement.Trigger, error) {
	return s.getFn(ctx, in)
}

type stubRevocationUseCase struct {
	listFn   func(ctx context.Context) ([]*revocation.PendingRevocation, error)
	revokeFn func(ctx context.Context, in revocation.RevokeAccessInput) (*revocation.Result, error)
}

func (s *stubRevocationUseCase) ListPendingRevocations(ctx context.Context) ([]*revocation.PendingRevocation, error) {
	return s.listFn(ctx)
}

func (s *stubRevocationUseCase) RevokeAccess(ctx context.Context, in revocation.RevokeAccessInput) (*revocation.Result, error) {
	return s.revokeFn(ctx, in)
}

func newTestMux(register func(mux *http.ServeMux)) *http.ServeMux {
	mux := http.NewServeMux()
	register(mux)
	return mux
}
