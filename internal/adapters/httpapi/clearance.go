package httpapi

import (
	"net/http"

	"github.com/ogurasousui/offboarding-engine/internal/core/clearance"
)

// ClearanceHandler はクリアランスチェックリスト操作の HTTP ハンドラーです。
type ClearanceHandler struct {
	svc clearance.UseCase
}

// NewClearanceHandler は ClearanceHandler を生成します。
func NewClearanceHandler(svc clearance.UseCase) *ClearanceHandler {
	return &ClearanceHandler{svc: svc}
}

// Register はハンドラーのルートを mux に登録します。
func (h *ClearanceHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/clearances/{id}", h.get)
	mux.HandleFunc("GET /v1/terminations/{id}/clearance", h.getByTermination)
	mux.HandleFunc("PUT /v1/clearances/{id}/departments/{department}", h.updateDepartmentItem)
	mux.HandleFunc("PUT /v1/clearances/{id}/equipment/{name}", h.updateEquipmentItem)
	mux.HandleFunc("PUT /v1/clearances/{id}/card", h.updateCardReturn)
	mux.HandleFunc("GET /v1/clearances/{id}/completion", h.completion)
}

func (h *ClearanceHandler) get(w http.ResponseWriter, r *http.Request) {
	found, err := h.svc.GetChecklist(r.Context(), clearance.GetChecklistInput{ID: r.PathValue("id")})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toChecklistResponse(found))
}

func (h *ClearanceHandler) getByTermination(w http.ResponseWriter, r *http.Request) {
	found, err := h.svc.GetChecklistByTermination(r.Context(), clearance.GetChecklistByTerminationInput{
		TerminationID: r.PathValue("id"),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toChecklistResponse(found))
}

func (h *ClearanceHandler) updateDepartmentItem(w http.ResponseWriter, r *http.Request) {
	var req updateDepartmentItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}

	updated, err := h.svc.UpdateDepartmentItem(r.Context(), clearance.UpdateDepartmentItemInput{
		ChecklistID: r.PathValue("id"),
		Department:  r.PathValue("department"),
		Status:      clearance.ItemStatus(req.Status),
		Comments:    req.Comments,
		ActorID:     req.ActorID,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toChecklistResponse(updated))
}

func (h *ClearanceHandler) updateEquipmentItem(w http.ResponseWriter, r *http.Request) {
	var req updateEquipmentItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}

	updated, err := h.svc.UpdateEquipmentItem(r.Context(), clearance.UpdateEquipmentItemInput{
		ChecklistID: r.PathValue("id"),
		Name:        r.PathValue("name"),
		Returned:    req.Returned,
		Condition:   req.Condition,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toChecklistResponse(updated))
}

func (h *ClearanceHandler) updateCardReturn(w http.ResponseWriter, r *http.Request) {
	var req updateCardReturnRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}

	updated, err := h.svc.UpdateCardReturn(r.Context(), clearance.UpdateCardReturnInput{
		ChecklistID: r.PathValue("id"),
		Returned:    req.Returned,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toChecklistResponse(updated))
}

func (h *ClearanceHandler) completion(w http.ResponseWriter, r *http.Request) {
	status, err := h.svc.GetCompletion(r.Context(), clearance.GetChecklistInput{ID: r.PathValue("id")})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toCompletionResponse(status))
}
