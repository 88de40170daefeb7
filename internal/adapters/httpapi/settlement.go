package httpapi

import (
	"net/http"

	"github.com/ogurasousui/offboarding-engine/internal/core/settlement"
)

// SettlementHandler は最終精算ゲート操作の HTTP ハンドラーです。
type SettlementHandler struct {
	svc settlement.UseCase
}

// NewSettlementHandler は SettlementHandler を生成します。
func NewSettlementHandler(svc settlement.UseCase) *SettlementHandler {
	return &SettlementHandler{svc: svc}
}

// Register はハンドラーのルートを mux に登録します。
func (h *SettlementHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/terminations/{id}/settlement", h.trigger)
	mux.HandleFunc("GET /v1/terminations/{id}/settlement", h.get)
}

func (h *SettlementHandler) trigger(w http.ResponseWriter, r *http.Request) {
	var req triggerSettlementRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}

	fired, err := h.svc.TriggerFinalSettlement(r.Context(), settlement.TriggerInput{
		TerminationID: r.PathValue("id"),
		ActorID:       req.ActorID,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTriggerResponse(fired))
}

func (h *SettlementHandler) get(w http.ResponseWriter, r *http.Request) {
	found, err := h.svc.GetTrigger(r.Context(), settlement.GetTriggerInput{
		TerminationID: r.PathValue("id"),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTriggerResponse(found))
}
