package httpapi

import (
	"net/http"

	"github.com/ogurasousui/offboarding-engine/internal/core/termination"
)

// TerminationHandler は退職申請操作の HTTP ハンドラーです。
type TerminationHandler struct {
	svc termination.UseCase
}

// NewTerminationHandler は TerminationHandler を生成します。
func NewTerminationHandler(svc termination.UseCase) *TerminationHandler {
	return &TerminationHandler{svc: svc}
}

// Register はハンドラーのルートを mux に登録します。
func (h *TerminationHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/terminations", h.create)
	mux.HandleFunc("POST /v1/terminations/{id}/decision", h.decide)
	mux.HandleFunc("PUT /v1/terminations/{id}/termination-date", h.reschedule)
	mux.HandleFunc("GET /v1/terminations/{id}", h.get)
	mux.HandleFunc("GET /v1/employees/{employeeID}/terminations", h.listByEmployee)
}

func (h *TerminationHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createTerminationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}

	terminationDate, err := parseDate(req.TerminationDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_argument", "terminationDate: "+err.Error())
		return
	}

	created, err := h.svc.CreateRequest(r.Context(), termination.CreateRequestInput{
		EmployeeID:       req.EmployeeID,
		Initiator:        termination.Initiator(req.Initiator),
		Reason:           termination.Reason(req.Reason),
		TerminationDate:  terminationDate,
		EmployeeComments: req.EmployeeComments,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTerminationResponse(created))
}

func (h *TerminationHandler) decide(w http.ResponseWriter, r *http.Request) {
	var req decideTerminationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}

	equipment := make([]termination.EquipmentSeed, 0, len(req.Equipment))
	for _, seed := range req.Equipment {
		equipment = append(equipment, termination.EquipmentSeed{
			Name:      seed.Name,
			Condition: seed.Condition,
		})
	}

	decided, err := h.svc.DecideRequest(r.Context(), termination.DecideRequestInput{
		RequestID:   r.PathValue("id"),
		Decision:    termination.Decision(req.Decision),
		DeciderID:   req.DeciderID,
		Comments:    req.Comments,
		Departments: req.Departments,
		Equipment:   equipment,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTerminationResponse(decided))
}

func (h *TerminationHandler) reschedule(w http.ResponseWriter, r *http.Request) {
	var req rescheduleTerminationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}

	terminationDate, err := parseDate(req.TerminationDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_argument", "terminationDate: "+err.Error())
		return
	}

	rescheduled, err := h.svc.RescheduleRequest(r.Context(), termination.RescheduleRequestInput{
		RequestID:       r.PathValue("id"),
		TerminationDate: terminationDate,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTerminationResponse(rescheduled))
}

func (h *TerminationHandler) get(w http.ResponseWriter, r *http.Request) {
	found, err := h.svc.GetRequest(r.Context(), termination.GetRequestInput{ID: r.PathValue("id")})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTerminationResponse(found))
}

func (h *TerminationHandler) listByEmployee(w http.ResponseWriter, r *http.Request) {
	requests, err := h.svc.ListRequestsByEmployee(r.Context(), termination.ListRequestsByEmployeeInput{
		EmployeeID: r.PathValue("employeeID"),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	responses := make([]terminationResponse, 0, len(requests))
	for _, req := range requests {
		responses = append(responses, toTerminationResponse(req))
	}

	writeJSON(w, http.StatusOK, responses)
}
