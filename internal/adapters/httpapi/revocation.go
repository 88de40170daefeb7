package httpapi

import (
	"net/http"

	"github.com/ogurasousui/offboarding-engine/internal/core/revocation"
)

// RevocationHandler はアクセス剥奪操作の HTTP ハンドラーです。
type RevocationHandler struct {
	svc revocation.UseCase
}

// NewRevocationHandler は RevocationHandler を生成します。
func NewRevocationHandler(svc revocation.UseCase) *RevocationHandler {
	return &RevocationHandler{svc: svc}
}

// Register はハンドラーのルートを mux に登録します。
func (h *RevocationHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/access-revocations/pending", h.listPending)
	mux.HandleFunc("POST /v1/employees/{employeeID}/access-revocation", h.revoke)
}

func (h *RevocationHandler) listPending(w http.ResponseWriter, r *http.Request) {
	pending, err := h.svc.ListPendingRevocations(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	responses := make([]pendingRevocationResponse, 0, len(pending))
	for _, entry := range pending {
		responses = append(responses, toPendingRevocationResponse(entry))
	}

	writeJSON(w, http.StatusOK, responses)
}

func (h *RevocationHandler) revoke(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.RevokeAccess(r.Context(), revocation.RevokeAccessInput{
		EmployeeID: r.PathValue("employeeID"),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, revocationResultResponse{
		SystemRolesDisabled: result.SystemRolesDisabled,
		AlreadyRevoked:      result.AlreadyRevoked,
	})
}
