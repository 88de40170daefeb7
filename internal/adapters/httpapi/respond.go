package httpapi

import (
	"encoding/json"
	"net/http"
)

// errorBody はエラー応答の共通エンベロープです。機械可読な code と、ゲート不成立
// 時の未充足条件の詳細を持ちます。
type errorBody struct {
	Code               string   `json:"code"`
	Message            string   `json:"message"`
	Reason             string   `json:"reason,omitempty"`
	PendingDepartments []string `json:"pendingDepartments,omitempty"`
	PendingEquipment   []string `json:"pendingEquipment,omitempty"`
	CardReturned       *bool    `json:"cardReturned,omitempty"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: errorBody{Code: code, Message: message}})
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
