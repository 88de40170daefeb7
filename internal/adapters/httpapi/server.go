package httpapi

import (
	"log"
	"net/http"

	"github.com/ogurasousui/offboarding-engine/internal/core/clearance"
	"github.com/ogurasousui/offboarding-engine/internal/core/revocation"
	"github.com/ogurasousui/offboarding-engine/internal/core/settlement"
	"github.com/ogurasousui/offboarding-engine/internal/core/termination"
)

// Dependencies は HTTP API の組み立てに必要なユースケース群です。
type Dependencies struct {
	Logger       *log.Logger
	Terminations termination.UseCase
	Clearances   clearance.UseCase
	Settlements  settlement.UseCase
	Revocations  revocation.UseCase
}

// NewHandler は全ハンドラーを登録した http.Handler を構築します。
func NewHandler(d Dependencies) http.Handler {
	mux := http.NewServeMux()

	NewTerminationHandler(d.Terminations).Register(mux)
	NewClearanceHandler(d.Clearances).Register(mux)
	NewSettlementHandler(d.Settlements).Register(mux)
	NewRevocationHandler(d.Revocations).Register(mux)

	if d.Logger != nil {
		return loggingMiddleware(d.Logger, mux)
	}
	return mux
}
