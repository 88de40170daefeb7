package collaborator

import (
	"context"
	"errors"

	"github.com/ogurasousui/offboarding-engine/internal/core/settlement"
)

var errNotFound = errors.New("collaborator: not found")

// PayrollClient は給与精算開始コラボレーターの HTTP クライアントです。
type PayrollClient struct {
	baseURL string
	client  httpDoer
}

// NewPayrollClient は PayrollClient を生成します。
func NewPayrollClient(baseURL string) *PayrollClient {
	return &PayrollClient{baseURL: baseURL, client: defaultClient()}
}

type initiateSettlementRequest struct {
	TerminationID string `json:"terminationId"`
}

type initiateSettlementResponse struct {
	Reference string `json:"reference"`
}

// InitiateFinalSettlement は最終精算の開始を依頼し、受理参照番号を返します。
func (c *PayrollClient) InitiateFinalSettlement(ctx context.Context, terminationID string) (*settlement.Acknowledgement, error) {
	var resp initiateSettlementResponse
	if err := postJSON(ctx, c.client, joinURL(c.baseURL, "v1", "final-settlements"), initiateSettlementRequest{TerminationID: terminationID}, &resp); err != nil {
		return nil, err
	}
	return &settlement.Acknowledgement{Reference: resp.Reference}, nil
}
