package collaborator

import "context"

// IdentityClient は ID 基盤コラボレーターの HTTP クライアントです。
type IdentityClient struct {
	baseURL string
	client  httpDoer
}

// NewIdentityClient は IdentityClient を生成します。
func NewIdentityClient(baseURL string) *IdentityClient {
	return &IdentityClient{baseURL: baseURL, client: defaultClient()}
}

type disableRolesRequest struct {
	EmployeeID string `json:"employeeId"`
}

type disableRolesResponse struct {
	Count int `json:"count"`
}

// DisableRoles は社員のシステムロールを無効化し、無効化した件数を返します。
func (c *IdentityClient) DisableRoles(ctx context.Context, employeeID string) (int, error) {
	var resp disableRolesResponse
	if err := postJSON(ctx, c.client, joinURL(c.baseURL, "v1", "role-disablements"), disableRolesRequest{EmployeeID: employeeID}, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}
