package collaborator

import (
	"context"
	"errors"

	"github.com/ogurasousui/offboarding-engine/internal/core/revocation"
)

// DirectoryClient は社員ディレクトリコラボレーターの HTTP クライアントです。
type DirectoryClient struct {
	baseURL string
	client  httpDoer
}

// NewDirectoryClient は DirectoryClient を生成します。
func NewDirectoryClient(baseURL string) *DirectoryClient {
	return &DirectoryClient{baseURL: baseURL, client: defaultClient()}
}

type employeeResponse struct {
	Name           string `json:"name"`
	EmployeeNumber string `json:"employeeNumber"`
	WorkEmail      string `json:"workEmail"`
}

// GetEmployee は社員の表示用情報を取得します。
func (c *DirectoryClient) GetEmployee(ctx context.Context, employeeID string) (*revocation.EmployeeProfile, error) {
	var resp employeeResponse
	if err := getJSON(ctx, c.client, joinURL(c.baseURL, "v1", "employees", employeeID), &resp); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, revocation.ErrEmployeeProfileNotFound
		}
		return nil, err
	}
	return &revocation.EmployeeProfile{
		Name:           resp.Name,
		EmployeeNumber: resp.EmployeeNumber,
		WorkEmail:      resp.WorkEmail,
	}, nil
}
