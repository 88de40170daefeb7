package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ogurasousui/offboarding-engine/internal/core/revocation"
	"github.com/ogurasousui/offboarding-engine/internal/core/termination"
)

func TestRevocationHandler_ListPending(t *testing.T) {
	t.Parallel()

	stub := &stubRevocationUseCase{
		listFn: func(_ context.Context) ([]*revocation.PendingRevocation, error) {
			return []*revocation.PendingRevocation{
				{
					TerminationID:     "term-2",
					EmployeeID:        "emp-2",
					EmployeeName:      "Bob",
					EmployeeNumber:    "E002",
					WorkEmail:         "bob@example.com",
					TerminationReason: termination.ReasonDismissal,
					TerminationDate:   time.Date(2024, 6, 8, 0, 0, 0, 0, time.UTC),
					DaysSinceApproval: 4,
					IsUrgent:          true,
				},
				{
					TerminationID:     "term-1",
					EmployeeID:        "emp-1",
					EmployeeName:      "Alice",
					TerminationReason: termination.ReasonResignation,
					TerminationDate:   time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
					DaysSinceApproval: 1,
				},
			}, nil
		},
	}
	mux := newTestMux(NewRevocationHandler(stub).Register)

	req := httptest.NewRequest(http.MethodGet, "/v1/access-revocations/pending", nil)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp []pendingRevocationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(resp) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(resp))
	}

	if resp[0].TerminationID != "term-2" || !resp[0].IsUrgent {
		t.Errorf("unexpected first entry %+v", resp[0])
	}

	if resp[0].EmployeeName != "Bob" || resp[0].TerminationDate != "2024-06-08" {
		t.Errorf("unexpected enrichment %+v", resp[0])
	}
}

func TestRevocationHandler_ListPending_DirectoryUnavailable(t *testing.T) {
	t.Parallel()

	stub := &stubRevocationUseCase{
		listFn: func(_ context.Context) ([]*revocation.PendingRevocation, error) {
			return nil, revocation.ErrDirectoryUnavailable
		},
	}
	mux := newTestMux(NewRevocationHandler(stub).Register)

	req := httptest.NewRequest(http.MethodGet, "/v1/access-revocations/pending", nil)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d", rec.Code)
	}

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Error.Code != "directory_unavailable" {
		t.Errorf("expected code directory_unavailable, got %s", resp.Error.Code)
	}
}

func TestRevocationHandler_ListPending_ProfileNotFound(t *testing.T) {
	t.Parallel()

	stub := &stubRevocationUseCase{
		listFn: func(_ context.Context) ([]*revocation.PendingRevocation, error) {
			return nil, revocation.ErrEmployeeProfileNotFound
		},
	}
	mux := newTestMux(NewRevocationHandler(stub).Register)

	req := httptest.NewRequest(http.MethodGet, "/v1/access-revocations/pending", nil)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Error.Code != "not_found" {
		t.Errorf("expected code not_found, got %s", resp.Error.Code)
	}
}

func TestRevocationHandler_Revoke(t *testing.T) {
	t.Parallel()

	var captured revocation.RevokeAccessInput
	stub := &stubRevocationUseCase{
		revokeFn: func(_ context.Context, in revocation.RevokeAccessInput) (*revocation.Result, error) {
			captured = in
			return &revocation.Result{SystemRolesDisabled: 3}, nil
		},
	}
	mux := newTestMux(NewRevocationHandler(stub).Register)

	req := httptest.NewRequest(http.MethodPost, "/v1/employees/emp-1/access-revocation", nil)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	if captured.EmployeeID != "emp-1" {
		t.Errorf("unexpected employee id %s", captured.EmployeeID)
	}

	var resp revocationResultResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.SystemRolesDisabled != 3 || resp.AlreadyRevoked {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestRevocationHandler_Revoke_AlreadyRevoked(t *testing.T) {
	t.Parallel()

	stub := &stubRevocationUseCase{
		revokeFn: func(_ context.Context, _ revocation.RevokeAccessInput) (*revocation.Result, error) {
			return &revocation.Result{SystemRolesDisabled: 0, AlreadyRevoked: true}, nil
		},
	}
	mux := newTestMux(NewRevocationHandler(stub).Register)

	req := httptest.NewRequest(http.MethodPost, "/v1/employees/emp-1/access-revocation", nil)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp revocationResultResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if !resp.AlreadyRevoked || resp.SystemRolesDisabled != 0 {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestRevocationHandler_Revoke_NoApprovedTermination(t *testing.T) {
	t.Parallel()

	stub := &stubRevocationUseCase{
		revokeFn: func(_ context.Context, _ revocation.RevokeAccessInput) (*revocation.Result, error) {
			return nil, revocation.ErrNoApprovedTermination
		},
	}
	mux := newTestMux(NewRevocationHandler(stub).Register)

	req := httptest.NewRequest(http.MethodPost, "/v1/employees/emp-9/access-revocation", nil)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Error.Code != "not_found" {
		t.Errorf("expected code not_found, got %s", resp.Error.Code)
	}
}
