package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ogurasousui/offboarding-engine/internal/core/termination"
)

func sampleRequest(id string) *termination.Request {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	return &termination.Request{
		ID:              id,
		EmployeeID:      "emp-1",
		Initiator:       termination.InitiatorEmployee,
		Reason:          termination.ReasonResignation,
		TerminationDate: time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
		Status:          termination.StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func TestTerminationHandler_Create(t *testing.T) {
	t.Parallel()

	var captured termination.CreateRequestInput
	stub := &stubTerminationUseCase{
		createFn: func(_ context.Context, in termination.CreateRequestInput) (*termination.Request, error) {
			captured = in
			return sampleRequest("term-1"), nil
		},
	}

	mux := newTestMux(NewTerminationHandler(stub).Register)

	body := `{"employeeId":"emp-1","initiator":"employee","reason":"resignation","terminationDate":"2024-06-30","employeeComments":"bye"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/terminations", strings.NewReader(body))
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.EmployeeID != "emp-1" || captured.Initiator != termination.InitiatorEmployee {
		t.Errorf("unexpected input %+v", captured)
	}

	wantDate := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	if !captured.TerminationDate.Equal(wantDate) {
		t.Errorf("expected parsed date %v, got %v", wantDate, captured.TerminationDate)
	}

	var resp terminationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.ID != "term-1" || resp.Status != "pending" || resp.TerminationDate != "2024-06-30" {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestTerminationHandler_Create_BadJSON(t *testing.T) {
	t.Parallel()

	stub := &stubTerminationUseCase{}
	mux := newTestMux(NewTerminationHandler(stub).Register)

	cases := []struct {
		name string
		body string
	}{
		{name: "malformed", body: `{"employeeId":`},
		{name: "unknown field", body: `{"employeeId":"emp-1","surprise":true}`},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodPost, "/v1/terminations", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()

			mux.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", rec.Code)
			}

			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}

			if resp.Error.Code != "bad_json" {
				t.Errorf("expected code bad_json, got %s", resp.Error.Code)
			}
		})
	}
}

func TestTerminationHandler_Create_InvalidDate(t *testing.T) {
	t.Parallel()

	stub := &stubTerminationUseCase{}
	mux := newTestMux(NewTerminationHandler(stub).Register)

	body := `{"employeeId":"emp-1","initiator":"employee","reason":"resignation","terminationDate":"30-06-2024"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/terminations", strings.NewReader(body))
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Error.Code != "invalid_argument" {
		t.Errorf("expected code invalid_argument, got %s", resp.Error.Code)
	}
}

func TestTerminationHandler_Create_OpenRequestConflict(t *testing.T) {
	t.Parallel()

	stub := &stubTerminationUseCase{
		createFn: func(_ context.Context, _ termination.CreateRequestInput) (*termination.Request, error) {
			return nil, termination.ErrOpenRequestExists
		},
	}
	mux := newTestMux(NewTerminationHandler(stub).Register)

	body := `{"employeeId":"emp-1","initiator":"employee","reason":"resignation","terminationDate":"2024-06-30"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/terminations", strings.NewReader(body))
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rec.Code)
	}

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Error.Code != "invalid_state" {
		t.Errorf("expected code invalid_state, got %s", resp.Error.Code)
	}
}

func TestTerminationHandler_Decide(t *testing.T) {
	t.Parallel()

	var captured termination.DecideRequestInput
	stub := &stubTerminationUseCase{
		decideFn: func(_ context.Context, in termination.DecideRequestInput) (*termination.Request, error) {
			captured = in
			approved := sampleRequest(in.RequestID)
			approved.Status = termination.StatusApproved
			approved.DecidedBy = in.DeciderID
			decidedAt := time.Date(2024, 6, 2, 10, 0, 0, 0, time.UTC)
			approved.DecidedAt = &decidedAt
			return approved, nil
		},
	}
	mux := newTestMux(NewTerminationHandler(stub).Register)

	body := `{"decision":"approve","deciderId":"hr-1","comments":"ok","departments":["IT"],"equipment":[{"name":"Laptop","condition":"good"}]}`
	req := httptest.NewRequest(http.MethodPost, "/v1/terminations/term-1/decision", strings.NewReader(body))
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.RequestID != "term-1" || captured.Decision != termination.DecisionApprove {
		t.Errorf("unexpected input %+v", captured)
	}

	if len(captured.Departments) != 1 || captured.Departments[0] != "IT" {
		t.Errorf("unexpected departments %v", captured.Departments)
	}

	if len(captured.Equipment) != 1 || captured.Equipment[0].Name != "Laptop" {
		t.Errorf("unexpected equipment %v", captured.Equipment)
	}

	var resp terminationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Status != "approved" || resp.DecidedBy != "hr-1" || resp.DecidedAt == "" {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestTerminationHandler_Decide_AlreadyDecided(t *testing.T) {
	t.Parallel()

	stub := &stubTerminationUseCase{
		decideFn: func(_ context.Context, _ termination.DecideRequestInput) (*termination.Request, error) {
			return nil, termination.ErrAlreadyDecided
		},
	}
	mux := newTestMux(NewTerminationHandler(stub).Register)

	req := httptest.NewRequest(http.MethodPost, "/v1/terminations/term-1/decision", strings.NewReader(`{"decision":"approve","deciderId":"hr-1"}`))
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rec.Code)
	}
}

func TestTerminationHandler_Reschedule(t *testing.T) {
	t.Parallel()

	var captured termination.RescheduleRequestInput
	stub := &stubTerminationUseCase{
		rescheduleFn: func(_ context.Context, in termination.RescheduleRequestInput) (*termination.Request, error) {
			captured = in
			updated := sampleRequest(in.RequestID)
			updated.TerminationDate = in.TerminationDate
			return updated, nil
		},
	}
	mux := newTestMux(NewTerminationHandler(stub).Register)

	req := httptest.NewRequest(http.MethodPut, "/v1/terminations/term-1/termination-date", strings.NewReader(`{"terminationDate":"2024-07-15"}`))
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.RequestID != "term-1" {
		t.Errorf("unexpected request id %s", captured.RequestID)
	}

	wantDate := time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)
	if !captured.TerminationDate.Equal(wantDate) {
		t.Errorf("expected date %v, got %v", wantDate, captured.TerminationDate)
	}
}

func TestTerminationHandler_Get_NotFound(t *testing.T) {
	t.Parallel()

	stub := &stubTerminationUseCase{
		getFn: func(_ context.Context, _ termination.GetRequestInput) (*termination.Request, error) {
			return nil, termination.ErrRequestNotFound
		},
	}
	mux := newTestMux(NewTerminationHandler(stub).Register)

	req := httptest.NewRequest(http.MethodGet, "/v1/terminations/missing", nil)
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

func TestTerminationHandler_ListByEmployee(t *testing.T) {
	t.Parallel()

	stub := &stubTerminationUseCase{
		listFn: func(_ context.Context, in termination.ListRequestsByEmployeeInput) ([]*termination.Request, error) {
			if in.EmployeeID != "emp-1" {
				t.Errorf("unexpected employee id %s", in.EmployeeID)
			}
			return []*termination.Request{sampleRequest("term-2"), sampleRequest("term-1")}, nil
		},
	}
	mux := newTestMux(NewTerminationHandler(stub).Register)

	req := httptest.NewRequest(http.MethodGet, "/v1/employees/emp-1/terminations", nil)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp []terminationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(resp) != 2 || resp[0].ID != "term-2" {
		t.Errorf("unexpected response %+v", resp)
	}
}
