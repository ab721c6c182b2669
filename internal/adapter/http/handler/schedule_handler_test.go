package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/payrails/internal/adapter/http/dto"
	"github.com/iho/payrails/internal/domain"
	"github.com/iho/payrails/internal/usecase"
	"github.com/iho/payrails/internal/usecase/mocks"
)

func newScheduleRouter(t *testing.T) (http.Handler, *mocks.MockScheduleRepository) {
	t.Helper()

	scheduleRepo := mocks.NewMockScheduleRepository()
	uc := usecase.NewScheduleUseCase(scheduleRepo, mocks.NewMockAuditRepository(), &mocks.MockIDGenerator{}, domain.DefaultPolicies())

	h := NewScheduleHandler(uc)

	r := chi.NewRouter()
	r.Post("/api/v1/schedules", h.Create)
	r.Get("/api/v1/schedules", h.ListByUser)
	r.Get("/api/v1/schedules/{id}", h.Get)
	r.Patch("/api/v1/schedules/{id}", h.Update)
	r.Delete("/api/v1/schedules/{id}", h.Cancel)

	return r, scheduleRepo
}

func createScheduleBody(t *testing.T) *bytes.Reader {
	t.Helper()

	body, err := json.Marshal(dto.CreateScheduleRequest{
		Template: dto.SubmitTransferRequest{
			Channel:         "internal",
			UserID:          "user-1",
			SourceAccountID: "acc-1",
			Destination:     dto.DestinationRequest{AccountID: "acc-2"},
			Amount:          10_000,
			Currency:        "USD",
		},
		Frequency:        "monthly",
		FirstExecutionAt: time.Now().UTC().Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}

	return bytes.NewReader(body)
}

func TestScheduleHandler_Create_Success(t *testing.T) {
	router, _ := newScheduleRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/schedules", createScheduleBody(t))
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp dto.ScheduleResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.ID == "" || !resp.Active || resp.Frequency != "monthly" {
		t.Fatalf("response = %+v, want an active monthly schedule with an ID", resp)
	}
}

func TestScheduleHandler_Create_BadFrequency(t *testing.T) {
	router, _ := newScheduleRouter(t)

	body, _ := json.Marshal(dto.CreateScheduleRequest{
		Template: dto.SubmitTransferRequest{
			Channel:         "internal",
			UserID:          "user-1",
			SourceAccountID: "acc-1",
			Destination:     dto.DestinationRequest{AccountID: "acc-2"},
			Amount:          10_000,
			Currency:        "USD",
		},
		Frequency:        "fortnightly",
		FirstExecutionAt: time.Now().UTC().Add(time.Hour),
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/schedules", bytes.NewReader(body))
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestScheduleHandler_Get_NotFound(t *testing.T) {
	router, _ := newScheduleRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/schedules/sched-missing", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestScheduleHandler_ListByUser_RequiresUserID(t *testing.T) {
	router, _ := newScheduleRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/schedules", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestScheduleHandler_UpdateAndCancel(t *testing.T) {
	router, _ := newScheduleRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/schedules", createScheduleBody(t))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	var created dto.ScheduleResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	patch := `{"amount": 15000}`
	req = httptest.NewRequest(http.MethodPatch, "/api/v1/schedules/"+created.ID, bytes.NewBufferString(patch))
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var updated dto.ScheduleResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &updated); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if updated.Amount != 15_000 {
		t.Fatalf("amount = %d, want 15000", updated.Amount)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/schedules/"+created.ID, nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var cancelled dto.ScheduleResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &cancelled); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if cancelled.Active {
		t.Fatalf("expected schedule to be deactivated")
	}
}
