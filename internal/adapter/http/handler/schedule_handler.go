package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/payrails/internal/adapter/http/dto"
	"github.com/iho/payrails/internal/usecase"
)

// ScheduleHandler handles standing-instruction HTTP requests.
type ScheduleHandler struct {
	scheduleUC *usecase.ScheduleUseCase
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(scheduleUC *usecase.ScheduleUseCase) *ScheduleHandler {
	return &ScheduleHandler{scheduleUC: scheduleUC}
}

// Create creates a new schedule.
func (h *ScheduleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	schedule, err := h.scheduleUC.CreateSchedule(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create schedule", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.ScheduleFromDomain(schedule))
}

// Get retrieves a schedule by ID.
func (h *ScheduleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing schedule ID", "")
		return
	}

	schedule, err := h.scheduleUC.GetSchedule(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get schedule", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ScheduleFromDomain(schedule))
}

// ListByUser lists schedules owned by a user.
func (h *ScheduleHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing user_id", "")
		return
	}

	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	schedules, err := h.scheduleUC.ListSchedulesByUser(r.Context(), userID, limit, offset)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list schedules", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.SchedulesFromDomain(schedules))
}

// Update applies a partial update to an active schedule.
func (h *ScheduleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing schedule ID", "")
		return
	}

	var req dto.UpdateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	schedule, err := h.scheduleUC.UpdateSchedule(r.Context(), id, req.ToPatch())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to update schedule", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ScheduleFromDomain(schedule))
}

// Cancel deactivates a schedule.
func (h *ScheduleHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing schedule ID", "")
		return
	}

	schedule, err := h.scheduleUC.CancelSchedule(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to cancel schedule", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ScheduleFromDomain(schedule))
}
