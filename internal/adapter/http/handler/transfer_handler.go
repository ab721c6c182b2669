package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/payrails/internal/adapter/http/dto"
	"github.com/iho/payrails/internal/domain"
	"github.com/iho/payrails/internal/usecase"
)

// TransferHandler handles transfer-related HTTP requests.
type TransferHandler struct {
	orchestrator *usecase.Orchestrator
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(orchestrator *usecase.Orchestrator) *TransferHandler {
	return &TransferHandler{orchestrator: orchestrator}
}

// Submit submits a new transfer.
func (h *TransferHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req dto.SubmitTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	intent := req.ToIntent(r.Header.Get("Idempotency-Key"), domain.RiskSignals{
		IPAddress:  r.RemoteAddr,
		DeviceID:   r.Header.Get("X-Device-ID"),
		UserAgent:  r.UserAgent(),
		OccurredAt: time.Now().UTC(),
	})

	rec, err := h.orchestrator.Submit(r.Context(), intent)
	if err != nil {
		status := mapDomainError(err)
		// A blocked or refused submission still yields a durable record;
		// return it so the caller can see the reference and reason.
		if rec != nil {
			writeJSON(w, status, dto.TransferFromDomain(rec))
			return
		}
		writeError(w, status, "failed to submit transfer", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.TransferFromDomain(rec))
}

// Get retrieves a transfer by reference, refreshing pending records against
// the rail.
func (h *TransferHandler) Get(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, "reference")
	if reference == "" {
		writeError(w, http.StatusBadRequest, "missing transfer reference", "")
		return
	}

	rec, err := h.orchestrator.GetStatus(r.Context(), reference)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get transfer", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.TransferFromDomain(rec))
}

// Cancel cancels a transfer that has not yet been debited.
func (h *TransferHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, "reference")
	if reference == "" {
		writeError(w, http.StatusBadRequest, "missing transfer reference", "")
		return
	}

	var req dto.CancelTransferRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
			return
		}
	}

	rec, err := h.orchestrator.Cancel(r.Context(), reference, req.Reason)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to cancel transfer", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.TransferFromDomain(rec))
}

// ListByAccount lists an account's transfer history.
func (h *TransferHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	filter := usecase.HistoryFilter{
		Channel: domain.Channel(r.URL.Query().Get("channel")),
		Status:  domain.TransferStatus(r.URL.Query().Get("status")),
		Limit:   parseIntQuery(r, "limit", 20),
		Offset:  parseIntQuery(r, "offset", 0),
	}

	if from := r.URL.Query().Get("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid from timestamp", err.Error())
			return
		}
		filter.From = &t
	}
	if to := r.URL.Query().Get("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid to timestamp", err.Error())
			return
		}
		filter.To = &t
	}

	recs, err := h.orchestrator.ListHistory(r.Context(), accountID, filter)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list transfers", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.TransfersFromDomain(recs))
}
