package handler

import (
	"encoding/json"
	"net/http"

	"github.com/iho/payrails/internal/adapter/http/dto"
	"github.com/iho/payrails/internal/usecase"
)

// CallbackHandler receives asynchronous settlement outcomes from the rails.
// Replayed callbacks are acknowledged without effect.
type CallbackHandler struct {
	orchestrator *usecase.Orchestrator
}

// NewCallbackHandler creates a new CallbackHandler.
func NewCallbackHandler(orchestrator *usecase.Orchestrator) *CallbackHandler {
	return &CallbackHandler{orchestrator: orchestrator}
}

// Settlement applies a rail's settlement outcome to the referenced transfer.
func (h *CallbackHandler) Settlement(w http.ResponseWriter, r *http.Request) {
	var req dto.SettlementCallbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if req.Reference == "" {
		writeError(w, http.StatusBadRequest, "missing reference", "")
		return
	}

	switch usecase.SettlementOutcome(req.Status) {
	case usecase.SettlementCompleted, usecase.SettlementPending, usecase.SettlementFailed:
	default:
		writeError(w, http.StatusBadRequest, "unknown status", req.Status)
		return
	}

	rec, err := h.orchestrator.HandleSettlementResult(r.Context(), req.Reference, req.ToResult())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to apply settlement result", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.TransferFromDomain(rec))
}
