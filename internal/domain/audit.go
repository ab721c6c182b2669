package domain

import (
	"encoding/json"
	"time"
)

// AuditLog is an append-only trail entry for compliance and reconciliation.
type AuditLog struct {
	ID           string
	UserID       string
	Action       string
	ResourceType string
	ResourceID   string
	BeforeState  JSON
	AfterState   JSON
	Status       string
	ErrorMessage string
	CreatedAt    time.Time
}

// JSON is a type alias for JSON data
type JSON map[string]any

// Auditable actions
const (
	AuditActionTransferSubmit     = "transfer.submit"
	AuditActionTransferSettle     = "transfer.settle"
	AuditActionTransferCompensate = "transfer.compensate"
	AuditActionTransferCancel     = "transfer.cancel"
	AuditActionScheduleCreate     = "schedule.create"
	AuditActionScheduleUpdate     = "schedule.update"
	AuditActionScheduleCancel     = "schedule.cancel"
	AuditActionScheduleExecute    = "schedule.execute"
)

// Audit statuses
const (
	AuditStatusSuccess = "success"
	AuditStatusFailure = "failure"
)

// MarshalState converts a domain object to JSON for audit logging.
func MarshalState(v any) JSON {
	if v == nil {
		return nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return JSON{"error": "failed to marshal state"}
	}

	var result JSON
	if err := json.Unmarshal(data, &result); err != nil {
		return JSON{"error": "failed to unmarshal state"}
	}

	return result
}
