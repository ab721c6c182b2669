package domain

import "time"

// Event types
const (
	EventTypeTransferSubmitted = "transfer.submitted"
	EventTypeTransferCompleted = "transfer.completed"
	EventTypeTransferFailed    = "transfer.failed"
	EventTypeTransferReversed  = "transfer.reversed"
	EventTypeTransferCancelled = "transfer.cancelled"
	EventTypeScheduleExecuted  = "schedule.executed"
)

// Aggregate types
const (
	AggregateTypeTransfer = "transfer"
	AggregateTypeSchedule = "schedule"
)

// OutboxEvent is a notification written in the same transaction as the state
// change it describes and delivered later by the notifier. Delivery failures
// never roll back a transfer.
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// TransferEventPayload builds the common payload for transfer lifecycle events.
func TransferEventPayload(rec *TransferRecord) map[string]any {
	payload := map[string]any{
		"transfer_id": rec.ID,
		"reference":   rec.Reference,
		"channel":     string(rec.Channel),
		"status":      string(rec.Status),
		"amount":      rec.Amount,
		"fee":         rec.Fee,
		"currency":    rec.Currency,
	}

	if rec.ExternalRef != "" {
		payload["external_ref"] = rec.ExternalRef
	}

	if rec.FailureReason != "" {
		payload["failure_reason"] = rec.FailureReason
	}

	if rec.Reversed {
		payload["reversed"] = true
	}

	return payload
}
