package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Channel identifies the settlement rail a transfer moves over.
type Channel string

const (
	ChannelInternal    Channel = "internal"
	ChannelInterbank   Channel = "interbank"
	ChannelCrossBorder Channel = "cross_border"
	ChannelBiller      Channel = "biller"

	// ChannelScheduled marks an intent that arrived through the scheduling
	// API. It is never dispatchable: schedule templates carry one of the
	// concrete rails above.
	ChannelScheduled Channel = "scheduled"
)

// Dispatchable reports whether the channel maps to a settlement adapter.
func (c Channel) Dispatchable() bool {
	switch c {
	case ChannelInternal, ChannelInterbank, ChannelCrossBorder, ChannelBiller:
		return true
	}

	return false
}

// TransferStatus is the saga state of a TransferRecord.
type TransferStatus string

const (
	StatusCreated     TransferStatus = "created"
	StatusRiskChecked TransferStatus = "risk_checked"
	StatusDebited     TransferStatus = "debited"
	StatusSettling    TransferStatus = "settling"
	StatusCompleted   TransferStatus = "completed"
	StatusFailed      TransferStatus = "failed"
	StatusCancelled   TransferStatus = "cancelled"
)

// statusTransitions is the full transition relation. Statuses only move
// forward; anything absent here is illegal.
var statusTransitions = map[TransferStatus][]TransferStatus{
	StatusCreated:     {StatusRiskChecked, StatusFailed, StatusCancelled},
	StatusRiskChecked: {StatusDebited, StatusFailed},
	StatusDebited:     {StatusSettling, StatusCompleted, StatusFailed},
	StatusSettling:    {StatusCompleted, StatusFailed},
}

// CanTransitionTo reports whether moving from s to next is legal.
func (s TransferStatus) CanTransitionTo(next TransferStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

// Terminal reports whether s admits no further transitions.
func (s TransferStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusCancelled
}

// Failure reasons recorded on terminal failed records.
const (
	FailureReasonFraudBlocked     = "fraud_blocked"
	FailureReasonComplianceBlock  = "compliance_blocked"
	FailureReasonRailRejected     = "rail_rejected"
	FailureReasonRailUnavailable  = "rail_unavailable"
	FailureReasonRetriesExhausted = "retries_exhausted"
)

// Destination describes where money goes. Which fields are required depends
// on the channel; ValidateDestination enforces that.
type Destination struct {
	AccountID     string `json:"account_id,omitempty"`     // internal
	AccountNumber string `json:"account_number,omitempty"` // interbank
	RoutingCode   string `json:"routing_code,omitempty"`   // interbank
	IBAN          string `json:"iban,omitempty"`           // cross-border
	SWIFTCode     string `json:"swift_code,omitempty"`     // cross-border
	Country       string `json:"country,omitempty"`        // cross-border corridor
	BillerID      string `json:"biller_id,omitempty"`      // biller
	CustomerRef   string `json:"customer_ref,omitempty"`   // biller
	HolderName    string `json:"holder_name,omitempty"`
}

// RiskSignals are the contextual signals handed to the risk gate alongside
// the intent.
type RiskSignals struct {
	IPAddress  string
	DeviceID   string
	UserAgent  string
	OccurredAt time.Time
}

// TransferIntent is the immutable validated input to the orchestrator.
// Amounts are minor units (never floats).
type TransferIntent struct {
	Channel         Channel
	UserID          string
	SourceAccountID string
	Destination     Destination
	Amount          int64
	Currency        string
	DestCurrency    string // cross-border only; defaults to Currency
	Narration       string
	IdempotencyKey  string // generated when absent
	Credential      string // PIN/secret verified by the external auth collaborator
	ScheduleID      string // set when synthesized by the scheduler
	Signals         RiskSignals
}

// TransferRecord is the durable aggregate created once per intent. It is
// created and mutated only by the orchestrator.
type TransferRecord struct {
	ID              string
	Reference       string
	Channel         Channel
	Status          TransferStatus
	SourceAccountID string
	Destination     Destination
	Amount          int64
	Fee             int64
	TotalAmount     int64 // always Amount + Fee
	Currency        string
	DestCurrency    string
	FXRate          *decimal.Decimal // snapshotted at submission for cross-border
	ConvertedAmount int64            // destination minor units after conversion
	RiskVerdict     *RiskVerdict
	ReviewFlagged   bool
	VerificationRef string // rail-side pre-check reference (name enquiry etc.)
	ExternalRef     string
	FailureReason   string
	Reversed        bool
	RetryCount      int
	MaxRetries      int
	IdempotencyKey  string
	ScheduleID      string
	Narration       string
	Receipt         map[string]any // rail-specific receipt metadata
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TransitionTo moves the record to next, enforcing monotonicity.
func (r *TransferRecord) TransitionTo(next TransferStatus, at time.Time) error {
	if !r.Status.CanTransitionTo(next) {
		return &InvalidStateError{Operation: "transition to " + string(next), Current: r.Status}
	}

	r.Status = next
	r.UpdatedAt = at

	return nil
}

// Pending reports whether the record awaits an asynchronous rail outcome.
func (r *TransferRecord) Pending() bool {
	return r.Status == StatusSettling
}
