package dto

import (
	"time"

	"github.com/iho/payrails/internal/domain"
	"github.com/iho/payrails/internal/usecase"
)

// DestinationRequest carries the channel-specific beneficiary fields.
type DestinationRequest struct {
	AccountID     string `json:"account_id,omitempty"`
	AccountNumber string `json:"account_number,omitempty"`
	RoutingCode   string `json:"routing_code,omitempty"`
	IBAN          string `json:"iban,omitempty"`
	SWIFTCode     string `json:"swift_code,omitempty"`
	Country       string `json:"country,omitempty"`
	BillerID      string `json:"biller_id,omitempty"`
	CustomerRef   string `json:"customer_ref,omitempty"`
	HolderName    string `json:"holder_name,omitempty"`
}

func (r DestinationRequest) toDomain() domain.Destination {
	return domain.Destination{
		AccountID:     r.AccountID,
		AccountNumber: r.AccountNumber,
		RoutingCode:   r.RoutingCode,
		IBAN:          r.IBAN,
		SWIFTCode:     r.SWIFTCode,
		Country:       r.Country,
		BillerID:      r.BillerID,
		CustomerRef:   r.CustomerRef,
		HolderName:    r.HolderName,
	}
}

// SubmitTransferRequest represents a request to submit a transfer.
type SubmitTransferRequest struct {
	Channel         string             `json:"channel"`
	UserID          string             `json:"user_id"`
	SourceAccountID string             `json:"source_account_id"`
	Destination     DestinationRequest `json:"destination"`
	Amount          int64              `json:"amount"`
	Currency        string             `json:"currency"`
	DestCurrency    string             `json:"dest_currency,omitempty"`
	Narration       string             `json:"narration,omitempty"`
	Credential      string             `json:"credential,omitempty"`
}

// ToIntent converts to a domain intent. The idempotency key and risk signals
// come from the request envelope, not the body.
func (r *SubmitTransferRequest) ToIntent(idempotencyKey string, signals domain.RiskSignals) domain.TransferIntent {
	return domain.TransferIntent{
		Channel:         domain.Channel(r.Channel),
		UserID:          r.UserID,
		SourceAccountID: r.SourceAccountID,
		Destination:     r.Destination.toDomain(),
		Amount:          r.Amount,
		Currency:        r.Currency,
		DestCurrency:    r.DestCurrency,
		Narration:       r.Narration,
		IdempotencyKey:  idempotencyKey,
		Credential:      r.Credential,
		Signals:         signals,
	}
}

// CancelTransferRequest represents a request to cancel a transfer.
type CancelTransferRequest struct {
	Reason string `json:"reason,omitempty"`
}

// CreateScheduleRequest represents a request to create a standing instruction.
type CreateScheduleRequest struct {
	Template         SubmitTransferRequest `json:"template"`
	Frequency        string                `json:"frequency"`
	FirstExecutionAt time.Time             `json:"first_execution_at"`
	MaxExecutions    int                   `json:"max_executions,omitempty"`
	EndDate          *time.Time            `json:"end_date,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateScheduleRequest) ToUseCaseInput() usecase.CreateScheduleInput {
	return usecase.CreateScheduleInput{
		Template:         r.Template.ToIntent("", domain.RiskSignals{}),
		Frequency:        domain.Frequency(r.Frequency),
		FirstExecutionAt: r.FirstExecutionAt,
		MaxExecutions:    r.MaxExecutions,
		EndDate:          r.EndDate,
	}
}

// UpdateScheduleRequest represents a partial schedule update. Absent fields
// keep their current values.
type UpdateScheduleRequest struct {
	Amount          *int64     `json:"amount,omitempty"`
	Narration       *string    `json:"narration,omitempty"`
	NextExecutionAt *time.Time `json:"next_execution_at,omitempty"`
	MaxExecutions   *int       `json:"max_executions,omitempty"`
	EndDate         *time.Time `json:"end_date,omitempty"`
}

// ToPatch converts to a use case patch.
func (r *UpdateScheduleRequest) ToPatch() usecase.SchedulePatch {
	return usecase.SchedulePatch{
		Amount:          r.Amount,
		Narration:       r.Narration,
		NextExecutionAt: r.NextExecutionAt,
		MaxExecutions:   r.MaxExecutions,
		EndDate:         r.EndDate,
	}
}

// SettlementCallbackRequest is what a rail posts back for an asynchronous
// settlement outcome.
type SettlementCallbackRequest struct {
	Reference     string         `json:"reference"`
	Status        string         `json:"status"`
	ExternalRef   string         `json:"external_ref,omitempty"`
	FailureReason string         `json:"failure_reason,omitempty"`
	Receipt       map[string]any `json:"receipt,omitempty"`
}

// ToResult converts the callback body to a settlement result.
func (r *SettlementCallbackRequest) ToResult() usecase.SettlementResult {
	return usecase.SettlementResult{
		Outcome:       usecase.SettlementOutcome(r.Status),
		ExternalRef:   r.ExternalRef,
		FailureReason: r.FailureReason,
		Receipt:       r.Receipt,
	}
}
