package dto

import (
	"time"

	"github.com/iho/payrails/internal/domain"
)

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// TransferResponse represents a transfer record in API responses.
type TransferResponse struct {
	ID              string             `json:"id"`
	Reference       string             `json:"reference"`
	Channel         string             `json:"channel"`
	Status          string             `json:"status"`
	SourceAccountID string             `json:"source_account_id"`
	Destination     domain.Destination `json:"destination"`
	Amount          int64              `json:"amount"`
	Fee             int64              `json:"fee"`
	TotalAmount     int64              `json:"total_amount"`
	Currency        string             `json:"currency"`
	DestCurrency    string             `json:"dest_currency,omitempty"`
	FXRate          string             `json:"fx_rate,omitempty"`
	ConvertedAmount int64              `json:"converted_amount,omitempty"`
	VerificationRef string             `json:"verification_ref,omitempty"`
	ExternalRef     string             `json:"external_ref,omitempty"`
	FailureReason   string             `json:"failure_reason,omitempty"`
	Reversed        bool               `json:"reversed,omitempty"`
	ReviewFlagged   bool               `json:"review_flagged,omitempty"`
	ScheduleID      string             `json:"schedule_id,omitempty"`
	Narration       string             `json:"narration,omitempty"`
	Receipt         map[string]any     `json:"receipt,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// TransferFromDomain converts a domain record to a response.
func TransferFromDomain(rec *domain.TransferRecord) *TransferResponse {
	resp := &TransferResponse{
		ID:              rec.ID,
		Reference:       rec.Reference,
		Channel:         string(rec.Channel),
		Status:          string(rec.Status),
		SourceAccountID: rec.SourceAccountID,
		Destination:     rec.Destination,
		Amount:          rec.Amount,
		Fee:             rec.Fee,
		TotalAmount:     rec.TotalAmount,
		Currency:        rec.Currency,
		DestCurrency:    rec.DestCurrency,
		ConvertedAmount: rec.ConvertedAmount,
		VerificationRef: rec.VerificationRef,
		ExternalRef:     rec.ExternalRef,
		FailureReason:   rec.FailureReason,
		Reversed:        rec.Reversed,
		ReviewFlagged:   rec.ReviewFlagged,
		ScheduleID:      rec.ScheduleID,
		Narration:       rec.Narration,
		Receipt:         rec.Receipt,
		CreatedAt:       rec.CreatedAt,
		UpdatedAt:       rec.UpdatedAt,
	}

	if rec.FXRate != nil {
		resp.FXRate = rec.FXRate.String()
	}

	return resp
}

// TransfersFromDomain converts domain records to responses.
func TransfersFromDomain(recs []*domain.TransferRecord) []*TransferResponse {
	result := make([]*TransferResponse, len(recs))
	for i, rec := range recs {
		result[i] = TransferFromDomain(rec)
	}
	return result
}

// ScheduleResponse represents a schedule in API responses.
type ScheduleResponse struct {
	ID              string     `json:"id"`
	Channel         string     `json:"channel"`
	UserID          string     `json:"user_id"`
	SourceAccountID string     `json:"source_account_id"`
	Amount          int64      `json:"amount"`
	Currency        string     `json:"currency"`
	Narration       string     `json:"narration,omitempty"`
	Frequency       string     `json:"frequency"`
	NextExecutionAt time.Time  `json:"next_execution_at"`
	ExecutionCount  int        `json:"execution_count"`
	MaxExecutions   int        `json:"max_executions,omitempty"`
	EndDate         *time.Time `json:"end_date,omitempty"`
	Active          bool       `json:"active"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ScheduleFromDomain converts a domain schedule to a response.
func ScheduleFromDomain(s *domain.ScheduleDefinition) *ScheduleResponse {
	return &ScheduleResponse{
		ID:              s.ID,
		Channel:         string(s.Template.Channel),
		UserID:          s.Template.UserID,
		SourceAccountID: s.Template.SourceAccountID,
		Amount:          s.Template.Amount,
		Currency:        s.Template.Currency,
		Narration:       s.Template.Narration,
		Frequency:       string(s.Frequency),
		NextExecutionAt: s.NextExecutionAt,
		ExecutionCount:  s.ExecutionCount,
		MaxExecutions:   s.MaxExecutions,
		EndDate:         s.EndDate,
		Active:          s.Active,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// SchedulesFromDomain converts domain schedules to responses.
func SchedulesFromDomain(schedules []*domain.ScheduleDefinition) []*ScheduleResponse {
	result := make([]*ScheduleResponse, len(schedules))
	for i, s := range schedules {
		result[i] = ScheduleFromDomain(s)
	}
	return result
}
