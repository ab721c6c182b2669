package dto

import (
	"testing"
	"time"

	"github.com/iho/payrails/internal/domain"
)

func TestSubmitTransferRequest_ToIntent(t *testing.T) {
	req := &SubmitTransferRequest{
		Channel:         "interbank",
		UserID:          "user-1",
		SourceAccountID: "acc-1",
		Destination: DestinationRequest{
			AccountNumber: "0123456789",
			RoutingCode:   "058",
			HolderName:    "ADA OKAFOR",
		},
		Amount:     25_000,
		Currency:   "NGN",
		Narration:  "rent",
		Credential: "pin:1234",
	}

	signals := domain.RiskSignals{DeviceID: "dev-1", IPAddress: "10.0.0.1"}
	got := req.ToIntent("key-1", signals)

	if got.Channel != domain.ChannelInterbank {
		t.Fatalf("channel = %s, want interbank", got.Channel)
	}
	if got.IdempotencyKey != "key-1" {
		t.Fatalf("idempotency key = %q, want envelope value", got.IdempotencyKey)
	}
	if got.Signals != signals {
		t.Fatalf("signals = %+v, want envelope value", got.Signals)
	}
	if got.Destination.AccountNumber != "0123456789" || got.Destination.RoutingCode != "058" {
		t.Fatalf("destination = %+v, want beneficiary fields carried over", got.Destination)
	}
	if got.Amount != 25_000 || got.Currency != "NGN" || got.Credential != "pin:1234" {
		t.Fatalf("intent = %+v, want body fields carried over", got)
	}
}

func TestCreateScheduleRequest_ToUseCaseInput(t *testing.T) {
	first := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	end := first.AddDate(1, 0, 0)

	req := &CreateScheduleRequest{
		Template: SubmitTransferRequest{
			Channel:         "internal",
			UserID:          "user-1",
			SourceAccountID: "acc-1",
			Destination:     DestinationRequest{AccountID: "acc-2"},
			Amount:          10_000,
			Currency:        "NGN",
		},
		Frequency:        "monthly",
		FirstExecutionAt: first,
		MaxExecutions:    12,
		EndDate:          &end,
	}

	got := req.ToUseCaseInput()

	if got.Frequency != domain.FrequencyMonthly {
		t.Fatalf("frequency = %s, want monthly", got.Frequency)
	}
	if !got.FirstExecutionAt.Equal(first) || got.MaxExecutions != 12 || got.EndDate == nil || !got.EndDate.Equal(end) {
		t.Fatalf("schedule bounds not carried over: %+v", got)
	}
	if got.Template.IdempotencyKey != "" {
		t.Fatalf("template idempotency key = %q, want empty: keys are minted per occurrence", got.Template.IdempotencyKey)
	}
	if got.Template.Channel != domain.ChannelInternal || got.Template.Amount != 10_000 {
		t.Fatalf("template = %+v, want body fields carried over", got.Template)
	}
}

func TestUpdateScheduleRequest_ToPatch(t *testing.T) {
	amount := int64(15_000)
	narration := "updated"

	req := &UpdateScheduleRequest{Amount: &amount, Narration: &narration}
	got := req.ToPatch()

	if got.Amount == nil || *got.Amount != 15_000 {
		t.Fatalf("patch amount = %v, want 15000", got.Amount)
	}
	if got.Narration == nil || *got.Narration != "updated" {
		t.Fatalf("patch narration = %v, want updated", got.Narration)
	}
	if got.NextExecutionAt != nil || got.MaxExecutions != nil || got.EndDate != nil {
		t.Fatalf("absent fields must stay nil: %+v", got)
	}
}

func TestSettlementCallbackRequest_ToResult(t *testing.T) {
	req := &SettlementCallbackRequest{
		Reference:     "TRF-1",
		Status:        "completed",
		ExternalRef:   "IB-7",
		FailureReason: "",
		Receipt:       map[string]any{"rail": "interbank"},
	}

	got := req.ToResult()

	if string(got.Outcome) != "completed" {
		t.Fatalf("outcome = %s, want completed", got.Outcome)
	}
	if got.ExternalRef != "IB-7" || got.Receipt["rail"] != "interbank" {
		t.Fatalf("result = %+v, want callback fields carried over", got)
	}
}
