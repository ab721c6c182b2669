package settlement

import (
	"context"
	"time"

	"github.com/iho/payrails/internal/domain"
	"github.com/iho/payrails/internal/infrastructure/metrics"
	"github.com/iho/payrails/internal/usecase"
)

// Interbank rail response codes. Anything outside this set is a failure.
const (
	interbankCodeSuccess = "00"
	interbankCodePending = "09"
)

// InterbankAdapter wraps the domestic interbank push rail: beneficiary name
// verification followed by an asynchronous funds push.
type InterbankAdapter struct {
	client  InterbankClient
	policy  domain.ChannelPolicy
	metrics *metrics.Metrics
}

// NewInterbankAdapter creates a new InterbankAdapter.
func NewInterbankAdapter(client InterbankClient, policy domain.ChannelPolicy, m *metrics.Metrics) *InterbankAdapter {
	return &InterbankAdapter{client: client, policy: policy, metrics: m}
}

func (a *InterbankAdapter) Channel() domain.Channel { return domain.ChannelInterbank }

// Prepare verifies the beneficiary against the interbank directory. An
// invalid beneficiary rejects the transfer before any debit.
func (a *InterbankAdapter) Prepare(ctx context.Context, intent domain.TransferIntent) (usecase.SettlementQuote, error) {
	enquiry, err := a.client.VerifyAccount(ctx, intent.Destination.AccountNumber, intent.Destination.RoutingCode)
	if err != nil {
		return usecase.SettlementQuote{}, &domain.ExternalServiceError{Service: "interbank", Err: err}
	}

	if !enquiry.Valid {
		return usecase.SettlementQuote{}, &domain.ValidationError{
			Field:  "destination.account_number",
			Reason: "beneficiary verification failed",
		}
	}

	return usecase.SettlementQuote{
		Fee:             a.policy.FixedFee,
		VerificationRef: enquiry.VerificationRef,
		HolderName:      enquiry.HolderName,
	}, nil
}

// Settle pushes funds over the rail. A transport error is returned as-is for
// the orchestrator's bounded retry; a well-formed response is mapped
// fail-closed.
func (a *InterbankAdapter) Settle(ctx context.Context, rec *domain.TransferRecord) (usecase.SettlementResult, error) {
	start := time.Now()

	resp, err := a.client.PushFunds(ctx, PushRequest{
		Reference:       rec.Reference,
		VerificationRef: rec.VerificationRef,
		AccountNumber:   rec.Destination.AccountNumber,
		RoutingCode:     rec.Destination.RoutingCode,
		Amount:          rec.Amount,
		Currency:        rec.Currency,
		Narration:       rec.Narration,
	})

	if a.metrics != nil {
		a.metrics.SettlementDuration.WithLabelValues(string(domain.ChannelInterbank)).Observe(time.Since(start).Seconds())
	}

	if err != nil {
		return usecase.SettlementResult{}, err
	}

	return a.mapResponse(resp), nil
}

// QueryStatus reconciles an in-flight push against the rail.
func (a *InterbankAdapter) QueryStatus(ctx context.Context, rec *domain.TransferRecord) (usecase.SettlementResult, error) {
	ref := rec.ExternalRef
	if ref == "" {
		ref = rec.Reference
	}

	resp, err := a.client.QueryTransfer(ctx, ref)
	if err != nil {
		return usecase.SettlementResult{}, err
	}

	return a.mapResponse(resp), nil
}

func (a *InterbankAdapter) mapResponse(resp PushResponse) usecase.SettlementResult {
	switch resp.ResponseCode {
	case interbankCodeSuccess:
		return usecase.SettlementResult{
			Outcome:     usecase.SettlementCompleted,
			ExternalRef: resp.ExternalRef,
		}
	case interbankCodePending:
		return usecase.SettlementResult{
			Outcome:     usecase.SettlementPending,
			ExternalRef: resp.ExternalRef,
		}
	default:
		return usecase.SettlementResult{
			Outcome:       usecase.SettlementFailed,
			ExternalRef:   resp.ExternalRef,
			FailureReason: domain.FailureReasonRailRejected,
		}
	}
}
