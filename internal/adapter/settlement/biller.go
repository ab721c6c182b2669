package settlement

import (
	"context"
	"time"

	"github.com/iho/payrails/internal/domain"
	"github.com/iho/payrails/internal/infrastructure/metrics"
	"github.com/iho/payrails/internal/usecase"
)

// BillerAdapter wraps the biller aggregation network. Payments are
// synchronous: the aggregator answers success or failure in one round trip.
type BillerAdapter struct {
	client  BillerClient
	policy  domain.ChannelPolicy
	metrics *metrics.Metrics
}

// NewBillerAdapter creates a new BillerAdapter.
func NewBillerAdapter(client BillerClient, policy domain.ChannelPolicy, m *metrics.Metrics) *BillerAdapter {
	return &BillerAdapter{client: client, policy: policy, metrics: m}
}

func (a *BillerAdapter) Channel() domain.Channel { return domain.ChannelBiller }

// Prepare validates the customer reference with the aggregator. An unknown
// reference is a caller error, not a rail failure.
func (a *BillerAdapter) Prepare(ctx context.Context, intent domain.TransferIntent) (usecase.SettlementQuote, error) {
	validation, err := a.client.ValidateCustomer(ctx, intent.Destination.BillerID, intent.Destination.CustomerRef)
	if err != nil {
		return usecase.SettlementQuote{}, &domain.ExternalServiceError{Service: "biller", Err: err}
	}

	if !validation.Valid {
		return usecase.SettlementQuote{}, &domain.ValidationError{Field: "customer_ref", Reason: "customer reference not recognized by biller"}
	}

	return usecase.SettlementQuote{
		Fee:        a.policy.FixedFee,
		HolderName: validation.CustomerName,
	}, nil
}

// Settle pays the bill. The aggregator's transaction ID and receipt payload
// are carried back on the record for the customer's proof of payment.
func (a *BillerAdapter) Settle(ctx context.Context, rec *domain.TransferRecord) (usecase.SettlementResult, error) {
	start := time.Now()

	result, err := a.client.Pay(ctx, BillPaymentRequest{
		Reference:   rec.Reference,
		BillerID:    rec.Destination.BillerID,
		CustomerRef: rec.Destination.CustomerRef,
		Amount:      rec.Amount,
		Currency:    rec.Currency,
	})

	if a.metrics != nil {
		a.metrics.SettlementDuration.WithLabelValues(string(domain.ChannelBiller)).Observe(time.Since(start).Seconds())
	}

	if err != nil {
		return usecase.SettlementResult{}, err
	}

	if !result.Success {
		return usecase.SettlementResult{
			Outcome:       usecase.SettlementFailed,
			ExternalRef:   result.BillerTxnID,
			FailureReason: domain.FailureReasonRailRejected,
		}, nil
	}

	receipt := result.Receipt
	if receipt == nil {
		receipt = map[string]any{}
	}
	receipt["biller_txn_id"] = result.BillerTxnID

	return usecase.SettlementResult{
		Outcome:     usecase.SettlementCompleted,
		ExternalRef: result.BillerTxnID,
		Receipt:     receipt,
	}, nil
}

// QueryStatus re-asks the aggregator for a payment we never got an answer
// for. The aggregator is idempotent on reference, so replaying the payment
// resolves the unknown state.
func (a *BillerAdapter) QueryStatus(ctx context.Context, rec *domain.TransferRecord) (usecase.SettlementResult, error) {
	return a.Settle(ctx, rec)
}
