package settlement

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/payrails/internal/domain"
	"github.com/iho/payrails/internal/infrastructure/metrics"
	"github.com/iho/payrails/internal/usecase"
)

// Cross-border wire statuses. Only a settled wire completes; an accepted wire
// is still in flight.
const (
	wireStatusSettled  = "SETTLED"
	wireStatusAccepted = "ACCEPTED"
)

// CrossBorderAdapter wraps the international wire network: compliance
// pre-check, FX snapshot and composite fee at quote time, then an
// asynchronous wire message.
type CrossBorderAdapter struct {
	client   CrossBorderClient
	fxCache  usecase.Cache
	fees     domain.CrossBorderFees
	cacheTTL time.Duration
	metrics  *metrics.Metrics
}

// NewCrossBorderAdapter creates a new CrossBorderAdapter.
func NewCrossBorderAdapter(client CrossBorderClient, fxCache usecase.Cache, fees domain.CrossBorderFees, cacheTTL time.Duration, m *metrics.Metrics) *CrossBorderAdapter {
	if cacheTTL == 0 {
		cacheTTL = time.Minute
	}

	return &CrossBorderAdapter{
		client:   client,
		fxCache:  fxCache,
		fees:     fees,
		cacheTTL: cacheTTL,
		metrics:  m,
	}
}

func (a *CrossBorderAdapter) Channel() domain.Channel { return domain.ChannelCrossBorder }

// Prepare runs the compliance pre-check and snapshots the FX rate. A
// non-compliant intent blocks before any wire message is sent. The rate is
// fixed here so the amount debited is deterministic: settlement never
// re-fetches it.
func (a *CrossBorderAdapter) Prepare(ctx context.Context, intent domain.TransferIntent) (usecase.SettlementQuote, error) {
	compliance, err := a.client.ComplianceCheck(ctx, ComplianceRequest{
		SourceAccountID: intent.SourceAccountID,
		IBAN:            intent.Destination.IBAN,
		SWIFTCode:       intent.Destination.SWIFTCode,
		Country:         intent.Destination.Country,
		Amount:          intent.Amount,
		Currency:        intent.Currency,
	})
	if err != nil {
		return usecase.SettlementQuote{}, &domain.ExternalServiceError{Service: "compliance", Err: err}
	}

	if !compliance.Compliant {
		return usecase.SettlementQuote{
			Blocked:     true,
			BlockReason: compliance.Reason,
			BlockScore:  compliance.RiskScore,
		}, nil
	}

	destCurrency := intent.DestCurrency
	if destCurrency == "" {
		destCurrency = intent.Currency
	}

	rate, err := a.fxRate(ctx, intent.Currency, destCurrency)
	if err != nil {
		return usecase.SettlementQuote{}, &domain.ExternalServiceError{Service: "fx", Err: err}
	}

	return usecase.SettlementQuote{
		Fee:             a.fees.Fee(intent.Amount, intent.Destination.Country),
		FXRate:          &rate,
		ConvertedAmount: domain.ConvertAmount(intent.Amount, rate),
	}, nil
}

// Settle sends the wire message with the snapshotted conversion.
func (a *CrossBorderAdapter) Settle(ctx context.Context, rec *domain.TransferRecord) (usecase.SettlementResult, error) {
	start := time.Now()

	currency := rec.DestCurrency
	if currency == "" {
		currency = rec.Currency
	}

	resp, err := a.client.SendWire(ctx, WireRequest{
		Reference:  rec.Reference,
		IBAN:       rec.Destination.IBAN,
		SWIFTCode:  rec.Destination.SWIFTCode,
		Country:    rec.Destination.Country,
		HolderName: rec.Destination.HolderName,
		Amount:     rec.ConvertedAmount,
		Currency:   currency,
		Narration:  rec.Narration,
	})

	if a.metrics != nil {
		a.metrics.SettlementDuration.WithLabelValues(string(domain.ChannelCrossBorder)).Observe(time.Since(start).Seconds())
	}

	if err != nil {
		return usecase.SettlementResult{}, err
	}

	return a.mapResponse(resp), nil
}

// QueryStatus reconciles an in-flight wire against the network.
func (a *CrossBorderAdapter) QueryStatus(ctx context.Context, rec *domain.TransferRecord) (usecase.SettlementResult, error) {
	ref := rec.ExternalRef
	if ref == "" {
		ref = rec.Reference
	}

	resp, err := a.client.QueryWire(ctx, ref)
	if err != nil {
		return usecase.SettlementResult{}, err
	}

	return a.mapResponse(resp), nil
}

func (a *CrossBorderAdapter) mapResponse(resp WireResponse) usecase.SettlementResult {
	switch resp.Status {
	case wireStatusSettled:
		return usecase.SettlementResult{
			Outcome:     usecase.SettlementCompleted,
			ExternalRef: resp.MessageRef,
		}
	case wireStatusAccepted:
		return usecase.SettlementResult{
			Outcome:     usecase.SettlementPending,
			ExternalRef: resp.MessageRef,
		}
	default:
		return usecase.SettlementResult{
			Outcome:       usecase.SettlementFailed,
			ExternalRef:   resp.MessageRef,
			FailureReason: domain.FailureReasonRailRejected,
		}
	}
}

func (a *CrossBorderAdapter) fxRate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	if from == to {
		return decimal.NewFromInt(1), nil
	}

	key := fmt.Sprintf("fx:%s:%s", from, to)

	if a.fxCache != nil {
		if cached, err := a.fxCache.Get(ctx, key); err == nil && len(cached) > 0 {
			if rate, perr := decimal.NewFromString(string(cached)); perr == nil {
				return rate, nil
			}
		}
	}

	rate, err := a.client.FXRate(ctx, from, to)
	if err != nil {
		return decimal.Zero, err
	}

	if a.fxCache != nil {
		_ = a.fxCache.Set(ctx, key, []byte(rate.String()), a.cacheTTL)
	}

	return rate, nil
}
