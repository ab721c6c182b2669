package settlement_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/iho/payrails/internal/adapter/settlement"
	"github.com/iho/payrails/internal/adapter/settlement/mocks"
	"github.com/iho/payrails/internal/domain"
	"github.com/iho/payrails/internal/usecase"
)

func billerPolicy() domain.ChannelPolicy {
	return domain.ChannelPolicy{FixedFee: 10_000}
}

func billIntent() domain.TransferIntent {
	return domain.TransferIntent{
		Channel:         domain.ChannelBiller,
		SourceAccountID: "acc-1",
		Amount:          500_000,
		Currency:        "NGN",
		Destination: domain.Destination{
			BillerID:    "PHCN",
			CustomerRef: "meter-4417",
		},
	}
}

func TestBillerAdapter_Prepare_ResolvesCustomer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockBillerClient(ctrl)
	client.EXPECT().ValidateCustomer(gomock.Any(), "PHCN", "meter-4417").Return(settlement.CustomerValidation{
		Valid:        true,
		CustomerName: "ADAEZE OKAFOR",
	}, nil)

	adapter := settlement.NewBillerAdapter(client, billerPolicy(), nil)

	quote, err := adapter.Prepare(context.Background(), billIntent())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if quote.Fee != 10_000 {
		t.Errorf("fee = %d, want 10000", quote.Fee)
	}

	if quote.HolderName != "ADAEZE OKAFOR" {
		t.Errorf("holder name = %q, want ADAEZE OKAFOR", quote.HolderName)
	}
}

func TestBillerAdapter_Prepare_UnknownCustomerIsCallerError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockBillerClient(ctrl)
	client.EXPECT().ValidateCustomer(gomock.Any(), gomock.Any(), gomock.Any()).Return(settlement.CustomerValidation{Valid: false}, nil)

	adapter := settlement.NewBillerAdapter(client, billerPolicy(), nil)

	_, err := adapter.Prepare(context.Background(), billIntent())

	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}

	if verr.Field != "customer_ref" {
		t.Errorf("field = %q, want customer_ref", verr.Field)
	}
}

func TestBillerAdapter_Prepare_AggregatorDown(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockBillerClient(ctrl)
	client.EXPECT().ValidateCustomer(gomock.Any(), gomock.Any(), gomock.Any()).Return(settlement.CustomerValidation{}, errors.New("timeout"))

	adapter := settlement.NewBillerAdapter(client, billerPolicy(), nil)

	_, err := adapter.Prepare(context.Background(), billIntent())

	if domain.KindOf(err) != domain.ErrorKindExternalService {
		t.Fatalf("expected external service error, got %v", err)
	}
}

func TestBillerAdapter_Settle_CarriesReceipt(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockBillerClient(ctrl)
	client.EXPECT().Pay(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, req settlement.BillPaymentRequest) (settlement.BillPaymentResult, error) {
			if req.BillerID != "PHCN" || req.CustomerRef != "meter-4417" || req.Amount != 500_000 {
				t.Errorf("unexpected payment request: %+v", req)
			}
			return settlement.BillPaymentResult{
				Success:     true,
				BillerTxnID: "BT-991",
				Receipt:     map[string]any{"units": "120.5"},
			}, nil
		})

	adapter := settlement.NewBillerAdapter(client, billerPolicy(), nil)

	result, err := adapter.Settle(context.Background(), &domain.TransferRecord{
		Reference:   "TRF-1",
		Amount:      500_000,
		Currency:    "NGN",
		Destination: billIntent().Destination,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Outcome != usecase.SettlementCompleted {
		t.Errorf("outcome = %s, want completed", result.Outcome)
	}

	if result.ExternalRef != "BT-991" {
		t.Errorf("external ref = %q, want BT-991", result.ExternalRef)
	}

	if result.Receipt["biller_txn_id"] != "BT-991" || result.Receipt["units"] != "120.5" {
		t.Errorf("receipt = %v, want biller txn id and units preserved", result.Receipt)
	}
}

func TestBillerAdapter_Settle_DeclinedPayment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockBillerClient(ctrl)
	client.EXPECT().Pay(gomock.Any(), gomock.Any()).Return(settlement.BillPaymentResult{
		Success:     false,
		BillerTxnID: "BT-992",
	}, nil)

	adapter := settlement.NewBillerAdapter(client, billerPolicy(), nil)

	result, err := adapter.Settle(context.Background(), &domain.TransferRecord{Reference: "TRF-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Outcome != usecase.SettlementFailed {
		t.Errorf("outcome = %s, want failed", result.Outcome)
	}

	if result.FailureReason != domain.FailureReasonRailRejected {
		t.Errorf("failure reason = %q, want %q", result.FailureReason, domain.FailureReasonRailRejected)
	}
}

func TestBillerAdapter_Settle_TransportErrorPassesThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cause := errors.New("connection reset")

	client := mocks.NewMockBillerClient(ctrl)
	client.EXPECT().Pay(gomock.Any(), gomock.Any()).Return(settlement.BillPaymentResult{}, cause)

	adapter := settlement.NewBillerAdapter(client, billerPolicy(), nil)

	_, err := adapter.Settle(context.Background(), &domain.TransferRecord{Reference: "TRF-1"})

	if !errors.Is(err, cause) {
		t.Fatalf("expected raw transport error, got %v", err)
	}
}

func TestBillerAdapter_QueryStatus_ReplaysPayment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockBillerClient(ctrl)
	client.EXPECT().Pay(gomock.Any(), gomock.Any()).Return(settlement.BillPaymentResult{
		Success:     true,
		BillerTxnID: "BT-993",
	}, nil)

	adapter := settlement.NewBillerAdapter(client, billerPolicy(), nil)

	result, err := adapter.QueryStatus(context.Background(), &domain.TransferRecord{Reference: "TRF-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Outcome != usecase.SettlementCompleted {
		t.Errorf("outcome = %s, want completed", result.Outcome)
	}
}
