// Package settlement contains the channel-specific adapters that translate a
// generic transfer into each rail's external protocol, plus the client
// contracts those rails expose. Response-code mapping is fail-closed: any
// code outside the documented success set maps to failed, never to completed.
package settlement

import (
	"context"

	"github.com/shopspring/decimal"
)

// NameEnquiry is the interbank directory's answer to a beneficiary
// verification request.
type NameEnquiry struct {
	Valid           bool
	HolderName      string
	VerificationRef string
}

// PushRequest is a funds-push to the interbank rail. It carries the prior
// verification reference.
type PushRequest struct {
	Reference       string
	VerificationRef string
	AccountNumber   string
	RoutingCode     string
	Amount          int64
	Currency        string
	Narration       string
}

// PushResponse is the interbank rail's answer to a push or status query.
type PushResponse struct {
	ResponseCode string
	ExternalRef  string
}

// InterbankClient is the interbank directory and settlement network.
type InterbankClient interface {
	VerifyAccount(ctx context.Context, accountNumber, routingCode string) (NameEnquiry, error)
	PushFunds(ctx context.Context, req PushRequest) (PushResponse, error)
	QueryTransfer(ctx context.Context, reference string) (PushResponse, error)
}

// ComplianceRequest is the sanctions/AML pre-check input.
type ComplianceRequest struct {
	SourceAccountID string
	IBAN            string
	SWIFTCode       string
	Country         string
	Amount          int64
	Currency        string
}

// ComplianceResult is the compliance collaborator's verdict.
type ComplianceResult struct {
	Compliant bool
	RiskScore int
	Reason    string
}

// WireRequest is a cross-border wire message.
type WireRequest struct {
	Reference  string
	IBAN       string
	SWIFTCode  string
	Country    string
	HolderName string
	Amount     int64
	Currency   string
	Narration  string
}

// WireResponse is the wire network's answer to a send or status query.
type WireResponse struct {
	Status     string
	MessageRef string
}

// CrossBorderClient is the international correspondent-banking network plus
// its compliance and FX collaborators.
type CrossBorderClient interface {
	ComplianceCheck(ctx context.Context, req ComplianceRequest) (ComplianceResult, error)
	FXRate(ctx context.Context, from, to string) (decimal.Decimal, error)
	SendWire(ctx context.Context, req WireRequest) (WireResponse, error)
	QueryWire(ctx context.Context, messageRef string) (WireResponse, error)
}

// CustomerValidation is the biller network's answer to a customer-reference
// lookup.
type CustomerValidation struct {
	Valid        bool
	CustomerName string
	AmountDue    int64
}

// BillPaymentRequest is a bill payment instruction.
type BillPaymentRequest struct {
	Reference   string
	BillerID    string
	CustomerRef string
	Amount      int64
	Currency    string
}

// BillPaymentResult is the biller network's answer to a payment.
type BillPaymentResult struct {
	Success     bool
	BillerTxnID string
	Receipt     map[string]any
}

// BillerClient is the biller aggregation network.
type BillerClient interface {
	ValidateCustomer(ctx context.Context, billerID, customerRef string) (CustomerValidation, error)
	Pay(ctx context.Context, req BillPaymentRequest) (BillPaymentResult, error)
}
