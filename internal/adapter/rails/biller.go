package rails

import (
	"context"
	"net/url"

	"github.com/iho/payrails/internal/adapter/settlement"
)

// BillerRail is the HTTP client for the biller aggregation network.
type BillerRail struct {
	c *Client
}

// NewBillerRail creates a new BillerRail.
func NewBillerRail(c *Client) *BillerRail {
	return &BillerRail{c: c}
}

type validateResponse struct {
	Valid        bool   `json:"valid"`
	CustomerName string `json:"customer_name"`
	AmountDue    int64  `json:"amount_due"`
}

type payRequest struct {
	Reference   string `json:"reference"`
	BillerID    string `json:"biller_id"`
	CustomerRef string `json:"customer_ref"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
}

type payResponse struct {
	Success     bool           `json:"success"`
	BillerTxnID string         `json:"biller_txn_id"`
	Receipt     map[string]any `json:"receipt"`
}

// ValidateCustomer checks the customer reference with the biller.
func (r *BillerRail) ValidateCustomer(ctx context.Context, billerID, customerRef string) (settlement.CustomerValidation, error) {
	q := url.Values{}
	q.Set("biller_id", billerID)
	q.Set("customer_ref", customerRef)

	var resp validateResponse
	if err := r.c.getJSON(ctx, "/v1/validate?"+q.Encode(), &resp); err != nil {
		return settlement.CustomerValidation{}, err
	}

	return settlement.CustomerValidation{
		Valid:        resp.Valid,
		CustomerName: resp.CustomerName,
		AmountDue:    resp.AmountDue,
	}, nil
}

// Pay pays the bill. The aggregator dedupes on reference.
func (r *BillerRail) Pay(ctx context.Context, req settlement.BillPaymentRequest) (settlement.BillPaymentResult, error) {
	var resp payResponse
	err := r.c.postJSON(ctx, "/v1/pay", payRequest{
		Reference:   req.Reference,
		BillerID:    req.BillerID,
		CustomerRef: req.CustomerRef,
		Amount:      req.Amount,
		Currency:    req.Currency,
	}, &resp)
	if err != nil {
		return settlement.BillPaymentResult{}, err
	}

	return settlement.BillPaymentResult{
		Success:     resp.Success,
		BillerTxnID: resp.BillerTxnID,
		Receipt:     resp.Receipt,
	}, nil
}
