package rails

import (
	"context"
	"net/url"

	"github.com/iho/payrails/internal/adapter/settlement"
)

// InterbankRail is the HTTP client for the interbank settlement network.
type InterbankRail struct {
	c *Client
}

// NewInterbankRail creates a new InterbankRail.
func NewInterbankRail(c *Client) *InterbankRail {
	return &InterbankRail{c: c}
}

type enquiryResponse struct {
	Valid           bool   `json:"valid"`
	HolderName      string `json:"holder_name"`
	VerificationRef string `json:"verification_ref"`
}

type pushRequest struct {
	Reference       string `json:"reference"`
	VerificationRef string `json:"verification_ref"`
	AccountNumber   string `json:"account_number"`
	RoutingCode     string `json:"routing_code"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
	Narration       string `json:"narration,omitempty"`
}

type pushResponse struct {
	ResponseCode string `json:"response_code"`
	ExternalRef  string `json:"external_ref"`
}

// VerifyAccount runs a name enquiry against the beneficiary directory.
func (r *InterbankRail) VerifyAccount(ctx context.Context, accountNumber, routingCode string) (settlement.NameEnquiry, error) {
	q := url.Values{}
	q.Set("account_number", accountNumber)
	q.Set("routing_code", routingCode)

	var resp enquiryResponse
	if err := r.c.getJSON(ctx, "/v1/enquiry?"+q.Encode(), &resp); err != nil {
		return settlement.NameEnquiry{}, err
	}

	return settlement.NameEnquiry{
		Valid:           resp.Valid,
		HolderName:      resp.HolderName,
		VerificationRef: resp.VerificationRef,
	}, nil
}

// PushFunds sends the transfer to the network. The network dedupes on
// reference, so a replayed push cannot move money twice.
func (r *InterbankRail) PushFunds(ctx context.Context, req settlement.PushRequest) (settlement.PushResponse, error) {
	var resp pushResponse
	err := r.c.postJSON(ctx, "/v1/push", pushRequest{
		Reference:       req.Reference,
		VerificationRef: req.VerificationRef,
		AccountNumber:   req.AccountNumber,
		RoutingCode:     req.RoutingCode,
		Amount:          req.Amount,
		Currency:        req.Currency,
		Narration:       req.Narration,
	}, &resp)
	if err != nil {
		return settlement.PushResponse{}, err
	}

	return settlement.PushResponse{
		ResponseCode: resp.ResponseCode,
		ExternalRef:  resp.ExternalRef,
	}, nil
}

// QueryTransfer looks up the network-side state of a push.
func (r *InterbankRail) QueryTransfer(ctx context.Context, reference string) (settlement.PushResponse, error) {
	var resp pushResponse
	if err := r.c.getJSON(ctx, "/v1/transfers/"+url.PathEscape(reference), &resp); err != nil {
		return settlement.PushResponse{}, err
	}

	return settlement.PushResponse{
		ResponseCode: resp.ResponseCode,
		ExternalRef:  resp.ExternalRef,
	}, nil
}
