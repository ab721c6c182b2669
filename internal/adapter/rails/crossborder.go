package rails

import (
	"context"
	"fmt"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/iho/payrails/internal/adapter/settlement"
)

// CrossBorderRail is the HTTP client for the international wire network and
// its compliance and FX collaborators.
type CrossBorderRail struct {
	c *Client
}

// NewCrossBorderRail creates a new CrossBorderRail.
func NewCrossBorderRail(c *Client) *CrossBorderRail {
	return &CrossBorderRail{c: c}
}

type complianceRequest struct {
	SourceAccountID string `json:"source_account_id"`
	IBAN            string `json:"iban"`
	SWIFTCode       string `json:"swift_code"`
	Country         string `json:"country"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
}

type complianceResponse struct {
	Compliant bool   `json:"compliant"`
	RiskScore int    `json:"risk_score"`
	Reason    string `json:"reason"`
}

type rateResponse struct {
	Rate string `json:"rate"`
}

type wireRequest struct {
	Reference  string `json:"reference"`
	IBAN       string `json:"iban"`
	SWIFTCode  string `json:"swift_code"`
	Country    string `json:"country"`
	HolderName string `json:"holder_name,omitempty"`
	Amount     int64  `json:"amount"`
	Currency   string `json:"currency"`
	Narration  string `json:"narration,omitempty"`
}

type wireResponse struct {
	Status     string `json:"status"`
	MessageRef string `json:"message_ref"`
}

// ComplianceCheck runs the sanctions/AML pre-check.
func (r *CrossBorderRail) ComplianceCheck(ctx context.Context, req settlement.ComplianceRequest) (settlement.ComplianceResult, error) {
	var resp complianceResponse
	err := r.c.postJSON(ctx, "/v1/compliance", complianceRequest{
		SourceAccountID: req.SourceAccountID,
		IBAN:            req.IBAN,
		SWIFTCode:       req.SWIFTCode,
		Country:         req.Country,
		Amount:          req.Amount,
		Currency:        req.Currency,
	}, &resp)
	if err != nil {
		return settlement.ComplianceResult{}, err
	}

	return settlement.ComplianceResult{
		Compliant: resp.Compliant,
		RiskScore: resp.RiskScore,
		Reason:    resp.Reason,
	}, nil
}

// FXRate fetches the current conversion rate. Rates come over the wire as
// strings to keep them exact.
func (r *CrossBorderRail) FXRate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	q := url.Values{}
	q.Set("from", from)
	q.Set("to", to)

	var resp rateResponse
	if err := r.c.getJSON(ctx, "/v1/rates?"+q.Encode(), &resp); err != nil {
		return decimal.Zero, err
	}

	rate, err := decimal.NewFromString(resp.Rate)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse fx rate %q: %w", resp.Rate, err)
	}
	if !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("non-positive fx rate %s for %s/%s", resp.Rate, from, to)
	}

	return rate, nil
}

// SendWire submits the wire message. The network dedupes on reference.
func (r *CrossBorderRail) SendWire(ctx context.Context, req settlement.WireRequest) (settlement.WireResponse, error) {
	var resp wireResponse
	err := r.c.postJSON(ctx, "/v1/wires", wireRequest{
		Reference:  req.Reference,
		IBAN:       req.IBAN,
		SWIFTCode:  req.SWIFTCode,
		Country:    req.Country,
		HolderName: req.HolderName,
		Amount:     req.Amount,
		Currency:   req.Currency,
		Narration:  req.Narration,
	}, &resp)
	if err != nil {
		return settlement.WireResponse{}, err
	}

	return settlement.WireResponse{
		Status:     resp.Status,
		MessageRef: resp.MessageRef,
	}, nil
}

// QueryWire looks up the network-side state of a wire.
func (r *CrossBorderRail) QueryWire(ctx context.Context, messageRef string) (settlement.WireResponse, error) {
	var resp wireResponse
	if err := r.c.getJSON(ctx, "/v1/wires/"+url.PathEscape(messageRef), &resp); err != nil {
		return settlement.WireResponse{}, err
	}

	return settlement.WireResponse{
		Status:     resp.Status,
		MessageRef: resp.MessageRef,
	}, nil
}
