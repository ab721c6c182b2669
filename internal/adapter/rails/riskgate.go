package rails

import (
	"context"
	"fmt"

	"github.com/iho/payrails/internal/domain"
)

// RiskGateClient asks the external risk engine to score an intent. The
// verdict is taken as-is; scoring logic lives entirely on the other side.
type RiskGateClient struct {
	c *Client
}

// NewRiskGateClient creates a new RiskGateClient.
func NewRiskGateClient(c *Client) *RiskGateClient {
	return &RiskGateClient{c: c}
}

type scoreRequest struct {
	UserID          string `json:"user_id"`
	SourceAccountID string `json:"source_account_id"`
	Channel         string `json:"channel"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
	DestCountry     string `json:"dest_country,omitempty"`
	IPAddress       string `json:"ip_address,omitempty"`
	DeviceID        string `json:"device_id,omitempty"`
	UserAgent       string `json:"user_agent,omitempty"`
}

type scoreResponse struct {
	Score    int      `json:"score"`
	Level    string   `json:"level"`
	Decision string   `json:"decision"`
	Flags    []string `json:"flags"`
}

// Score submits the intent and its signals for scoring.
func (g *RiskGateClient) Score(ctx context.Context, intent domain.TransferIntent, signals domain.RiskSignals) (*domain.RiskVerdict, error) {
	var resp scoreResponse
	err := g.c.postJSON(ctx, "/v1/score", scoreRequest{
		UserID:          intent.UserID,
		SourceAccountID: intent.SourceAccountID,
		Channel:         string(intent.Channel),
		Amount:          intent.Amount,
		Currency:        intent.Currency,
		DestCountry:     intent.Destination.Country,
		IPAddress:       signals.IPAddress,
		DeviceID:        signals.DeviceID,
		UserAgent:       signals.UserAgent,
	}, &resp)
	if err != nil {
		return nil, err
	}

	decision := domain.RiskDecision(resp.Decision)
	switch decision {
	case domain.RiskDecisionApprove, domain.RiskDecisionReview, domain.RiskDecisionBlock:
	default:
		return nil, fmt.Errorf("risk gate returned unknown decision %q", resp.Decision)
	}

	return &domain.RiskVerdict{
		Score:    resp.Score,
		Level:    domain.RiskLevel(resp.Level),
		Decision: decision,
		Flags:    resp.Flags,
	}, nil
}
