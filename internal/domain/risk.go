package domain

// RiskDecision is the gate's verdict on an intent.
type RiskDecision string

const (
	RiskDecisionApprove RiskDecision = "approve"
	RiskDecisionReview  RiskDecision = "review"
	RiskDecisionBlock   RiskDecision = "block"
)

// RiskLevel buckets the numeric score.
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "low"
	RiskLevelMedium RiskLevel = "medium"
	RiskLevelHigh   RiskLevel = "high"
)

// RiskVerdict is attached to a TransferRecord at gate time. It is an audit
// fact: never recomputed after the decision is made.
type RiskVerdict struct {
	Score    int          `json:"score"`
	Level    RiskLevel    `json:"level"`
	Decision RiskDecision `json:"decision"`
	Flags    []string     `json:"flags,omitempty"`
}
