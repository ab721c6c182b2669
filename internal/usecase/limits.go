package usecase

import (
	"context"
	"time"

	"github.com/iho/payrails/internal/domain"
)

// limitStatuses are the record states that count against rolling limits:
// everything successful or still in flight. Failed, cancelled and reversed
// records release their slice of the window.
var limitStatuses = []domain.TransferStatus{
	domain.StatusDebited,
	domain.StatusSettling,
	domain.StatusCompleted,
}

// LimitLedger computes rolling daily/monthly spend per account and channel
// from historical transfer records.
type LimitLedger struct {
	transferRepo  TransferRepository
	exemptionRepo ExemptionRepository
	policies      domain.Policies
}

// NewLimitLedger creates a new LimitLedger.
func NewLimitLedger(transferRepo TransferRepository, exemptionRepo ExemptionRepository, policies domain.Policies) *LimitLedger {
	return &LimitLedger{
		transferRepo:  transferRepo,
		exemptionRepo: exemptionRepo,
		policies:      policies,
	}
}

// Check rejects the attempted amount if it would push the account past the
// channel's daily or monthly limit. The first transfer that would exceed a
// limit is rejected whole, never partially applied. Exempt accounts come from
// the explicit allowlist table only.
//
// Check runs inside the debit transaction, after the source account row is
// locked: the lock serializes concurrent submissions on the same account so
// two in-flight transfers cannot both read the same window sum and both pass.
func (l *LimitLedger) Check(ctx context.Context, tx Transaction, accountID string, channel domain.Channel, amount int64) error {
	if l.exemptionRepo != nil {
		exempt, err := l.exemptionRepo.IsExempt(ctx, accountID)
		if err != nil {
			return err
		}
		if exempt {
			return nil
		}
	}

	policy, ok := l.policies.Channels[channel]
	if !ok {
		return &domain.ValidationError{Field: "channel", Reason: "unknown channel"}
	}

	now := time.Now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	daySpent, err := l.transferRepo.SumAmounts(ctx, tx, accountID, channel, limitStatuses, dayStart)
	if err != nil {
		return err
	}

	if daySpent+amount > policy.DailyLimit {
		return &domain.LimitExceededError{
			Scope:     domain.LimitScopeDaily,
			Limit:     policy.DailyLimit,
			Attempted: daySpent + amount,
		}
	}

	monthSpent, err := l.transferRepo.SumAmounts(ctx, tx, accountID, channel, limitStatuses, monthStart)
	if err != nil {
		return err
	}

	if monthSpent+amount > policy.MonthlyLimit {
		return &domain.LimitExceededError{
			Scope:     domain.LimitScopeMonthly,
			Limit:     policy.MonthlyLimit,
			Attempted: monthSpent + amount,
		}
	}

	return nil
}
