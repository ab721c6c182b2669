package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/iho/payrails/internal/domain"
	"github.com/iho/payrails/internal/usecase"
	"github.com/iho/payrails/internal/usecase/mocks"
)

func limitPolicies() domain.Policies {
	return domain.Policies{
		Channels: map[domain.Channel]domain.ChannelPolicy{
			domain.ChannelInterbank: {
				MinAmount:    100,
				MaxAmount:    1_000_000,
				DailyLimit:   100_000,
				MonthlyLimit: 500_000,
			},
		},
	}
}

func TestLimitLedger_Check(t *testing.T) {
	tests := []struct {
		name       string
		daySpent   int64
		monthSpent int64
		amount     int64
		wantScope  domain.LimitScope
	}{
		{
			name:   "within both windows",
			amount: 50_000,
		},
		{
			name:   "exactly at daily limit passes",
			amount: 100_000,
		},
		{
			name:      "one unit over daily limit fails",
			daySpent:  50_000,
			amount:    50_001,
			wantScope: domain.LimitScopeDaily,
		},
		{
			name:       "monthly window catches accumulated spend",
			daySpent:   10_000,
			monthSpent: 480_000,
			amount:     30_000,
			wantScope:  domain.LimitScopeMonthly,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transferRepo := mocks.NewMockTransferRepository()
			calls := 0
			transferRepo.SumAmountsFunc = func(ctx context.Context, tx usecase.Transaction, accountID string, channel domain.Channel, statuses []domain.TransferStatus, since time.Time) (int64, error) {
				// The day window is queried first, then the month window.
				calls++
				if calls == 1 {
					return tt.daySpent, nil
				}
				return tt.daySpent + tt.monthSpent, nil
			}

			ledger := usecase.NewLimitLedger(transferRepo, mocks.NewMockExemptionRepository(), limitPolicies())

			err := ledger.Check(context.Background(), &mocks.MockTransaction{}, "acc-1", domain.ChannelInterbank, tt.amount)

			if tt.wantScope == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var limitErr *domain.LimitExceededError
			if !errors.As(err, &limitErr) {
				t.Fatalf("expected LimitExceededError, got %v", err)
			}

			if limitErr.Scope != tt.wantScope {
				t.Errorf("scope = %s, want %s", limitErr.Scope, tt.wantScope)
			}
		})
	}
}

func TestLimitLedger_Check_UnknownChannel(t *testing.T) {
	ledger := usecase.NewLimitLedger(mocks.NewMockTransferRepository(), nil, limitPolicies())

	err := ledger.Check(context.Background(), &mocks.MockTransaction{}, "acc-1", domain.ChannelBiller, 1_000)

	if domain.KindOf(err) != domain.ErrorKindValidation {
		t.Fatalf("expected validation error for unconfigured channel, got %v", err)
	}
}

func TestLimitLedger_Check_ExemptAccount(t *testing.T) {
	transferRepo := mocks.NewMockTransferRepository()
	transferRepo.SumAmountsFunc = func(ctx context.Context, tx usecase.Transaction, accountID string, channel domain.Channel, statuses []domain.TransferStatus, since time.Time) (int64, error) {
		t.Error("exempt accounts must short-circuit before window sums")
		return 0, nil
	}

	exemptRepo := mocks.NewMockExemptionRepository()
	if err := exemptRepo.Add(context.Background(), "acc-1", "payroll disbursement"); err != nil {
		t.Fatalf("failed to add exemption: %v", err)
	}

	ledger := usecase.NewLimitLedger(transferRepo, exemptRepo, limitPolicies())

	if err := ledger.Check(context.Background(), &mocks.MockTransaction{}, "acc-1", domain.ChannelInterbank, 10_000_000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLimitLedger_Check_FailedTransfersReleaseWindow(t *testing.T) {
	transferRepo := mocks.NewMockTransferRepository()

	now := time.Now().UTC()
	seed := []*domain.TransferRecord{
		{ID: "t1", Reference: "r1", SourceAccountID: "acc-1", Channel: domain.ChannelInterbank, Status: domain.StatusCompleted, Amount: 60_000, CreatedAt: now},
		{ID: "t2", Reference: "r2", SourceAccountID: "acc-1", Channel: domain.ChannelInterbank, Status: domain.StatusFailed, Amount: 60_000, CreatedAt: now},
	}
	for _, rec := range seed {
		if err := transferRepo.Create(context.Background(), nil, rec); err != nil {
			t.Fatalf("failed to seed record: %v", err)
		}
	}

	ledger := usecase.NewLimitLedger(transferRepo, nil, limitPolicies())

	// 60k completed counts; the failed 60k does not, so 30k more fits under 100k.
	if err := ledger.Check(context.Background(), &mocks.MockTransaction{}, "acc-1", domain.ChannelInterbank, 30_000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := ledger.Check(context.Background(), &mocks.MockTransaction{}, "acc-1", domain.ChannelInterbank, 50_000)

	var limitErr *domain.LimitExceededError
	if !errors.As(err, &limitErr) {
		t.Fatalf("expected LimitExceededError, got %v", err)
	}
}
