package settlement_test

import (
	"context"
	"errors"
	"testing"

	"github.com/iho/payrails/internal/adapter/settlement"
	"github.com/iho/payrails/internal/domain"
	"github.com/iho/payrails/internal/usecase"
	usecasemocks "github.com/iho/payrails/internal/usecase/mocks"
)

func newInternalAdapter(t *testing.T) (*settlement.InternalAdapter, *usecasemocks.MockAccountRepository, *usecasemocks.MockEntryRepository) {
	t.Helper()

	accountRepo := usecasemocks.NewMockAccountRepository()
	entryRepo := usecasemocks.NewMockEntryRepository()
	adapter := settlement.NewInternalAdapter(accountRepo, entryRepo, &usecasemocks.MockIDGenerator{}, domain.ChannelPolicy{FixedFee: 0})

	return adapter, accountRepo, entryRepo
}

func seedAccount(t *testing.T, repo *usecasemocks.MockAccountRepository, id string, balance int64) *domain.Account {
	t.Helper()

	acc := &domain.Account{
		ID:       id,
		UserID:   "user-1",
		Name:     "EBUKA NWOSU",
		Currency: "NGN",
		Balance:  balance,
		Active:   true,
	}
	if err := repo.Create(context.Background(), acc); err != nil {
		t.Fatalf("failed to seed account: %v", err)
	}

	return acc
}

func TestInternalAdapter_Prepare(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*domain.TransferIntent)
		setup     func(t *testing.T, repo *usecasemocks.MockAccountRepository)
		wantField string
	}{
		{
			name: "active same-currency destination resolves",
			setup: func(t *testing.T, repo *usecasemocks.MockAccountRepository) {
				seedAccount(t, repo, "acc-2", 0)
			},
		},
		{
			name: "same account rejected",
			mutate: func(intent *domain.TransferIntent) {
				intent.Destination.AccountID = "acc-1"
			},
			wantField: "destination.account_id",
		},
		{
			name:      "unknown destination rejected",
			wantField: "destination.account_id",
		},
		{
			name: "inactive destination rejected",
			setup: func(t *testing.T, repo *usecasemocks.MockAccountRepository) {
				acc := seedAccount(t, repo, "acc-2", 0)
				acc.Active = false
			},
			wantField: "destination.account_id",
		},
		{
			name: "currency mismatch rejected",
			setup: func(t *testing.T, repo *usecasemocks.MockAccountRepository) {
				acc := seedAccount(t, repo, "acc-2", 0)
				acc.Currency = "USD"
			},
			wantField: "currency",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter, accountRepo, _ := newInternalAdapter(t)
			if tt.setup != nil {
				tt.setup(t, accountRepo)
			}

			intent := domain.TransferIntent{
				Channel:         domain.ChannelInternal,
				SourceAccountID: "acc-1",
				Amount:          10_000,
				Currency:        "NGN",
				Destination:     domain.Destination{AccountID: "acc-2"},
			}
			if tt.mutate != nil {
				tt.mutate(&intent)
			}

			quote, err := adapter.Prepare(context.Background(), intent)

			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if quote.HolderName != "EBUKA NWOSU" {
					t.Errorf("holder name = %q, want destination account name", quote.HolderName)
				}
				return
			}

			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}

func TestInternalAdapter_SettleLocal_CreditsDestination(t *testing.T) {
	adapter, accountRepo, entryRepo := newInternalAdapter(t)
	dest := seedAccount(t, accountRepo, "acc-2", 40_000)

	rec := &domain.TransferRecord{
		ID:          "tr-1",
		Reference:   "TRF-1",
		Amount:      25_000,
		Currency:    "NGN",
		Destination: domain.Destination{AccountID: "acc-2"},
	}

	result, err := adapter.SettleLocal(context.Background(), &usecasemocks.MockTransaction{}, rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Outcome != usecase.SettlementCompleted {
		t.Errorf("outcome = %s, want completed", result.Outcome)
	}

	if dest.Balance != 65_000 {
		t.Errorf("destination balance = %d, want 65000", dest.Balance)
	}

	entries := entryRepo.Entries()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}

	entry := entries[0]
	if entry.Type != domain.EntryTypeCredit || entry.Amount != 25_000 {
		t.Errorf("entry = %s %d, want credit 25000", entry.Type, entry.Amount)
	}
	if entry.PreviousBalance != 40_000 || entry.CurrentBalance != 65_000 {
		t.Errorf("entry balances = %d -> %d, want 40000 -> 65000", entry.PreviousBalance, entry.CurrentBalance)
	}
	if entry.TransferID != "tr-1" {
		t.Errorf("entry transfer id = %q, want tr-1", entry.TransferID)
	}
}

func TestInternalAdapter_SettleLocal_DestinationVanished(t *testing.T) {
	adapter, _, entryRepo := newInternalAdapter(t)

	rec := &domain.TransferRecord{
		ID:          "tr-1",
		Amount:      25_000,
		Destination: domain.Destination{AccountID: "acc-missing"},
	}

	_, err := adapter.SettleLocal(context.Background(), &usecasemocks.MockTransaction{}, rec)

	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}

	if len(entryRepo.Entries()) != 0 {
		t.Errorf("no entry should be written when the credit leg fails")
	}
}

func TestInternalAdapter_TerminalQueries(t *testing.T) {
	adapter, _, _ := newInternalAdapter(t)
	rec := &domain.TransferRecord{ID: "tr-1"}

	for _, call := range []func(context.Context, *domain.TransferRecord) (usecase.SettlementResult, error){adapter.Settle, adapter.QueryStatus} {
		result, err := call(context.Background(), rec)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Outcome != usecase.SettlementCompleted {
			t.Errorf("outcome = %s, want completed", result.Outcome)
		}
	}
}
