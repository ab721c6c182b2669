package settlement

import (
	"context"
	"errors"
	"time"

	"github.com/iho/payrails/internal/domain"
	"github.com/iho/payrails/internal/usecase"
)

// InternalAdapter settles same-ledger moves. Both legs are under local
// control, so the credit happens in the same storage transaction as the
// source debit and no compensation path exists for this channel.
type InternalAdapter struct {
	accountRepo usecase.AccountRepository
	entryRepo   usecase.EntryRepository
	idGen       usecase.IDGenerator
	policy      domain.ChannelPolicy
}

// NewInternalAdapter creates a new InternalAdapter.
func NewInternalAdapter(accountRepo usecase.AccountRepository, entryRepo usecase.EntryRepository, idGen usecase.IDGenerator, policy domain.ChannelPolicy) *InternalAdapter {
	return &InternalAdapter{
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		idGen:       idGen,
		policy:      policy,
	}
}

func (a *InternalAdapter) Channel() domain.Channel { return domain.ChannelInternal }

// Prepare confirms the destination is under local control. Channel resolution
// upstream must not have selected this adapter otherwise.
func (a *InternalAdapter) Prepare(ctx context.Context, intent domain.TransferIntent) (usecase.SettlementQuote, error) {
	if intent.Destination.AccountID == intent.SourceAccountID {
		return usecase.SettlementQuote{}, &domain.ValidationError{Field: "destination.account_id", Reason: "cannot transfer to same account"}
	}

	dest, err := a.accountRepo.GetByID(ctx, intent.Destination.AccountID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return usecase.SettlementQuote{}, &domain.ValidationError{Field: "destination.account_id", Reason: "not under local control"}
		}

		return usecase.SettlementQuote{}, err
	}

	if !dest.Active {
		return usecase.SettlementQuote{}, &domain.ValidationError{Field: "destination.account_id", Reason: "account inactive"}
	}

	if dest.Currency != intent.Currency {
		return usecase.SettlementQuote{}, &domain.ValidationError{Field: "currency", Reason: "does not match destination account currency"}
	}

	return usecase.SettlementQuote{
		Fee:        a.policy.FixedFee,
		HolderName: dest.Name,
	}, nil
}

// SettleLocal credits the destination inside the caller's transaction.
func (a *InternalAdapter) SettleLocal(ctx context.Context, tx usecase.Transaction, rec *domain.TransferRecord) (usecase.SettlementResult, error) {
	dest, err := a.accountRepo.GetByIDForUpdate(ctx, tx, rec.Destination.AccountID)
	if err != nil {
		return usecase.SettlementResult{}, err
	}

	now := time.Now().UTC()
	newBalance := dest.ApplyCredit(rec.Amount)

	entry := &domain.LedgerEntry{
		ID:              a.idGen.Generate(),
		AccountID:       dest.ID,
		TransferID:      rec.ID,
		Type:            domain.EntryTypeCredit,
		Amount:          rec.Amount,
		PreviousBalance: dest.Balance,
		CurrentBalance:  newBalance,
		AccountVersion:  dest.Version + 1,
		CreatedAt:       now,
	}

	if err := a.entryRepo.Create(ctx, tx, entry); err != nil {
		return usecase.SettlementResult{}, err
	}

	if err := a.accountRepo.UpdateBalance(ctx, tx, dest.ID, newBalance, now); err != nil {
		return usecase.SettlementResult{}, err
	}

	return usecase.SettlementResult{
		Outcome:     usecase.SettlementCompleted,
		ExternalRef: rec.ID,
	}, nil
}

// Settle is never dispatched for the internal channel; settlement happened in
// SettleLocal. It reports the already-final outcome for uniformity.
func (a *InternalAdapter) Settle(ctx context.Context, rec *domain.TransferRecord) (usecase.SettlementResult, error) {
	return usecase.SettlementResult{Outcome: usecase.SettlementCompleted, ExternalRef: rec.ID}, nil
}

// QueryStatus reports the already-final outcome.
func (a *InternalAdapter) QueryStatus(ctx context.Context, rec *domain.TransferRecord) (usecase.SettlementResult, error) {
	return usecase.SettlementResult{Outcome: usecase.SettlementCompleted, ExternalRef: rec.ID}, nil
}
