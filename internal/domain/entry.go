package domain

import "time"

// EntryType distinguishes the ledger legs of a transfer saga.
type EntryType string

const (
	EntryTypeDebit          EntryType = "debit"
	EntryTypeCredit         EntryType = "credit"
	EntryTypeReversalCredit EntryType = "reversal_credit"
)

// LedgerEntry records one balance mutation. Amount is signed minor units:
// negative for debits, positive for credits. For a terminal failed/reversed
// transfer the entries on the source account net to zero.
type LedgerEntry struct {
	ID              string
	AccountID       string
	TransferID      string
	Type            EntryType
	Amount          int64
	PreviousBalance int64
	CurrentBalance  int64
	AccountVersion  int64
	CreatedAt       time.Time
}
