package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/payrails/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Account, error)
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []string) ([]*domain.Account, error)
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance int64, updatedAt time.Time) error
}

// HistoryFilter narrows transfer history queries.
type HistoryFilter struct {
	Channel domain.Channel
	Status  domain.TransferStatus
	From    *time.Time
	To      *time.Time
	Limit   int
	Offset  int
}

// TransferRepository defines data access for transfer records.
type TransferRepository interface {
	Create(ctx context.Context, tx Transaction, rec *domain.TransferRecord) error
	Update(ctx context.Context, tx Transaction, rec *domain.TransferRecord) error
	GetByID(ctx context.Context, id string) (*domain.TransferRecord, error)
	GetByReference(ctx context.Context, reference string) (*domain.TransferRecord, error)
	GetByReferenceForUpdate(ctx context.Context, tx Transaction, reference string) (*domain.TransferRecord, error)
	GetByIdempotencyKey(ctx context.Context, key string) (*domain.TransferRecord, error)
	ListByAccount(ctx context.Context, accountID string, filter HistoryFilter) ([]*domain.TransferRecord, error)
	ListPending(ctx context.Context, olderThan time.Time, limit int) ([]*domain.TransferRecord, error)
	// SumAmounts runs on tx when one is given, so the rolling-limit check
	// reads the window inside the same transaction that holds the account lock.
	SumAmounts(ctx context.Context, tx Transaction, accountID string, channel domain.Channel, statuses []domain.TransferStatus, since time.Time) (int64, error)
}

// EntryRepository defines data access for ledger entries.
type EntryRepository interface {
	Create(ctx context.Context, tx Transaction, entry *domain.LedgerEntry) error
	GetByTransfer(ctx context.Context, transferID string) ([]*domain.LedgerEntry, error)
}

// ScheduleRepository defines data access for schedule definitions.
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *domain.ScheduleDefinition) error
	GetByID(ctx context.Context, id string) (*domain.ScheduleDefinition, error)
	Update(ctx context.Context, schedule *domain.ScheduleDefinition) error
	// ClaimDue atomically claims schedules due at now for claimTTL, so an
	// overlapping tick cannot double-dispatch the same row.
	ClaimDue(ctx context.Context, now time.Time, claimTTL time.Duration, limit int) ([]*domain.ScheduleDefinition, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.ScheduleDefinition, error)
}

// ExemptionRepository is the explicit, auditable allowlist of accounts exempt
// from rolling-limit checks.
type ExemptionRepository interface {
	IsExempt(ctx context.Context, accountID string) (bool, error)
	Add(ctx context.Context, accountID, reason string) error
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// AuditRepository defines data access for audit logs.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	CreateTx(ctx context.Context, tx Transaction, log *domain.AuditLog) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique entity IDs.
type IDGenerator interface {
	Generate() string
}

// ReferenceGenerator produces globally unique, time-ordered, tamper-evident
// transaction references.
type ReferenceGenerator interface {
	NewReference() string
}

// RiskGate is the external decision oracle. The verdict is consumed as an
// audit fact and never recomputed.
type RiskGate interface {
	Score(ctx context.Context, intent domain.TransferIntent, signals domain.RiskSignals) (*domain.RiskVerdict, error)
}

// CredentialVerifier is the external auth/PIN collaborator.
type CredentialVerifier interface {
	Verify(ctx context.Context, userID, secret string) (bool, error)
}

// SettlementOutcome is the uniform result shape across synchronous and
// asynchronous settlement channels.
type SettlementOutcome string

const (
	SettlementCompleted SettlementOutcome = "completed"
	SettlementPending   SettlementOutcome = "pending"
	SettlementFailed    SettlementOutcome = "failed"
)

// SettlementResult is what a settlement adapter (or a rail callback) reports
// for one dispatch attempt.
type SettlementResult struct {
	Outcome       SettlementOutcome
	ExternalRef   string
	FailureReason string
	Receipt       map[string]any
}

// SettlementQuote is the pre-debit outcome of an adapter's Prepare step: the
// fee to charge, an FX snapshot where applicable, and any rail-side
// verification reference. Blocked quotes abort before any debit.
type SettlementQuote struct {
	Fee             int64
	FXRate          *decimal.Decimal
	ConvertedAmount int64
	VerificationRef string
	HolderName      string
	Blocked         bool
	BlockReason     string
	BlockScore      int
}

// SettlementAdapter translates a generic transfer into one channel's external
// protocol. Prepare runs before the debit and must have no monetary effects;
// Settle runs after the local debit has committed.
type SettlementAdapter interface {
	Channel() domain.Channel
	Prepare(ctx context.Context, intent domain.TransferIntent) (SettlementQuote, error)
	Settle(ctx context.Context, rec *domain.TransferRecord) (SettlementResult, error)
	QueryStatus(ctx context.Context, rec *domain.TransferRecord) (SettlementResult, error)
}

// LocalSettler is implemented by adapters that settle inside the same storage
// transaction as the source debit (the internal ledger move).
type LocalSettler interface {
	SettleLocal(ctx context.Context, tx Transaction, rec *domain.TransferRecord) (SettlementResult, error)
}

// Cache defines caching operations (FX-rate snapshots, lookups).
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage at the HTTP boundary.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
