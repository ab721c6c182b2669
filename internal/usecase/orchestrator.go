package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/iho/payrails/internal/domain"
	"github.com/iho/payrails/internal/infrastructure/metrics"
)

// Retrier retries an operation on transient storage errors.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Orchestrator is the saga coordinator for money movement: it sequences
// validation, risk gating, limit enforcement, the atomic debit, settlement
// dispatch and compensation-on-failure. It is the only writer of
// TransferRecord rows.
type Orchestrator struct {
	txManager    TransactionManager
	accountRepo  AccountRepository
	transferRepo TransferRepository
	entryRepo    EntryRepository
	outboxRepo   OutboxRepository
	auditRepo    AuditRepository
	limits       *LimitLedger
	riskGate     RiskGate
	verifier     CredentialVerifier
	adapters     map[domain.Channel]SettlementAdapter
	idGen        IDGenerator
	refGen       ReferenceGenerator
	retrier      Retrier
	policies     domain.Policies
	metrics      *metrics.Metrics
	logger       *slog.Logger
	maxRetries   int
}

// OrchestratorConfig holds Orchestrator dependencies.
type OrchestratorConfig struct {
	TxManager    TransactionManager
	AccountRepo  AccountRepository
	TransferRepo TransferRepository
	EntryRepo    EntryRepository
	OutboxRepo   OutboxRepository
	AuditRepo    AuditRepository
	Limits       *LimitLedger
	RiskGate     RiskGate
	Verifier     CredentialVerifier
	Adapters     []SettlementAdapter
	IDGen        IDGenerator
	RefGen       ReferenceGenerator
	Retrier      Retrier
	Policies     domain.Policies
	Metrics      *metrics.Metrics
	Logger       *slog.Logger
	MaxRetries   int
}

// NewOrchestrator creates a new Orchestrator.
func NewOrchestrator(cfg OrchestratorConfig) *Orchestrator {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}

	adapters := make(map[domain.Channel]SettlementAdapter, len(cfg.Adapters))
	for _, a := range cfg.Adapters {
		adapters[a.Channel()] = a
	}

	return &Orchestrator{
		txManager:    cfg.TxManager,
		accountRepo:  cfg.AccountRepo,
		transferRepo: cfg.TransferRepo,
		entryRepo:    cfg.EntryRepo,
		outboxRepo:   cfg.OutboxRepo,
		auditRepo:    cfg.AuditRepo,
		limits:       cfg.Limits,
		riskGate:     cfg.RiskGate,
		verifier:     cfg.Verifier,
		adapters:     adapters,
		idGen:        cfg.IDGen,
		refGen:       cfg.RefGen,
		retrier:      cfg.Retrier,
		policies:     cfg.Policies,
		metrics:      cfg.Metrics,
		logger:       cfg.Logger,
		maxRetries:   cfg.MaxRetries,
	}
}

// Submit drives an intent to a terminal or pending state. Synchronous
// channels return a completed record; asynchronous channels return a settling
// record whose outcome arrives later via HandleSettlementResult.
func (o *Orchestrator) Submit(ctx context.Context, intent domain.TransferIntent) (*domain.TransferRecord, error) {
	policy, ok := o.policies.Channels[intent.Channel]
	if !ok {
		return nil, &domain.ValidationError{Field: "channel", Reason: "unsupported channel"}
	}

	if err := domain.ValidateIntent(intent, policy); err != nil {
		return nil, err
	}

	if o.verifier != nil {
		verified, err := o.verifier.Verify(ctx, intent.UserID, intent.Credential)
		if err != nil {
			return nil, &domain.ExternalServiceError{Service: "auth", Err: err}
		}
		if !verified {
			return nil, &domain.ValidationError{Field: "credential", Reason: "verification failed"}
		}
	}

	// At-most-once submission: an existing record for the key is returned
	// unchanged instead of reprocessing.
	if intent.IdempotencyKey == "" {
		intent.IdempotencyKey = o.idGen.Generate()
	} else {
		existing, err := o.transferRepo.GetByIdempotencyKey(ctx, intent.IdempotencyKey)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, domain.ErrTransferNotFound) {
			return nil, err
		}
	}

	verdict, err := o.riskGate.Score(ctx, intent, intent.Signals)
	if err != nil {
		return nil, &domain.ExternalServiceError{Service: "risk_gate", Err: err}
	}

	now := time.Now().UTC()
	rec := o.newRecord(intent, verdict, now)

	if o.metrics != nil {
		o.metrics.TransfersSubmitted.WithLabelValues(string(intent.Channel)).Inc()
		o.metrics.TransferAmount.Observe(float64(intent.Amount))
		o.metrics.RiskDecisions.WithLabelValues(string(verdict.Decision)).Inc()
	}

	if verdict.Decision == domain.RiskDecisionBlock {
		if err := o.persistBlocked(ctx, rec, domain.FailureReasonFraudBlocked, now); err != nil {
			return nil, err
		}

		return rec, &domain.FraudBlockedError{Score: verdict.Score, Flags: verdict.Flags}
	}

	if verdict.Decision == domain.RiskDecisionReview {
		// Flagged for downstream manual review; processing continues.
		rec.ReviewFlagged = true
	}

	if err := rec.TransitionTo(domain.StatusRiskChecked, now); err != nil {
		return nil, err
	}

	adapter, ok := o.adapters[intent.Channel]
	if !ok {
		return nil, &domain.ValidationError{Field: "channel", Reason: "no settlement adapter registered"}
	}

	quote, err := adapter.Prepare(ctx, intent)
	if err != nil {
		return nil, err
	}

	if quote.Blocked {
		rec.RiskVerdict.Flags = append(rec.RiskVerdict.Flags, quote.BlockReason)
		if err := o.persistBlocked(ctx, rec, domain.FailureReasonComplianceBlock, now); err != nil {
			return nil, err
		}

		return rec, &domain.FraudBlockedError{Score: quote.BlockScore, Flags: []string{quote.BlockReason}}
	}

	rec.Fee = quote.Fee
	rec.TotalAmount = rec.Amount + rec.Fee
	rec.FXRate = quote.FXRate
	rec.ConvertedAmount = quote.ConvertedAmount
	rec.VerificationRef = quote.VerificationRef
	if quote.HolderName != "" {
		rec.Destination.HolderName = quote.HolderName
	}

	debited, err := o.debit(ctx, adapter, rec)
	if err != nil {
		return nil, err
	}

	if debited.ID != rec.ID {
		// A concurrent submission with the same idempotency key won the
		// insert race; its record is the single source of truth.
		return debited, nil
	}

	rec = debited

	if rec.Status.Terminal() {
		// Local settlement completed inside the debit transaction.
		o.observeTerminal(rec)
		return rec, nil
	}

	return o.dispatch(ctx, adapter, rec)
}

// newRecord builds the initial aggregate in created state.
func (o *Orchestrator) newRecord(intent domain.TransferIntent, verdict *domain.RiskVerdict, now time.Time) *domain.TransferRecord {
	return &domain.TransferRecord{
		ID:              o.idGen.Generate(),
		Reference:       o.refGen.NewReference(),
		Channel:         intent.Channel,
		Status:          domain.StatusCreated,
		SourceAccountID: intent.SourceAccountID,
		Destination:     intent.Destination,
		Amount:          intent.Amount,
		TotalAmount:     intent.Amount,
		Currency:        intent.Currency,
		DestCurrency:    intent.DestCurrency,
		RiskVerdict:     verdict,
		MaxRetries:      o.maxRetries,
		IdempotencyKey:  intent.IdempotencyKey,
		ScheduleID:      intent.ScheduleID,
		Narration:       intent.Narration,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// persistBlocked writes a record that failed before any debit (risk block,
// compliance block). No ledger entries exist for it.
func (o *Orchestrator) persistBlocked(ctx context.Context, rec *domain.TransferRecord, reason string, now time.Time) error {
	rec.FailureReason = reason
	if err := rec.TransitionTo(domain.StatusFailed, now); err != nil {
		return err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := o.txManager.Begin(txCtx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	if err := o.transferRepo.Create(txCtx, tx, rec); err != nil {
		return err
	}

	if err := o.addOutbox(txCtx, tx, rec, domain.EventTypeTransferFailed, now); err != nil {
		return err
	}

	if err := o.audit(txCtx, tx, domain.AuditActionTransferSubmit, rec, nil, domain.AuditStatusFailure, reason); err != nil {
		return err
	}

	if err := tx.Commit(txCtx); err != nil {
		return err
	}

	o.observeTerminal(rec)

	return nil
}

// debit runs the single storage transaction that locks the source account,
// checks limits and funds, inserts the record in debited state with its
// ledger entry, and for the internal channel also settles the credit leg.
func (o *Orchestrator) debit(ctx context.Context, adapter SettlementAdapter, rec *domain.TransferRecord) (*domain.TransferRecord, error) {
	run := func() (*domain.TransferRecord, error) { return o.runDebitTx(ctx, adapter, rec) }

	if o.retrier == nil {
		return run()
	}

	var out *domain.TransferRecord
	err := o.retrier.Retry(ctx, func() error {
		var err error
		out, err = run()
		return err
	})

	return out, err
}

func (o *Orchestrator) runDebitTx(ctx context.Context, adapter SettlementAdapter, rec *domain.TransferRecord) (*domain.TransferRecord, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := o.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	// Lock accounts in sorted order (deadlock prevention). The destination
	// participates only for same-ledger moves.
	lockIDs := []string{rec.SourceAccountID}
	if _, local := adapter.(LocalSettler); local {
		if rec.Destination.AccountID < rec.SourceAccountID {
			lockIDs = []string{rec.Destination.AccountID, rec.SourceAccountID}
		} else {
			lockIDs = append(lockIDs, rec.Destination.AccountID)
		}
	}

	accounts, err := o.accountRepo.GetByIDsForUpdate(txCtx, tx, lockIDs)
	if err != nil {
		return nil, err
	}

	var source *domain.Account
	for _, a := range accounts {
		if a.ID == rec.SourceAccountID {
			source = a
		}
	}

	if source == nil {
		return nil, domain.ErrAccountNotFound
	}

	if !source.Active {
		return nil, &domain.ValidationError{Field: "source_account_id", Reason: "account inactive"}
	}

	if source.Currency != rec.Currency {
		return nil, &domain.ValidationError{Field: "currency", Reason: "does not match source account currency"}
	}

	// Rolling limits are checked under the account lock, before this record
	// is inserted and starts counting against its own window.
	if err := o.limits.Check(txCtx, tx, rec.SourceAccountID, rec.Channel, rec.Amount); err != nil {
		return nil, err
	}

	if err := source.ValidateDebit(rec.TotalAmount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := rec.TransitionTo(domain.StatusDebited, now); err != nil {
		return nil, err
	}

	if err := o.transferRepo.Create(txCtx, tx, rec); err != nil {
		if errors.Is(err, domain.ErrDuplicateIdempotencyKey) {
			// Concurrent submission with the same key won the insert race.
			_ = tx.Rollback(txCtx)
			return o.transferRepo.GetByIdempotencyKey(ctx, rec.IdempotencyKey)
		}

		return nil, err
	}

	newBalance := source.ApplyDebit(rec.TotalAmount)
	entry := &domain.LedgerEntry{
		ID:              o.idGen.Generate(),
		AccountID:       source.ID,
		TransferID:      rec.ID,
		Type:            domain.EntryTypeDebit,
		Amount:          -rec.TotalAmount,
		PreviousBalance: source.Balance,
		CurrentBalance:  newBalance,
		AccountVersion:  source.Version + 1,
		CreatedAt:       now,
	}

	if err := o.entryRepo.Create(txCtx, tx, entry); err != nil {
		return nil, err
	}

	if err := o.accountRepo.UpdateBalance(txCtx, tx, source.ID, newBalance, now); err != nil {
		return nil, err
	}

	eventType := domain.EventTypeTransferSubmitted

	if local, ok := adapter.(LocalSettler); ok {
		// Both legs are under local control: settle inside this transaction,
		// no compensation path needed.
		result, err := local.SettleLocal(txCtx, tx, rec)
		if err != nil {
			return nil, err
		}

		rec.ExternalRef = result.ExternalRef
		if err := rec.TransitionTo(domain.StatusCompleted, now); err != nil {
			return nil, err
		}

		if err := o.transferRepo.Update(txCtx, tx, rec); err != nil {
			return nil, err
		}

		eventType = domain.EventTypeTransferCompleted
	}

	if err := o.addOutbox(txCtx, tx, rec, eventType, now); err != nil {
		return nil, err
	}

	if err := o.audit(txCtx, tx, domain.AuditActionTransferSubmit, rec, nil, domain.AuditStatusSuccess, ""); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	return rec, nil
}

// dispatch hands a debited record to its external rail. The local debit has
// already committed so a hanging network call never holds a database lock.
func (o *Orchestrator) dispatch(ctx context.Context, adapter SettlementAdapter, rec *domain.TransferRecord) (*domain.TransferRecord, error) {
	now := time.Now().UTC()
	if err := rec.TransitionTo(domain.StatusSettling, now); err != nil {
		return nil, err
	}

	if err := o.persistUpdate(ctx, rec); err != nil {
		return nil, err
	}

	var result SettlementResult

	operation := func() error {
		res, err := adapter.Settle(ctx, rec)
		if err == nil {
			result = res
			return nil
		}

		rec.RetryCount++
		if o.metrics != nil {
			o.metrics.SettlementRetries.WithLabelValues(string(rec.Channel)).Inc()
		}
		if perr := o.persistUpdate(ctx, rec); perr != nil {
			o.logger.Error("failed to persist retry count",
				slog.String("reference", rec.Reference),
				slog.String("error", perr.Error()))
		}

		o.logger.Warn("settlement dispatch failed, retrying",
			slog.String("reference", rec.Reference),
			slog.String("channel", string(rec.Channel)),
			slog.Int("retry", rec.RetryCount),
			slog.String("error", err.Error()))

		if rec.RetryCount >= rec.MaxRetries {
			return backoff.Permanent(err)
		}

		return err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxInterval = 5 * time.Second

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		// Transport retries exhausted: reverse the debit and fail terminal.
		failed, ferr := o.HandleSettlementResult(ctx, rec.Reference, SettlementResult{
			Outcome:       SettlementFailed,
			FailureReason: domain.FailureReasonRetriesExhausted,
		})
		if ferr != nil {
			o.logger.Error("compensation failed, record needs manual reconciliation",
				slog.String("reference", rec.Reference),
				slog.String("error", ferr.Error()))
			return rec, &domain.ExternalServiceError{Service: string(rec.Channel), Err: err}
		}

		return failed, &domain.ExternalServiceError{Service: string(rec.Channel), Err: err}
	}

	return o.HandleSettlementResult(ctx, rec.Reference, result)
}

// HandleSettlementResult applies a settlement outcome to a record under the
// same per-record atomicity as the original submission. It is idempotent: a
// retried callback against a terminal record is a no-op.
func (o *Orchestrator) HandleSettlementResult(ctx context.Context, reference string, result SettlementResult) (*domain.TransferRecord, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := o.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	rec, err := o.transferRepo.GetByReferenceForUpdate(txCtx, tx, reference)
	if err != nil {
		return nil, err
	}

	if rec.Status.Terminal() {
		return rec, nil
	}

	now := time.Now().UTC()

	switch result.Outcome {
	case SettlementCompleted:
		rec.ExternalRef = result.ExternalRef
		if result.Receipt != nil {
			rec.Receipt = result.Receipt
		}

		if err := rec.TransitionTo(domain.StatusCompleted, now); err != nil {
			return nil, err
		}

		if err := o.transferRepo.Update(txCtx, tx, rec); err != nil {
			return nil, err
		}

		if err := o.addOutbox(txCtx, tx, rec, domain.EventTypeTransferCompleted, now); err != nil {
			return nil, err
		}

		if err := o.audit(txCtx, tx, domain.AuditActionTransferSettle, rec, nil, domain.AuditStatusSuccess, ""); err != nil {
			return nil, err
		}

	case SettlementPending:
		// The rail-side handle arrives with the acknowledgement; it must be
		// durable before any reconciliation sweep needs it.
		if result.ExternalRef != "" {
			rec.ExternalRef = result.ExternalRef
		}

		if rec.Status == domain.StatusDebited {
			if err := rec.TransitionTo(domain.StatusSettling, now); err != nil {
				return nil, err
			}
		} else {
			rec.UpdatedAt = now
		}

		if err := o.transferRepo.Update(txCtx, tx, rec); err != nil {
			return nil, err
		}

	case SettlementFailed:
		if err := o.compensateInTx(txCtx, tx, rec, result.FailureReason, now); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if rec.Status.Terminal() {
		o.observeTerminal(rec)
	}

	return rec, nil
}

// compensateInTx credits back the originally debited amount and fee and marks
// the record failed/reversed. Reversal state is checked before crediting so a
// second invocation never double-credits.
func (o *Orchestrator) compensateInTx(ctx context.Context, tx Transaction, rec *domain.TransferRecord, reason string, now time.Time) error {
	if rec.Reversed {
		return nil
	}

	account, err := o.accountRepo.GetByIDForUpdate(ctx, tx, rec.SourceAccountID)
	if err != nil {
		return err
	}

	newBalance := account.ApplyCredit(rec.TotalAmount)
	entry := &domain.LedgerEntry{
		ID:              o.idGen.Generate(),
		AccountID:       account.ID,
		TransferID:      rec.ID,
		Type:            domain.EntryTypeReversalCredit,
		Amount:          rec.TotalAmount,
		PreviousBalance: account.Balance,
		CurrentBalance:  newBalance,
		AccountVersion:  account.Version + 1,
		CreatedAt:       now,
	}

	if err := o.entryRepo.Create(ctx, tx, entry); err != nil {
		return err
	}

	if err := o.accountRepo.UpdateBalance(ctx, tx, account.ID, newBalance, now); err != nil {
		return err
	}

	rec.FailureReason = reason
	rec.Reversed = true
	if err := rec.TransitionTo(domain.StatusFailed, now); err != nil {
		return err
	}

	if err := o.transferRepo.Update(ctx, tx, rec); err != nil {
		return err
	}

	if err := o.addOutbox(ctx, tx, rec, domain.EventTypeTransferReversed, now); err != nil {
		return err
	}

	return o.audit(ctx, tx, domain.AuditActionTransferCompensate, rec, nil, domain.AuditStatusSuccess, reason)
}

// GetStatus returns the record for a reference. Records still awaiting an
// asynchronous rail are reconciled against the rail first, so status is never
// stale beyond one round-trip.
func (o *Orchestrator) GetStatus(ctx context.Context, reference string) (*domain.TransferRecord, error) {
	rec, err := o.transferRepo.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}

	if !rec.Pending() {
		return rec, nil
	}

	adapter, ok := o.adapters[rec.Channel]
	if !ok {
		return rec, nil
	}

	result, err := adapter.QueryStatus(ctx, rec)
	if err != nil {
		o.logger.Warn("status reconciliation failed",
			slog.String("reference", reference),
			slog.String("error", err.Error()))
		return rec, nil
	}

	if result.Outcome == SettlementPending {
		return rec, nil
	}

	return o.HandleSettlementResult(ctx, reference, result)
}

// Cancel aborts a transfer that has not been debited yet. Anything later must
// go through the compensation path instead.
func (o *Orchestrator) Cancel(ctx context.Context, reference, reason string) (*domain.TransferRecord, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := o.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	rec, err := o.transferRepo.GetByReferenceForUpdate(txCtx, tx, reference)
	if err != nil {
		return nil, err
	}

	if rec.Status != domain.StatusCreated {
		return nil, &domain.InvalidStateError{Operation: "cancel", Current: rec.Status}
	}

	now := time.Now().UTC()
	rec.FailureReason = reason
	if err := rec.TransitionTo(domain.StatusCancelled, now); err != nil {
		return nil, err
	}

	if err := o.transferRepo.Update(txCtx, tx, rec); err != nil {
		return nil, err
	}

	if err := o.addOutbox(txCtx, tx, rec, domain.EventTypeTransferCancelled, now); err != nil {
		return nil, err
	}

	if err := o.audit(txCtx, tx, domain.AuditActionTransferCancel, rec, nil, domain.AuditStatusSuccess, reason); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	return rec, nil
}

// ListHistory lists transfer records for an account.
func (o *Orchestrator) ListHistory(ctx context.Context, accountID string, filter HistoryFilter) ([]*domain.TransferRecord, error) {
	filter.Limit, filter.Offset = domain.ValidatePagination(filter.Limit, filter.Offset)

	return o.transferRepo.ListByAccount(ctx, accountID, filter)
}

// ListPendingReconciliation lists records stuck in an asynchronous settlement
// state longer than olderThan allows.
func (o *Orchestrator) ListPendingReconciliation(ctx context.Context, olderThan time.Time, limit int) ([]*domain.TransferRecord, error) {
	limit, _ = domain.ValidatePagination(limit, 0)

	return o.transferRepo.ListPending(ctx, olderThan, limit)
}

func (o *Orchestrator) persistUpdate(ctx context.Context, rec *domain.TransferRecord) error {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := o.txManager.Begin(txCtx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	if err := o.transferRepo.Update(txCtx, tx, rec); err != nil {
		return err
	}

	return tx.Commit(txCtx)
}

func (o *Orchestrator) addOutbox(ctx context.Context, tx Transaction, rec *domain.TransferRecord, eventType string, now time.Time) error {
	if o.outboxRepo == nil {
		return nil
	}

	return o.outboxRepo.Create(ctx, tx, &domain.OutboxEvent{
		ID:            o.idGen.Generate(),
		AggregateID:   rec.ID,
		AggregateType: domain.AggregateTypeTransfer,
		EventType:     eventType,
		Payload:       domain.TransferEventPayload(rec),
		CreatedAt:     now,
	})
}

func (o *Orchestrator) audit(ctx context.Context, tx Transaction, action string, rec *domain.TransferRecord, before domain.JSON, status, errMsg string) error {
	if o.auditRepo == nil {
		return nil
	}

	return o.auditRepo.CreateTx(ctx, tx, &domain.AuditLog{
		ID:           o.idGen.Generate(),
		Action:       action,
		ResourceType: domain.AggregateTypeTransfer,
		ResourceID:   rec.ID,
		BeforeState:  before,
		AfterState:   domain.MarshalState(rec),
		Status:       status,
		ErrorMessage: errMsg,
		CreatedAt:    time.Now().UTC(),
	})
}

func (o *Orchestrator) observeTerminal(rec *domain.TransferRecord) {
	if o.metrics == nil {
		return
	}

	switch rec.Status {
	case domain.StatusCompleted:
		o.metrics.TransfersCompleted.WithLabelValues(string(rec.Channel)).Inc()
	case domain.StatusFailed:
		o.metrics.TransfersFailed.WithLabelValues(string(rec.Channel), rec.FailureReason).Inc()
		if rec.Reversed {
			o.metrics.TransfersReversed.Inc()
		}
	}
}
