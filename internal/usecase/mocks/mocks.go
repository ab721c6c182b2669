package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/iho/payrails/internal/domain"
	"github.com/iho/payrails/internal/usecase"
)

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateFunc            func(ctx context.Context, account *domain.Account) error
	GetByIDFunc           func(ctx context.Context, id string) (*domain.Account, error)
	GetByIDForUpdateFunc  func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error)
	GetByIDsForUpdateFunc func(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error)
	UpdateBalanceFunc     func(ctx context.Context, tx usecase.Transaction, id string, balance int64, updatedAt time.Time) error
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		return acc, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockAccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error) {
	if m.GetByIDsForUpdateFunc != nil {
		return m.GetByIDsForUpdateFunc(ctx, tx, ids)
	}
	accounts := make([]*domain.Account, 0, len(ids))
	for _, id := range ids {
		acc, err := m.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, acc)
	}
	return accounts, nil
}

func (m *MockAccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance int64, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	acc.Balance = balance
	acc.Version++
	acc.UpdatedAt = updatedAt
	return nil
}

// MockTransferRepository is a mock implementation of TransferRepository.
type MockTransferRepository struct {
	mu      sync.RWMutex
	records map[string]*domain.TransferRecord
	byRef   map[string]string
	byKey   map[string]string

	CreateFunc                  func(ctx context.Context, tx usecase.Transaction, rec *domain.TransferRecord) error
	UpdateFunc                  func(ctx context.Context, tx usecase.Transaction, rec *domain.TransferRecord) error
	GetByIDFunc                 func(ctx context.Context, id string) (*domain.TransferRecord, error)
	GetByReferenceFunc          func(ctx context.Context, reference string) (*domain.TransferRecord, error)
	GetByReferenceForUpdateFunc func(ctx context.Context, tx usecase.Transaction, reference string) (*domain.TransferRecord, error)
	GetByIdempotencyKeyFunc     func(ctx context.Context, key string) (*domain.TransferRecord, error)
	ListByAccountFunc           func(ctx context.Context, accountID string, filter usecase.HistoryFilter) ([]*domain.TransferRecord, error)
	ListPendingFunc             func(ctx context.Context, olderThan time.Time, limit int) ([]*domain.TransferRecord, error)
	SumAmountsFunc              func(ctx context.Context, tx usecase.Transaction, accountID string, channel domain.Channel, statuses []domain.TransferStatus, since time.Time) (int64, error)
}

func NewMockTransferRepository() *MockTransferRepository {
	return &MockTransferRepository{
		records: make(map[string]*domain.TransferRecord),
		byRef:   make(map[string]string),
		byKey:   make(map[string]string),
	}
}

func (m *MockTransferRepository) Create(ctx context.Context, tx usecase.Transaction, rec *domain.TransferRecord) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, rec)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec.IdempotencyKey != "" {
		if _, ok := m.byKey[rec.IdempotencyKey]; ok {
			return domain.ErrDuplicateIdempotencyKey
		}
		m.byKey[rec.IdempotencyKey] = rec.ID
	}
	copied := *rec
	m.records[rec.ID] = &copied
	m.byRef[rec.Reference] = rec.ID
	return nil
}

func (m *MockTransferRepository) Update(ctx context.Context, tx usecase.Transaction, rec *domain.TransferRecord) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, rec)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[rec.ID]; !ok {
		return domain.ErrTransferNotFound
	}
	copied := *rec
	m.records[rec.ID] = &copied
	return nil
}

func (m *MockTransferRepository) GetByID(ctx context.Context, id string) (*domain.TransferRecord, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if rec, ok := m.records[id]; ok {
		copied := *rec
		return &copied, nil
	}
	return nil, domain.ErrTransferNotFound
}

func (m *MockTransferRepository) GetByReference(ctx context.Context, reference string) (*domain.TransferRecord, error) {
	if m.GetByReferenceFunc != nil {
		return m.GetByReferenceFunc(ctx, reference)
	}
	m.mu.RLock()
	id, ok := m.byRef[reference]
	m.mu.RUnlock()
	if !ok {
		return nil, domain.ErrTransferNotFound
	}
	return m.GetByID(ctx, id)
}

func (m *MockTransferRepository) GetByReferenceForUpdate(ctx context.Context, tx usecase.Transaction, reference string) (*domain.TransferRecord, error) {
	if m.GetByReferenceForUpdateFunc != nil {
		return m.GetByReferenceForUpdateFunc(ctx, tx, reference)
	}
	return m.GetByReference(ctx, reference)
}

func (m *MockTransferRepository) GetByIdempotencyKey(ctx context.Context, key string) (*domain.TransferRecord, error) {
	if m.GetByIdempotencyKeyFunc != nil {
		return m.GetByIdempotencyKeyFunc(ctx, key)
	}
	m.mu.RLock()
	id, ok := m.byKey[key]
	m.mu.RUnlock()
	if !ok {
		return nil, domain.ErrTransferNotFound
	}
	return m.GetByID(ctx, id)
}

func (m *MockTransferRepository) ListByAccount(ctx context.Context, accountID string, filter usecase.HistoryFilter) ([]*domain.TransferRecord, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.TransferRecord
	for _, rec := range m.records {
		if rec.SourceAccountID != accountID {
			continue
		}
		if filter.Channel != "" && rec.Channel != filter.Channel {
			continue
		}
		if filter.Status != "" && rec.Status != filter.Status {
			continue
		}
		copied := *rec
		out = append(out, &copied)
	}
	return out, nil
}

func (m *MockTransferRepository) ListPending(ctx context.Context, olderThan time.Time, limit int) ([]*domain.TransferRecord, error) {
	if m.ListPendingFunc != nil {
		return m.ListPendingFunc(ctx, olderThan, limit)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.TransferRecord
	for _, rec := range m.records {
		if rec.Pending() && rec.UpdatedAt.Before(olderThan) {
			copied := *rec
			out = append(out, &copied)
		}
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (m *MockTransferRepository) SumAmounts(ctx context.Context, tx usecase.Transaction, accountID string, channel domain.Channel, statuses []domain.TransferStatus, since time.Time) (int64, error) {
	if m.SumAmountsFunc != nil {
		return m.SumAmountsFunc(ctx, tx, accountID, channel, statuses, since)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var sum int64
	for _, rec := range m.records {
		if rec.SourceAccountID != accountID || rec.Channel != channel {
			continue
		}
		if rec.CreatedAt.Before(since) {
			continue
		}
		for _, s := range statuses {
			if rec.Status == s {
				sum += rec.Amount
				break
			}
		}
	}
	return sum, nil
}

// MockEntryRepository is a mock implementation of EntryRepository.
type MockEntryRepository struct {
	mu      sync.RWMutex
	entries []*domain.LedgerEntry

	CreateFunc        func(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error
	GetByTransferFunc func(ctx context.Context, transferID string) ([]*domain.LedgerEntry, error)
}

func NewMockEntryRepository() *MockEntryRepository {
	return &MockEntryRepository{}
}

func (m *MockEntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return nil
}

func (m *MockEntryRepository) GetByTransfer(ctx context.Context, transferID string) ([]*domain.LedgerEntry, error) {
	if m.GetByTransferFunc != nil {
		return m.GetByTransferFunc(ctx, transferID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.LedgerEntry
	for _, e := range m.entries {
		if e.TransferID == transferID {
			out = append(out, e)
		}
	}
	return out, nil
}

// Entries returns everything recorded so far.
func (m *MockEntryRepository) Entries() []*domain.LedgerEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.LedgerEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

// MockScheduleRepository is a mock implementation of ScheduleRepository.
type MockScheduleRepository struct {
	mu        sync.RWMutex
	schedules map[string]*domain.ScheduleDefinition
	claimed   map[string]time.Time

	CreateFunc     func(ctx context.Context, schedule *domain.ScheduleDefinition) error
	GetByIDFunc    func(ctx context.Context, id string) (*domain.ScheduleDefinition, error)
	UpdateFunc     func(ctx context.Context, schedule *domain.ScheduleDefinition) error
	ClaimDueFunc   func(ctx context.Context, now time.Time, claimTTL time.Duration, limit int) ([]*domain.ScheduleDefinition, error)
	ListByUserFunc func(ctx context.Context, userID string, limit, offset int) ([]*domain.ScheduleDefinition, error)
}

func NewMockScheduleRepository() *MockScheduleRepository {
	return &MockScheduleRepository{
		schedules: make(map[string]*domain.ScheduleDefinition),
		claimed:   make(map[string]time.Time),
	}
}

func (m *MockScheduleRepository) Create(ctx context.Context, schedule *domain.ScheduleDefinition) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, schedule)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *schedule
	m.schedules[schedule.ID] = &copied
	return nil
}

func (m *MockScheduleRepository) GetByID(ctx context.Context, id string) (*domain.ScheduleDefinition, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.schedules[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, domain.ErrScheduleNotFound
}

func (m *MockScheduleRepository) Update(ctx context.Context, schedule *domain.ScheduleDefinition) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, schedule)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.schedules[schedule.ID]; !ok {
		return domain.ErrScheduleNotFound
	}
	copied := *schedule
	m.schedules[schedule.ID] = &copied
	return nil
}

func (m *MockScheduleRepository) ClaimDue(ctx context.Context, now time.Time, claimTTL time.Duration, limit int) ([]*domain.ScheduleDefinition, error) {
	if m.ClaimDueFunc != nil {
		return m.ClaimDueFunc(ctx, now, claimTTL, limit)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.ScheduleDefinition
	for id, s := range m.schedules {
		if limit > 0 && len(out) >= limit {
			break
		}
		if !s.Due(now) {
			continue
		}
		if until, ok := m.claimed[id]; ok && now.Before(until) {
			continue
		}
		m.claimed[id] = now.Add(claimTTL)
		copied := *s
		out = append(out, &copied)
	}
	return out, nil
}

func (m *MockScheduleRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.ScheduleDefinition, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.ScheduleDefinition
	for _, s := range m.schedules {
		if s.Template.UserID == userID {
			copied := *s
			out = append(out, &copied)
		}
	}
	return out, nil
}

// MockExemptionRepository is a mock implementation of ExemptionRepository.
type MockExemptionRepository struct {
	mu     sync.RWMutex
	exempt map[string]string

	IsExemptFunc func(ctx context.Context, accountID string) (bool, error)
	AddFunc      func(ctx context.Context, accountID, reason string) error
}

func NewMockExemptionRepository() *MockExemptionRepository {
	return &MockExemptionRepository{exempt: make(map[string]string)}
}

func (m *MockExemptionRepository) IsExempt(ctx context.Context, accountID string) (bool, error) {
	if m.IsExemptFunc != nil {
		return m.IsExemptFunc(ctx, accountID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.exempt[accountID]
	return ok, nil
}

func (m *MockExemptionRepository) Add(ctx context.Context, accountID, reason string) error {
	if m.AddFunc != nil {
		return m.AddFunc(ctx, accountID, reason)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exempt[accountID] = reason
	return nil
}

// MockOutboxRepository is a mock implementation of OutboxRepository.
type MockOutboxRepository struct {
	mu     sync.RWMutex
	events []*domain.OutboxEvent

	CreateFunc          func(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error
	GetUnpublishedFunc  func(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublishedFunc   func(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublishedFunc func(ctx context.Context, before time.Time) error
}

func NewMockOutboxRepository() *MockOutboxRepository {
	return &MockOutboxRepository{}
}

func (m *MockOutboxRepository) Create(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	if m.GetUnpublishedFunc != nil {
		return m.GetUnpublishedFunc(ctx, limit)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.OutboxEvent
	for _, e := range m.events {
		if e.PublishedAt == nil {
			out = append(out, e)
		}
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	if m.MarkPublishedFunc != nil {
		return m.MarkPublishedFunc(ctx, id, publishedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.events {
		if e.ID == id {
			e.PublishedAt = &publishedAt
			return nil
		}
	}
	return nil
}

func (m *MockOutboxRepository) DeletePublished(ctx context.Context, before time.Time) error {
	if m.DeletePublishedFunc != nil {
		return m.DeletePublishedFunc(ctx, before)
	}
	return nil
}

// Events returns everything recorded so far.
func (m *MockOutboxRepository) Events() []*domain.OutboxEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.OutboxEvent, len(m.events))
	copy(out, m.events)
	return out
}

// MockAuditRepository is a mock implementation of AuditRepository.
type MockAuditRepository struct {
	mu   sync.RWMutex
	logs []*domain.AuditLog

	CreateFunc   func(ctx context.Context, log *domain.AuditLog) error
	CreateTxFunc func(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error
}

func NewMockAuditRepository() *MockAuditRepository {
	return &MockAuditRepository{}
}

func (m *MockAuditRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, log)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, log)
	return nil
}

func (m *MockAuditRepository) CreateTx(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, log)
	}
	return m.Create(ctx, log)
}

// Logs returns everything recorded so far.
func (m *MockAuditRepository) Logs() []*domain.AuditLog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.AuditLog, len(m.logs))
	copy(out, m.logs)
	return out
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	mu        sync.Mutex
	Commits   int
	Rollbacks int
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	m.mu.Lock()
	m.Commits++
	m.mu.Unlock()
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	m.mu.Lock()
	m.Rollbacks++
	m.mu.Unlock()
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("id-%04d", m.counter)
}

// MockReferenceGenerator is a mock implementation of ReferenceGenerator.
type MockReferenceGenerator struct {
	mu      sync.Mutex
	counter int

	NewReferenceFunc func() string
}

func (m *MockReferenceGenerator) NewReference() string {
	if m.NewReferenceFunc != nil {
		return m.NewReferenceFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("TRF-%04d", m.counter)
}

// MockRiskGate is a mock implementation of RiskGate. The default verdict
// approves everything.
type MockRiskGate struct {
	ScoreFunc func(ctx context.Context, intent domain.TransferIntent, signals domain.RiskSignals) (*domain.RiskVerdict, error)
}

func (m *MockRiskGate) Score(ctx context.Context, intent domain.TransferIntent, signals domain.RiskSignals) (*domain.RiskVerdict, error) {
	if m.ScoreFunc != nil {
		return m.ScoreFunc(ctx, intent, signals)
	}
	return &domain.RiskVerdict{
		Score:    5,
		Level:    domain.RiskLevelLow,
		Decision: domain.RiskDecisionApprove,
	}, nil
}

// MockCredentialVerifier is a mock implementation of CredentialVerifier.
type MockCredentialVerifier struct {
	VerifyFunc func(ctx context.Context, userID, secret string) (bool, error)
}

func (m *MockCredentialVerifier) Verify(ctx context.Context, userID, secret string) (bool, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, userID, secret)
	}
	return true, nil
}

// MockSettlementAdapter is a mock implementation of SettlementAdapter.
type MockSettlementAdapter struct {
	ChannelValue domain.Channel

	PrepareFunc     func(ctx context.Context, intent domain.TransferIntent) (usecase.SettlementQuote, error)
	SettleFunc      func(ctx context.Context, rec *domain.TransferRecord) (usecase.SettlementResult, error)
	QueryStatusFunc func(ctx context.Context, rec *domain.TransferRecord) (usecase.SettlementResult, error)

	mu          sync.Mutex
	SettleCalls int
}

func (m *MockSettlementAdapter) Channel() domain.Channel { return m.ChannelValue }

func (m *MockSettlementAdapter) Prepare(ctx context.Context, intent domain.TransferIntent) (usecase.SettlementQuote, error) {
	if m.PrepareFunc != nil {
		return m.PrepareFunc(ctx, intent)
	}
	return usecase.SettlementQuote{}, nil
}

func (m *MockSettlementAdapter) Settle(ctx context.Context, rec *domain.TransferRecord) (usecase.SettlementResult, error) {
	m.mu.Lock()
	m.SettleCalls++
	m.mu.Unlock()
	if m.SettleFunc != nil {
		return m.SettleFunc(ctx, rec)
	}
	return usecase.SettlementResult{Outcome: usecase.SettlementCompleted}, nil
}

func (m *MockSettlementAdapter) QueryStatus(ctx context.Context, rec *domain.TransferRecord) (usecase.SettlementResult, error) {
	if m.QueryStatusFunc != nil {
		return m.QueryStatusFunc(ctx, rec)
	}
	return usecase.SettlementResult{Outcome: usecase.SettlementPending}, nil
}

// MockLocalAdapter is a MockSettlementAdapter that also settles inside the
// debit transaction.
type MockLocalAdapter struct {
	MockSettlementAdapter

	SettleLocalFunc func(ctx context.Context, tx usecase.Transaction, rec *domain.TransferRecord) (usecase.SettlementResult, error)
}

func (m *MockLocalAdapter) SettleLocal(ctx context.Context, tx usecase.Transaction, rec *domain.TransferRecord) (usecase.SettlementResult, error) {
	if m.SettleLocalFunc != nil {
		return m.SettleLocalFunc(ctx, tx, rec)
	}
	return usecase.SettlementResult{Outcome: usecase.SettlementCompleted, ExternalRef: rec.ID}, nil
}

// MockCache is a mock implementation of Cache.
type MockCache struct {
	mu     sync.RWMutex
	values map[string][]byte

	GetFunc    func(ctx context.Context, key string) ([]byte, error)
	SetFunc    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
}

func NewMockCache() *MockCache {
	return &MockCache{values: make(map[string][]byte)}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.values[key]; ok {
		return v, nil
	}
	return nil, nil
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// MockIdempotencyStore is a mock implementation of IdempotencyStore.
type MockIdempotencyStore struct {
	mu     sync.Mutex
	values map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{values: make(map[string][]byte)}
}

func (m *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.values[key]; ok {
		return true, existing, nil
	}
	m.values[key] = response
	return false, nil, nil
}

func (m *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = response
	return nil
}
