package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/payrails/internal/domain"
	"github.com/iho/payrails/internal/usecase/mocks"
)

type submitterStub struct {
	mu      sync.Mutex
	intents []domain.TransferIntent
	err     error
}

func (s *submitterStub) Submit(ctx context.Context, intent domain.TransferIntent) (*domain.TransferRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.intents = append(s.intents, intent)
	if s.err != nil {
		return nil, s.err
	}
	return &domain.TransferRecord{Reference: fmt.Sprintf("TRF-%04d", len(s.intents))}, nil
}

func (s *submitterStub) submitted() []domain.TransferIntent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.TransferIntent, len(s.intents))
	copy(out, s.intents)
	return out
}

func dueSchedule(id string, now time.Time) *domain.ScheduleDefinition {
	return &domain.ScheduleDefinition{
		ID: id,
		Template: domain.TransferIntent{
			Channel:         domain.ChannelInterbank,
			UserID:          "user-1",
			SourceAccountID: "acc-1",
			Amount:          10_000,
			Currency:        "USD",
		},
		Frequency:       domain.FrequencyDaily,
		NextExecutionAt: now.Add(-time.Minute),
		Active:          true,
	}
}

func TestScheduler_Tick_SubmitsDueSchedules(t *testing.T) {
	now := time.Now().UTC()

	repo := mocks.NewMockScheduleRepository()
	require.NoError(t, repo.Create(context.Background(), dueSchedule("sched-1", now)))
	require.NoError(t, repo.Create(context.Background(), dueSchedule("sched-2", now)))

	notDue := dueSchedule("sched-3", now)
	notDue.NextExecutionAt = now.Add(time.Hour)
	require.NoError(t, repo.Create(context.Background(), notDue))

	sub := &submitterStub{}
	s := New(Config{ScheduleRepo: repo, AuditRepo: mocks.NewMockAuditRepository(), Submitter: sub})

	s.Tick(context.Background(), now)

	intents := sub.submitted()
	require.Len(t, intents, 2)

	for _, intent := range intents {
		assert.NotEmpty(t, intent.ScheduleID)
		assert.NotEmpty(t, intent.IdempotencyKey)
		assert.Equal(t, now, intent.Signals.OccurredAt)
	}
}

func TestScheduler_Tick_ExecutionKeyIsStablePerOccurrence(t *testing.T) {
	now := time.Now().UTC()

	repo := mocks.NewMockScheduleRepository()
	require.NoError(t, repo.Create(context.Background(), dueSchedule("sched-1", now)))

	sub := &submitterStub{}
	s := New(Config{ScheduleRepo: repo, AuditRepo: mocks.NewMockAuditRepository(), Submitter: sub, ClaimTTL: time.Millisecond})

	s.Tick(context.Background(), now)

	// Same occurrence re-claimed (claim expired, schedule not advanced) must
	// produce the same key so the orchestrator dedupes it.
	stored, err := repo.GetByID(context.Background(), "sched-1")
	require.NoError(t, err)
	stored.ExecutionCount = 0
	stored.NextExecutionAt = now.Add(-time.Minute)
	stored.Active = true
	require.NoError(t, repo.Update(context.Background(), stored))

	s.Tick(context.Background(), now.Add(time.Second))

	intents := sub.submitted()
	require.Len(t, intents, 2)
	assert.Equal(t, intents[0].IdempotencyKey, intents[1].IdempotencyKey)
	assert.Equal(t, "sched-sched-1-0", intents[0].IdempotencyKey)
}

func TestScheduler_Tick_AdvancesScheduleOnFailure(t *testing.T) {
	now := time.Now().UTC()

	repo := mocks.NewMockScheduleRepository()
	schedule := dueSchedule("sched-1", now)
	slot := schedule.NextExecutionAt
	require.NoError(t, repo.Create(context.Background(), schedule))

	sub := &submitterStub{err: errors.New("limit exceeded")}
	s := New(Config{ScheduleRepo: repo, AuditRepo: mocks.NewMockAuditRepository(), Submitter: sub})

	s.Tick(context.Background(), now)

	stored, err := repo.GetByID(context.Background(), "sched-1")
	require.NoError(t, err)

	// A failed occurrence is this period's outcome; the schedule moves on.
	assert.Equal(t, 1, stored.ExecutionCount)
	assert.True(t, stored.NextExecutionAt.After(slot))
	assert.True(t, stored.Active)
}

func TestScheduler_Tick_ClaimPreventsDoubleDispatch(t *testing.T) {
	now := time.Now().UTC()

	repo := mocks.NewMockScheduleRepository()
	require.NoError(t, repo.Create(context.Background(), dueSchedule("sched-1", now)))

	// Keep the stored schedule due so only the claim blocks re-dispatch.
	repo.UpdateFunc = func(ctx context.Context, schedule *domain.ScheduleDefinition) error {
		return nil
	}

	sub := &submitterStub{}
	s := New(Config{ScheduleRepo: repo, AuditRepo: mocks.NewMockAuditRepository(), Submitter: sub, ClaimTTL: time.Hour})

	s.Tick(context.Background(), now)
	s.Tick(context.Background(), now.Add(time.Second))

	assert.Len(t, sub.submitted(), 1)
}

func TestScheduler_Tick_OneOffDeactivates(t *testing.T) {
	now := time.Now().UTC()

	repo := mocks.NewMockScheduleRepository()
	schedule := dueSchedule("sched-1", now)
	schedule.Frequency = domain.FrequencyOnce
	require.NoError(t, repo.Create(context.Background(), schedule))

	sub := &submitterStub{}
	s := New(Config{ScheduleRepo: repo, AuditRepo: mocks.NewMockAuditRepository(), Submitter: sub})

	s.Tick(context.Background(), now)

	stored, err := repo.GetByID(context.Background(), "sched-1")
	require.NoError(t, err)
	assert.False(t, stored.Active)
	assert.Equal(t, 1, stored.ExecutionCount)
}
