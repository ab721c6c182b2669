// Package scheduler executes standing instructions. Each tick claims due
// schedules, synthesizes one transfer intent per schedule, and submits it
// through the orchestrator like any other transfer.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/iho/payrails/internal/domain"
	"github.com/iho/payrails/internal/infrastructure/metrics"
	"github.com/iho/payrails/internal/usecase"
)

// Submitter is the slice of the orchestrator the scheduler needs.
type Submitter interface {
	Submit(ctx context.Context, intent domain.TransferIntent) (*domain.TransferRecord, error)
}

// Scheduler drives recurring transfers off the schedules table.
type Scheduler struct {
	scheduleRepo usecase.ScheduleRepository
	auditRepo    usecase.AuditRepository
	submitter    Submitter
	logger       *slog.Logger
	metrics      *metrics.Metrics
	interval     time.Duration
	batchSize    int
	claimTTL     time.Duration

	// Guards against a tick starting while the previous one still runs.
	running sync.Mutex
}

// Config for Scheduler.
type Config struct {
	ScheduleRepo usecase.ScheduleRepository
	AuditRepo    usecase.AuditRepository
	Submitter    Submitter
	Logger       *slog.Logger
	Metrics      *metrics.Metrics
	Interval     time.Duration
	BatchSize    int
	ClaimTTL     time.Duration
}

// New creates a new Scheduler.
func New(cfg Config) *Scheduler {
	if cfg.Interval == 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 50
	}
	if cfg.ClaimTTL == 0 {
		cfg.ClaimTTL = 5 * time.Minute
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Scheduler{
		scheduleRepo: cfg.ScheduleRepo,
		auditRepo:    cfg.AuditRepo,
		submitter:    cfg.Submitter,
		logger:       cfg.Logger,
		metrics:      cfg.Metrics,
		interval:     cfg.Interval,
		batchSize:    cfg.BatchSize,
		claimTTL:     cfg.ClaimTTL,
	}
}

// Start begins the scheduling loop. It runs until the context is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started",
		slog.Duration("interval", s.interval),
		slog.Int("batch_size", s.batchSize))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler shutting down")
			return ctx.Err()
		case <-ticker.C:
			s.Tick(ctx, time.Now().UTC())
		}
	}
}

// Tick runs one scheduling pass. If the previous pass has not finished yet
// the tick is skipped; the claim TTL already protects other instances.
func (s *Scheduler) Tick(ctx context.Context, now time.Time) {
	if !s.running.TryLock() {
		if s.metrics != nil {
			s.metrics.SchedulerClaimSkip.Inc()
		}
		return
	}
	defer s.running.Unlock()

	if s.metrics != nil {
		s.metrics.SchedulerTicks.Inc()
	}

	due, err := s.scheduleRepo.ClaimDue(ctx, now, s.claimTTL, s.batchSize)
	if err != nil {
		s.logger.Error("failed to claim due schedules", slog.String("error", err.Error()))
		return
	}

	for _, schedule := range due {
		s.execute(ctx, schedule, now)
	}
}

// execute submits one occurrence of a schedule. The schedule advances
// whether or not the submission succeeded: a failed occurrence is this
// period's outcome, not a reason to re-run it.
func (s *Scheduler) execute(ctx context.Context, schedule *domain.ScheduleDefinition, now time.Time) {
	intent := schedule.Template
	intent.ScheduleID = schedule.ID
	intent.IdempotencyKey = executionKey(schedule)
	intent.Signals = domain.RiskSignals{OccurredAt: now}

	rec, err := s.submitter.Submit(ctx, intent)

	outcome := "success"
	errMsg := ""
	if err != nil {
		outcome = "failure"
		errMsg = err.Error()
		s.logger.Warn("scheduled transfer failed",
			slog.String("schedule_id", schedule.ID),
			slog.Int("execution", schedule.ExecutionCount+1),
			slog.String("error", errMsg))
	}

	if s.metrics != nil {
		s.metrics.SchedulesExecuted.WithLabelValues(outcome).Inc()
	}

	before := domain.MarshalState(schedule)
	schedule.RecordExecution(now)

	if err := s.scheduleRepo.Update(ctx, schedule); err != nil {
		s.logger.Error("failed to advance schedule",
			slog.String("schedule_id", schedule.ID),
			slog.String("error", err.Error()))
		return
	}

	log := &domain.AuditLog{
		UserID:       schedule.Template.UserID,
		Action:       domain.AuditActionScheduleExecute,
		ResourceType: domain.AggregateTypeSchedule,
		ResourceID:   schedule.ID,
		BeforeState:  before,
		AfterState:   domain.MarshalState(schedule),
		Status:       auditStatus(err),
		ErrorMessage: errMsg,
		CreatedAt:    now,
	}
	if rec != nil {
		log.AfterState["transfer_reference"] = rec.Reference
	}

	if err := s.auditRepo.Create(ctx, log); err != nil {
		s.logger.Error("failed to write schedule audit log",
			slog.String("schedule_id", schedule.ID),
			slog.String("error", err.Error()))
	}
}

// executionKey derives a stable idempotency key for one occurrence, so a
// crashed or overlapping tick cannot double-submit it.
func executionKey(schedule *domain.ScheduleDefinition) string {
	return fmt.Sprintf("sched-%s-%d", schedule.ID, schedule.ExecutionCount)
}

func auditStatus(err error) string {
	if err != nil {
		return domain.AuditStatusFailure
	}
	return domain.AuditStatusSuccess
}
