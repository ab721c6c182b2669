package usecase

import (
	"context"
	"time"

	"github.com/iho/payrails/internal/domain"
)

// ScheduleUseCase handles the scheduling API: creating, updating and
// cancelling standing instructions. Execution bookkeeping belongs to the
// scheduler, not here.
type ScheduleUseCase struct {
	scheduleRepo ScheduleRepository
	auditRepo    AuditRepository
	idGen        IDGenerator
	policies     domain.Policies
}

// NewScheduleUseCase creates a new ScheduleUseCase.
func NewScheduleUseCase(scheduleRepo ScheduleRepository, auditRepo AuditRepository, idGen IDGenerator, policies domain.Policies) *ScheduleUseCase {
	return &ScheduleUseCase{
		scheduleRepo: scheduleRepo,
		auditRepo:    auditRepo,
		idGen:        idGen,
		policies:     policies,
	}
}

// CreateScheduleInput represents input for creating a schedule.
type CreateScheduleInput struct {
	Template         domain.TransferIntent
	Frequency        domain.Frequency
	FirstExecutionAt time.Time
	MaxExecutions    int
	EndDate          *time.Time
}

// CreateSchedule validates the template against the channel policy and
// persists the definition.
func (uc *ScheduleUseCase) CreateSchedule(ctx context.Context, input CreateScheduleInput) (*domain.ScheduleDefinition, error) {
	policy, ok := uc.policies.Channels[input.Template.Channel]
	if !ok {
		return nil, &domain.ValidationError{Field: "template.channel", Reason: "unsupported channel"}
	}

	if err := domain.ValidateIntent(input.Template, policy); err != nil {
		return nil, err
	}

	if !input.Frequency.Valid() {
		return nil, &domain.ValidationError{Field: "frequency", Reason: "unknown frequency"}
	}

	if input.FirstExecutionAt.IsZero() {
		return nil, &domain.ValidationError{Field: "first_execution_at", Reason: "required"}
	}

	if input.MaxExecutions < 0 {
		return nil, &domain.ValidationError{Field: "max_executions", Reason: "must not be negative"}
	}

	if input.EndDate != nil && input.EndDate.Before(input.FirstExecutionAt) {
		return nil, &domain.ValidationError{Field: "end_date", Reason: "before first execution"}
	}

	// The template carries no caller idempotency key; each execution derives
	// its own from the schedule id and execution count.
	input.Template.IdempotencyKey = ""

	now := time.Now().UTC()
	schedule := &domain.ScheduleDefinition{
		ID:              uc.idGen.Generate(),
		Template:        input.Template,
		Frequency:       input.Frequency,
		NextExecutionAt: input.FirstExecutionAt.UTC(),
		MaxExecutions:   input.MaxExecutions,
		EndDate:         input.EndDate,
		Active:          true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := uc.scheduleRepo.Create(ctx, schedule); err != nil {
		return nil, err
	}

	uc.auditAction(ctx, domain.AuditActionScheduleCreate, schedule)

	return schedule, nil
}

// GetSchedule retrieves a schedule by ID.
func (uc *ScheduleUseCase) GetSchedule(ctx context.Context, id string) (*domain.ScheduleDefinition, error) {
	return uc.scheduleRepo.GetByID(ctx, id)
}

// ListSchedulesByUser lists schedules owned by a user.
func (uc *ScheduleUseCase) ListSchedulesByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.ScheduleDefinition, error) {
	limit, offset = domain.ValidatePagination(limit, offset)

	return uc.scheduleRepo.ListByUser(ctx, userID, limit, offset)
}

// SchedulePatch carries the mutable fields of a schedule. Nil means keep.
type SchedulePatch struct {
	Amount          *int64
	Narration       *string
	NextExecutionAt *time.Time
	MaxExecutions   *int
	EndDate         *time.Time
}

// UpdateSchedule applies a patch to an active schedule.
func (uc *ScheduleUseCase) UpdateSchedule(ctx context.Context, id string, patch SchedulePatch) (*domain.ScheduleDefinition, error) {
	schedule, err := uc.scheduleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !schedule.Active {
		return nil, &domain.ValidationError{Field: "id", Reason: "schedule is not active"}
	}

	if patch.Amount != nil {
		policy := uc.policies.Channels[schedule.Template.Channel]
		if *patch.Amount < policy.MinAmount || *patch.Amount > policy.MaxAmount {
			return nil, &domain.ValidationError{Field: "amount", Reason: "outside channel bounds"}
		}
		schedule.Template.Amount = *patch.Amount
	}

	if patch.Narration != nil {
		schedule.Template.Narration = *patch.Narration
	}

	if patch.NextExecutionAt != nil {
		schedule.NextExecutionAt = patch.NextExecutionAt.UTC()
	}

	if patch.MaxExecutions != nil {
		if *patch.MaxExecutions < 0 {
			return nil, &domain.ValidationError{Field: "max_executions", Reason: "must not be negative"}
		}
		schedule.MaxExecutions = *patch.MaxExecutions
	}

	if patch.EndDate != nil {
		schedule.EndDate = patch.EndDate
	}

	schedule.UpdatedAt = time.Now().UTC()

	if err := uc.scheduleRepo.Update(ctx, schedule); err != nil {
		return nil, err
	}

	uc.auditAction(ctx, domain.AuditActionScheduleUpdate, schedule)

	return schedule, nil
}

// CancelSchedule deactivates a schedule.
func (uc *ScheduleUseCase) CancelSchedule(ctx context.Context, id string) (*domain.ScheduleDefinition, error) {
	schedule, err := uc.scheduleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	schedule.Deactivate(time.Now().UTC())

	if err := uc.scheduleRepo.Update(ctx, schedule); err != nil {
		return nil, err
	}

	uc.auditAction(ctx, domain.AuditActionScheduleCancel, schedule)

	return schedule, nil
}

func (uc *ScheduleUseCase) auditAction(ctx context.Context, action string, schedule *domain.ScheduleDefinition) {
	if uc.auditRepo == nil {
		return
	}

	_ = uc.auditRepo.Create(ctx, &domain.AuditLog{
		ID:           uc.idGen.Generate(),
		UserID:       schedule.Template.UserID,
		Action:       action,
		ResourceType: domain.AggregateTypeSchedule,
		ResourceID:   schedule.ID,
		AfterState:   domain.MarshalState(schedule),
		Status:       domain.AuditStatusSuccess,
		CreatedAt:    time.Now().UTC(),
	})
}
