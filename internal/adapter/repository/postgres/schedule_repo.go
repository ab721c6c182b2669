package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/payrails/internal/domain"
)

const scheduleColumns = `id, template, frequency, next_execution_at, execution_count,
	max_executions, end_date, active, claimed_until, created_at, updated_at`

// ScheduleRepository implements usecase.ScheduleRepository.
type ScheduleRepository struct {
	pool *pgxpool.Pool
}

// NewScheduleRepository creates a new ScheduleRepository.
func NewScheduleRepository(pool *pgxpool.Pool) *ScheduleRepository {
	return &ScheduleRepository{pool: pool}
}

// Create inserts a new schedule.
func (r *ScheduleRepository) Create(ctx context.Context, schedule *domain.ScheduleDefinition) error {
	query := `
		INSERT INTO schedules (id, template, frequency, next_execution_at, execution_count,
			max_executions, end_date, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		schedule.ID,
		schedule.Template,
		schedule.Frequency,
		schedule.NextExecutionAt,
		schedule.ExecutionCount,
		schedule.MaxExecutions,
		schedule.EndDate,
		schedule.Active,
		schedule.CreatedAt,
		schedule.UpdatedAt,
	)

	return err
}

// GetByID retrieves a schedule by ID.
func (r *ScheduleRepository) GetByID(ctx context.Context, id string) (*domain.ScheduleDefinition, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules WHERE id = $1`

	schedule, err := scanSchedule(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrScheduleNotFound
	}

	return schedule, err
}

// Update rewrites the mutable columns.
func (r *ScheduleRepository) Update(ctx context.Context, schedule *domain.ScheduleDefinition) error {
	query := `
		UPDATE schedules
		SET template = $2, frequency = $3, next_execution_at = $4, execution_count = $5,
			max_executions = $6, end_date = $7, active = $8, updated_at = $9
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		schedule.ID,
		schedule.Template,
		schedule.Frequency,
		schedule.NextExecutionAt,
		schedule.ExecutionCount,
		schedule.MaxExecutions,
		schedule.EndDate,
		schedule.Active,
		schedule.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrScheduleNotFound
	}

	return nil
}

// ClaimDue claims up to limit due schedules for claimTTL. SKIP LOCKED plus
// the claimed_until stamp keeps overlapping ticks, and other instances, from
// dispatching the same row twice.
func (r *ScheduleRepository) ClaimDue(ctx context.Context, now time.Time, claimTTL time.Duration, limit int) ([]*domain.ScheduleDefinition, error) {
	query := `
		UPDATE schedules
		SET claimed_until = $2
		WHERE id IN (
			SELECT id FROM schedules
			WHERE active AND next_execution_at <= $1
				AND (claimed_until IS NULL OR claimed_until <= $1)
			ORDER BY next_execution_at ASC
			LIMIT $3
			FOR UPDATE SKIP LOCKED
		)
		RETURNING ` + scheduleColumns + `
	`

	rows, err := r.pool.Query(ctx, query, now, now.Add(claimTTL), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.ScheduleDefinition
	for rows.Next() {
		schedule, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, schedule)
	}

	return out, rows.Err()
}

// ListByUser retrieves a user's schedules, newest first.
func (r *ScheduleRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.ScheduleDefinition, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM schedules
		WHERE template->>'UserID' = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.ScheduleDefinition
	for rows.Next() {
		schedule, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, schedule)
	}

	return out, rows.Err()
}

func scanSchedule(row rowScanner) (*domain.ScheduleDefinition, error) {
	var (
		schedule     domain.ScheduleDefinition
		claimedUntil *time.Time
	)

	err := row.Scan(
		&schedule.ID,
		&schedule.Template,
		&schedule.Frequency,
		&schedule.NextExecutionAt,
		&schedule.ExecutionCount,
		&schedule.MaxExecutions,
		&schedule.EndDate,
		&schedule.Active,
		&claimedUntil,
		&schedule.CreatedAt,
		&schedule.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &schedule, nil
}
