package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"

	"github.com/iho/payrails/internal/domain"
	"github.com/iho/payrails/internal/usecase"
)

// AuditRepository implements audit log persistence. The table is append-only.
type AuditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository creates a new audit repository.
func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

const auditInsert = `
	INSERT INTO audit_logs (id, user_id, action, resource_type, resource_id,
		before_state, after_state, status, error_message, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`

// Create inserts a new audit log entry.
func (r *AuditRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	_, err := r.pool.Exec(ctx, auditInsert, auditArgs(log)...)

	return err
}

// CreateTx inserts a new audit log entry inside tx, so the trail commits or
// rolls back with the operation it records.
func (r *AuditRepository) CreateTx(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error {
	_, err := tx.(*Tx).PgxTx().Exec(ctx, auditInsert, auditArgs(log)...)

	return err
}

func auditArgs(log *domain.AuditLog) []any {
	if log.ID == "" {
		log.ID = ulid.Make().String()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}

	return []any{
		log.ID,
		log.UserID,
		log.Action,
		log.ResourceType,
		log.ResourceID,
		log.BeforeState,
		log.AfterState,
		log.Status,
		log.ErrorMessage,
		log.CreatedAt,
	}
}
