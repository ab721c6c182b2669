package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
)

// ExemptionRepository implements usecase.ExemptionRepository over an
// explicit allowlist table, so every exemption leaves a row with a reason.
type ExemptionRepository struct {
	pool *pgxpool.Pool
}

// NewExemptionRepository creates a new ExemptionRepository.
func NewExemptionRepository(pool *pgxpool.Pool) *ExemptionRepository {
	return &ExemptionRepository{pool: pool}
}

// IsExempt reports whether the account is on the allowlist.
func (r *ExemptionRepository) IsExempt(ctx context.Context, accountID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM limit_exemptions WHERE account_id = $1)`

	var exempt bool
	err := r.pool.QueryRow(ctx, query, accountID).Scan(&exempt)

	return exempt, err
}

// Add puts the account on the allowlist. Adding twice is a no-op.
func (r *ExemptionRepository) Add(ctx context.Context, accountID, reason string) error {
	query := `
		INSERT INTO limit_exemptions (id, account_id, reason, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (account_id) DO NOTHING
	`

	_, err := r.pool.Exec(ctx, query, ulid.Make().String(), accountID, reason, time.Now().UTC())

	return err
}
