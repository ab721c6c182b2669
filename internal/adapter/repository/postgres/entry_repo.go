package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/payrails/internal/domain"
	"github.com/iho/payrails/internal/usecase"
)

const entryColumns = `id, account_id, transfer_id, type, amount, previous_balance, current_balance, account_version, created_at`

// EntryRepository implements usecase.EntryRepository.
type EntryRepository struct {
	pool *pgxpool.Pool
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{pool: pool}
}

// Create appends a ledger entry inside tx. Entries are never updated.
func (r *EntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error {
	query := `
		INSERT INTO ledger_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := tx.(*Tx).PgxTx().Exec(ctx, query,
		entry.ID,
		entry.AccountID,
		entry.TransferID,
		entry.Type,
		entry.Amount,
		entry.PreviousBalance,
		entry.CurrentBalance,
		entry.AccountVersion,
		entry.CreatedAt,
	)

	return err
}

// GetByTransfer retrieves all legs of one transfer in insertion order.
func (r *EntryRepository) GetByTransfer(ctx context.Context, transferID string) ([]*domain.LedgerEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE transfer_id = $1 ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, transferID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.LedgerEntry
	for rows.Next() {
		var entry domain.LedgerEntry
		err := rows.Scan(
			&entry.ID,
			&entry.AccountID,
			&entry.TransferID,
			&entry.Type,
			&entry.Amount,
			&entry.PreviousBalance,
			&entry.CurrentBalance,
			&entry.AccountVersion,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, &entry)
	}

	return out, rows.Err()
}
