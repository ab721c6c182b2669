package postgres

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/payrails/internal/domain"
	"github.com/iho/payrails/internal/usecase"
)

const pgErrUniqueViolation = "23505"

const transferColumns = `id, reference, channel, status, source_account_id, destination,
	amount, fee, total_amount, currency, dest_currency, fx_rate, converted_amount,
	risk_verdict, review_flagged, verification_ref, external_ref, failure_reason,
	reversed, retry_count, max_retries, idempotency_key, schedule_id, narration,
	receipt, created_at, updated_at`

// TransferRepository implements usecase.TransferRepository.
type TransferRepository struct {
	pool *pgxpool.Pool
}

// NewTransferRepository creates a new TransferRepository.
func NewTransferRepository(pool *pgxpool.Pool) *TransferRepository {
	return &TransferRepository{pool: pool}
}

// Create inserts the record inside tx. A second insert with the same
// idempotency key surfaces as domain.ErrDuplicateIdempotencyKey.
func (r *TransferRepository) Create(ctx context.Context, tx usecase.Transaction, rec *domain.TransferRecord) error {
	query := `
		INSERT INTO transfer_records (` + transferColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27)
	`

	_, err := tx.(*Tx).PgxTx().Exec(ctx, query,
		rec.ID,
		rec.Reference,
		rec.Channel,
		rec.Status,
		rec.SourceAccountID,
		rec.Destination,
		rec.Amount,
		rec.Fee,
		rec.TotalAmount,
		rec.Currency,
		nullString(rec.DestCurrency),
		decimalPtrToNumeric(rec.FXRate),
		rec.ConvertedAmount,
		rec.RiskVerdict,
		rec.ReviewFlagged,
		nullString(rec.VerificationRef),
		nullString(rec.ExternalRef),
		nullString(rec.FailureReason),
		rec.Reversed,
		rec.RetryCount,
		rec.MaxRetries,
		nullString(rec.IdempotencyKey),
		nullString(rec.ScheduleID),
		rec.Narration,
		rec.Receipt,
		rec.CreatedAt,
		rec.UpdatedAt,
	)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation &&
		strings.Contains(pgErr.ConstraintName, "idempotency") {
		return domain.ErrDuplicateIdempotencyKey
	}

	return err
}

// Update rewrites the mutable columns inside tx.
func (r *TransferRepository) Update(ctx context.Context, tx usecase.Transaction, rec *domain.TransferRecord) error {
	query := `
		UPDATE transfer_records
		SET status = $2, fee = $3, total_amount = $4, dest_currency = $5,
			fx_rate = $6, converted_amount = $7, risk_verdict = $8,
			review_flagged = $9, verification_ref = $10, external_ref = $11,
			failure_reason = $12, reversed = $13, retry_count = $14,
			receipt = $15, updated_at = $16
		WHERE id = $1
	`

	tag, err := tx.(*Tx).PgxTx().Exec(ctx, query,
		rec.ID,
		rec.Status,
		rec.Fee,
		rec.TotalAmount,
		nullString(rec.DestCurrency),
		decimalPtrToNumeric(rec.FXRate),
		rec.ConvertedAmount,
		rec.RiskVerdict,
		rec.ReviewFlagged,
		nullString(rec.VerificationRef),
		nullString(rec.ExternalRef),
		nullString(rec.FailureReason),
		rec.Reversed,
		rec.RetryCount,
		rec.Receipt,
		rec.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransferNotFound
	}

	return nil
}

// GetByID retrieves a record by ID.
func (r *TransferRepository) GetByID(ctx context.Context, id string) (*domain.TransferRecord, error) {
	query := `SELECT ` + transferColumns + ` FROM transfer_records WHERE id = $1`

	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

// GetByReference retrieves a record by its customer-facing reference.
func (r *TransferRepository) GetByReference(ctx context.Context, reference string) (*domain.TransferRecord, error) {
	query := `SELECT ` + transferColumns + ` FROM transfer_records WHERE reference = $1`

	return r.scanOne(r.pool.QueryRow(ctx, query, reference))
}

// GetByReferenceForUpdate retrieves a record by reference with a FOR UPDATE
// lock, serializing callbacks and reconciliation against each other.
func (r *TransferRepository) GetByReferenceForUpdate(ctx context.Context, tx usecase.Transaction, reference string) (*domain.TransferRecord, error) {
	query := `SELECT ` + transferColumns + ` FROM transfer_records WHERE reference = $1 FOR UPDATE`

	return r.scanOne(tx.(*Tx).PgxTx().QueryRow(ctx, query, reference))
}

// GetByIdempotencyKey retrieves a record by its idempotency key.
func (r *TransferRepository) GetByIdempotencyKey(ctx context.Context, key string) (*domain.TransferRecord, error) {
	query := `SELECT ` + transferColumns + ` FROM transfer_records WHERE idempotency_key = $1`

	return r.scanOne(r.pool.QueryRow(ctx, query, key))
}

// ListByAccount retrieves an account's transfer history, newest first.
func (r *TransferRepository) ListByAccount(ctx context.Context, accountID string, filter usecase.HistoryFilter) ([]*domain.TransferRecord, error) {
	query := `SELECT ` + transferColumns + ` FROM transfer_records WHERE source_account_id = $1`
	args := []any{accountID}

	if filter.Channel != "" {
		args = append(args, filter.Channel)
		query += ` AND channel = $` + strconv.Itoa(len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += ` AND created_at >= $` + strconv.Itoa(len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += ` AND created_at < $` + strconv.Itoa(len(args))
	}

	args = append(args, filter.Limit)
	query += ` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args))
	args = append(args, filter.Offset)
	query += ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanMany(rows)
}

// ListPending retrieves non-terminal records stuck since before olderThan,
// oldest first, for the reconciliation sweep.
func (r *TransferRepository) ListPending(ctx context.Context, olderThan time.Time, limit int) ([]*domain.TransferRecord, error) {
	query := `
		SELECT ` + transferColumns + `
		FROM transfer_records
		WHERE status IN ('debited', 'settling') AND updated_at < $1
		ORDER BY updated_at ASC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, olderThan, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanMany(rows)
}

// SumAmounts totals the amounts an account has moved on one channel since a
// cutoff, counting only the given statuses. The rolling limit check calls it
// with the debit transaction so the sum is read under the account lock.
func (r *TransferRepository) SumAmounts(ctx context.Context, tx usecase.Transaction, accountID string, channel domain.Channel, statuses []domain.TransferStatus, since time.Time) (int64, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM transfer_records
		WHERE source_account_id = $1 AND channel = $2 AND status = ANY($3) AND created_at >= $4
	`

	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}

	var row pgx.Row
	if tx != nil {
		row = tx.(*Tx).PgxTx().QueryRow(ctx, query, accountID, channel, names, since)
	} else {
		row = r.pool.QueryRow(ctx, query, accountID, channel, names, since)
	}

	var sum int64
	err := row.Scan(&sum)

	return sum, err
}

func (r *TransferRepository) scanOne(row rowScanner) (*domain.TransferRecord, error) {
	rec, err := scanTransfer(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTransferNotFound
	}

	return rec, err
}

func (r *TransferRepository) scanMany(rows pgx.Rows) ([]*domain.TransferRecord, error) {
	var out []*domain.TransferRecord
	for rows.Next() {
		rec, err := scanTransfer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}

	return out, rows.Err()
}

func scanTransfer(row rowScanner) (*domain.TransferRecord, error) {
	var (
		rec             domain.TransferRecord
		destCurrency    *string
		fxRate          pgtype.Numeric
		verificationRef *string
		externalRef     *string
		failureReason   *string
		idempotencyKey  *string
		scheduleID      *string
	)

	err := row.Scan(
		&rec.ID,
		&rec.Reference,
		&rec.Channel,
		&rec.Status,
		&rec.SourceAccountID,
		&rec.Destination,
		&rec.Amount,
		&rec.Fee,
		&rec.TotalAmount,
		&rec.Currency,
		&destCurrency,
		&fxRate,
		&rec.ConvertedAmount,
		&rec.RiskVerdict,
		&rec.ReviewFlagged,
		&verificationRef,
		&externalRef,
		&failureReason,
		&rec.Reversed,
		&rec.RetryCount,
		&rec.MaxRetries,
		&idempotencyKey,
		&scheduleID,
		&rec.Narration,
		&rec.Receipt,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	rec.DestCurrency = deref(destCurrency)
	rec.FXRate = numericToDecimalPtr(fxRate)
	rec.VerificationRef = deref(verificationRef)
	rec.ExternalRef = deref(externalRef)
	rec.FailureReason = deref(failureReason)
	rec.IdempotencyKey = deref(idempotencyKey)
	rec.ScheduleID = deref(scheduleID)

	return &rec, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func decimalPtrToNumeric(d *decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric
	if d == nil {
		return n
	}

	_ = n.Scan(d.String())

	return n
}

func numericToDecimalPtr(n pgtype.Numeric) *decimal.Decimal {
	if !n.Valid {
		return nil
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return &d
}
