package postgres

import (
	"context"
	"errors"
	"fmt"

	"tokenvine/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// LedgerRepo implements ports.LedgerRepository. Rows are append-only:
// amount, type and balance_after never change after insert, only the
// sync_* columns do.
type LedgerRepo struct {
	pool Pool
}

// NewLedgerRepo creates a new LedgerRepo.
func NewLedgerRepo(pool Pool) *LedgerRepo {
	return &LedgerRepo{pool: pool}
}

const ledgerColumns = `id, account_id, type, amount, balance_after, description,
	reference_id, sync_status, tx_hash, sync_error, retry_count, synced_at, created_at`

func scanLedgerEntry(row pgx.Row) (*domain.LedgerEntry, error) {
	e := &domain.LedgerEntry{}
	err := row.Scan(
		&e.ID, &e.AccountID, &e.Type, &e.Amount, &e.BalanceAfter, &e.Description,
		&e.ReferenceID, &e.SyncStatus, &e.TxHash, &e.SyncError, &e.RetryCount,
		&e.SyncedAt, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func collectLedgerEntries(rows pgx.Rows) ([]domain.LedgerEntry, error) {
	defer rows.Close()
	var entries []domain.LedgerEntry
	for rows.Next() {
		e, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// Create inserts a ledger entry within the balance-updating transaction.
func (r *LedgerRepo) Create(ctx context.Context, tx pgx.Tx, e *domain.LedgerEntry) error {
	query := `INSERT INTO ledger_entries (id, account_id, type, amount, balance_after,
		description, reference_id, sync_status, retry_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := tx.Exec(ctx, query,
		e.ID, e.AccountID, e.Type, e.Amount, e.BalanceAfter,
		e.Description, e.ReferenceID, e.SyncStatus, e.RetryCount, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}

// GetByID fetches a ledger entry by its UUID.
func (r *LedgerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries WHERE id = $1`

	e, err := scanLedgerEntry(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ledger entry by id: %w", err)
	}
	return e, nil
}

// ListByAccount fetches an account's entries, newest first.
func (r *LedgerRepo) ListByAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries
		WHERE account_id = $1 ORDER BY created_at DESC LIMIT $2`

	rows, err := r.pool.Query(ctx, query, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	return collectLedgerEntries(rows)
}

// ListByAccounts fetches recent entries across a set of accounts,
// newest first.
func (r *LedgerRepo) ListByAccounts(ctx context.Context, accountIDs []uuid.UUID, limit int) ([]domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries
		WHERE account_id = ANY($1) ORDER BY created_at DESC LIMIT $2`

	rows, err := r.pool.Query(ctx, query, accountIDs, limit)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries by accounts: %w", err)
	}
	return collectLedgerEntries(rows)
}

// ListSyncEligible fetches entries awaiting chain sync, oldest first, so
// on-chain ordering follows ledger ordering.
func (r *LedgerRepo) ListSyncEligible(ctx context.Context, maxRetries, limit int) ([]domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries
		WHERE sync_status IN ('PENDING', 'FAILED') AND retry_count < $1
		ORDER BY created_at ASC LIMIT $2`

	rows, err := r.pool.Query(ctx, query, maxRetries, limit)
	if err != nil {
		return nil, fmt.Errorf("list sync-eligible entries: %w", err)
	}
	return collectLedgerEntries(rows)
}

// MarkSubmitted transitions an entry to SUBMITTED.
func (r *LedgerRepo) MarkSubmitted(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE ledger_entries SET sync_status = 'SUBMITTED' WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("mark submitted: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("ledger entry not found: %s", id)
	}
	return nil
}

// MarkConfirmed records the transaction hash and clears any prior error.
func (r *LedgerRepo) MarkConfirmed(ctx context.Context, id uuid.UUID, txHash string) error {
	query := `UPDATE ledger_entries SET sync_status = 'CONFIRMED', tx_hash = $1,
		sync_error = NULL, synced_at = NOW() WHERE id = $2`

	tag, err := r.pool.Exec(ctx, query, txHash, id)
	if err != nil {
		return fmt.Errorf("mark confirmed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("ledger entry not found: %s", id)
	}
	return nil
}

// MarkFailed records the error message and spends one retry.
func (r *LedgerRepo) MarkFailed(ctx context.Context, id uuid.UUID, syncError string) error {
	query := `UPDATE ledger_entries SET sync_status = 'FAILED', sync_error = $1,
		retry_count = retry_count + 1 WHERE id = $2`

	tag, err := r.pool.Exec(ctx, query, syncError, id)
	if err != nil {
		return fmt.Errorf("mark failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("ledger entry not found: %s", id)
	}
	return nil
}
