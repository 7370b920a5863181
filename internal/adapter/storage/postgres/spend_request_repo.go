package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tokenvine/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SpendRequestRepo implements ports.SpendRequestRepository.
type SpendRequestRepo struct {
	pool Pool
}

// NewSpendRequestRepo creates a new SpendRequestRepo.
func NewSpendRequestRepo(pool Pool) *SpendRequestRepo {
	return &SpendRequestRepo{pool: pool}
}

const spendRequestColumns = `id, account_id, amount, reason, reference_id, status, reviewed_at, created_at`

func scanSpendRequest(row pgx.Row) (*domain.SpendRequest, error) {
	sr := &domain.SpendRequest{}
	err := row.Scan(
		&sr.ID, &sr.AccountID, &sr.Amount, &sr.Reason, &sr.ReferenceID,
		&sr.Status, &sr.ReviewedAt, &sr.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return sr, nil
}

func collectSpendRequests(rows pgx.Rows) ([]domain.SpendRequest, error) {
	defer rows.Close()
	var requests []domain.SpendRequest
	for rows.Next() {
		sr, err := scanSpendRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan spend request: %w", err)
		}
		requests = append(requests, *sr)
	}
	return requests, rows.Err()
}

// Create inserts a new spend request.
func (r *SpendRequestRepo) Create(ctx context.Context, sr *domain.SpendRequest) error {
	query := `INSERT INTO spend_requests (id, account_id, amount, reason, reference_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		sr.ID, sr.AccountID, sr.Amount, sr.Reason, sr.ReferenceID, sr.Status, sr.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert spend request: %w", err)
	}
	return nil
}

// GetByID fetches a spend request by its UUID (without locking).
func (r *SpendRequestRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.SpendRequest, error) {
	query := `SELECT ` + spendRequestColumns + ` FROM spend_requests WHERE id = $1`

	sr, err := scanSpendRequest(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get spend request by id: %w", err)
	}
	return sr, nil
}

// GetByIDForUpdate fetches a spend request with pessimistic locking.
// This MUST be called within a transaction.
func (r *SpendRequestRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.SpendRequest, error) {
	query := `SELECT ` + spendRequestColumns + ` FROM spend_requests WHERE id = $1 FOR UPDATE`

	sr, err := scanSpendRequest(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get spend request for update: %w", err)
	}
	return sr, nil
}

// CountPending counts an account's open requests.
func (r *SpendRequestRepo) CountPending(ctx context.Context, accountID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM spend_requests WHERE account_id = $1 AND status = 'PENDING'`

	var count int
	if err := r.pool.QueryRow(ctx, query, accountID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count pending spend requests: %w", err)
	}
	return count, nil
}

// ListByAccount fetches an account's requests, newest first.
func (r *SpendRequestRepo) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]domain.SpendRequest, error) {
	query := `SELECT ` + spendRequestColumns + ` FROM spend_requests
		WHERE account_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("list spend requests: %w", err)
	}
	return collectSpendRequests(rows)
}

// ListPendingByAccounts fetches open requests across a set of accounts,
// oldest first, so parents review in arrival order.
func (r *SpendRequestRepo) ListPendingByAccounts(ctx context.Context, accountIDs []uuid.UUID) ([]domain.SpendRequest, error) {
	query := `SELECT ` + spendRequestColumns + ` FROM spend_requests
		WHERE account_id = ANY($1) AND status = 'PENDING' ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("list pending spend requests: %w", err)
	}
	return collectSpendRequests(rows)
}

// SetReviewed transitions PENDING to a terminal state. The status guard
// in the WHERE clause makes a double review a no-op at the SQL level,
// reported as an error here.
func (r *SpendRequestRepo) SetReviewed(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.SpendRequestStatus, reviewedAt time.Time) error {
	query := `UPDATE spend_requests SET status = $1, reviewed_at = $2
		WHERE id = $3 AND status = 'PENDING'`

	tag, err := tx.Exec(ctx, query, status, reviewedAt, id)
	if err != nil {
		return fmt.Errorf("set reviewed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("spend request not pending: %s", id)
	}
	return nil
}
