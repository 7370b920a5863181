package ports

import (
	"context"
	"time"

	"tokenvine/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// AccountRepository defines persistence operations for accounts.
// Methods accepting pgx.Tx are used inside transaction blocks for
// pessimistic locking.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Account, error)
	ListByFamily(ctx context.Context, familyID uuid.UUID) ([]domain.Account, error)
	ListWithoutWallet(ctx context.Context) ([]domain.Account, error)
	// UpdateTokenState writes the balance and daily counters in one
	// statement. MUST be called within the transaction that locked the row.
	UpdateTokenState(ctx context.Context, tx pgx.Tx, id uuid.UUID, balance, dailyEarned int64, lastReset time.Time) error
}

// LedgerRepository defines persistence for the append-only ledger.
// Entries are immutable except for their embedded sync state.
type LedgerRepository interface {
	Create(ctx context.Context, tx pgx.Tx, entry *domain.LedgerEntry) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.LedgerEntry, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]domain.LedgerEntry, error)
	ListByAccounts(ctx context.Context, accountIDs []uuid.UUID, limit int) ([]domain.LedgerEntry, error)
	// ListSyncEligible returns entries with sync status PENDING or FAILED
	// and retry_count below the cap, oldest first.
	ListSyncEligible(ctx context.Context, maxRetries, limit int) ([]domain.LedgerEntry, error)
	MarkSubmitted(ctx context.Context, id uuid.UUID) error
	MarkConfirmed(ctx context.Context, id uuid.UUID, txHash string) error
	// MarkFailed records the error message and increments retry_count.
	MarkFailed(ctx context.Context, id uuid.UUID, syncError string) error
}

// SpendRequestRepository defines persistence for spend requests.
type SpendRequestRepository interface {
	Create(ctx context.Context, request *domain.SpendRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SpendRequest, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.SpendRequest, error)
	CountPending(ctx context.Context, accountID uuid.UUID) (int, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]domain.SpendRequest, error)
	ListPendingByAccounts(ctx context.Context, accountIDs []uuid.UUID) ([]domain.SpendRequest, error)
	// SetReviewed transitions PENDING to a terminal state and stamps
	// reviewed_at. Implementations must refuse non-PENDING rows.
	SetReviewed(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.SpendRequestStatus, reviewedAt time.Time) error
}

// WalletRepository defines persistence operations for wallets.
type WalletRepository interface {
	Create(ctx context.Context, wallet *domain.Wallet) error
	GetByAccountID(ctx context.Context, accountID uuid.UUID) (*domain.Wallet, error)
	ListByAccounts(ctx context.Context, accountIDs []uuid.UUID) ([]domain.Wallet, error)
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
