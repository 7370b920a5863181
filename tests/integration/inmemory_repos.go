package integration

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tokenvine/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// --- In-Memory Account Repo ---

type inMemoryAccountRepo struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]*domain.Account
}

func newInMemoryAccountRepo() *inMemoryAccountRepo {
	return &inMemoryAccountRepo{accounts: make(map[uuid.UUID]*domain.Account)}
}

func (r *inMemoryAccountRepo) Create(ctx context.Context, a *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[a.ID]; ok {
		return fmt.Errorf("account already exists")
	}
	cp := *a
	r.accounts[a.ID] = &cp
	return nil
}

func (r *inMemoryAccountRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.accounts[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *inMemoryAccountRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Account, error) {
	return r.GetByID(ctx, id)
}

func (r *inMemoryAccountRepo) ListByFamily(ctx context.Context, familyID uuid.UUID) ([]domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Account
	for _, a := range r.accounts {
		if a.FamilyID == familyID {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (r *inMemoryAccountRepo) ListWithoutWallet(ctx context.Context) ([]domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Account
	for _, a := range r.accounts {
		result = append(result, *a)
	}
	return result, nil
}

func (r *inMemoryAccountRepo) UpdateTokenState(ctx context.Context, tx pgx.Tx, id uuid.UUID, balance, dailyEarned int64, lastReset time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return fmt.Errorf("account not found")
	}
	a.TokenBalance = balance
	a.DailyTokensEarned = dailyEarned
	a.LastTokenResetDate = lastReset
	a.UpdatedAt = time.Now()
	return nil
}

// --- In-Memory Ledger Repo ---

type inMemoryLedgerRepo struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]*domain.LedgerEntry
	order   []uuid.UUID // insertion order, oldest first
}

func newInMemoryLedgerRepo() *inMemoryLedgerRepo {
	return &inMemoryLedgerRepo{entries: make(map[uuid.UUID]*domain.LedgerEntry)}
}

func (r *inMemoryLedgerRepo) Create(ctx context.Context, tx pgx.Tx, e *domain.LedgerEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *e
	r.entries[e.ID] = &cp
	r.order = append(r.order, e.ID)
	return nil
}

func (r *inMemoryLedgerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.LedgerEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (r *inMemoryLedgerRepo) ListByAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]domain.LedgerEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.LedgerEntry
	for i := len(r.order) - 1; i >= 0 && len(result) < limit; i-- {
		e := r.entries[r.order[i]]
		if e.AccountID == accountID {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (r *inMemoryLedgerRepo) ListByAccounts(ctx context.Context, accountIDs []uuid.UUID, limit int) ([]domain.LedgerEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make(map[uuid.UUID]bool, len(accountIDs))
	for _, id := range accountIDs {
		ids[id] = true
	}
	var result []domain.LedgerEntry
	for i := len(r.order) - 1; i >= 0 && len(result) < limit; i-- {
		e := r.entries[r.order[i]]
		if ids[e.AccountID] {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (r *inMemoryLedgerRepo) ListSyncEligible(ctx context.Context, maxRetries, limit int) ([]domain.LedgerEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.LedgerEntry
	for _, id := range r.order {
		if len(result) >= limit {
			break
		}
		e := r.entries[id]
		if (e.SyncStatus == domain.SyncStatusPending || e.SyncStatus == domain.SyncStatusFailed) && e.RetryCount < maxRetries {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (r *inMemoryLedgerRepo) MarkSubmitted(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		return fmt.Errorf("entry not found")
	}
	e.SyncStatus = domain.SyncStatusSubmitted
	return nil
}

func (r *inMemoryLedgerRepo) MarkConfirmed(ctx context.Context, id uuid.UUID, txHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		return fmt.Errorf("entry not found")
	}
	now := time.Now()
	e.SyncStatus = domain.SyncStatusConfirmed
	e.TxHash = &txHash
	e.SyncError = nil
	e.SyncedAt = &now
	return nil
}

func (r *inMemoryLedgerRepo) MarkFailed(ctx context.Context, id uuid.UUID, syncError string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		return fmt.Errorf("entry not found")
	}
	e.SyncStatus = domain.SyncStatusFailed
	e.SyncError = &syncError
	e.RetryCount++
	return nil
}

// --- In-Memory Spend Request Repo ---

type inMemorySpendRequestRepo struct {
	mu       sync.RWMutex
	requests map[uuid.UUID]*domain.SpendRequest
	order    []uuid.UUID
}

func newInMemorySpendRequestRepo() *inMemorySpendRequestRepo {
	return &inMemorySpendRequestRepo{requests: make(map[uuid.UUID]*domain.SpendRequest)}
}

func (r *inMemorySpendRequestRepo) Create(ctx context.Context, req *domain.SpendRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *req
	r.requests[req.ID] = &cp
	r.order = append(r.order, req.ID)
	return nil
}

func (r *inMemorySpendRequestRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.SpendRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	req, ok := r.requests[id]
	if !ok {
		return nil, nil
	}
	cp := *req
	return &cp, nil
}

func (r *inMemorySpendRequestRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.SpendRequest, error) {
	return r.GetByID(ctx, id)
}

func (r *inMemorySpendRequestRepo) CountPending(ctx context.Context, accountID uuid.UUID) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, req := range r.requests {
		if req.AccountID == accountID && req.Status == domain.SpendRequestStatusPending {
			count++
		}
	}
	return count, nil
}

func (r *inMemorySpendRequestRepo) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]domain.SpendRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.SpendRequest
	for i := len(r.order) - 1; i >= 0; i-- {
		req := r.requests[r.order[i]]
		if req.AccountID == accountID {
			result = append(result, *req)
		}
	}
	return result, nil
}

func (r *inMemorySpendRequestRepo) ListPendingByAccounts(ctx context.Context, accountIDs []uuid.UUID) ([]domain.SpendRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make(map[uuid.UUID]bool, len(accountIDs))
	for _, id := range accountIDs {
		ids[id] = true
	}
	var result []domain.SpendRequest
	for _, id := range r.order {
		req := r.requests[id]
		if ids[req.AccountID] && req.Status == domain.SpendRequestStatusPending {
			result = append(result, *req)
		}
	}
	return result, nil
}

func (r *inMemorySpendRequestRepo) SetReviewed(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.SpendRequestStatus, reviewedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return fmt.Errorf("spend request not found")
	}
	if req.Status != domain.SpendRequestStatusPending {
		return fmt.Errorf("spend request already reviewed")
	}
	req.Status = status
	req.ReviewedAt = &reviewedAt
	return nil
}

// --- In-Memory Wallet Repo ---

type inMemoryWalletRepo struct {
	mu      sync.RWMutex
	wallets map[uuid.UUID]*domain.Wallet // keyed by account id
}

func newInMemoryWalletRepo() *inMemoryWalletRepo {
	return &inMemoryWalletRepo{wallets: make(map[uuid.UUID]*domain.Wallet)}
}

func (r *inMemoryWalletRepo) Create(ctx context.Context, w *domain.Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.wallets[w.AccountID]; ok {
		return fmt.Errorf("wallet already exists for account")
	}
	cp := *w
	r.wallets[w.AccountID] = &cp
	return nil
}

func (r *inMemoryWalletRepo) GetByAccountID(ctx context.Context, accountID uuid.UUID) (*domain.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.wallets[accountID]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *inMemoryWalletRepo) ListByAccounts(ctx context.Context, accountIDs []uuid.UUID) ([]domain.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Wallet
	for _, id := range accountIDs {
		if w, ok := r.wallets[id]; ok {
			result = append(result, *w)
		}
	}
	return result, nil
}

// --- In-Memory Transactor (no-op tx) ---

type inMemoryTransactor struct{}

func newInMemoryTransactor() *inMemoryTransactor {
	return &inMemoryTransactor{}
}

func (t *inMemoryTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	return &noopTx{}, nil
}

// noopTx is a no-op pgx.Tx implementation for in-memory testing.
type noopTx struct{}

func (t *noopTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *noopTx) Commit(ctx context.Context) error          { return nil }
func (t *noopTx) Rollback(ctx context.Context) error        { return nil }
func (t *noopTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *noopTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *noopTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *noopTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *noopTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *noopTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *noopTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
func (t *noopTx) Conn() *pgx.Conn { return nil }
