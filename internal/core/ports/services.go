package ports

import (
	"context"
	"time"

	"tokenvine/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

//go:generate mockgen -destination=mocks/collaborators_mock.go -package=mocks tokenvine/internal/core/ports EncryptionService,ChainClient,KeyVault,SyncQueue,TokenVerifier
//go:generate mockgen -destination=mocks/services_mock.go -package=mocks tokenvine/internal/core/ports LedgerService,SpendService,ReconcilerService,WalletService

// EncryptionService handles AES-256-GCM encryption of wallet private
// keys at rest. Ciphertext, IV and auth tag travel as separate hex
// strings to match the wallet storage layout.
type EncryptionService interface {
	Encrypt(plaintext string) (ciphertext, iv, tag string, err error)
	Decrypt(ciphertext, iv, tag string) (string, error)
}

// ChainClient mirrors ledger entries on the token contract through the
// external signing relayer. Both calls block on network round-trips and
// may take seconds; callers must never sit on the request path.
type ChainClient interface {
	Mint(ctx context.Context, address string, amount int64) (txHash string, err error)
	Burn(ctx context.Context, address string, amount int64) (txHash string, err error)
}

// KeyVault generates blockchain keypairs for new wallets.
type KeyVault interface {
	GenerateKeypair() (address string, privateKeyHex string, err error)
}

// SyncQueue is the fire-and-forget hand-off between the request path
// and the chain reconciler: producers enqueue entry ids and return
// immediately; the reconciler worker consumes them.
type SyncQueue interface {
	Enqueue(ctx context.Context, entryID uuid.UUID) error
	// Dequeue blocks up to timeout. ok is false when the queue was empty.
	Dequeue(ctx context.Context, timeout time.Duration) (entryID uuid.UUID, ok bool, err error)
}

// SessionClaims is the verified identity supplied by the auth
// collaborator. The core trusts these without re-verifying identity.
type SessionClaims struct {
	AccountID uuid.UUID
	FamilyID  uuid.UUID
	Role      string // "parent" or "child"
}

// TokenVerifier validates session tokens issued by the auth collaborator.
type TokenVerifier interface {
	Validate(tokenString string) (*SessionClaims, error)
}

// RateLimitResult holds the outcome of a rate limit check.
type RateLimitResult struct {
	Allowed   bool
	Limit     int64
	Remaining int64
	ResetAt   int64 // Unix timestamp
}

// RateLimitStore counts requests per key within a fixed window.
type RateLimitStore interface {
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (*RateLimitResult, error)
}

// HealthChecker verifies connectivity of a backing service.
type HealthChecker interface {
	Name() string
	Ping(ctx context.Context) error
}

// --- Service Ports (Business Logic) ---

// EarnInput holds validated input for crediting tokens.
type EarnInput struct {
	AccountID   uuid.UUID
	Type        domain.EntryType
	Amount      int64
	Description string
	ReferenceID *string
}

// EarnResult reports the applied award. Entry is nil when the daily cap
// swallowed the whole award.
type EarnResult struct {
	Entry      *domain.LedgerEntry
	Awarded    int64
	NewBalance int64
}

// SpendInput holds validated input for debiting tokens.
type SpendInput struct {
	AccountID   uuid.UUID
	Type        domain.EntryType
	Amount      int64 // positive; stored negated
	Description string
	ReferenceID *string
}

// BalanceInfo is the boundary projection of an account's token state.
type BalanceInfo struct {
	Balance     int64 `json:"balance"`
	DailyEarned int64 `json:"daily_earned"`
	DailyCap    int64 `json:"daily_cap"`
}

// ChildSummary is one child's row in the family token summary.
type ChildSummary struct {
	AccountID     uuid.UUID `json:"account_id"`
	DisplayName   string    `json:"display_name"`
	TokenBalance  int64     `json:"token_balance"`
	DailyEarned   int64     `json:"daily_earned"`
	WalletAddress *string   `json:"wallet_address,omitempty"`
}

// FamilySummary aggregates the parent dashboard view.
type FamilySummary struct {
	Children           []ChildSummary        `json:"children"`
	PendingRequests    []domain.SpendRequest `json:"pending_requests"`
	RecentTransactions []domain.LedgerEntry  `json:"recent_transactions"`
}

// LedgerService applies signed deltas to account balances and owns the
// balance/entry atomicity invariant.
type LedgerService interface {
	ApplyEarn(ctx context.Context, in EarnInput) (*EarnResult, error)
	ApplySpend(ctx context.Context, in SpendInput) (*domain.LedgerEntry, error)
	// ApplySpendInTx debits inside a caller-owned transaction so the
	// spend mediator can mark a request reviewed in the same atomic
	// unit. The caller commits and then hands the entry to EnqueueSync.
	ApplySpendInTx(ctx context.Context, tx pgx.Tx, in SpendInput) (*domain.LedgerEntry, error)
	// EnqueueSync pushes a committed entry to the chain sync queue.
	// Best-effort: failures are logged, never surfaced.
	EnqueueSync(ctx context.Context, entry *domain.LedgerEntry)
	GetBalance(ctx context.Context, accountID uuid.UUID) (*BalanceInfo, error)
	GetHistory(ctx context.Context, accountID uuid.UUID, limit int) ([]domain.LedgerEntry, error)
	GetFamilySummary(ctx context.Context, familyID uuid.UUID) (*FamilySummary, error)
}

// CreateSpendRequestInput holds validated input for a new spend request.
type CreateSpendRequestInput struct {
	AccountID   uuid.UUID
	Amount      int64
	Reason      string
	ReferenceID *string
}

// SpendService mediates parent decisions over child spend requests.
type SpendService interface {
	CreateRequest(ctx context.Context, in CreateSpendRequestInput) (*domain.SpendRequest, error)
	ReviewRequest(ctx context.Context, requestID, reviewerFamilyID uuid.UUID, approve bool) (*domain.SpendRequest, error)
	ListRequests(ctx context.Context, accountID uuid.UUID) ([]domain.SpendRequest, error)
	ListPendingForFamily(ctx context.Context, familyID uuid.UUID) ([]domain.SpendRequest, error)
}

// SyncReport aggregates one reconciliation batch for the scheduler.
// Skipped counts entries left PENDING without a retry charge, such as
// entries whose account has no wallet yet.
type SyncReport struct {
	Synced  int `json:"synced"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

// ReconcilerService mirrors ledger entries onto the blockchain.
// It never raises business errors across its boundary: every chain
// failure is recorded in entry state and reported only in aggregate.
type ReconcilerService interface {
	SyncEntry(ctx context.Context, entryID uuid.UUID) error
	ProcessPendingBatch(ctx context.Context) (SyncReport, error)
}

// BlockchainSettings is the parent-facing wallet listing.
type BlockchainSettings struct {
	Enabled         bool                `json:"enabled"`
	FamilyWallet    *domain.WalletInfo  `json:"family_wallet"`
	ChildWallets    []domain.WalletInfo `json:"child_wallets"`
	ContractAddress *string             `json:"contract_address"`
	ExplorerBaseURL string              `json:"explorer_base_url"`
}

// WalletService owns wallet creation and key custody.
type WalletService interface {
	// EnsureWallet is idempotent: it returns the existing address or
	// creates exactly one wallet for the owner.
	EnsureWallet(ctx context.Context, ownerKind domain.AccountKind, accountID uuid.UUID) (string, error)
	FamilyWallets(ctx context.Context, familyID uuid.UUID) (*BlockchainSettings, error)
}
