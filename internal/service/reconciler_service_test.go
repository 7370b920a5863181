package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"tokenvine/internal/core/domain"
	"tokenvine/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type reconcilerFixture struct {
	svc     *ReconcilerServiceImpl
	ledger  *inMemoryLedgerRepo
	wallets *inMemoryWalletRepo
	chain   *mocks.MockChainClient
}

func newReconcilerFixture(t *testing.T, enabled bool) *reconcilerFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &reconcilerFixture{
		ledger:  newInMemoryLedgerRepo(),
		wallets: newInMemoryWalletRepo(),
		chain:   mocks.NewMockChainClient(ctrl),
	}
	f.svc = NewReconcilerService(f.ledger, f.wallets, f.chain, enabled, zerolog.Nop())
	return f
}

func (f *reconcilerFixture) seedEntry(t *testing.T, amount int64, status domain.SyncStatus, retries int) *domain.LedgerEntry {
	t.Helper()
	e := &domain.LedgerEntry{
		ID:         uuid.New(),
		AccountID:  uuid.New(),
		Type:       domain.EntryTypeEarnLessonComplete,
		Amount:     amount,
		SyncStatus: status,
		RetryCount: retries,
		CreatedAt:  time.Now().UTC(),
	}
	require.NoError(t, f.ledger.Create(context.Background(), nil, e))
	return e
}

func (f *reconcilerFixture) seedWallet(t *testing.T, accountID uuid.UUID, address string) {
	t.Helper()
	require.NoError(t, f.wallets.Create(context.Background(), &domain.Wallet{
		ID: uuid.New(), AccountID: accountID, OwnerKind: domain.AccountKindChild, Address: address,
	}))
}

func TestSyncEntry_MintConfirms(t *testing.T) {
	f := newReconcilerFixture(t, true)
	entry := f.seedEntry(t, 10, domain.SyncStatusPending, 0)
	f.seedWallet(t, entry.AccountID, "0xchild")

	f.chain.EXPECT().Mint(gomock.Any(), "0xchild", int64(10)).Return("0xhash1", nil)

	require.NoError(t, f.svc.SyncEntry(context.Background(), entry.ID))

	stored, _ := f.ledger.GetByID(context.Background(), entry.ID)
	assert.Equal(t, domain.SyncStatusConfirmed, stored.SyncStatus)
	require.NotNil(t, stored.TxHash)
	assert.Equal(t, "0xhash1", *stored.TxHash)
	assert.NotNil(t, stored.SyncedAt)
}

func TestSyncEntry_NegativeAmountBurns(t *testing.T) {
	f := newReconcilerFixture(t, true)
	entry := f.seedEntry(t, -25, domain.SyncStatusPending, 0)
	f.seedWallet(t, entry.AccountID, "0xchild")

	f.chain.EXPECT().Burn(gomock.Any(), "0xchild", int64(25)).Return("0xhash2", nil)

	require.NoError(t, f.svc.SyncEntry(context.Background(), entry.ID))

	stored, _ := f.ledger.GetByID(context.Background(), entry.ID)
	assert.Equal(t, domain.SyncStatusConfirmed, stored.SyncStatus)
}

func TestSyncEntry_FailureIncrementsRetry(t *testing.T) {
	f := newReconcilerFixture(t, true)
	entry := f.seedEntry(t, 10, domain.SyncStatusPending, 0)
	f.seedWallet(t, entry.AccountID, "0xchild")

	f.chain.EXPECT().Mint(gomock.Any(), "0xchild", int64(10)).Return("", errors.New("relayer timeout"))

	require.NoError(t, f.svc.SyncEntry(context.Background(), entry.ID))

	stored, _ := f.ledger.GetByID(context.Background(), entry.ID)
	assert.Equal(t, domain.SyncStatusFailed, stored.SyncStatus)
	assert.Equal(t, 1, stored.RetryCount)
	require.NotNil(t, stored.SyncError)
	assert.Contains(t, *stored.SyncError, "relayer timeout")
	assert.Nil(t, stored.TxHash)
}

func TestSyncEntry_IdempotentOnConfirmed(t *testing.T) {
	f := newReconcilerFixture(t, true)
	entry := f.seedEntry(t, 10, domain.SyncStatusConfirmed, 0)
	f.seedWallet(t, entry.AccountID, "0xchild")

	// No chain expectations: a confirmed entry is never re-submitted.
	require.NoError(t, f.svc.SyncEntry(context.Background(), entry.ID))
}

func TestSyncEntry_RetryBudgetSpent(t *testing.T) {
	f := newReconcilerFixture(t, true)
	entry := f.seedEntry(t, 10, domain.SyncStatusFailed, domain.MaxSyncRetries)
	f.seedWallet(t, entry.AccountID, "0xchild")

	require.NoError(t, f.svc.SyncEntry(context.Background(), entry.ID))

	stored, _ := f.ledger.GetByID(context.Background(), entry.ID)
	assert.Equal(t, domain.SyncStatusFailed, stored.SyncStatus)
	assert.Equal(t, domain.MaxSyncRetries, stored.RetryCount)
}

func TestSyncEntry_UnknownIDIsNoOp(t *testing.T) {
	f := newReconcilerFixture(t, true)
	require.NoError(t, f.svc.SyncEntry(context.Background(), uuid.New()))
}

func TestSyncEntry_Disabled(t *testing.T) {
	f := newReconcilerFixture(t, false)
	entry := f.seedEntry(t, 10, domain.SyncStatusPending, 0)
	f.seedWallet(t, entry.AccountID, "0xchild")

	require.NoError(t, f.svc.SyncEntry(context.Background(), entry.ID))

	stored, _ := f.ledger.GetByID(context.Background(), entry.ID)
	assert.Equal(t, domain.SyncStatusPending, stored.SyncStatus)
}

func TestSyncEntry_MissingWalletLeavesPending(t *testing.T) {
	f := newReconcilerFixture(t, true)
	entry := f.seedEntry(t, 10, domain.SyncStatusPending, 0)

	require.NoError(t, f.svc.SyncEntry(context.Background(), entry.ID))

	stored, _ := f.ledger.GetByID(context.Background(), entry.ID)
	assert.Equal(t, domain.SyncStatusPending, stored.SyncStatus)
	assert.Equal(t, 0, stored.RetryCount)
}

func TestProcessPendingBatch(t *testing.T) {
	f := newReconcilerFixture(t, true)

	ok1 := f.seedEntry(t, 10, domain.SyncStatusPending, 0)
	f.seedWallet(t, ok1.AccountID, "0xaaa")
	bad := f.seedEntry(t, 20, domain.SyncStatusFailed, 2)
	f.seedWallet(t, bad.AccountID, "0xbbb")
	ok2 := f.seedEntry(t, -5, domain.SyncStatusPending, 0)
	f.seedWallet(t, ok2.AccountID, "0xccc")
	// Has no wallet yet: waits for backfill, not a failure.
	noWallet := f.seedEntry(t, 15, domain.SyncStatusPending, 0)
	// Ineligible rows must not be selected.
	f.seedEntry(t, 30, domain.SyncStatusConfirmed, 0)
	f.seedEntry(t, 40, domain.SyncStatusFailed, domain.MaxSyncRetries)

	f.chain.EXPECT().Mint(gomock.Any(), "0xaaa", int64(10)).Return("0xh1", nil)
	f.chain.EXPECT().Mint(gomock.Any(), "0xbbb", int64(20)).Return("", errors.New("nonce too low"))
	f.chain.EXPECT().Burn(gomock.Any(), "0xccc", int64(5)).Return("0xh2", nil)

	report, err := f.svc.ProcessPendingBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Synced)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 1, report.Skipped)

	stored, _ := f.ledger.GetByID(context.Background(), bad.ID)
	assert.Equal(t, 3, stored.RetryCount)

	skipped, _ := f.ledger.GetByID(context.Background(), noWallet.ID)
	assert.Equal(t, domain.SyncStatusPending, skipped.SyncStatus)
	assert.Equal(t, 0, skipped.RetryCount)
}

func TestProcessPendingBatch_Disabled(t *testing.T) {
	f := newReconcilerFixture(t, false)
	f.seedEntry(t, 10, domain.SyncStatusPending, 0)

	report, err := f.svc.ProcessPendingBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, report.Synced)
	assert.Equal(t, 0, report.Failed)
}
