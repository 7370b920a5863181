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

type walletFixture struct {
	svc      *WalletServiceImpl
	wallets  *inMemoryWalletRepo
	accounts *inMemoryAccountRepo
	vault    *mocks.MockKeyVault
	enc      *mocks.MockEncryptionService
}

func newWalletFixture(t *testing.T) *walletFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &walletFixture{
		wallets:  newInMemoryWalletRepo(),
		accounts: newInMemoryAccountRepo(),
		vault:    mocks.NewMockKeyVault(ctrl),
		enc:      mocks.NewMockEncryptionService(ctrl),
	}
	f.svc = NewWalletService(
		f.wallets, f.accounts, f.vault, f.enc,
		true, "0xcontract", "https://explorer.test/tx/", zerolog.Nop(),
	)
	return f
}

func (f *walletFixture) seedAccount(t *testing.T, familyID uuid.UUID, kind domain.AccountKind, name string) *domain.Account {
	t.Helper()
	a := &domain.Account{
		ID: uuid.New(), FamilyID: familyID, Kind: kind, DisplayName: name,
		LastTokenResetDate: time.Now().UTC(), CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, f.accounts.Create(context.Background(), a))
	return a
}

func TestEnsureWallet_CreatesOnce(t *testing.T) {
	f := newWalletFixture(t)
	child := f.seedAccount(t, uuid.New(), domain.AccountKindChild, "Liv")

	f.vault.EXPECT().GenerateKeypair().Return("0xaddr", "deadbeef", nil)
	f.enc.EXPECT().Encrypt("deadbeef").Return("ct", "iv", "tag", nil)

	addr, err := f.svc.EnsureWallet(context.Background(), domain.AccountKindChild, child.ID)
	require.NoError(t, err)
	assert.Equal(t, "0xaddr", addr)

	stored, _ := f.wallets.GetByAccountID(context.Background(), child.ID)
	require.NotNil(t, stored)
	assert.Equal(t, "ct", stored.EncryptedKey)
	assert.Equal(t, "iv", stored.EncryptionIV)
	assert.Equal(t, "tag", stored.EncryptionTag)

	// Second call returns the existing address without touching the vault.
	addr2, err := f.svc.EnsureWallet(context.Background(), domain.AccountKindChild, child.ID)
	require.NoError(t, err)
	assert.Equal(t, "0xaddr", addr2)
}

func TestEnsureWallet_UnknownAccount(t *testing.T) {
	f := newWalletFixture(t)
	_, err := f.svc.EnsureWallet(context.Background(), domain.AccountKindChild, uuid.New())
	assertAppErrorCode(t, err, "TOK_005")
}

func TestEnsureWallet_EncryptionFailure(t *testing.T) {
	f := newWalletFixture(t)
	child := f.seedAccount(t, uuid.New(), domain.AccountKindChild, "Liv")

	f.vault.EXPECT().GenerateKeypair().Return("0xaddr", "deadbeef", nil)
	f.enc.EXPECT().Encrypt("deadbeef").Return("", "", "", errors.New("hsm offline"))

	_, err := f.svc.EnsureWallet(context.Background(), domain.AccountKindChild, child.ID)
	assertAppErrorCode(t, err, "SYS_003")

	stored, _ := f.wallets.GetByAccountID(context.Background(), child.ID)
	assert.Nil(t, stored)
}

func TestFamilyWallets(t *testing.T) {
	f := newWalletFixture(t)
	familyID := uuid.New()
	fam := f.seedAccount(t, familyID, domain.AccountKindFamily, "Home")
	child := f.seedAccount(t, familyID, domain.AccountKindChild, "Liv")
	f.seedAccount(t, familyID, domain.AccountKindChild, "NoWalletYet")

	require.NoError(t, f.wallets.Create(context.Background(), &domain.Wallet{
		ID: uuid.New(), AccountID: fam.ID, OwnerKind: domain.AccountKindFamily, Address: "0xfam",
	}))
	require.NoError(t, f.wallets.Create(context.Background(), &domain.Wallet{
		ID: uuid.New(), AccountID: child.ID, OwnerKind: domain.AccountKindChild, Address: "0xkid",
	}))

	settings, err := f.svc.FamilyWallets(context.Background(), familyID)
	require.NoError(t, err)
	assert.True(t, settings.Enabled)
	require.NotNil(t, settings.FamilyWallet)
	assert.Equal(t, "0xfam", settings.FamilyWallet.Address)
	assert.Equal(t, "Home", settings.FamilyWallet.Label)
	require.Len(t, settings.ChildWallets, 1)
	assert.Equal(t, "0xkid", settings.ChildWallets[0].Address)
	require.NotNil(t, settings.ContractAddress)
	assert.Equal(t, "0xcontract", *settings.ContractAddress)
	assert.Equal(t, "https://explorer.test/tx/", settings.ExplorerBaseURL)
}

func TestFamilyWallets_EmptyFamily(t *testing.T) {
	f := newWalletFixture(t)
	settings, err := f.svc.FamilyWallets(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, settings.FamilyWallet)
	assert.Empty(t, settings.ChildWallets)
}
