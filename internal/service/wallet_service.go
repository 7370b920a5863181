package service

import (
	"context"
	"fmt"

	"tokenvine/internal/core/domain"
	"tokenvine/internal/core/ports"
	"tokenvine/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// WalletServiceImpl implements ports.WalletService. Private keys exist
// in plaintext only between generation and encryption; storage only
// ever sees the three encrypted parts.
type WalletServiceImpl struct {
	walletRepo      ports.WalletRepository
	accountRepo     ports.AccountRepository
	keyVault        ports.KeyVault
	encryption      ports.EncryptionService
	chainEnabled    bool
	contractAddress string
	explorerBaseURL string
	log             zerolog.Logger
}

// NewWalletService creates a new WalletServiceImpl.
func NewWalletService(
	walletRepo ports.WalletRepository,
	accountRepo ports.AccountRepository,
	keyVault ports.KeyVault,
	encryption ports.EncryptionService,
	chainEnabled bool,
	contractAddress string,
	explorerBaseURL string,
	log zerolog.Logger,
) *WalletServiceImpl {
	return &WalletServiceImpl{
		walletRepo:      walletRepo,
		accountRepo:     accountRepo,
		keyVault:        keyVault,
		encryption:      encryption,
		chainEnabled:    chainEnabled,
		contractAddress: contractAddress,
		explorerBaseURL: explorerBaseURL,
		log:             log,
	}
}

// EnsureWallet returns the account's wallet address, creating the
// wallet first if none exists. Concurrent calls may race on insert; the
// loser re-reads and returns the winner's address.
func (s *WalletServiceImpl) EnsureWallet(ctx context.Context, ownerKind domain.AccountKind, accountID uuid.UUID) (string, error) {
	existing, err := s.walletRepo.GetByAccountID(ctx, accountID)
	if err != nil {
		return "", wrapStoreErr("get wallet", err)
	}
	if existing != nil {
		return existing.Address, nil
	}

	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return "", wrapStoreErr("get account", err)
	}
	if account == nil {
		return "", apperror.ErrNotFound("account")
	}

	address, privateKeyHex, err := s.keyVault.GenerateKeypair()
	if err != nil {
		return "", apperror.InternalError(fmt.Errorf("generating keypair: %w", err))
	}

	ciphertext, iv, tag, err := s.encryption.Encrypt(privateKeyHex)
	if err != nil {
		return "", apperror.ErrEncryptionFailure(err)
	}

	wallet := &domain.Wallet{
		ID:            uuid.New(),
		AccountID:     accountID,
		OwnerKind:     ownerKind,
		Address:       address,
		EncryptedKey:  ciphertext,
		EncryptionIV:  iv,
		EncryptionTag: tag,
	}
	if err := s.walletRepo.Create(ctx, wallet); err != nil {
		// Lost an insert race. The unique constraint on account_id
		// guarantees the re-read finds the winner.
		if winner, getErr := s.walletRepo.GetByAccountID(ctx, accountID); getErr == nil && winner != nil {
			return winner.Address, nil
		}
		return "", wrapStoreErr("create wallet", err)
	}

	s.log.Info().
		Str("account_id", accountID.String()).
		Str("address", address).
		Str("owner_kind", string(ownerKind)).
		Msg("wallet created")

	return address, nil
}

// FamilyWallets lists the family's wallet addresses for the parent
// settings screen. Key material never leaves this package.
func (s *WalletServiceImpl) FamilyWallets(ctx context.Context, familyID uuid.UUID) (*ports.BlockchainSettings, error) {
	accounts, err := s.accountRepo.ListByFamily(ctx, familyID)
	if err != nil {
		return nil, wrapStoreErr("list family accounts", err)
	}

	ids := make([]uuid.UUID, 0, len(accounts))
	byID := make(map[uuid.UUID]*domain.Account, len(accounts))
	for i := range accounts {
		ids = append(ids, accounts[i].ID)
		byID[accounts[i].ID] = &accounts[i]
	}

	settings := &ports.BlockchainSettings{
		Enabled:         s.chainEnabled,
		ChildWallets:    []domain.WalletInfo{},
		ExplorerBaseURL: s.explorerBaseURL,
	}
	if s.contractAddress != "" {
		addr := s.contractAddress
		settings.ContractAddress = &addr
	}

	if len(ids) == 0 {
		return settings, nil
	}

	wallets, err := s.walletRepo.ListByAccounts(ctx, ids)
	if err != nil {
		return nil, wrapStoreErr("list wallets", err)
	}

	for _, w := range wallets {
		account := byID[w.AccountID]
		info := domain.WalletInfo{
			Address:   w.Address,
			OwnerKind: w.OwnerKind,
			OwnerID:   w.AccountID,
		}
		if account != nil {
			info.Label = account.DisplayName
		}
		if w.OwnerKind == domain.AccountKindFamily {
			famInfo := info
			settings.FamilyWallet = &famInfo
		} else {
			settings.ChildWallets = append(settings.ChildWallets, info)
		}
	}

	return settings, nil
}
