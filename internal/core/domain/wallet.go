package domain

import (
	"time"

	"github.com/google/uuid"
)

// Wallet maps an account to its blockchain address. The private key is
// stored AES-256-GCM encrypted; ciphertext, IV and auth tag are kept
// as separate hex columns and never serialized to clients.
type Wallet struct {
	ID            uuid.UUID   `json:"id"`
	AccountID     uuid.UUID   `json:"account_id"`
	OwnerKind     AccountKind `json:"owner_kind"`
	Address       string      `json:"address"`
	EncryptedKey  string      `json:"-"`
	EncryptionIV  string      `json:"-"`
	EncryptionTag string      `json:"-"`
	CreatedAt     time.Time   `json:"created_at"`
}

// WalletInfo is the client-safe projection of a wallet.
type WalletInfo struct {
	Address   string      `json:"address"`
	Label     string      `json:"label"`
	OwnerKind AccountKind `json:"owner_kind"`
	OwnerID   uuid.UUID   `json:"owner_id"`
}
