package chain

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/sha3"
)

// LocalKeyVault implements ports.KeyVault by generating ECDSA keypairs
// in-process. The address is the last 20 bytes of the Keccak-256 hash
// of the uncompressed public key, 0x-prefixed. Callers encrypt the
// returned private key before it touches storage.
type LocalKeyVault struct{}

// NewLocalKeyVault creates a new LocalKeyVault.
func NewLocalKeyVault() *LocalKeyVault {
	return &LocalKeyVault{}
}

// GenerateKeypair creates a fresh keypair and derives its address.
func (v *LocalKeyVault) GenerateKeypair() (string, string, error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return "", "", fmt.Errorf("generating ecdsa key: %w", err)
	}

	privateKeyHex := hex.EncodeToString(key.D.Bytes())

	// Uncompressed point without the 0x04 prefix, per the address
	// derivation convention.
	pub := elliptic.Marshal(elliptic.P256(), key.PublicKey.X, key.PublicKey.Y)

	hasher := sha3.NewLegacyKeccak256()
	hasher.Write(pub[1:])
	digest := hasher.Sum(nil)

	address := "0x" + hex.EncodeToString(digest[len(digest)-20:])
	return address, privateKeyHex, nil
}
