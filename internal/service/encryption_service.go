package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
)

// AESEncryptionService encrypts wallet private keys with AES-256-GCM.
// Ciphertext, nonce and auth tag are returned as separate hex strings
// to match the wallet storage columns.
type AESEncryptionService struct {
	key []byte // 32-byte key for AES-256
}

// NewAESEncryptionService creates a new AES-256-GCM encryption service.
// hexKey must be a 64-character hex string (32 bytes decoded).
func NewAESEncryptionService(hexKey string) (*AESEncryptionService, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("decoding AES key: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("AES key must be 32 bytes, got %d", len(key))
	}
	return &AESEncryptionService{key: key}, nil
}

// Encrypt encrypts plaintext and returns (ciphertext, iv, tag) hex-encoded.
func (s *AESEncryptionService) Encrypt(plaintext string) (string, string, string, error) {
	block, err := aes.NewCipher(s.key)
	if err != nil {
		return "", "", "", fmt.Errorf("creating cipher: %w", err)
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return "", "", "", fmt.Errorf("creating GCM: %w", err)
	}

	iv := make([]byte, aesGCM.NonceSize())
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", "", "", fmt.Errorf("generating nonce: %w", err)
	}

	sealed := aesGCM.Seal(nil, iv, []byte(plaintext), nil)

	// Seal appends the 16-byte auth tag to the ciphertext; split it out
	// so the tag is stored in its own column.
	tagSize := aesGCM.Overhead()
	ciphertext := sealed[:len(sealed)-tagSize]
	tag := sealed[len(sealed)-tagSize:]

	return hex.EncodeToString(ciphertext), hex.EncodeToString(iv), hex.EncodeToString(tag), nil
}

// Decrypt reverses Encrypt given the three hex-encoded parts.
func (s *AESEncryptionService) Decrypt(ciphertextHex, ivHex, tagHex string) (string, error) {
	ciphertext, err := hex.DecodeString(ciphertextHex)
	if err != nil {
		return "", fmt.Errorf("decoding ciphertext: %w", err)
	}
	iv, err := hex.DecodeString(ivHex)
	if err != nil {
		return "", fmt.Errorf("decoding iv: %w", err)
	}
	tag, err := hex.DecodeString(tagHex)
	if err != nil {
		return "", fmt.Errorf("decoding tag: %w", err)
	}

	block, err := aes.NewCipher(s.key)
	if err != nil {
		return "", fmt.Errorf("creating cipher: %w", err)
	}

	aesGCM, err := cipher.NewGCMWithNonceSize(block, len(iv))
	if err != nil {
		return "", fmt.Errorf("creating GCM: %w", err)
	}

	plaintext, err := aesGCM.Open(nil, iv, append(ciphertext, tag...), nil)
	if err != nil {
		return "", fmt.Errorf("decrypting: %w", err)
	}

	return string(plaintext), nil
}
