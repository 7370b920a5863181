package chain

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalKeyVault_GenerateKeypair(t *testing.T) {
	vault := NewLocalKeyVault()

	address, privateKeyHex, err := vault.GenerateKeypair()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(address, "0x"))
	assert.Len(t, address, 42) // 0x + 20 bytes hex

	keyBytes, err := hex.DecodeString(privateKeyHex)
	require.NoError(t, err)
	assert.NotEmpty(t, keyBytes)
}

func TestLocalKeyVault_UniqueKeypairs(t *testing.T) {
	vault := NewLocalKeyVault()

	addr1, key1, err := vault.GenerateKeypair()
	require.NoError(t, err)
	addr2, key2, err := vault.GenerateKeypair()
	require.NoError(t, err)

	assert.NotEqual(t, addr1, addr2)
	assert.NotEqual(t, key1, key2)
}
