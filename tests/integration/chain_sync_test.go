package integration

import (
	"net/http"
	"testing"

	"tokenvine/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChainSync_MirrorsLedgerOntoChain(t *testing.T) {
	app := newTestApp(t)
	familyID, _, childID := app.seedFamily(t)
	childToken := signToken(t, childID, familyID, "child")

	// Provision the child's wallet so sync has a target address.
	resp, body := app.do(t, http.MethodPost, "/api/v1/internal/wallets/ensure", "", map[string]interface{}{
		"account_id": childID.String(),
		"owner_kind": "CHILD",
	}, internalHeaders())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	address := body["data"].(map[string]interface{})["address"].(string)
	assert.Regexp(t, "^0x[0-9a-f]{40}$", address)

	// Earn twice, then spend once. All three entries start PENDING.
	for _, amount := range []int{40, 30} {
		resp, _ = app.do(t, http.MethodPost, "/api/v1/internal/earn", "", map[string]interface{}{
			"account_id": childID.String(), "type": "EARN_LESSON_COMPLETE", "amount": amount,
		}, internalHeaders())
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
	resp, _ = app.do(t, http.MethodPost, "/api/v1/tokens/spend", childToken, map[string]interface{}{
		"type": "SPEND_UNLOCK_LESSON", "amount": 20,
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Sweep the batch.
	resp, body = app.do(t, http.MethodPost, "/api/v1/internal/chain-sync", "", nil, internalHeaders())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(3), data["synced"])
	assert.Equal(t, float64(0), data["failed"])

	// Every entry is now confirmed with a transaction hash.
	entries, err := app.ledgerRepo.ListByAccount(t.Context(), childID, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for _, e := range entries {
		assert.Equal(t, domain.SyncStatusConfirmed, e.SyncStatus)
		require.NotNil(t, e.TxHash)
		assert.Contains(t, *e.TxHash, "0xstub")
		assert.NotNil(t, e.SyncedAt)
	}

	// Nothing left to sync: a second sweep is a no-op.
	resp, body = app.do(t, http.MethodPost, "/api/v1/internal/chain-sync", "", nil, internalHeaders())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data = body["data"].(map[string]interface{})
	assert.Equal(t, float64(0), data["synced"])
	assert.Equal(t, float64(0), data["failed"])
}

func TestChainSync_EntryWithoutWalletStaysPending(t *testing.T) {
	app := newTestApp(t)
	_, _, childID := app.seedFamily(t)

	// Earn without provisioning a wallet.
	resp, _ := app.do(t, http.MethodPost, "/api/v1/internal/earn", "", map[string]interface{}{
		"account_id": childID.String(), "type": "EARN_LESSON_COMPLETE", "amount": 10,
	}, internalHeaders())
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := app.do(t, http.MethodPost, "/api/v1/internal/chain-sync", "", nil, internalHeaders())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(0), data["synced"])
	assert.Equal(t, float64(0), data["failed"])
	assert.Equal(t, float64(1), data["skipped"])

	// The entry is untouched, waiting for wallet backfill.
	entries, err := app.ledgerRepo.ListByAccount(t.Context(), childID, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.SyncStatusPending, entries[0].SyncStatus)
	assert.Equal(t, 0, entries[0].RetryCount)

	// Backfill the wallet, then sync succeeds.
	resp, _ = app.do(t, http.MethodPost, "/api/v1/internal/wallets/ensure", "", map[string]interface{}{
		"account_id": childID.String(), "owner_kind": "CHILD",
	}, internalHeaders())
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = app.do(t, http.MethodPost, "/api/v1/internal/chain-sync", "", nil, internalHeaders())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["data"].(map[string]interface{})["synced"])
}

func TestChainSync_SingleEntryTrigger(t *testing.T) {
	app := newTestApp(t)
	_, _, childID := app.seedFamily(t)

	resp, _ := app.do(t, http.MethodPost, "/api/v1/internal/wallets/ensure", "", map[string]interface{}{
		"account_id": childID.String(), "owner_kind": "CHILD",
	}, internalHeaders())
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := app.do(t, http.MethodPost, "/api/v1/internal/earn", "", map[string]interface{}{
		"account_id": childID.String(), "type": "EARN_LESSON_COMPLETE", "amount": 10,
	}, internalHeaders())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	entryID := body["data"].(map[string]interface{})["entry_id"].(string)

	resp, _ = app.do(t, http.MethodPost, "/api/v1/internal/chain-sync", "", map[string]interface{}{
		"entry_id": entryID,
	}, internalHeaders())
	require.Equal(t, http.StatusOK, resp.StatusCode)

	entry, err := app.ledgerRepo.GetByID(t.Context(), uuid.MustParse(entryID))
	require.NoError(t, err)
	assert.Equal(t, domain.SyncStatusConfirmed, entry.SyncStatus)
}

func TestWalletListing(t *testing.T) {
	app := newTestApp(t)
	familyID, parentID, childID := app.seedFamily(t)
	parentToken := signToken(t, parentID, familyID, "parent")

	for _, seed := range []struct {
		id   uuid.UUID
		kind string
	}{
		{parentID, "FAMILY"},
		{childID, "CHILD"},
	} {
		resp, _ := app.do(t, http.MethodPost, "/api/v1/internal/wallets/ensure", "", map[string]interface{}{
			"account_id": seed.id.String(), "owner_kind": seed.kind,
		}, internalHeaders())
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, body := app.do(t, http.MethodGet, "/api/v1/blockchain/wallets", parentToken, nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, true, data["enabled"])
	assert.NotNil(t, data["family_wallet"])
	assert.Len(t, data["child_wallets"].([]interface{}), 1)
	assert.NotEmpty(t, data["contract_address"])
}
