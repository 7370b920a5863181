package domain

import (
	"time"

	"github.com/google/uuid"
)

// EntryType is the enumerated reason for a ledger entry.
type EntryType string

const (
	EntryTypeEarnLessonComplete    EntryType = "EARN_LESSON_COMPLETE"
	EntryTypeEarnChallengeComplete EntryType = "EARN_CHALLENGE_COMPLETE"
	EntryTypeEarnStreakBonus       EntryType = "EARN_STREAK_BONUS"
	EntryTypeSpendUnlockLesson     EntryType = "SPEND_UNLOCK_LESSON"
	EntryTypeSpendUnlockContent    EntryType = "SPEND_UNLOCK_CONTENT"
	EntryTypeSpendJoinChallenge    EntryType = "SPEND_JOIN_CHALLENGE"
	EntryTypeAdminAdjustment       EntryType = "ADMIN_ADJUSTMENT"
)

// IsEarn returns true for types that credit the balance.
func (t EntryType) IsEarn() bool {
	switch t {
	case EntryTypeEarnLessonComplete, EntryTypeEarnChallengeComplete,
		EntryTypeEarnStreakBonus, EntryTypeAdminAdjustment:
		return true
	}
	return false
}

// IsDailyCapped returns true for earn types subject to the daily cap.
// Admin adjustments bypass the cap and the daily counter.
func (t EntryType) IsDailyCapped() bool {
	switch t {
	case EntryTypeEarnLessonComplete, EntryTypeEarnChallengeComplete,
		EntryTypeEarnStreakBonus:
		return true
	}
	return false
}

// SyncStatus is the blockchain mirroring state of a ledger entry.
type SyncStatus string

const (
	// SyncStatusNone means chain mirroring was disabled when the entry
	// was created. Entries are never retroactively queued.
	SyncStatusNone      SyncStatus = "NONE"
	SyncStatusPending   SyncStatus = "PENDING"
	SyncStatusSubmitted SyncStatus = "SUBMITTED"
	SyncStatusConfirmed SyncStatus = "CONFIRMED"
	SyncStatusFailed    SyncStatus = "FAILED"
)

// MaxSyncRetries caps reconciliation attempts per entry. Entries that
// exhaust the cap stay FAILED and require operator intervention.
const MaxSyncRetries = 5

// LedgerEntry is one immutable record of a token balance change.
// BalanceAfter snapshots the account balance immediately after the
// entry was applied: for each account, entries ordered by creation
// form a prefix-sum sequence starting from zero.
type LedgerEntry struct {
	ID           uuid.UUID  `json:"id"`
	AccountID    uuid.UUID  `json:"account_id"`
	Type         EntryType  `json:"type"`
	Amount       int64      `json:"amount"` // positive = earn, negative = spend
	BalanceAfter int64      `json:"balance_after"`
	Description  string     `json:"description"`
	ReferenceID  *string    `json:"reference_id,omitempty"`
	SyncStatus   SyncStatus `json:"sync_status"`
	TxHash       *string    `json:"tx_hash,omitempty"`
	SyncError    *string    `json:"-"`
	RetryCount   int        `json:"-"`
	SyncedAt     *time.Time `json:"synced_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// SyncEligible reports whether the reconciler should attempt this entry.
func (e *LedgerEntry) SyncEligible() bool {
	if e.SyncStatus != SyncStatusPending && e.SyncStatus != SyncStatusFailed {
		return false
	}
	return e.RetryCount < MaxSyncRetries
}
