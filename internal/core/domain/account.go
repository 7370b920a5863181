package domain

import (
	"time"

	"github.com/google/uuid"
)

// AccountKind distinguishes family accounts from child accounts.
type AccountKind string

const (
	AccountKindFamily AccountKind = "FAMILY"
	AccountKindChild  AccountKind = "CHILD"
)

// Account holds the materialized token balance for a family member.
// Balance and daily counters are mutated exclusively by the ledger
// service inside an account-scoped database transaction.
type Account struct {
	ID                 uuid.UUID   `json:"id"`
	FamilyID           uuid.UUID   `json:"family_id"`
	Kind               AccountKind `json:"kind"`
	DisplayName        string      `json:"display_name"`
	TokenBalance       int64       `json:"token_balance"`
	DailyTokensEarned  int64       `json:"daily_tokens_earned"`
	LastTokenResetDate time.Time   `json:"last_token_reset_date"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
}

// IsChild returns true for child accounts.
func (a *Account) IsChild() bool {
	return a.Kind == AccountKindChild
}
