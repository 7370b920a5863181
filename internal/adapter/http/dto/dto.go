package dto

// EarnRequest is the body for the internal earn endpoint. Called by the
// lesson and challenge services after a child completes an activity.
type EarnRequest struct {
	AccountID   string  `json:"account_id" binding:"required,uuid"`
	Type        string  `json:"type" binding:"required,oneof=EARN_LESSON_COMPLETE EARN_CHALLENGE_COMPLETE EARN_STREAK_BONUS ADMIN_ADJUSTMENT"`
	Amount      int64   `json:"amount" binding:"min=0"`
	Description string  `json:"description" binding:"max=200"`
	ReferenceID *string `json:"reference_id,omitempty" binding:"omitempty,safe_id,max=100"`
}

// SpendRequest is the body for a child's direct spend.
type SpendRequest struct {
	Type        string  `json:"type" binding:"required,oneof=SPEND_UNLOCK_LESSON SPEND_UNLOCK_CONTENT SPEND_JOIN_CHALLENGE"`
	Amount      int64   `json:"amount" binding:"required,gt=0"`
	Description string  `json:"description" binding:"max=200"`
	ReferenceID *string `json:"reference_id,omitempty" binding:"omitempty,safe_id,max=100"`
}

// CreateSpendRequestRequest is the body for a child's spend proposal.
type CreateSpendRequestRequest struct {
	Amount      int64   `json:"amount" binding:"required,gt=0"`
	Reason      string  `json:"reason" binding:"required,min=1,max=200"`
	ReferenceID *string `json:"reference_id,omitempty" binding:"omitempty,safe_id,max=100"`
}

// ReviewSpendRequestRequest is the body for a parent's decision.
type ReviewSpendRequestRequest struct {
	Status string `json:"status" binding:"required,oneof=APPROVED DENIED"`
}

// ChainSyncRequest is the body for the internal sync trigger. A set
// entry_id syncs one entry; empty runs a full batch.
type ChainSyncRequest struct {
	EntryID *string `json:"entry_id,omitempty" binding:"omitempty,uuid"`
}

// EnsureWalletRequest is the body for the internal wallet provisioning
// endpoint, called by the account service on signup.
type EnsureWalletRequest struct {
	AccountID string `json:"account_id" binding:"required,uuid"`
	OwnerKind string `json:"owner_kind" binding:"required,oneof=FAMILY CHILD"`
}

// EarnResponse reports the applied award.
type EarnResponse struct {
	EntryID    *string `json:"entry_id,omitempty"`
	Awarded    int64   `json:"awarded"`
	NewBalance int64   `json:"new_balance"`
	Capped     bool    `json:"capped"`
}

// WalletAddressResponse is the response for wallet provisioning.
type WalletAddressResponse struct {
	AccountID string `json:"account_id"`
	Address   string `json:"address"`
}
