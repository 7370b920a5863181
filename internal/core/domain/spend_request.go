package domain

import (
	"time"

	"github.com/google/uuid"
)

// SpendRequestStatus is the review state of a spend request.
type SpendRequestStatus string

const (
	SpendRequestStatusPending  SpendRequestStatus = "PENDING"
	SpendRequestStatusApproved SpendRequestStatus = "APPROVED"
	SpendRequestStatusDenied   SpendRequestStatus = "DENIED"
)

// MaxPendingSpendRequests limits open requests per child account.
const MaxPendingSpendRequests = 5

// SpendRequest is a child-initiated, parent-gated proposal to decrement
// the child's own balance. PENDING is the only mutable state; APPROVED
// and DENIED are terminal.
type SpendRequest struct {
	ID          uuid.UUID          `json:"id"`
	AccountID   uuid.UUID          `json:"account_id"`
	Amount      int64              `json:"amount"`
	Reason      string             `json:"reason"`
	ReferenceID *string            `json:"reference_id,omitempty"`
	Status      SpendRequestStatus `json:"status"`
	ReviewedAt  *time.Time         `json:"reviewed_at,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

// IsReviewed returns true once the request reached a terminal state.
func (r *SpendRequest) IsReviewed() bool {
	return r.Status != SpendRequestStatusPending
}
