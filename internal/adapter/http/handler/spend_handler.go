package handler

import (
	"tokenvine/internal/adapter/http/dto"
	"tokenvine/internal/core/domain"
	"tokenvine/internal/core/ports"
	"tokenvine/pkg/apperror"
	"tokenvine/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SpendRequestHandler handles the parent-gated spend request flow.
type SpendRequestHandler struct {
	spendSvc ports.SpendService
}

// NewSpendRequestHandler creates a new SpendRequestHandler.
func NewSpendRequestHandler(spendSvc ports.SpendService) *SpendRequestHandler {
	return &SpendRequestHandler{spendSvc: spendSvc}
}

// Create handles POST /api/v1/tokens/requests (child).
func (h *SpendRequestHandler) Create(c *gin.Context) {
	accountID, ok := callerAccountID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.CreateSpendRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	created, err := h.spendSvc.CreateRequest(c.Request.Context(), ports.CreateSpendRequestInput{
		AccountID:   accountID,
		Amount:      req.Amount,
		Reason:      req.Reason,
		ReferenceID: req.ReferenceID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// ListOwn handles GET /api/v1/tokens/requests (child).
func (h *SpendRequestHandler) ListOwn(c *gin.Context) {
	accountID, ok := callerAccountID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	requests, err := h.spendSvc.ListRequests(c.Request.Context(), accountID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if requests == nil {
		requests = []domain.SpendRequest{}
	}
	response.OK(c, gin.H{"requests": requests})
}

// ListPending handles GET /api/v1/tokens/requests/pending (parent).
func (h *SpendRequestHandler) ListPending(c *gin.Context) {
	familyID, ok := callerFamilyID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	requests, err := h.spendSvc.ListPendingForFamily(c.Request.Context(), familyID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if requests == nil {
		requests = []domain.SpendRequest{}
	}
	response.OK(c, gin.H{"requests": requests})
}

// Review handles POST /api/v1/tokens/requests/:id/review (parent).
func (h *SpendRequestHandler) Review(c *gin.Context) {
	familyID, ok := callerFamilyID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.ErrNotFound("spend request"))
		return
	}

	var req dto.ReviewSpendRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	approve := req.Status == string(domain.SpendRequestStatusApproved)

	reviewed, err := h.spendSvc.ReviewRequest(c.Request.Context(), requestID, familyID, approve)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, reviewed)
}
