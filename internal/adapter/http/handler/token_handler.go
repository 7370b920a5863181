package handler

import (
	"strconv"

	"tokenvine/internal/adapter/http/dto"
	"tokenvine/internal/adapter/http/middleware"
	"tokenvine/internal/core/domain"
	"tokenvine/internal/core/ports"
	"tokenvine/pkg/apperror"
	"tokenvine/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TokenHandler handles balance, history and direct spend endpoints.
type TokenHandler struct {
	ledgerSvc ports.LedgerService
}

// NewTokenHandler creates a new TokenHandler.
func NewTokenHandler(ledgerSvc ports.LedgerService) *TokenHandler {
	return &TokenHandler{ledgerSvc: ledgerSvc}
}

func callerAccountID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(middleware.CtxAccountID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func callerFamilyID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(middleware.CtxFamilyID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// GetBalance handles GET /api/v1/tokens/balance.
func (h *TokenHandler) GetBalance(c *gin.Context) {
	accountID, ok := callerAccountID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	info, err := h.ledgerSvc.GetBalance(c.Request.Context(), accountID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, info)
}

// GetHistory handles GET /api/v1/tokens/history.
func (h *TokenHandler) GetHistory(c *gin.Context) {
	accountID, ok := callerAccountID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	entries, err := h.ledgerSvc.GetHistory(c.Request.Context(), accountID, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	if entries == nil {
		entries = []domain.LedgerEntry{}
	}
	response.OK(c, gin.H{"entries": entries})
}

// Spend handles POST /api/v1/tokens/spend — a direct, unmediated spend
// on the caller's own balance.
func (h *TokenHandler) Spend(c *gin.Context) {
	accountID, ok := callerAccountID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.SpendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	entry, err := h.ledgerSvc.ApplySpend(c.Request.Context(), ports.SpendInput{
		AccountID:   accountID,
		Type:        domain.EntryType(req.Type),
		Amount:      req.Amount,
		Description: req.Description,
		ReferenceID: req.ReferenceID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, entry)
}

// GetFamilySummary handles GET /api/v1/tokens/summary (parent only).
func (h *TokenHandler) GetFamilySummary(c *gin.Context) {
	familyID, ok := callerFamilyID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	summary, err := h.ledgerSvc.GetFamilySummary(c.Request.Context(), familyID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, summary)
}
