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

// InternalHandler handles service-to-service endpoints behind the sync
// secret: earn crediting, wallet provisioning and the sync trigger.
type InternalHandler struct {
	ledgerSvc     ports.LedgerService
	reconcilerSvc ports.ReconcilerService
	walletSvc     ports.WalletService
}

// NewInternalHandler creates a new InternalHandler.
func NewInternalHandler(
	ledgerSvc ports.LedgerService,
	reconcilerSvc ports.ReconcilerService,
	walletSvc ports.WalletService,
) *InternalHandler {
	return &InternalHandler{
		ledgerSvc:     ledgerSvc,
		reconcilerSvc: reconcilerSvc,
		walletSvc:     walletSvc,
	}
}

// Earn handles POST /api/v1/internal/earn. The caller (lesson or
// challenge service) treats a capped award of zero as success.
func (h *InternalHandler) Earn(c *gin.Context) {
	var req dto.EarnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	accountID, err := uuid.Parse(req.AccountID)
	if err != nil {
		response.Error(c, apperror.Validation("invalid account_id"))
		return
	}

	result, err := h.ledgerSvc.ApplyEarn(c.Request.Context(), ports.EarnInput{
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

	resp := dto.EarnResponse{
		Awarded:    result.Awarded,
		NewBalance: result.NewBalance,
		Capped:     result.Awarded < req.Amount,
	}
	if result.Entry != nil {
		id := result.Entry.ID.String()
		resp.EntryID = &id
	}
	response.OK(c, resp)
}

// ChainSync handles POST /api/v1/internal/chain-sync. With an entry_id
// it syncs that entry; otherwise it sweeps a full batch. Called by the
// external scheduler alongside the in-process cron.
func (h *InternalHandler) ChainSync(c *gin.Context) {
	var req dto.ChainSyncRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	if req.EntryID != nil {
		entryID, err := uuid.Parse(*req.EntryID)
		if err != nil {
			response.Error(c, apperror.Validation("invalid entry_id"))
			return
		}
		if err := h.reconcilerSvc.SyncEntry(c.Request.Context(), entryID); err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, gin.H{"entry_id": entryID})
		return
	}

	report, err := h.reconcilerSvc.ProcessPendingBatch(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, report)
}

// EnsureWallet handles POST /api/v1/internal/wallets/ensure, called by
// the account service when a family member signs up.
func (h *InternalHandler) EnsureWallet(c *gin.Context) {
	var req dto.EnsureWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	accountID, err := uuid.Parse(req.AccountID)
	if err != nil {
		response.Error(c, apperror.Validation("invalid account_id"))
		return
	}

	address, err := h.walletSvc.EnsureWallet(c.Request.Context(), domain.AccountKind(req.OwnerKind), accountID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.WalletAddressResponse{
		AccountID: accountID.String(),
		Address:   address,
	})
}
