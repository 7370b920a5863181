package handler

import (
	"tokenvine/internal/core/ports"
	"tokenvine/pkg/apperror"
	"tokenvine/pkg/response"

	"github.com/gin-gonic/gin"
)

// WalletHandler handles the parent-facing blockchain settings endpoint.
type WalletHandler struct {
	walletSvc ports.WalletService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletSvc ports.WalletService) *WalletHandler {
	return &WalletHandler{walletSvc: walletSvc}
}

// GetFamilyWallets handles GET /api/v1/blockchain/wallets (parent).
func (h *WalletHandler) GetFamilyWallets(c *gin.Context) {
	familyID, ok := callerFamilyID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	settings, err := h.walletSvc.FamilyWallets(c.Request.Context(), familyID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, settings)
}
