package handlers

import (
	"net/http"

	"sitesketch-service/internal/services"

	"github.com/gin-gonic/gin"
)

type WalletHandler struct {
	Wallet *services.WalletService
}

func NewWalletHandler(wallet *services.WalletService) *WalletHandler {
	return &WalletHandler{Wallet: wallet}
}

func (h *WalletHandler) GetWallet(c *gin.Context) {
	projectId, ok := pathId(c, "projectId")
	if !ok {
		return
	}

	wallet, err := h.Wallet.GetWalletByProject(projectId)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"balance":      wallet.Balance,
		"hold_balance": wallet.HoldBalance,
		"currency":     wallet.Currency,
		"wallet_id":    wallet.ID,
	})
}

func (h *WalletHandler) ListTransactions(c *gin.Context) {
	projectId, ok := pathId(c, "projectId")
	if !ok {
		return
	}

	wallet, err := h.Wallet.GetWalletByProject(projectId)
	if err != nil {
		respondError(c, err)
		return
	}

	res, err := h.Wallet.ListTransactions(services.ListTransactionsDTO{
		WalletId: wallet.ID,
		Status:   c.Query("status"),
		Page:     queryInt(c, "page"),
		Limit:    queryInt(c, "limit"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
