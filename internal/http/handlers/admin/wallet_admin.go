package admin

import (
	"strconv"
	"strings"

	"github.com/souqline/internal/constants"
	"github.com/souqline/internal/http/handlers/shared"
	"github.com/souqline/internal/http/response"
	"github.com/souqline/internal/models"
	"github.com/souqline/internal/repository"
	"github.com/souqline/internal/service"

	"github.com/gin-gonic/gin"
)

// AdjustWalletRequest applies a signed balance correction.
type AdjustWalletRequest struct {
	OwnerKind string `json:"owner_kind" binding:"required"`
	OwnerID   uint   `json:"owner_id" binding:"required"`
	Delta     string `json:"delta" binding:"required"`
	Remark    string `json:"remark" binding:"required"`
}

// AdjustWallet credits or debits an owner wallet out of band, with an
// audited ledger row.
func (h *Handler) AdjustWallet(c *gin.Context) {
	if _, ok := shared.RequireAdmin(c); !ok {
		return
	}

	var req AdjustWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	if req.OwnerKind != constants.WalletOwnerBuyer && req.OwnerKind != constants.WalletOwnerSeller {
		response.Error(c, response.CodeUnprocessable, "owner_kind must be buyer or seller")
		return
	}
	delta, ok := models.ParseMoney(strings.TrimSpace(req.Delta))
	if !ok || delta.Decimal.IsZero() {
		response.Error(c, response.CodeUnprocessable, "delta must be a non-zero amount")
		return
	}

	txn, err := h.WalletService.AdminAdjustBalance(service.WalletAdjustInput{
		OwnerKind: req.OwnerKind,
		OwnerID:   req.OwnerID,
		Delta:     delta,
		Remark:    strings.TrimSpace(req.Remark),
	})
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	response.Success(c, txn)
}

// ListWalletTransactions pages through the ledger of any owner.
func (h *Handler) ListWalletTransactions(c *gin.Context) {
	if _, ok := shared.RequireAdmin(c); !ok {
		return
	}

	page, pageSize := shared.ParsePagination(c)
	ownerID, _ := strconv.ParseUint(c.Query("owner_id"), 10, 64)
	orderID, _ := strconv.ParseUint(c.Query("order_id"), 10, 64)

	transactions, total, err := h.WalletService.ListTransactions(repository.WalletTransactionListFilter{
		Page:      page,
		PageSize:  pageSize,
		OwnerKind: strings.TrimSpace(c.Query("owner_kind")),
		OwnerID:   uint(ownerID),
		OrderID:   uint(orderID),
		Type:      strings.TrimSpace(c.Query("type")),
		Direction: strings.TrimSpace(c.Query("direction")),
	})
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to fetch wallet ledger", err)
		return
	}

	response.SuccessWithPage(c, transactions, response.NewPagination(page, pageSize, total))
}
