package public

import (
	"strings"

	"github.com/souqline/internal/constants"
	"github.com/souqline/internal/http/handlers/shared"
	"github.com/souqline/internal/http/response"
	"github.com/souqline/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetWallet returns the caller's balance plus a ledger page.
func (h *Handler) GetWallet(c *gin.Context) {
	actor, ok := shared.CurrentActor(c)
	if !ok {
		return
	}

	var ownerKind string
	switch actor.Role {
	case constants.ActorRoleBuyer:
		ownerKind = constants.WalletOwnerBuyer
	case constants.ActorRoleSeller:
		ownerKind = constants.WalletOwnerSeller
	default:
		response.Forbidden(c, "this role has no wallet")
		return
	}

	balance, err := h.WalletService.GetBalance(ownerKind, actor.ID)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	page, pageSize := shared.ParsePagination(c)
	transactions, total, err := h.WalletService.ListTransactions(repository.WalletTransactionListFilter{
		Page:      page,
		PageSize:  pageSize,
		OwnerKind: ownerKind,
		OwnerID:   actor.ID,
		Type:      strings.TrimSpace(c.Query("type")),
		Direction: strings.TrimSpace(c.Query("direction")),
	})
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to fetch wallet ledger", err)
		return
	}

	response.SuccessWithPage(c, gin.H{
		"balance":      balance,
		"transactions": transactions,
	}, response.NewPagination(page, pageSize, total))
}
