package public

import (
	"strings"

	"github.com/souqline/internal/constants"
	"github.com/souqline/internal/http/handlers/shared"
	"github.com/souqline/internal/http/response"
	"github.com/souqline/internal/models"
	"github.com/souqline/internal/repository"
	"github.com/souqline/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CreateWithdrawalRequest asks for a payout.
type CreateWithdrawalRequest struct {
	Amount         string `json:"amount" binding:"required"`
	PaymentMethod  string `json:"payment_method" binding:"required"`
	PaymentDetails string `json:"payment_details" binding:"required"`
}

// CreateWithdrawal opens a seller payout request.
func (h *Handler) CreateWithdrawal(c *gin.Context) {
	h.createWithdrawal(c, constants.ActorRoleSeller, constants.WalletOwnerSeller)
}

// CreateBuyerWithdrawal opens a buyer payout request.
func (h *Handler) CreateBuyerWithdrawal(c *gin.Context) {
	h.createWithdrawal(c, constants.ActorRoleBuyer, constants.WalletOwnerBuyer)
}

func (h *Handler) createWithdrawal(c *gin.Context, role, ownerKind string) {
	actor, ok := shared.RequireRole(c, role)
	if !ok {
		return
	}

	var req CreateWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil {
		response.Error(c, response.CodeUnprocessable, "amount is not a valid number")
		return
	}

	request, err := h.WithdrawalService.Create(service.CreateWithdrawalInput{
		OwnerKind:      ownerKind,
		OwnerID:        actor.ID,
		Amount:         models.NewMoneyFromDecimal(amount),
		PaymentMethod:  req.PaymentMethod,
		PaymentDetails: req.PaymentDetails,
	})
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	response.Success(c, request)
}

// ListWithdrawals lists the seller's payout requests.
func (h *Handler) ListWithdrawals(c *gin.Context) {
	actor, ok := shared.RequireRole(c, constants.ActorRoleSeller)
	if !ok {
		return
	}
	page, pageSize := shared.ParsePagination(c)

	requests, total, err := h.WithdrawalService.ListSeller(repository.WithdrawalListFilter{
		Page:     page,
		PageSize: pageSize,
		OwnerID:  actor.ID,
		Status:   strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to fetch withdrawals", err)
		return
	}

	response.SuccessWithPage(c, requests, response.NewPagination(page, pageSize, total))
}

// ListBuyerWithdrawals lists the buyer's payout requests.
func (h *Handler) ListBuyerWithdrawals(c *gin.Context) {
	actor, ok := shared.RequireRole(c, constants.ActorRoleBuyer)
	if !ok {
		return
	}
	page, pageSize := shared.ParsePagination(c)

	requests, total, err := h.WithdrawalService.ListBuyer(repository.WithdrawalListFilter{
		Page:     page,
		PageSize: pageSize,
		OwnerID:  actor.ID,
		Status:   strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to fetch withdrawals", err)
		return
	}

	response.SuccessWithPage(c, requests, response.NewPagination(page, pageSize, total))
}

// WithdrawalOptions exposes the configured bounds and payment methods.
func (h *Handler) WithdrawalOptions(c *gin.Context) {
	if _, ok := shared.CurrentActor(c); !ok {
		return
	}
	minAmount, maxAmount := h.WithdrawalService.Bounds()
	response.Success(c, gin.H{
		"min_amount": minAmount,
		"max_amount": maxAmount,
		"methods":    h.WithdrawalService.Methods(),
	})
}
