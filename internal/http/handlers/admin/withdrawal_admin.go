package admin

import (
	"strings"

	"github.com/souqline/internal/constants"
	"github.com/souqline/internal/http/handlers/shared"
	"github.com/souqline/internal/http/response"
	"github.com/souqline/internal/repository"
	"github.com/souqline/internal/service"

	"github.com/gin-gonic/gin"
)

// ApproveWithdrawalRequest carries optional processing notes.
type ApproveWithdrawalRequest struct {
	Notes string `json:"notes"`
}

// RejectWithdrawalRequest carries the rejection reason.
type RejectWithdrawalRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ListWithdrawals queries seller payout requests.
func (h *Handler) ListWithdrawals(c *gin.Context) {
	if _, ok := shared.RequireAdmin(c); !ok {
		return
	}
	page, pageSize := shared.ParsePagination(c)

	requests, total, err := h.WithdrawalService.ListSeller(h.withdrawalFilter(c, page, pageSize))
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to fetch withdrawals", err)
		return
	}

	response.SuccessWithPage(c, requests, response.NewPagination(page, pageSize, total))
}

// ListBuyerWithdrawals queries buyer payout requests.
func (h *Handler) ListBuyerWithdrawals(c *gin.Context) {
	if _, ok := shared.RequireAdmin(c); !ok {
		return
	}
	page, pageSize := shared.ParsePagination(c)

	requests, total, err := h.WithdrawalService.ListBuyer(h.withdrawalFilter(c, page, pageSize))
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to fetch withdrawals", err)
		return
	}

	response.SuccessWithPage(c, requests, response.NewPagination(page, pageSize, total))
}

func (h *Handler) withdrawalFilter(c *gin.Context, page, pageSize int) repository.WithdrawalListFilter {
	return repository.WithdrawalListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   strings.TrimSpace(c.Query("status")),
		Method:   strings.TrimSpace(c.Query("method")),
	}
}

// ApproveWithdrawal debits the owner wallet and settles the request.
func (h *Handler) ApproveWithdrawal(c *gin.Context) {
	h.decideWithdrawal(c, constants.WalletOwnerSeller, true)
}

// RejectWithdrawal declines a seller request with a reason.
func (h *Handler) RejectWithdrawal(c *gin.Context) {
	h.decideWithdrawal(c, constants.WalletOwnerSeller, false)
}

// ApproveBuyerWithdrawal debits the buyer wallet and settles the
// request.
func (h *Handler) ApproveBuyerWithdrawal(c *gin.Context) {
	h.decideWithdrawal(c, constants.WalletOwnerBuyer, true)
}

// RejectBuyerWithdrawal declines a buyer request with a reason.
func (h *Handler) RejectBuyerWithdrawal(c *gin.Context) {
	h.decideWithdrawal(c, constants.WalletOwnerBuyer, false)
}

func (h *Handler) decideWithdrawal(c *gin.Context, ownerKind string, approve bool) {
	actor, ok := shared.RequireAdmin(c)
	if !ok {
		return
	}
	requestID, ok := shared.ParseIDParam(c, "id")
	if !ok {
		return
	}

	input := service.DecideWithdrawalInput{
		OwnerKind: ownerKind,
		RequestID: requestID,
		AdminID:   actor.ID,
	}

	var (
		result interface{}
		err    error
	)
	if approve {
		var req ApproveWithdrawalRequest
		if bindErr := c.ShouldBindJSON(&req); bindErr != nil && bindErr.Error() != "EOF" {
			shared.RespondError(c, response.CodeBadRequest, "invalid request body", bindErr)
			return
		}
		input.Notes = strings.TrimSpace(req.Notes)
		result, err = h.WithdrawalService.Approve(input)
	} else {
		var req RejectWithdrawalRequest
		if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
			response.Error(c, response.CodeUnprocessable, "reason is required")
			return
		}
		input.Reason = strings.TrimSpace(req.Reason)
		result, err = h.WithdrawalService.Reject(input)
	}
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	response.Success(c, result)
}
