package admin

import (
	"strconv"
	"strings"

	"github.com/souqline/internal/http/handlers/shared"
	"github.com/souqline/internal/http/response"
	"github.com/souqline/internal/repository"

	"github.com/gin-gonic/gin"
)

// RejectOrderRequest carries the rejection reason.
type RejectOrderRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// RedispatchOrderRequest names the state a suspended order resumes to.
type RedispatchOrderRequest struct {
	To string `json:"to"`
}

// ApproveOrder confirms a pending order and marks it paid.
func (h *Handler) ApproveOrder(c *gin.Context) {
	actor, ok := shared.RequireAdmin(c)
	if !ok {
		return
	}
	orderID, ok := shared.ParseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.OrderService.Approve(orderID, actor)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	response.Success(c, order)
}

// RejectOrder declines an order with a reason.
func (h *Handler) RejectOrder(c *gin.Context) {
	actor, ok := shared.RequireAdmin(c)
	if !ok {
		return
	}
	orderID, ok := shared.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req RejectOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, response.CodeUnprocessable, "reason is required")
		return
	}

	order, err := h.OrderService.Reject(orderID, actor, strings.TrimSpace(req.Reason))
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	response.Success(c, order)
}

// RedispatchOrder resumes a suspended order.
func (h *Handler) RedispatchOrder(c *gin.Context) {
	actor, ok := shared.RequireAdmin(c)
	if !ok {
		return
	}
	orderID, ok := shared.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req RedispatchOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		shared.RespondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	order, err := h.OrderService.Resume(orderID, actor, strings.TrimSpace(req.To))
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	response.Success(c, order)
}

// CompleteOrder settles a delivered order: records platform profit and
// credits the seller.
func (h *Handler) CompleteOrder(c *gin.Context) {
	actor, ok := shared.RequireAdmin(c)
	if !ok {
		return
	}
	orderID, ok := shared.ParseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.OrderService.Complete(orderID, actor)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	response.Success(c, order)
}

// CancelOrder cancels any non-terminal order.
func (h *Handler) CancelOrder(c *gin.Context) {
	actor, ok := shared.RequireAdmin(c)
	if !ok {
		return
	}
	orderID, ok := shared.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req RejectOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, response.CodeUnprocessable, "reason is required")
		return
	}

	order, err := h.OrderService.Cancel(orderID, actor, strings.TrimSpace(req.Reason))
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	response.Success(c, order)
}

// ListOrders queries all orders with filters.
func (h *Handler) ListOrders(c *gin.Context) {
	if _, ok := shared.RequireAdmin(c); !ok {
		return
	}

	page, pageSize := shared.ParsePagination(c)
	buyerID, _ := strconv.ParseUint(c.Query("buyer_id"), 10, 64)
	sellerID, _ := strconv.ParseUint(c.Query("seller_id"), 10, 64)
	cityID, _ := strconv.ParseUint(c.Query("city_id"), 10, 64)
	personnelID, _ := strconv.ParseUint(c.Query("personnel_id"), 10, 64)

	orders, total, err := h.OrderService.List(repository.OrderListFilter{
		Page:        page,
		PageSize:    pageSize,
		Status:      strings.TrimSpace(c.Query("status")),
		OrderNo:     strings.TrimSpace(c.Query("order_no")),
		BuyerID:     uint(buyerID),
		SellerID:    uint(sellerID),
		CityID:      uint(cityID),
		PersonnelID: uint(personnelID),
	})
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to fetch orders", err)
		return
	}

	response.SuccessWithPage(c, orders, response.NewPagination(page, pageSize, total))
}

// GetOrder fetches one order with its history.
func (h *Handler) GetOrder(c *gin.Context) {
	if _, ok := shared.RequireAdmin(c); !ok {
		return
	}
	orderID, ok := shared.ParseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.OrderService.Get(orderID)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	history, err := h.OrderService.History(orderID)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	response.Success(c, gin.H{
		"order":   order,
		"history": history,
	})
}
