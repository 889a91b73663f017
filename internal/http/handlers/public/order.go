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

// CreateOrderRequest opens a new order.
type CreateOrderRequest struct {
	SellerID      uint   `json:"seller_id" binding:"required"`
	CityID        uint   `json:"city_id" binding:"required"`
	TotalPrice    string `json:"total_price" binding:"required"`
	DepositAmount string `json:"deposit_amount"`
	Description   string `json:"description"`
}

// CancelOrderRequest carries the cancellation reason.
type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

// CreateOrder opens an order for the authenticated buyer.
func (h *Handler) CreateOrder(c *gin.Context) {
	actor, ok := shared.RequireRole(c, constants.ActorRoleBuyer)
	if !ok {
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	total, err := decimal.NewFromString(strings.TrimSpace(req.TotalPrice))
	if err != nil {
		response.Error(c, response.CodeUnprocessable, "total_price is not a valid amount")
		return
	}
	input := service.CreateOrderInput{
		BuyerID:     actor.ID,
		SellerID:    req.SellerID,
		CityID:      req.CityID,
		TotalPrice:  models.NewMoneyFromDecimal(total),
		Description: req.Description,
	}
	if deposit := strings.TrimSpace(req.DepositAmount); deposit != "" {
		d, err := decimal.NewFromString(deposit)
		if err != nil || d.IsNegative() {
			response.Error(c, response.CodeUnprocessable, "deposit_amount is not a valid amount")
			return
		}
		m := models.NewMoneyFromDecimal(d)
		input.DepositAmount = &m
	}

	order, err := h.OrderService.Create(input)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	response.Success(c, order)
}

// ListOrders lists the caller's orders, buyer or seller scoped.
func (h *Handler) ListOrders(c *gin.Context) {
	actor, ok := shared.CurrentActor(c)
	if !ok {
		return
	}

	page, pageSize := shared.ParsePagination(c)
	filter := repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   strings.TrimSpace(c.Query("status")),
		OrderNo:  strings.TrimSpace(c.Query("order_no")),
	}
	switch actor.Role {
	case constants.ActorRoleBuyer:
		filter.BuyerID = actor.ID
	case constants.ActorRoleSeller:
		filter.SellerID = actor.ID
	case constants.ActorRoleDelivery:
		filter.PersonnelID = actor.ID
	default:
		response.Forbidden(c, "insufficient permissions")
		return
	}

	orders, total, err := h.OrderService.List(filter)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to fetch orders", err)
		return
	}

	response.SuccessWithPage(c, orders, response.NewPagination(page, pageSize, total))
}

// GetOrder fetches one of the caller's orders.
func (h *Handler) GetOrder(c *gin.Context) {
	actor, ok := shared.CurrentActor(c)
	if !ok {
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
	if !orderVisibleTo(order, actor) {
		response.Forbidden(c, "this order does not belong to you")
		return
	}

	response.Success(c, order)
}

// OrderHistory lists the audit trail of one of the caller's orders.
func (h *Handler) OrderHistory(c *gin.Context) {
	actor, ok := shared.CurrentActor(c)
	if !ok {
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
	if !orderVisibleTo(order, actor) {
		response.Forbidden(c, "this order does not belong to you")
		return
	}

	entries, err := h.OrderService.History(orderID)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	response.Success(c, entries)
}

// CancelOrder cancels one of the caller's orders.
func (h *Handler) CancelOrder(c *gin.Context) {
	actor, ok := shared.CurrentActor(c)
	if !ok {
		return
	}
	orderID, ok := shared.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req CancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		shared.RespondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	order, err := h.OrderService.Cancel(orderID, actor, strings.TrimSpace(req.Reason))
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	response.Success(c, order)
}

func orderVisibleTo(order *models.Order, actor service.Actor) bool {
	if order == nil {
		return false
	}
	switch actor.Role {
	case constants.ActorRoleAdmin:
		return true
	case constants.ActorRoleBuyer:
		return order.BuyerID == actor.ID
	case constants.ActorRoleSeller:
		return order.SellerID == actor.ID
	case constants.ActorRoleDelivery:
		return (order.PickupPersonID != nil && *order.PickupPersonID == actor.ID) ||
			(order.DeliveryPersonID != nil && *order.DeliveryPersonID == actor.ID)
	default:
		return false
	}
}
