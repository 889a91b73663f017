package public

import (
	"strconv"
	"strings"

	"github.com/souqline/internal/constants"
	"github.com/souqline/internal/http/handlers/shared"
	"github.com/souqline/internal/http/response"
	"github.com/souqline/internal/service"

	"github.com/gin-gonic/gin"
)

// PickupOrderRequest carries the optional pickup note.
type PickupOrderRequest struct {
	Note string `json:"note"`
}

// SuspendOrderRequest carries the suspension reason.
type SuspendOrderRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// AvailableOrders lists ready, unassigned orders for claiming.
func (h *Handler) AvailableOrders(c *gin.Context) {
	if _, ok := shared.RequireRole(c, constants.ActorRoleDelivery); !ok {
		return
	}

	page, pageSize := shared.ParsePagination(c)
	cityID, _ := strconv.ParseUint(c.Query("city_id"), 10, 64)

	orders, total, err := h.AssignmentService.AvailableOrders(uint(cityID), page, pageSize)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to fetch available orders", err)
		return
	}

	response.SuccessWithPage(c, orders, response.NewPagination(page, pageSize, total))
}

// ClaimOrder lets a delivery person claim the pickup slot of a ready
// order. Exactly one of several concurrent claimers wins.
func (h *Handler) ClaimOrder(c *gin.Context) {
	actor, ok := shared.RequireRole(c, constants.ActorRoleDelivery)
	if !ok {
		return
	}
	orderID, ok := shared.ParseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.AssignmentService.Assign(service.AssignInput{
		OrderID:     orderID,
		PersonnelID: actor.ID,
		Role:        constants.AssignmentRolePickup,
	})
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	response.Success(c, order)
}

// PickUpOrder records the physical pickup of an assigned order.
func (h *Handler) PickUpOrder(c *gin.Context) {
	actor, ok := shared.RequireRole(c, constants.ActorRoleDelivery)
	if !ok {
		return
	}
	orderID, ok := shared.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req PickupOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		shared.RespondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	order, err := h.OrderService.PickUp(orderID, actor.ID, strings.TrimSpace(req.Note))
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	response.Success(c, order)
}

// DeliverOrder records the delivery of an out-for-delivery order.
func (h *Handler) DeliverOrder(c *gin.Context) {
	actor, ok := shared.RequireRole(c, constants.ActorRoleDelivery)
	if !ok {
		return
	}
	orderID, ok := shared.ParseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.OrderService.Deliver(orderID, actor.ID)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	response.Success(c, order)
}

// SuspendOrder halts an out-for-delivery order with a reason.
func (h *Handler) SuspendOrder(c *gin.Context) {
	actor, ok := shared.RequireRole(c, constants.ActorRoleDelivery)
	if !ok {
		return
	}
	orderID, ok := shared.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req SuspendOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, response.CodeUnprocessable, "reason is required")
		return
	}

	order, err := h.OrderService.Suspend(orderID, actor.ID, strings.TrimSpace(req.Reason))
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	response.Success(c, order)
}

// ToggleAvailability flips the caller's availability flag.
func (h *Handler) ToggleAvailability(c *gin.Context) {
	actor, ok := shared.RequireRole(c, constants.ActorRoleDelivery)
	if !ok {
		return
	}

	personnel, err := h.AssignmentService.ToggleAvailability(actor.ID)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	response.Success(c, personnel)
}
