package public

import (
	"github.com/souqline/internal/constants"
	"github.com/souqline/internal/http/handlers/shared"
	"github.com/souqline/internal/http/response"
	"github.com/souqline/internal/models"
	"github.com/souqline/internal/service"

	"github.com/gin-gonic/gin"
)

// SellerApproveOrder confirms an admin-approved order.
func (h *Handler) SellerApproveOrder(c *gin.Context) {
	h.sellerTransition(c, h.OrderService.SellerApprove)
}

// SellerWorkComplete marks the seller's work finished.
func (h *Handler) SellerWorkComplete(c *gin.Context) {
	h.sellerTransition(c, h.OrderService.WorkComplete)
}

// SellerMarkReady queues the order for delivery assignment.
func (h *Handler) SellerMarkReady(c *gin.Context) {
	h.sellerTransition(c, h.OrderService.MarkReadyForDelivery)
}

func (h *Handler) sellerTransition(c *gin.Context, op func(uint, service.Actor) (*models.Order, error)) {
	actor, ok := shared.RequireRole(c, constants.ActorRoleSeller)
	if !ok {
		return
	}
	orderID, ok := shared.ParseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := op(orderID, actor)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	response.Success(c, order)
}
