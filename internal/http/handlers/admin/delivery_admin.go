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

// AssignRequest binds one order to one delivery person.
type AssignRequest struct {
	OrderID     uint `json:"order_id" binding:"required"`
	PersonnelID uint `json:"personnel_id" binding:"required"`
}

// BulkAssignRequest binds many orders to one delivery person.
type BulkAssignRequest struct {
	OrderIDs    []uint `json:"order_ids" binding:"required"`
	PersonnelID uint   `json:"personnel_id" binding:"required"`
}

// CreatePersonnelRequest registers a delivery person.
type CreatePersonnelRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
}

// SetPersonnelStatusRequest changes a delivery person's status.
type SetPersonnelStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AssignPickup fills the pickup slot of a ready order.
func (h *Handler) AssignPickup(c *gin.Context) {
	h.assign(c, constants.AssignmentRolePickup)
}

// AssignDelivery fills the delivery slot of a ready order.
func (h *Handler) AssignDelivery(c *gin.Context) {
	h.assign(c, constants.AssignmentRoleDelivery)
}

func (h *Handler) assign(c *gin.Context, role string) {
	if _, ok := shared.RequireAdmin(c); !ok {
		return
	}

	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	order, err := h.AssignmentService.Assign(service.AssignInput{
		OrderID:     req.OrderID,
		PersonnelID: req.PersonnelID,
		Role:        role,
	})
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	response.Success(c, order)
}

// BulkAssign fills the delivery slot of many orders at once. Failures
// are reported per order; successes stand.
func (h *Handler) BulkAssign(c *gin.Context) {
	if _, ok := shared.RequireAdmin(c); !ok {
		return
	}

	var req BulkAssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	if len(req.OrderIDs) == 0 {
		response.Error(c, response.CodeUnprocessable, "order_ids must not be empty")
		return
	}

	results := h.AssignmentService.BulkAssign(req.OrderIDs, req.PersonnelID, constants.AssignmentRoleDelivery)
	response.Success(c, results)
}

// ListPersonnel queries delivery personnel.
func (h *Handler) ListPersonnel(c *gin.Context) {
	if _, ok := shared.RequireAdmin(c); !ok {
		return
	}

	page, pageSize := shared.ParsePagination(c)
	personnel, total, err := h.AssignmentService.ListPersonnel(repository.PersonnelListFilter{
		Page:          page,
		PageSize:      pageSize,
		Status:        strings.TrimSpace(c.Query("status")),
		OnlyAvailable: c.Query("available") == "1",
		Keyword:       strings.TrimSpace(c.Query("keyword")),
	})
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to fetch personnel", err)
		return
	}

	response.SuccessWithPage(c, personnel, response.NewPagination(page, pageSize, total))
}

// CreatePersonnel registers a delivery person.
func (h *Handler) CreatePersonnel(c *gin.Context) {
	if _, ok := shared.RequireAdmin(c); !ok {
		return
	}

	var req CreatePersonnelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	personnel, err := h.AssignmentService.CreatePersonnel(req.Name, req.Phone)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	response.Success(c, personnel)
}

// SetPersonnelStatus activates, deactivates or suspends a delivery
// person.
func (h *Handler) SetPersonnelStatus(c *gin.Context) {
	if _, ok := shared.RequireAdmin(c); !ok {
		return
	}
	id, ok := shared.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req SetPersonnelStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, response.CodeUnprocessable, "status is required")
		return
	}

	personnel, err := h.AssignmentService.SetPersonnelStatus(id, strings.TrimSpace(req.Status))
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	response.Success(c, personnel)
}
