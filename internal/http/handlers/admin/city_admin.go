package admin

import (
	"strings"

	"github.com/souqline/internal/http/handlers/shared"
	"github.com/souqline/internal/http/response"
	"github.com/souqline/internal/models"
	"github.com/souqline/internal/service"

	"github.com/gin-gonic/gin"
)

// CityRequest creates or updates a city.
type CityRequest struct {
	Name                      string `json:"name" binding:"required"`
	DeliveryFee               string `json:"delivery_fee" binding:"required"`
	PlatformCommissionPercent string `json:"platform_commission_percent" binding:"required"`
}

func (r *CityRequest) toInput() (service.CityInput, bool) {
	fee, ok := models.ParseMoney(strings.TrimSpace(r.DeliveryFee))
	if !ok {
		return service.CityInput{}, false
	}
	percent, ok := models.ParseMoney(strings.TrimSpace(r.PlatformCommissionPercent))
	if !ok {
		return service.CityInput{}, false
	}
	return service.CityInput{
		Name:                      r.Name,
		DeliveryFee:               fee,
		PlatformCommissionPercent: percent,
	}, true
}

// ListCities pages through cities.
func (h *Handler) ListCities(c *gin.Context) {
	if _, ok := shared.RequireAdmin(c); !ok {
		return
	}

	page, pageSize := shared.ParsePagination(c)
	cities, total, err := h.CityService.List(page, pageSize)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to fetch cities", err)
		return
	}

	response.SuccessWithPage(c, cities, response.NewPagination(page, pageSize, total))
}

// CreateCity adds a city.
func (h *Handler) CreateCity(c *gin.Context) {
	if _, ok := shared.RequireAdmin(c); !ok {
		return
	}

	var req CityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	input, ok := req.toInput()
	if !ok {
		response.Error(c, response.CodeUnprocessable, "delivery_fee and platform_commission_percent must be valid amounts")
		return
	}

	city, err := h.CityService.Create(input)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	response.Success(c, city)
}

// UpdateCity modifies a city.
func (h *Handler) UpdateCity(c *gin.Context) {
	if _, ok := shared.RequireAdmin(c); !ok {
		return
	}
	id, ok := shared.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req CityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	input, ok := req.toInput()
	if !ok {
		response.Error(c, response.CodeUnprocessable, "delivery_fee and platform_commission_percent must be valid amounts")
		return
	}

	city, err := h.CityService.Update(id, input)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	response.Success(c, city)
}

// DeleteCity removes a city.
func (h *Handler) DeleteCity(c *gin.Context) {
	if _, ok := shared.RequireAdmin(c); !ok {
		return
	}
	id, ok := shared.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.CityService.Delete(id); err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	response.Success(c, nil)
}
