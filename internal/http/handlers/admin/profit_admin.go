package admin

import (
	"strconv"
	"time"

	"github.com/souqline/internal/http/handlers/shared"
	"github.com/souqline/internal/http/response"
	"github.com/souqline/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListProfits pages through platform profit rows with filters.
func (h *Handler) ListProfits(c *gin.Context) {
	if _, ok := shared.RequireAdmin(c); !ok {
		return
	}

	page, pageSize := shared.ParsePagination(c)
	filter := h.profitFilter(c, page, pageSize)

	profits, total, err := h.ProfitService.List(filter)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to fetch profits", err)
		return
	}

	sum, err := h.ProfitService.Total(filter)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to sum profits", err)
		return
	}

	response.SuccessWithPage(c, gin.H{
		"profits": profits,
		"total":   sum,
	}, response.NewPagination(page, pageSize, total))
}

func (h *Handler) profitFilter(c *gin.Context, page, pageSize int) repository.ProfitListFilter {
	cityID, _ := strconv.ParseUint(c.Query("city_id"), 10, 64)
	sellerID, _ := strconv.ParseUint(c.Query("seller_id"), 10, 64)
	filter := repository.ProfitListFilter{
		Page:     page,
		PageSize: pageSize,
		CityID:   uint(cityID),
		SellerID: uint(sellerID),
	}
	if from, err := time.Parse(time.RFC3339, c.Query("from")); err == nil {
		filter.CreatedFrom = &from
	}
	if to, err := time.Parse(time.RFC3339, c.Query("to")); err == nil {
		filter.CreatedTo = &to
	}
	return filter
}
