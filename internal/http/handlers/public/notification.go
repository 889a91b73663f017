package public

import (
	"github.com/souqline/internal/http/handlers/shared"
	"github.com/souqline/internal/http/response"
	"github.com/souqline/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListNotifications pages through the caller's inbox.
func (h *Handler) ListNotifications(c *gin.Context) {
	actor, ok := shared.CurrentActor(c)
	if !ok {
		return
	}

	page, pageSize := shared.ParsePagination(c)
	notifications, total, err := h.NotificationService.Inbox(repository.NotificationListFilter{
		Page:          page,
		PageSize:      pageSize,
		RecipientRole: actor.Role,
		RecipientID:   actor.ID,
		OnlyUnread:    c.Query("unread") == "1",
	})
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to fetch notifications", err)
		return
	}

	response.SuccessWithPage(c, notifications, response.NewPagination(page, pageSize, total))
}

// MarkNotificationRead marks one of the caller's notifications read.
func (h *Handler) MarkNotificationRead(c *gin.Context) {
	actor, ok := shared.CurrentActor(c)
	if !ok {
		return
	}
	id, ok := shared.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.NotificationService.MarkRead(id, actor.Role, actor.ID); err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	response.Success(c, nil)
}

// UnreadNotificationCount returns the caller's unread badge count.
func (h *Handler) UnreadNotificationCount(c *gin.Context) {
	actor, ok := shared.CurrentActor(c)
	if !ok {
		return
	}

	count, err := h.NotificationService.CountUnread(actor.Role, actor.ID)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "failed to count notifications", err)
		return
	}

	response.Success(c, gin.H{"unread": count})
}
