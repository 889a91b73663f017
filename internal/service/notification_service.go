package service

import (
	"strings"

	"github.com/souqline/internal/constants"
	"github.com/souqline/internal/logger"
	"github.com/souqline/internal/models"
	"github.com/souqline/internal/queue"
	"github.com/souqline/internal/repository"
)

// NotificationService fans workflow events out to recipient inboxes.
// Dispatch goes through the queue; a full queue or enqueue failure is
// logged and dropped so it never fails the triggering operation.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
	adminRepo        repository.AdminRepository
	queueClient      *queue.Client
}

// NewNotificationService creates a notification service.
func NewNotificationService(
	notificationRepo repository.NotificationRepository,
	adminRepo repository.AdminRepository,
	queueClient *queue.Client,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		adminRepo:        adminRepo,
		queueClient:      queueClient,
	}
}

// Notify sends a notification to one recipient.
func (s *NotificationService) Notify(recipientRole string, recipientID uint, kind, message, link string) {
	s.dispatch(queue.NotificationDispatchPayload{
		RecipientRole: recipientRole,
		RecipientID:   recipientID,
		Kind:          kind,
		Message:       message,
		Link:          link,
	})
}

// NotifyAdmins broadcasts a notification to every admin.
func (s *NotificationService) NotifyAdmins(kind, message, link string) {
	s.dispatch(queue.NotificationDispatchPayload{
		RecipientRole: constants.ActorRoleAdmin,
		RecipientID:   0,
		Kind:          kind,
		Message:       message,
		Link:          link,
	})
}

func (s *NotificationService) dispatch(payload queue.NotificationDispatchPayload) {
	if s == nil {
		return
	}
	payload.Message = strings.TrimSpace(payload.Message)
	if payload.Message == "" {
		return
	}
	if s.queueClient != nil && s.queueClient.Enabled() {
		if err := s.queueClient.EnqueueNotificationDispatch(payload); err != nil {
			logger.Warnw("notification_enqueue_failed",
				"recipient_role", payload.RecipientRole,
				"recipient_id", payload.RecipientID,
				"kind", payload.Kind,
				"error", err,
			)
		}
		return
	}
	// No queue configured: persist inline.
	if err := s.Persist(payload); err != nil {
		logger.Warnw("notification_persist_failed",
			"recipient_role", payload.RecipientRole,
			"recipient_id", payload.RecipientID,
			"kind", payload.Kind,
			"error", err,
		)
	}
}

// Persist writes the notification rows for a dispatch payload. A zero
// recipient ID with the admin role fans out to all admins.
func (s *NotificationService) Persist(payload queue.NotificationDispatchPayload) error {
	if payload.RecipientRole == constants.ActorRoleAdmin && payload.RecipientID == 0 {
		ids, err := s.adminRepo.ListIDs()
		if err != nil {
			return err
		}
		for _, id := range ids {
			n := &models.Notification{
				RecipientRole: payload.RecipientRole,
				RecipientID:   id,
				Kind:          payload.Kind,
				Message:       payload.Message,
				Link:          payload.Link,
			}
			if err := s.notificationRepo.Create(n); err != nil {
				return err
			}
		}
		return nil
	}
	n := &models.Notification{
		RecipientRole: payload.RecipientRole,
		RecipientID:   payload.RecipientID,
		Kind:          payload.Kind,
		Message:       payload.Message,
		Link:          payload.Link,
	}
	return s.notificationRepo.Create(n)
}

// Inbox lists a recipient's notifications.
func (s *NotificationService) Inbox(filter repository.NotificationListFilter) ([]models.Notification, int64, error) {
	return s.notificationRepo.List(filter)
}

// MarkRead marks one notification read for its recipient.
func (s *NotificationService) MarkRead(id uint, recipientRole string, recipientID uint) error {
	affected, err := s.notificationRepo.MarkRead(id, recipientRole, recipientID)
	if err != nil {
		return err
	}
	if affected == 0 {
		existing, err := s.notificationRepo.GetByID(id)
		if err != nil {
			return err
		}
		if existing == nil || existing.RecipientRole != recipientRole || existing.RecipientID != recipientID {
			return ErrNotificationNotFound
		}
		// Already read.
	}
	return nil
}

// CountUnread counts a recipient's unread notifications.
func (s *NotificationService) CountUnread(recipientRole string, recipientID uint) (int64, error) {
	return s.notificationRepo.CountUnread(recipientRole, recipientID)
}
