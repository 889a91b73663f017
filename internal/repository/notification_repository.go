package repository

import (
	"errors"
	"time"

	"github.com/souqline/internal/models"

	"gorm.io/gorm"
)

// NotificationRepository is the notification inbox data access interface.
type NotificationRepository interface {
	Create(n *models.Notification) error
	GetByID(id uint) (*models.Notification, error)
	List(filter NotificationListFilter) ([]models.Notification, int64, error)
	MarkRead(id uint, recipientRole string, recipientID uint) (int64, error)
	CountUnread(recipientRole string, recipientID uint) (int64, error)
	WithTx(tx *gorm.DB) *GormNotificationRepository
}

// GormNotificationRepository is the GORM implementation.
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a notification repository.
func NewNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormNotificationRepository) WithTx(tx *gorm.DB) *GormNotificationRepository {
	if tx == nil {
		return r
	}
	return &GormNotificationRepository{db: tx}
}

// Create persists a notification.
func (r *GormNotificationRepository) Create(n *models.Notification) error {
	return r.db.Create(n).Error
}

// GetByID fetches a notification by ID.
func (r *GormNotificationRepository) GetByID(id uint) (*models.Notification, error) {
	var n models.Notification
	if err := r.db.First(&n, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &n, nil
}

// List queries a recipient's inbox, newest first.
func (r *GormNotificationRepository) List(filter NotificationListFilter) ([]models.Notification, int64, error) {
	query := r.db.Model(&models.Notification{})

	if filter.RecipientRole != "" {
		query = query.Where("recipient_role = ?", filter.RecipientRole)
	}
	query = query.Where("recipient_id = ?", filter.RecipientID)
	if filter.OnlyUnread {
		query = query.Where("read_at IS NULL")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var notifications []models.Notification
	if err := query.Order("id desc").Find(&notifications).Error; err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

// MarkRead stamps a notification as read for its recipient.
func (r *GormNotificationRepository) MarkRead(id uint, recipientRole string, recipientID uint) (int64, error) {
	result := r.db.Model(&models.Notification{}).
		Where("id = ? AND recipient_role = ? AND recipient_id = ? AND read_at IS NULL",
			id, recipientRole, recipientID).
		Update("read_at", time.Now())
	return result.RowsAffected, result.Error
}

// CountUnread counts the recipient's unread notifications.
func (r *GormNotificationRepository) CountUnread(recipientRole string, recipientID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Notification{}).
		Where("recipient_role = ? AND recipient_id = ? AND read_at IS NULL", recipientRole, recipientID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
