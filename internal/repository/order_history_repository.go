package repository

import (
	"github.com/souqline/internal/models"

	"gorm.io/gorm"
)

// OrderHistoryRepository is the order history data access interface.
type OrderHistoryRepository interface {
	Create(entry *models.OrderHistory) error
	ListByOrder(orderID uint) ([]models.OrderHistory, error)
	WithTx(tx *gorm.DB) *GormOrderHistoryRepository
}

// GormOrderHistoryRepository is the GORM implementation.
type GormOrderHistoryRepository struct {
	db *gorm.DB
}

// NewOrderHistoryRepository creates an order history repository.
func NewOrderHistoryRepository(db *gorm.DB) *GormOrderHistoryRepository {
	return &GormOrderHistoryRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormOrderHistoryRepository) WithTx(tx *gorm.DB) *GormOrderHistoryRepository {
	if tx == nil {
		return r
	}
	return &GormOrderHistoryRepository{db: tx}
}

// Create appends a history entry.
func (r *GormOrderHistoryRepository) Create(entry *models.OrderHistory) error {
	return r.db.Create(entry).Error
}

// ListByOrder returns the full trail for an order, oldest first.
func (r *GormOrderHistoryRepository) ListByOrder(orderID uint) ([]models.OrderHistory, error) {
	var entries []models.OrderHistory
	if err := r.db.Where("order_id = ?", orderID).
		Order("id asc").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
