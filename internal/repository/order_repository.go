package repository

import (
	"errors"
	"time"

	"github.com/souqline/internal/constants"
	"github.com/souqline/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderRepository is the order data access interface.
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id uint) (*models.Order, error)
	GetByIDForUpdate(id uint) (*models.Order, error)
	GetByOrderNo(orderNo string) (*models.Order, error)
	List(filter OrderListFilter) ([]models.Order, int64, error)
	ListAvailable(cityID uint, page, pageSize int) ([]models.Order, int64, error)
	ListStaleReady(before time.Time, limit int) ([]models.Order, error)
	ClaimPickup(orderID, personnelID uint) (int64, error)
	ClaimDelivery(orderID, personnelID uint) (int64, error)
	Updates(id uint, updates map[string]interface{}) error
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) *GormOrderRepository
}

// GormOrderRepository is the GORM implementation.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates an order repository.
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormOrderRepository) WithTx(tx *gorm.DB) *GormOrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

// Transaction runs fn inside a database transaction.
func (r *GormOrderRepository) Transaction(fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

// Create persists a new order.
func (r *GormOrderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

// GetByID fetches an order by ID.
func (r *GormOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByIDForUpdate fetches an order by ID with a row lock.
func (r *GormOrderRepository) GetByIDForUpdate(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByOrderNo fetches an order by its order number.
func (r *GormOrderRepository) GetByOrderNo(orderNo string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Where("order_no = ?", orderNo).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// List queries orders with filters.
func (r *GormOrderRepository) List(filter OrderListFilter) ([]models.Order, int64, error) {
	query := r.db.Model(&models.Order{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.OrderNo != "" {
		query = query.Where("order_no = ?", filter.OrderNo)
	}
	if filter.BuyerID != 0 {
		query = query.Where("buyer_id = ?", filter.BuyerID)
	}
	if filter.SellerID != 0 {
		query = query.Where("seller_id = ?", filter.SellerID)
	}
	if filter.CityID != 0 {
		query = query.Where("city_id = ?", filter.CityID)
	}
	if filter.PersonnelID != 0 {
		query = query.Where("pickup_person_id = ? OR delivery_person_id = ?", filter.PersonnelID, filter.PersonnelID)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var orders []models.Order
	if err := query.Order("id desc").Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// ListAvailable lists ready orders whose delivery slot is still open,
// oldest scheduled first. The pickup slot does not gate visibility: an
// order that has a pickup person but no courier still needs one.
func (r *GormOrderRepository) ListAvailable(cityID uint, page, pageSize int) ([]models.Order, int64, error) {
	query := r.db.Model(&models.Order{}).
		Where("status = ? AND delivery_person_id IS NULL", constants.OrderStatusReadyForDelivery)
	if cityID != 0 {
		query = query.Where("city_id = ?", cityID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, page, pageSize)

	var orders []models.Order
	if err := query.Order("delivery_scheduled_at asc, id asc").Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// ListStaleReady lists ready orders that have waited unassigned since before the cutoff.
func (r *GormOrderRepository) ListStaleReady(before time.Time, limit int) ([]models.Order, error) {
	var orders []models.Order
	query := r.db.
		Where("status = ? AND pickup_person_id IS NULL AND delivery_scheduled_at <= ?",
			constants.OrderStatusReadyForDelivery, before).
		Order("delivery_scheduled_at asc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// ClaimPickup atomically assigns the pickup slot if it is still free.
// Returns the number of rows updated: 0 means the order was not ready
// or the slot was already taken.
func (r *GormOrderRepository) ClaimPickup(orderID, personnelID uint) (int64, error) {
	result := r.db.Model(&models.Order{}).
		Where("id = ? AND status = ? AND pickup_person_id IS NULL",
			orderID, constants.OrderStatusReadyForDelivery).
		Update("pickup_person_id", personnelID)
	return result.RowsAffected, result.Error
}

// ClaimDelivery atomically assigns the delivery slot if it is still free.
func (r *GormOrderRepository) ClaimDelivery(orderID, personnelID uint) (int64, error) {
	result := r.db.Model(&models.Order{}).
		Where("id = ? AND status = ? AND delivery_person_id IS NULL",
			orderID, constants.OrderStatusReadyForDelivery).
		Update("delivery_person_id", personnelID)
	return result.RowsAffected, result.Error
}

// Updates applies a partial update to an order row.
func (r *GormOrderRepository) Updates(id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&models.Order{}).Where("id = ?", id).Updates(updates).Error
}
