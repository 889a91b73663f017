package repository

import (
	"errors"

	"github.com/souqline/internal/models"

	"gorm.io/gorm"
)

// PlatformProfitRepository is the platform profit data access interface.
type PlatformProfitRepository interface {
	Create(profit *models.PlatformProfit) error
	GetByOrderID(orderID uint) (*models.PlatformProfit, error)
	List(filter ProfitListFilter) ([]models.PlatformProfit, int64, error)
	SumAmount(filter ProfitListFilter) (models.Money, error)
	WithTx(tx *gorm.DB) *GormPlatformProfitRepository
}

// GormPlatformProfitRepository is the GORM implementation.
type GormPlatformProfitRepository struct {
	db *gorm.DB
}

// NewPlatformProfitRepository creates a platform profit repository.
func NewPlatformProfitRepository(db *gorm.DB) *GormPlatformProfitRepository {
	return &GormPlatformProfitRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormPlatformProfitRepository) WithTx(tx *gorm.DB) *GormPlatformProfitRepository {
	if tx == nil {
		return r
	}
	return &GormPlatformProfitRepository{db: tx}
}

// Create records an order's profit entry.
func (r *GormPlatformProfitRepository) Create(profit *models.PlatformProfit) error {
	return r.db.Create(profit).Error
}

// GetByOrderID fetches the profit entry for an order.
func (r *GormPlatformProfitRepository) GetByOrderID(orderID uint) (*models.PlatformProfit, error) {
	if orderID == 0 {
		return nil, nil
	}
	var profit models.PlatformProfit
	if err := r.db.Where("order_id = ?", orderID).First(&profit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profit, nil
}

func (r *GormPlatformProfitRepository) applyFilter(filter ProfitListFilter) *gorm.DB {
	query := r.db.Model(&models.PlatformProfit{})
	if filter.CityID != 0 {
		query = query.Where("city_id = ?", filter.CityID)
	}
	if filter.SellerID != 0 {
		query = query.Where("seller_id = ?", filter.SellerID)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}
	return query
}

// List queries profit entries with filters.
func (r *GormPlatformProfitRepository) List(filter ProfitListFilter) ([]models.PlatformProfit, int64, error) {
	query := r.applyFilter(filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var profits []models.PlatformProfit
	if err := query.Order("id desc").Find(&profits).Error; err != nil {
		return nil, 0, err
	}
	return profits, total, nil
}

// SumAmount totals the profit entries matching the filter.
func (r *GormPlatformProfitRepository) SumAmount(filter ProfitListFilter) (models.Money, error) {
	var row struct {
		Total models.Money
	}
	if err := r.applyFilter(filter).
		Select("COALESCE(SUM(amount), 0) AS total").
		Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Money{}, nil
		}
		return models.Money{}, err
	}
	return row.Total, nil
}
