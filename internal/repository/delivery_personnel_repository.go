package repository

import (
	"errors"
	"time"

	"github.com/souqline/internal/models"

	"gorm.io/gorm"
)

// DeliveryPersonnelRepository is the delivery personnel data access interface.
type DeliveryPersonnelRepository interface {
	Create(p *models.DeliveryPersonnel) error
	GetByID(id uint) (*models.DeliveryPersonnel, error)
	GetByPhone(phone string) (*models.DeliveryPersonnel, error)
	List(filter PersonnelListFilter) ([]models.DeliveryPersonnel, int64, error)
	Update(p *models.DeliveryPersonnel) error
	SetAvailability(id uint, available bool) error
	IncrementTrips(id uint) error
	TouchLastSeen(id uint) error
	WithTx(tx *gorm.DB) *GormDeliveryPersonnelRepository
}

// GormDeliveryPersonnelRepository is the GORM implementation.
type GormDeliveryPersonnelRepository struct {
	db *gorm.DB
}

// NewDeliveryPersonnelRepository creates a delivery personnel repository.
func NewDeliveryPersonnelRepository(db *gorm.DB) *GormDeliveryPersonnelRepository {
	return &GormDeliveryPersonnelRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormDeliveryPersonnelRepository) WithTx(tx *gorm.DB) *GormDeliveryPersonnelRepository {
	if tx == nil {
		return r
	}
	return &GormDeliveryPersonnelRepository{db: tx}
}

// Create persists a delivery person.
func (r *GormDeliveryPersonnelRepository) Create(p *models.DeliveryPersonnel) error {
	return r.db.Create(p).Error
}

// GetByID fetches a delivery person by ID.
func (r *GormDeliveryPersonnelRepository) GetByID(id uint) (*models.DeliveryPersonnel, error) {
	var p models.DeliveryPersonnel
	if err := r.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// GetByPhone fetches a delivery person by phone.
func (r *GormDeliveryPersonnelRepository) GetByPhone(phone string) (*models.DeliveryPersonnel, error) {
	if phone == "" {
		return nil, nil
	}
	var p models.DeliveryPersonnel
	if err := r.db.Where("phone = ?", phone).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// List queries delivery personnel with filters.
func (r *GormDeliveryPersonnelRepository) List(filter PersonnelListFilter) ([]models.DeliveryPersonnel, int64, error) {
	query := r.db.Model(&models.DeliveryPersonnel{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.OnlyAvailable {
		query = query.Where("is_available = ?", true)
	}
	if filter.Keyword != "" {
		like := "%" + filter.Keyword + "%"
		query = query.Where("name LIKE ? OR phone LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var personnel []models.DeliveryPersonnel
	if err := query.Order("id desc").Find(&personnel).Error; err != nil {
		return nil, 0, err
	}
	return personnel, total, nil
}

// Update saves a delivery person.
func (r *GormDeliveryPersonnelRepository) Update(p *models.DeliveryPersonnel) error {
	return r.db.Save(p).Error
}

// SetAvailability flips the availability flag.
func (r *GormDeliveryPersonnelRepository) SetAvailability(id uint, available bool) error {
	return r.db.Model(&models.DeliveryPersonnel{}).
		Where("id = ?", id).
		Update("is_available", available).Error
}

// IncrementTrips bumps the completed trips counter.
func (r *GormDeliveryPersonnelRepository) IncrementTrips(id uint) error {
	return r.db.Model(&models.DeliveryPersonnel{}).
		Where("id = ?", id).
		Update("trips_count", gorm.Expr("trips_count + 1")).Error
}

// TouchLastSeen records activity from the delivery person.
func (r *GormDeliveryPersonnelRepository) TouchLastSeen(id uint) error {
	return r.db.Model(&models.DeliveryPersonnel{}).
		Where("id = ?", id).
		Update("last_seen_at", time.Now()).Error
}
