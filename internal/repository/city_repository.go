package repository

import (
	"errors"

	"github.com/souqline/internal/models"

	"gorm.io/gorm"
)

// CityRepository is the city data access interface.
type CityRepository interface {
	Create(city *models.City) error
	GetByID(id uint) (*models.City, error)
	GetByName(name string) (*models.City, error)
	List(page, pageSize int) ([]models.City, int64, error)
	Update(city *models.City) error
	Delete(id uint) error
	WithTx(tx *gorm.DB) *GormCityRepository
}

// GormCityRepository is the GORM implementation.
type GormCityRepository struct {
	db *gorm.DB
}

// NewCityRepository creates a city repository.
func NewCityRepository(db *gorm.DB) *GormCityRepository {
	return &GormCityRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormCityRepository) WithTx(tx *gorm.DB) *GormCityRepository {
	if tx == nil {
		return r
	}
	return &GormCityRepository{db: tx}
}

// Create persists a city.
func (r *GormCityRepository) Create(city *models.City) error {
	return r.db.Create(city).Error
}

// GetByID fetches a city by ID.
func (r *GormCityRepository) GetByID(id uint) (*models.City, error) {
	var city models.City
	if err := r.db.First(&city, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &city, nil
}

// GetByName fetches a city by name.
func (r *GormCityRepository) GetByName(name string) (*models.City, error) {
	if name == "" {
		return nil, nil
	}
	var city models.City
	if err := r.db.Where("name = ?", name).First(&city).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &city, nil
}

// List queries cities.
func (r *GormCityRepository) List(page, pageSize int) ([]models.City, int64, error) {
	query := r.db.Model(&models.City{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, page, pageSize)

	var cities []models.City
	if err := query.Order("name asc").Find(&cities).Error; err != nil {
		return nil, 0, err
	}
	return cities, total, nil
}

// Update saves a city.
func (r *GormCityRepository) Update(city *models.City) error {
	return r.db.Save(city).Error
}

// Delete soft deletes a city.
func (r *GormCityRepository) Delete(id uint) error {
	return r.db.Delete(&models.City{}, id).Error
}
