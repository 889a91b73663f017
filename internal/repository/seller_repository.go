package repository

import (
	"errors"

	"github.com/souqline/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SellerRepository is the seller account data access interface.
type SellerRepository interface {
	Create(seller *models.Seller) error
	GetByID(id uint) (*models.Seller, error)
	GetByIDForUpdate(id uint) (*models.Seller, error)
	GetByEmail(email string) (*models.Seller, error)
	Update(seller *models.Seller) error
	WithTx(tx *gorm.DB) *GormSellerRepository
}

// GormSellerRepository is the GORM implementation.
type GormSellerRepository struct {
	db *gorm.DB
}

// NewSellerRepository creates a seller repository.
func NewSellerRepository(db *gorm.DB) *GormSellerRepository {
	return &GormSellerRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormSellerRepository) WithTx(tx *gorm.DB) *GormSellerRepository {
	if tx == nil {
		return r
	}
	return &GormSellerRepository{db: tx}
}

// Create persists a seller.
func (r *GormSellerRepository) Create(seller *models.Seller) error {
	return r.db.Create(seller).Error
}

// GetByID fetches a seller by ID.
func (r *GormSellerRepository) GetByID(id uint) (*models.Seller, error) {
	var seller models.Seller
	if err := r.db.First(&seller, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &seller, nil
}

// GetByIDForUpdate fetches a seller by ID with a row lock.
func (r *GormSellerRepository) GetByIDForUpdate(id uint) (*models.Seller, error) {
	var seller models.Seller
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&seller, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &seller, nil
}

// GetByEmail fetches a seller by email.
func (r *GormSellerRepository) GetByEmail(email string) (*models.Seller, error) {
	if email == "" {
		return nil, nil
	}
	var seller models.Seller
	if err := r.db.Where("email = ?", email).First(&seller).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &seller, nil
}

// Update saves a seller.
func (r *GormSellerRepository) Update(seller *models.Seller) error {
	return r.db.Save(seller).Error
}
