package repository

import (
	"errors"

	"github.com/souqline/internal/constants"
	"github.com/souqline/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WithdrawalRepository handles seller withdrawal requests.
type WithdrawalRepository interface {
	Create(req *models.WithdrawalRequest) error
	GetByID(id uint) (*models.WithdrawalRequest, error)
	GetByIDForUpdate(id uint) (*models.WithdrawalRequest, error)
	HasPending(sellerID uint) (bool, error)
	List(filter WithdrawalListFilter) ([]models.WithdrawalRequest, int64, error)
	Update(req *models.WithdrawalRequest) error
	WithTx(tx *gorm.DB) *GormWithdrawalRepository
}

// GormWithdrawalRepository is the GORM implementation.
type GormWithdrawalRepository struct {
	db *gorm.DB
}

// NewWithdrawalRepository creates a seller withdrawal repository.
func NewWithdrawalRepository(db *gorm.DB) *GormWithdrawalRepository {
	return &GormWithdrawalRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormWithdrawalRepository) WithTx(tx *gorm.DB) *GormWithdrawalRepository {
	if tx == nil {
		return r
	}
	return &GormWithdrawalRepository{db: tx}
}

// Create persists a withdrawal request.
func (r *GormWithdrawalRepository) Create(req *models.WithdrawalRequest) error {
	return r.db.Create(req).Error
}

// GetByID fetches a withdrawal request by ID.
func (r *GormWithdrawalRepository) GetByID(id uint) (*models.WithdrawalRequest, error) {
	var req models.WithdrawalRequest
	if err := r.db.First(&req, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

// GetByIDForUpdate fetches a withdrawal request by ID with a row lock.
func (r *GormWithdrawalRepository) GetByIDForUpdate(id uint) (*models.WithdrawalRequest, error) {
	var req models.WithdrawalRequest
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&req, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

// HasPending reports whether the seller has an open request.
func (r *GormWithdrawalRepository) HasPending(sellerID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.WithdrawalRequest{}).
		Where("seller_id = ? AND status = ?", sellerID, constants.WithdrawalStatusPending).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List queries seller withdrawal requests with filters.
func (r *GormWithdrawalRepository) List(filter WithdrawalListFilter) ([]models.WithdrawalRequest, int64, error) {
	query := r.db.Model(&models.WithdrawalRequest{})

	if filter.OwnerID != 0 {
		query = query.Where("seller_id = ?", filter.OwnerID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Method != "" {
		query = query.Where("payment_method = ?", filter.Method)
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

	var reqs []models.WithdrawalRequest
	if err := query.Order("id desc").Find(&reqs).Error; err != nil {
		return nil, 0, err
	}
	return reqs, total, nil
}

// Update saves the withdrawal request.
func (r *GormWithdrawalRepository) Update(req *models.WithdrawalRequest) error {
	return r.db.Save(req).Error
}

// BuyerWithdrawalRepository handles buyer withdrawal requests.
type BuyerWithdrawalRepository interface {
	Create(req *models.BuyerWithdrawalRequest) error
	GetByID(id uint) (*models.BuyerWithdrawalRequest, error)
	GetByIDForUpdate(id uint) (*models.BuyerWithdrawalRequest, error)
	HasPending(userID uint) (bool, error)
	List(filter WithdrawalListFilter) ([]models.BuyerWithdrawalRequest, int64, error)
	Update(req *models.BuyerWithdrawalRequest) error
	WithTx(tx *gorm.DB) *GormBuyerWithdrawalRepository
}

// GormBuyerWithdrawalRepository is the GORM implementation.
type GormBuyerWithdrawalRepository struct {
	db *gorm.DB
}

// NewBuyerWithdrawalRepository creates a buyer withdrawal repository.
func NewBuyerWithdrawalRepository(db *gorm.DB) *GormBuyerWithdrawalRepository {
	return &GormBuyerWithdrawalRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormBuyerWithdrawalRepository) WithTx(tx *gorm.DB) *GormBuyerWithdrawalRepository {
	if tx == nil {
		return r
	}
	return &GormBuyerWithdrawalRepository{db: tx}
}

// Create persists a buyer withdrawal request.
func (r *GormBuyerWithdrawalRepository) Create(req *models.BuyerWithdrawalRequest) error {
	return r.db.Create(req).Error
}

// GetByID fetches a buyer withdrawal request by ID.
func (r *GormBuyerWithdrawalRepository) GetByID(id uint) (*models.BuyerWithdrawalRequest, error) {
	var req models.BuyerWithdrawalRequest
	if err := r.db.First(&req, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

// GetByIDForUpdate fetches a buyer withdrawal request with a row lock.
func (r *GormBuyerWithdrawalRepository) GetByIDForUpdate(id uint) (*models.BuyerWithdrawalRequest, error) {
	var req models.BuyerWithdrawalRequest
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&req, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

// HasPending reports whether the buyer has an open request.
func (r *GormBuyerWithdrawalRepository) HasPending(userID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.BuyerWithdrawalRequest{}).
		Where("user_id = ? AND status = ?", userID, constants.WithdrawalStatusPending).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List queries buyer withdrawal requests with filters.
func (r *GormBuyerWithdrawalRepository) List(filter WithdrawalListFilter) ([]models.BuyerWithdrawalRequest, int64, error) {
	query := r.db.Model(&models.BuyerWithdrawalRequest{})

	if filter.OwnerID != 0 {
		query = query.Where("user_id = ?", filter.OwnerID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Method != "" {
		query = query.Where("payment_method = ?", filter.Method)
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

	var reqs []models.BuyerWithdrawalRequest
	if err := query.Order("id desc").Find(&reqs).Error; err != nil {
		return nil, 0, err
	}
	return reqs, total, nil
}

// Update saves the buyer withdrawal request.
func (r *GormBuyerWithdrawalRepository) Update(req *models.BuyerWithdrawalRequest) error {
	return r.db.Save(req).Error
}
