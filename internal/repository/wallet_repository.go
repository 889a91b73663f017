package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/souqline/internal/constants"
	"github.com/souqline/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WalletRepository is the wallet ledger data access interface. Balances
// live on the owner rows (users, sellers); this repository locks and
// updates them by owner kind and records the ledger entries.
type WalletRepository interface {
	GetBalanceForUpdate(ownerKind string, ownerID uint) (*models.Money, error)
	UpdateBalance(ownerKind string, ownerID uint, balance models.Money) error
	CreateTransaction(txn *models.WalletTransaction) error
	GetTransactionByReference(reference string) (*models.WalletTransaction, error)
	ListTransactions(filter WalletTransactionListFilter) ([]models.WalletTransaction, int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) *GormWalletRepository
}

// GormWalletRepository is the GORM implementation.
type GormWalletRepository struct {
	db *gorm.DB
}

// NewWalletRepository creates a wallet repository.
func NewWalletRepository(db *gorm.DB) *GormWalletRepository {
	return &GormWalletRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormWalletRepository) WithTx(tx *gorm.DB) *GormWalletRepository {
	if tx == nil {
		return r
	}
	return &GormWalletRepository{db: tx}
}

// Transaction runs fn inside a database transaction.
func (r *GormWalletRepository) Transaction(fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

func ownerModel(ownerKind string) (interface{}, error) {
	switch ownerKind {
	case constants.WalletOwnerBuyer:
		return &models.User{}, nil
	case constants.WalletOwnerSeller:
		return &models.Seller{}, nil
	default:
		return nil, fmt.Errorf("unknown wallet owner kind: %s", ownerKind)
	}
}

// GetBalanceForUpdate locks the owner row and returns its wallet balance.
// Returns nil when the owner does not exist.
func (r *GormWalletRepository) GetBalanceForUpdate(ownerKind string, ownerID uint) (*models.Money, error) {
	if ownerID == 0 {
		return nil, nil
	}
	model, err := ownerModel(ownerKind)
	if err != nil {
		return nil, err
	}
	var row struct {
		WalletBalance models.Money
	}
	if err := r.db.Model(model).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("wallet_balance").
		Where("id = ?", ownerID).
		Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row.WalletBalance, nil
}

// UpdateBalance writes the owner row's wallet balance.
func (r *GormWalletRepository) UpdateBalance(ownerKind string, ownerID uint, balance models.Money) error {
	model, err := ownerModel(ownerKind)
	if err != nil {
		return err
	}
	return r.db.Model(model).
		Where("id = ?", ownerID).
		Update("wallet_balance", balance).Error
}

// CreateTransaction records a ledger entry.
func (r *GormWalletRepository) CreateTransaction(txn *models.WalletTransaction) error {
	return r.db.Create(txn).Error
}

// GetTransactionByReference fetches a ledger entry by its reference.
func (r *GormWalletRepository) GetTransactionByReference(reference string) (*models.WalletTransaction, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, nil
	}
	var txn models.WalletTransaction
	if err := r.db.Where("reference = ?", reference).First(&txn).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &txn, nil
}

// ListTransactions queries the ledger with filters.
func (r *GormWalletRepository) ListTransactions(filter WalletTransactionListFilter) ([]models.WalletTransaction, int64, error) {
	query := r.db.Model(&models.WalletTransaction{})

	if filter.OwnerKind != "" {
		query = query.Where("owner_kind = ?", filter.OwnerKind)
	}
	if filter.OwnerID != 0 {
		query = query.Where("owner_id = ?", filter.OwnerID)
	}
	if filter.OrderID != 0 {
		query = query.Where("order_id = ?", filter.OrderID)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Direction != "" {
		query = query.Where("direction = ?", filter.Direction)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var txns []models.WalletTransaction
	if err := query.Order("id desc").Find(&txns).Error; err != nil {
		return nil, 0, err
	}
	return txns, total, nil
}
